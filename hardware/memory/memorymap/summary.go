// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package memorymap

import (
	"fmt"
	"io"
	"strings"
)

// Region is a contiguous range of addresses that map to the same area.
type Region struct {
	From uint16
	To   uint16
	Area Area
}

func (r Region) String() string {
	return fmt.Sprintf("%04x -> %04x\t%s", r.From, r.To, r.Area)
}

// Regions returns the address space of the drive divided into regions, in
// address order. Mirrors of an area are separate regions.
func Regions() []Region {
	var regions []Region

	_, area := MapAddress(0)
	r := Region{From: 0, Area: area}

	for a := 1; a <= int(Memtop); a++ {
		if _, area = MapAddress(uint16(a)); area != r.Area {
			r.To = uint16(a - 1)
			regions = append(regions, r)
			r = Region{From: uint16(a), Area: area}
		}
	}

	r.To = Memtop
	return append(regions, r)
}

// WriteSummary writes one line for every region in the address space.
func WriteSummary(w io.Writer) error {
	for _, r := range Regions() {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// Summary returns the output of WriteSummary() as a string.
func Summary() string {
	var s strings.Builder
	_ = WriteSummary(&s)
	return s.String()
}
