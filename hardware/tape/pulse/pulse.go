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

package pulse

import "fmt"

// Kind identifies the type of a pulse.
type Kind int

// List of valid Kind values.
const (
	Short Kind = iota
	Medium
	Long
	Silence
	Custom
)

func (k Kind) String() string {
	switch k {
	case Short:
		return "short"
	case Medium:
		return "medium"
	case Long:
		return "long"
	case Silence:
		return "silence"
	case Custom:
		return "custom"
	}
	panic("unknown pulse kind")
}

// Duration of each pulse kind in CPU cycles. The canonical pulse widths are
// the widths used by the computer's ROM, multiplied by eight.
const (
	ShortCycles        = 0x30 * 8
	MediumCycles       = 0x42 * 8
	LongCycles         = 0x56 * 8
	ShortSilenceCycles = 330000
	LongSilenceCycles  = 1000000
)

// Pulse is a single pulse on the tape.
type Pulse struct {
	Kind   Kind
	Cycles int
}

func (p Pulse) String() string {
	return fmt.Sprintf("%s (%d)", p.Kind, p.Cycles)
}

// The canonical pulses.
var (
	ShortPulse   = Pulse{Kind: Short, Cycles: ShortCycles}
	MediumPulse  = Pulse{Kind: Medium, Cycles: MediumCycles}
	LongPulse    = Pulse{Kind: Long, Cycles: LongCycles}
	ShortSilence = Pulse{Kind: Silence, Cycles: ShortSilenceCycles}
	LongSilence  = Pulse{Kind: Silence, Cycles: LongSilenceCycles}
)

// NewCustom returns a pulse of any length.
func NewCustom(cycles int) Pulse {
	return Pulse{Kind: Custom, Cycles: cycles}
}

// Repeat returns a sequence of n copies of the pulse.
func Repeat(p Pulse, n int) []Pulse {
	s := make([]Pulse, n)
	for i := range s {
		s[i] = p
	}
	return s
}

// Duration returns the total number of cycles in the sequence.
func Duration(pulses []Pulse) int {
	var d int
	for _, p := range pulses {
		d += p.Cycles
	}
	return d
}
