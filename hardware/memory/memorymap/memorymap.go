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

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case VIA1:
		return "VIA1"
	case VIA2:
		return "VIA2"
	case ROM:
		return "ROM"
	}

	return "undefined"
}

// The different memory areas in the drive.
const (
	Undefined Area = iota
	RAM
	VIA1
	VIA2
	ROM
)

// The origin and memory top for each area of memory. Checking which area an
// address falls within and forcing the address into the normalised range is
// all handled by the MapAddress() function.
const (
	OriginRAM  = uint16(0x0000)
	MemtopRAM  = uint16(0x07ff)
	OriginVIA1 = uint16(0x1800)
	MemtopVIA1 = uint16(0x180f)
	OriginVIA2 = uint16(0x1c00)
	MemtopVIA2 = uint16(0x1c0f)
	OriginROM  = uint16(0xc000)
	MemtopROM  = uint16(0xffff)
)

// Memtop is the top most address of memory in the drive.
const Memtop = uint16(0xffff)

// Masks applied to addresses in the mirrored areas. MaskVIA keeps only the
// four register bits of an address in either VIA window.
const (
	MaskIO  = uint16(0x1fff)
	MaskVIA = uint16(0x000f)
)

// MapAddress translates the address argument from mirror space to primary
// space. Generally, an address should be passed through this function before
// accessing memory.
func MapAddress(address uint16) (uint16, Area) {
	// note that the order of these filters is important

	// ROM is selected by address line 15 and is mirrored at 0x8000
	if address&0x8000 == 0x8000 {
		return address | OriginROM, ROM
	}

	address &= MaskIO

	if address&OriginVIA2 == OriginVIA2 {
		return OriginVIA2 | address&MaskVIA, VIA2
	}

	if address&OriginVIA1 == OriginVIA1 {
		return OriginVIA1 | address&MaskVIA, VIA1
	}

	// RAM is mirrored throughout the remaining space
	return address & MemtopRAM, RAM
}

// IsArea returns true if the address is in the specificied area.
func IsArea(address uint16, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
