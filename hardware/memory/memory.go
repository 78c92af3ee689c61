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

package memory

import (
	"fmt"
	"strings"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/memory/bus"
	"github.com/gopher1541/gopher1541/hardware/memory/memorymap"
	"github.com/gopher1541/gopher1541/hardware/via"
)

// Sentinel error patterns returned by this package.
const (
	BadROM = "memory: ROM must be %d bytes"
)

// ROMSize is the size of the drive's ROM.
const ROMSize = int(memorymap.MemtopROM-memorymap.OriginROM) + 1

// Chip is the register access of an interface chip. Implemented by via.VIA.
type Chip interface {
	Read(reg via.Register) (uint8, error)
	Write(reg via.Register, data uint8) error
	Peek(reg via.Register) (uint8, error)
}

// Memory is the complete address space of the drive.
type Memory struct {
	RAM []uint8
	ROM []uint8

	VIA1 Chip
	VIA2 Chip

	// the last address accessed by the CPU, in primary space
	LastAccessAddress uint16
	LastAccessWrite   bool
}

var _ bus.CPUBus = (*Memory)(nil)
var _ bus.DebuggerBus = (*Memory)(nil)

// NewMemory is the preferred method of initialisation for the Memory type.
// The ROM will read as zero until one is attached with AttachROM().
func NewMemory(via1 Chip, via2 Chip) *Memory {
	return &Memory{
		RAM:  make([]uint8, memorymap.MemtopRAM-memorymap.OriginRAM+1),
		VIA1: via1,
		VIA2: via2,
	}
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	s.WriteString("      -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("    ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for y := 0; y < 16; y++ {
		s.WriteString(fmt.Sprintf("%X- | ", y))
		for x := 0; x < 16; x++ {
			s.WriteString(fmt.Sprintf(" %02x", mem.RAM[(y*16)+x]))
		}
		s.WriteString("\n")
	}
	return strings.Trim(s.String(), "\n")
}

// AttachROM sets the contents of the ROM area.
func (mem *Memory) AttachROM(data []uint8) error {
	if len(data) != ROMSize {
		return curated.Errorf(BadROM, ROMSize)
	}
	mem.ROM = data
	return nil
}

// Reset clears RAM.
func (mem *Memory) Reset() {
	for i := range mem.RAM {
		mem.RAM[i] = 0
	}
}

// Read is an implementation of bus.CPUBus.
func (mem *Memory) Read(address uint16) (uint8, error) {
	ma, area := memorymap.MapAddress(address)
	mem.LastAccessAddress = ma
	mem.LastAccessWrite = false

	switch area {
	case memorymap.VIA1:
		return mem.VIA1.Read(via.Register(ma & memorymap.MaskVIA))
	case memorymap.VIA2:
		return mem.VIA2.Read(via.Register(ma & memorymap.MaskVIA))
	}

	return mem.Peek(ma)
}

// Write is an implementation of bus.CPUBus. Writes to ROM are ignored.
func (mem *Memory) Write(address uint16, data uint8) error {
	ma, area := memorymap.MapAddress(address)
	mem.LastAccessAddress = ma
	mem.LastAccessWrite = true

	switch area {
	case memorymap.VIA1:
		return mem.VIA1.Write(via.Register(ma&memorymap.MaskVIA), data)
	case memorymap.VIA2:
		return mem.VIA2.Write(via.Register(ma&memorymap.MaskVIA), data)
	case memorymap.RAM:
		mem.RAM[ma] = data
	}

	return nil
}

// Peek is an implementation of bus.DebuggerBus. Peeking at an interface chip
// does not trigger the side effects of a CPU read.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return mem.RAM[ma], nil
	case memorymap.VIA1:
		return mem.VIA1.Peek(via.Register(ma & memorymap.MaskVIA))
	case memorymap.VIA2:
		return mem.VIA2.Peek(via.Register(ma & memorymap.MaskVIA))
	case memorymap.ROM:
		if mem.ROM == nil {
			return 0, nil
		}
		return mem.ROM[ma-memorymap.OriginROM], nil
	}

	return 0, nil
}

// Poke is an implementation of bus.DebuggerBus. Poking ROM changes the ROM.
// Poking an interface chip is the same as a CPU write.
func (mem *Memory) Poke(address uint16, data uint8) error {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.ROM:
		if mem.ROM != nil {
			mem.ROM[ma-memorymap.OriginROM] = data
		}
		return nil
	case memorymap.RAM:
		mem.RAM[ma] = data
		return nil
	}

	return mem.Write(ma, data)
}
