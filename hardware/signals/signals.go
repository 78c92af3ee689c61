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

// Package signals defines the narrow contract between the emulated
// peripherals and the CPU that owns them. The CPU itself is not part of this
// module. Anything that implements the interfaces in this package can host
// the interface chips and the drive mechanics.
//
// The IRQ type is a convenience implementation of the Interrupter interface.
// It models an open-collector interrupt line that more than one chip can pull
// low, such as the line shared by the two interface chips of a disk drive.
package signals

// Interrupter is the interrupt request line of a CPU. The source argument
// identifies the chip that is driving the line. An implementation should
// treat the line as active if any source is active.
type Interrupter interface {
	SetIRQ(source string, active bool)
}

// Overflower is the set-overflow line of a CPU. The disk drive uses the line
// to signal that a byte has been assembled by the read circuitry.
type Overflower interface {
	SetOverflow(level bool)
}

// Clock is the cycle counter and program counter of a CPU.
type Clock interface {
	Cycles() uint64
	PC() uint16
}

// CPU is the complete collaborator contract.
type CPU interface {
	Interrupter
	Overflower
	Clock
}
