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

// Package memory implements the address decoder of the disk drive. The Memory
// type dispatches CPU reads and writes to RAM, to the two interface chips or to
// ROM according to the memory map in the memorymap package.
//
// The CPU of the drive is not part of this module. The Memory type is the
// point at which an external CPU implementation would connect to the drive,
// through the bus.CPUBus interface.
package memory
