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

// Package memorymap describes the address space of the disk drive as seen by
// the drive's CPU. Only the low 13 bits of an address are decoded when address
// line 15 is clear. Every area of memory is therefore mirrored a number of
// times.
//
// In the 1541 the areas are:
//
//	0000 -> 07ff	RAM
//	1800 -> 180f	VIA1 (serial bus)
//	1c00 -> 1c0f	VIA2 (mechanics)
//	c000 -> ffff	ROM
package memorymap
