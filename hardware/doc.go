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

// Package hardware is the base package for the peripheral emulation. The
// Peripherals type ties together the devices on the serial bus and the
// datasette and steps them in lockstep with the computer's clock.
//
// The individual devices are in the subpackages. The via package is the
// interface chip used by the disk drive, the drive package is the mechanics
// and read circuitry of the drive, the serialbus package connects the drives
// to the computer and the tape package is the datasette.
package hardware
