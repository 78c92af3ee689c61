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

// Package serialbus implements the three wire serial bus that connects the
// computer to the disk drive. The three lines (ATN, CLK and DATA) are open
// collector. Any device on the bus can pull a line low (asserted) but no
// device can drive a line high. A line is therefore asserted if any device is
// asserting it.
//
// Each device is attached to the bus through an Endpoint. The endpoint reads
// the device's output pins through the Port interface, decides which lines
// the device is asserting and writes the sensed state of the bus back to the
// device's input pins. The mapping between port bits and bus lines is given
// by a PinMap. The DrivePins and ComputerPins values are the mappings used by
// the 1541 and by the C64.
//
// Line levels are always reported logically. True means asserted, which is
// electrically low.
package serialbus
