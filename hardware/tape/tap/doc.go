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

// Package tap reads and writes raw pulse tape containers. A TAP container is
// a recording of the pulses on a tape with no file structure.
//
// The header is 20 bytes:
//
//	offset  size  description
//	0       12    "C64-TAPE-RAW"
//	12      1     version
//	13      3     reserved
//	16      4     length of the pulse data (little-endian)
//
// Each following byte is the length of one pulse in units of eight cycles.
// For version 1 and later a zero byte is followed by a three byte
// little-endian cycle count. For version 0 a zero byte is an overflow pulse.
package tap
