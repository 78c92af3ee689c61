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

// Package encoding converts between data and the pulses that represent the
// data on tape.
//
// A zero bit is a short pulse followed by a medium pulse. A one bit is a
// medium pulse followed by a short pulse. A byte is a marker (a long pulse
// followed by a medium pulse), eight data bits with the least significant bit
// first and an odd parity bit.
//
// A block is a synchronisation sequence of nine bytes, the data and an XOR
// checksum of the data. Every block is recorded twice. The first copy uses the
// sequence 0x89 to 0x81 and the repeat uses the sequence 0x09 to 0x01.
//
// A file is a header block followed by a data block. The header block is
// always 192 bytes long and contains the file type, the load address, the end
// address and the name of the file.
//
// The Decoder type recovers blocks from the pulse stream, or from the signal
// of a pulse.Generator. Bad pulses, parity errors and checksum mismatches are
// logged and decoding continues.
package encoding
