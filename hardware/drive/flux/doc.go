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

// Package flux implements the bit recovery stream of the disk drive. A
// stream is a circular cursor over the raw bits of a single track. Bits are
// read most-significant first from each byte of the buffer.
//
// The stream can be marked and rewound. A mark fixes the point before which
// the stream cannot be rewound. This is used by the drive to realign byte
// boundaries after a sync mark. A new mark replaces the previous one and the
// mark is only cleared by creating a new stream.
//
// An empty stream is valid. It has no bits and reading from it always returns
// a zero bit. An empty stream never wraps.
package flux
