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

package encoding

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// HeaderLength is the length of a header block, not including the checksum.
const HeaderLength = 192

// NameLength is the maximum length of a file name in the header.
const NameLength = 16

// Number of short pulses after the first and second copies of a block.
const (
	TrailerLength    = 79
	EndTrailerLength = 78
)

// Header file types.
const (
	// a program loaded to the start of BASIC memory
	RelocatableProgram uint8 = 0x01

	// a program loaded to the address in the header
	AbsoluteProgram uint8 = 0x03
)

// The synchronisation sequences at the start of the first and repeated copies
// of a block.
var (
	FirstSync  = []byte{0x89, 0x88, 0x87, 0x86, 0x85, 0x84, 0x83, 0x82, 0x81}
	RepeatSync = []byte{0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
)

// File is a single file on tape.
type File struct {
	Type  uint8
	Start uint16
	End   uint16
	Name  string
	Data  []byte
}

func (f File) String() string {
	return fmt.Sprintf("%-16s %04x -> %04x (type %d, %d bytes)", f.Name, f.Start, f.End, f.Type, len(f.Data))
}

// Checksum returns the XOR of all bytes in the data.
func Checksum(data []byte) uint8 {
	var c uint8
	for _, b := range data {
		c ^= b
	}
	return c
}

// Header returns the contents of the header block for the file. Not including
// the checksum.
func (f File) Header() []byte {
	h := make([]byte, HeaderLength)
	h[0] = f.Type
	binary.LittleEndian.PutUint16(h[1:], f.Start)
	binary.LittleEndian.PutUint16(h[3:], f.End)
	for i := 5; i < len(h); i++ {
		h[i] = 0x20
	}
	name := f.Name
	if len(name) > NameLength {
		name = name[:NameLength]
	}
	copy(h[5:], name)
	return h
}

// parseHeader is the reverse of Header().
func parseHeader(h []byte) File {
	return File{
		Type:  h[0],
		Start: binary.LittleEndian.Uint16(h[1:]),
		End:   binary.LittleEndian.Uint16(h[3:]),
		Name:  strings.TrimRight(string(h[5:5+NameLength]), " \x00"),
	}
}
