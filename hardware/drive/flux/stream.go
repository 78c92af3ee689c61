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

package flux

import "fmt"

// Stream is a circular bit cursor over a track buffer.
type Stream struct {
	data []byte

	// number of valid bits in data
	length int

	// bit position of the cursor when the stream was created
	start int

	// number of bits read since the stream was created, minus any bits that
	// have been rewound
	consumed int

	// value of consumed at the time of the most recent mark
	mark int
}

// NewStream is the preferred method of initialisation for the Stream type.
// The length argument is the number of valid bits in the data. A length of
// zero or a length greater than the data will be taken to mean all the bits
// in the data. The start argument is the bit position at which reading
// begins.
func NewStream(data []byte, length int, start int) *Stream {
	if length <= 0 || length > len(data)*8 {
		length = len(data) * 8
	}

	s := &Stream{
		data:   data,
		length: length,
	}

	if length > 0 {
		s.start = start % length
		if s.start < 0 {
			s.start += length
		}
	}

	return s
}

// Empty returns a stream with no data. It is the stream used when there is no
// disk or when the current track has no data.
func Empty() *Stream {
	return &Stream{}
}

func (s *Stream) String() string {
	if s.length == 0 {
		return "empty"
	}
	return fmt.Sprintf("bit %d of %d (rev %d)", s.Cursor(), s.length, s.Revolutions())
}

// IsEmpty returns true if the stream has no bits.
func (s *Stream) IsEmpty() bool {
	return s.length == 0
}

// Len returns the number of bits in one revolution of the stream.
func (s *Stream) Len() int {
	return s.length
}

// Cursor returns the bit position of the next bit to be read.
func (s *Stream) Cursor() int {
	if s.length == 0 {
		return 0
	}
	return (s.start + s.consumed) % s.length
}

// Position returns the cursor as a fraction of a full revolution. Used to keep
// the angular position of the disk when the head moves to a different track.
func (s *Stream) Position() float64 {
	if s.length == 0 {
		return 0
	}
	return float64(s.Cursor()) / float64(s.length)
}

// Consumed returns the number of bits that have been read since the stream
// was created, minus any bits that have been rewound.
func (s *Stream) Consumed() int {
	return s.consumed
}

// Revolutions returns the number of times the cursor has passed its starting
// point.
func (s *Stream) Revolutions() int {
	if s.length == 0 {
		return 0
	}
	return s.consumed / s.length
}

// Wrapped returns true once the cursor has passed its starting point.
func (s *Stream) Wrapped() bool {
	return s.Revolutions() > 0
}

// ReadBit returns the next bit in the stream and advances the cursor.
func (s *Stream) ReadBit() bool {
	if s.length == 0 {
		return false
	}
	c := s.Cursor()
	s.consumed++
	return s.data[c>>3]&(0x80>>(c&0x07)) != 0
}

// ReadByte returns the next eight bits in the stream, the first bit read being
// the most significant bit. The error is always nil and is present so that
// Stream implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	var b byte
	for i := 0; i < 8; i++ {
		b <<= 1
		if s.ReadBit() {
			b |= 0x01
		}
	}
	return b, nil
}

// Mark the current position of the stream. The stream can not be rewound to
// before the mark.
func (s *Stream) Mark() {
	s.mark = s.consumed
}

// Rewind the stream by n bits. The cursor will not be moved before the most
// recent mark or before the position at which the stream was created. The
// number of bits actually rewound is returned.
func (s *Stream) Rewind(n int) int {
	if n <= 0 {
		return 0
	}
	if s.consumed-n < s.mark {
		n = s.consumed - s.mark
	}
	s.consumed -= n
	return n
}
