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
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
)

// Encoder builds a sequence of pulses.
type Encoder struct {
	pulses []pulse.Pulse
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Pulses returns the pulses encoded so far.
func (e *Encoder) Pulses() []pulse.Pulse {
	return e.pulses
}

// Add pulses to the sequence.
func (e *Encoder) Add(p ...pulse.Pulse) {
	e.pulses = append(e.pulses, p...)
}

// Shorts adds n short pulses. Used for the pilot tone and for trailers.
func (e *Encoder) Shorts(n int) {
	e.pulses = append(e.pulses, pulse.Repeat(pulse.ShortPulse, n)...)
}

// Bit adds the two pulses for a single bit.
func (e *Encoder) Bit(b bool) {
	if b {
		e.pulses = append(e.pulses, pulse.MediumPulse, pulse.ShortPulse)
	} else {
		e.pulses = append(e.pulses, pulse.ShortPulse, pulse.MediumPulse)
	}
}

// Byte adds a marker, eight data bits and a parity bit.
func (e *Encoder) Byte(v uint8) {
	e.pulses = append(e.pulses, pulse.LongPulse, pulse.MediumPulse)

	// parity bit makes the number of one bits odd
	parity := true
	for i := 0; i < 8; i++ {
		b := v&(1<<i) != 0
		if b {
			parity = !parity
		}
		e.Bit(b)
	}
	e.Bit(parity)
}

// Bytes adds each byte in the data.
func (e *Encoder) Bytes(data []byte) {
	for _, v := range data {
		e.Byte(v)
	}
}

// Block adds a synchronisation sequence, the data and the checksum of the
// data.
func (e *Encoder) Block(sync []byte, data []byte) {
	e.Bytes(sync)
	e.Bytes(data)
	e.Byte(Checksum(data))
}

// File adds the header and data blocks of a file, each recorded twice.
func (e *Encoder) File(f File) {
	hdr := f.Header()

	e.Block(FirstSync, hdr)
	e.Shorts(TrailerLength)
	e.Add(pulse.ShortSilence)
	e.Block(RepeatSync, hdr)
	e.Shorts(EndTrailerLength)
	e.Add(pulse.ShortSilence)

	e.Block(FirstSync, f.Data)
	e.Shorts(TrailerLength)
	e.Add(pulse.ShortSilence)
	e.Block(RepeatSync, f.Data)
	e.Shorts(EndTrailerLength)
	e.Add(pulse.LongSilence)
}

// EncodeFiles returns the pulses for a complete tape. The pilot tone of pilot
// short pulses is recorded once at the start of the tape.
func EncodeFiles(files []File, pilot int) []pulse.Pulse {
	e := NewEncoder()
	e.Shorts(pilot)
	for _, f := range files {
		e.File(f)
	}
	return e.Pulses()
}

// FromT64 returns the files in a T64 container.
func FromT64(c *t64.Container) []File {
	files := make([]File, 0, len(c.Entries))
	for _, ent := range c.Entries {
		typ := AbsoluteProgram
		if ent.Start == 0x0801 {
			typ = RelocatableProgram
		}
		files = append(files, File{
			Type:  typ,
			Start: ent.Start,
			End:   ent.End,
			Name:  ent.Name,
			Data:  ent.Data,
		})
	}
	return files
}

// EncodeT64 returns the pulses for every entry in a T64 container.
func EncodeT64(c *t64.Container, pilot int) []pulse.Pulse {
	return EncodeFiles(FromT64(c), pilot)
}
