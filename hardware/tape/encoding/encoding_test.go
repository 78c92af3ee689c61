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

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/encoding"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
	"github.com/gopher1541/gopher1541/test"
)

func newDecoder() *encoding.Decoder {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Prefs.Quiet = true
	return encoding.NewDecoder(env)
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestClassify(t *testing.T) {
	test.ExpectEquality(t, encoding.Classify(pulse.ShortCycles), pulse.Short)
	test.ExpectEquality(t, encoding.Classify(pulse.MediumCycles), pulse.Medium)
	test.ExpectEquality(t, encoding.Classify(pulse.LongCycles), pulse.Long)
	test.ExpectEquality(t, encoding.Classify(encoding.ShortMediumThreshold-1), pulse.Short)
	test.ExpectEquality(t, encoding.Classify(encoding.ShortMediumThreshold), pulse.Medium)
	test.ExpectEquality(t, encoding.Classify(encoding.MediumLongThreshold), pulse.Long)
}

func TestByteEncoding(t *testing.T) {
	e := encoding.NewEncoder()
	e.Byte(0x00)
	p := e.Pulses()

	// marker, eight zero bits and a parity bit of one
	test.DemandEquality(t, len(p), 20)
	test.ExpectEquality(t, p[0], pulse.LongPulse)
	test.ExpectEquality(t, p[1], pulse.MediumPulse)
	for i := 0; i < 8; i++ {
		test.ExpectEquality(t, p[2+i*2], pulse.ShortPulse, i)
		test.ExpectEquality(t, p[3+i*2], pulse.MediumPulse, i)
	}
	test.ExpectEquality(t, p[18], pulse.MediumPulse)
	test.ExpectEquality(t, p[19], pulse.ShortPulse)

	// seven one bits. parity of zero
	e = encoding.NewEncoder()
	e.Byte(0x7f)
	p = e.Pulses()
	test.ExpectEquality(t, p[18], pulse.ShortPulse)
	test.ExpectEquality(t, p[19], pulse.MediumPulse)
}

func TestPulseRoundTrip(t *testing.T) {
	data := allBytes()

	e := encoding.NewEncoder()
	e.Block(encoding.FirstSync, data)

	dec := newDecoder()
	dec.Pulses(e.Pulses())
	dec.Flush()

	blks := dec.Blocks()
	test.DemandEquality(t, len(blks), 1)
	test.ExpectSuccess(t, bytes.Equal(blks[0].Data, data))
	test.ExpectSuccess(t, blks[0].Valid)
	test.ExpectFailure(t, blks[0].Repeat)
	test.ExpectEquality(t, dec.PulseErrors, 0)
	test.ExpectEquality(t, dec.ParityErrors, 0)
	test.ExpectEquality(t, dec.ChecksumErrors, 0)
}

func TestSignalRoundTrip(t *testing.T) {
	data := allBytes()

	e := encoding.NewEncoder()
	e.Shorts(50)
	e.Block(encoding.RepeatSync, data)
	e.Shorts(encoding.EndTrailerLength)

	g := pulse.NewGenerator(e.Pulses())
	dec := newDecoder()
	for i := 0; i < pulse.Duration(e.Pulses()); i++ {
		g.Step()
		dec.Step(g.Signal())
	}
	dec.Flush()

	blks := dec.Blocks()
	test.DemandEquality(t, len(blks), 1)
	test.ExpectSuccess(t, bytes.Equal(blks[0].Data, data))
	test.ExpectSuccess(t, blks[0].Valid)
	test.ExpectSuccess(t, blks[0].Repeat)
}

func TestHeader(t *testing.T) {
	f := encoding.File{Type: encoding.RelocatableProgram, Start: 0x0801, End: 0x0803, Name: "TEST"}
	h := f.Header()
	test.DemandEquality(t, len(h), encoding.HeaderLength)
	test.ExpectSuccess(t, bytes.Equal(h[:9], []byte{0x01, 0x01, 0x08, 0x03, 0x08, 'T', 'E', 'S', 'T'}))
	for i := 9; i < len(h); i++ {
		test.DemandEquality(t, h[i], 0x20, i)
	}
}

func TestEncodeT64(t *testing.T) {
	c := &t64.Container{
		Entries: []t64.Entry{
			{Start: 0x0801, End: 0x0803, Name: "TEST", Data: []byte{0x01, 0x02}},
		},
	}

	const pilot = 100
	pulses := encoding.EncodeT64(c, pilot)

	for i := 0; i < pilot; i++ {
		test.DemandEquality(t, pulses[i], pulse.ShortPulse, i)
	}
	test.ExpectEquality(t, pulses[len(pulses)-1], pulse.LongSilence)

	g := pulse.NewGenerator(pulses)
	dec := newDecoder()
	for i := 0; i < pulse.Duration(pulses); i++ {
		g.Step()
		dec.Step(g.Signal())
	}
	dec.Flush()
	test.ExpectSuccess(t, g.Exhausted())

	// header, header repeat, data, data repeat
	blks := dec.Blocks()
	test.DemandEquality(t, len(blks), 4)
	test.ExpectEquality(t, len(blks[0].Data), encoding.HeaderLength)
	test.ExpectSuccess(t, blks[1].Repeat)
	test.ExpectSuccess(t, bytes.Equal(blks[2].Data, []byte{0x01, 0x02}))
	test.ExpectEquality(t, blks[2].Checksum, 0x03)
	test.ExpectSuccess(t, blks[3].Repeat)

	files := dec.Files()
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0].Type, encoding.RelocatableProgram)
	test.ExpectEquality(t, files[0].Name, "TEST")
	test.ExpectEquality(t, files[0].Start, 0x0801)
	test.ExpectEquality(t, files[0].End, 0x0803)
	test.ExpectSuccess(t, bytes.Equal(files[0].Data, []byte{0x01, 0x02}))
}

func TestAbsoluteProgram(t *testing.T) {
	c := &t64.Container{
		Entries: []t64.Entry{
			{Start: 0xc000, End: 0xc001, Name: "ML", Data: []byte{0x60}},
		},
	}
	files := encoding.FromT64(c)
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0].Type, encoding.AbsoluteProgram)
}

func TestIntegrityErrors(t *testing.T) {
	dec := newDecoder()

	// zero byte with a parity bit of zero
	e := encoding.NewEncoder()
	e.Add(pulse.LongPulse, pulse.MediumPulse)
	for i := 0; i < 9; i++ {
		e.Bit(false)
	}
	dec.Pulses(e.Pulses())
	test.ExpectEquality(t, dec.ParityErrors, 1)
	test.ExpectEquality(t, dec.PulseErrors, 0)

	// a pair of long pulses
	e = encoding.NewEncoder()
	e.Add(pulse.LongPulse, pulse.MediumPulse, pulse.LongPulse, pulse.LongPulse)
	for i := 0; i < 8; i++ {
		e.Bit(false)
	}
	dec.Pulses(e.Pulses())
	test.ExpectEquality(t, dec.PulseErrors, 1)

	// bad checksum
	dec = newDecoder()
	e = encoding.NewEncoder()
	e.Bytes(encoding.FirstSync)
	e.Bytes([]byte{0x01, 0x02})
	e.Byte(0x00)
	dec.Pulses(e.Pulses())
	dec.Flush()
	test.ExpectEquality(t, dec.ChecksumErrors, 1)
	test.DemandEquality(t, len(dec.Blocks()), 1)
	test.ExpectFailure(t, dec.Blocks()[0].Valid)
}

func TestFilesPreferValidRepeat(t *testing.T) {
	f := encoding.File{Type: encoding.AbsoluteProgram, Start: 0x1000, End: 0x1002, Name: "PAIR"}
	hdr := f.Header()

	blocks := []encoding.Block{
		{Data: hdr, Valid: true},
		{Data: hdr, Repeat: true, Valid: true},
		{Data: []byte{0xde, 0xad}, Valid: false},
		{Data: []byte{0xbe, 0xef}, Repeat: true, Valid: true},
	}

	files := encoding.Files(blocks)
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0].Name, "PAIR")
	test.ExpectSuccess(t, bytes.Equal(files[0].Data, []byte{0xbe, 0xef}))
}
