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

package wavwriter_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/encoding"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/soundload"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
	"github.com/gopher1541/gopher1541/test"
	"github.com/gopher1541/gopher1541/wavwriter"
)

func newEnv() *environment.Environment {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Prefs.Quiet = true
	return env
}

func TestRender(t *testing.T) {
	env := newEnv()
	aw := wavwriter.New(env)

	pulses := pulse.Repeat(pulse.ShortPulse, 1000)
	aw.Render(pulses)

	expected := pulse.Duration(pulses) * env.Prefs.SampleRate / env.Prefs.ClockHz
	test.ExpectEquality(t, aw.Samples(), expected)
}

// audio written by the wavwriter and read back by the soundload package must
// decode to the original file
func TestSoundRoundTrip(t *testing.T) {
	env := newEnv()

	c := &t64.Container{
		Entries: []t64.Entry{
			{Start: 0x0801, End: 0x0803, Name: "TEST", Data: []byte{0x01, 0x02}},
		},
	}

	aw := wavwriter.New(env)
	aw.Render(encoding.EncodeT64(c, 200))

	fn := filepath.Join(t.TempDir(), "test.wav")
	test.DemandSuccess(t, aw.WriteFile(fn))

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	pcm, err := soundload.Decode(env, f, soundload.WAV)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(pcm.SampleRate), env.Prefs.SampleRate)
	test.ExpectEquality(t, len(pcm.Data), aw.Samples())

	dec := encoding.NewDecoder(env)
	dec.Pulses(soundload.Pulses(env, pcm))
	dec.Flush()
	test.ExpectEquality(t, dec.ChecksumErrors, 0)
	test.ExpectEquality(t, dec.PulseErrors, 0)

	files := dec.Files()
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0].Name, "TEST")
	test.ExpectEquality(t, files[0].Start, 0x0801)
	test.ExpectSuccess(t, bytes.Equal(files[0].Data, []byte{0x01, 0x02}))
}
