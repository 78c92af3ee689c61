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

package tape_test

import (
	"bytes"
	"testing"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape"
	"github.com/gopher1541/gopher1541/hardware/tape/encoding"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
	"github.com/gopher1541/gopher1541/hardware/tape/tap"
	"github.com/gopher1541/gopher1541/test"
)

func newEnv() *environment.Environment {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Prefs.Quiet = true
	env.Prefs.PilotLength = 64
	return env
}

func t64Data(t *testing.T) []byte {
	t.Helper()
	c := &t64.Container{
		Entries: []t64.Entry{
			{Start: 0x0801, Name: "TEST", Data: []byte{0x01, 0x02}},
		},
	}
	var b bytes.Buffer
	_, err := c.WriteTo(&b)
	test.DemandSuccess(t, err)
	return b.Bytes()
}

func TestNoTape(t *testing.T) {
	d := tape.NewDatasette(newEnv())
	test.ExpectFailure(t, d.Loaded())
	test.ExpectEquality(t, d.Format(), tape.NoTape)

	d.Play()
	d.SetMotor(true)
	test.ExpectFailure(t, d.Sense())
	for i := 0; i < 1000; i++ {
		test.DemandFailure(t, d.Step())
		test.DemandFailure(t, d.Signal())
	}
	test.ExpectEquality(t, d.Counter(), 0)
}

func TestInsert(t *testing.T) {
	d := tape.NewDatasette(newEnv())

	err := d.Insert([]byte("not a tape"))
	test.ExpectSuccess(t, curated.Is(err, tape.UnrecognisedFormat))
	test.ExpectFailure(t, d.Loaded())

	err = d.Insert(t64Data(t))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Format(), tape.T64)
	for i := 0; i < 64; i++ {
		test.DemandEquality(t, d.Pulses()[i], pulse.ShortPulse, i)
	}

	var b bytes.Buffer
	_, err = tap.FromPulses(pulse.Repeat(pulse.MediumPulse, 10)).WriteTo(&b)
	test.DemandSuccess(t, err)
	err = d.Insert(b.Bytes())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Format(), tape.TAP)
	test.ExpectEquality(t, len(d.Pulses()), 10)

	// a damaged TAP container. the previous tape is ejected
	err = d.Insert([]byte(tap.Magic))
	test.ExpectSuccess(t, curated.Has(err, tap.Truncated))
	test.ExpectFailure(t, d.Loaded())

	d.InsertPulses(pulse.Repeat(pulse.LongPulse, 3))
	test.ExpectEquality(t, d.Format(), tape.Recording)
	d.Eject()
	test.ExpectFailure(t, d.Loaded())
	test.ExpectEquality(t, d.Format(), tape.NoTape)
}

func TestMotorAndPlay(t *testing.T) {
	d := tape.NewDatasette(newEnv())
	d.InsertPulses(pulse.Repeat(pulse.ShortPulse, 4))

	// not playing
	d.SetMotor(true)
	for i := 0; i < pulse.ShortCycles; i++ {
		d.Step()
	}
	test.ExpectEquality(t, d.Counter(), 0)

	// playing but the motor is off
	d.Play()
	test.ExpectSuccess(t, d.Sense())
	d.SetMotor(false)
	for i := 0; i < pulse.ShortCycles; i++ {
		d.Step()
	}
	test.ExpectEquality(t, d.Counter(), 0)

	d.SetMotor(true)
	var ended int
	for i := 0; i < pulse.ShortCycles*2; i++ {
		if d.Step() {
			ended++
		}
	}
	test.ExpectEquality(t, ended, 2)
	test.ExpectEquality(t, d.Counter(), 2)

	d.Stop()
	test.ExpectFailure(t, d.Sense())
	d.Rewind()
	test.ExpectEquality(t, d.Counter(), 0)
}

func TestEndOfTape(t *testing.T) {
	d := tape.NewDatasette(newEnv())
	d.InsertPulses(pulse.Repeat(pulse.ShortPulse, 2))
	d.Play()
	d.SetMotor(true)

	for i := 0; i < pulse.ShortCycles*2; i++ {
		d.Step()
	}
	test.ExpectSuccess(t, d.Playing())

	d.Step()
	test.ExpectFailure(t, d.Playing())
	test.ExpectFailure(t, d.Signal())
	test.ExpectEquality(t, d.Counter(), 2)
}

func TestPlayback(t *testing.T) {
	d := tape.NewDatasette(newEnv())
	test.DemandSuccess(t, d.Insert(t64Data(t)))
	d.Play()
	d.SetMotor(true)

	env := newEnv()
	dec := encoding.NewDecoder(env)
	for d.Playing() {
		d.Step()
		dec.Step(d.Signal())
	}
	dec.Flush()

	files := dec.Files()
	test.DemandEquality(t, len(files), 1)
	test.ExpectEquality(t, files[0].Name, "TEST")
	test.ExpectSuccess(t, bytes.Equal(files[0].Data, []byte{0x01, 0x02}))
}
