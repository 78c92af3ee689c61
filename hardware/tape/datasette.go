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

package tape

import (
	"bytes"
	"fmt"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/encoding"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
	"github.com/gopher1541/gopher1541/hardware/tape/tap"
	"github.com/gopher1541/gopher1541/logger"
)

// UnrecognisedFormat is returned by Insert() when the data is neither a T64
// nor a TAP container.
const UnrecognisedFormat = "tape: unrecognised format"

// Format of the inserted tape.
type Format int

// List of valid Format values.
const (
	NoTape Format = iota
	T64
	TAP
	Recording
)

func (f Format) String() string {
	switch f {
	case NoTape:
		return "none"
	case T64:
		return "T64"
	case TAP:
		return "TAP"
	case Recording:
		return "recording"
	}
	return "unknown"
}

// Datasette is the cassette unit.
type Datasette struct {
	env *environment.Environment

	format Format
	pulses []pulse.Pulse
	gen    *pulse.Generator

	// the play button is pressed
	playing bool

	// the motor line from the computer
	motor bool
}

// NewDatasette is the preferred method of initialisation for the Datasette
// type.
func NewDatasette(env *environment.Environment) *Datasette {
	return &Datasette{
		env: env,
	}
}

func (d *Datasette) String() string {
	if d.gen == nil {
		return "no tape"
	}
	s := "stopped"
	if d.playing {
		s = "playing"
	}
	return fmt.Sprintf("%s tape: %s [%d/%d]", d.format, s, d.gen.Completed(), d.gen.Len())
}

// Insert a tape. The format is decided by the magic at the start of the data.
// Any tape already inserted is ejected first.
func (d *Datasette) Insert(data []byte) error {
	d.Eject()

	switch {
	case bytes.HasPrefix(data, []byte(tap.Magic)):
		c, err := tap.Parse(d.env, data)
		if err != nil {
			return curated.Errorf("tape: %v", err)
		}
		d.load(TAP, c.Pulses())

	case bytes.HasPrefix(data, []byte(t64.Magic)):
		c, err := t64.Parse(d.env, data)
		if err != nil {
			return curated.Errorf("tape: %v", err)
		}
		for _, ent := range c.Entries {
			logger.Logf(d.env, "tape", "t64 entry: %s (%04x -> %04x)", ent.Name, ent.Start, ent.End)
		}
		d.load(T64, encoding.EncodeT64(c, d.env.Prefs.PilotLength))

	default:
		return curated.Errorf(UnrecognisedFormat)
	}

	return nil
}

// InsertPulses inserts a tape made from an existing sequence of pulses.
func (d *Datasette) InsertPulses(pulses []pulse.Pulse) {
	d.Eject()
	d.load(Recording, pulses)
}

func (d *Datasette) load(f Format, pulses []pulse.Pulse) {
	d.format = f
	d.pulses = pulses
	d.gen = pulse.NewGenerator(pulses)
	logger.Logf(d.env, "tape", "inserted %s tape: %d pulses (%.02fs)", f, len(pulses),
		float64(pulse.Duration(pulses))/float64(d.env.Prefs.ClockHz))
}

// Eject the tape. The play button is released.
func (d *Datasette) Eject() {
	if d.gen != nil {
		logger.Log(d.env, "tape", "ejected")
	}
	d.format = NoTape
	d.pulses = nil
	d.gen = nil
	d.playing = false
}

// Loaded returns true if a tape is inserted.
func (d *Datasette) Loaded() bool {
	return d.gen != nil
}

// Format returns the format of the inserted tape.
func (d *Datasette) Format() Format {
	return d.format
}

// Pulses returns the pulses on the inserted tape.
func (d *Datasette) Pulses() []pulse.Pulse {
	return d.pulses
}

// Play presses the play button. Has no effect if there is no tape.
func (d *Datasette) Play() {
	if d.gen == nil {
		return
	}
	d.playing = true
}

// Stop releases the play button.
func (d *Datasette) Stop() {
	d.playing = false
}

// Playing returns true if the play button is pressed.
func (d *Datasette) Playing() bool {
	return d.playing
}

// Rewind the tape to the beginning. Rewinding is instantaneous.
func (d *Datasette) Rewind() {
	if d.gen == nil {
		return
	}
	d.gen.Rewind()
	logger.Log(d.env, "tape", "rewound")
}

// SetMotor sets the state of the motor line.
func (d *Datasette) SetMotor(on bool) {
	d.motor = on
}

// Motor returns the state of the motor line.
func (d *Datasette) Motor() bool {
	return d.motor
}

// Sense returns true if the play button is pressed. On the real hardware the
// sense line is pulled low in this case.
func (d *Datasette) Sense() bool {
	return d.playing
}

// Counter returns the number of pulses played.
func (d *Datasette) Counter() int {
	if d.gen == nil {
		return 0
	}
	return d.gen.Completed()
}

// Signal returns the level of the read line.
func (d *Datasette) Signal() bool {
	if d.gen == nil {
		return false
	}
	return d.gen.Signal()
}

// Step the tape forward one cycle. The tape moves only if the play button is
// pressed and the motor is on. Returns true if a pulse ended during the cycle.
//
// The play button is released at the end of the tape.
func (d *Datasette) Step() bool {
	if d.gen == nil || !d.playing || !d.motor {
		return false
	}

	if d.gen.Exhausted() {
		if _, ok := d.gen.Current(); !ok {
			d.playing = false
			logger.Log(d.env, "tape", "end of tape")
			return false
		}
	}

	return d.gen.Step()
}
