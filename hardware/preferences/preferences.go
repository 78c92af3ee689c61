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

// Package preferences contains the single configuration structure for the
// emulated hardware. An instance is shared through the environment package and
// is read by components when they are constructed and, for the debugging
// switches, when they are stepped.
package preferences

import (
	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/clocks"
)

// Sentinal error returned by Validate().
const InvalidPreference = "preferences: %v"

// Preferences for the emulated hardware. Field tags are the keys used when
// the preferences are loaded from a configuration file.
type Preferences struct {
	// the speed of the computer's clock in Hz. used when converting tape
	// pulses to and from audio samples
	ClockHz int `mapstructure:"clock"`

	// the sample rate used when rendering tape audio
	SampleRate int `mapstructure:"samplerate"`

	// number of short pulses in the pilot tone that precedes the first entry
	// of an encoded tape
	PilotLength int `mapstructure:"pilot"`

	// log every movement of the drive head
	DebugStepper bool `mapstructure:"debug_stepper"`

	// log every byte assembled by the drive
	DebugBytes bool `mapstructure:"debug_bytes"`

	// log tape encoding and decoding events
	DebugTape bool `mapstructure:"debug_tape"`

	// suppress all logging
	Quiet bool `mapstructure:"quiet"`
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.ClockHz = clocks.PAL
	p.SampleRate = 44100
	p.PilotLength = 0x6a00
	p.DebugStepper = false
	p.DebugBytes = false
	p.DebugTape = false
	p.Quiet = false
}

// Validate checks that the preferences are usable.
func (p *Preferences) Validate() error {
	if p.ClockHz <= 0 {
		return curated.Errorf(InvalidPreference, "clock must be positive")
	}
	if p.SampleRate <= 0 {
		return curated.Errorf(InvalidPreference, "sample rate must be positive")
	}
	if p.PilotLength < 0 {
		return curated.Errorf(InvalidPreference, "pilot length cannot be negative")
	}
	return nil
}
