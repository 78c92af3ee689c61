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

// Package wavwriter renders tape pulses as audio and writes the result to
// disk as a WAV file. Audio data is buffered in memory in its entirety and
// written in one go.
package wavwriter

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/logger"
)

// Level is the amplitude of the rendered signal.
const Level = 0x5000

const bitDepth = 16

// WavWriter renders pulses as 16bit mono samples.
type WavWriter struct {
	env    *environment.Environment
	buffer []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(env *environment.Environment) *WavWriter {
	return &WavWriter{
		env: env,
	}
}

// Samples returns the number of samples rendered so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// Render the pulses and add them to the buffer. The signal is sampled at the
// sample rate given by the environment preferences. Silences are rendered as
// a zero level.
func (aw *WavWriter) Render(pulses []pulse.Pulse) {
	clk := aw.env.Prefs.ClockHz
	sr := aw.env.Prefs.SampleRate

	g := pulse.NewGenerator(pulses)
	d := pulse.Duration(pulses)

	var acc int
	for i := 0; i < d; i++ {
		g.Step()

		acc += sr
		if acc < clk {
			continue
		}
		acc -= clk

		if p, ok := g.Current(); ok && p.Kind == pulse.Silence {
			aw.buffer = append(aw.buffer, 0)
		} else if g.Signal() {
			aw.buffer = append(aw.buffer, Level)
		} else {
			aw.buffer = append(aw.buffer, -Level)
		}
	}
}

// Write the buffer as a WAV file.
func (aw *WavWriter) Write(w io.WriteSeeker) error {
	sr := aw.env.Prefs.SampleRate

	enc := wav.NewEncoder(w, sr, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sr,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	err := enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// WriteFile writes the buffer to the named file.
func (aw *WavWriter) WriteFile(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	logger.Logf(aw.env, "wavwriter", "writing %d samples to %s", len(aw.buffer), filename)

	return aw.Write(f)
}
