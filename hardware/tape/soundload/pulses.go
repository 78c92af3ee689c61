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

package soundload

import (
	"math"

	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/logger"
)

// Pulses recovers the tape pulses from a recording. Pulse lengths are in
// cycles of the clock given in the environment preferences.
func Pulses(env *environment.Environment, p PCM) []pulse.Pulse {
	if p.SampleRate == 0 {
		return nil
	}

	k := float64(env.Prefs.ClockHz) / p.SampleRate
	cycles := func(sample int) int {
		return int(math.Round(float64(sample) * k))
	}

	e := findEdges(p.Data)

	var pulses []pulse.Pulse
	var silences int

	// rising edge i is always before falling edge i
	for i := 1; i < len(e.falling); i++ {
		prev := cycles(e.falling[i-1])
		rise := cycles(e.rising[i])
		fall := cycles(e.falling[i])

		low := rise - prev
		high := fall - rise

		if low > high*gapRatio {
			pulses = append(pulses, pulse.Pulse{Kind: pulse.Silence, Cycles: low - high})
			pulses = append(pulses, pulse.NewCustom(high*2))
			silences++
			continue
		}

		pulses = append(pulses, pulse.NewCustom(fall-prev))
	}

	logger.Logf(env, "soundload", "%d pulses recovered (%d silences)", len(pulses), silences)

	return pulses
}
