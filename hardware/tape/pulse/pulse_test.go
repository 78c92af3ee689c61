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

package pulse_test

import (
	"testing"

	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/test"
)

func TestCanonical(t *testing.T) {
	test.ExpectEquality(t, pulse.ShortCycles, 384)
	test.ExpectEquality(t, pulse.MediumCycles, 528)
	test.ExpectEquality(t, pulse.LongCycles, 688)
	test.ExpectEquality(t, pulse.Duration(pulse.Repeat(pulse.ShortPulse, 10)), 3840)
}

func TestDutyCycle(t *testing.T) {
	for _, p := range []pulse.Pulse{pulse.ShortPulse, pulse.MediumPulse, pulse.LongPulse, pulse.NewCustom(101)} {
		g := pulse.NewGenerator([]pulse.Pulse{p})

		var high, toggles int
		prev := g.Signal()
		for i := 1; i <= p.Cycles; i++ {
			done := g.Step()
			if g.Signal() {
				high++
			}
			if g.Signal() != prev {
				toggles++
				prev = g.Signal()
			}
			test.ExpectEquality(t, done, i == p.Cycles, p, i)
		}

		test.ExpectEquality(t, toggles, 2, p)
		test.ExpectEquality(t, high, p.Cycles-p.Cycles/2, p)
		test.ExpectFailure(t, g.Signal(), p)
		test.ExpectSuccess(t, g.Exhausted(), p)
		test.ExpectEquality(t, g.Completed(), 1, p)
	}
}

func TestSilence(t *testing.T) {
	g := pulse.NewGenerator([]pulse.Pulse{pulse.ShortSilence})
	for i := 1; i <= pulse.ShortSilenceCycles; i++ {
		done := g.Step()
		test.DemandEquality(t, g.Signal(), false, i)
		test.DemandEquality(t, done, i == pulse.ShortSilenceCycles, i)
	}
}

func TestDefaultPulse(t *testing.T) {
	g := pulse.NewGenerator(nil)
	test.ExpectSuccess(t, g.Exhausted())

	var completed int
	for i := 0; i < pulse.ShortCycles*5; i++ {
		if g.Step() {
			completed++
		}
	}
	test.ExpectEquality(t, completed, 5)
	p, ok := g.Current()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, p.Kind, pulse.Short)
}

func TestSequence(t *testing.T) {
	seq := []pulse.Pulse{pulse.LongPulse, pulse.MediumPulse, pulse.ShortPulse}
	g := pulse.NewGenerator(seq)

	for i, p := range seq {
		for c := 0; c < p.Cycles; c++ {
			g.Step()
			cur, _ := g.Current()
			test.DemandEquality(t, cur.Kind, p.Kind, i, c)
		}
		test.ExpectEquality(t, g.Completed(), i+1)
	}

	g.Rewind()
	test.ExpectEquality(t, g.Position(), 0)
	test.ExpectFailure(t, g.Exhausted())
}
