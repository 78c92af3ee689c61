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

package pulse

// Generator plays a sequence of pulses. Once the sequence is exhausted the
// generator plays short pulses indefinitely.
type Generator struct {
	queue []Pulse
	next  int

	current Pulse
	active  bool

	// true during the second half of the current pulse
	second bool

	// cycles left in the current half of the pulse
	remaining int

	// level of the signal at the start of the current pulse
	start bool

	signal bool

	// number of pulses completed, including the default pulses that are
	// played once the queue is exhausted
	completed int
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator(pulses []Pulse) *Generator {
	return &Generator{
		queue: pulses,
	}
}

// Signal returns the current level of the output.
func (g *Generator) Signal() bool {
	return g.signal
}

// Exhausted returns true if every pulse in the queue has been started.
func (g *Generator) Exhausted() bool {
	return g.next >= len(g.queue)
}

// Len returns the number of pulses in the queue.
func (g *Generator) Len() int {
	return len(g.queue)
}

// Position returns the index of the pulse that will be started next.
func (g *Generator) Position() int {
	return g.next
}

// Completed returns the number of pulses that have been completed.
func (g *Generator) Completed() int {
	return g.completed
}

// Current returns the pulse currently being played. Returns false if no
// pulse is active.
func (g *Generator) Current() (Pulse, bool) {
	return g.current, g.active
}

// Rewind the generator to the start of the queue. The signal returns to its
// starting level.
func (g *Generator) Rewind() {
	g.next = 0
	g.active = false
	g.signal = false
	g.completed = 0
}

func halves(cycles int) (int, int) {
	a := cycles / 2
	b := cycles - a
	if a < 1 {
		a = 1
	}
	if b < 1 {
		b = 1
	}
	return a, b
}

// Step the generator forward one cycle. Returns true if a pulse was completed
// during the cycle.
func (g *Generator) Step() bool {
	if !g.active {
		if g.next < len(g.queue) {
			g.current = g.queue[g.next]
			g.next++
		} else {
			g.current = ShortPulse
		}

		g.active = true
		g.second = false
		g.start = g.signal

		if g.current.Kind == Silence {
			g.remaining = max(g.current.Cycles, 1)
		} else {
			g.remaining, _ = halves(g.current.Cycles)
		}
	}

	g.remaining--
	if g.remaining > 0 {
		return false
	}

	if g.current.Kind == Silence {
		g.active = false
		g.completed++
		return true
	}

	g.signal = !g.signal

	if !g.second {
		g.second = true
		_, g.remaining = halves(g.current.Cycles)
		return false
	}

	g.active = false
	g.completed++
	return true
}
