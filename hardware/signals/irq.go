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

package signals

import (
	"fmt"
	"sort"
	"strings"
)

// IRQ is a wired-OR interrupt line. Each source pulls the line independently
// and the line is active while at least one source is pulling it.
//
// The optional Changed function is called whenever the combined state of the
// line changes.
type IRQ struct {
	sources map[string]bool
	active  bool

	Changed func(active bool)
}

// NewIRQ is the preferred method of initialisation for the IRQ type.
func NewIRQ() *IRQ {
	return &IRQ{
		sources: make(map[string]bool),
	}
}

func (irq *IRQ) String() string {
	s := make([]string, 0, len(irq.sources))
	for k, v := range irq.sources {
		if v {
			s = append(s, k)
		}
	}
	if len(s) == 0 {
		return "IRQ: inactive"
	}
	sort.Strings(s)
	return fmt.Sprintf("IRQ: active (%s)", strings.Join(s, ", "))
}

// SetIRQ implements the Interrupter interface.
func (irq *IRQ) SetIRQ(source string, active bool) {
	irq.sources[source] = active

	combined := false
	for _, v := range irq.sources {
		if v {
			combined = true
			break
		}
	}

	if combined != irq.active {
		irq.active = combined
		if irq.Changed != nil {
			irq.Changed(combined)
		}
	}
}

// Active returns true if any source is pulling the line.
func (irq *IRQ) Active() bool {
	return irq.active
}

// Source returns the state of a single source.
func (irq *IRQ) Source(source string) bool {
	return irq.sources[source]
}
