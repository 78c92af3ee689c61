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

package drive

import "fmt"

// ModeKind identifies the current mode of the read/write circuitry.
type ModeKind int

// List of valid ModeKind values.
const (
	Read ModeKind = iota
	Write
)

func (k ModeKind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	panic("unknown drive mode")
}

// Mode is the state of the read/write circuitry. The counter is specific to
// the mode and is reset on every transition.
type Mode struct {
	Kind ModeKind

	// in read mode, the number of cycles until the next byte is assembled.
	// in write mode the counter is unused
	Counter int
}

func (m Mode) String() string {
	if m.Kind == Read {
		return fmt.Sprintf("%s (%d)", m.Kind, m.Counter)
	}
	return m.Kind.String()
}

// transition returns the mode state for the new kind. The mode is unchanged
// if the kind is the same as the current kind.
func (m Mode) transition(kind ModeKind, cyclesPerByte int) Mode {
	if m.Kind == kind {
		return m
	}
	switch kind {
	case Read:
		return Mode{Kind: Read, Counter: cyclesPerByte}
	default:
		return Mode{Kind: kind}
	}
}
