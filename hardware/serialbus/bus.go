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

package serialbus

import (
	"fmt"
	"strings"
)

// Bus connects a number of endpoints.
type Bus struct {
	endpoints []*Endpoint
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ATN=%s CLK=%s DATA=%s", level(b.ATN()), level(b.Clock()), level(b.Data())))
	for _, e := range b.endpoints {
		s.WriteString(fmt.Sprintf(" [%d: %s]", e.address, e.contribution()))
	}
	return s.String()
}

func level(asserted bool) string {
	if asserted {
		return "lo"
	}
	return "hi"
}

// Attach a device to the bus. The address is the primary address of the
// device and is not used by the bus itself.
func (b *Bus) Attach(port Port, pins PinMap, address int) *Endpoint {
	e := &Endpoint{
		bus:     b,
		port:    port,
		pins:    pins,
		address: address,
	}
	b.endpoints = append(b.endpoints, e)
	return e
}

// Endpoints returns the endpoints attached to the bus, in the order they were
// attached.
func (b *Bus) Endpoints() []*Endpoint {
	return b.endpoints
}

// Data returns true if any device is asserting the DATA line.
func (b *Bus) Data() bool {
	for _, e := range b.endpoints {
		if e.data {
			return true
		}
	}
	return false
}

// Clock returns true if any device is asserting the CLK line.
func (b *Bus) Clock() bool {
	for _, e := range b.endpoints {
		if e.clock {
			return true
		}
	}
	return false
}

// ATN returns true if any device is asserting the ATN line.
func (b *Bus) ATN() bool {
	for _, e := range b.endpoints {
		if e.atn {
			return true
		}
	}
	return false
}

// Step every endpoint. All outputs are collected before any device senses the
// bus so that the result does not depend on the order of attachment.
func (b *Bus) Step() error {
	for _, e := range b.endpoints {
		e.drive()
	}

	// the ATN acknowledge of a device depends on the ATN line driven by the
	// other devices
	for _, e := range b.endpoints {
		e.acknowledge()
	}

	for _, e := range b.endpoints {
		if err := e.sense(); err != nil {
			return err
		}
	}
	return nil
}
