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

import "strings"

// Endpoint is the connection of a single device to the bus.
type Endpoint struct {
	bus     *Bus
	port    Port
	pins    PinMap
	address int

	// the lines being asserted by this device
	data  bool
	clock bool
	atn   bool
}

func (e *Endpoint) contribution() string {
	s := strings.Builder{}
	if e.atn {
		s.WriteString("ATN ")
	}
	if e.clock {
		s.WriteString("CLK ")
	}
	if e.data {
		s.WriteString("DATA ")
	}
	if s.Len() == 0 {
		return "-"
	}
	return strings.TrimSpace(s.String())
}

// Step the endpoint. The device's outputs are applied to the bus and the
// state of the bus is written to the device's inputs.
//
// When more than one device is attached, Bus.Step() should be preferred.
func (e *Endpoint) Step() error {
	e.drive()
	e.acknowledge()
	return e.sense()
}

// drive reads the output bits of the port.
func (e *Endpoint) drive() {
	out := e.port.Output()
	e.data = e.pins.DataOut != 0 && out&e.pins.DataOut != 0
	e.clock = e.pins.ClockOut != 0 && out&e.pins.ClockOut != 0
	e.atn = e.pins.ATNOut != 0 && out&e.pins.ATNOut != 0
}

// acknowledge asserts DATA if the ATN acknowledge bit does not match the ATN
// line.
func (e *Endpoint) acknowledge() {
	if e.pins.ATNAck == 0 {
		return
	}
	ack := e.port.Output()&e.pins.ATNAck != 0
	if ack != e.bus.ATN() {
		e.data = true
	}
}

// sense writes the state of the bus to the input bits of the port.
func (e *Endpoint) sense() error {
	var v uint8
	if e.bus.Data() {
		v |= e.pins.DataIn
	}
	if e.bus.Clock() {
		v |= e.pins.ClockIn
	}
	if e.bus.ATN() {
		v |= e.pins.ATNIn
	}

	mask := e.pins.inputMask()
	if e.pins.InvertedInputs {
		v ^= mask
	}

	return e.port.SetInput(mask, v)
}

// Data returns true if the DATA line is asserted by any device.
func (e *Endpoint) Data() bool {
	return e.bus.Data()
}

// Clock returns true if the CLK line is asserted by any device.
func (e *Endpoint) Clock() bool {
	return e.bus.Clock()
}

// ATN returns true if the ATN line is asserted by any device.
func (e *Endpoint) ATN() bool {
	return e.bus.ATN()
}

// PrimaryAddress returns the address given to the endpoint when it was
// attached.
func (e *Endpoint) PrimaryAddress() int {
	return e.address
}

// IsDataTransferActive returns true if a byte is being transferred between
// devices. That is, ATN is released and either CLK or DATA is asserted.
func (e *Endpoint) IsDataTransferActive() bool {
	return !e.bus.ATN() && (e.bus.Clock() || e.bus.Data())
}

// Asserting returns the lines that this endpoint is asserting.
func (e *Endpoint) Asserting() (atn bool, clock bool, data bool) {
	return e.atn, e.clock, e.data
}
