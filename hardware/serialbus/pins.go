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

// Port is the I/O port of a device attached to the bus.
type Port interface {
	// the externally visible state of the port
	Output() uint8

	// drive the input pins of the port. only the bits in the mask are
	// changed
	SetInput(mask uint8, value uint8) error
}

// PinMap describes how the bits of a port are connected to the bus. A zero
// mask means the line is not connected in that direction.
type PinMap struct {
	// output bits. a 1 in the output bit asserts the line
	DataOut  uint8
	ClockOut uint8
	ATNOut   uint8

	// input bits
	DataIn  uint8
	ClockIn uint8
	ATNIn   uint8

	// input bits read 1 when the line is electrically high (ie. not
	// asserted). if false, input bits read 1 when the line is asserted
	InvertedInputs bool

	// the ATN acknowledge output. when ATN and the acknowledge bit differ the
	// DATA line is asserted by the hardware without involving the CPU
	ATNAck uint8
}

// DrivePins is the mapping of VIA1 port B in the 1541.
var DrivePins = PinMap{
	DataIn:   0x01,
	DataOut:  0x02,
	ClockIn:  0x04,
	ClockOut: 0x08,
	ATNAck:   0x10,
	ATNIn:    0x80,
}

// ComputerPins is the mapping of CIA2 port A in the C64. The computer does not
// sense the ATN line.
var ComputerPins = PinMap{
	ATNOut:         0x08,
	ClockOut:       0x10,
	DataOut:        0x20,
	ClockIn:        0x40,
	DataIn:         0x80,
	InvertedInputs: true,
}

func (p PinMap) inputMask() uint8 {
	return p.DataIn | p.ClockIn | p.ATNIn
}

// Latch is a simple implementation of the Port interface. Useful for devices
// where the port is driven directly, rather than through an emulated chip.
type Latch struct {
	Out uint8
	In  uint8
}

// Output implements the Port interface.
func (l *Latch) Output() uint8 {
	return l.Out
}

// SetInput implements the Port interface.
func (l *Latch) SetInput(mask uint8, value uint8) error {
	l.In = (l.In &^ mask) | (value & mask)
	return nil
}
