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

package via

// readPortA returns the value of port A as read by the CPU. Output bits read
// the output latch. Input bits read either the live pins or the input latch,
// depending on whether latching is enabled.
func (v *VIA) readPortA() uint8 {
	in := v.A.Pins
	if v.Registers.ACR&ACRLatchA == ACRLatchA {
		in = v.A.Input
	}
	return (v.A.Output & v.A.DDR) | (in &^ v.A.DDR)
}

// readPortB is the same as readPortA except that PB7 reflects the timer 1
// output when PB7 output is enabled.
func (v *VIA) readPortB() uint8 {
	in := v.B.Pins
	if v.Registers.ACR&ACRLatchB == ACRLatchB {
		in = v.B.Input
	}
	data := (v.B.Output & v.B.DDR) | (in &^ v.B.DDR)
	if v.T1Mode().pb7() {
		data = v.applyPB7(data)
	}
	return data
}

func (v *VIA) applyPB7(data uint8) uint8 {
	if v.pb7 {
		return data | 0x80
	}
	return data & 0x7f
}

// PortA returns the visible state of port A.
func (v *VIA) PortA() uint8 {
	return v.A.Visible()
}

// PortB returns the visible state of port B.
func (v *VIA) PortB() uint8 {
	data := v.B.Visible()
	if v.T1Mode().pb7() {
		data = v.applyPB7(data)
	}
	return data
}

// SetPortAInput drives the external pins of port A. Only the bits in the mask
// are changed. Pins configured as outputs are also updated but the new level
// is not visible until the pin is configured as an input.
func (v *VIA) SetPortAInput(mask uint8, data uint8) error {
	v.A.Pins = (v.A.Pins &^ mask) | (data & mask)
	return v.notify()
}

// SetPortBInput drives the external pins of port B. See SetPortAInput().
//
// A falling edge on PB6 decrements timer 2 when it is in pulse-counting mode.
func (v *VIA) SetPortBInput(mask uint8, data uint8) error {
	pb6 := v.B.Pins & 0x40
	v.B.Pins = (v.B.Pins &^ mask) | (data & mask)
	if pb6 == 0x40 && v.B.Pins&0x40 == 0x00 {
		if v.T2Counting() && v.t2Running {
			v.decrementT2()
		}
	}
	return v.notify()
}
