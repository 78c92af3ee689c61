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

// ControlMode is the configuration of the CA2 or CB2 control line as selected
// by the peripheral-control register.
type ControlMode int

// List of valid ControlMode values.
const (
	// the line is an input. a falling edge sets the flag
	InputNegative ControlMode = iota

	// as InputNegative but reading or writing the port does not clear the
	// flag
	IndependentNegative

	// the line is an input. a rising edge sets the flag
	InputPositive

	// as InputPositive but reading or writing the port does not clear the
	// flag
	IndependentPositive

	// the line goes low on port access and returns high on the active edge
	// of CA1/CB1
	Handshake

	// the line goes low for one cycle on port access
	Pulse

	// the line is held low
	ManualLow

	// the line is held high
	ManualHigh
)

var controlModeNames = []string{
	"input (-)", "independent (-)", "input (+)", "independent (+)",
	"handshake", "pulse", "low", "high",
}

func (m ControlMode) String() string {
	return controlModeNames[m&0x07]
}

func (m ControlMode) input() bool {
	return m <= IndependentPositive
}

func (m ControlMode) independent() bool {
	return m == IndependentNegative || m == IndependentPositive
}

func (m ControlMode) positive() bool {
	return m == InputPositive || m == IndependentPositive
}

func (v *VIA) ca2Mode() ControlMode {
	return ControlMode((v.Registers.PCR >> 1) & 0x07)
}

func (v *VIA) cb2Mode() ControlMode {
	return ControlMode((v.Registers.PCR >> 5) & 0x07)
}

// CA2Mode returns the current configuration of the CA2 line.
func (v *VIA) CA2Mode() ControlMode {
	return v.ca2Mode()
}

// CB2Mode returns the current configuration of the CB2 line.
func (v *VIA) CB2Mode() ControlMode {
	return v.cb2Mode()
}

func (v *VIA) ca1Positive() bool {
	return v.Registers.PCR&0x01 == 0x01
}

func (v *VIA) cb1Positive() bool {
	return v.Registers.PCR&0x10 == 0x10
}

func (v *VIA) writePCR(data uint8) {
	ca2 := v.ca2Mode()
	cb2 := v.cb2Mode()
	v.Registers.PCR = data
	if ca2 != v.ca2Mode() {
		v.ca2Out = true
		v.ca2Pulse = false
	}
	if cb2 != v.cb2Mode() {
		v.cb2Out = true
		v.cb2Pulse = false
	}
}

// CA2 returns the output level of the CA2 line. The line reads as high when it
// is configured as an input.
func (v *VIA) CA2() bool {
	return controlOutput(v.ca2Mode(), v.ca2Out)
}

// CB2 returns the output level of the CB2 line. The line reads as high when it
// is configured as an input, unless the shift register is shifting out.
func (v *VIA) CB2() bool {
	if v.shiftMode().out() {
		return v.shifter.out
	}
	return controlOutput(v.cb2Mode(), v.cb2Out)
}

func controlOutput(mode ControlMode, out bool) bool {
	switch mode {
	case Handshake, Pulse:
		return out
	case ManualLow:
		return false
	}
	return true
}

func (v *VIA) handshakeA() {
	switch v.ca2Mode() {
	case Handshake:
		v.ca2Out = false
	case Pulse:
		v.ca2Out = false
		v.ca2Pulse = true
	}
}

func (v *VIA) handshakeB() {
	switch v.cb2Mode() {
	case Handshake:
		v.cb2Out = false
	case Pulse:
		v.cb2Out = false
		v.cb2Pulse = true
	}
}

func activeEdge(positive bool, prev bool, level bool) bool {
	if positive {
		return !prev && level
	}
	return prev && !level
}

// SetCA1 drives the CA1 input line.
func (v *VIA) SetCA1(level bool) error {
	prev := v.ca1
	v.ca1 = level
	if activeEdge(v.ca1Positive(), prev, level) {
		if v.Registers.ACR&ACRLatchA == ACRLatchA {
			v.A.Input = v.A.Pins
		}
		if v.ca2Mode() == Handshake {
			v.ca2Out = true
		}
		v.setFlag(IntCA1)
	}
	return v.notify()
}

// SetCA2 drives the CA2 line. The level is ignored unless CA2 is configured as
// an input.
func (v *VIA) SetCA2(level bool) error {
	prev := v.ca2
	v.ca2 = level
	mode := v.ca2Mode()
	if mode.input() && activeEdge(mode.positive(), prev, level) {
		v.setFlag(IntCA2)
	}
	return v.notify()
}

// SetCB1 drives the CB1 input line. When the shift register is clocked
// externally, a rising edge on CB1 shifts one bit.
func (v *VIA) SetCB1(level bool) error {
	prev := v.cb1
	v.cb1 = level
	if activeEdge(v.cb1Positive(), prev, level) {
		if v.Registers.ACR&ACRLatchB == ACRLatchB {
			v.B.Input = v.B.Pins
		}
		if v.cb2Mode() == Handshake {
			v.cb2Out = true
		}
		v.setFlag(IntCB1)
	}
	if !prev && level && v.shiftMode().external() {
		v.shift()
	}
	return v.notify()
}

// SetCB2 drives the CB2 line. The level is ignored unless CB2 is configured as
// an input. The level of CB2 is sampled by the shift register when shifting
// in.
func (v *VIA) SetCB2(level bool) error {
	prev := v.cb2
	v.cb2 = level
	mode := v.cb2Mode()
	if mode.input() && activeEdge(mode.positive(), prev, level) {
		v.setFlag(IntCB2)
	}
	return v.notify()
}
