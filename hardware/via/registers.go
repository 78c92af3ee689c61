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

import (
	"fmt"
	"strings"
)

// Register is the offset of a VIA register within its sixteen register window.
type Register uint16

// List of valid Register values.
const (
	ORB Register = iota
	ORA
	DDRB
	DDRA
	T1CL
	T1CH
	T1LL
	T1LH
	T2CL
	T2CH
	SR
	ACR
	PCR
	IFR
	IER
	ORANH

	NumRegisters
)

// RegisterNames is a list of all possible string representations of the
// Register type. The list is indexed by Register value.
var RegisterNames = []string{
	"ORB", "ORA", "DDRB", "DDRA",
	"T1C-L", "T1C-H", "T1L-L", "T1L-H",
	"T2C-L", "T2C-H", "SR", "ACR",
	"PCR", "IFR", "IER", "ORA(NH)",
}

func (r Register) String() string {
	if r < NumRegisters {
		return RegisterNames[r]
	}
	return fmt.Sprintf("%#02x", uint16(r))
}

// UndefinedRegister is returned when a register offset outside of the window
// is read or written. It always indicates a mismatch between the address
// decoder and the chip.
const UndefinedRegister = "via: undefined register: %v"

// Bits in the interrupt-flag and interrupt-enable registers.
const (
	IntCA2 uint8 = 0x01
	IntCA1 uint8 = 0x02
	IntSR  uint8 = 0x04
	IntCB2 uint8 = 0x08
	IntCB1 uint8 = 0x10
	IntT2  uint8 = 0x20
	IntT1  uint8 = 0x40

	// bit 7 of IFR is derived. it is never stored
	IntAny uint8 = 0x80
)

// Bits in the auxiliary-control register.
const (
	ACRLatchA       uint8 = 0x01
	ACRLatchB       uint8 = 0x02
	ACRShiftMask    uint8 = 0x1c
	ACRT2Count      uint8 = 0x20
	ACRT1Continuous uint8 = 0x40
	ACRT1PB7        uint8 = 0x80
)

// Port is the register storage for one of the two ports.
type Port struct {
	// output latch. written by the CPU
	Output uint8

	// input latch. updated from Pins on the active edge of the port's
	// control line, when latching is enabled in the ACR
	Input uint8

	// live levels of the external pins as driven by the outside world
	Pins uint8

	// direction register. a 1 bit indicates an output
	DDR uint8
}

// Visible returns the state of the port as observed from outside the chip.
// Output bits show the output latch and input bits show whatever the outside
// world is driving.
func (p Port) Visible() uint8 {
	return (p.Output & p.DDR) | (p.Pins &^ p.DDR)
}

// Timer is the register storage for one of the two timers. Timer 2 only has
// a low latch. The high half of the Latch field is unused for timer 2.
type Timer struct {
	Counter uint16
	Latch   uint16
}

// Registers is the register file of the VIA.
type Registers struct {
	A Port
	B Port

	T1 Timer
	T2 Timer

	SR  uint8
	ACR uint8
	PCR uint8

	// IFR does not hold bit 7. Use the Flags() function to get the value
	// as seen by the CPU
	IFR uint8

	// IER does not hold bit 7
	IER uint8
}

// Flags returns the value of the interrupt-flag register. Bit 7 is set if any
// other flag bit is set and enabled.
func (r Registers) Flags() uint8 {
	f := r.IFR & ^IntAny
	if f&r.IER != 0 {
		f |= IntAny
	}
	return f
}

// Enabled returns the value of the interrupt-enable register as seen by the
// CPU. Bit 7 always reads as 1.
func (r Registers) Enabled() uint8 {
	return r.IER | IntAny
}

// setEnable implements the peculiar write behaviour of the interrupt-enable
// register. Bit 7 of the value decides whether the other bits that are set
// are enabled or disabled.
func (r *Registers) setEnable(data uint8) {
	if data&IntAny == IntAny {
		r.IER |= data & ^IntAny
	} else {
		r.IER &= ^data
	}
	r.IER &= ^IntAny
}

func (r Registers) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("PA=%02x DDRA=%02x PB=%02x DDRB=%02x", r.A.Visible(), r.A.DDR, r.B.Visible(), r.B.DDR))
	s.WriteString(fmt.Sprintf(" T1=%04x/%04x T2=%04x/%02x", r.T1.Counter, r.T1.Latch, r.T2.Counter, uint8(r.T2.Latch)))
	s.WriteString(fmt.Sprintf(" SR=%02x ACR=%02x PCR=%02x IFR=%02x IER=%02x", r.SR, r.ACR, r.PCR, r.Flags(), r.Enabled()))
	return s.String()
}
