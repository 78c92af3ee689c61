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

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/signals"
)

// PortID identifies one of the two ports.
type PortID int

// List of valid PortID values.
const (
	PortA PortID = iota
	PortB
)

func (p PortID) String() string {
	if p == PortA {
		return "PA"
	}
	return "PB"
}

// ControlLine identifies one of the four control lines.
type ControlLine int

// List of valid ControlLine values.
const (
	CA1 ControlLine = iota
	CA2
	CB1
	CB2
)

func (l ControlLine) String() string {
	switch l {
	case CA1:
		return "CA1"
	case CA2:
		return "CA2"
	case CB1:
		return "CB1"
	case CB2:
		return "CB2"
	}
	panic("unknown control line")
}

// Listener implementations are notified of changes to the externally visible
// state of the chip. An error returned by a Listener is returned by the VIA
// function that caused the change.
type Listener interface {
	// the visible state of a port has changed
	PortChanged(port PortID, value uint8) error

	// the output level of CA2 or CB2 has changed
	ControlChanged(line ControlLine, level bool) error
}

// VIA is the Versatile Interface Adapter.
type VIA struct {
	env *environment.Environment

	// the label is used to identify the chip when pulling the IRQ line and
	// when logging
	label string
	irq   signals.Interrupter

	Registers

	// the timer 1 and timer 2 counters only count while running. a one-shot
	// timer stops running once it has fired
	t1Running bool
	t2Running bool

	// the level of PB7 when it is under the control of timer 1
	pb7 bool

	// state of the IRQ line the last time it was updated
	irqActive bool

	// input levels of the control lines
	ca1, ca2, cb1, cb2 bool

	// output levels of CA2 and CB2. a pulse is restored on the next call to
	// Step()
	ca2Out, cb2Out     bool
	ca2Pulse, cb2Pulse bool

	shifter shifter

	listeners []Listener

	// the most recent values reported to listeners
	reportedA, reportedB uint8
	reportedCA2          bool
	reportedCB2          bool
}

// NewVIA is the preferred method of initialisation for the VIA type. The irq
// argument can be nil if the interrupt line of the chip is not connected.
func NewVIA(env *environment.Environment, label string, irq signals.Interrupter) *VIA {
	v := &VIA{
		env:   env,
		label: label,
		irq:   irq,
	}

	// control line inputs are pulled high when nothing drives them
	v.ca1 = true
	v.ca2 = true
	v.cb1 = true
	v.cb2 = true

	// all pins float high until driven
	v.A.Pins = 0xff
	v.B.Pins = 0xff

	v.reset()

	// there are no listeners yet. start from the state after reset
	v.reportedA, v.reportedB = v.PortA(), v.PortB()
	v.reportedCA2, v.reportedCB2 = v.CA2(), v.CB2()

	return v
}

// Label returns the label given to the VIA on creation.
func (v *VIA) Label() string {
	return v.label
}

func (v *VIA) String() string {
	return fmt.Sprintf("%s: %s", v.label, v.Registers.String())
}

// AttachListener adds a listener to the chip. The listener is immediately
// notified of the current state of both ports and both output control lines.
func (v *VIA) AttachListener(l Listener) error {
	v.listeners = append(v.listeners, l)

	if err := l.PortChanged(PortA, v.PortA()); err != nil {
		return err
	}
	if err := l.PortChanged(PortB, v.PortB()); err != nil {
		return err
	}
	if err := l.ControlChanged(CA2, v.CA2()); err != nil {
		return err
	}
	return l.ControlChanged(CB2, v.CB2())
}

// Reset the chip to its power-on state. The port, direction, control and
// interrupt registers are cleared. Timer counters and latches are left alone
// but the timers are stopped. Listeners are notified of the new state of the
// ports and control lines.
func (v *VIA) Reset() error {
	v.reset()
	return v.notify()
}

func (v *VIA) reset() {
	v.A.Output = 0
	v.A.DDR = 0
	v.B.Output = 0
	v.B.DDR = 0
	v.ACR = 0
	v.PCR = 0
	v.IFR = 0
	v.IER = 0
	v.t1Running = false
	v.t2Running = false
	v.pb7 = true
	v.ca2Out = true
	v.cb2Out = true
	v.ca2Pulse = false
	v.cb2Pulse = false
	v.shifter = shifter{}

	v.updateIRQ()
}

// updateIRQ must be called after every change to the IFR or IER registers.
func (v *VIA) updateIRQ() {
	active := v.Flags()&IntAny == IntAny
	if active != v.irqActive {
		v.irqActive = active
		if v.irq != nil {
			v.irq.SetIRQ(v.label, active)
		}
	}
}

// setFlag sets bits in the IFR register.
func (v *VIA) setFlag(bits uint8) {
	v.IFR |= bits & ^IntAny
	v.updateIRQ()
}

// clearFlag clears bits in the IFR register.
func (v *VIA) clearFlag(bits uint8) {
	v.IFR &= ^bits
	v.updateIRQ()
}

// IRQ returns true if the chip is currently pulling the interrupt line.
func (v *VIA) IRQ() bool {
	return v.irqActive
}

// notify listeners of any change to the visible state of the chip.
func (v *VIA) notify() error {
	a := v.PortA()
	b := v.PortB()
	ca2 := v.CA2()
	cb2 := v.CB2()

	if a != v.reportedA {
		v.reportedA = a
		for _, l := range v.listeners {
			if err := l.PortChanged(PortA, a); err != nil {
				return err
			}
		}
	}

	if b != v.reportedB {
		v.reportedB = b
		for _, l := range v.listeners {
			if err := l.PortChanged(PortB, b); err != nil {
				return err
			}
		}
	}

	if ca2 != v.reportedCA2 {
		v.reportedCA2 = ca2
		for _, l := range v.listeners {
			if err := l.ControlChanged(CA2, ca2); err != nil {
				return err
			}
		}
	}

	if cb2 != v.reportedCB2 {
		v.reportedCB2 = cb2
		for _, l := range v.listeners {
			if err := l.ControlChanged(CB2, cb2); err != nil {
				return err
			}
		}
	}

	return nil
}

// Peek returns the value of a register as the CPU would read it, but without
// any of the side effects of a real read.
func (v *VIA) Peek(reg Register) (uint8, error) {
	switch reg {
	case ORB:
		return v.readPortB(), nil
	case ORA, ORANH:
		return v.readPortA(), nil
	case DDRB:
		return v.B.DDR, nil
	case DDRA:
		return v.A.DDR, nil
	case T1CL:
		return uint8(v.T1.Counter), nil
	case T1CH:
		return uint8(v.T1.Counter >> 8), nil
	case T1LL:
		return uint8(v.T1.Latch), nil
	case T1LH:
		return uint8(v.T1.Latch >> 8), nil
	case T2CL:
		return uint8(v.T2.Counter), nil
	case T2CH:
		return uint8(v.T2.Counter >> 8), nil
	case SR:
		return v.Registers.SR, nil
	case ACR:
		return v.Registers.ACR, nil
	case PCR:
		return v.Registers.PCR, nil
	case IFR:
		return v.Flags(), nil
	case IER:
		return v.Enabled(), nil
	}

	return 0, curated.Errorf(UndefinedRegister, reg)
}

// Read a register. Reading some registers has side effects on the state of
// the chip.
func (v *VIA) Read(reg Register) (uint8, error) {
	data, err := v.Peek(reg)
	if err != nil {
		return 0, err
	}

	switch reg {
	case ORB:
		v.clearFlag(IntCB1)
		if !v.cb2Mode().independent() {
			v.clearFlag(IntCB2)
		}
	case ORA:
		v.clearFlag(IntCA1)
		if !v.ca2Mode().independent() {
			v.clearFlag(IntCA2)
		}
		v.handshakeA()
	case T1CL:
		v.clearFlag(IntT1)
	case T2CL, T2CH:
		v.clearFlag(IntT2)
	case SR:
		v.clearFlag(IntSR)
		v.shifter.restart()
	}

	return data, v.notify()
}

// Write a value to a register.
func (v *VIA) Write(reg Register, data uint8) error {
	switch reg {
	case ORB:
		v.B.Output = data
		v.clearFlag(IntCB1)
		if !v.cb2Mode().independent() {
			v.clearFlag(IntCB2)
		}
		v.handshakeB()
	case ORA:
		v.A.Output = data
		v.clearFlag(IntCA1)
		if !v.ca2Mode().independent() {
			v.clearFlag(IntCA2)
		}
		v.handshakeA()
	case ORANH:
		v.A.Output = data
	case DDRB:
		v.B.DDR = data
	case DDRA:
		v.A.DDR = data
	case T1CL, T1LL:
		v.T1.Latch = (v.T1.Latch & 0xff00) | uint16(data)
	case T1CH:
		v.T1.Latch = (v.T1.Latch & 0x00ff) | (uint16(data) << 8)
		v.loadT1()
	case T1LH:
		// the counter is only loaded by a write to T1CH
		v.T1.Latch = (v.T1.Latch & 0x00ff) | (uint16(data) << 8)
		v.clearFlag(IntT1)
	case T2CL:
		v.T2.Latch = uint16(data)
	case T2CH:
		v.loadT2(data)
	case SR:
		v.Registers.SR = data
		v.clearFlag(IntSR)
		v.shifter.restart()
	case ACR:
		v.writeACR(data)
	case PCR:
		v.writePCR(data)
	case IFR:
		// writing a 1 to a flag bit clears the flag
		v.clearFlag(data & ^IntAny)
	case IER:
		v.setEnable(data)
		v.updateIRQ()
	default:
		return curated.Errorf(UndefinedRegister, reg)
	}

	return v.notify()
}

// Step the chip forward one CPU cycle.
func (v *VIA) Step() error {
	if v.ca2Pulse {
		v.ca2Pulse = false
		v.ca2Out = true
	}
	if v.cb2Pulse {
		v.cb2Pulse = false
		v.cb2Out = true
	}

	v.stepT1()
	v.stepT2()
	v.stepShifter()

	return v.notify()
}
