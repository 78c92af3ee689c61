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

package via_test

import (
	"errors"
	"testing"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/signals"
	"github.com/gopher1541/gopher1541/hardware/via"
	"github.com/gopher1541/gopher1541/test"
)

func newVIA(t *testing.T) (*via.VIA, *signals.IRQ) {
	t.Helper()
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	irq := signals.NewIRQ()
	return via.NewVIA(env, "VIA", irq), irq
}

// the write, read and step helpers check the IFR after every access

func write(t *testing.T, v *via.VIA, reg via.Register, data uint8) {
	t.Helper()
	test.DemandSuccess(t, v.Write(reg, data), reg)
	checkIFR(t, v)
}

func read(t *testing.T, v *via.VIA, reg via.Register) uint8 {
	t.Helper()
	data, err := v.Read(reg)
	test.DemandSuccess(t, err, reg)
	checkIFR(t, v)
	return data
}

func step(t *testing.T, v *via.VIA, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		test.DemandSuccess(t, v.Step())
		checkIFR(t, v)
	}
}

// the derived bit 7 of IFR must always agree with the other bits and with
// the interrupt line
func checkIFR(t *testing.T, v *via.VIA) {
	t.Helper()
	ifr, err := v.Peek(via.IFR)
	test.DemandSuccess(t, err)
	ier, err := v.Peek(via.IER)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ifr&0x80 == 0x80, ifr&ier&0x7f != 0, "IFR bit 7")
	test.ExpectEquality(t, ier&0x80, 0x80, "IER bit 7")
	test.ExpectEquality(t, v.IRQ(), ifr&0x80 == 0x80, "IRQ line")
}

func TestT1OneShotPeriod(t *testing.T) {
	for _, n := range []uint16{1, 2, 3, 10, 255, 256, 1000} {
		v, _ := newVIA(t)
		write(t, v, via.T1CL, uint8(n))
		write(t, v, via.T1CH, uint8(n>>8))

		step(t, v, int(n)-1)
		test.ExpectEquality(t, v.Flags()&via.IntT1, 0, n)
		step(t, v, 1)
		test.ExpectEquality(t, v.Flags()&via.IntT1, via.IntT1, n)
		test.ExpectFailure(t, v.T1Running(), n)
		test.ExpectEquality(t, v.T1.Counter, 0xffff, n)

		// one-shot timer does not fire again
		write(t, v, via.IFR, 0x7f)
		step(t, v, int(n)+1)
		test.ExpectEquality(t, v.Flags()&via.IntT1, 0, n)
		checkIFR(t, v)
	}
}

func TestT1ZeroLoad(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.T1CL, 0)
	write(t, v, via.T1CH, 0)
	step(t, v, 0xffff)
	test.ExpectEquality(t, v.Flags()&via.IntT1, 0)
	step(t, v, 1)
	test.ExpectEquality(t, v.Flags()&via.IntT1, via.IntT1)
}

func TestT1Continuous(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.ACR, via.ACRT1Continuous)
	test.ExpectEquality(t, v.T1Mode(), via.Continuous)
	write(t, v, via.T1CL, 5)
	write(t, v, via.T1CH, 0)

	for i := 0; i < 4; i++ {
		step(t, v, 4)
		test.ExpectEquality(t, v.Flags()&via.IntT1, 0, i)
		step(t, v, 1)
		test.ExpectEquality(t, v.Flags()&via.IntT1, via.IntT1, i)

		// reading the low counter clears the flag
		_ = read(t, v, via.T1CL)
		test.ExpectEquality(t, v.Flags()&via.IntT1, 0, i)
	}
	test.ExpectSuccess(t, v.T1Running())
}

func TestT1PB7(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.ACR, via.ACRT1Continuous|via.ACRT1PB7)
	test.ExpectEquality(t, v.PortB()&0x80, 0x80)

	write(t, v, via.T1CL, 3)
	write(t, v, via.T1CH, 0)
	test.ExpectEquality(t, v.PortB()&0x80, 0x00)
	step(t, v, 3)
	test.ExpectEquality(t, v.PortB()&0x80, 0x80)
	step(t, v, 3)
	test.ExpectEquality(t, v.PortB()&0x80, 0x00)

	v, _ = newVIA(t)
	write(t, v, via.ACR, via.ACRT1PB7)
	test.ExpectEquality(t, v.T1Mode(), via.OneShotPB7)
	write(t, v, via.T1CL, 3)
	write(t, v, via.T1CH, 0)
	test.ExpectEquality(t, v.PortB()&0x80, 0x00)
	step(t, v, 3)
	test.ExpectEquality(t, v.PortB()&0x80, 0x80)
	step(t, v, 10)
	test.ExpectEquality(t, v.PortB()&0x80, 0x80)
}

func TestT1LatchHigh(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.T1CL, 2)
	write(t, v, via.T1CH, 0)
	step(t, v, 2)
	test.ExpectEquality(t, v.Flags()&via.IntT1, via.IntT1)

	// writing the high latch clears the flag but does not start the timer or
	// load the counter
	counter := v.T1.Counter
	write(t, v, via.T1LH, 0x12)
	test.ExpectEquality(t, v.Flags()&via.IntT1, 0)
	test.ExpectFailure(t, v.T1Running())
	test.ExpectEquality(t, v.T1.Latch, 0x1202)
	test.ExpectEquality(t, v.T1.Counter, counter)

	// writing the high counter transfers the latch
	write(t, v, via.T1CH, 0x12)
	test.ExpectEquality(t, v.T1.Counter, 0x1202)
	test.ExpectSuccess(t, v.T1Running())
}

func TestT2Interval(t *testing.T) {
	for _, n := range []uint16{1, 7, 300} {
		v, _ := newVIA(t)
		write(t, v, via.T2CL, uint8(n))
		write(t, v, via.T2CH, uint8(n>>8))
		step(t, v, int(n)-1)
		test.ExpectEquality(t, v.Flags()&via.IntT2, 0, n)
		step(t, v, 1)
		test.ExpectEquality(t, v.Flags()&via.IntT2, via.IntT2, n)
		test.ExpectFailure(t, v.T2Running(), n)

		_ = read(t, v, via.T2CH)
		test.ExpectEquality(t, v.Flags()&via.IntT2, 0, n)
	}
}

func TestT2PulseCounting(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.ACR, via.ACRT2Count)
	write(t, v, via.T2CL, 3)
	write(t, v, via.T2CH, 0)

	// cycles do not count
	step(t, v, 10)
	test.ExpectEquality(t, v.T2.Counter, 3)

	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, v.SetPortBInput(0x40, 0x00))
		test.DemandSuccess(t, v.SetPortBInput(0x40, 0x40))
	}
	test.ExpectEquality(t, v.Flags()&via.IntT2, via.IntT2)
}

func TestInterruptEnable(t *testing.T) {
	v, irq := newVIA(t)

	// flags are set even when the interrupt is disabled
	write(t, v, via.T2CL, 1)
	write(t, v, via.T2CH, 0)
	step(t, v, 1)
	test.ExpectEquality(t, read(t, v, via.IFR), via.IntT2)
	test.ExpectFailure(t, irq.Active())
	checkIFR(t, v)

	// enabling the interrupt raises the IRQ line
	write(t, v, via.IER, 0x80|via.IntT2)
	test.ExpectEquality(t, read(t, v, via.IER), 0x80|via.IntT2)
	test.ExpectEquality(t, read(t, v, via.IFR), 0x80|via.IntT2)
	test.ExpectSuccess(t, irq.Active())
	test.ExpectSuccess(t, v.IRQ())
	checkIFR(t, v)

	// writing with bit 7 clear disables the set bits only
	write(t, v, via.IER, 0x80|via.IntCA1)
	write(t, v, via.IER, via.IntT2)
	test.ExpectEquality(t, read(t, v, via.IER), 0x80|via.IntCA1)
	test.ExpectFailure(t, irq.Active())
	checkIFR(t, v)

	// writing a one to a flag clears it
	write(t, v, via.IER, 0x80|via.IntT2)
	test.ExpectSuccess(t, irq.Active())
	write(t, v, via.IFR, via.IntT2)
	test.ExpectEquality(t, read(t, v, via.IFR), 0x00)
	test.ExpectFailure(t, irq.Active())
	checkIFR(t, v)
}

func TestPorts(t *testing.T) {
	v, _ := newVIA(t)

	write(t, v, via.DDRA, 0x0f)
	write(t, v, via.ORA, 0x55)
	test.DemandSuccess(t, v.SetPortAInput(0xff, 0xa0))

	// output bits read the output latch and input bits read the pins
	test.ExpectEquality(t, read(t, v, via.ORA), 0xa5)
	test.ExpectEquality(t, v.PortA(), 0xa5)

	// changing the direction changes the visible port
	write(t, v, via.DDRA, 0xff)
	test.ExpectEquality(t, v.PortA(), 0x55)

	// the no-handshake register addresses the same latch
	write(t, v, via.ORANH, 0x12)
	test.ExpectEquality(t, read(t, v, via.ORA), 0x12)

	write(t, v, via.DDRB, 0xf0)
	write(t, v, via.ORB, 0x3c)
	test.DemandSuccess(t, v.SetPortBInput(0x0f, 0x09))
	test.ExpectEquality(t, read(t, v, via.ORB), 0x39)
	test.ExpectEquality(t, read(t, v, via.DDRB), 0xf0)
}

func TestInputLatching(t *testing.T) {
	v, _ := newVIA(t)
	write(t, v, via.ACR, via.ACRLatchA)

	// default CA1 edge is negative
	test.DemandSuccess(t, v.SetPortAInput(0xff, 0x42))
	test.DemandSuccess(t, v.SetCA1(false))
	test.DemandSuccess(t, v.SetPortAInput(0xff, 0x99))
	test.ExpectEquality(t, read(t, v, via.ORA), 0x42)
	test.DemandSuccess(t, v.SetCA1(true))

	// reading ORA cleared the flag
	test.ExpectEquality(t, v.Flags()&via.IntCA1, 0)

	// without latching the pins are read directly
	write(t, v, via.ACR, 0x00)
	test.ExpectEquality(t, read(t, v, via.ORA), 0x99)
}

func TestControlEdges(t *testing.T) {
	v, _ := newVIA(t)

	// positive edge on CA1
	write(t, v, via.PCR, 0x01)
	test.DemandSuccess(t, v.SetCA1(false))
	test.ExpectEquality(t, v.Flags()&via.IntCA1, 0)
	test.DemandSuccess(t, v.SetCA1(true))
	test.ExpectEquality(t, v.Flags()&via.IntCA1, via.IntCA1)

	// independent CA2 interrupt is not cleared by port access
	write(t, v, via.PCR, byte(via.IndependentNegative)<<1)
	test.DemandSuccess(t, v.SetCA2(false))
	test.ExpectEquality(t, v.Flags()&via.IntCA2, via.IntCA2)
	_ = read(t, v, via.ORA)
	test.ExpectEquality(t, v.Flags()&via.IntCA2, via.IntCA2)

	// non-independent CB2 interrupt is cleared by port access
	write(t, v, via.PCR, byte(via.InputPositive)<<5)
	test.DemandSuccess(t, v.SetCB2(false))
	test.DemandSuccess(t, v.SetCB2(true))
	test.ExpectEquality(t, v.Flags()&via.IntCB2, via.IntCB2)
	write(t, v, via.ORB, 0x00)
	test.ExpectEquality(t, v.Flags()&via.IntCB2, 0)
	checkIFR(t, v)
}

func TestManualControl(t *testing.T) {
	v, _ := newVIA(t)
	test.ExpectSuccess(t, v.CB2())
	write(t, v, via.PCR, byte(via.ManualLow)<<5)
	test.ExpectFailure(t, v.CB2())
	write(t, v, via.PCR, byte(via.ManualHigh)<<5|byte(via.ManualLow)<<1)
	test.ExpectSuccess(t, v.CB2())
	test.ExpectFailure(t, v.CA2())
}

func TestHandshake(t *testing.T) {
	v, _ := newVIA(t)

	// handshake mode. CA2 goes low on ORA access and returns high on CA1
	write(t, v, via.PCR, byte(via.Handshake)<<1)
	test.ExpectSuccess(t, v.CA2())
	_ = read(t, v, via.ORA)
	test.ExpectFailure(t, v.CA2())
	step(t, v, 5)
	test.ExpectFailure(t, v.CA2())
	test.DemandSuccess(t, v.SetCA1(false))
	test.ExpectSuccess(t, v.CA2())

	// pulse mode. CB2 goes low for one cycle on ORB write
	write(t, v, via.PCR, byte(via.Pulse)<<5)
	write(t, v, via.ORB, 0x00)
	test.ExpectFailure(t, v.CB2())
	step(t, v, 1)
	test.ExpectSuccess(t, v.CB2())
}

func TestShiftRegister(t *testing.T) {
	v, _ := newVIA(t)

	// shift in under phi2
	write(t, v, via.ACR, byte(via.ShiftInPhi2)<<2)
	test.DemandSuccess(t, v.SetCB2(true))
	_ = read(t, v, via.SR)
	step(t, v, 7)
	test.ExpectEquality(t, v.Flags()&via.IntSR, 0)
	step(t, v, 1)
	test.ExpectEquality(t, v.Flags()&via.IntSR, via.IntSR)
	test.ExpectEquality(t, v.Registers.SR, 0xff)

	// shifting stops after eight bits
	test.DemandSuccess(t, v.SetCB2(false))
	step(t, v, 8)
	test.ExpectEquality(t, v.Registers.SR, 0xff)

	// shift out under external clock
	v, _ = newVIA(t)
	write(t, v, via.ACR, byte(via.ShiftOutExternal)<<2)
	write(t, v, via.SR, 0x80)
	test.DemandSuccess(t, v.SetCB1(false))
	test.DemandSuccess(t, v.SetCB1(true))
	test.ExpectSuccess(t, v.CB2())
	test.DemandSuccess(t, v.SetCB1(false))
	test.DemandSuccess(t, v.SetCB1(true))
	test.ExpectFailure(t, v.CB2())
}

func TestUndefinedRegister(t *testing.T) {
	v, _ := newVIA(t)
	err := v.Write(via.NumRegisters, 0x00)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, via.UndefinedRegister))
	_, err = v.Read(0x20)
	test.ExpectSuccess(t, curated.Is(err, via.UndefinedRegister))
}

type listener struct {
	ports    [2]uint8
	controls [4]bool
	calls    int
	err      error
}

func (l *listener) PortChanged(port via.PortID, value uint8) error {
	l.ports[port] = value
	l.calls++
	return l.err
}

func (l *listener) ControlChanged(line via.ControlLine, level bool) error {
	l.controls[line] = level
	l.calls++
	return l.err
}

func TestListener(t *testing.T) {
	v, _ := newVIA(t)
	l := &listener{}
	test.DemandSuccess(t, v.AttachListener(l))
	test.ExpectEquality(t, l.calls, 4)
	test.ExpectEquality(t, l.ports[via.PortB], 0xff)
	test.ExpectSuccess(t, l.controls[via.CB2])

	write(t, v, via.DDRB, 0xff)
	write(t, v, via.ORB, 0x42)
	test.ExpectEquality(t, l.ports[via.PortB], 0x42)
	calls := l.calls

	// unchanged state is not reported again
	write(t, v, via.ORB, 0x42)
	test.ExpectEquality(t, l.calls, calls)

	write(t, v, via.PCR, byte(via.ManualLow)<<5)
	test.ExpectFailure(t, l.controls[via.CB2])

	// listener errors are returned to the caller
	l.err = errors.New("test error")
	err := v.Write(via.ORB, 0x43)
	test.ExpectFailure(t, err)

	// reset reports the new state of the ports
	l.err = nil
	write(t, v, via.ORB, 0x00)
	test.ExpectEquality(t, l.ports[via.PortB], 0x00)
	l.err = errors.New("test error")
	test.ExpectFailure(t, v.Reset())
	test.ExpectEquality(t, l.ports[via.PortB], 0xff)

	l.err = nil
	calls = l.calls
	test.DemandSuccess(t, v.Reset())
	test.ExpectEquality(t, l.calls, calls)
}

func TestNewVIA(t *testing.T) {
	v, irq := newVIA(t)
	checkIFR(t, v)
	test.ExpectFailure(t, irq.Active())
	test.ExpectEquality(t, v.PortB(), 0xff)

	// a listener attached to a new chip sees only the initial report
	l := &listener{}
	test.DemandSuccess(t, v.AttachListener(l))
	write(t, v, via.ACR, 0x00)
	test.ExpectEquality(t, l.calls, 4)
}
