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

// TimerMode is the mode of timer 1, as selected by the top two bits of the
// auxiliary-control register.
type TimerMode int

// List of valid TimerMode values.
const (
	// the timer fires once per load
	OneShot TimerMode = iota

	// the timer reloads from the latch and fires indefinitely
	Continuous

	// as OneShot but PB7 goes low on load and high when the timer fires
	OneShotPB7

	// as Continuous but PB7 is inverted every time the timer fires
	ContinuousPB7
)

func (m TimerMode) String() string {
	switch m {
	case OneShot:
		return "one-shot"
	case Continuous:
		return "continuous"
	case OneShotPB7:
		return "one-shot (PB7)"
	case ContinuousPB7:
		return "continuous (PB7)"
	}
	panic("unknown timer mode")
}

// T1Mode returns the current mode of timer 1.
func (v *VIA) T1Mode() TimerMode {
	return TimerMode(v.Registers.ACR >> 6)
}

// the PB7 output modes do not affect the interrupt cadence of the timer
func (m TimerMode) continuous() bool {
	return m == Continuous || m == ContinuousPB7
}

func (m TimerMode) pb7() bool {
	return m == OneShotPB7 || m == ContinuousPB7
}

// T2Counting returns true if timer 2 counts pulses on PB6 rather than CPU
// cycles.
func (v *VIA) T2Counting() bool {
	return v.Registers.ACR&ACRT2Count == ACRT2Count
}

// loadT1 transfers the latch to the counter and starts the timer.
func (v *VIA) loadT1() {
	v.T1.Counter = v.T1.Latch
	v.t1Running = true
	v.clearFlag(IntT1)
	if v.T1Mode().pb7() {
		v.pb7 = false
	}
}

// loadT2 transfers the low latch and the high byte to the counter and starts
// the timer.
func (v *VIA) loadT2(hi uint8) {
	v.T2.Counter = (uint16(hi) << 8) | (v.T2.Latch & 0x00ff)
	v.t2Running = true
	v.clearFlag(IntT2)
}

// T1Running returns true if timer 1 is counting down towards an interrupt.
func (v *VIA) T1Running() bool {
	return v.t1Running
}

// T2Running returns true if timer 2 is counting down towards an interrupt.
func (v *VIA) T2Running() bool {
	return v.t2Running
}

func (v *VIA) stepT1() {
	if !v.t1Running {
		return
	}

	v.T1.Counter--
	if v.T1.Counter != 0 {
		return
	}

	v.setFlag(IntT1)

	mode := v.T1Mode()
	if mode.continuous() {
		v.T1.Counter = v.T1.Latch
		if mode.pb7() {
			v.pb7 = !v.pb7
		}
		return
	}

	// one-shot timer holds at zero-minus-one until it is reloaded
	v.T1.Counter = 0xffff
	v.t1Running = false
	if mode.pb7() {
		v.pb7 = true
	}
}

func (v *VIA) stepT2() {
	if !v.t2Running || v.T2Counting() {
		return
	}
	v.decrementT2()
}

// decrementT2 is called every cycle in interval mode and on every falling
// edge of PB6 in pulse-counting mode.
func (v *VIA) decrementT2() {
	v.T2.Counter--
	if v.T2.Counter != 0 {
		return
	}
	v.setFlag(IntT2)
	v.T2.Counter = 0xffff
	v.t2Running = false
}

// writeACR sets the auxiliary-control register. Enabling PB7 output returns
// PB7 to its idle high state.
func (v *VIA) writeACR(data uint8) {
	pb7 := v.T1Mode().pb7()
	v.Registers.ACR = data
	if !pb7 && v.T1Mode().pb7() {
		v.pb7 = true
	}
	v.shifter.restart()
}
