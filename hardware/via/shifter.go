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

// ShiftMode is the mode of the shift register as selected by bits 2 to 4 of
// the auxiliary-control register.
type ShiftMode int

// List of valid ShiftMode values.
const (
	ShiftDisabled ShiftMode = iota
	ShiftInT2
	ShiftInPhi2
	ShiftInExternal
	ShiftOutFree
	ShiftOutT2
	ShiftOutPhi2
	ShiftOutExternal
)

func (m ShiftMode) out() bool {
	return m >= ShiftOutFree
}

func (m ShiftMode) external() bool {
	return m == ShiftInExternal || m == ShiftOutExternal
}

func (m ShiftMode) timed() bool {
	return m == ShiftInT2 || m == ShiftOutFree || m == ShiftOutT2
}

type shifter struct {
	// number of bits shifted since the last restart
	count int

	// cycles until the next shift when shifting at the timer 2 rate
	countdown int

	// shifting stops after eight bits except in free-running mode
	running bool

	// level of CB2 when shifting out
	out bool
}

func (s *shifter) restart() {
	s.count = 0
	s.countdown = 0
	s.running = true
}

// ShiftMode returns the current mode of the shift register.
func (v *VIA) ShiftMode() ShiftMode {
	return v.shiftMode()
}

func (v *VIA) shiftMode() ShiftMode {
	return ShiftMode((v.Registers.ACR & ACRShiftMask) >> 2)
}

func (v *VIA) stepShifter() {
	mode := v.shiftMode()

	switch {
	case mode == ShiftInPhi2 || mode == ShiftOutPhi2:
		v.shift()
	case mode.timed():
		if !v.shifter.running {
			return
		}
		if v.shifter.countdown == 0 {
			// a shift occurs every other underflow of the low byte of the
			// timer 2 latch
			v.shifter.countdown = int(v.T2.Latch&0x00ff) + 2
		}
		v.shifter.countdown--
		if v.shifter.countdown == 0 {
			v.shift()
		}
	}
}

// shift one bit into or out of the shift register.
func (v *VIA) shift() {
	if !v.shifter.running {
		return
	}

	mode := v.shiftMode()
	if mode == ShiftDisabled {
		return
	}

	if mode.out() {
		bit := v.Registers.SR >> 7
		v.shifter.out = bit == 1
		v.Registers.SR = (v.Registers.SR << 1) | bit
	} else {
		v.Registers.SR <<= 1
		if v.cb2 {
			v.Registers.SR |= 0x01
		}
	}

	v.shifter.count++
	if v.shifter.count < 8 {
		return
	}

	v.shifter.count = 0
	if mode != ShiftOutFree {
		v.shifter.running = false
		v.setFlag(IntSR)
	}
}
