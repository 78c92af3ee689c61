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

package drive

import (
	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/via"
	"github.com/gopher1541/gopher1541/logger"
)

// mechanics listens to the outputs of VIA2.
type mechanics struct {
	drv *Drive
}

// PortChanged implements the via.Listener interface.
func (m mechanics) PortChanged(port via.PortID, value uint8) error {
	if port == via.PortB {
		m.drv.portB(value)
	}
	return nil
}

// ControlChanged implements the via.Listener interface.
func (m mechanics) ControlChanged(line via.ControlLine, level bool) error {
	if line == via.CB2 {
		return m.drv.selectMode(level)
	}
	return nil
}

func (d *Drive) selectMode(level bool) error {
	kind := Read
	if !level {
		kind = Write
	}

	if kind == d.mode.Kind {
		return nil
	}

	d.mode = d.mode.transition(kind, d.CyclesPerByte())
	logger.Logf(d.env, "drive", "%s mode", kind)

	if kind == Write {
		return curated.Errorf(WriteModeUnsupported)
	}
	return nil
}

// portB reacts to a change in the visible state of VIA2 port B. Only bits
// configured as outputs drive the mechanics.
func (d *Drive) portB(value uint8) {
	out := value & d.VIA2.B.DDR

	motor := out&pinMotor == pinMotor
	d.led = out&pinLED == pinLED
	d.zone = int(out&pinZone) >> 5

	if d.mode.Kind == Read {
		if motor && !d.motor {
			// the first byte is assembled one byte period after spin-up
			d.mode.Counter = d.CyclesPerByte()
		} else if d.mode.Counter > d.CyclesPerByte() {
			d.mode.Counter = d.CyclesPerByte()
		}
	}
	d.motor = motor

	phase := out & pinPhase
	if phase == d.phase {
		return
	}

	if d.motor {
		d.stepCount++
		if d.stepCount >= StepsPerHalfTrack {
			d.stepCount = 0
			d.stepHead(d.phase, phase)
		}
	}

	d.phase = phase
}

// stepHead moves the head by one half-track. The direction is taken from the
// difference between the previous phase and the new phase.
func (d *Drive) stepHead(prev uint8, phase uint8) {
	switch (phase - prev) & pinPhase {
	case 1:
		// towards the centre of the disk
		d.moveHead(-1)
	case 3:
		d.moveHead(1)
	default:
		if d.env.Prefs.DebugStepper {
			logger.Logf(d.env, "drive", "ambiguous stepper phase change (%d -> %d)", prev, phase)
		}
	}
}

func (d *Drive) moveHead(delta int) {
	ht := d.halfTrack + delta
	if ht < MinHalfTrack {
		ht = MinHalfTrack
	} else if ht > MaxHalfTrack {
		ht = MaxHalfTrack
	}

	if ht == d.halfTrack {
		return
	}

	d.halfTrack = ht
	d.loadStream()

	if d.env.Prefs.DebugStepper {
		logger.Logf(d.env, "drive", "head moved to track %.1f", d.Track())
	}
}
