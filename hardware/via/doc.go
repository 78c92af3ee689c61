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

// Package via implements the Versatile Interface Adapter, the programmable
// parallel-interface and timer chip found twice in the disk drive.
//
// The chip occupies sixteen registers. The Registers type is the storage for
// those registers and has no behaviour of its own. The VIA type wraps the
// storage and implements the side effects of reading and writing the
// registers, the per-cycle behaviour of the two timers and the shift
// register, and the four control lines CA1, CA2, CB1 and CB2.
//
// The chip is stepped once per CPU cycle by calling Step(). It asserts the
// interrupt line of the owning CPU through the signals.Interrupter interface,
// exactly when bit 7 of the interrupt-flag register changes.
//
// Other parts of the emulation can react to changes on the output side of
// the chip by attaching a Listener. The disk drive mechanics are the main
// example of this. The drive listens to port B of the second chip in order to
// decode the stepper motor phase, the motor and LED state and the bit-rate
// zone.
//
// Reading or writing a register offset outside of the sixteen register
// window is a contract violation and results in an UndefinedRegister error.
package via
