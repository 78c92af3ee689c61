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

// Package drive emulates the mechanics and read circuitry of a 1541 disk
// drive. The drive owns two interface chips and a bit recovery stream. The
// CPU of the drive is not part of the package. The CPU connects to the drive
// through the Memory field and through the signals.CPU interface given to
// NewDrive().
//
// VIA1 is connected to the serial bus. VIA2 controls the mechanics of the
// drive:
//
//	PA0-7	data byte from the read head
//	PB0-1	stepper motor phase
//	PB2	spindle motor
//	PB3	LED
//	PB4	write protect sense (0 = protected)
//	PB5-6	bit-rate zone
//	PB7	sync sense (0 = sync)
//	CA1	byte ready
//	CA2	byte ready enable
//	CB2	read/write mode (high = read)
//
// The mechanics are driven by listening for changes to the outputs of VIA2.
// Every call to Step() advances the drive by exactly one cycle of the drive's
// clock.
//
// Writing to the disk is not supported. Selecting write mode with CB2 causes
// the WriteModeUnsupported error to be returned.
package drive
