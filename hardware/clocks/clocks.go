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

// Package clocks defines the constant values for the speed of the clocks in
// the computer and in the disk drive. Values are in Hz.
//
// The tape is clocked by the computer so the computer's clock is used when
// converting tape pulses to and from audio samples.
package clocks

const (
	PAL  = 985248
	NTSC = 1022727

	// the 1541 runs from its own crystal regardless of the computer's
	// television standard
	Drive = 1000000
)
