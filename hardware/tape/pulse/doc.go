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

// Package pulse is the modulation engine of the tape. A tape is a sequence
// of pulses. Each pulse is a full period of a square wave. The signal is low
// for the first half of the period and high for the second half, returning
// to its starting level at the end of the pulse. A silence is a pulse during
// which the signal does not change.
//
// The Generator type plays a sequence of pulses one cycle at a time.
package pulse
