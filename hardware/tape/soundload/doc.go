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

// Package soundload recovers tape pulses from an audio recording of a tape.
// WAV and MP3 recordings are supported. Only the first channel of a
// recording is used.
//
// A pulse ends on each falling edge of the signal. The length of a pulse is
// measured from one falling edge to the next and converted from samples to
// cycles of the computer's clock. A long quiet period before a pulse is
// returned as a separate silence.
package soundload
