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

// Package tape emulates the cassette unit. The Datasette type plays a tape
// inserted as a T64 container, a TAP container or a sequence of pulses
// recovered from an audio recording.
//
// The subpackages do the work. The pulse package generates the signal, the
// encoding package turns files into pulses and back again and the t64, tap and
// soundload packages read the tape formats.
package tape
