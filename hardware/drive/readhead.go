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
	"math/bits"

	"github.com/gopher1541/gopher1541/logger"
)

// assembleByte reads bits from the stream until a complete byte of eight bits
// has been assembled. A run of twelve or more one bits is a sync mark. Bytes
// are not assembled during a sync mark and the byte following the mark is
// read aligned to the zero bit that ends it.
//
// Scanning is limited to one revolution of the stream. Returns false if no
// byte could be assembled, which happens if the head is over a sync mark that
// never ends.
func (d *Drive) assembleByte() (uint8, bool, bool) {
	var b uint8
	var n int

	for i := 0; i < d.stream.Len(); i++ {
		bit := d.stream.ReadBit()

		if bit {
			d.ones++
			if d.ones >= syncLength {
				// the byte counter is held while sync is detected
				b = 0
				n = 0
				continue
			}
		} else {
			if d.ones >= syncLength {
				d.stream.Rewind(1)
				d.stream.Mark()
				b, _ = d.stream.ReadByte()
				d.ones = bits.TrailingZeros8(^b)
				return b, true, true
			}
			d.ones = 0
		}

		b <<= 1
		if bit {
			b |= 0x01
		}
		n++

		if n == 8 {
			return b, false, true
		}
	}

	return 0, false, false
}

// deliver an assembled byte to VIA2 and signal the CPU.
func (d *Drive) deliver(b uint8, sync bool) error {
	d.lastByte = b
	d.lastSync = sync
	d.Assembled++

	if d.env.Prefs.DebugBytes {
		if sync {
			logger.Logf(d.env, "drive", "%02x (sync) track %.1f bit %d", b, d.Track(), d.stream.Cursor())
		} else {
			logger.Logf(d.env, "drive", "%02x track %.1f bit %d", b, d.Track(), d.stream.Cursor())
		}
	}

	var syncPin uint8
	if !sync {
		syncPin = pinSync
	}
	if err := d.VIA2.SetPortBInput(pinSync, syncPin); err != nil {
		return err
	}

	if err := d.VIA2.SetPortAInput(0xff, b); err != nil {
		return err
	}

	d.overflow = !d.overflow
	if d.cpu != nil {
		d.cpu.SetOverflow(d.overflow)
	}

	// the byte ready line is only pulsed if byte ready is enabled
	if !d.VIA2.CA2() {
		d.Dropped++
		return nil
	}

	d.byteReady = true
	return d.VIA2.SetCA1(false)
}
