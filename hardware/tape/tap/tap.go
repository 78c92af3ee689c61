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

package tap

import (
	"encoding/binary"
	"io"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/logger"
)

// Sentinel error patterns returned by this package.
const (
	BadMagic  = "tap: not a TAP container"
	Truncated = "tap: container truncated: %v"
	BadLength = "tap: length field is %d but %d bytes of pulse data follow"
)

// Magic identifies a TAP container.
const Magic = "C64-TAPE-RAW"

// HeaderLength is the number of bytes before the pulse data.
const HeaderLength = 20

// CyclesPerUnit is the number of cycles represented by one unit of a single
// byte pulse value.
const CyclesPerUnit = 8

// OverflowCycles is the length of a zero pulse in a version 0 container.
const OverflowCycles = 256 * CyclesPerUnit

// MaxLongCycles is the largest cycle count that fits in an extended value.
const MaxLongCycles = 0xffffff

// Container is a parsed TAP container.
type Container struct {
	Version uint8

	// pulse lengths in cycles
	Cycles []int
}

// Parse a TAP container. The length field must agree with the size of the
// pulse data.
func Parse(perm logger.Permission, data []byte) (*Container, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, curated.Errorf(BadMagic)
	}
	if len(data) < HeaderLength {
		return nil, curated.Errorf(Truncated, "header")
	}

	c := &Container{
		Version: data[12],
	}

	l := int(binary.LittleEndian.Uint32(data[16:]))
	body := data[HeaderLength:]
	if l != len(body) {
		return nil, curated.Errorf(BadLength, l, len(body))
	}

	for i := 0; i < len(body); i++ {
		v := body[i]
		if v != 0 {
			c.Cycles = append(c.Cycles, int(v)*CyclesPerUnit)
			continue
		}

		if c.Version == 0 {
			c.Cycles = append(c.Cycles, OverflowCycles)
			continue
		}

		if i+3 >= len(body) {
			return nil, curated.Errorf(Truncated, "extended pulse value")
		}
		n := int(body[i+1]) | int(body[i+2])<<8 | int(body[i+3])<<16
		c.Cycles = append(c.Cycles, n)
		i += 3
	}

	logger.Logf(perm, "tap", "version %d container with %d pulses", c.Version, len(c.Cycles))

	return c, nil
}

// Pulses returns the contents of the container as a sequence of custom
// pulses.
func (c *Container) Pulses() []pulse.Pulse {
	p := make([]pulse.Pulse, len(c.Cycles))
	for i, n := range c.Cycles {
		p[i] = pulse.NewCustom(n)
	}
	return p
}

// FromPulses creates a version 1 container from a sequence of pulses.
// Pulses longer than MaxLongCycles are split.
func FromPulses(pulses []pulse.Pulse) *Container {
	c := &Container{Version: 1}
	for _, p := range pulses {
		n := p.Cycles
		for n > MaxLongCycles {
			c.Cycles = append(c.Cycles, MaxLongCycles)
			n -= MaxLongCycles
		}
		if n > 0 {
			c.Cycles = append(c.Cycles, n)
		}
	}
	return c
}

// encode the pulse data
func (c *Container) encode() []byte {
	var b []byte
	for _, n := range c.Cycles {
		// a value that can be represented exactly in one byte
		if n%CyclesPerUnit == 0 && n/CyclesPerUnit > 0 && n/CyclesPerUnit < 256 {
			b = append(b, byte(n/CyclesPerUnit))
			continue
		}

		if c.Version == 0 {
			v := n / CyclesPerUnit
			switch {
			case v >= 256:
				b = append(b, 0)
			case v == 0:
				b = append(b, 1)
			default:
				b = append(b, byte(v))
			}
			continue
		}

		for n > MaxLongCycles {
			b = append(b, 0, 0xff, 0xff, 0xff)
			n -= MaxLongCycles
		}
		b = append(b, 0, byte(n), byte(n>>8), byte(n>>16))
	}
	return b
}

// WriteTo implements the io.WriterTo interface.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	body := c.encode()

	hdr := make([]byte, HeaderLength)
	copy(hdr, Magic)
	hdr[12] = c.Version
	binary.LittleEndian.PutUint32(hdr[16:], uint32(len(body)))

	n, err := w.Write(hdr)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(body)
	return int64(n + m), err
}
