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

package t64

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/logger"
)

// Sentinel error patterns returned by this package.
const (
	BadMagic  = "t64: not a T64 container"
	Truncated = "t64: container truncated: %v"
)

// Magic is the required prefix of the signature.
const Magic = "C64"

// DefaultSignature is used by WriteTo() when Signature is empty.
const DefaultSignature = "C64 tape image file"

const (
	recordLen    = 32
	directoryLen = 64
	nameLen      = 24
	entryNameLen = 16
)

// Entry types.
const (
	FreeEntry   uint8 = 0
	NormalEntry uint8 = 1
)

// Entry is a single file in the container.
type Entry struct {
	EntryType uint8
	FileType  uint8
	Start     uint16
	End       uint16
	Name      string

	// position of the data in the container. only meaningful for a parsed
	// container
	Offset uint32

	Data []byte
}

// Container is a parsed T64 container.
type Container struct {
	Signature  string
	Version    uint16
	MaxEntries int
	Name       string
	Entries    []Entry
}

func trim(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

// Parse a T64 container. End addresses that point beyond the end of the data
// are clamped and logged.
func Parse(perm logger.Permission, data []byte) (*Container, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, curated.Errorf(BadMagic)
	}
	if len(data) < directoryLen {
		return nil, curated.Errorf(Truncated, "header")
	}

	c := &Container{
		Signature:  trim(data[:recordLen]),
		Version:    binary.LittleEndian.Uint16(data[32:]),
		MaxEntries: int(binary.LittleEndian.Uint16(data[34:])),
		Name:       trim(data[40 : 40+nameLen]),
	}
	used := int(binary.LittleEndian.Uint16(data[36:]))

	// some containers give a used count of zero
	n := c.MaxEntries
	if used > n {
		n = used
	}
	if len(data) < directoryLen+n*recordLen {
		return nil, curated.Errorf(Truncated, "directory")
	}

	for i := 0; i < n; i++ {
		rec := data[directoryLen+i*recordLen:]

		ent := Entry{
			EntryType: rec[0],
			FileType:  rec[1],
			Start:     binary.LittleEndian.Uint16(rec[2:]),
			End:       binary.LittleEndian.Uint16(rec[4:]),
			Offset:    binary.LittleEndian.Uint32(rec[8:]),
			Name:      trim(rec[16 : 16+entryNameLen]),
		}
		if ent.EntryType == FreeEntry {
			continue
		}

		if int(ent.Offset) > len(data) {
			return nil, curated.Errorf(Truncated, ent.Name)
		}

		l := int(ent.End) - int(ent.Start)
		if l < 0 {
			l = 0
		}
		if int(ent.Offset)+l > len(data) {
			l = len(data) - int(ent.Offset)
			end := ent.Start + uint16(l)
			logger.Logf(perm, "t64", "end address of %s clamped to size of container (%04x -> %04x)", ent.Name, ent.End, end)
			ent.End = end
		}

		ent.Data = data[ent.Offset : int(ent.Offset)+l]
		c.Entries = append(c.Entries, ent)
	}

	if used != 0 && used != len(c.Entries) {
		logger.Logf(perm, "t64", "used entries is %d but %d entries found", used, len(c.Entries))
	}

	return c, nil
}

// WriteTo implements the io.WriterTo interface. The directory and data
// offsets are recalculated from the entries.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	max := c.MaxEntries
	if max < len(c.Entries) {
		max = len(c.Entries)
	}

	sig := c.Signature
	if sig == "" {
		sig = DefaultSignature
	}

	hdr := make([]byte, directoryLen+max*recordLen)
	copy(hdr, sig)
	binary.LittleEndian.PutUint16(hdr[32:], c.Version)
	binary.LittleEndian.PutUint16(hdr[34:], uint16(max))
	binary.LittleEndian.PutUint16(hdr[36:], uint16(len(c.Entries)))
	copy(hdr[40:40+nameLen], bytes.Repeat([]byte{0x20}, nameLen))
	copy(hdr[40:40+nameLen], c.Name)

	offset := len(hdr)
	for i, ent := range c.Entries {
		rec := hdr[directoryLen+i*recordLen:]
		rec[0] = NormalEntry
		rec[1] = ent.FileType
		binary.LittleEndian.PutUint16(rec[2:], ent.Start)
		binary.LittleEndian.PutUint16(rec[4:], ent.Start+uint16(len(ent.Data)))
		binary.LittleEndian.PutUint32(rec[8:], uint32(offset))
		copy(rec[16:16+entryNameLen], bytes.Repeat([]byte{0x20}, entryNameLen))
		copy(rec[16:16+entryNameLen], ent.Name)
		offset += len(ent.Data)
	}

	n, err := w.Write(hdr)
	written := int64(n)
	if err != nil {
		return written, err
	}

	for _, ent := range c.Entries {
		n, err = w.Write(ent.Data)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
