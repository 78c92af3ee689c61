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

package g64

import (
	"encoding/binary"
	"io"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/logger"
)

// Sentinel error patterns returned by this package.
const (
	BadMagic  = "g64: not a G64 image"
	Truncated = "g64: image truncated: %v"
	BadTrack  = "g64: bad half-track: %d"
)

// Signature at the beginning of every G64 image.
const Signature = "GCR-1541"

// Half-tracks are numbered such that track 1 is half-track 2 and track 42 is
// half-track 84. The first half-track in the image is therefore MinHalfTrack.
const (
	MinHalfTrack = 2
	MaxHalfTrack = 84

	// the number of half-track entries written by WriteTo()
	NumEntries = MaxHalfTrack - MinHalfTrack

	// the usual maximum track size
	DefaultMaxTrackSize = 7928
)

const headerLen = 12

// Track is the data for a single half-track.
type Track struct {
	Data []byte

	// bit-rate zone of the track in the range 0 to 3
	Zone int
}

// Image is a parsed G64 image.
type Image struct {
	Version      uint8
	MaxTrackSize int

	// indexed by half-track minus MinHalfTrack. a nil entry means the
	// half-track has no data
	tracks []*Track
}

// NewImage returns an image with no tracks.
func NewImage() *Image {
	return &Image{
		MaxTrackSize: DefaultMaxTrackSize,
		tracks:       make([]*Track, NumEntries),
	}
}

// DefaultZone returns the bit-rate zone normally used for a half-track. The
// outer tracks are recorded at the highest density.
func DefaultZone(halfTrack int) int {
	track := halfTrack / 2
	switch {
	case track <= 17:
		return 3
	case track <= 24:
		return 2
	case track <= 30:
		return 1
	}
	return 0
}

// Parse a G64 image. The perm argument is used when logging recoverable
// problems with the image.
func Parse(perm logger.Permission, data []byte) (*Image, error) {
	if len(data) < headerLen || string(data[:len(Signature)]) != Signature {
		return nil, curated.Errorf(BadMagic)
	}

	img := &Image{
		Version:      data[8],
		MaxTrackSize: int(binary.LittleEndian.Uint16(data[10:])),
	}

	n := int(data[9])
	if len(data) < headerLen+n*8 {
		return nil, curated.Errorf(Truncated, "tables")
	}
	img.tracks = make([]*Track, max(n, NumEntries))

	for i := 0; i < n; i++ {
		halfTrack := i + MinHalfTrack
		offset := int(binary.LittleEndian.Uint32(data[headerLen+i*4:]))
		speed := binary.LittleEndian.Uint32(data[headerLen+n*4+i*4:])

		if offset == 0 {
			continue
		}
		if offset+2 > len(data) {
			return nil, curated.Errorf(Truncated, halfTrack)
		}

		l := int(binary.LittleEndian.Uint16(data[offset:]))
		if offset+2+l > len(data) {
			return nil, curated.Errorf(Truncated, halfTrack)
		}
		if img.MaxTrackSize > 0 && l > img.MaxTrackSize {
			logger.Logf(perm, "g64", "half-track %d is longer than maximum track size (%d > %d)", halfTrack, l, img.MaxTrackSize)
		}

		zone := int(speed)
		if speed > 3 {
			// per-byte speed zones are not supported
			zone = DefaultZone(halfTrack)
			logger.Logf(perm, "g64", "half-track %d uses a speed zone map. using zone %d", halfTrack, zone)
		}

		img.tracks[i] = &Track{
			Data: data[offset+2 : offset+2+l],
			Zone: zone,
		}
	}

	return img, nil
}

// Track returns the data for a half-track. Returns false if the half-track
// has no data.
func (img *Image) Track(halfTrack int) (*Track, bool) {
	i := halfTrack - MinHalfTrack
	if i < 0 || i >= len(img.tracks) || img.tracks[i] == nil {
		return nil, false
	}
	return img.tracks[i], true
}

// SetTrack sets the data for a half-track.
func (img *Image) SetTrack(halfTrack int, data []byte, zone int) error {
	i := halfTrack - MinHalfTrack
	if i < 0 || i >= NumEntries {
		return curated.Errorf(BadTrack, halfTrack)
	}
	img.tracks[i] = &Track{
		Data: data,
		Zone: zone & 0x03,
	}
	return nil
}

// NumTracks returns the number of half-tracks with data.
func (img *Image) NumTracks() int {
	var n int
	for _, t := range img.tracks {
		if t != nil {
			n++
		}
	}
	return n
}

// WriteTo implements the io.WriterTo interface.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n := len(img.tracks)

	hdr := make([]byte, headerLen+n*8)
	copy(hdr, Signature)
	hdr[8] = img.Version
	hdr[9] = uint8(n)
	binary.LittleEndian.PutUint16(hdr[10:], uint16(img.MaxTrackSize))

	offset := len(hdr)
	for i, t := range img.tracks {
		if t == nil {
			continue
		}
		binary.LittleEndian.PutUint32(hdr[headerLen+i*4:], uint32(offset))
		binary.LittleEndian.PutUint32(hdr[headerLen+n*4+i*4:], uint32(t.Zone))
		offset += len(t.Data) + 2
	}

	var written int64

	c, err := w.Write(hdr)
	written += int64(c)
	if err != nil {
		return written, err
	}

	for _, t := range img.tracks {
		if t == nil {
			continue
		}
		var l [2]byte
		binary.LittleEndian.PutUint16(l[:], uint16(len(t.Data)))
		c, err = w.Write(l[:])
		written += int64(c)
		if err != nil {
			return written, err
		}
		c, err = w.Write(t.Data)
		written += int64(c)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
