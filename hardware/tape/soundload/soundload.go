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

package soundload

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/logger"
)

// Sentinel error patterns returned by this package.
const (
	UnsupportedFormat = "soundload: unsupported format: %v"
	NotValid          = "soundload: %v: not a valid file"
	DecodeError       = "soundload: %v: %v"
)

// Format of the recording.
type Format int

// List of valid Format values.
const (
	WAV Format = iota
	MP3
)

func (f Format) String() string {
	switch f {
	case WAV:
		return "wav"
	case MP3:
		return "mp3"
	}
	return "unknown"
}

// FormatFromFilename returns the format implied by the extension of the
// filename.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return WAV, nil
	case ".mp3":
		return MP3, nil
	}
	return 0, curated.Errorf(UnsupportedFormat, filepath.Ext(filename))
}

// PCM is a mono recording.
type PCM struct {
	SampleRate float64

	// sample levels. the first channel only in the case of a recording with
	// more than one channel
	Data []float32
}

// Duration of the recording in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Data)) / p.SampleRate
}

// Decode a recording.
func Decode(env *environment.Environment, r io.ReadSeeker, f Format) (PCM, error) {
	var p PCM
	var err error

	switch f {
	case WAV:
		p, err = decodeWAV(r)
	case MP3:
		p, err = decodeMP3(r)
	default:
		return p, curated.Errorf(UnsupportedFormat, f)
	}
	if err != nil {
		return p, err
	}

	logger.Logf(env, "soundload", "%s: sample rate: %0.2fHz", f, p.SampleRate)
	logger.Logf(env, "soundload", "%s: total time: %.02fs", f, p.Duration())

	return p, nil
}

func decodeWAV(r io.ReadSeeker) (PCM, error) {
	var p PCM

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return p, curated.Errorf(NotValid, WAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return p, curated.Errorf(DecodeError, WAV, err)
	}
	fb := buf.AsFloat32Buffer()

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	p.Data = make([]float32, 0, len(fb.Data)/chans)
	for i := 0; i < len(fb.Data); i += chans {
		p.Data = append(p.Data, fb.Data[i])
	}
	p.SampleRate = float64(dec.SampleRate)

	return p, nil
}

func decodeMP3(r io.Reader) (PCM, error) {
	var p PCM

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return p, curated.Errorf(DecodeError, MP3, err)
	}

	// the decoded stream is always 16bit little-endian stereo. four bytes per
	// sample. the left channel is the first two bytes
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.Data = append(p.Data, float32(v))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return p, curated.Errorf(DecodeError, MP3, err)
		}
	}
	p.SampleRate = float64(dec.SampleRate())

	return p, nil
}

// Hysteresis is the fraction of the peak level that the signal must rise above
// before a rising edge is recognised. A falling edge is recognised when the
// signal drops to zero or below.
const Hysteresis = 0.1

// a low period longer than this multiple of the following high period is
// returned as a silence
const gapRatio = 3

// edge positions in samples
type edges struct {
	rising  []int
	falling []int
}

func findEdges(data []float32) edges {
	var peak float64
	for _, v := range data {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	h := float32(peak * Hysteresis)

	var e edges
	high := false
	for i, v := range data {
		switch {
		case !high && v > h:
			high = true
			e.rising = append(e.rising, i)
		case high && v <= 0:
			// a falling edge is only recorded if it follows a rising edge
			high = false
			e.falling = append(e.falling, i)
		}
	}

	return e
}
