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

package encoding

import (
	"bytes"

	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/logger"
)

// Thresholds used to classify pulses. Each is the midpoint between two of the
// canonical pulse lengths.
const (
	ShortMediumThreshold = (pulse.ShortCycles + pulse.MediumCycles) / 2
	MediumLongThreshold  = (pulse.MediumCycles + pulse.LongCycles) / 2

	// a low signal for longer than this is a gap between blocks
	GapThreshold = pulse.LongCycles * 2
)

// Classify returns the kind of pulse closest to the length in cycles.
func Classify(cycles int) pulse.Kind {
	switch {
	case cycles < ShortMediumThreshold:
		return pulse.Short
	case cycles < MediumLongThreshold:
		return pulse.Medium
	}
	return pulse.Long
}

// Block is a block recovered by the Decoder.
type Block struct {
	// the block data without the synchronisation sequence or the checksum
	Data []byte

	// the checksum as recorded on tape
	Checksum uint8

	// the block is the repeated copy
	Repeat bool

	// the checksum matches the data
	Valid bool
}

type decoderState int

const (
	// waiting for the long pulse of a byte marker
	waitMarker decoderState = iota

	// the long pulse has been seen
	marker

	// collecting the pulses of the data and parity bits
	bits
)

// number of pulses in the eight data bits and the parity bit
const bitPulses = 18

// Decoder recovers blocks from a pulse stream.
type Decoder struct {
	env *environment.Environment

	// signal measurement
	level bool
	count int

	state   decoderState
	pending [bitPulses]pulse.Kind
	n       int

	current []byte
	blocks  []Block

	// integrity problems found while decoding
	PulseErrors    int
	ParityErrors   int
	ChecksumErrors int
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(env *environment.Environment) *Decoder {
	return &Decoder{
		env: env,
	}
}

// Blocks returns the blocks decoded so far. Call Flush() first to include
// any block still in progress.
func (dec *Decoder) Blocks() []Block {
	return dec.blocks
}

// Files returns the files decoded so far.
func (dec *Decoder) Files() []File {
	return Files(dec.blocks)
}

// Step the decoder with the level of the tape signal for one cycle. The length
// of a pulse is measured as twice the length of its high phase.
func (dec *Decoder) Step(level bool) {
	if level == dec.level {
		dec.count++
		if !level && dec.count == GapThreshold {
			dec.endBlock()
		}
		return
	}

	if dec.level {
		dec.Pulse(dec.count * 2)
	}

	dec.level = level
	dec.count = 1
}

// Pulses decodes a sequence of pulses. A silence ends the current block.
func (dec *Decoder) Pulses(pulses []pulse.Pulse) {
	for _, p := range pulses {
		if p.Kind == pulse.Silence || p.Cycles >= GapThreshold {
			dec.endBlock()
			continue
		}
		dec.Pulse(p.Cycles)
	}
}

// Flush ends the current block.
func (dec *Decoder) Flush() {
	dec.endBlock()
}

// Pulse decodes a single pulse of the given length in cycles.
func (dec *Decoder) Pulse(cycles int) {
	k := Classify(cycles)

	switch dec.state {
	case waitMarker:
		if k == pulse.Long {
			dec.state = marker
			return
		}

		// any other pulse ends the block
		dec.endBlock()

	case marker:
		if k == pulse.Medium {
			dec.state = bits
			dec.n = 0
			return
		}

		// a long pulse followed by any other pulse is an end of data marker
		dec.endBlock()
		if k != pulse.Long {
			dec.state = waitMarker
		}

	case bits:
		dec.pending[dec.n] = k
		dec.n++
		if dec.n == bitPulses {
			dec.assemble()
			dec.state = waitMarker
		}
	}
}

// assemble builds a byte from the pending pulses.
func (dec *Decoder) assemble() {
	var v uint8
	var ones int
	var parity bool

	for i := 0; i < 9; i++ {
		a := dec.pending[i*2]
		b := dec.pending[i*2+1]

		var bit bool
		switch {
		case a == pulse.Short && b == pulse.Medium:
			bit = false
		case a == pulse.Medium && b == pulse.Short:
			bit = true
		default:
			dec.PulseErrors++
			logger.Logf(dec.env, "tape", "unexpected pulse pair (%s, %s) in byte %d. assuming zero bit", a, b, len(dec.current))
		}

		if bit {
			ones++
		}
		if i < 8 {
			if bit {
				v |= 1 << i
			}
		} else {
			parity = bit
		}
	}

	if ones&0x01 == 0 {
		dec.ParityErrors++
		logger.Logf(dec.env, "tape", "parity error in byte %d (%02x, parity %v)", len(dec.current), v, parity)
	}

	dec.current = append(dec.current, v)
}

// endBlock completes the current block.
func (dec *Decoder) endBlock() {
	dec.state = waitMarker
	if len(dec.current) == 0 {
		return
	}

	data := dec.current
	dec.current = nil

	var blk Block

	switch {
	case len(data) >= len(FirstSync) && bytes.Equal(data[:len(FirstSync)], FirstSync):
		data = data[len(FirstSync):]
	case len(data) >= len(RepeatSync) && bytes.Equal(data[:len(RepeatSync)], RepeatSync):
		data = data[len(RepeatSync):]
		blk.Repeat = true
	default:
		logger.Logf(dec.env, "tape", "block of %d bytes has no synchronisation sequence", len(data))
	}

	if len(data) == 0 {
		return
	}

	blk.Data = data[:len(data)-1]
	blk.Checksum = data[len(data)-1]
	blk.Valid = Checksum(blk.Data) == blk.Checksum
	if !blk.Valid {
		dec.ChecksumErrors++
		logger.Logf(dec.env, "tape", "checksum mismatch in block of %d bytes (%02x != %02x)", len(blk.Data), Checksum(blk.Data), blk.Checksum)
	}

	if dec.env.Prefs.DebugTape {
		logger.Logf(dec.env, "tape", "block of %d bytes (repeat %v)", len(blk.Data), blk.Repeat)
	}

	dec.blocks = append(dec.blocks, blk)
}

// Files pairs header blocks with data blocks. The repeated copy of a block is
// used if the first copy is damaged.
func Files(blocks []Block) []File {
	var files []File
	var hdr *File

	for i := 0; i < len(blocks); i++ {
		blk := blocks[i]
		if blk.Repeat {
			continue
		}
		if !blk.Valid && i+1 < len(blocks) && blocks[i+1].Repeat && blocks[i+1].Valid {
			blk = blocks[i+1]
		}

		if hdr == nil {
			if len(blk.Data) == HeaderLength {
				f := parseHeader(blk.Data)
				hdr = &f
			}
			continue
		}

		hdr.Data = blk.Data
		files = append(files, *hdr)
		hdr = nil
	}

	return files
}
