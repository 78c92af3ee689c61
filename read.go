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

package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware"
	"github.com/gopher1541/gopher1541/hardware/clocks"
	"github.com/gopher1541/gopher1541/hardware/drive"
	"github.com/gopher1541/gopher1541/hardware/drive/g64"
	"github.com/gopher1541/gopher1541/hardware/memory/bus"
	"github.com/gopher1541/gopher1541/hardware/signals"
)

// host stands in for the drive's CPU. It counts cycles and the byte ready
// signals given on the overflow line.
type host struct {
	*signals.IRQ
	cycles    uint64
	overflows int
}

func newHost() *host {
	return &host{IRQ: signals.NewIRQ()}
}

// SetOverflow implements the signals.Overflower interface.
func (h *host) SetOverflow(level bool) {
	h.overflows++
}

// Cycles implements the signals.Clock interface.
func (h *host) Cycles() uint64 {
	return h.cycles
}

// PC implements the signals.Clock interface.
func (h *host) PC() uint16 {
	return 0
}

// addresses of VIA2 registers in the drive's address space
const (
	via2ORB = 0x1c00
	via2ORA = 0x1c01
	via2DDR = 0x1c02
	via2PCR = 0x1c0c
)

// VIA2 port B bits used by the reader
const (
	orbMotor = 0x04
	orbLED   = 0x08
)

// reader controls a drive in the way the drive's firmware would.
type reader struct {
	per  *hardware.Peripherals
	drv  *drive.Drive
	mem  bus.CPUBus
	cpu  *host
	orb  uint8
	zone int
}

func newReader(env *environment.Environment, img *g64.Image) (*reader, error) {
	r := &reader{
		per: hardware.NewPeripherals(env),
		cpu: newHost(),
	}

	var err error
	r.drv, err = r.per.AttachDrive(r.cpu, 0)
	if err != nil {
		return nil, err
	}
	r.drv.Insert(img)
	r.mem = r.drv.Mem

	// stepper phase, motor, LED and zone are outputs. byte ready enabled and
	// read mode
	if err := r.mem.Write(via2DDR, 0x6f); err != nil {
		return nil, err
	}
	if err := r.mem.Write(via2PCR, 0xee); err != nil {
		return nil, err
	}

	r.orb = orbMotor | orbLED
	return r, r.writeORB()
}

func (r *reader) writeORB() error {
	return r.mem.Write(via2ORB, r.orb|uint8(r.zone<<5))
}

func (r *reader) step() error {
	return r.per.Step(func() error {
		r.cpu.cycles++
		return nil
	})
}

// seek moves the head to the half-track by cycling the stepper phases
func (r *reader) seek(halfTrack int) error {
	for i := 0; r.drv.HalfTrack() != halfTrack && i <= drive.MaxHalfTrack; i++ {
		// a phase decrement moves the head away from the centre
		delta := uint8(1)
		if halfTrack > r.drv.HalfTrack() {
			delta = 3
		}

		for s := 0; s < drive.StepsPerHalfTrack; s++ {
			r.orb = (r.orb & 0xfc) | ((r.orb + delta) & 0x03)
			if err := r.writeORB(); err != nil {
				return err
			}
		}
	}

	if r.drv.HalfTrack() != halfTrack {
		return curated.Errorf("seek: cannot reach track %.1f", float64(halfTrack)/2.0)
	}

	r.zone = g64.DefaultZone(halfTrack)
	if tr, ok := r.drv.Image().Track(halfTrack); ok {
		r.zone = tr.Zone
	}
	return r.writeORB()
}

// readBytes returns the next n bytes read by the drive and whether each byte
// followed a sync mark. an empty track produces no bytes and reading stops
// after the maximum number of cycles
func (r *reader) readBytes(n int, maxCycles int) ([]uint8, []bool, error) {
	var data []uint8
	var sync []bool

	for c := 0; c < maxCycles && len(data) < n; c++ {
		prev := r.drv.Assembled
		if err := r.step(); err != nil {
			return data, sync, err
		}
		if r.drv.Assembled == prev {
			continue
		}

		// reading port A acknowledges the byte
		v, err := r.mem.Read(via2ORA)
		if err != nil {
			return data, sync, err
		}
		_, s := r.drv.LastByte()
		data = append(data, v)
		sync = append(sync, s)
	}

	return data, sync, nil
}

// dump writes the bytes sixteen to a line. a byte directly after a sync mark
// is marked with an asterisk.
// dumpWidth returns the number of bytes to show on each line of a dump. the
// width is reduced if the output is a narrow terminal.
func dumpWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols < 6+16*3 {
				return 8
			}
		}
	}
	return 16
}

func dump(w io.Writer, data []uint8, sync []bool) {
	width := dumpWidth(w)
	for i, v := range data {
		if i%width == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%04x:", i)
		}
		m := " "
		if sync[i] {
			m = "*"
		}
		fmt.Fprintf(w, "%s%02x", m, v)
	}
	if len(data) > 0 {
		fmt.Fprintln(w)
	}
}

func (p *program) readCommand() *cobra.Command {
	var track float64
	var count int

	cmd := &cobra.Command{
		Use:   "read IN.g64",
		Short: "spin a disk and dump the bytes read from one track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return curated.Errorf("read: %v", err)
			}

			img, err := g64.Parse(p.env, data)
			if err != nil {
				return curated.Errorf("read: %v", err)
			}

			r, err := newReader(p.env, img)
			if err != nil {
				return curated.Errorf("read: %v", err)
			}

			err = r.seek(int(track * 2))
			if err != nil {
				return curated.Errorf("read: %v", err)
			}

			// enough time for two revolutions of the longest track
			maxCycles := count*drive.ZoneCyclesPerByte[0] + 2*g64.DefaultMaxTrackSize*drive.ZoneCyclesPerByte[0]

			b, s, err := r.readBytes(count, maxCycles)
			if err != nil {
				return curated.Errorf("read: %v", err)
			}

			log.Debugf("peripherals: %s", r.per)
			log.Debugf("read took %.03fs of drive time", float64(r.per.Cycles)/clocks.Drive)

			fmt.Fprintf(p.out, "track %.1f zone %d: %d bytes (%d dropped)\n", r.drv.Track(), r.drv.Zone(), len(b), r.drv.Dropped)
			dump(p.out, b, s)

			return nil
		},
	}

	cmd.Flags().Float64Var(&track, "track", 18, "track to read (1 to 41.5)")
	cmd.Flags().IntVar(&count, "bytes", 256, "number of bytes to read")

	return cmd
}
