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
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/drive/g64"
	"github.com/gopher1541/gopher1541/hardware/memory/memorymap"
	"github.com/gopher1541/gopher1541/hardware/tape"
	"github.com/gopher1541/gopher1541/hardware/tape/encoding"
	"github.com/gopher1541/gopher1541/hardware/tape/pulse"
	"github.com/gopher1541/gopher1541/hardware/tape/soundload"
	"github.com/gopher1541/gopher1541/hardware/tape/t64"
	"github.com/gopher1541/gopher1541/hardware/tape/tap"
	"github.com/gopher1541/gopher1541/paths"
	"github.com/gopher1541/gopher1541/wavwriter"
)

func (p *program) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "describe a T64, TAP or G64 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return curated.Errorf("info: %v", err)
			}

			switch {
			case bytes.HasPrefix(data, []byte(g64.Signature)):
				return p.infoG64(data)
			case bytes.HasPrefix(data, []byte(tap.Magic)):
				return p.infoTAP(data)
			case bytes.HasPrefix(data, []byte(t64.Magic)):
				return p.infoT64(data)
			}

			return curated.Errorf("info: %v", tape.UnrecognisedFormat)
		},
	}
}

func (p *program) infoG64(data []byte) error {
	img, err := g64.Parse(p.env, data)
	if err != nil {
		return curated.Errorf("info: %v", err)
	}

	fmt.Fprintf(p.out, "G64 version %d: %d half-tracks, max track size %d\n", img.Version, img.NumTracks(), img.MaxTrackSize)
	for ht := g64.MinHalfTrack; ht <= g64.MaxHalfTrack; ht++ {
		if tr, ok := img.Track(ht); ok {
			fmt.Fprintf(p.out, "  track %4.1f: %5d bytes, zone %d\n", float64(ht)/2.0, len(tr.Data), tr.Zone)
		}
	}

	return nil
}

func (p *program) infoTAP(data []byte) error {
	c, err := tap.Parse(p.env, data)
	if err != nil {
		return curated.Errorf("info: %v", err)
	}

	pulses := c.Pulses()
	fmt.Fprintf(p.out, "TAP version %d: %d pulses, %.02fs\n", c.Version, len(pulses), p.seconds(pulses))
	p.decode(pulses)

	return nil
}

func (p *program) infoT64(data []byte) error {
	c, err := t64.Parse(p.env, data)
	if err != nil {
		return curated.Errorf("info: %v", err)
	}

	fmt.Fprintf(p.out, "T64 %q version %04x: %d of %d entries\n", c.Name, c.Version, len(c.Entries), c.MaxEntries)
	for _, e := range c.Entries {
		fmt.Fprintf(p.out, "  %-16s %04x -> %04x (%d bytes)\n", e.Name, e.Start, e.End, len(e.Data))
	}

	return nil
}

func (p *program) seconds(pulses []pulse.Pulse) float64 {
	return float64(pulse.Duration(pulses)) / float64(p.env.Prefs.ClockHz)
}

// decode the pulses and list the files found
func (p *program) decode(pulses []pulse.Pulse) {
	dec := encoding.NewDecoder(p.env)
	dec.Pulses(pulses)
	dec.Flush()

	for _, f := range dec.Files() {
		fmt.Fprintf(p.out, "  %s\n", f)
	}
	if dec.PulseErrors > 0 || dec.ParityErrors > 0 || dec.ChecksumErrors > 0 {
		fmt.Fprintf(p.out, "  errors: %d pulse, %d parity, %d checksum\n", dec.PulseErrors, dec.ParityErrors, dec.ChecksumErrors)
	}
}

// insert the named file into a datasette
func (p *program) insert(filename string) (*tape.Datasette, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	d := tape.NewDatasette(p.env)
	err = d.Insert(data)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func writeTAP(filename string, c *tap.Container) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = err
		}
	}()

	_, err = c.WriteTo(f)
	return err
}

func (p *program) tapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tap IN.t64 OUT.tap",
		Short: "encode a T64 container as a TAP container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := p.insert(args[0])
			if err != nil {
				return curated.Errorf("tap: %v", err)
			}
			if d.Format() != tape.T64 {
				return curated.Errorf("tap: %v", "input is not a T64 container")
			}

			c := tap.FromPulses(d.Pulses())
			if err := writeTAP(args[1], c); err != nil {
				return curated.Errorf("tap: %v", err)
			}

			fmt.Fprintf(p.out, "%d pulses written to %s (%.02fs)\n", len(c.Cycles), args[1], p.seconds(d.Pulses()))
			return nil
		},
	}
}

func (p *program) wavCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wav IN OUT.wav",
		Short: "render a T64 or TAP container as audio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := p.insert(args[0])
			if err != nil {
				return curated.Errorf("wav: %v", err)
			}

			aw := wavwriter.New(p.env)
			aw.Render(d.Pulses())
			if err := aw.WriteFile(args[1]); err != nil {
				return curated.Errorf("wav: %v", err)
			}

			fmt.Fprintf(p.out, "%d samples written to %s\n", aw.Samples(), args[1])
			return nil
		},
	}
}

func (p *program) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import IN.wav|IN.mp3 [OUT.tap]",
		Short: "recover the pulses from a tape recording",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := soundload.FormatFromFilename(args[0])
			if err != nil {
				return curated.Errorf("import: %v", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return curated.Errorf("import: %v", err)
			}
			defer f.Close()

			pcm, err := soundload.Decode(p.env, f, format)
			if err != nil {
				return curated.Errorf("import: %v", err)
			}

			d := tape.NewDatasette(p.env)
			d.InsertPulses(soundload.Pulses(p.env, pcm))

			fmt.Fprintf(p.out, "%d pulses recovered (%.02fs)\n", len(d.Pulses()), p.seconds(d.Pulses()))
			p.decode(d.Pulses())

			out := paths.UniqueFilename("import", args[0], "tap")
			if len(args) > 1 {
				out = args[1]
			}
			if err := writeTAP(out, tap.FromPulses(d.Pulses())); err != nil {
				return curated.Errorf("import: %v", err)
			}
			fmt.Fprintf(p.out, "written to %s\n", out)

			return nil
		},
	}
}

func (p *program) memmapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "memmap",
		Short: "print the address map of the drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return memorymap.WriteSummary(p.out)
		},
	}
}
