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
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/drive/g64"
)

func (p *program) memvizCommand() *cobra.Command {
	var disk string
	var cassette string

	cmd := &cobra.Command{
		Use:   "memviz OUT.dot",
		Short: "write a graph of the emulated peripherals in DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (rerr error) {
			img := g64.NewImage()
			if disk != "" {
				data, err := os.ReadFile(disk)
				if err != nil {
					return curated.Errorf("memviz: %v", err)
				}
				img, err = g64.Parse(p.env, data)
				if err != nil {
					return curated.Errorf("memviz: %v", err)
				}
			}

			r, err := newReader(p.env, img)
			if err != nil {
				return curated.Errorf("memviz: %v", err)
			}

			if cassette != "" {
				data, err := os.ReadFile(cassette)
				if err != nil {
					return curated.Errorf("memviz: %v", err)
				}
				err = r.per.Datasette.Insert(data)
				if err != nil {
					return curated.Errorf("memviz: %v", err)
				}
			}

			f, err := os.Create(args[0])
			if err != nil {
				return curated.Errorf("memviz: %v", err)
			}
			defer func() {
				err := f.Close()
				if err != nil && rerr == nil {
					rerr = curated.Errorf("memviz: %v", err)
				}
			}()

			memviz.Map(f, r.per)

			return nil
		},
	}

	cmd.Flags().StringVar(&disk, "disk", "", "G64 image to insert into the drive")
	cmd.Flags().StringVar(&cassette, "tape", "", "T64 or TAP container to insert into the datasette")

	return cmd
}
