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

package hardware

import (
	"fmt"
	"strings"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/drive"
	"github.com/gopher1541/gopher1541/hardware/serialbus"
	"github.com/gopher1541/gopher1541/hardware/signals"
	"github.com/gopher1541/gopher1541/hardware/tape"
	"github.com/gopher1541/gopher1541/logger"
)

// MaxDrives is the number of device addresses available to drives.
const MaxDrives = 4

// DuplicateDevice is returned by AttachDrive() if the device address is
// already in use.
const DuplicateDevice = "peripherals: device %d already attached"

// Peripherals is the collection of devices attached to the computer.
type Peripherals struct {
	env *environment.Environment

	// the serial bus and the computer's side of it
	Bus      *serialbus.Bus
	Computer *serialbus.Latch

	Drives    []*drive.Drive
	Datasette *tape.Datasette

	// the number of cycles since the peripherals were created
	Cycles uint64

	// the FLAG input of the computer. true for the cycle in which a tape
	// pulse ended
	Flag bool
}

// NewPeripherals is the preferred method of initialisation for the
// Peripherals type. The computer is attached to the serial bus and a datasette
// with no tape is connected.
func NewPeripherals(env *environment.Environment) *Peripherals {
	p := &Peripherals{
		env:       env,
		Bus:       serialbus.NewBus(),
		Computer:  &serialbus.Latch{},
		Datasette: tape.NewDatasette(env),
	}
	p.Bus.Attach(p.Computer, serialbus.ComputerPins, 0)
	return p
}

func (p *Peripherals) String() string {
	s := strings.Builder{}
	s.WriteString(p.Bus.String())
	for _, d := range p.Drives {
		s.WriteString(fmt.Sprintf("\n%d: %s", d.PrimaryAddress(), d))
	}
	s.WriteString(fmt.Sprintf("\n%s", p.Datasette))
	return s.String()
}

// AttachDrive creates a drive with the device address offset and attaches it
// to the serial bus. The cpu argument is the drive's own CPU.
func (p *Peripherals) AttachDrive(cpu signals.CPU, offset int) (*drive.Drive, error) {
	if len(p.Drives) >= MaxDrives {
		return nil, curated.Errorf("peripherals: %v", "too many drives")
	}
	for _, d := range p.Drives {
		if d.DeviceOffset() == offset&0x03 {
			return nil, curated.Errorf(DuplicateDevice, d.PrimaryAddress())
		}
	}

	d, err := drive.NewDrive(p.env, cpu, offset)
	if err != nil {
		return nil, curated.Errorf("peripherals: %v", err)
	}
	p.Bus.Attach(d.SerialPort(), serialbus.DrivePins, d.PrimaryAddress())
	p.Drives = append(p.Drives, d)

	logger.Logf(p.env, "peripherals", "drive %d attached", d.PrimaryAddress())

	return d, nil
}

// Drive returns the drive with the primary address. Returns nil if there is
// no such drive.
func (p *Peripherals) Drive(address int) *drive.Drive {
	for _, d := range p.Drives {
		if d.PrimaryAddress() == address {
			return d
		}
	}
	return nil
}

// Reset all drives. The datasette is not affected.
func (p *Peripherals) Reset() error {
	for _, d := range p.Drives {
		if err := d.Reset(); err != nil {
			return err
		}
	}
	return p.Bus.Step()
}
