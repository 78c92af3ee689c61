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
	"fmt"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/drive/flux"
	"github.com/gopher1541/gopher1541/hardware/drive/g64"
	"github.com/gopher1541/gopher1541/hardware/memory"
	"github.com/gopher1541/gopher1541/hardware/signals"
	"github.com/gopher1541/gopher1541/hardware/via"
	"github.com/gopher1541/gopher1541/logger"
)

// WriteModeUnsupported is returned when the drive is put into write mode.
const WriteModeUnsupported = "drive: write mode is not supported"

// ZoneCyclesPerByte is the number of cycles taken to read one byte for each of
// the four bit-rate zones. Zone 0 is the slowest.
var ZoneCyclesPerByte = [4]int{32, 30, 28, 26}

// Limits of head movement in half-tracks. Track 1 is half-track 2.
const (
	MinHalfTrack     = g64.MinHalfTrack
	MaxHalfTrack     = 83
	InitialHalfTrack = 36

	// the number of phase changes required to move the head by one
	// half-track
	StepsPerHalfTrack = 200
)

// the bits of VIA2 port B
const (
	pinPhase        = 0x03
	pinMotor        = 0x04
	pinLED          = 0x08
	pinWriteProtect = 0x10
	pinZone         = 0x60
	pinSync         = 0x80
)

// the bits of VIA1 port B used for the device address
const pinDeviceAddress = 0x60

// the number of consecutive one bits that make up a sync mark
const syncLength = 12

// Drive is the mechanics and read circuitry of a disk drive.
type Drive struct {
	env *environment.Environment
	cpu signals.CPU

	// VIA1 is connected to the serial bus and VIA2 controls the mechanics
	VIA1 *via.VIA
	VIA2 *via.VIA

	// the address space of the drive as seen by the CPU
	Mem *memory.Memory

	// device address offset. the primary address of the drive on the serial
	// bus is 8 plus the offset
	offset int

	image  *g64.Image
	stream *flux.Stream

	// head position, stepper motor state
	halfTrack int
	stepCount int
	phase     uint8

	motor        bool
	led          bool
	writeProtect bool
	zone         int

	mode Mode

	// level of the overflow line last given to the CPU
	overflow bool

	// the byte ready line (CA1 of VIA2) is low and must be restored on the
	// next cycle
	byteReady bool

	// the most recently assembled byte and whether it was read from directly
	// after a sync mark
	lastByte uint8
	lastSync bool

	// consecutive one bits most recently read from the stream. the count
	// carries across byte boundaries
	ones int

	// number of bytes assembled and the number of bytes dropped because byte
	// ready was not enabled
	Assembled int
	Dropped   int
}

// NewDrive is the preferred method of initialisation for the Drive type. The
// cpu argument is used for the interrupt and overflow lines. The offset
// argument is the device address offset (0 to 3).
func NewDrive(env *environment.Environment, cpu signals.CPU, offset int) (*Drive, error) {
	d := &Drive{
		env:       env,
		cpu:       cpu,
		offset:    offset & 0x03,
		halfTrack: InitialHalfTrack,
		stream:    flux.Empty(),
	}

	d.VIA1 = via.NewVIA(env, "VIA1", cpu)
	d.VIA2 = via.NewVIA(env, "VIA2", cpu)
	d.Mem = memory.NewMemory(d.VIA1, d.VIA2)

	err := d.VIA2.AttachListener(mechanics{drv: d})
	if err != nil {
		return nil, curated.Errorf("drive: %v", err)
	}

	err = d.Reset()
	if err != nil {
		return nil, curated.Errorf("drive: %v", err)
	}

	return d, nil
}

func (d *Drive) String() string {
	return fmt.Sprintf("track %.1f zone %d motor %v led %v mode %s stream %s",
		d.Track(), d.zone, d.motor, d.led, d.mode, d.stream)
}

// Reset the drive to its power-on state. The disk remains inserted and the
// head is not moved.
func (d *Drive) Reset() error {
	if err := d.VIA1.Reset(); err != nil {
		return err
	}
	if err := d.VIA2.Reset(); err != nil {
		return err
	}

	d.motor = false
	d.led = false
	d.writeProtect = true
	d.stepCount = 0
	d.byteReady = false
	d.ones = 0
	d.mode = Mode{Kind: Read, Counter: d.CyclesPerByte()}

	if err := d.VIA1.SetPortBInput(pinDeviceAddress, uint8(d.offset<<5)); err != nil {
		return err
	}

	// write protect sense is low when the disk is protected. sync sense is
	// high when there is no sync
	if err := d.VIA2.SetPortBInput(pinWriteProtect|pinSync, pinSync); err != nil {
		return err
	}

	return d.VIA2.SetCA1(true)
}

// DeviceOffset returns the device address offset of the drive.
func (d *Drive) DeviceOffset() int {
	return d.offset
}

// Insert a disk into the drive. The stream for the current track is reloaded
// immediately.
func (d *Drive) Insert(img *g64.Image) {
	d.image = img
	d.loadStream()
	logger.Logf(d.env, "drive", "disk inserted (%d half-tracks)", img.NumTracks())
}

// Eject the disk. The drive continues to run with an empty stream.
func (d *Drive) Eject() {
	if d.image == nil {
		return
	}
	d.image = nil
	d.loadStream()
	logger.Log(d.env, "drive", "disk ejected")
}

// Image returns the inserted disk. Returns nil if there is no disk.
func (d *Drive) Image() *g64.Image {
	return d.image
}

// Stream returns the bit recovery stream for the current head position.
func (d *Drive) Stream() *flux.Stream {
	return d.stream
}

// loadStream replaces the stream with one for the current half-track. The
// angular position of the disk is preserved.
func (d *Drive) loadStream() {
	pos := d.stream.Position()
	d.ones = 0

	if d.image != nil {
		if tr, ok := d.image.Track(d.halfTrack); ok && len(tr.Data) > 0 {
			bits := len(tr.Data) * 8
			d.stream = flux.NewStream(tr.Data, bits, int(pos*float64(bits)))
			return
		}
	}

	d.stream = flux.Empty()
}

// Track returns the position of the head as a track number in the range 1.0
// to 41.5.
func (d *Drive) Track() float64 {
	return float64(d.halfTrack) / 2.0
}

// HalfTrack returns the position of the head in half-tracks.
func (d *Drive) HalfTrack() int {
	return d.halfTrack
}

// StepCount returns the number of phase changes since the head last moved.
func (d *Drive) StepCount() int {
	return d.stepCount
}

// Motor returns true if the spindle motor is running.
func (d *Drive) Motor() bool {
	return d.motor
}

// LED returns true if the drive LED is lit.
func (d *Drive) LED() bool {
	return d.led
}

// WriteProtect returns true if the disk is write protected.
func (d *Drive) WriteProtect() bool {
	return d.writeProtect
}

// Zone returns the currently selected bit-rate zone.
func (d *Drive) Zone() int {
	return d.zone
}

// CyclesPerByte returns the number of cycles taken to read one byte in the
// current bit-rate zone.
func (d *Drive) CyclesPerByte() int {
	return ZoneCyclesPerByte[d.zone]
}

// Mode returns the current state of the read/write circuitry.
func (d *Drive) Mode() Mode {
	return d.mode
}

// LastByte returns the most recently assembled byte and whether the byte was
// the first after a sync mark.
func (d *Drive) LastByte() (uint8, bool) {
	return d.lastByte, d.lastSync
}

// Step the drive forward one cycle.
func (d *Drive) Step() error {
	if d.byteReady {
		d.byteReady = false
		if err := d.VIA2.SetCA1(true); err != nil {
			return err
		}
	}

	if err := d.VIA1.Step(); err != nil {
		return err
	}
	if err := d.VIA2.Step(); err != nil {
		return err
	}

	if d.mode.Kind == Write {
		return curated.Errorf(WriteModeUnsupported)
	}

	if !d.motor || d.stream.IsEmpty() {
		return nil
	}

	d.mode.Counter--
	if d.mode.Counter > 0 {
		return nil
	}
	d.mode.Counter = d.CyclesPerByte()

	b, sync, ok := d.assembleByte()
	if !ok {
		return nil
	}

	return d.deliver(b, sync)
}
