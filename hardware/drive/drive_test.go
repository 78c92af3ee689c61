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

package drive_test

import (
	"testing"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/drive"
	"github.com/gopher1541/gopher1541/hardware/drive/g64"
	"github.com/gopher1541/gopher1541/hardware/signals"
	"github.com/gopher1541/gopher1541/hardware/via"
	"github.com/gopher1541/gopher1541/test"
)

type mockCPU struct {
	*signals.IRQ
	overflows int
	level     bool
}

func (c *mockCPU) SetOverflow(level bool) {
	c.overflows++
	c.level = level
}

func (c *mockCPU) Cycles() uint64 {
	return 0
}

func (c *mockCPU) PC() uint16 {
	return 0
}

// addresses of VIA2 registers in the drive's address space
const (
	via2ORB = 0x1c00
	via2ORA = 0x1c01
	via2DDR = 0x1c02
	via2PCR = 0x1c0c
)

// VIA2 PCR values. CA2 (byte ready enable) and CB2 (read/write) are both
// manual
const (
	pcrReadEnabled  = 0xee
	pcrReadDisabled = 0xec
	pcrWrite        = 0xce
)

func newDrive(t *testing.T, offset int) (*drive.Drive, *mockCPU) {
	t.Helper()
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	cpu := &mockCPU{IRQ: signals.NewIRQ()}
	d, err := drive.NewDrive(env, cpu, offset)
	test.DemandSuccess(t, err)
	return d, cpu
}

func write(t *testing.T, d *drive.Drive, address uint16, data uint8) {
	t.Helper()
	test.DemandSuccess(t, d.Mem.Write(address, data), address)
}

func step(t *testing.T, d *drive.Drive, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		test.DemandSuccess(t, d.Step())
	}
}

// the phase, motor, LED and zone bits of VIA2 port B are outputs
func startMotor(t *testing.T, d *drive.Drive, zone uint8) {
	t.Helper()
	write(t, d, via2DDR, 0x6f)
	write(t, d, via2ORB, 0x04|zone<<5)
	write(t, d, via2PCR, pcrReadEnabled)
}

func testImage(t *testing.T, halfTrack int, data []byte) *g64.Image {
	t.Helper()
	img := g64.NewImage()
	test.DemandSuccess(t, img.SetTrack(halfTrack, data, g64.DefaultZone(halfTrack)))
	return img
}

func TestReset(t *testing.T) {
	for offset := 0; offset < 4; offset++ {
		d, _ := newDrive(t, offset)
		test.ExpectEquality(t, d.VIA1.PortB()&0x60, uint8(offset<<5), offset)
		test.ExpectEquality(t, d.VIA2.PortB()&0x10, 0x00, offset)
		test.ExpectEquality(t, d.VIA2.PortB()&0x80, 0x80, offset)
		test.ExpectSuccess(t, d.WriteProtect(), offset)
		test.ExpectFailure(t, d.Motor(), offset)
		test.ExpectFailure(t, d.LED(), offset)
		test.ExpectEquality(t, d.Mode().Kind, drive.Read, offset)
		test.ExpectEquality(t, d.Track(), 18.0, offset)
	}
}

func TestMotorAndLED(t *testing.T) {
	d, _ := newDrive(t, 0)
	write(t, d, via2DDR, 0x6f)
	write(t, d, via2ORB, 0x0c|0x40)
	test.ExpectSuccess(t, d.Motor())
	test.ExpectSuccess(t, d.LED())
	test.ExpectEquality(t, d.Zone(), 2)
	test.ExpectEquality(t, d.CyclesPerByte(), 28)

	// bits configured as inputs do not drive the mechanics
	write(t, d, via2DDR, 0x00)
	test.ExpectFailure(t, d.Motor())
	test.ExpectFailure(t, d.LED())
	test.ExpectEquality(t, d.Zone(), 0)
}

func TestByteAssembly(t *testing.T) {
	d, cpu := newDrive(t, 0)
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0xff, 0xff, 0x52, 0x55, 0xaa, 0x01, 0x23}))
	startMotor(t, d, 3)

	// the first eight one bits are assembled as a byte before the sync mark
	// is detected. on the second revolution the run of ones is a continuation
	// of the final bits of 0x23
	expected := []struct {
		b    uint8
		sync bool
	}{
		{0xff, false}, {0x52, true}, {0x55, false}, {0xaa, false}, {0x01, false},
		{0x23, false}, {0x52, true}, {0x55, false},
	}

	for i, e := range expected {
		step(t, d, d.CyclesPerByte())
		b, sync := d.LastByte()
		test.ExpectEquality(t, b, e.b, i)
		test.ExpectEquality(t, sync, e.sync, i)
		test.ExpectEquality(t, d.VIA2.A.Pins, e.b, i)
		test.ExpectEquality(t, d.VIA2.PortB()&0x80 == 0x00, e.sync, i)
	}

	test.ExpectEquality(t, d.Assembled, len(expected))
	test.ExpectEquality(t, cpu.overflows, len(expected))
	test.ExpectEquality(t, d.Dropped, 0)
	test.ExpectSuccess(t, d.Stream().Wrapped())
}

func TestShortRunOfOnes(t *testing.T) {
	d, _ := newDrive(t, 0)

	// a run of ones that crosses a byte boundary is part of both bytes
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0x00, 0x7f, 0xc0, 0x00}))
	startMotor(t, d, 0)
	readBytes(t, d, []uint8{0x00, 0x7f, 0xc0, 0x00})

	// a run of ten ones is not a sync mark. every bit of the run is kept
	d, _ = newDrive(t, 0)
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0x00, 0xff, 0xc0, 0x00}))
	startMotor(t, d, 0)
	readBytes(t, d, []uint8{0x00, 0xff, 0xc0, 0x00})

	// eleven ones across a byte boundary are one short of a sync mark
	d, _ = newDrive(t, 0)
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0x00, 0x1f, 0xfc, 0x00}))
	startMotor(t, d, 0)
	readBytes(t, d, []uint8{0x00, 0x1f, 0xfc, 0x00})

	// twelve ones across a byte boundary are a sync mark
	d, _ = newDrive(t, 0)
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0x00, 0x0f, 0xff, 0x52}))
	startMotor(t, d, 0)
	readBytes(t, d, []uint8{0x00, 0x0f})
	step(t, d, d.CyclesPerByte())
	b, sync := d.LastByte()
	test.ExpectEquality(t, b, 0x52)
	test.ExpectSuccess(t, sync)
}

func readBytes(t *testing.T, d *drive.Drive, expected []uint8) {
	t.Helper()
	for i, e := range expected {
		step(t, d, d.CyclesPerByte())
		b, sync := d.LastByte()
		test.ExpectFailure(t, sync, i)
		test.ExpectEquality(t, b, e, i)
	}
}

func TestByteReadyInterval(t *testing.T) {
	for zone := 0; zone < 4; zone++ {
		data := []byte{0xff, 0xff}
		for i := 0; i < 40; i++ {
			data = append(data, 0x52, 0x94)
		}

		d, _ := newDrive(t, 0)
		d.Insert(testImage(t, drive.InitialHalfTrack, data))
		startMotor(t, d, uint8(zone))

		var ready []int
		for i := 0; len(ready) < 10; i++ {
			test.DemandSuccess(t, d.Step())
			if d.VIA2.Flags()&via.IntCA1 == via.IntCA1 {
				ready = append(ready, i)

				// reading port A acknowledges the byte
				_, err := d.Mem.Read(via2ORA)
				test.DemandSuccess(t, err)
			}
			test.DemandSuccess(t, i < 10000, "byte ready not asserted")
		}

		for i := 1; i < len(ready); i++ {
			test.ExpectEquality(t, ready[i]-ready[i-1], drive.ZoneCyclesPerByte[zone], zone, i)
		}
	}
	test.ExpectEquality(t, drive.ZoneCyclesPerByte[0], 32)
}

func TestDroppedBytes(t *testing.T) {
	d, cpu := newDrive(t, 0)
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0xff, 0xff, 0x52, 0x55}))
	startMotor(t, d, 0)
	write(t, d, via2PCR, pcrReadDisabled)

	step(t, d, d.CyclesPerByte()*5)
	test.ExpectEquality(t, d.Assembled, 5)
	test.ExpectEquality(t, d.Dropped, 5)
	test.ExpectEquality(t, d.VIA2.Flags()&via.IntCA1, 0)

	// the overflow line is toggled for every byte
	test.ExpectEquality(t, cpu.overflows, 5)
}

func TestNoDisk(t *testing.T) {
	d, cpu := newDrive(t, 0)
	startMotor(t, d, 0)
	step(t, d, 1000)
	test.ExpectEquality(t, d.Assembled, 0)
	test.ExpectEquality(t, cpu.overflows, 0)
	test.ExpectSuccess(t, d.Stream().IsEmpty())

	// a track of only one bits is a sync mark that never ends. only the byte
	// read before the sync mark is detected is assembled
	d.Insert(testImage(t, drive.InitialHalfTrack, []byte{0xff, 0xff, 0xff}))
	step(t, d, 1000)
	test.ExpectEquality(t, d.Assembled, 1)
	b, sync := d.LastByte()
	test.ExpectEquality(t, b, 0xff)
	test.ExpectFailure(t, sync)

	d.Eject()
	test.ExpectSuccess(t, d.Stream().IsEmpty())
	test.ExpectSuccess(t, d.Image() == nil)
}

// cycle the stepper phase n times in the given direction
func cyclePhase(t *testing.T, d *drive.Drive, phase *uint8, n int, forward bool) {
	t.Helper()
	for i := 0; i < n; i++ {
		if forward {
			*phase = (*phase + 1) & 0x03
		} else {
			*phase = (*phase - 1) & 0x03
		}
		write(t, d, via2ORB, 0x04|*phase)
	}
}

func TestStepper(t *testing.T) {
	d, _ := newDrive(t, 0)
	startMotor(t, d, 0)
	var phase uint8

	cyclePhase(t, d, &phase, drive.StepsPerHalfTrack-1, true)
	test.ExpectEquality(t, d.HalfTrack(), drive.InitialHalfTrack)
	test.ExpectEquality(t, d.StepCount(), drive.StepsPerHalfTrack-1)
	cyclePhase(t, d, &phase, 1, true)
	test.ExpectEquality(t, d.Track(), 17.5)
	test.ExpectEquality(t, d.StepCount(), 0)

	cyclePhase(t, d, &phase, drive.StepsPerHalfTrack, false)
	test.ExpectEquality(t, d.Track(), 18.0)

	// the head never moves beyond the limits
	for i := 0; i < 100; i++ {
		cyclePhase(t, d, &phase, drive.StepsPerHalfTrack, true)
		test.DemandSuccess(t, d.Track() >= 1.0, i)
	}
	test.ExpectEquality(t, d.Track(), 1.0)

	for i := 0; i < 100; i++ {
		cyclePhase(t, d, &phase, drive.StepsPerHalfTrack, false)
		test.DemandSuccess(t, d.Track() <= 41.5, i)
	}
	test.ExpectEquality(t, d.Track(), 41.5)
}

func TestStepperMotorOff(t *testing.T) {
	d, _ := newDrive(t, 0)
	write(t, d, via2DDR, 0x6f)

	var phase uint8
	for i := 0; i < drive.StepsPerHalfTrack*2; i++ {
		phase = (phase + 1) & 0x03
		write(t, d, via2ORB, phase)
	}
	test.ExpectEquality(t, d.HalfTrack(), drive.InitialHalfTrack)
	test.ExpectEquality(t, d.StepCount(), 0)
}

func TestTrackChange(t *testing.T) {
	d, _ := newDrive(t, 0)
	img := g64.NewImage()
	test.DemandSuccess(t, img.SetTrack(36, make([]byte, 100), 2))
	test.DemandSuccess(t, img.SetTrack(35, make([]byte, 200), 2))
	d.Insert(img)
	startMotor(t, d, 0)

	// advance a quarter of a revolution
	for d.Stream().Consumed() < 200 {
		test.DemandSuccess(t, d.Step())
	}
	pos := d.Stream().Position()

	var phase uint8
	cyclePhase(t, d, &phase, drive.StepsPerHalfTrack, true)
	test.ExpectEquality(t, d.HalfTrack(), 35)
	test.ExpectEquality(t, d.Stream().Len(), 1600)
	test.ExpectApproximate(t, d.Stream().Position(), pos, 0.01)

	// half-track 34 has no data
	cyclePhase(t, d, &phase, drive.StepsPerHalfTrack, true)
	test.ExpectSuccess(t, d.Stream().IsEmpty())
}

func TestWriteMode(t *testing.T) {
	d, _ := newDrive(t, 0)
	startMotor(t, d, 0)

	err := d.Mem.Write(via2PCR, pcrWrite)
	test.ExpectSuccess(t, curated.Is(err, drive.WriteModeUnsupported))
	test.ExpectEquality(t, d.Mode().Kind, drive.Write)

	for i := 0; i < 3; i++ {
		err = d.Step()
		test.ExpectSuccess(t, curated.Is(err, drive.WriteModeUnsupported), i)
	}

	// returning to read mode resets the mode counter
	write(t, d, via2PCR, pcrReadEnabled)
	test.ExpectEquality(t, d.Mode().Kind, drive.Read)
	test.ExpectEquality(t, d.Mode().Counter, d.CyclesPerByte())
	test.ExpectSuccess(t, d.Step())
}
