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

	"github.com/gopher1541/gopher1541/hardware/serialbus"
	"github.com/gopher1541/gopher1541/hardware/via"
	"github.com/gopher1541/gopher1541/test"
)

func TestSerialBus(t *testing.T) {
	d, _ := newDrive(t, 1)
	test.ExpectEquality(t, d.PrimaryAddress(), 9)

	bus := serialbus.NewBus()
	host := &serialbus.Latch{}
	bus.Attach(host, serialbus.ComputerPins, 0)
	dev := bus.Attach(d.SerialPort(), serialbus.DrivePins, d.PrimaryAddress())
	test.ExpectEquality(t, dev.PrimaryAddress(), 9)

	// VIA1 data out, clock out and ATN acknowledge are outputs. interrupt on
	// the rising edge of CA1
	test.DemandSuccess(t, d.Mem.Write(0x1802, 0x1a))
	test.DemandSuccess(t, d.Mem.Write(0x180c, 0x01))

	test.DemandSuccess(t, bus.Step())
	test.ExpectFailure(t, bus.ATN())
	test.ExpectFailure(t, bus.Data())
	test.ExpectEquality(t, d.VIA1.PortB()&0x85, 0x00)

	// the host asserts ATN. the drive acknowledges immediately by pulling
	// DATA
	host.Out = 0x08
	test.DemandSuccess(t, bus.Step())
	test.ExpectSuccess(t, dev.ATN())
	test.ExpectSuccess(t, dev.Data())
	test.ExpectEquality(t, d.VIA1.PortB()&0x80, 0x80)
	test.ExpectEquality(t, d.VIA1.Flags()&via.IntCA1, via.IntCA1)
	test.ExpectEquality(t, host.In&0x80, 0x00)

	// the drive CPU sets ATNA and the hardware releases DATA
	test.DemandSuccess(t, d.Mem.Write(0x1800, 0x10))
	test.DemandSuccess(t, bus.Step())
	test.ExpectFailure(t, dev.Data())
	test.ExpectEquality(t, host.In&0x80, 0x80)

	// the drive pulls CLK
	test.DemandSuccess(t, d.Mem.Write(0x1800, 0x18))
	test.DemandSuccess(t, bus.Step())
	test.ExpectSuccess(t, bus.Clock())
	test.ExpectEquality(t, host.In&0x40, 0x00)
	test.ExpectFailure(t, dev.IsDataTransferActive())

	// the host releases ATN and the drive releases ATNA
	host.Out = 0x00
	test.DemandSuccess(t, d.Mem.Write(0x1800, 0x08))
	test.DemandSuccess(t, bus.Step())
	test.ExpectSuccess(t, dev.IsDataTransferActive())
	test.ExpectEquality(t, d.VIA1.PortB()&0x84, 0x04)
}
