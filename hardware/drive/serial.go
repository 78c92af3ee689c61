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

// the ATN input bit of VIA1 port B. CA1 of VIA1 is connected to the same
// signal
const pinATNIn = 0x80

// PrimaryAddress returns the address of the drive on the serial bus.
func (d *Drive) PrimaryAddress() int {
	return 8 + d.offset
}

// SerialPort is VIA1 port B, as connected to the serial bus. It implements the
// serialbus.Port interface.
type SerialPort struct {
	drv *Drive
}

// SerialPort returns the port to attach to the serial bus.
func (d *Drive) SerialPort() *SerialPort {
	return &SerialPort{drv: d}
}

// Output implements the serialbus.Port interface. Only bits configured as
// outputs can drive the bus.
func (p *SerialPort) Output() uint8 {
	v := p.drv.VIA1
	return v.PortB() & v.B.DDR
}

// SetInput implements the serialbus.Port interface.
func (p *SerialPort) SetInput(mask uint8, value uint8) error {
	if err := p.drv.VIA1.SetPortBInput(mask, value); err != nil {
		return err
	}
	if mask&pinATNIn == pinATNIn {
		return p.drv.VIA1.SetCA1(value&pinATNIn == pinATNIn)
	}
	return nil
}
