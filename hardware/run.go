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

// PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Step the peripherals forward one cycle. The drives are stepped first, then
// the serial bus settles and finally the tape moves. The cycleCallback
// function is called at the end of the cycle. It can be nil.
func (p *Peripherals) Step(cycleCallback func() error) error {
	for _, d := range p.Drives {
		if err := d.Step(); err != nil {
			return err
		}
	}

	if err := p.Bus.Step(); err != nil {
		return err
	}

	p.Flag = p.Datasette.Step()
	p.Cycles++

	if cycleCallback != nil {
		return cycleCallback()
	}
	return nil
}

// Run the peripherals until the continueCheck function returns false. The
// continueCheck function is called after every cycle. A nil continueCheck
// runs the peripherals until an error occurs.
func (p *Peripherals) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		if err := p.Step(nil); err != nil {
			return err
		}

		ok, err := continueCheck()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// RunForCycles runs the peripherals for the specified number of cycles.
func (p *Peripherals) RunForCycles(n int, continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for i := 0; i < n; i++ {
		if err := p.Step(nil); err != nil {
			return err
		}

		ok, err := continueCheck()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	return nil
}
