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

package preferences_test

import (
	"testing"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/hardware/clocks"
	"github.com/gopher1541/gopher1541/hardware/preferences"
	"github.com/gopher1541/gopher1541/test"
)

func TestValidate(t *testing.T) {
	p := preferences.NewPreferences()
	test.ExpectEquality(t, p.ClockHz, clocks.PAL)
	test.ExpectSuccess(t, p.Validate())

	p.ClockHz = clocks.NTSC
	test.ExpectSuccess(t, p.Validate())

	p.SampleRate = 0
	err := p.Validate()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, preferences.InvalidPreference))

	p.SetDefaults()
	p.PilotLength = -1
	test.ExpectFailure(t, p.Validate())
}
