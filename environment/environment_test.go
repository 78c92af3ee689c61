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

package environment_test

import (
	"testing"

	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/clocks"
	"github.com/gopher1541/gopher1541/hardware/preferences"
	"github.com/gopher1541/gopher1541/logger"
	"github.com/gopher1541/gopher1541/test"
)

func TestPermission(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.ExpectSuccess(t, env.AllowLogging())

	env.Prefs.Quiet = true
	test.ExpectFailure(t, env.AllowLogging())

	env.Normalise()
	test.ExpectSuccess(t, env.AllowLogging())

	other := environment.NewEnvironment("comparison", env.Prefs)
	test.ExpectFailure(t, other.AllowLogging())

	var _ logger.Permission = env
}

func TestSharedPreferences(t *testing.T) {
	prefs := preferences.NewPreferences()
	a := environment.NewEnvironment(environment.MainEmulation, prefs)
	b := environment.NewEnvironment("second", prefs)
	a.Prefs.DebugBytes = true
	test.ExpectSuccess(t, b.Prefs.DebugBytes)
	test.ExpectEquality(t, b.Prefs.ClockHz, clocks.PAL)
}
