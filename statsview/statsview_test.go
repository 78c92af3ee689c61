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

package statsview_test

import (
	"testing"

	"github.com/gopher1541/gopher1541/statsview"
	"github.com/gopher1541/gopher1541/test"
)

func TestStub(t *testing.T) {
	if statsview.Available() {
		t.Skip("stats server is built in")
	}
	w := &test.CompareWriter{}
	statsview.Launch(w)
	test.ExpectSuccess(t, w.Compare("stats server not available in this build\n"))
}
