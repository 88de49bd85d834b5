// This file is part of zebra.
//
// zebra is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zebra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zebra.  If not, see <https://www.gnu.org/licenses/>.

package capture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/prefs"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := capture.NewPreferencesFile(pth)
	test.DemandSuccess(t, err)

	w, h := p.Size()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 480)

	test.ExpectFailure(t, p.Width.Set(0))
	test.ExpectFailure(t, p.Depth.Set(16))
	test.ExpectSuccess(t, p.Depth.Set(8))
	test.ExpectSuccess(t, p.Device.Set("/dev/video2"))
	test.DemandSuccess(t, p.Save())

	// file is shared with other preferences
	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "capture.device :: /dev/video2\n"))

	q, err := capture.NewPreferencesFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Depth.Get().(int), 8)
	test.ExpectEquality(t, q.Device.String(), "/dev/video2")
}

func TestPreferencesCommandLine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	prefs.PushCommandLineStack("capture.width::320; capture.height::240")
	defer prefs.PopCommandLineStack()

	p, err := capture.NewPreferencesFile(pth)
	test.DemandSuccess(t, err)

	w, h := p.Size()
	test.ExpectEquality(t, w, 320)
	test.ExpectEquality(t, h, 240)
}
