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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Dodotree/zebra-sub000/paths"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestResourcePath(t *testing.T) {
	// a .zebra directory in the current directory is preferred
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	dir := t.TempDir()
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Mkdir(".zebra", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".zebra", "foo", "bar", "baz"))

	// directory has been created
	fi, err := os.Stat(filepath.Join(".zebra", "foo", "bar"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".zebra", "baz"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".zebra")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("mask", "")
	test.ExpectSuccess(t, regexp.MustCompile(`^mask_\d{8}_\d{6}$`).MatchString(fn))

	fn = paths.UniqueFilename("mask", " camera 0/hd ")
	test.ExpectSuccess(t, regexp.MustCompile(`^mask_camera_0_hd_\d{8}_\d{6}$`).MatchString(fn))
}
