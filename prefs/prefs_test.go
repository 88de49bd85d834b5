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

package prefs_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Dodotree/zebra-sub000/prefs"
	"github.com/Dodotree/zebra-sub000/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
}

func cmpPrefFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(1))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectEquality(t, v.String(), "0.000")

	test.ExpectSuccess(t, v.Set(0.25))
	test.ExpectEquality(t, v.String(), "0.250")

	test.ExpectSuccess(t, v.Set("0.75"))
	test.ExpectEquality(t, v.Get().(float64), 0.75)

	test.ExpectSuccess(t, v.Set(1))
	test.ExpectEquality(t, v.Get().(float64), 1.0)

	test.ExpectFailure(t, v.Set("half"))
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	var post int
	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 1 {
			return errors.New("must be at least one")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(3))
	test.ExpectEquality(t, post, 3)

	// the pre hook prevents the value from changing
	test.ExpectFailure(t, v.Set(0))
	test.ExpectEquality(t, v.Get().(int), 3)
	test.ExpectEquality(t, post, 3)
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)

	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 1
	h = 2

	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "generic :: 1,2\n")

	w = 0
	h = 0

	// reload from disk and check that the values have been restored
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, h, 2)
}

// write bool and then a string from a different prefs.Disk instance. the
// second write must not clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	// new disk instance using the same file
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpPrefFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// removing the maximum length does not restore the cropped string
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	// a new string is cropped to the maximum length
	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestKeys(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectFailure(t, dsk.Add("", &v))
	test.ExpectFailure(t, dsk.Add("has space", &v))
	test.ExpectFailure(t, dsk.Add("has::separator", &v))
	test.ExpectSuccess(t, dsk.Add("pipeline.debug", &v))
	test.ExpectFailure(t, dsk.Add("pipeline.debug", &v))

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
}

func TestLoad(t *testing.T) {
	fn := tmpPrefFile(t)

	contents := fmt.Sprintf("%s\npipeline.iterations :: 4\ncapture.orientation :: portrait\nmalformed line\n", prefs.WarningBoilerPlate)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(contents), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var iterations prefs.Int
	var debug prefs.Bool
	test.ExpectSuccess(t, dsk.Add("pipeline.iterations", &iterations))
	test.ExpectSuccess(t, dsk.Add("pipeline.debug", &debug))

	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, iterations.Get().(int), 4)
	test.ExpectEquality(t, debug.Get().(bool), false)

	// command line takes priority over the file
	prefs.PushCommandLineStack("pipeline.iterations::2; pipeline.debug::true")
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, iterations.Get().(int), 2)
	test.ExpectEquality(t, debug.Get().(bool), true)

	// the defunct entry and the malformed line are dropped on save
	test.DemandSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "pipeline.debug :: true\npipeline.iterations :: 2\n")
}

func TestNotPrefsFile(t *testing.T) {
	fn := tmpPrefFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("zebra\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dsk.Load(false))
	test.ExpectFailure(t, dsk.Save())
}

func TestSaveOnFirstUse(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, v.Set(7))
	test.ExpectSuccess(t, dsk.Add("value", &v))
	test.DemandSuccess(t, dsk.Load(true))

	cmpPrefFile(t, fn, "value :: 7\n")
}
