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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/console/ansi"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "pipeline", "created")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "pipeline: created\n")

	w.Reset()
	log.Logf(logger.Allow, "capture", "frame %dx%d", 640, 480)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "pipeline: created\ncapture: frame 640x480\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "pipeline: created\ncapture: frame 640x480\n")

	// asking for fewer entries is okay too
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "capture: frame 640x480\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "pipeline", errors.New("dilation pass: invalid operation"))
	log.Log(logger.Allow, "pipeline", errors.New("dilation pass: invalid operation"))
	log.Log(logger.Allow, "pipeline", errors.New("dilation pass: invalid operation"))
	log.Write(w)
	test.ExpectEquality(t, w.String(), "pipeline: dilation pass: invalid operation (repeat x3)\n")

	log.BorrowLog(func(e []logger.Entry) {
		test.ExpectEquality(t, len(e), 1)
		test.ExpectEquality(t, e[0].Repeated, 2)
	})
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")

	log.Clear()
	w.Reset()
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestRecent(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "a: 1\n")

	w.Reset()
	log.Log(logger.Allow, "b", "2")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "b: 2\n")

	// nothing new
	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "")

	// echo is written to as entries are made
	log.SetEcho(w, false)
	log.Log(logger.Allow, "c", "3")
	test.ExpectEquality(t, w.String(), "c: 3\n")
	log.SetEcho(nil, false)
	log.Log(logger.Allow, "d", "4")
	test.ExpectEquality(t, w.String(), "c: 3\n")
}

type prohibit struct{}

func (prohibit) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(prohibit{}, "a", "1")
	log.Logf(prohibit{}, "b", "%d", 2)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestColorizer(t *testing.T) {
	w := &strings.Builder{}
	c := logger.NewColorizer(w)

	n, err := c.Write([]byte("pipeline: created\npipeline: compiling shader failed\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 52)
	test.ExpectEquality(t, w.String(), "pipeline: created\n"+ansi.DimPens["red"]+"pipeline: compiling shader failed"+ansi.NormalPen+"\n")
}
