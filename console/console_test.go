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

package console_test

import (
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestLookup(t *testing.T) {
	c, ok := console.Lookup('+')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c, console.IterationsUp)

	c, ok = console.Lookup('q')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c, console.Quit)

	// ctrl-c quits
	c, ok = console.Lookup(0x03)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c, console.Quit)

	// keys are case sensitive
	c, _ = console.Lookup('e')
	test.ExpectEquality(t, c, console.ExposureDown)
	c, _ = console.Lookup('E')
	test.ExpectEquality(t, c, console.ExposureUp)

	c, _ = console.Lookup('<')
	test.ExpectEquality(t, c, console.ResolutionDown)
	c, _ = console.Lookup('>')
	test.ExpectEquality(t, c, console.ResolutionUp)

	_, ok = console.Lookup('z')
	test.ExpectFailure(t, ok)
}

func TestHelpText(t *testing.T) {
	h := console.HelpText()
	test.ExpectSuccess(t, strings.Contains(h, "  +  more iterations\n"))
	test.ExpectSuccess(t, strings.Contains(h, "  q  quit\n"))
	test.ExpectSuccess(t, strings.Contains(h, "  <  lower resolution\n"))

	// control characters are not listed
	test.ExpectFailure(t, strings.Contains(h, "\x1b"))
}

func TestCommandNames(t *testing.T) {
	for c := console.NoCommand; c <= console.Quit; c++ {
		test.ExpectFailure(t, strings.HasPrefix(c.String(), "unknown"), int(c))
	}
	test.ExpectSuccess(t, strings.HasPrefix(console.Command(100).String(), "unknown"))
}
