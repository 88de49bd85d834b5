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

package assert_test

import (
	"testing"

	"github.com/Dodotree/zebra-sub000/assert"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestGoroutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, uint64(0))
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)
	test.ExpectSuccess(t, assert.SameGoroutine(id))

	other := make(chan uint64)
	go func() {
		other <- assert.GetGoRoutineID()
	}()
	o := <-other
	test.ExpectInequality(t, o, uint64(0))
	test.ExpectInequality(t, o, id)
	test.ExpectFailure(t, assert.SameGoroutine(o))
}
