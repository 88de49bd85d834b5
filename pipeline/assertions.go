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

//go:build assertions

package pipeline

import (
	"fmt"

	"github.com/Dodotree/zebra-sub000/assert"
)

// owner is the goroutine that created the pipeline.
type owner uint64

func newOwner() owner {
	return owner(assert.GetGoRoutineID())
}

func (o owner) check() {
	if !assert.SameGoroutine(uint64(o)) {
		panic(fmt.Sprintf("pipeline: called from goroutine %d but created by goroutine %d", assert.GetGoRoutineID(), uint64(o)))
	}
}
