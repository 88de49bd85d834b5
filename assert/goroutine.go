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

// Package assert contains helpers for checking conditions that should never
// be false. The helpers are for debugging and testing and are usually only
// compiled in with the assertions build tag.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for the calling goroutine. The result
// is different between goroutines and consistent for a given goroutine.
//
// The identifier is taken from the header of a stack trace and should only
// be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// SameGoroutine returns true if the calling goroutine has the identifier.
func SameGoroutine(id uint64) bool {
	return GetGoRoutineID() == id
}
