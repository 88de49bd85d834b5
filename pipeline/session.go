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

package pipeline

import "fmt"

// State of the processing cycle.
type State int

// List of valid State values.
const (
	Idle State = iota
	Packing
	Iterating
	Comparing
	Unpacking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Packing:
		return "packing"
	case Iterating:
		return "iterating"
	case Comparing:
		return "comparing"
	case Unpacking:
		return "unpacking"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// session is the state of a single processing cycle. a session exists from
// the moment a frame is accepted until the unpack pass has been issued.
type session struct {
	state State

	// number of dilation passes issued and the number required
	count int
	max   int

	// texture unit of the texture holding the current mask
	mask int

	// the comparison pass has been issued and the query result is pending
	queryIssued bool

	// sequence number of the frame being processed
	frame int
}

func (s *session) String() string {
	if s.state == Iterating {
		return fmt.Sprintf("%s(%d/%d)", s.state, s.count, s.max)
	}
	return s.state.String()
}
