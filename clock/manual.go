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

package clock

// Manual is a clock that triggers only when Trigger() is called.
type Manual struct {
	tick chan bool
}

// NewManual is the preferred method of initialisation for the Manual type.
// The backlog is the number of triggers that can be queued before Trigger()
// blocks.
func NewManual(backlog int) *Manual {
	return &Manual{
		tick: make(chan bool, backlog),
	}
}

// Trigger queues a single refresh.
func (m *Manual) Trigger() {
	m.tick <- true
}

// TryTrigger queues a single refresh unless the backlog is full. Returns
// false if the refresh was not queued.
func (m *Manual) TryTrigger() bool {
	select {
	case m.tick <- true:
		return true
	default:
		return false
	}
}

// C implements the Clock interface.
func (m *Manual) C() <-chan bool {
	return m.tick
}

// Stop implements the Clock interface.
func (m *Manual) Stop() {}
