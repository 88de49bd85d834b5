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

package test

import (
	"fmt"
)

// RingWriter is an io.Writer that keeps only the most recent bytes written to
// it. It is useful for checking the tail of output that would otherwise grow
// without limit, such as a call trace.
type RingWriter struct {
	buffer []byte
	cursor int

	// the buffer has been filled at least once and the oldest byte is at the
	// cursor position
	full bool
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type. The size is the number of bytes kept.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("test: invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, size),
	}, nil
}

// String returns the bytes in the ring, oldest first.
func (r *RingWriter) String() string {
	if r.full {
		return string(r.buffer[r.cursor:]) + string(r.buffer[:r.cursor])
	}
	return string(r.buffer[:r.cursor])
}

// Reset empties the ring.
func (r *RingWriter) Reset() {
	r.cursor = 0
	r.full = false
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (int, error) {
	n := len(p)
	size := len(r.buffer)

	// only the tail of a long write will survive
	if n >= size {
		copy(r.buffer, p[n-size:])
		r.cursor = 0
		r.full = true
		return n, nil
	}

	if r.cursor+n >= size {
		r.full = true
	}
	c := copy(r.buffer[r.cursor:], p)
	copy(r.buffer, p[c:])
	r.cursor = (r.cursor + n) % size

	return n, nil
}
