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

package capture

import "fmt"

// ReadyState indicates how much of a frame is available.
type ReadyState int

// List of valid ReadyState values. The values are ordered such that a state
// implies every state before it.
const (
	HaveNothing ReadyState = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

func (r ReadyState) String() string {
	switch r {
	case HaveNothing:
		return "nothing"
	case HaveMetadata:
		return "metadata"
	case HaveCurrentData:
		return "current data"
	case HaveFutureData:
		return "future data"
	case HaveEnoughData:
		return "enough data"
	}
	return fmt.Sprintf("unknown ready state (%d)", int(r))
}

// Decodable returns true if the frame pixels can be used.
func (r ReadyState) Decodable() bool {
	return r >= HaveCurrentData
}

// Frame is a single image from a Source.
type Frame struct {
	Width  int
	Height int

	// bits per pixel. one of 8, 24 or 32
	Depth int

	// rows of pixels, top row first, with no padding between rows
	Pixels []byte

	Ready ReadyState

	// incremented by the source for every new frame
	Sequence int
}

// Stride returns the number of bytes in one row of pixels.
func (f Frame) Stride() int {
	return f.Width * f.Depth / 8
}

// Source is implemented by anything that can supply frames.
type Source interface {
	// Frame returns the most recent frame. The pixel data should not be
	// modified and is only valid until the next call to Frame()
	Frame() Frame

	// Close releases any resources held by the source
	Close() error
}

// Resizer is implemented by sources that can change the size of the frames
// they deliver while running. Frames of the previous size may still be
// returned by Frame() until the source has caught up.
type Resizer interface {
	Resize(width int, height int) error
}
