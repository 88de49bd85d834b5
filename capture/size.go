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

// Size is the width and height of a frame.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s Size) area() int {
	return s.Width * s.Height
}

// CommonSizes is a list of frame sizes supported by most capture devices,
// smallest first.
var CommonSizes = []Size{
	{Width: 320, Height: 240},
	{Width: 640, Height: 360},
	{Width: 640, Height: 480},
	{Width: 800, Height: 600},
	{Width: 1280, Height: 720},
	{Width: 1920, Height: 1080},
}

// StepSize returns the entry in CommonSizes that is n steps larger than the
// size, or smaller if n is negative. The result is clamped to the ends of the
// list. A size that is not in the list is stepped from its position between
// the entries on either side of it.
func StepSize(s Size, n int) Size {
	// index of the largest entry no bigger than the size
	i := -1
	for j, c := range CommonSizes {
		if c.area() <= s.area() {
			i = j
		}
	}

	if n < 0 && (i < 0 || CommonSizes[i] != s) {
		i++
	}
	i += n

	if i < 0 {
		i = 0
	}
	if i >= len(CommonSizes) {
		i = len(CommonSizes) - 1
	}
	return CommonSizes[i]
}
