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

import (
	"fmt"
	"math"
)

// Pattern is a Source that generates a bright disc moving over a dark
// background.
type Pattern struct {
	width  int
	height int
	depth  int

	// number of frames at the start of the pattern that are not decodable
	warmup int

	seq    int
	pixels []byte
}

// NewPattern is the preferred method of initialisation for the Pattern type.
// The first warmup frames will have a ready state of HaveMetadata.
func NewPattern(width int, height int, depth int, warmup int) (*Pattern, error) {
	if !ValidDepth(depth) {
		return nil, fmt.Errorf("capture: unsupported depth (%d)", depth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture: invalid dimensions (%dx%d)", width, height)
	}
	return &Pattern{
		width:  width,
		height: height,
		depth:  depth,
		warmup: warmup,
		pixels: make([]byte, width*height*depth/8),
	}, nil
}

// Frame implements the Source interface.
func (p *Pattern) Frame() Frame {
	p.seq++

	f := Frame{
		Width:    p.width,
		Height:   p.height,
		Depth:    p.depth,
		Sequence: p.seq,
		Ready:    HaveMetadata,
	}

	if p.seq <= p.warmup {
		return f
	}

	p.draw()
	f.Pixels = p.pixels
	f.Ready = HaveEnoughData
	return f
}

func (p *Pattern) draw() {
	bpp := p.depth / 8

	// the disc moves on a circular path around the centre of the frame
	t := float64(p.seq) / 30.0
	cx := float64(p.width)/2 + math.Cos(t)*float64(p.width)/4
	cy := float64(p.height)/2 + math.Sin(t)*float64(p.height)/4
	r := float64(min(p.width, p.height)) / 8

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			var v byte = 0x10
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r*r {
				v = 0xf0
			}

			i := (y*p.width + x) * bpp
			for c := 0; c < bpp; c++ {
				p.pixels[i+c] = v
			}
			if bpp == 4 {
				p.pixels[i+3] = 0xff
			}
		}
	}
}

// Resize implements the Resizer interface. The pattern continues from the
// same position on its path.
func (p *Pattern) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("capture: invalid dimensions (%dx%d)", width, height)
	}
	p.width = width
	p.height = height
	p.pixels = make([]byte, width*height*p.depth/8)
	return nil
}

// Close implements the Source interface.
func (p *Pattern) Close() error {
	return nil
}
