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
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ValidDepth returns true if the depth is supported by the package.
func ValidDepth(depth int) bool {
	switch depth {
	case 8, 24, 32:
		return true
	}
	return false
}

// FromImage scales the image to the requested size and converts it to the
// pixel layout of a Frame of the requested depth. Scaling uses nearest
// neighbour interpolation.
func FromImage(img image.Image, width int, height int, depth int) ([]byte, error) {
	if !ValidDepth(depth) {
		return nil, fmt.Errorf("capture: unsupported depth (%d)", depth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture: invalid dimensions (%dx%d)", width, height)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)

	switch depth {
	case 32:
		return rgba.Pix, nil
	case 24:
		pix := make([]byte, width*height*3)
		for i, j := 0, 0; i < len(rgba.Pix); i, j = i+4, j+3 {
			copy(pix[j:j+3], rgba.Pix[i:i+3])
		}
		return pix, nil
	}

	pix := make([]byte, width*height)
	for i := range pix {
		c := color.RGBA{R: rgba.Pix[i*4], G: rgba.Pix[i*4+1], B: rgba.Pix[i*4+2], A: 255}
		pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
	}
	return pix, nil
}

// ToImage converts the pixels of a frame to an image.Image. The frame must
// be decodable.
func ToImage(f Frame) (image.Image, error) {
	if !f.Ready.Decodable() {
		return nil, fmt.Errorf("capture: frame not decodable (%s)", f.Ready)
	}
	if len(f.Pixels) < f.Stride()*f.Height {
		return nil, fmt.Errorf("capture: not enough pixel data for %dx%d frame", f.Width, f.Height)
	}

	r := image.Rect(0, 0, f.Width, f.Height)
	switch f.Depth {
	case 8:
		img := image.NewGray(r)
		copy(img.Pix, f.Pixels)
		return img, nil
	case 24:
		img := image.NewRGBA(r)
		for i, j := 0, 0; j < len(img.Pix); i, j = i+3, j+4 {
			copy(img.Pix[j:j+3], f.Pixels[i:i+3])
			img.Pix[j+3] = 255
		}
		return img, nil
	case 32:
		img := image.NewRGBA(r)
		copy(img.Pix, f.Pixels)
		return img, nil
	}

	return nil, fmt.Errorf("capture: unsupported depth (%d)", f.Depth)
}
