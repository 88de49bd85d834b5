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

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/Dodotree/zebra-sub000/gpu"
	"golang.org/x/image/tiff"
)

// Readback is a copy of the packed mask and the coordinate data taken from the
// GPU.
type Readback struct {
	// dimensions of the packed mask
	Width  int
	Height int

	// dimensions of the source frame
	SourceWidth  int
	SourceHeight int

	// four bytes per texel. each byte is a row of eight pixels
	Mask []byte

	// four values per texel. the source coordinates of the block of pixels
	// and the size of the source frame. nil if the pipeline is not in debug
	// mode
	Coords []float32
}

// Readback copies the contents of the packing framebuffer from the GPU. The
// mask is the output of the packing pass, before any dilation, and so always
// agrees with the coordinate data whatever the number of iterations. The
// call will stall until the GPU has finished drawing.
func (p *Pipeline) Readback() (Readback, error) {
	p.owner.check()

	if p.destroyed {
		return Readback{}, fmt.Errorf("pipeline: %w", ErrDestroyed)
	}

	fb, ok := p.framebuffers.Get(fboPacking)
	if !ok {
		return Readback{}, fmt.Errorf("pipeline: %w: %s framebuffer", ErrMissingResource, fboPacking)
	}

	pw, ph := p.cfg.PackedSize()
	rb := Readback{
		Width:        pw,
		Height:       ph,
		SourceWidth:  p.cfg.Width,
		SourceHeight: p.cfg.Height,
		Mask:         make([]byte, pw*ph*gpu.FormatRGBA8.BytesPerTexel()),
	}

	p.ctx.BindFramebuffer(fb.handle)
	p.ctx.ReadPixels(0, gpu.FormatRGBA8, pw, ph, rb.Mask)

	if p.cfg.Debug {
		raw := make([]byte, pw*ph*gpu.FormatRGBA32F.BytesPerTexel())
		p.ctx.ReadPixels(1, gpu.FormatRGBA32F, pw, ph, raw)
		rb.Coords = make([]float32, len(raw)/4)
		for i := range rb.Coords {
			rb.Coords[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
	}

	p.ctx.BindFramebuffer(gpu.DefaultFramebuffer)

	if err := p.ctx.Error(); err != nil {
		return Readback{}, fmt.Errorf("pipeline: readback: %w", err)
	}

	return rb, nil
}

// Pixel returns true if the pixel at the source coordinates is set in the
// mask.
func (rb Readback) Pixel(x int, y int) bool {
	if x < 0 || y < 0 || x >= rb.SourceWidth || y >= rb.SourceHeight {
		return false
	}
	i := ((y/PackY)*rb.Width + x/PackX) * 4
	return (rb.Mask[i+y%PackY]>>(x%PackX))&0x01 == 0x01
}

// Image returns the mask at the resolution of the source frame.
func (rb Readback) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, rb.SourceWidth, rb.SourceHeight))
	for y := 0; y < rb.SourceHeight; y++ {
		for x := 0; x < rb.SourceWidth; x++ {
			if rb.Pixel(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

// SaveMask writes the mask to a PNG file.
func (rb Readback) SaveMask(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, rb.Image()); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// SaveCoords writes the coordinate data to a 16 bit TIFF file. The red and
// green channels of each pixel are the source coordinates of the block.
func (rb Readback) SaveCoords(filename string) error {
	if rb.Coords == nil {
		return errors.New("readback: no coordinate data")
	}

	img := image.NewRGBA64(image.Rect(0, 0, rb.Width, rb.Height))
	for y := 0; y < rb.Height; y++ {
		for x := 0; x < rb.Width; x++ {
			i := (y*rb.Width + x) * 4
			img.SetRGBA64(x, y, color.RGBA64{
				R: uint16(rb.Coords[i]),
				G: uint16(rb.Coords[i+1]),
				A: 0xffff,
			})
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	defer f.Close()

	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}
