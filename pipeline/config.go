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
	"fmt"
)

// Dimensions of the block of pixels stored in a single texel of the packed
// mask.
const (
	PackX = 8
	PackY = 4
)

// Config for a pipeline.
type Config struct {
	// dimensions of the source frame
	Width  int
	Height int

	// dimensions of the canvas. a zero value means the canvas is the same
	// size as the source frame
	CanvasWidth  int
	CanvasHeight int

	// bits per pixel of the source frame. one of 8, 24 or 32. other values
	// are treated as 8
	SourceDepth int

	// number of dilation passes per cycle. must be at least one
	MaxIterations int

	// the packing pass also writes the source coordinates of each block to a
	// float texture. each framebuffer is checked for completeness before
	// every pass
	Debug bool

	// compare each mask with the mask of the previous frame
	Compare bool

	// brightness above which a source pixel is set in the mask. between zero
	// and one
	Threshold float32
}

// DefaultConfig returns a configuration for the given frame size with
// default values for everything else.
func DefaultConfig(width int, height int) Config {
	return Config{
		Width:         width,
		Height:        height,
		SourceDepth:   32,
		MaxIterations: 1,
		Threshold:     0.5,
	}
}

// PackedSize returns the dimensions of the packed mask.
func (cfg Config) PackedSize() (int, int) {
	return (cfg.Width + PackX - 1) / PackX, (cfg.Height + PackY - 1) / PackY
}

// CanvasSize returns the dimensions of the canvas.
func (cfg Config) CanvasSize() (int, int) {
	w, h := cfg.CanvasWidth, cfg.CanvasHeight
	if w == 0 {
		w = cfg.Width
	}
	if h == 0 {
		h = cfg.Height
	}
	return w, h
}

func (cfg Config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.CanvasWidth < 0 || cfg.CanvasHeight < 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidConfig, cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("%w: iterations must be at least one (%d)", ErrInvalidConfig, cfg.MaxIterations)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return fmt.Errorf("%w: threshold out of range (%.2f)", ErrInvalidConfig, cfg.Threshold)
	}
	return nil
}
