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

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/logger"
)

// Mode of a texture.
type Mode int

// List of valid Mode values.
const (
	// the texture is drawn to by a pass. Update() has no effect
	RenderTarget Mode = iota

	// the texture is updated with frames from a capture.Source
	Video
)

func (m Mode) String() string {
	switch m {
	case RenderTarget:
		return "render target"
	case Video:
		return "video"
	}
	return "unknown mode"
}

// TextureSpec describes a texture.
type TextureSpec struct {
	Width  int
	Height int

	// bits per pixel. ignored if Float is true
	Depth int
	Float bool

	Mode     Mode
	Sampling gpu.Sampling
}

// formatForDepth returns the texture format for a depth. The boolean value is
// false if the depth is not supported, in which case the format is R8.
func formatForDepth(depth int, float bool) (gpu.Format, bool) {
	if float {
		return gpu.FormatRGBA32F, true
	}
	switch depth {
	case 1, 8:
		return gpu.FormatR8, true
	case 24:
		return gpu.FormatRGB8, true
	case 32:
		return gpu.FormatRGBA8, true
	}
	return gpu.FormatR8, false
}

// Texture is a GPU image bound to a unique texture unit.
type Texture struct {
	ctx    gpu.Context
	slot   int
	spec   TextureSpec
	format gpu.Format
	handle gpu.Texture

	initialised bool
}

// NewTexture creates a texture for the unique texture unit. Storage is not
// allocated until Init() is called.
//
// A render target texture with linear filtering is rejected with
// ErrLinearFilter. A render target texture with default filtering is accepted
// but InitFramebuffer() will not attach it.
func NewTexture(ctx gpu.Context, slot int, spec TextureSpec) (*Texture, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: texture %d has no size (%dx%d)", ErrInvalidConfig, slot, spec.Width, spec.Height)
	}

	if spec.Mode == RenderTarget {
		if spec.Sampling.MinFilter == gpu.FilterLinear || spec.Sampling.MagFilter == gpu.FilterLinear {
			return nil, fmt.Errorf("%w: texture %d", ErrLinearFilter, slot)
		}
		if spec.Sampling.MinFilter == gpu.FilterDefault || spec.Sampling.MagFilter == gpu.FilterDefault {
			logger.Logf(logger.Allow, "pipeline", "texture %d: render target has default filtering", slot)
		}
	}

	format, ok := formatForDepth(spec.Depth, spec.Float)
	if !ok {
		logger.Logf(logger.Allow, "pipeline", "texture %d: unsupported depth (%d). using %s", slot, spec.Depth, format)
	}

	return &Texture{
		ctx:    ctx,
		slot:   slot,
		spec:   spec,
		format: format,
		handle: ctx.CreateTexture(),
	}, nil
}

// Init allocates storage and applies the sampling parameters. Calls after the
// first successful call have no effect.
func (t *Texture) Init() error {
	if t.initialised {
		return nil
	}

	t.Activate()

	// default sampling is left alone so that it will be caught by the
	// framebuffer completeness check
	if t.spec.Sampling != (gpu.Sampling{}) {
		t.ctx.SetSampling(t.spec.Sampling)
	}
	t.ctx.TexImage2D(t.format, t.spec.Width, t.spec.Height, nil)

	if err := t.ctx.Error(); err != nil {
		return fmt.Errorf("%w: texture %d allocation: %w", ErrMissingResource, t.slot, err)
	}

	t.initialised = true
	return nil
}

// Update the texture with a frame. Only textures in the Video mode can be
// updated. A frame that is not decodable or that does not match the texture
// is ignored. Returns true if the texture has been updated.
func (t *Texture) Update(frame capture.Frame) bool {
	if t.spec.Mode != Video || !t.initialised {
		return false
	}

	if !frame.Ready.Decodable() {
		return false
	}

	format, _ := formatForDepth(frame.Depth, false)
	if frame.Width != t.spec.Width || frame.Height != t.spec.Height || format != t.format {
		logger.Logf(logger.Allow, "pipeline", "texture %d: frame (%dx%d %s) does not match texture (%dx%d %s)",
			t.slot, frame.Width, frame.Height, format, t.spec.Width, t.spec.Height, t.format)
		return false
	}

	if len(frame.Pixels) < t.spec.Width*t.spec.Height*t.format.BytesPerTexel() {
		logger.Logf(logger.Allow, "pipeline", "texture %d: frame has too few pixels", t.slot)
		return false
	}

	t.Activate()
	t.ctx.TexSubImage2D(t.format, t.spec.Width, t.spec.Height, frame.Pixels)

	return true
}

// Activate binds the texture to its texture unit.
func (t *Texture) Activate() {
	t.ctx.ActiveTexture(t.slot)
	t.ctx.BindTexture(t.handle)
}

// Slot returns the texture unit of the texture.
func (t *Texture) Slot() int {
	return t.slot
}

// Format returns the storage format chosen for the texture.
func (t *Texture) Format() gpu.Format {
	return t.format
}

// Size returns the dimensions of the texture.
func (t *Texture) Size() (int, int) {
	return t.spec.Width, t.spec.Height
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.handle != 0 {
		t.ctx.DeleteTexture(t.handle)
		t.handle = 0
	}
	t.initialised = false
}
