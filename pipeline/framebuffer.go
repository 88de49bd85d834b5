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

	"github.com/Dodotree/zebra-sub000/gpu"
)

// Attachment of a texture to a framebuffer.
type Attachment struct {
	// color attachment number
	Slot int

	// texture unit of the attached texture
	Texture int
}

// FramebufferSpec describes the attachments of a named framebuffer.
type FramebufferSpec struct {
	Name        string
	Attachments []Attachment
}

// Framebuffer is a framebuffer object with its textures attached.
type Framebuffer struct {
	ctx    gpu.Context
	spec   FramebufferSpec
	handle gpu.Framebuffer
}

// Name of the framebuffer.
func (fb *Framebuffer) Name() string {
	return fb.spec.Name
}

// DrawBuffers returns the list of color attachment numbers. Suitable for
// passing to gpu.Context.DrawBuffers().
func (fb *Framebuffer) DrawBuffers() []int {
	b := make([]int, len(fb.spec.Attachments))
	for i, a := range fb.spec.Attachments {
		b[i] = a.Slot
	}
	return b
}

// Framebuffers is the table of framebuffers used by the pipeline. The table
// refers to textures by texture unit but never owns them.
type Framebuffers struct {
	ctx      gpu.Context
	textures map[int]*Texture
	specs    map[string]FramebufferSpec
	fbos     map[string]*Framebuffer

	// order of initialisation
	order []string
}

// NewFramebuffers is the preferred method of initialisation for the
// Framebuffers type.
func NewFramebuffers(ctx gpu.Context, textures map[int]*Texture) *Framebuffers {
	return &Framebuffers{
		ctx:      ctx,
		textures: textures,
		specs:    make(map[string]FramebufferSpec),
		fbos:     make(map[string]*Framebuffer),
	}
}

// Configure adds a framebuffer description to the table. The framebuffer is
// not created until InitFramebuffer() is called.
func (fbs *Framebuffers) Configure(spec FramebufferSpec) {
	fbs.specs[spec.Name] = spec
}

// InitFramebuffer creates the named framebuffer, attaches the configured
// textures and checks that the framebuffer is complete. A
// FramebufferIncompleteError is returned if it is not. An attached texture
// with default filtering always makes the framebuffer incomplete, whatever
// the backend reports.
func (fbs *Framebuffers) InitFramebuffer(name string) (*Framebuffer, error) {
	spec, ok := fbs.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: framebuffer %s not configured", ErrMissingResource, name)
	}

	if fb, ok := fbs.fbos[name]; ok {
		return fb, nil
	}

	for _, a := range spec.Attachments {
		tex, ok := fbs.textures[a.Texture]
		if !ok {
			return nil, fmt.Errorf("%w: framebuffer %s: texture %d", ErrMissingResource, name, a.Texture)
		}

		// default filtering depends on mipmaps that render targets never have.
		// GL 3.2 and GLES 3.0 do not count this against completeness so it is
		// checked here for every backend
		if tex.spec.Sampling.MinFilter == gpu.FilterDefault || tex.spec.Sampling.MagFilter == gpu.FilterDefault {
			return nil, FramebufferIncompleteError{Framebuffer: name, Status: gpu.StatusIncompleteAttachment}
		}
	}

	fb := &Framebuffer{
		ctx:    fbs.ctx,
		spec:   spec,
		handle: fbs.ctx.CreateFramebuffer(),
	}

	fbs.ctx.BindFramebuffer(fb.handle)
	for _, a := range spec.Attachments {
		fbs.ctx.FramebufferTexture(a.Slot, fbs.textures[a.Texture].handle)
	}
	status := fbs.ctx.CheckFramebufferStatus()
	fbs.ctx.BindFramebuffer(gpu.DefaultFramebuffer)

	if status != gpu.StatusComplete {
		fbs.ctx.DeleteFramebuffer(fb.handle)
		return nil, FramebufferIncompleteError{Framebuffer: name, Status: status}
	}

	fbs.fbos[name] = fb
	fbs.order = append(fbs.order, name)

	return fb, nil
}

// Get returns the named framebuffer if it has been initialised.
func (fbs *Framebuffers) Get(name string) (*Framebuffer, bool) {
	fb, ok := fbs.fbos[name]
	return fb, ok
}

// Names returns the names of the initialised framebuffers in the order they
// were initialised.
func (fbs *Framebuffers) Names() []string {
	return fbs.order
}

// Destroy releases every framebuffer. The attached textures are not released.
func (fbs *Framebuffers) Destroy() {
	for _, n := range fbs.order {
		fbs.ctx.DeleteFramebuffer(fbs.fbos[n].handle)
	}
	fbs.fbos = make(map[string]*Framebuffer)
	fbs.order = fbs.order[:0]
}
