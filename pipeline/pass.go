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
	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/logger"
)

// Input binds a texture to a sampler uniform.
type Input struct {
	Uniform string
	Texture int
}

// Uniform is the value for a named uniform.
type Uniform struct {
	Name  string
	Value any
}

// PassDescriptor is everything that needs to be bound for a single pass.
// Nothing is assumed to remain bound from a previous pass.
type PassDescriptor struct {
	Name    string
	Program *Program

	// a nil framebuffer is the canvas
	Framebuffer *Framebuffer

	// viewport dimensions
	Width  int
	Height int

	// color attachments that receive output. ignored for the canvas
	DrawBuffers []int

	Inputs   []Input
	Uniforms []Uniform
}

// executePass issues a single pass. Returns false if the pass could not be
// issued.
func (p *Pipeline) executePass(pass PassDescriptor) bool {
	pass.Program.Activate()
	p.ctx.Viewport(0, 0, pass.Width, pass.Height)

	if pass.Framebuffer == nil {
		p.ctx.BindFramebuffer(gpu.DefaultFramebuffer)
	} else {
		p.ctx.BindFramebuffer(pass.Framebuffer.handle)

		if p.cfg.Debug {
			if st := p.ctx.CheckFramebufferStatus(); st != gpu.StatusComplete {
				logger.Logf(logger.Allow, "pipeline", "%s pass: framebuffer %s", pass.Name, st)
				p.ctx.BindFramebuffer(gpu.DefaultFramebuffer)
				p.stats.Failed++
				return false
			}
		}

		if len(pass.DrawBuffers) > 0 {
			p.ctx.DrawBuffers(pass.DrawBuffers)
		}
	}

	for _, in := range pass.Inputs {
		tex, ok := p.textures[in.Texture]
		if !ok {
			logger.Logf(logger.Allow, "pipeline", "%s pass: no texture %d", pass.Name, in.Texture)
			continue
		}
		tex.Activate()
		pass.Program.Set(in.Uniform, int32(tex.Slot()))
	}

	for _, u := range pass.Uniforms {
		pass.Program.Set(u.Name, u.Value)
	}

	p.geometry.Bind(pass.Program.Attribute("position"))
	p.geometry.Draw()

	p.ctx.BindFramebuffer(gpu.DefaultFramebuffer)

	p.stats.Passes++

	if err := p.ctx.Error(); err != nil {
		logger.Logf(logger.Allow, "pipeline", "%s pass: %v", pass.Name, err)
		p.stats.Failed++
		return false
	}

	return true
}
