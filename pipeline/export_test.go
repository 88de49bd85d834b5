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
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
)

const (
	SlotSource        = slotSource
	SlotPacked        = slotPacked
	SlotCoords        = slotCoords
	SlotDilated       = slotDilated
	SlotUnpacked      = slotUnpacked
	SlotHistory       = slotHistory
	SlotDifference    = slotDifference
	SlotDilatedReturn = slotDilatedReturn
)

func (p *Pipeline) TextureHandle(slot int) gpu.Texture {
	if t, ok := p.textures[slot]; ok {
		return t.handle
	}
	return 0
}

func (p *Pipeline) ProgramHandle(name string) gpu.Program {
	if prg, ok := p.programs[name]; ok {
		return prg.handle
	}
	return 0
}

func (p *Pipeline) FramebufferNames() []string {
	return p.framebuffers.Names()
}

// PassNames returns the name of the pass for each draw.
func (p *Pipeline) PassNames(draws []recorder.Draw) []string {
	names := make([]string, len(draws))
	for i, d := range draws {
		names[i] = p.PassName(d.Framebuffer)
	}
	return names
}
