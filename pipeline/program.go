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

type binding struct {
	name string
	loc  gpu.Location
}

// Program is a linked vertex and fragment shader pair.
type Program struct {
	ctx    gpu.Context
	name   string
	handle gpu.Program

	// ordered lists of resolved names
	attributes []binding
	uniforms   []binding
}

// NewProgram compiles and links the vertex and fragment sources. A
// CompileError or LinkError is returned on failure. The name of the program is
// used in error and log messages.
func NewProgram(ctx gpu.Context, name string, vertexSource string, fragmentSource string) (*Program, error) {
	vert, err := ctx.CompileShader(gpu.VertexStage, vertexSource)
	if err != nil {
		return nil, CompileError{Stage: gpu.VertexStage, Shader: name, Log: err.Error()}
	}
	defer ctx.DeleteShader(vert)

	frag, err := ctx.CompileShader(gpu.FragmentStage, fragmentSource)
	if err != nil {
		return nil, CompileError{Stage: gpu.FragmentStage, Shader: name, Log: err.Error()}
	}
	defer ctx.DeleteShader(frag)

	// the shaders are no longer needed once the program has been linked
	handle, err := ctx.LinkProgram(vert, frag)
	if err != nil {
		return nil, LinkError{Program: name, Log: err.Error()}
	}

	return &Program{
		ctx:    ctx,
		name:   name,
		handle: handle,
	}, nil
}

// BindLocations resolves and caches the locations of the named attributes and
// uniforms. A name that is not active in the program is logged. The returned
// list of warnings is for information only.
func (p *Program) BindLocations(attributes []string, uniforms []string) []MissingBindingWarning {
	var warnings []MissingBindingWarning

	resolve := func(kind string, names []string, lookup func(gpu.Program, string) gpu.Location) []binding {
		b := make([]binding, 0, len(names))
		for _, n := range names {
			loc := lookup(p.handle, n)
			if !loc.Valid() {
				w := MissingBindingWarning{Program: p.name, Kind: kind, Name: n}
				logger.Log(logger.Allow, "pipeline", w)
				warnings = append(warnings, w)
			}
			b = append(b, binding{name: n, loc: loc})
		}
		return b
	}

	p.attributes = resolve("attribute", attributes, p.ctx.AttribLocation)
	p.uniforms = resolve("uniform", uniforms, p.ctx.UniformLocation)

	return warnings
}

func find(bindings []binding, name string) gpu.Location {
	for _, b := range bindings {
		if b.name == name {
			return b.loc
		}
	}
	return gpu.NoLocation
}

// Attribute returns the cached location of the named attribute.
func (p *Program) Attribute(name string) gpu.Location {
	return find(p.attributes, name)
}

// Uniform returns the cached location of the named uniform.
func (p *Program) Uniform(name string) gpu.Location {
	return find(p.uniforms, name)
}

// Activate makes the program current. Only one program can be current at any
// one time.
func (p *Program) Activate() {
	p.ctx.UseProgram(p.handle)
}

// Set the value of a uniform. The program must be current. Values for names
// that are not active are ignored.
func (p *Program) Set(name string, value any) {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return
	}

	switch v := value.(type) {
	case int:
		p.ctx.Uniform1i(loc, int32(v))
	case int32:
		p.ctx.Uniform1i(loc, v)
	case bool:
		if v {
			p.ctx.Uniform1i(loc, 1)
		} else {
			p.ctx.Uniform1i(loc, 0)
		}
	case float32:
		p.ctx.Uniform1f(loc, v)
	case float64:
		p.ctx.Uniform1f(loc, float32(v))
	case [2]float32:
		p.ctx.Uniform2f(loc, v[0], v[1])
	default:
		logger.Logf(logger.Allow, "pipeline", "%s: unsupported type for uniform %s (%T)", p.name, name, value)
	}
}

// Destroy releases the program.
func (p *Program) Destroy() {
	if p.handle != 0 {
		p.ctx.DeleteProgram(p.handle)
		p.handle = 0
	}
}
