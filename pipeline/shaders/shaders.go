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

package shaders

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed "quad.vert"
var QuadVertexShader []byte

//go:embed "pack.frag"
var PackShader []byte

//go:embed "dilate.frag"
var DilateShader []byte

//go:embed "compare.frag"
var CompareShader []byte

//go:embed "unpack.frag"
var UnpackShader []byte

//go:embed "copy.frag"
var CopyShader []byte

// List of shader identifiers.
const (
	Quad    = "quad.vert"
	Pack    = "pack.frag"
	Dilate  = "dilate.frag"
	Compare = "compare.frag"
	Unpack  = "unpack.frag"
	Copy    = "copy.frag"
)

var sources = map[string][]byte{
	Quad:    QuadVertexShader,
	Pack:    PackShader,
	Dilate:  DilateShader,
	Compare: CompareShader,
	Unpack:  UnpackShader,
	Copy:    CopyShader,
}

// Provider supplies shader source with a header suitable for the dialect of
// the GPU context.
type Provider struct {
	dialect string
	defines []string

	// sources that replace the embedded source for an identifier
	overrides map[string]string
}

// NewProvider is the preferred method of initialisation for the Provider
// type. The dialect is the value of the Dialect field in gpu.Info.
func NewProvider(dialect string) *Provider {
	return &Provider{
		dialect:   dialect,
		overrides: make(map[string]string),
	}
}

// Define adds a preprocessor definition to every shader source returned by
// the Provider.
func (p *Provider) Define(name string) {
	p.defines = append(p.defines, name)
}

// Override replaces the source for a shader identifier.
func (p *Provider) Override(id string, source string) {
	p.overrides[id] = source
}

func (p *Provider) header(defines []string) string {
	var s strings.Builder
	switch p.dialect {
	case "300 es":
		s.WriteString("#version 300 es\n")
		s.WriteString("precision highp float;\n")
		s.WriteString("precision highp int;\n")
	default:
		s.WriteString("#version 150 core\n")
		s.WriteString("#extension GL_ARB_explicit_attrib_location : enable\n")
	}
	for _, d := range p.defines {
		s.WriteString(fmt.Sprintf("#define %s\n", d))
	}
	for _, d := range defines {
		s.WriteString(fmt.Sprintf("#define %s\n", d))
	}
	return s.String()
}

// Source returns the complete source for the shader identifier. The optional
// list of definitions is added to the header after those added with
// Define().
func (p *Provider) Source(id string, defines ...string) (string, error) {
	if s, ok := p.overrides[id]; ok {
		return p.header(defines) + s, nil
	}
	s, ok := sources[id]
	if !ok {
		return "", fmt.Errorf("shaders: unknown shader: %s", id)
	}
	return p.header(defines) + string(s), nil
}
