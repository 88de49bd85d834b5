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

package shaders_test

import (
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/pipeline/shaders"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestDialect(t *testing.T) {
	p := shaders.NewProvider("300 es")
	s, err := p.Source(shaders.Pack)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(s, "#version 300 es\n"))
	test.ExpectSuccess(t, strings.Contains(s, "precision highp float;"))

	p = shaders.NewProvider("150 core")
	s, err = p.Source(shaders.Quad)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(s, "#version 150 core\n"))
	test.ExpectFailure(t, strings.Contains(s, "precision"))
}

func TestDefines(t *testing.T) {
	p := shaders.NewProvider("150 core")
	p.Define("COORDS")
	s, err := p.Source(shaders.Pack)
	test.DemandSuccess(t, err)

	// definition must come before the body of the shader
	test.ExpectSuccess(t, strings.Index(s, "#define COORDS") < strings.Index(s, "void main"))
}

func TestOverride(t *testing.T) {
	p := shaders.NewProvider("150 core")
	p.Override(shaders.Copy, "void main() {}")
	s, err := p.Source(shaders.Copy)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasSuffix(s, "void main() {}"))

	_, err = p.Source("missing.frag")
	test.ExpectFailure(t, err)
}

func TestSourceDefines(t *testing.T) {
	p := shaders.NewProvider("300 es")
	p.Define("GLOBAL")

	s, err := p.Source(shaders.Pack, "COORDS")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s, "#define GLOBAL\n"))
	test.ExpectSuccess(t, strings.Contains(s, "#define COORDS\n"))

	// definitions passed to Source() are not remembered
	s, err = p.Source(shaders.Pack)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, strings.Contains(s, "#define COORDS\n"))
}
