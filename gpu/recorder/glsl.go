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

package recorder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Dodotree/zebra-sub000/gpu"
)

// declaration of a shader input, output or uniform
type declaration struct {
	qualifier string
	name      string
	active    bool
}

var declRegexp = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|out|uniform|attribute|varying)\s+(?:(?:highp|mediump|lowp|flat|smooth)\s+)*\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

var errorDirective = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)

type shader struct {
	stage  gpu.Stage
	source string
	decls  []declaration
}

// compile checks the source and extracts the declarations.
func compile(stage gpu.Stage, source string) (*shader, error) {
	if m := errorDirective.FindStringSubmatch(source); m != nil {
		return nil, fmt.Errorf("ERROR: 0:1: '#error' : %s", strings.TrimSpace(m[1]))
	}

	if !strings.Contains(source, "void main") {
		return nil, fmt.Errorf("ERROR: 0:1: 'main' : function not found")
	}

	sh := &shader{
		stage:  stage,
		source: source,
	}

	for _, m := range declRegexp.FindAllStringSubmatch(source, -1) {
		q := m[1]
		switch q {
		case "attribute":
			q = "in"
		case "varying":
			if stage == gpu.VertexStage {
				q = "out"
			} else {
				q = "in"
			}
		}

		// a name is active if it is used somewhere other than its
		// declaration. outputs of either stage are always active
		uses := regexp.MustCompile(`\b` + regexp.QuoteMeta(m[2]) + `\b`).FindAllStringIndex(source, -1)
		active := len(uses) > 1 || q == "out"

		sh.decls = append(sh.decls, declaration{
			qualifier: q,
			name:      m[2],
			active:    active,
		})
	}

	return sh, nil
}

func (sh *shader) names(qualifier string, activeOnly bool) []string {
	var n []string
	for _, d := range sh.decls {
		if d.qualifier == qualifier && (d.active || !activeOnly) {
			n = append(n, d.name)
		}
	}
	return n
}

type program struct {
	attribs  map[string]gpu.Location
	uniforms map[string]gpu.Location
	values   map[gpu.Location]any
}

// link checks that the interface between the vertex and fragment stages
// matches and assigns locations to active attributes and uniforms.
func link(vert *shader, frag *shader) (*program, error) {
	if vert == nil || vert.stage != gpu.VertexStage {
		return nil, fmt.Errorf("ERROR: no vertex shader attached")
	}
	if frag == nil || frag.stage != gpu.FragmentStage {
		return nil, fmt.Errorf("ERROR: no fragment shader attached")
	}

	written := make(map[string]bool)
	for _, n := range vert.names("out", false) {
		written[n] = true
	}
	for _, n := range frag.names("in", true) {
		if !written[n] {
			return nil, fmt.Errorf("ERROR: input of fragment shader '%s' not written by vertex shader", n)
		}
	}

	prg := &program{
		attribs:  make(map[string]gpu.Location),
		uniforms: make(map[string]gpu.Location),
		values:   make(map[gpu.Location]any),
	}

	for _, n := range vert.names("in", true) {
		prg.attribs[n] = gpu.Location(len(prg.attribs))
	}

	for _, sh := range []*shader{vert, frag} {
		for _, n := range sh.names("uniform", true) {
			if _, ok := prg.uniforms[n]; !ok {
				prg.uniforms[n] = gpu.Location(len(prg.uniforms))
			}
		}
	}

	return prg, nil
}
