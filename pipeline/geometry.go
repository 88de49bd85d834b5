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
	"fmt"
	"math"

	"github.com/Dodotree/zebra-sub000/gpu"
)

// QuadIndices is the number of indices in the unit quad.
const QuadIndices = 6

// the unit quad covers the whole of the viewport
var quadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	1.0, 1.0,
	-1.0, 1.0,
}

var quadIndices = []uint16{
	0, 1, 2,
	0, 2, 3,
}

// Geometry is the unit quad shared by every pass.
type Geometry struct {
	ctx gpu.Context
	vao gpu.VertexArray
	vbo gpu.Buffer
	ebo gpu.Buffer
}

// NewGeometry creates the vertex and index buffers for the unit quad.
func NewGeometry(ctx gpu.Context) (*Geometry, error) {
	g := &Geometry{
		ctx: ctx,
		vao: ctx.CreateVertexArray(),
		vbo: ctx.CreateBuffer(),
		ebo: ctx.CreateBuffer(),
	}

	vertices := make([]byte, len(quadVertices)*4)
	for i, v := range quadVertices {
		binary.LittleEndian.PutUint32(vertices[i*4:], math.Float32bits(v))
	}

	indices := make([]byte, len(quadIndices)*2)
	for i, v := range quadIndices {
		binary.LittleEndian.PutUint16(indices[i*2:], v)
	}

	ctx.BindVertexArray(g.vao)
	ctx.BindBuffer(gpu.ArrayBuffer, g.vbo)
	ctx.BufferData(gpu.ArrayBuffer, vertices)
	ctx.BindBuffer(gpu.ElementArrayBuffer, g.ebo)
	ctx.BufferData(gpu.ElementArrayBuffer, indices)
	ctx.BindVertexArray(0)

	if err := ctx.Error(); err != nil {
		g.Destroy()
		return nil, fmt.Errorf("%w: geometry: %w", ErrMissingResource, err)
	}

	return g, nil
}

// Bind the geometry and point the position attribute at the vertex data.
func (g *Geometry) Bind(position gpu.Location) {
	g.ctx.BindVertexArray(g.vao)
	g.ctx.BindBuffer(gpu.ArrayBuffer, g.vbo)
	g.ctx.BindBuffer(gpu.ElementArrayBuffer, g.ebo)
	if position.Valid() {
		g.ctx.EnableVertexAttribArray(position)
		g.ctx.VertexAttribPointer(position, 2, 8, 0)
	}
}

// Draw the two triangles of the quad. The geometry must be bound.
func (g *Geometry) Draw() {
	g.ctx.DrawElements(QuadIndices)
}

// Destroy releases the buffers.
func (g *Geometry) Destroy() {
	if g.vao != 0 {
		g.ctx.DeleteVertexArray(g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		g.ctx.DeleteBuffer(g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		g.ctx.DeleteBuffer(g.ebo)
		g.ebo = 0
	}
}
