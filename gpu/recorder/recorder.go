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
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Dodotree/zebra-sub000/gpu"
)

// Draw is the state bound at the moment of a DrawElements() call.
type Draw struct {
	Program     gpu.Program
	Framebuffer gpu.Framebuffer
	Viewport    [4]int
	DrawBuffers []int
	VertexArray gpu.VertexArray
	Count       int

	// textures bound to each texture unit
	Textures map[int]gpu.Texture

	// textures attached to the bound framebuffer, by color attachment
	Attachments map[int]gpu.Texture

	// the result of a completeness check of the bound framebuffer
	Status gpu.Status
}

type texture struct {
	format    gpu.Format
	width     int
	height    int
	sampling  gpu.Sampling
	allocated bool
	pixels    []byte
}

type framebuffer struct {
	attachments map[int]gpu.Texture
	drawBuffers []int
}

type query struct {
	result    uint32
	polls     int
	available bool
}

// Recorder is an implementation of gpu.Context.
type Recorder struct {
	info gpu.Info

	// the next handle to hand out. shared by all resource types so that a
	// handle is never ambiguous in the trace output
	next uint32

	shaders      map[gpu.Shader]*shader
	programs     map[gpu.Program]*program
	textures     map[gpu.Texture]*texture
	framebuffers map[gpu.Framebuffer]*framebuffer
	buffers      map[gpu.Buffer][]byte
	vertexArrays map[gpu.VertexArray]bool
	queries      map[gpu.Query]*query

	// bound state
	program      gpu.Program
	activeUnit   int
	units        map[int]gpu.Texture
	framebuffer  gpu.Framebuffer
	vertexArray  gpu.VertexArray
	arrayBuffer  gpu.Buffer
	elementArray gpu.Buffer
	viewport     [4]int
	activeQuery  gpu.Query
	querySamples uint32
	queryStart   int

	draws []Draw
	err   error

	// QueryLatency is the number of times QueryResultAvailable() must be
	// called before a result becomes available.
	QueryLatency int

	// QuerySamples is called at the end of a query with the draws made since
	// the query began. The returned value is the query result. If it is nil
	// then the result is the number of pixels covered by the draws.
	QuerySamples func([]Draw) uint32

	// FillDraws causes every draw to a complete framebuffer to fill the
	// textures in its draw buffers with the one-based number of the draw
	// since the last ResetDraws(). Only the low byte of the number is used.
	FillDraws bool

	trace io.Writer
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{
		info: gpu.Info{
			Vendor:              "zebra",
			Renderer:            "recorder",
			Version:             "3.2",
			Dialect:             "150 core",
			FloatRenderable:     true,
			MaxColorAttachments: 8,
		},
		shaders:      make(map[gpu.Shader]*shader),
		programs:     make(map[gpu.Program]*program),
		textures:     make(map[gpu.Texture]*texture),
		framebuffers: make(map[gpu.Framebuffer]*framebuffer),
		buffers:      make(map[gpu.Buffer][]byte),
		vertexArrays: make(map[gpu.VertexArray]bool),
		queries:      make(map[gpu.Query]*query),
		units:        make(map[int]gpu.Texture),
		QueryLatency: 1,
	}
}

// SetTrace sets the writer that every call is traced to. A nil writer stops
// tracing.
func (rec *Recorder) SetTrace(w io.Writer) {
	rec.trace = w
}

// SetFloatRenderable changes whether float textures can be used as color
// attachments.
func (rec *Recorder) SetFloatRenderable(v bool) {
	rec.info.FloatRenderable = v
}

func (rec *Recorder) tracef(format string, args ...any) {
	if rec.trace != nil {
		fmt.Fprintf(rec.trace, format+"\n", args...)
	}
}

func (rec *Recorder) raise(err error) {
	if rec.err == nil {
		rec.err = err
	}
	rec.tracef("  ! %v", err)
}

func (rec *Recorder) handle() uint32 {
	rec.next++
	return rec.next
}

// Draws returns the list of draws made since the last call to ResetDraws().
func (rec *Recorder) Draws() []Draw {
	return rec.draws
}

// ResetDraws forgets all draws made so far.
func (rec *Recorder) ResetDraws() {
	rec.draws = rec.draws[:0]
	rec.queryStart = 0
}

// Live returns the number of live resources. Useful for checking that
// resources have been released.
func (rec *Recorder) Live() int {
	return len(rec.shaders) + len(rec.programs) + len(rec.textures) +
		len(rec.framebuffers) + len(rec.buffers) + len(rec.vertexArrays) +
		len(rec.queries)
}

// TextureInfo returns the format, dimensions and sampling of a texture. The
// final return value is false if the texture does not exist.
func (rec *Recorder) TextureInfo(tex gpu.Texture) (gpu.Format, int, int, gpu.Sampling, bool) {
	t, ok := rec.textures[tex]
	if !ok {
		return 0, 0, 0, gpu.Sampling{}, false
	}
	return t.format, t.width, t.height, t.sampling, true
}

// Uniform returns the most recent value set for the named uniform of a
// program. The final return value is false if the uniform is not active or
// has never been set.
func (rec *Recorder) Uniform(prg gpu.Program, name string) (any, bool) {
	p, ok := rec.programs[prg]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Info implements the gpu.Context interface.
func (rec *Recorder) Info() gpu.Info {
	return rec.info
}

// CompileShader implements the gpu.Context interface.
func (rec *Recorder) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	sh, err := compile(stage, source)
	if err != nil {
		rec.tracef("CompileShader(%s) failed", stage)
		return 0, err
	}
	h := gpu.Shader(rec.handle())
	rec.shaders[h] = sh
	rec.tracef("CompileShader(%s) = %d", stage, h)
	return h, nil
}

// DeleteShader implements the gpu.Context interface.
func (rec *Recorder) DeleteShader(sh gpu.Shader) {
	delete(rec.shaders, sh)
	rec.tracef("DeleteShader(%d)", sh)
}

// LinkProgram implements the gpu.Context interface.
func (rec *Recorder) LinkProgram(vert gpu.Shader, frag gpu.Shader) (gpu.Program, error) {
	prg, err := link(rec.shaders[vert], rec.shaders[frag])
	if err != nil {
		rec.tracef("LinkProgram(%d, %d) failed", vert, frag)
		return 0, err
	}
	h := gpu.Program(rec.handle())
	rec.programs[h] = prg
	rec.tracef("LinkProgram(%d, %d) = %d", vert, frag, h)
	return h, nil
}

// DeleteProgram implements the gpu.Context interface.
func (rec *Recorder) DeleteProgram(prg gpu.Program) {
	delete(rec.programs, prg)
	if rec.program == prg {
		rec.program = 0
	}
	rec.tracef("DeleteProgram(%d)", prg)
}

// UseProgram implements the gpu.Context interface.
func (rec *Recorder) UseProgram(prg gpu.Program) {
	if _, ok := rec.programs[prg]; !ok && prg != 0 {
		rec.raise(fmt.Errorf("UseProgram: invalid program (%d)", prg))
		return
	}
	rec.program = prg
	rec.tracef("UseProgram(%d)", prg)
}

// AttribLocation implements the gpu.Context interface.
func (rec *Recorder) AttribLocation(prg gpu.Program, name string) gpu.Location {
	p, ok := rec.programs[prg]
	if !ok {
		rec.raise(fmt.Errorf("AttribLocation: invalid program (%d)", prg))
		return gpu.NoLocation
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return gpu.NoLocation
}

// UniformLocation implements the gpu.Context interface.
func (rec *Recorder) UniformLocation(prg gpu.Program, name string) gpu.Location {
	p, ok := rec.programs[prg]
	if !ok {
		rec.raise(fmt.Errorf("UniformLocation: invalid program (%d)", prg))
		return gpu.NoLocation
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return gpu.NoLocation
}

func (rec *Recorder) uniform(loc gpu.Location, v any) {
	// setting an inactive location is silently ignored, as it is by the
	// real thing
	if !loc.Valid() {
		return
	}
	p, ok := rec.programs[rec.program]
	if !ok {
		rec.raise(errors.New("Uniform: no current program"))
		return
	}
	p.values[loc] = v
}

// Uniform1i implements the gpu.Context interface.
func (rec *Recorder) Uniform1i(loc gpu.Location, v int32) {
	rec.uniform(loc, v)
}

// Uniform1f implements the gpu.Context interface.
func (rec *Recorder) Uniform1f(loc gpu.Location, v float32) {
	rec.uniform(loc, v)
}

// Uniform2f implements the gpu.Context interface.
func (rec *Recorder) Uniform2f(loc gpu.Location, v0 float32, v1 float32) {
	rec.uniform(loc, [2]float32{v0, v1})
}

// CreateTexture implements the gpu.Context interface.
func (rec *Recorder) CreateTexture() gpu.Texture {
	h := gpu.Texture(rec.handle())
	rec.textures[h] = &texture{}
	rec.tracef("CreateTexture() = %d", h)
	return h
}

// DeleteTexture implements the gpu.Context interface.
func (rec *Recorder) DeleteTexture(tex gpu.Texture) {
	delete(rec.textures, tex)
	for u, t := range rec.units {
		if t == tex {
			delete(rec.units, u)
		}
	}
	rec.tracef("DeleteTexture(%d)", tex)
}

// ActiveTexture implements the gpu.Context interface.
func (rec *Recorder) ActiveTexture(unit int) {
	rec.activeUnit = unit
	rec.tracef("ActiveTexture(%d)", unit)
}

// BindTexture implements the gpu.Context interface.
func (rec *Recorder) BindTexture(tex gpu.Texture) {
	if _, ok := rec.textures[tex]; !ok && tex != 0 {
		rec.raise(fmt.Errorf("BindTexture: invalid texture (%d)", tex))
		return
	}
	rec.units[rec.activeUnit] = tex
	rec.tracef("BindTexture(%d)", tex)
}

func (rec *Recorder) boundTexture(fn string) *texture {
	t, ok := rec.textures[rec.units[rec.activeUnit]]
	if !ok {
		rec.raise(fmt.Errorf("%s: no texture bound to unit %d", fn, rec.activeUnit))
		return nil
	}
	return t
}

// SetSampling implements the gpu.Context interface.
func (rec *Recorder) SetSampling(s gpu.Sampling) {
	t := rec.boundTexture("SetSampling")
	if t == nil {
		return
	}
	t.sampling = s
	rec.tracef("SetSampling(min=%s, mag=%s, wrap=%s/%s)", s.MinFilter, s.MagFilter, s.WrapS, s.WrapT)
}

// TexImage2D implements the gpu.Context interface.
func (rec *Recorder) TexImage2D(format gpu.Format, width int, height int, pixels []byte) {
	t := rec.boundTexture("TexImage2D")
	if t == nil {
		return
	}
	if width <= 0 || height <= 0 {
		rec.raise(fmt.Errorf("TexImage2D: invalid dimensions (%dx%d)", width, height))
		return
	}

	sz := width * height * format.BytesPerTexel()
	if pixels != nil && len(pixels) < sz {
		rec.raise(fmt.Errorf("TexImage2D: not enough pixel data (%d < %d)", len(pixels), sz))
		return
	}

	t.format = format
	t.width = width
	t.height = height
	t.allocated = true
	t.pixels = make([]byte, sz)
	if pixels != nil {
		copy(t.pixels, pixels)
	}
	rec.tracef("TexImage2D(%s, %dx%d)", format, width, height)
}

// TexSubImage2D implements the gpu.Context interface.
func (rec *Recorder) TexSubImage2D(format gpu.Format, width int, height int, pixels []byte) {
	t := rec.boundTexture("TexSubImage2D")
	if t == nil {
		return
	}
	if !t.allocated {
		rec.raise(errors.New("TexSubImage2D: texture has no storage"))
		return
	}
	if width > t.width || height > t.height {
		rec.raise(fmt.Errorf("TexSubImage2D: update (%dx%d) larger than texture (%dx%d)", width, height, t.width, t.height))
		return
	}
	if format.Channels() > t.format.Channels() && t.format != format {
		rec.raise(fmt.Errorf("TexSubImage2D: format %s incompatible with %s", format, t.format))
		return
	}

	// texel conversion isn't modelled. copy as much as will fit
	copy(t.pixels, pixels)
	rec.tracef("TexSubImage2D(%s, %dx%d)", format, width, height)
}

// CreateFramebuffer implements the gpu.Context interface.
func (rec *Recorder) CreateFramebuffer() gpu.Framebuffer {
	h := gpu.Framebuffer(rec.handle())
	rec.framebuffers[h] = &framebuffer{
		attachments: make(map[int]gpu.Texture),
		drawBuffers: []int{0},
	}
	rec.tracef("CreateFramebuffer() = %d", h)
	return h
}

// DeleteFramebuffer implements the gpu.Context interface.
func (rec *Recorder) DeleteFramebuffer(fbo gpu.Framebuffer) {
	delete(rec.framebuffers, fbo)
	if rec.framebuffer == fbo {
		rec.framebuffer = gpu.DefaultFramebuffer
	}
	rec.tracef("DeleteFramebuffer(%d)", fbo)
}

// BindFramebuffer implements the gpu.Context interface.
func (rec *Recorder) BindFramebuffer(fbo gpu.Framebuffer) {
	if _, ok := rec.framebuffers[fbo]; !ok && fbo != gpu.DefaultFramebuffer {
		rec.raise(fmt.Errorf("BindFramebuffer: invalid framebuffer (%d)", fbo))
		return
	}
	rec.framebuffer = fbo
	rec.tracef("BindFramebuffer(%d)", fbo)
}

// FramebufferTexture implements the gpu.Context interface.
func (rec *Recorder) FramebufferTexture(attachment int, tex gpu.Texture) {
	f, ok := rec.framebuffers[rec.framebuffer]
	if !ok {
		rec.raise(errors.New("FramebufferTexture: default framebuffer cannot have attachments"))
		return
	}
	if tex == 0 {
		delete(f.attachments, attachment)
	} else {
		f.attachments[attachment] = tex
	}
	rec.tracef("FramebufferTexture(%d, %d)", attachment, tex)
}

// CheckFramebufferStatus implements the gpu.Context interface.
func (rec *Recorder) CheckFramebufferStatus() gpu.Status {
	st := rec.status(rec.framebuffer)
	rec.tracef("CheckFramebufferStatus() = %s", st)
	return st
}

func (rec *Recorder) status(fbo gpu.Framebuffer) gpu.Status {
	if fbo == gpu.DefaultFramebuffer {
		return gpu.StatusComplete
	}

	f, ok := rec.framebuffers[fbo]
	if !ok {
		return gpu.StatusUnknown
	}

	if len(f.attachments) == 0 {
		return gpu.StatusMissingAttachment
	}

	// iterate over attachments in a consistent order
	idx := make([]int, 0, len(f.attachments))
	for a := range f.attachments {
		idx = append(idx, a)
	}
	sort.Ints(idx)

	w, h := -1, -1
	for _, a := range idx {
		if a < 0 || a >= rec.info.MaxColorAttachments {
			return gpu.StatusUnsupported
		}

		t, ok := rec.textures[f.attachments[a]]
		if !ok || !t.allocated {
			return gpu.StatusIncompleteAttachment
		}

		// a mipmap dependent minification filter with no mipmaps
		if t.sampling.MinFilter == gpu.FilterDefault {
			return gpu.StatusIncompleteAttachment
		}

		if t.format.IsFloat() && !rec.info.FloatRenderable {
			return gpu.StatusUnsupported
		}

		if w == -1 {
			w, h = t.width, t.height
		} else if w != t.width || h != t.height {
			return gpu.StatusIncompleteDimensions
		}
	}

	return gpu.StatusComplete
}

// DrawBuffers implements the gpu.Context interface.
func (rec *Recorder) DrawBuffers(attachments []int) {
	f, ok := rec.framebuffers[rec.framebuffer]
	if !ok {
		rec.raise(errors.New("DrawBuffers: default framebuffer"))
		return
	}
	f.drawBuffers = append([]int{}, attachments...)
	rec.tracef("DrawBuffers(%v)", attachments)
}

// CreateBuffer implements the gpu.Context interface.
func (rec *Recorder) CreateBuffer() gpu.Buffer {
	h := gpu.Buffer(rec.handle())
	rec.buffers[h] = nil
	rec.tracef("CreateBuffer() = %d", h)
	return h
}

// DeleteBuffer implements the gpu.Context interface.
func (rec *Recorder) DeleteBuffer(buf gpu.Buffer) {
	delete(rec.buffers, buf)
	rec.tracef("DeleteBuffer(%d)", buf)
}

// BindBuffer implements the gpu.Context interface.
func (rec *Recorder) BindBuffer(target gpu.Target, buf gpu.Buffer) {
	if _, ok := rec.buffers[buf]; !ok && buf != 0 {
		rec.raise(fmt.Errorf("BindBuffer: invalid buffer (%d)", buf))
		return
	}
	switch target {
	case gpu.ArrayBuffer:
		rec.arrayBuffer = buf
	case gpu.ElementArrayBuffer:
		rec.elementArray = buf
	}
	rec.tracef("BindBuffer(%d, %d)", target, buf)
}

// BufferData implements the gpu.Context interface.
func (rec *Recorder) BufferData(target gpu.Target, data []byte) {
	var buf gpu.Buffer
	switch target {
	case gpu.ArrayBuffer:
		buf = rec.arrayBuffer
	case gpu.ElementArrayBuffer:
		buf = rec.elementArray
	}
	if buf == 0 {
		rec.raise(errors.New("BufferData: no buffer bound"))
		return
	}
	rec.buffers[buf] = append([]byte{}, data...)
	rec.tracef("BufferData(%d, %d bytes)", target, len(data))
}

// CreateVertexArray implements the gpu.Context interface.
func (rec *Recorder) CreateVertexArray() gpu.VertexArray {
	h := gpu.VertexArray(rec.handle())
	rec.vertexArrays[h] = true
	rec.tracef("CreateVertexArray() = %d", h)
	return h
}

// DeleteVertexArray implements the gpu.Context interface.
func (rec *Recorder) DeleteVertexArray(vao gpu.VertexArray) {
	delete(rec.vertexArrays, vao)
	if rec.vertexArray == vao {
		rec.vertexArray = 0
	}
	rec.tracef("DeleteVertexArray(%d)", vao)
}

// BindVertexArray implements the gpu.Context interface.
func (rec *Recorder) BindVertexArray(vao gpu.VertexArray) {
	if !rec.vertexArrays[vao] && vao != 0 {
		rec.raise(fmt.Errorf("BindVertexArray: invalid vertex array (%d)", vao))
		return
	}
	rec.vertexArray = vao
	rec.tracef("BindVertexArray(%d)", vao)
}

// EnableVertexAttribArray implements the gpu.Context interface.
func (rec *Recorder) EnableVertexAttribArray(loc gpu.Location) {
	rec.tracef("EnableVertexAttribArray(%d)", loc)
}

// VertexAttribPointer implements the gpu.Context interface.
func (rec *Recorder) VertexAttribPointer(loc gpu.Location, size int, stride int, offset int) {
	if rec.arrayBuffer == 0 {
		rec.raise(errors.New("VertexAttribPointer: no array buffer bound"))
		return
	}
	rec.tracef("VertexAttribPointer(%d, %d, %d, %d)", loc, size, stride, offset)
}

// Viewport implements the gpu.Context interface.
func (rec *Recorder) Viewport(x int, y int, width int, height int) {
	rec.viewport = [4]int{x, y, width, height}
	rec.tracef("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

// ClearColor implements the gpu.Context interface.
func (rec *Recorder) ClearColor(r float32, g float32, b float32, a float32) {
	rec.tracef("ClearColor(%.2f, %.2f, %.2f, %.2f)", r, g, b, a)
}

// Clear implements the gpu.Context interface.
func (rec *Recorder) Clear() {
	rec.tracef("Clear()")
}

// DrawElements implements the gpu.Context interface.
func (rec *Recorder) DrawElements(count int) {
	if rec.program == 0 {
		rec.raise(errors.New("DrawElements: no current program"))
		return
	}
	if rec.vertexArray == 0 {
		rec.raise(errors.New("DrawElements: no vertex array bound"))
		return
	}

	d := Draw{
		Program:     rec.program,
		Framebuffer: rec.framebuffer,
		Viewport:    rec.viewport,
		VertexArray: rec.vertexArray,
		Count:       count,
		Textures:    make(map[int]gpu.Texture),
		Attachments: make(map[int]gpu.Texture),
		Status:      rec.status(rec.framebuffer),
	}
	for u, t := range rec.units {
		d.Textures[u] = t
	}
	f, ok := rec.framebuffers[rec.framebuffer]
	if ok {
		d.DrawBuffers = append([]int{}, f.drawBuffers...)
		for a, t := range f.attachments {
			d.Attachments[a] = t
		}
	}

	if d.Status != gpu.StatusComplete {
		rec.raise(fmt.Errorf("DrawElements: invalid framebuffer operation (%s)", d.Status))
	}

	rec.draws = append(rec.draws, d)

	if rec.FillDraws && ok && d.Status == gpu.StatusComplete {
		v := byte(len(rec.draws))
		for _, a := range d.DrawBuffers {
			if t, ok := rec.textures[f.attachments[a]]; ok {
				for i := range t.pixels {
					t.pixels[i] = v
				}
			}
		}
	}

	if rec.activeQuery != 0 {
		rec.querySamples += uint32(d.Viewport[2] * d.Viewport[3])
	}
	rec.tracef("DrawElements(%d) program=%d framebuffer=%d viewport=%v", count, d.Program, d.Framebuffer, d.Viewport)
}

// ReadPixels implements the gpu.Context interface.
func (rec *Recorder) ReadPixels(attachment int, format gpu.Format, width int, height int, dst []byte) {
	f, ok := rec.framebuffers[rec.framebuffer]
	if !ok {
		rec.raise(errors.New("ReadPixels: default framebuffer cannot be read"))
		return
	}
	t, ok := rec.textures[f.attachments[attachment]]
	if !ok {
		rec.raise(fmt.Errorf("ReadPixels: nothing attached at %d", attachment))
		return
	}
	if t.format != format {
		rec.raise(fmt.Errorf("ReadPixels: format %s does not match attachment format %s", format, t.format))
		return
	}
	copy(dst, t.pixels)
	rec.tracef("ReadPixels(%d, %s, %dx%d)", attachment, format, width, height)
}

// CreateQuery implements the gpu.Context interface.
func (rec *Recorder) CreateQuery() gpu.Query {
	h := gpu.Query(rec.handle())
	rec.queries[h] = &query{}
	rec.tracef("CreateQuery() = %d", h)
	return h
}

// DeleteQuery implements the gpu.Context interface.
func (rec *Recorder) DeleteQuery(q gpu.Query) {
	delete(rec.queries, q)
	rec.tracef("DeleteQuery(%d)", q)
}

// BeginQuery implements the gpu.Context interface.
func (rec *Recorder) BeginQuery(q gpu.Query) {
	qr, ok := rec.queries[q]
	if !ok {
		rec.raise(fmt.Errorf("BeginQuery: invalid query (%d)", q))
		return
	}
	if rec.activeQuery != 0 {
		rec.raise(errors.New("BeginQuery: query already active"))
		return
	}
	*qr = query{}
	rec.activeQuery = q
	rec.querySamples = 0
	rec.queryStart = len(rec.draws)
	rec.tracef("BeginQuery(%d)", q)
}

// EndQuery implements the gpu.Context interface.
func (rec *Recorder) EndQuery() {
	qr, ok := rec.queries[rec.activeQuery]
	if !ok {
		rec.raise(errors.New("EndQuery: no active query"))
		return
	}

	qr.result = rec.querySamples
	if rec.QuerySamples != nil {
		qr.result = rec.QuerySamples(rec.draws[rec.queryStart:])
	}

	rec.tracef("EndQuery(%d)", rec.activeQuery)
	rec.activeQuery = 0
}

// QueryResultAvailable implements the gpu.Context interface.
func (rec *Recorder) QueryResultAvailable(q gpu.Query) bool {
	qr, ok := rec.queries[q]
	if !ok {
		rec.raise(fmt.Errorf("QueryResultAvailable: invalid query (%d)", q))
		return false
	}
	if !qr.available {
		qr.polls++
		qr.available = qr.polls > rec.QueryLatency
	}
	return qr.available
}

// QueryResult implements the gpu.Context interface.
func (rec *Recorder) QueryResult(q gpu.Query) uint32 {
	qr, ok := rec.queries[q]
	if !ok {
		rec.raise(fmt.Errorf("QueryResult: invalid query (%d)", q))
		return 0
	}
	return qr.result
}

// Error implements the gpu.Context interface.
func (rec *Recorder) Error() error {
	err := rec.err
	rec.err = nil
	return err
}
