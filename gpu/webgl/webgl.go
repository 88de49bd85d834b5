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

//go:build js && wasm

package webgl

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/logger"
)

// Context implements the gpu.Context interface.
type Context struct {
	gl   js.Value
	info gpu.Info

	// table of WebGL objects. index zero is never used so that the zero value
	// of a handle is the "none" value
	objects []js.Value
	free    []uint32

	// uniform locations are objects in WebGL. the index into the table is the
	// gpu.Location
	uniforms    []js.Value
	uniformKeys map[string]gpu.Location

	uint8Array   js.Value
	float32Array js.Value
}

// NewContext creates a WebGL2 context for the HTML canvas element.
func NewContext(canvas js.Value) (*Context, error) {
	attrs := map[string]any{
		"antialias":             false,
		"depth":                 false,
		"preserveDrawingBuffer": false,
	}
	gl := canvas.Call("getContext", "webgl2", attrs)
	if gl.IsNull() || gl.IsUndefined() {
		return nil, errors.New("webgl: WebGL2 is not available")
	}

	ctx := &Context{
		gl:           gl,
		objects:      []js.Value{js.Null()},
		uniformKeys:  make(map[string]gpu.Location),
		uint8Array:   js.Global().Get("Uint8Array"),
		float32Array: js.Global().Get("Float32Array"),
	}

	// float render targets require an extension
	ext := gl.Call("getExtension", "EXT_color_buffer_float")

	ctx.info = gpu.Info{
		Vendor:              gl.Call("getParameter", glVendor).String(),
		Renderer:            gl.Call("getParameter", glRenderer).String(),
		Version:             gl.Call("getParameter", glVersion).String(),
		Dialect:             "300 es",
		FloatRenderable:     !ext.IsNull(),
		MaxColorAttachments: gl.Call("getParameter", glMaxColorAttachments).Int(),
	}

	gl.Call("pixelStorei", glUnpackAlignment, 1)
	gl.Call("pixelStorei", glPackAlignment, 1)

	logger.Logf(logger.Allow, "webgl", "%s %s (%s)", ctx.info.Vendor, ctx.info.Renderer, ctx.info.Version)

	return ctx, nil
}

func (ctx *Context) add(v js.Value) uint32 {
	if v.IsNull() {
		return 0
	}
	if len(ctx.free) > 0 {
		h := ctx.free[len(ctx.free)-1]
		ctx.free = ctx.free[:len(ctx.free)-1]
		ctx.objects[h] = v
		return h
	}
	ctx.objects = append(ctx.objects, v)
	return uint32(len(ctx.objects) - 1)
}

// object returns null for the zero handle and for unknown handles.
func (ctx *Context) object(h uint32) js.Value {
	if h == 0 || int(h) >= len(ctx.objects) {
		return js.Null()
	}
	return ctx.objects[h]
}

func (ctx *Context) remove(h uint32) js.Value {
	v := ctx.object(h)
	if !v.IsNull() {
		ctx.objects[h] = js.Null()
		ctx.free = append(ctx.free, h)
	}
	return v
}

// Info implements the gpu.Context interface.
func (ctx *Context) Info() gpu.Info {
	return ctx.info
}

// CompileShader implements the gpu.Context interface.
func (ctx *Context) CompileShader(s gpu.Stage, source string) (gpu.Shader, error) {
	typ := glFragmentShader
	if s == gpu.VertexStage {
		typ = glVertexShader
	}

	sh := ctx.gl.Call("createShader", typ)
	ctx.gl.Call("shaderSource", sh, source)
	ctx.gl.Call("compileShader", sh)

	if !ctx.gl.Call("getShaderParameter", sh, glCompileStatus).Bool() {
		log := ctx.gl.Call("getShaderInfoLog", sh).String()
		ctx.gl.Call("deleteShader", sh)
		return 0, errors.New(log)
	}

	return gpu.Shader(ctx.add(sh)), nil
}

// DeleteShader implements the gpu.Context interface.
func (ctx *Context) DeleteShader(sh gpu.Shader) {
	ctx.gl.Call("deleteShader", ctx.remove(uint32(sh)))
}

// LinkProgram implements the gpu.Context interface.
func (ctx *Context) LinkProgram(vert gpu.Shader, frag gpu.Shader) (gpu.Program, error) {
	vs := ctx.object(uint32(vert))
	fs := ctx.object(uint32(frag))

	prg := ctx.gl.Call("createProgram")
	ctx.gl.Call("attachShader", prg, vs)
	ctx.gl.Call("attachShader", prg, fs)
	ctx.gl.Call("linkProgram", prg)

	if !ctx.gl.Call("getProgramParameter", prg, glLinkStatus).Bool() {
		log := ctx.gl.Call("getProgramInfoLog", prg).String()
		ctx.gl.Call("deleteProgram", prg)
		return 0, errors.New(log)
	}

	ctx.gl.Call("detachShader", prg, vs)
	ctx.gl.Call("detachShader", prg, fs)

	return gpu.Program(ctx.add(prg)), nil
}

// DeleteProgram implements the gpu.Context interface.
func (ctx *Context) DeleteProgram(prg gpu.Program) {
	ctx.gl.Call("deleteProgram", ctx.remove(uint32(prg)))

	prefix := fmt.Sprintf("%d:", prg)
	for k, loc := range ctx.uniformKeys {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			ctx.uniforms[loc] = js.Null()
			delete(ctx.uniformKeys, k)
		}
	}
}

// UseProgram implements the gpu.Context interface.
func (ctx *Context) UseProgram(prg gpu.Program) {
	ctx.gl.Call("useProgram", ctx.object(uint32(prg)))
}

// AttribLocation implements the gpu.Context interface.
func (ctx *Context) AttribLocation(prg gpu.Program, name string) gpu.Location {
	return gpu.Location(ctx.gl.Call("getAttribLocation", ctx.object(uint32(prg)), name).Int())
}

// UniformLocation implements the gpu.Context interface.
func (ctx *Context) UniformLocation(prg gpu.Program, name string) gpu.Location {
	key := fmt.Sprintf("%d:%s", prg, name)
	if loc, ok := ctx.uniformKeys[key]; ok {
		return loc
	}

	v := ctx.gl.Call("getUniformLocation", ctx.object(uint32(prg)), name)
	if v.IsNull() {
		return gpu.NoLocation
	}

	loc := gpu.Location(len(ctx.uniforms))
	ctx.uniforms = append(ctx.uniforms, v)
	ctx.uniformKeys[key] = loc
	return loc
}

func (ctx *Context) uniform(loc gpu.Location) js.Value {
	if !loc.Valid() || int(loc) >= len(ctx.uniforms) {
		return js.Null()
	}
	return ctx.uniforms[loc]
}

// Uniform1i implements the gpu.Context interface.
func (ctx *Context) Uniform1i(loc gpu.Location, v int32) {
	ctx.gl.Call("uniform1i", ctx.uniform(loc), v)
}

// Uniform1f implements the gpu.Context interface.
func (ctx *Context) Uniform1f(loc gpu.Location, v float32) {
	ctx.gl.Call("uniform1f", ctx.uniform(loc), v)
}

// Uniform2f implements the gpu.Context interface.
func (ctx *Context) Uniform2f(loc gpu.Location, v0 float32, v1 float32) {
	ctx.gl.Call("uniform2f", ctx.uniform(loc), v0, v1)
}

// CreateTexture implements the gpu.Context interface.
func (ctx *Context) CreateTexture() gpu.Texture {
	return gpu.Texture(ctx.add(ctx.gl.Call("createTexture")))
}

// DeleteTexture implements the gpu.Context interface.
func (ctx *Context) DeleteTexture(tex gpu.Texture) {
	ctx.gl.Call("deleteTexture", ctx.remove(uint32(tex)))
}

// ActiveTexture implements the gpu.Context interface.
func (ctx *Context) ActiveTexture(unit int) {
	ctx.gl.Call("activeTexture", glTexture0+unit)
}

// BindTexture implements the gpu.Context interface.
func (ctx *Context) BindTexture(tex gpu.Texture) {
	ctx.gl.Call("bindTexture", glTexture2D, ctx.object(uint32(tex)))
}

func filter(f gpu.Filter) int {
	if f == gpu.FilterLinear {
		return glLinear
	}
	return glNearest
}

func wrap(w gpu.Wrap) int {
	switch w {
	case gpu.WrapRepeat:
		return glRepeat
	case gpu.WrapMirroredRepeat:
		return glMirroredRepeat
	}
	return glClampToEdge
}

// SetSampling implements the gpu.Context interface.
func (ctx *Context) SetSampling(s gpu.Sampling) {
	if s.MinFilter != gpu.FilterDefault {
		ctx.gl.Call("texParameteri", glTexture2D, glTextureMinFilter, filter(s.MinFilter))
	}
	if s.MagFilter != gpu.FilterDefault {
		ctx.gl.Call("texParameteri", glTexture2D, glTextureMagFilter, filter(s.MagFilter))
	}
	if s.WrapS != gpu.WrapDefault {
		ctx.gl.Call("texParameteri", glTexture2D, glTextureWrapS, wrap(s.WrapS))
	}
	if s.WrapT != gpu.WrapDefault {
		ctx.gl.Call("texParameteri", glTexture2D, glTextureWrapT, wrap(s.WrapT))
	}
}

func formats(f gpu.Format) (int, int, int) {
	switch f {
	case gpu.FormatR8:
		return glR8, glRed, glUnsignedByte
	case gpu.FormatRGB8:
		return glRGB8, glRGB, glUnsignedByte
	case gpu.FormatRGBA32F:
		return glRGBA32F, glRGBA, glFloat
	}
	return glRGBA8, glRGBA, glUnsignedByte
}

// view copies the pixels into a typed array suitable for the format.
func (ctx *Context) view(format gpu.Format, pixels []byte) js.Value {
	if len(pixels) == 0 {
		return js.Null()
	}
	arr := ctx.uint8Array.New(len(pixels))
	js.CopyBytesToJS(arr, pixels)
	if format.IsFloat() {
		return ctx.float32Array.New(arr.Get("buffer"))
	}
	return arr
}

// TexImage2D implements the gpu.Context interface.
func (ctx *Context) TexImage2D(format gpu.Format, width int, height int, pixels []byte) {
	internal, pixfmt, pixtype := formats(format)
	ctx.gl.Call("texImage2D", glTexture2D, 0, internal, width, height, 0, pixfmt, pixtype, ctx.view(format, pixels))
}

// TexSubImage2D implements the gpu.Context interface.
func (ctx *Context) TexSubImage2D(format gpu.Format, width int, height int, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	_, pixfmt, pixtype := formats(format)
	ctx.gl.Call("texSubImage2D", glTexture2D, 0, 0, 0, width, height, pixfmt, pixtype, ctx.view(format, pixels))
}

// CreateFramebuffer implements the gpu.Context interface.
func (ctx *Context) CreateFramebuffer() gpu.Framebuffer {
	return gpu.Framebuffer(ctx.add(ctx.gl.Call("createFramebuffer")))
}

// DeleteFramebuffer implements the gpu.Context interface.
func (ctx *Context) DeleteFramebuffer(fbo gpu.Framebuffer) {
	ctx.gl.Call("deleteFramebuffer", ctx.remove(uint32(fbo)))
}

// BindFramebuffer implements the gpu.Context interface. The zero handle binds
// the canvas.
func (ctx *Context) BindFramebuffer(fbo gpu.Framebuffer) {
	ctx.gl.Call("bindFramebuffer", glFramebuffer, ctx.object(uint32(fbo)))
}

// FramebufferTexture implements the gpu.Context interface.
func (ctx *Context) FramebufferTexture(attachment int, tex gpu.Texture) {
	ctx.gl.Call("framebufferTexture2D", glFramebuffer, glColorAttachment0+attachment, glTexture2D, ctx.object(uint32(tex)), 0)
}

// CheckFramebufferStatus implements the gpu.Context interface.
func (ctx *Context) CheckFramebufferStatus() gpu.Status {
	switch ctx.gl.Call("checkFramebufferStatus", glFramebuffer).Int() {
	case glFramebufferComplete:
		return gpu.StatusComplete
	case glIncompleteAttachment:
		return gpu.StatusIncompleteAttachment
	case glIncompleteMissingAttachment:
		return gpu.StatusMissingAttachment
	case glIncompleteDimensions:
		return gpu.StatusIncompleteDimensions
	case glFramebufferUnsupported:
		return gpu.StatusUnsupported
	case glIncompleteMultisample:
		return gpu.StatusIncompleteMultisample
	}
	return gpu.StatusUnknown
}

// DrawBuffers implements the gpu.Context interface.
func (ctx *Context) DrawBuffers(attachments []int) {
	bufs := make([]any, len(attachments))
	for i, a := range attachments {
		bufs[i] = glColorAttachment0 + a
	}
	ctx.gl.Call("drawBuffers", bufs)
}

func target(t gpu.Target) int {
	if t == gpu.ElementArrayBuffer {
		return glElementArrayBuffer
	}
	return glArrayBuffer
}

// CreateBuffer implements the gpu.Context interface.
func (ctx *Context) CreateBuffer() gpu.Buffer {
	return gpu.Buffer(ctx.add(ctx.gl.Call("createBuffer")))
}

// DeleteBuffer implements the gpu.Context interface.
func (ctx *Context) DeleteBuffer(buf gpu.Buffer) {
	ctx.gl.Call("deleteBuffer", ctx.remove(uint32(buf)))
}

// BindBuffer implements the gpu.Context interface.
func (ctx *Context) BindBuffer(t gpu.Target, buf gpu.Buffer) {
	ctx.gl.Call("bindBuffer", target(t), ctx.object(uint32(buf)))
}

// BufferData implements the gpu.Context interface.
func (ctx *Context) BufferData(t gpu.Target, data []byte) {
	arr := ctx.uint8Array.New(len(data))
	js.CopyBytesToJS(arr, data)
	ctx.gl.Call("bufferData", target(t), arr, glStaticDraw)
}

// CreateVertexArray implements the gpu.Context interface.
func (ctx *Context) CreateVertexArray() gpu.VertexArray {
	return gpu.VertexArray(ctx.add(ctx.gl.Call("createVertexArray")))
}

// DeleteVertexArray implements the gpu.Context interface.
func (ctx *Context) DeleteVertexArray(vao gpu.VertexArray) {
	ctx.gl.Call("deleteVertexArray", ctx.remove(uint32(vao)))
}

// BindVertexArray implements the gpu.Context interface.
func (ctx *Context) BindVertexArray(vao gpu.VertexArray) {
	ctx.gl.Call("bindVertexArray", ctx.object(uint32(vao)))
}

// EnableVertexAttribArray implements the gpu.Context interface.
func (ctx *Context) EnableVertexAttribArray(loc gpu.Location) {
	ctx.gl.Call("enableVertexAttribArray", int(loc))
}

// VertexAttribPointer implements the gpu.Context interface.
func (ctx *Context) VertexAttribPointer(loc gpu.Location, size int, stride int, offset int) {
	ctx.gl.Call("vertexAttribPointer", int(loc), size, glFloat, false, stride, offset)
}

// Viewport implements the gpu.Context interface.
func (ctx *Context) Viewport(x int, y int, width int, height int) {
	ctx.gl.Call("viewport", x, y, width, height)
}

// ClearColor implements the gpu.Context interface.
func (ctx *Context) ClearColor(r float32, g float32, b float32, a float32) {
	ctx.gl.Call("clearColor", r, g, b, a)
}

// Clear implements the gpu.Context interface.
func (ctx *Context) Clear() {
	ctx.gl.Call("clear", glColorBufferBit)
}

// DrawElements implements the gpu.Context interface.
func (ctx *Context) DrawElements(count int) {
	ctx.gl.Call("drawElements", glTriangles, count, glUnsignedShort, 0)
}

// ReadPixels implements the gpu.Context interface.
//
// WebGL only guarantees reads of RGBA data. Formats with fewer channels are
// read as RGBA and then compacted into dst.
func (ctx *Context) ReadPixels(attachment int, format gpu.Format, width int, height int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	ctx.gl.Call("readBuffer", glColorAttachment0+attachment)

	if format.IsFloat() {
		arr := ctx.float32Array.New(len(dst) / 4)
		ctx.gl.Call("readPixels", 0, 0, width, height, glRGBA, glFloat, arr)
		js.CopyBytesToGo(dst, ctx.uint8Array.New(arr.Get("buffer")))
		return
	}

	rgba := make([]byte, width*height*4)
	arr := ctx.uint8Array.New(len(rgba))
	ctx.gl.Call("readPixels", 0, 0, width, height, glRGBA, glUnsignedByte, arr)
	js.CopyBytesToGo(rgba, arr)

	ch := format.Channels()
	if ch == 4 {
		copy(dst, rgba)
		return
	}
	for i := 0; i < width*height && (i+1)*ch <= len(dst); i++ {
		copy(dst[i*ch:(i+1)*ch], rgba[i*4:i*4+ch])
	}
}

// CreateQuery implements the gpu.Context interface.
func (ctx *Context) CreateQuery() gpu.Query {
	return gpu.Query(ctx.add(ctx.gl.Call("createQuery")))
}

// DeleteQuery implements the gpu.Context interface.
func (ctx *Context) DeleteQuery(q gpu.Query) {
	ctx.gl.Call("deleteQuery", ctx.remove(uint32(q)))
}

// BeginQuery implements the gpu.Context interface.
func (ctx *Context) BeginQuery(q gpu.Query) {
	ctx.gl.Call("beginQuery", glAnySamplesPassedConservative, ctx.object(uint32(q)))
}

// EndQuery implements the gpu.Context interface.
func (ctx *Context) EndQuery() {
	ctx.gl.Call("endQuery", glAnySamplesPassedConservative)
}

// QueryResultAvailable implements the gpu.Context interface.
func (ctx *Context) QueryResultAvailable(q gpu.Query) bool {
	return ctx.gl.Call("getQueryParameter", ctx.object(uint32(q)), glQueryResultAvailable).Bool()
}

// QueryResult implements the gpu.Context interface.
func (ctx *Context) QueryResult(q gpu.Query) uint32 {
	v := ctx.gl.Call("getQueryParameter", ctx.object(uint32(q)), glQueryResult)
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return 1
		}
		return 0
	case js.TypeNumber:
		return uint32(v.Int())
	}
	return 0
}

// Error implements the gpu.Context interface.
func (ctx *Context) Error() error {
	first := glNoError
	for e := ctx.gl.Call("getError").Int(); e != glNoError; e = ctx.gl.Call("getError").Int() {
		if first == glNoError {
			first = e
		}
		if e == glContextLost {
			break
		}
	}
	if first == glNoError {
		return nil
	}
	return fmt.Errorf("webgl: %s", errorName(first))
}

func errorName(e int) string {
	switch e {
	case glInvalidEnum:
		return "invalid enum"
	case glInvalidValue:
		return "invalid value"
	case glInvalidOperation:
		return "invalid operation"
	case glInvalidFramebufferOperation:
		return "invalid framebuffer operation"
	case glOutOfMemory:
		return "out of memory"
	case glContextLost:
		return "context lost"
	}
	return fmt.Sprintf("error 0x%04x", e)
}
