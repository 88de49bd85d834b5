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

package gl32

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/go-gl/gl/v3.2-core/gl"
)

// Context implements the gpu.Context interface.
type Context struct {
	info gpu.Info

	// the query that was begun most recently and not yet ended
	activeQuery bool
}

// NewContext initialises the OpenGL bindings and returns a new Context.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	var maxAttachments int32
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &maxAttachments)

	ctx := &Context{
		info: gpu.Info{
			Vendor:              gl.GoStr(gl.GetString(gl.VENDOR)),
			Renderer:            gl.GoStr(gl.GetString(gl.RENDERER)),
			Version:             gl.GoStr(gl.GetString(gl.VERSION)),
			Dialect:             "150 core",
			FloatRenderable:     true,
			MaxColorAttachments: int(maxAttachments),
		},
	}

	// rows of R8 and RGB8 textures are not aligned to four bytes
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	logger.Logf(logger.Allow, "gl32", "%s %s (%s)", ctx.info.Vendor, ctx.info.Renderer, ctx.info.Version)

	return ctx, nil
}

// Info implements the gpu.Context interface.
func (ctx *Context) Info() gpu.Info {
	return ctx.info
}

func stage(s gpu.Stage) uint32 {
	if s == gpu.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// CompileShader implements the gpu.Context interface.
func (ctx *Context) CompileShader(s gpu.Stage, source string) (gpu.Shader, error) {
	handle := gl.CreateShader(stage(s))

	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csource, nil)
	free()

	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		// the log length includes the NULL character
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(log))
		gl.DeleteShader(handle)

		return 0, errors.New(strings.TrimRight(log, "\x00\n"))
	}

	return gpu.Shader(handle), nil
}

// DeleteShader implements the gpu.Context interface.
func (ctx *Context) DeleteShader(sh gpu.Shader) {
	gl.DeleteShader(uint32(sh))
}

// LinkProgram implements the gpu.Context interface.
func (ctx *Context) LinkProgram(vert gpu.Shader, frag gpu.Shader) (gpu.Program, error) {
	handle := gl.CreateProgram()
	gl.AttachShader(handle, uint32(vert))
	gl.AttachShader(handle, uint32(frag))
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(log))
		gl.DeleteProgram(handle)

		return 0, errors.New(strings.TrimRight(log, "\x00\n"))
	}

	// the shaders are no longer needed once the program has been linked
	gl.DetachShader(handle, uint32(vert))
	gl.DetachShader(handle, uint32(frag))

	return gpu.Program(handle), nil
}

// DeleteProgram implements the gpu.Context interface.
func (ctx *Context) DeleteProgram(prg gpu.Program) {
	gl.DeleteProgram(uint32(prg))
}

// UseProgram implements the gpu.Context interface.
func (ctx *Context) UseProgram(prg gpu.Program) {
	gl.UseProgram(uint32(prg))
}

// AttribLocation implements the gpu.Context interface.
func (ctx *Context) AttribLocation(prg gpu.Program, name string) gpu.Location {
	return gpu.Location(gl.GetAttribLocation(uint32(prg), gl.Str(name+"\x00")))
}

// UniformLocation implements the gpu.Context interface.
func (ctx *Context) UniformLocation(prg gpu.Program, name string) gpu.Location {
	return gpu.Location(gl.GetUniformLocation(uint32(prg), gl.Str(name+"\x00")))
}

// Uniform1i implements the gpu.Context interface.
func (ctx *Context) Uniform1i(loc gpu.Location, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// Uniform1f implements the gpu.Context interface.
func (ctx *Context) Uniform1f(loc gpu.Location, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// Uniform2f implements the gpu.Context interface.
func (ctx *Context) Uniform2f(loc gpu.Location, v0 float32, v1 float32) {
	gl.Uniform2f(int32(loc), v0, v1)
}

// CreateTexture implements the gpu.Context interface.
func (ctx *Context) CreateTexture() gpu.Texture {
	var handle uint32
	gl.GenTextures(1, &handle)
	return gpu.Texture(handle)
}

// DeleteTexture implements the gpu.Context interface.
func (ctx *Context) DeleteTexture(tex gpu.Texture) {
	handle := uint32(tex)
	gl.DeleteTextures(1, &handle)
}

// ActiveTexture implements the gpu.Context interface.
func (ctx *Context) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// BindTexture implements the gpu.Context interface.
func (ctx *Context) BindTexture(tex gpu.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func filter(f gpu.Filter) int32 {
	if f == gpu.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(w gpu.Wrap) int32 {
	switch w {
	case gpu.WrapRepeat:
		return gl.REPEAT
	case gpu.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

// SetSampling implements the gpu.Context interface. Default values are not
// applied and the texture keeps the OpenGL defaults for those parameters.
func (ctx *Context) SetSampling(s gpu.Sampling) {
	if s.MinFilter != gpu.FilterDefault {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(s.MinFilter))
	}
	if s.MagFilter != gpu.FilterDefault {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(s.MagFilter))
	}
	if s.WrapS != gpu.WrapDefault {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(s.WrapS))
	}
	if s.WrapT != gpu.WrapDefault {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(s.WrapT))
	}
}

// internal format, pixel format and pixel type for a gpu.Format
func formats(f gpu.Format) (int32, uint32, uint32) {
	switch f {
	case gpu.FormatR8:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case gpu.FormatRGB8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case gpu.FormatRGBA32F:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT
	}
	return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
}

// TexImage2D implements the gpu.Context interface.
func (ctx *Context) TexImage2D(format gpu.Format, width int, height int, pixels []byte) {
	internal, pixfmt, pixtype := formats(format)
	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixfmt, pixtype, nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixfmt, pixtype, gl.Ptr(pixels))
}

// TexSubImage2D implements the gpu.Context interface.
func (ctx *Context) TexSubImage2D(format gpu.Format, width int, height int, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	_, pixfmt, pixtype := formats(format)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), pixfmt, pixtype, gl.Ptr(pixels))
}

// CreateFramebuffer implements the gpu.Context interface.
func (ctx *Context) CreateFramebuffer() gpu.Framebuffer {
	var handle uint32
	gl.GenFramebuffers(1, &handle)
	return gpu.Framebuffer(handle)
}

// DeleteFramebuffer implements the gpu.Context interface.
func (ctx *Context) DeleteFramebuffer(fbo gpu.Framebuffer) {
	handle := uint32(fbo)
	gl.DeleteFramebuffers(1, &handle)
}

// BindFramebuffer implements the gpu.Context interface.
func (ctx *Context) BindFramebuffer(fbo gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fbo))
}

// FramebufferTexture implements the gpu.Context interface.
func (ctx *Context) FramebufferTexture(attachment int, tex gpu.Texture) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(attachment), gl.TEXTURE_2D, uint32(tex), 0)
}

// CheckFramebufferStatus implements the gpu.Context interface.
func (ctx *Context) CheckFramebufferStatus() gpu.Status {
	switch gl.CheckFramebufferStatus(gl.FRAMEBUFFER) {
	case gl.FRAMEBUFFER_COMPLETE:
		return gpu.StatusComplete
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return gpu.StatusIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return gpu.StatusMissingAttachment
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return gpu.StatusUnsupported
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return gpu.StatusIncompleteMultisample
	}
	return gpu.StatusUnknown
}

// DrawBuffers implements the gpu.Context interface.
func (ctx *Context) DrawBuffers(attachments []int) {
	if len(attachments) == 0 {
		return
	}
	bufs := make([]uint32, len(attachments))
	for i, a := range attachments {
		bufs[i] = gl.COLOR_ATTACHMENT0 + uint32(a)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func target(t gpu.Target) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// CreateBuffer implements the gpu.Context interface.
func (ctx *Context) CreateBuffer() gpu.Buffer {
	var handle uint32
	gl.GenBuffers(1, &handle)
	return gpu.Buffer(handle)
}

// DeleteBuffer implements the gpu.Context interface.
func (ctx *Context) DeleteBuffer(buf gpu.Buffer) {
	handle := uint32(buf)
	gl.DeleteBuffers(1, &handle)
}

// BindBuffer implements the gpu.Context interface.
func (ctx *Context) BindBuffer(t gpu.Target, buf gpu.Buffer) {
	gl.BindBuffer(target(t), uint32(buf))
}

// BufferData implements the gpu.Context interface.
func (ctx *Context) BufferData(t gpu.Target, data []byte) {
	if len(data) == 0 {
		gl.BufferData(target(t), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(target(t), len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

// CreateVertexArray implements the gpu.Context interface.
func (ctx *Context) CreateVertexArray() gpu.VertexArray {
	var handle uint32
	gl.GenVertexArrays(1, &handle)
	return gpu.VertexArray(handle)
}

// DeleteVertexArray implements the gpu.Context interface.
func (ctx *Context) DeleteVertexArray(vao gpu.VertexArray) {
	handle := uint32(vao)
	gl.DeleteVertexArrays(1, &handle)
}

// BindVertexArray implements the gpu.Context interface.
func (ctx *Context) BindVertexArray(vao gpu.VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

// EnableVertexAttribArray implements the gpu.Context interface.
func (ctx *Context) EnableVertexAttribArray(loc gpu.Location) {
	gl.EnableVertexAttribArray(uint32(loc))
}

// VertexAttribPointer implements the gpu.Context interface.
func (ctx *Context) VertexAttribPointer(loc gpu.Location, size int, stride int, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

// Viewport implements the gpu.Context interface.
func (ctx *Context) Viewport(x int, y int, width int, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ClearColor implements the gpu.Context interface.
func (ctx *Context) ClearColor(r float32, g float32, b float32, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear implements the gpu.Context interface.
func (ctx *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawElements implements the gpu.Context interface.
func (ctx *Context) DrawElements(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, 0)
}

// ReadPixels implements the gpu.Context interface.
func (ctx *Context) ReadPixels(attachment int, format gpu.Format, width int, height int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	_, pixfmt, pixtype := formats(format)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0 + uint32(attachment))
	gl.ReadPixels(0, 0, int32(width), int32(height), pixfmt, pixtype, gl.Ptr(dst))
}

// CreateQuery implements the gpu.Context interface.
func (ctx *Context) CreateQuery() gpu.Query {
	var handle uint32
	gl.GenQueries(1, &handle)
	return gpu.Query(handle)
}

// DeleteQuery implements the gpu.Context interface.
func (ctx *Context) DeleteQuery(q gpu.Query) {
	handle := uint32(q)
	gl.DeleteQueries(1, &handle)
}

// BeginQuery implements the gpu.Context interface.
func (ctx *Context) BeginQuery(q gpu.Query) {
	gl.BeginQuery(gl.SAMPLES_PASSED, uint32(q))
	ctx.activeQuery = true
}

// EndQuery implements the gpu.Context interface.
func (ctx *Context) EndQuery() {
	if !ctx.activeQuery {
		return
	}
	gl.EndQuery(gl.SAMPLES_PASSED)
	ctx.activeQuery = false
}

// QueryResultAvailable implements the gpu.Context interface.
func (ctx *Context) QueryResultAvailable(q gpu.Query) bool {
	var available uint32
	gl.GetQueryObjectuiv(uint32(q), gl.QUERY_RESULT_AVAILABLE, &available)
	return available != gl.FALSE
}

// QueryResult implements the gpu.Context interface.
func (ctx *Context) QueryResult(q gpu.Query) uint32 {
	var result uint32
	gl.GetQueryObjectuiv(uint32(q), gl.QUERY_RESULT, &result)
	return result
}

// Error implements the gpu.Context interface. Every error flag is cleared
// but only the first is returned.
func (ctx *Context) Error() error {
	var first uint32
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if first == 0 {
			first = e
		}
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("gl32: %s", errorName(first))
}

func errorName(e uint32) string {
	switch e {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	}
	return fmt.Sprintf("error 0x%04x", e)
}
