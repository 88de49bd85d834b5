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

package sdlimgui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

const guiVertexShader = `#version 150 core
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main()
{
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const guiFragmentShader = `#version 150 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main()
{
	Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
`

// glsl renders imgui draw data with OpenGL 3.2.
type glsl struct {
	shader      uint32
	projMtx     int32
	texture     int32
	position    int32
	uv          int32
	color       int32
	fontTexture uint32

	vboHandle      uint32
	elementsHandle uint32
}

// newGlsl must be called after the gl bindings have been initialised.
func newGlsl() (*glsl, error) {
	rnd := &glsl{}

	err := rnd.createProgram()
	if err != nil {
		return nil, fmt.Errorf("glsl: %w", err)
	}

	rnd.setupFonts()

	gl.GenBuffers(1, &rnd.vboHandle)
	gl.GenBuffers(1, &rnd.elementsHandle)

	return rnd, nil
}

func getShaderCompileError(shader uint32) string {
	var isCompiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled == 0 {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			log := strings.Repeat("\x00", int(logLength+1))
			gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
			return strings.TrimRight(log, "\x00\n")
		}
		return "unknown compile error"
	}
	return ""
}

func (rnd *glsl) createProgram() error {
	rnd.shader = gl.CreateProgram()

	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(vertHandle)
	defer gl.DeleteShader(fragHandle)

	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()
		gl.ShaderSource(handle, 1, csource, nil)
	}

	glShaderSource(vertHandle, guiVertexShader)
	glShaderSource(fragHandle, guiFragmentShader)

	gl.CompileShader(vertHandle)
	if log := getShaderCompileError(vertHandle); log != "" {
		return errors.New(log)
	}
	gl.CompileShader(fragHandle)
	if log := getShaderCompileError(fragHandle); log != "" {
		return errors.New(log)
	}

	gl.AttachShader(rnd.shader, vertHandle)
	gl.AttachShader(rnd.shader, fragHandle)
	gl.LinkProgram(rnd.shader)
	gl.DetachShader(rnd.shader, vertHandle)
	gl.DetachShader(rnd.shader, fragHandle)

	var linked int32
	gl.GetProgramiv(rnd.shader, gl.LINK_STATUS, &linked)
	if linked == 0 {
		return errors.New("gui shader did not link")
	}

	rnd.projMtx = gl.GetUniformLocation(rnd.shader, gl.Str("ProjMtx\x00"))
	rnd.texture = gl.GetUniformLocation(rnd.shader, gl.Str("Texture\x00"))
	rnd.position = gl.GetAttribLocation(rnd.shader, gl.Str("Position\x00"))
	rnd.uv = gl.GetAttribLocation(rnd.shader, gl.Str("UV\x00"))
	rnd.color = gl.GetAttribLocation(rnd.shader, gl.Str("Color\x00"))

	return nil
}

func (rnd *glsl) setupFonts() {
	atlas := imgui.CurrentIO().Fonts()
	atlas.AddFontDefault()

	image := atlas.TextureDataAlpha8()
	gl.GenTextures(1, &rnd.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, rnd.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height), 0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	atlas.SetTextureID(imgui.TextureID(rnd.fontTexture))
}

func (rnd *glsl) destroy() {
	if rnd.vboHandle != 0 {
		gl.DeleteBuffers(1, &rnd.vboHandle)
		rnd.vboHandle = 0
	}
	if rnd.elementsHandle != 0 {
		gl.DeleteBuffers(1, &rnd.elementsHandle)
		rnd.elementsHandle = 0
	}
	if rnd.shader != 0 {
		gl.DeleteProgram(rnd.shader)
		rnd.shader = 0
	}
	if rnd.fontTexture != 0 {
		gl.DeleteTextures(1, &rnd.fontTexture)
		imgui.CurrentIO().Fonts().SetTextureID(0)
		rnd.fontTexture = 0
	}
}

// preRender clears the framebuffer.
func (rnd *glsl) preRender() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// render translates the imgui draw data to OpenGL commands.
func (rnd *glsl) render(displaySize [2]float32, framebufferSize [2]float32) {
	drawData := imgui.RenderedDrawData()

	// minimised
	fbw, fbh := framebufferSize[0], framebufferSize[1]
	if fbw <= 0 || fbh <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbw / displaySize[0],
		Y: fbh / displaySize[1],
	})

	st := storeGLState()
	defer st.restoreGLState()

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	orthoProjection := [4][4]float32{
		{2.0 / displaySize[0], 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displaySize[1], 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(rnd.shader)
	gl.Uniform1i(rnd.texture, 0)
	gl.UniformMatrix4fv(rnd.projMtx, 1, false, &orthoProjection[0][0])
	gl.ActiveTexture(gl.TEXTURE0)

	// VAOs are not shared between contexts so the VAO is recreated every frame
	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	defer gl.DeleteVertexArrays(1, &vaoHandle)

	gl.BindBuffer(gl.ARRAY_BUFFER, rnd.vboHandle)
	gl.EnableVertexAttribArray(uint32(rnd.uv))
	gl.EnableVertexAttribArray(uint32(rnd.position))
	gl.EnableVertexAttribArray(uint32(rnd.color))
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(uint32(rnd.uv), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(rnd.position), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(rnd.color), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		var indexBufferOffset uintptr

		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, rnd.vboHandle)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, rnd.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clipRect := cmd.ClipRect()
				gl.Scissor(int32(clipRect.X), int32(fbh)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, indexBufferOffset)
			}
			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}
}

// glState stores GL state so that it can be restored after the imgui pass.
// The pipeline sets the state it needs for each of its passes but does not
// expect blending or scissoring to be enabled.
type glState struct {
	lastActiveTexture      int32
	lastProgram            int32
	lastTexture            int32
	lastArrayBuffer        int32
	lastElementArrayBuffer int32
	lastVertexArray        int32
	lastViewport           [4]int32
	lastScissorBox         [4]int32
	lastEnableBlend        bool
	lastEnableScissorTest  bool
}

func storeGLState() *glState {
	st := &glState{}
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &st.lastActiveTexture)
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &st.lastProgram)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &st.lastTexture)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &st.lastArrayBuffer)
	gl.GetIntegerv(gl.ELEMENT_ARRAY_BUFFER_BINDING, &st.lastElementArrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &st.lastVertexArray)
	gl.GetIntegerv(gl.VIEWPORT, &st.lastViewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &st.lastScissorBox[0])
	st.lastEnableBlend = gl.IsEnabled(gl.BLEND)
	st.lastEnableScissorTest = gl.IsEnabled(gl.SCISSOR_TEST)
	return st
}

func (st *glState) restoreGLState() {
	gl.UseProgram(uint32(st.lastProgram))
	gl.ActiveTexture(uint32(st.lastActiveTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(st.lastTexture))
	gl.BindVertexArray(uint32(st.lastVertexArray))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(st.lastArrayBuffer))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(st.lastElementArrayBuffer))
	if st.lastEnableBlend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	if st.lastEnableScissorTest {
		gl.Enable(gl.SCISSOR_TEST)
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
	gl.Viewport(st.lastViewport[0], st.lastViewport[1], st.lastViewport[2], st.lastViewport[3])
	gl.Scissor(st.lastScissorBox[0], st.lastScissorBox[1], st.lastScissorBox[2], st.lastScissorBox[3])
}
