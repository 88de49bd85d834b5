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

package recorder_test

import (
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/test"
)

const vertSource = `#version 150 core
in vec2 position;
out vec2 uv;
void main() {
	uv = position * 0.5 + 0.5;
	gl_Position = vec4(position, 0.0, 1.0);
}`

const fragSource = `#version 150 core
in vec2 uv;
uniform sampler2D src;
uniform float unused;
out vec4 colour;
void main() {
	colour = texture(src, uv);
}`

func TestCompile(t *testing.T) {
	rec := recorder.NewRecorder()

	vs, err := rec.CompileShader(gpu.VertexStage, vertSource)
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, vs, 0)

	_, err = rec.CompileShader(gpu.FragmentStage, "#version 150 core\n#error deliberate\nvoid main() {}")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "deliberate"))

	_, err = rec.CompileShader(gpu.FragmentStage, "#version 150 core\n")
	test.ExpectFailure(t, err)
}

func TestLink(t *testing.T) {
	rec := recorder.NewRecorder()

	vs, err := rec.CompileShader(gpu.VertexStage, vertSource)
	test.DemandSuccess(t, err)
	fs, err := rec.CompileShader(gpu.FragmentStage, fragSource)
	test.DemandSuccess(t, err)

	prg, err := rec.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, rec.AttribLocation(prg, "position").Valid(), true)
	test.ExpectEquality(t, rec.UniformLocation(prg, "src").Valid(), true)

	// declared but never used
	test.ExpectEquality(t, rec.UniformLocation(prg, "unused"), gpu.NoLocation)

	// fragment input not written by the vertex stage
	bad, err := rec.CompileShader(gpu.FragmentStage, strings.Replace(fragSource, "uv", "coords", -1))
	test.DemandSuccess(t, err)
	_, err = rec.LinkProgram(vs, bad)
	test.ExpectFailure(t, err)

	// stages in the wrong order
	_, err = rec.LinkProgram(fs, vs)
	test.ExpectFailure(t, err)
}

func TestUniforms(t *testing.T) {
	rec := recorder.NewRecorder()

	vs, _ := rec.CompileShader(gpu.VertexStage, vertSource)
	fs, _ := rec.CompileShader(gpu.FragmentStage, fragSource)
	prg, err := rec.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)

	// no current program
	rec.Uniform1i(rec.UniformLocation(prg, "src"), 3)
	test.ExpectFailure(t, rec.Error())

	rec.UseProgram(prg)
	rec.Uniform1i(rec.UniformLocation(prg, "src"), 3)
	test.ExpectSuccess(t, rec.Error())

	v, ok := rec.Uniform(prg, "src")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v.(int32), 3)

	// inactive locations are ignored
	rec.Uniform1f(gpu.NoLocation, 1.0)
	test.ExpectSuccess(t, rec.Error())
}

func createTarget(rec *recorder.Recorder, format gpu.Format, w int, h int, sampling gpu.Sampling) gpu.Texture {
	tex := rec.CreateTexture()
	rec.BindTexture(tex)
	rec.SetSampling(sampling)
	rec.TexImage2D(format, w, h, nil)
	return tex
}

func TestCompleteness(t *testing.T) {
	rec := recorder.NewRecorder()

	fbo := rec.CreateFramebuffer()
	rec.BindFramebuffer(fbo)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusMissingAttachment)

	// storage not allocated
	tex := rec.CreateTexture()
	rec.FramebufferTexture(0, tex)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusIncompleteAttachment)

	// storage allocated but the minification filter is still the default
	rec.BindTexture(tex)
	rec.TexImage2D(gpu.FormatRGBA8, 4, 4, nil)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusIncompleteAttachment)

	rec.SetSampling(gpu.NearestClamp)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusComplete)

	// second attachment of a different size
	other := createTarget(rec, gpu.FormatRGBA8, 8, 8, gpu.NearestClamp)
	rec.FramebufferTexture(1, other)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusIncompleteDimensions)

	// detaching the second attachment restores completeness
	rec.FramebufferTexture(1, 0)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusComplete)

	// deleted attachment
	rec.DeleteTexture(tex)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusIncompleteAttachment)

	// attachment index out of range
	rec.FramebufferTexture(0, other)
	rec.FramebufferTexture(rec.Info().MaxColorAttachments, other)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusUnsupported)

	// the canvas is always complete
	rec.BindFramebuffer(gpu.DefaultFramebuffer)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusComplete)
}

func TestFloatTargets(t *testing.T) {
	rec := recorder.NewRecorder()
	rec.SetFloatRenderable(false)

	tex := createTarget(rec, gpu.FormatRGBA32F, 4, 4, gpu.NearestClamp)
	fbo := rec.CreateFramebuffer()
	rec.BindFramebuffer(fbo)
	rec.FramebufferTexture(0, tex)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusUnsupported)

	rec.SetFloatRenderable(true)
	test.ExpectEquality(t, rec.CheckFramebufferStatus(), gpu.StatusComplete)
}

func quad(rec *recorder.Recorder) gpu.VertexArray {
	vao := rec.CreateVertexArray()
	rec.BindVertexArray(vao)
	vbo := rec.CreateBuffer()
	rec.BindBuffer(gpu.ArrayBuffer, vbo)
	rec.BufferData(gpu.ArrayBuffer, make([]byte, 32))
	ebo := rec.CreateBuffer()
	rec.BindBuffer(gpu.ElementArrayBuffer, ebo)
	rec.BufferData(gpu.ElementArrayBuffer, make([]byte, 12))
	return vao
}

func TestDraws(t *testing.T) {
	rec := recorder.NewRecorder()

	vs, _ := rec.CompileShader(gpu.VertexStage, vertSource)
	fs, _ := rec.CompileShader(gpu.FragmentStage, fragSource)
	prg, err := rec.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)

	// no program
	rec.DrawElements(6)
	test.ExpectFailure(t, rec.Error())
	test.ExpectEquality(t, len(rec.Draws()), 0)

	rec.UseProgram(prg)
	vao := quad(rec)

	src := createTarget(rec, gpu.FormatRGBA8, 4, 4, gpu.NearestClamp)
	dst := createTarget(rec, gpu.FormatRGBA8, 2, 2, gpu.NearestClamp)

	fbo := rec.CreateFramebuffer()
	rec.BindFramebuffer(fbo)
	rec.FramebufferTexture(0, dst)
	rec.DrawBuffers([]int{0})

	rec.ActiveTexture(0)
	rec.BindTexture(src)
	rec.Viewport(0, 0, 2, 2)
	rec.DrawElements(6)
	test.ExpectSuccess(t, rec.Error())

	draws := rec.Draws()
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Program, prg)
	test.ExpectEquality(t, draws[0].Framebuffer, fbo)
	test.ExpectEquality(t, draws[0].VertexArray, vao)
	test.ExpectEquality(t, draws[0].Viewport, [4]int{0, 0, 2, 2})
	test.ExpectEquality(t, draws[0].Textures[0], src)
	test.ExpectEquality(t, draws[0].Count, 6)
	test.ExpectEquality(t, draws[0].Status, gpu.StatusComplete)

	// drawing to an incomplete framebuffer is recorded but raises an error
	rec.FramebufferTexture(1, src)
	rec.DrawElements(6)
	test.ExpectFailure(t, rec.Error())
	test.ExpectEquality(t, rec.Draws()[1].Status, gpu.StatusIncompleteDimensions)

	rec.ResetDraws()
	test.ExpectEquality(t, len(rec.Draws()), 0)
}

func TestFillDraws(t *testing.T) {
	rec := recorder.NewRecorder()
	rec.FillDraws = true

	vs, _ := rec.CompileShader(gpu.VertexStage, vertSource)
	fs, _ := rec.CompileShader(gpu.FragmentStage, fragSource)
	prg, err := rec.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)
	rec.UseProgram(prg)
	quad(rec)

	a := createTarget(rec, gpu.FormatRGBA8, 1, 1, gpu.NearestClamp)
	b := createTarget(rec, gpu.FormatRGBA8, 1, 1, gpu.NearestClamp)

	fbo := rec.CreateFramebuffer()
	rec.BindFramebuffer(fbo)
	rec.FramebufferTexture(0, a)
	rec.FramebufferTexture(1, b)

	read := func(attachment int) string {
		dst := make([]byte, 4)
		rec.ReadPixels(attachment, gpu.FormatRGBA8, 1, 1, dst)
		return string(dst)
	}

	// only the draw buffers are written
	rec.DrawBuffers([]int{0})
	rec.DrawElements(6)
	test.ExpectSuccess(t, rec.Error())
	test.ExpectEquality(t, read(0), "\x01\x01\x01\x01")
	test.ExpectEquality(t, read(1), "\x00\x00\x00\x00")

	rec.DrawBuffers([]int{1})
	rec.DrawElements(6)
	test.ExpectEquality(t, read(0), "\x01\x01\x01\x01")
	test.ExpectEquality(t, read(1), "\x02\x02\x02\x02")

	draws := rec.Draws()
	test.DemandEquality(t, len(draws), 2)
	test.ExpectEquality(t, draws[1].Attachments[0], a)
	test.ExpectEquality(t, draws[1].Attachments[1], b)
	test.ExpectEquality(t, len(draws[1].Attachments), 2)
}

func TestQueries(t *testing.T) {
	rec := recorder.NewRecorder()
	rec.QueryLatency = 2

	vs, _ := rec.CompileShader(gpu.VertexStage, vertSource)
	fs, _ := rec.CompileShader(gpu.FragmentStage, fragSource)
	prg, _ := rec.LinkProgram(vs, fs)
	rec.UseProgram(prg)
	quad(rec)

	q := rec.CreateQuery()
	rec.BeginQuery(q)
	rec.Viewport(0, 0, 10, 10)
	rec.DrawElements(6)
	rec.EndQuery()
	test.ExpectSuccess(t, rec.Error())

	test.ExpectEquality(t, rec.QueryResultAvailable(q), false)
	test.ExpectEquality(t, rec.QueryResultAvailable(q), false)
	test.ExpectEquality(t, rec.QueryResultAvailable(q), true)
	test.ExpectEquality(t, rec.QueryResult(q), uint32(100))

	// result supplied by the test
	rec.QuerySamples = func(d []recorder.Draw) uint32 {
		return uint32(len(d)) * 7
	}
	rec.BeginQuery(q)
	rec.DrawElements(6)
	rec.DrawElements(6)
	rec.EndQuery()
	for !rec.QueryResultAvailable(q) {
	}
	test.ExpectEquality(t, rec.QueryResult(q), uint32(14))

	// ending without beginning
	rec.EndQuery()
	test.ExpectFailure(t, rec.Error())
}

func TestReadPixels(t *testing.T) {
	rec := recorder.NewRecorder()

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	tex := rec.CreateTexture()
	rec.BindTexture(tex)
	rec.SetSampling(gpu.NearestClamp)
	rec.TexImage2D(gpu.FormatRGBA8, 2, 1, data)

	fbo := rec.CreateFramebuffer()
	rec.BindFramebuffer(fbo)
	rec.FramebufferTexture(0, tex)

	dst := make([]byte, 8)
	rec.ReadPixels(0, gpu.FormatRGBA8, 2, 1, dst)
	test.ExpectSuccess(t, rec.Error())
	test.ExpectEquality(t, string(dst), string(data))

	rec.ReadPixels(0, gpu.FormatR8, 2, 1, dst)
	test.ExpectFailure(t, rec.Error())
}

func TestLive(t *testing.T) {
	rec := recorder.NewRecorder()
	tex := rec.CreateTexture()
	fbo := rec.CreateFramebuffer()
	q := rec.CreateQuery()
	test.ExpectEquality(t, rec.Live(), 3)

	rec.DeleteTexture(tex)
	rec.DeleteFramebuffer(fbo)
	rec.DeleteQuery(q)
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestTrace(t *testing.T) {
	rec := recorder.NewRecorder()

	ring, err := test.NewRingWriter(64)
	test.DemandSuccess(t, err)
	rec.SetTrace(ring)

	tex := rec.CreateTexture()
	rec.BindTexture(tex)
	test.ExpectSuccess(t, strings.HasSuffix(ring.String(), "BindTexture(1)\n"))

	// errors are included in the trace
	rec.EndQuery()
	test.ExpectFailure(t, rec.Error())
	test.ExpectSuccess(t, strings.Contains(ring.String(), "  ! "))

	// tracing stopped
	ring.Reset()
	rec.SetTrace(nil)
	rec.BindTexture(0)
	test.ExpectEquality(t, ring.String(), "")
}
