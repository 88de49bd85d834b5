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

package gpu

// Context is the rasterization capability. All functions must be called from
// the thread that owns the underlying context.
type Context interface {
	Info() Info

	// CompileShader returns the compiler log as an error if compilation
	// fails.
	CompileShader(stage Stage, source string) (Shader, error)
	DeleteShader(sh Shader)

	// LinkProgram returns the linker log as an error if linking fails. The
	// shaders can be deleted once the program has been linked.
	LinkProgram(vert Shader, frag Shader) (Program, error)
	DeleteProgram(prg Program)
	UseProgram(prg Program)
	AttribLocation(prg Program, name string) Location
	UniformLocation(prg Program, name string) Location
	Uniform1i(loc Location, v int32)
	Uniform1f(loc Location, v float32)
	Uniform2f(loc Location, v0 float32, v1 float32)

	CreateTexture() Texture
	DeleteTexture(tex Texture)
	ActiveTexture(unit int)
	BindTexture(tex Texture)

	// SetSampling applies sampling parameters to the bound texture.
	SetSampling(s Sampling)

	// TexImage2D allocates storage for the bound texture. Pixels can be nil,
	// in which case the storage is uninitialised.
	TexImage2D(format Format, width int, height int, pixels []byte)

	// TexSubImage2D replaces the contents of the bound texture.
	TexSubImage2D(format Format, width int, height int, pixels []byte)

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(fbo Framebuffer)
	BindFramebuffer(fbo Framebuffer)

	// FramebufferTexture attaches the texture to the bound framebuffer at the
	// numbered color attachment.
	FramebufferTexture(attachment int, tex Texture)
	CheckFramebufferStatus() Status

	// DrawBuffers declares which color attachments of the bound framebuffer
	// receive output.
	DrawBuffers(attachments []int)

	CreateBuffer() Buffer
	DeleteBuffer(buf Buffer)
	BindBuffer(target Target, buf Buffer)
	BufferData(target Target, data []byte)

	CreateVertexArray() VertexArray
	DeleteVertexArray(vao VertexArray)
	BindVertexArray(vao VertexArray)
	EnableVertexAttribArray(loc Location)

	// VertexAttribPointer describes float attribute data in the bound array
	// buffer.
	VertexAttribPointer(loc Location, size int, stride int, offset int)

	Viewport(x int, y int, width int, height int)
	ClearColor(r float32, g float32, b float32, a float32)
	Clear()

	// DrawElements draws triangles using the bound element array buffer of
	// unsigned 16 bit indices.
	DrawElements(count int)

	// ReadPixels reads from the numbered color attachment of the bound
	// framebuffer into dst. The size of dst must be appropriate for the
	// format.
	ReadPixels(attachment int, format Format, width int, height int, dst []byte)

	// occlusion queries count the number of samples that pass. the result of
	// a query is not available until some time after EndQuery()
	CreateQuery() Query
	DeleteQuery(q Query)
	BeginQuery(q Query)
	EndQuery()
	QueryResultAvailable(q Query) bool
	QueryResult(q Query) uint32

	// Error returns any error raised by the underlying API since the last
	// call. The error may be nil.
	Error() error
}
