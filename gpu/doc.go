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

// Package gpu defines the rasterization capability consumed by the processing
// pipeline. The Context interface is a narrow, typed view of an OpenGL-like
// API: just enough to compile shader programs, allocate textures, assemble
// framebuffers, describe geometry and issue indexed draws.
//
// Implementations are found in the sub-packages:
//
//	gl32     desktop OpenGL 3.2 core via go-gl
//	webgl    WebGL2 in the browser via syscall/js
//	recorder an instrumented, GPU-less implementation used for testing and
//	         for tracing the sequence of draw calls made by the pipeline
//
// Resource handles are opaque to the caller. The zero value of every handle
// type is the "none" value. In the case of Framebuffer the zero value is the
// default framebuffer (ie. the visible canvas).
//
// The Context carries global state (current program, active texture unit,
// bound framebuffer, etc.) in the same way as the APIs it abstracts. Callers
// must not assume that state set by a previous operation persists.
package gpu
