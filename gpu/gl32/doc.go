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

// Package gl32 implements gpu.Context with OpenGL 3.2 core profile, using the
// go-gl bindings.
//
// An OpenGL context must be current on the calling thread before NewContext()
// is called and for every subsequent call. The sdlimgui package creates a
// suitable context. All calls must be made from the thread that owns the
// context, which with SDL means the main thread.
package gl32
