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

// Package webgl implements gpu.Context with WebGL2 when compiled to
// WebAssembly.
//
// WebGL objects are javascript values and cannot be stored directly in the
// handle types of the gpu package. The Context keeps a table of objects and
// hands out the index of an object as the handle.
//
// WebGL2 does not support the counting of samples in occlusion queries. The
// result of a query is therefore either zero or one, which is enough to
// indicate whether any sample passed.
package webgl
