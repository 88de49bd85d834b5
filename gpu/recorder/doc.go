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

// Package recorder implements gpu.Context without a GPU. It keeps a model of
// every resource that is created and records the state that is bound at the
// moment of every draw call. The list of draws can be inspected with the
// Draws() function.
//
// The model is strict enough to be useful for testing:
//
//   - shader source is checked for a main() function and declared inputs,
//     outputs and uniforms are extracted. a declared name that is not used
//     anywhere else in the source is treated as inactive, in the same way a
//     real compiler will optimise it out
//   - linking fails if a fragment input is not written by the vertex stage
//   - framebuffer completeness follows the rules of the strictest drivers. a
//     texture attachment whose minification filter is still the mipmap
//     dependent default is an incomplete attachment
//   - occlusion query results only become available after a configurable
//     number of polls
//
// Pixel processing is not modelled. ReadPixels() returns the data most
// recently uploaded to the attached texture.
package recorder
