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

// Package pipeline implements the multi-pass GPU processing of video frames.
//
// A frame accepted by ProcessAndDraw() is uploaded to the source texture and
// then processed by a sequence of render-to-texture passes:
//
//	packing     source frame to packed mask. each texel of the mask holds a
//	            block of 8x4 binary pixels
//	dilation    3x3 binary dilation of the packed mask. repeated for the
//	            configured number of iterations
//	comparison  optional. the mask is compared with the mask of the previous
//	            frame inside an occlusion query
//	unpacking   packed mask to full resolution image
//	copy        full resolution image to the canvas
//
// The sequence of passes is a state machine. A dilation iteration after the
// first, and the wait for the result of the occlusion query, happen on later
// calls to Tick(). The host should call Tick() once per display refresh.
//
// All GPU resources are created by New() and are released by Destroy(). A
// failure to create any resource is fatal and New() will release everything
// that has been created up to that point. Failures after construction are
// logged and otherwise ignored.
//
// The package must be used from a single goroutine. With the assertions build
// tag the entry points will panic if called from the wrong goroutine.
package pipeline
