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

// Package statsview is an optional package that is only functional when the
// statsview build tag is present. Without the build tag Available() returns
// false and Launch() returns an error.
//
// When built, it provides a HTTP server running locally offering runtime
// statistics, using the github.com/go-echarts/statsview module. Graphical
// statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12600/debug/pprof/
//
// Runtime statistics are useful when tuning the number of dilation passes or
// the capture resolution, where allocation by the capture goroutine and the
// GUI is the main cost outside of the GPU.
package statsview
