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

// Package clock provides the display refresh signal that drives a pipeline.
//
// A Ticker triggers at a fixed rate and is used when there is no vertical
// sync available from the display. A Manual clock triggers only when asked to
// and is useful for tests and for single stepping.
//
// Run() calls a step function once per trigger until the step function
// returns false or the context is cancelled. For example (error handling
// removed for clarity):
//
//	tck, _ := clock.NewTicker(60)
//	defer tck.Stop()
//
//	clock.Run(ctx, tck, func() bool {
//		p.Tick()
//		p.ProcessAndDraw(src.Frame())
//		return true
//	})
package clock
