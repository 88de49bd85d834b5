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

package clock

import (
	"context"
)

// Clock is the source of the refresh signal.
type Clock interface {
	// C returns the channel that receives a value for every refresh
	C() <-chan bool

	// Stop the clock. The channel returned by C() will not be closed
	Stop()
}

// Run calls step once for every refresh of the clock. Run returns when step
// returns false or when the context is cancelled. The error from the context
// is returned in the latter case.
func Run(ctx context.Context, clk Clock, step func() bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.C():
			if !step() {
				return nil
			}
		}
	}
}
