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
	"fmt"
	"sync/atomic"
	"time"
)

// Ticker will trigger a fixed number of times per second.
type Ticker struct {
	rate   atomic.Int64
	period atomic.Int64

	tick chan bool
	quit chan bool
}

// NewTicker is the preferred method of initialisation for Ticker type.
func NewTicker(rate int) (*Ticker, error) {
	tck := &Ticker{
		tick: make(chan bool),
		quit: make(chan bool),
	}

	if err := tck.SetRate(rate); err != nil {
		return nil, err
	}

	// run ticker concurrently
	go func() {
		period := time.Duration(tck.period.Load())
		adjusted := period
		t := time.Now()

		for {
			select {
			case tck.tick <- true:
			case <-tck.quit:
				return
			}

			time.Sleep(adjusted)

			// correct the next sleep by how much the previous sleep
			// overshot. the period may have changed since the previous tick
			nt := time.Now()
			period = time.Duration(tck.period.Load())
			adjusted -= nt.Sub(t) - period
			if adjusted < 0 || adjusted > period*2 {
				adjusted = period
			}
			t = nt
		}
	}()

	return tck, nil
}

// SetRate changes the number of times per second that the Ticker triggers.
func (tck *Ticker) SetRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("clock: rate must be positive (%d)", rate)
	}
	tck.rate.Store(int64(rate))
	tck.period.Store(int64(time.Second / time.Duration(rate)))
	return nil
}

// Rate returns the number of times per second that the Ticker triggers.
func (tck *Ticker) Rate() int {
	return int(tck.rate.Load())
}

// C implements the Clock interface.
func (tck *Ticker) C() <-chan bool {
	return tck.tick
}

// Wait will block until the next trigger.
func (tck *Ticker) Wait() {
	<-tck.tick
}

// HasWaited will return true if the trigger has already happened and false if
// it is still yet to happen. The function does not block.
func (tck *Ticker) HasWaited() bool {
	select {
	case <-tck.tick:
		return true
	default:
		return false
	}
}

// Stop implements the Clock interface. Calling Stop more than once will
// panic.
func (tck *Ticker) Stop() {
	close(tck.quit)
}
