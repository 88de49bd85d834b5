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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/pipeline"
)

// sentinal error returned by the runner when the measurement period is over.
var timedOut = errors.New("performance timed out")

// the period before measurement starts. gives the pipeline time to settle
const leadtime = time.Second

// CalcRate takes the number of cycles and the duration (in seconds) and
// returns the cycles-per-second.
func CalcRate(numCycles int, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(numCycles) / duration
}

// Check the performance of the pipeline using frames from the supplied
// source. The pipeline is driven as quickly as possible, with no clock, for
// the specified duration.
func Check(output io.Writer, profile Profile, p *pipeline.Pipeline, src capture.Source, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	var start, end pipeline.Stats

	runner := func() error {
		// false is sent when the leadtime has expired. true is sent when the
		// measurement period has expired
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		for {
			select {
			case v := <-timerChan:
				if v {
					end = p.Stats()
					return timedOut
				}
				start = p.Stats()
			default:
			}

			p.Tick()
			p.ProcessAndDraw(src.Frame())
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	cycles := end.Cycles - start.Cycles
	rate := CalcRate(cycles, dur.Seconds())
	fmt.Fprintf(output, "%.2f cycles/sec (%d cycles in %.2f seconds) %d passes %d dropped %d skipped\n",
		rate, cycles, dur.Seconds(), end.Passes-start.Passes, end.Dropped-start.Dropped, end.Skipped-start.Skipped)

	return nil
}
