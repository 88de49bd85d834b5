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

package performance_test

import (
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/performance"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfile("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectFailure(t, err)
}

func TestCalcRate(t *testing.T) {
	test.ExpectApproximate(t, performance.CalcRate(120, 2.0), 60.0, 0.001)
	test.ExpectEquality(t, performance.CalcRate(120, 0), 0.0)
}

// resets the draw list of the recorder with every frame so that it doesn't
// grow without limit
type resettingSource struct {
	capture.Source
	rec *recorder.Recorder
}

func (src resettingSource) Frame() capture.Frame {
	src.rec.ResetDraws()
	return src.Source.Frame()
}

func TestCheck(t *testing.T) {
	rec := recorder.NewRecorder()
	p, err := pipeline.New(rec, nil, pipeline.DefaultConfig(32, 32))
	test.DemandSuccess(t, err)
	defer p.Destroy()

	pat, err := capture.NewPattern(32, 32, 32, 0)
	test.DemandSuccess(t, err)
	defer pat.Close()
	src := resettingSource{Source: pat, rec: rec}

	var out strings.Builder
	err = performance.Check(&out, performance.ProfileNone, p, src, "100ms")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out.String(), "cycles/sec"))

	err = performance.Check(&out, performance.ProfileNone, p, src, "soon")
	test.ExpectFailure(t, err)
}
