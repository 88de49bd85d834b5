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

package host_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/host"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/test"
)

// adjustable wraps a pattern and counts the number of times the capture
// preferences are applied
type adjustable struct {
	*capture.Pattern
	applied  int
	exposure float64
}

func (a *adjustable) Apply(p *capture.Preferences) error {
	a.applied++
	a.exposure = p.Exposure.Get().(float64)
	return nil
}

// fixed is a source that cannot be resized
type fixed struct {
	capture.Source
}

func setup(t *testing.T, src capture.Source) (*host.Host, *recorder.Recorder) {
	t.Helper()

	pth := filepath.Join(t.TempDir(), "preferences")

	pp, err := pipeline.NewPreferencesFile(pth)
	test.DemandSuccess(t, err)
	cp, err := capture.NewPreferencesFile(pth)
	test.DemandSuccess(t, err)

	rec := recorder.NewRecorder()
	p, err := pipeline.New(rec, nil, pp.Apply(pipeline.DefaultConfig(64, 32)))
	test.DemandSuccess(t, err)
	t.Cleanup(p.Destroy)

	h, err := host.NewHost(p, src, pp, cp)
	test.DemandSuccess(t, err)

	return h, rec
}

func pattern(t *testing.T) *capture.Pattern {
	t.Helper()
	pat, err := capture.NewPattern(64, 32, 32, 0)
	test.DemandSuccess(t, err)
	return pat
}

func TestStep(t *testing.T) {
	h, _ := setup(t, pattern(t))

	for i := 0; i < 5; i++ {
		test.ExpectSuccess(t, h.Step())
	}

	st := h.Pipeline.Stats()
	test.ExpectEquality(t, st.Accepted, 5)
	test.ExpectEquality(t, st.Cycles, 5)
	test.ExpectEquality(t, st.Dropped, 0)
}

func TestDeferredRebuild(t *testing.T) {
	h, _ := setup(t, pattern(t))

	_, err := h.Command(console.IterationsUp)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.Pending(), true)

	// the pipeline is idle so the rebuild happens on the first step
	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pending(), false)
	test.ExpectEquality(t, h.Pipeline.Config().MaxIterations, 2)

	// a cycle of two iterations is now in progress
	test.ExpectEquality(t, h.Pipeline.Busy(), true)

	_, err = h.Command(console.IterationsUp)
	test.DemandSuccess(t, err)

	// the tick completes the cycle so the rebuild can go ahead
	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pending(), false)
	test.ExpectEquality(t, h.Pipeline.Config().MaxIterations, 3)
}

func TestInvalidCommand(t *testing.T) {
	h, _ := setup(t, pattern(t))

	// iterations cannot be less than one
	_, err := h.Command(console.IterationsDown)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, h.Pending(), false)

	// threshold cannot be more than one
	test.DemandSuccess(t, h.PipelinePrefs.Threshold.Set(1.0))
	_, err = h.Command(console.ThresholdUp)
	test.ExpectFailure(t, err)
}

func TestToggles(t *testing.T) {
	h, _ := setup(t, pattern(t))

	s, err := h.Command(console.ToggleCompare)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s, "compare true"))

	s, err = h.Command(console.ToggleDebug)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s, "debug true"))

	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pipeline.Config().Compare, true)
	test.ExpectEquality(t, h.Pipeline.Config().Debug, true)
	test.ExpectSuccess(t, strings.Contains(h.StatsString(), "changed"))
}

func TestAdjuster(t *testing.T) {
	// the pattern is not adjustable
	h, _ := setup(t, pattern(t))
	test.ExpectEquality(t, h.Adjustable(), false)
	_, err := h.Command(console.ExposureUp)
	test.ExpectSuccess(t, errors.Is(err, host.ErrNoAdjuster))

	adj := &adjustable{Pattern: pattern(t)}
	h, _ = setup(t, adj)
	test.ExpectEquality(t, h.Adjustable(), true)

	// preferences are applied when the host is created
	test.ExpectEquality(t, adj.applied, 1)

	_, err = h.Command(console.ExposureUp)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, adj.applied, 2)
	test.ExpectEquality(t, adj.exposure, host.ExposureStep)

	// camera commands do not require a rebuild of the pipeline
	test.ExpectEquality(t, h.Pending(), false)
}

func TestQuit(t *testing.T) {
	h, _ := setup(t, pattern(t))
	_, err := h.Command(console.Quit)
	test.ExpectSuccess(t, errors.Is(err, host.ErrQuit))

	s, err := h.Command(console.Help)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, console.HelpText())
}

func TestSaveReadback(t *testing.T) {
	h, _ := setup(t, pattern(t))

	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	test.ExpectSuccess(t, h.Step())

	files, err := h.SaveReadback()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(files), 1)
	test.ExpectSuccess(t, strings.HasSuffix(files[0], ".png"))

	_, err = os.Stat(files[0])
	test.ExpectSuccess(t, err)
}

func TestSetCanvas(t *testing.T) {
	h, _ := setup(t, pattern(t))

	// same size as the source frame, which is the default canvas size
	h.SetCanvas(64, 32)
	test.ExpectEquality(t, h.Pending(), false)

	h.SetCanvas(800, 600)
	test.ExpectEquality(t, h.Pending(), true)
	test.ExpectSuccess(t, h.Step())

	w, ht := h.Pipeline.Config().CanvasSize()
	test.ExpectEquality(t, w, 800)
	test.ExpectEquality(t, ht, 600)

	h.SetCanvas(800, 600)
	test.ExpectEquality(t, h.Pending(), false)
}

func TestSetResolution(t *testing.T) {
	h, _ := setup(t, pattern(t))
	test.ExpectEquality(t, h.Resizable(), true)

	// invalid sizes leave the preferences and the pipeline untouched
	test.ExpectFailure(t, h.SetResolution(0, 240))
	w, ht := h.CapturePrefs.Size()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, ht, 480)
	test.ExpectEquality(t, h.Pending(), false)

	test.DemandSuccess(t, h.SetResolution(320, 240))
	test.ExpectEquality(t, h.Pending(), true)
	w, ht = h.CapturePrefs.Size()
	test.ExpectEquality(t, w, 320)
	test.ExpectEquality(t, ht, 240)

	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pending(), false)
	cfg := h.Pipeline.Config()
	test.ExpectEquality(t, cfg.Width, 320)
	test.ExpectEquality(t, cfg.Height, 240)
	test.ExpectEquality(t, cfg.MaxIterations, 1)

	// the first frame at the new size is processed
	st := h.Pipeline.Stats()
	test.ExpectEquality(t, st.Accepted, 1)
	test.ExpectEquality(t, st.Skipped, 0)
	test.ExpectEquality(t, st.Cycles, 1)

	// same size again
	test.DemandSuccess(t, h.SetResolution(320, 240))
	test.ExpectEquality(t, h.Pending(), false)
}

func TestSetResolutionDuringCycle(t *testing.T) {
	h, _ := setup(t, pattern(t))

	test.DemandSuccess(t, h.PipelinePrefs.Iterations.Set(3))
	h.Reconfigure()
	test.ExpectSuccess(t, h.Step())
	test.DemandEquality(t, h.Pipeline.Busy(), true)

	test.DemandSuccess(t, h.SetResolution(320, 240))

	// the cycle at the old size continues and frames of the new size are
	// held back rather than dropped
	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pending(), true)
	test.ExpectEquality(t, h.Pipeline.Config().Width, 64)
	test.ExpectEquality(t, h.Pipeline.Stats().Dropped, 0)

	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pending(), false)
	test.ExpectEquality(t, h.Pipeline.Config().Width, 320)
	test.ExpectEquality(t, h.Pipeline.Config().MaxIterations, 3)

	st := h.Pipeline.Stats()
	test.ExpectEquality(t, st.Accepted, 2)
	test.ExpectEquality(t, st.Cycles, 1)
	test.ExpectEquality(t, st.Dropped, 0)
	test.ExpectEquality(t, st.Skipped, 0)
}

func TestResolutionCommand(t *testing.T) {
	h, _ := setup(t, pattern(t))

	// the capture preferences start at 640x480
	s, err := h.Command(console.ResolutionDown)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, "resolution 640x360")
	test.ExpectSuccess(t, h.Step())
	test.ExpectEquality(t, h.Pipeline.Config().Width, 640)
	test.ExpectEquality(t, h.Pipeline.Config().Height, 360)

	s, err = h.Command(console.ResolutionUp)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s, "resolution 640x480")

	h, _ = setup(t, fixed{Source: pattern(t)})
	test.ExpectEquality(t, h.Resizable(), false)
	_, err = h.Command(console.ResolutionUp)
	test.ExpectSuccess(t, errors.Is(err, host.ErrNoResizer))
	w, ht := h.CapturePrefs.Size()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, ht, 480)
	test.ExpectEquality(t, h.Pending(), false)
}
