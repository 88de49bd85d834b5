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

package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/paths"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/prefs"
)

// Adjuster is implemented by sources that accept changes to the capture
// preferences while running. The camera.Camera type is an Adjuster.
type Adjuster interface {
	Apply(p *capture.Preferences) error
}

// Amount by which the threshold, exposure and focus preferences change with
// every command.
const (
	ThresholdStep = 0.05
	ExposureStep  = 1.0
	FocusStep     = 5.0
)

// Sentinel errors returned by Command().
var (
	ErrNoAdjuster = errors.New("source cannot be adjusted")
	ErrNoResizer  = errors.New("source cannot be resized")
	ErrQuit       = errors.New("quit")
)

// Host is the per-refresh driver of a pipeline.
type Host struct {
	Pipeline *pipeline.Pipeline
	Source   capture.Source

	// adjuster is nil if the source is not adjustable
	adjuster Adjuster

	PipelinePrefs *pipeline.Preferences
	CapturePrefs  *capture.Preferences

	// a rebuild of the pipeline is required
	pending bool

	// canvas size to use for the next rebuild. zero values mean the canvas
	// size is unchanged
	canvasWidth  int
	canvasHeight int

	// source size to use for the next rebuild. zero values mean the source
	// size is unchanged
	sourceWidth  int
	sourceHeight int
}

// NewHost is the preferred method of initialisation for the Host type. If the
// source implements Adjuster the capture preferences are applied to it
// immediately.
func NewHost(p *pipeline.Pipeline, src capture.Source, pp *pipeline.Preferences, cp *capture.Preferences) (*Host, error) {
	h := &Host{
		Pipeline:      p,
		Source:        src,
		PipelinePrefs: pp,
		CapturePrefs:  cp,
	}

	if adj, ok := src.(Adjuster); ok {
		h.adjuster = adj
		if err := adj.Apply(cp); err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}
	}

	return h, nil
}

// Adjustable returns true if the source accepts changes to the capture
// preferences.
func (h *Host) Adjustable() bool {
	return h.adjuster != nil
}

// Resizable returns true if the size of the source frames can be changed.
func (h *Host) Resizable() bool {
	_, ok := h.Source.(capture.Resizer)
	return ok
}

// Pending returns true if a rebuild of the pipeline is waiting for the
// current processing cycle to end.
func (h *Host) Pending() bool {
	return h.pending
}

// Reconfigure requests that the pipeline be rebuilt with the current
// pipeline preferences.
func (h *Host) Reconfigure() {
	h.pending = true
}

// SetCanvas requests that the pipeline be rebuilt for a new canvas size. A
// rebuild is only requested if the size has changed.
func (h *Host) SetCanvas(width int, height int) {
	cw, ch := h.Pipeline.Config().CanvasSize()
	if h.canvasWidth == 0 && cw == width && ch == height {
		return
	}
	if h.canvasWidth == width && h.canvasHeight == height {
		return
	}
	h.canvasWidth = width
	h.canvasHeight = height
	h.pending = true
}

// SetResolution changes the size of the frames delivered by the source and
// requests that the pipeline be rebuilt for the new size. The capture
// preferences are updated to match. Returns ErrNoResizer if the source cannot
// be resized.
//
// Frames of the new size are not submitted to the pipeline until the rebuild
// has happened.
func (h *Host) SetResolution(width int, height int) error {
	rs, ok := h.Source.(capture.Resizer)
	if !ok {
		return fmt.Errorf("host: %w", ErrNoResizer)
	}

	cp := h.CapturePrefs
	ow, oh := cp.Size()

	restore := func() {
		_ = cp.Width.Set(ow)
		_ = cp.Height.Set(oh)
	}

	if err := cp.Width.Set(width); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if err := cp.Height.Set(height); err != nil {
		restore()
		return fmt.Errorf("host: %w", err)
	}

	cfg := h.Pipeline.Config()
	if h.sourceWidth == 0 && width == cfg.Width && height == cfg.Height {
		return nil
	}

	if err := rs.Resize(width, height); err != nil {
		restore()
		return fmt.Errorf("host: %w", err)
	}

	h.sourceWidth = width
	h.sourceHeight = height
	h.pending = true

	logger.Logf(logger.Allow, "host", "source resized to %dx%d", width, height)

	return nil
}

// Step is called once per display refresh. The in-progress processing cycle
// is continued and then, if the pipeline is idle, any pending rebuild is
// performed and the most recent frame from the source is submitted.
func (h *Host) Step() error {
	h.Pipeline.Tick()

	if h.pending && !h.Pipeline.Busy() {
		h.pending = false
		cfg := h.PipelinePrefs.Apply(h.Pipeline.Config())
		if h.canvasWidth > 0 && h.canvasHeight > 0 {
			cfg.CanvasWidth = h.canvasWidth
			cfg.CanvasHeight = h.canvasHeight
			h.canvasWidth = 0
			h.canvasHeight = 0
		}
		if h.sourceWidth > 0 && h.sourceHeight > 0 {
			cfg.Width = h.sourceWidth
			cfg.Height = h.sourceHeight
			h.sourceWidth = 0
			h.sourceHeight = 0
		}
		if err := h.Pipeline.Rebuild(cfg); err != nil {
			return fmt.Errorf("host: %w", err)
		}
		logger.Logf(logger.Allow, "host", "pipeline rebuilt: %dx%d, %d iterations, threshold %.2f, compare %v, debug %v",
			cfg.Width, cfg.Height, cfg.MaxIterations, cfg.Threshold, cfg.Compare, cfg.Debug)
	}

	// the source has already been resized. its frames must wait for the
	// rebuild, which is waiting for the current cycle to end
	if h.sourceWidth > 0 {
		return nil
	}

	h.Pipeline.ProcessAndDraw(h.Source.Frame())

	return nil
}

// ApplyCapturePrefs applies the capture preferences to the source. Returns
// ErrNoAdjuster if the source is not adjustable.
func (h *Host) ApplyCapturePrefs() error {
	if h.adjuster == nil {
		return ErrNoAdjuster
	}
	return h.adjuster.Apply(h.CapturePrefs)
}

func toggle(b *prefs.Bool) error {
	return b.Set(!b.Get().(bool))
}

// Command applies a console command. The returned string is a short
// description of the outcome suitable for display. Quit returns ErrQuit.
func (h *Host) Command(cmd console.Command) (string, error) {
	pp := h.PipelinePrefs
	cp := h.CapturePrefs

	var err error

	switch cmd {
	case console.NoCommand:
		return "", nil

	case console.Quit:
		return "", ErrQuit

	case console.Help:
		return console.HelpText(), nil

	case console.ShowStats:
		return h.StatsString(), nil

	case console.IterationsUp:
		err = pp.Iterations.Set(pp.Iterations.Get().(int) + 1)
	case console.IterationsDown:
		err = pp.Iterations.Set(pp.Iterations.Get().(int) - 1)
	case console.ThresholdUp:
		err = pp.Threshold.Set(pp.Threshold.Get().(float64) + ThresholdStep)
	case console.ThresholdDown:
		err = pp.Threshold.Set(pp.Threshold.Get().(float64) - ThresholdStep)
	case console.ToggleCompare:
		err = toggle(&pp.Compare)
	case console.ToggleDebug:
		err = toggle(&pp.Debug)

	case console.ExposureUp, console.ExposureDown, console.FocusUp, console.FocusDown, console.ToggleAutoFocus:
		if h.adjuster == nil {
			return "", fmt.Errorf("host: %s: %w", cmd, ErrNoAdjuster)
		}
		switch cmd {
		case console.ExposureUp:
			err = cp.Exposure.Set(cp.Exposure.Get().(float64) + ExposureStep)
		case console.ExposureDown:
			err = cp.Exposure.Set(cp.Exposure.Get().(float64) - ExposureStep)
		case console.FocusUp:
			err = cp.Focus.Set(cp.Focus.Get().(float64) + FocusStep)
		case console.FocusDown:
			err = cp.Focus.Set(cp.Focus.Get().(float64) - FocusStep)
		case console.ToggleAutoFocus:
			err = toggle(&cp.AutoFocus)
		}
		if err == nil {
			err = h.ApplyCapturePrefs()
		}
		if err != nil {
			return "", fmt.Errorf("host: %s: %w", cmd, err)
		}
		return fmt.Sprintf("exposure %s, focus %s, autofocus %s", &cp.Exposure, &cp.Focus, &cp.AutoFocus), nil

	case console.ResolutionUp, console.ResolutionDown:
		n := 1
		if cmd == console.ResolutionDown {
			n = -1
		}
		w, ht := cp.Size()
		sz := capture.StepSize(capture.Size{Width: w, Height: ht}, n)
		if err := h.SetResolution(sz.Width, sz.Height); err != nil {
			return "", err
		}
		return fmt.Sprintf("resolution %s", sz), nil

	case console.SaveReadback:
		files, err := h.SaveReadback()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %s", strings.Join(files, ", ")), nil

	case console.SavePreferences:
		if err := h.SavePreferences(); err != nil {
			return "", err
		}
		return "preferences saved", nil

	default:
		return "", fmt.Errorf("host: unhandled command: %s", cmd)
	}

	if err != nil {
		return "", fmt.Errorf("host: %s: %w", cmd, err)
	}

	h.Reconfigure()

	return fmt.Sprintf("iterations %s, threshold %s, compare %s, debug %s",
		&pp.Iterations, &pp.Threshold, &pp.Compare, &pp.Debug), nil
}

// StatsString returns the pipeline counters as a single line.
func (h *Host) StatsString() string {
	st := h.Pipeline.Stats()
	s := fmt.Sprintf("accepted %d, dropped %d, skipped %d, cycles %d, passes %d, failed %d",
		st.Accepted, st.Dropped, st.Skipped, st.Cycles, st.Passes, st.Failed)
	if h.Pipeline.Config().Compare {
		s = fmt.Sprintf("%s, changed %d", s, st.Changed)
	}
	return s
}

// SaveReadback writes the current mask to a PNG file and, if the pipeline is
// in debug mode, the block coordinates to a TIFF file. Returns the names of
// the files written.
func (h *Host) SaveReadback() ([]string, error) {
	rb, err := h.Pipeline.Readback()
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	var files []string

	mask := paths.UniqueFilename("mask", "readback") + ".png"
	if err := rb.SaveMask(mask); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	files = append(files, mask)

	if rb.Coords != nil {
		coords := paths.UniqueFilename("coords", "readback") + ".tiff"
		if err := rb.SaveCoords(coords); err != nil {
			return files, fmt.Errorf("host: %w", err)
		}
		files = append(files, coords)
	}

	for _, f := range files {
		logger.Logf(logger.Allow, "host", "saved %s", f)
	}

	return files, nil
}

// SavePreferences saves both the pipeline and capture preferences. The
// preferences share a file so saving either saves every value.
func (h *Host) SavePreferences() error {
	if err := h.PipelinePrefs.Save(); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if err := h.CapturePrefs.Save(); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	return nil
}
