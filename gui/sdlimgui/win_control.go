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

package sdlimgui

import (
	"fmt"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/host"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/inkyblackness/imgui-go/v4"
)

const winControlTitle = "Control"

type winControl struct {
	open bool

	// outcome of the most recent action. shown at the bottom of the window
	status string
}

func newWinControl() *winControl {
	return &winControl{open: true}
}

func (win *winControl) setStatus(s string, err error) {
	if err != nil {
		win.status = err.Error()
		logger.Log(logger.Allow, "sdlimgui", err)
		return
	}
	win.status = s
}

func (win *winControl) draw(h *host.Host) {
	if !win.open {
		return
	}

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV(winControlTitle, &win.open, imgui.WindowFlagsAlwaysAutoResize)
	defer imgui.End()

	win.drawPipeline(h)
	imgui.Separator()
	win.drawCapture(h)
	imgui.Separator()
	win.drawStats(h)
	imgui.Separator()

	if imgui.Button("Save Readback") {
		files, err := h.SaveReadback()
		win.setStatus(fmt.Sprintf("saved %d files", len(files)), err)
	}
	imgui.SameLine()
	if imgui.Button("Save Preferences") {
		win.setStatus("preferences saved", h.SavePreferences())
	}

	if win.status != "" {
		imgui.Text(win.status)
	}
}

func (win *winControl) drawPipeline(h *host.Host) {
	pp := h.PipelinePrefs

	iterations := int32(pp.Iterations.Get().(int))
	if imgui.SliderInt("Iterations", &iterations, 1, 16) {
		if err := pp.Iterations.Set(int(iterations)); err != nil {
			win.setStatus("", err)
		} else {
			h.Reconfigure()
		}
	}

	threshold := float32(pp.Threshold.Get().(float64))
	if imgui.SliderFloat("Threshold", &threshold, 0.0, 1.0) {
		if err := pp.Threshold.Set(threshold); err != nil {
			win.setStatus("", err)
		} else {
			h.Reconfigure()
		}
	}

	compare := pp.Compare.Get().(bool)
	if imgui.Checkbox("Compare", &compare) {
		_ = pp.Compare.Set(compare)
		h.Reconfigure()
	}
	imgui.SameLine()
	debug := pp.Debug.Get().(bool)
	if imgui.Checkbox("Debug", &debug) {
		_ = pp.Debug.Set(debug)
		h.Reconfigure()
	}

	if h.Pending() {
		imgui.Text("rebuild pending")
	}
}

func (win *winControl) drawCapture(h *host.Host) {
	cp := h.CapturePrefs

	w, ht := cp.Size()
	current := capture.Size{Width: w, Height: ht}

	if !h.Resizable() {
		imgui.Text(fmt.Sprintf("Source: %s %d bit", current, cp.Depth.Get().(int)))
	} else {
		if imgui.BeginCombo("Resolution", current.String()) {
			for _, sz := range capture.CommonSizes {
				if imgui.SelectableV(sz.String(), sz == current, 0, imgui.Vec2{}) {
					if err := h.SetResolution(sz.Width, sz.Height); err != nil {
						win.setStatus("", err)
					} else {
						win.setStatus(fmt.Sprintf("resolution %s", sz), nil)
					}
				}
			}
			imgui.EndCombo()
		}
		imgui.Text(fmt.Sprintf("Depth: %d bit", cp.Depth.Get().(int)))
	}

	if !h.Adjustable() {
		return
	}

	changed := false

	exposure := float32(cp.Exposure.Get().(float64))
	if imgui.SliderFloat("Exposure", &exposure, -13.0, 13.0) {
		_ = cp.Exposure.Set(exposure)
		changed = true
	}

	autofocus := cp.AutoFocus.Get().(bool)
	if imgui.Checkbox("Autofocus", &autofocus) {
		_ = cp.AutoFocus.Set(autofocus)
		changed = true
	}

	if !autofocus {
		focus := float32(cp.Focus.Get().(float64))
		if imgui.SliderFloat("Focus", &focus, 0.0, 255.0) {
			_ = cp.Focus.Set(focus)
			changed = true
		}
	}

	if changed {
		if err := h.ApplyCapturePrefs(); err != nil {
			win.setStatus("", err)
		}
	}
}

func (win *winControl) drawStats(h *host.Host) {
	st := h.Pipeline.Stats()
	imgui.Text(fmt.Sprintf("State: %s", h.Pipeline.State()))
	imgui.Text(fmt.Sprintf("Accepted: %d  Dropped: %d  Skipped: %d", st.Accepted, st.Dropped, st.Skipped))
	imgui.Text(fmt.Sprintf("Cycles: %d  Passes: %d  Failed: %d", st.Cycles, st.Passes, st.Failed))
	if h.Pipeline.Config().Compare {
		imgui.Text(fmt.Sprintf("Changed: %d (%v)", st.Changed, h.Pipeline.Changed()))
	}
	imgui.Text(fmt.Sprintf("%.1f fps", imgui.CurrentIO().Framerate()))
}
