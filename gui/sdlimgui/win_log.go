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
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/inkyblackness/imgui-go/v4"
)

const winLogTitle = "Log"

type winLog struct {
	open bool

	// the number of entries seen in the previous frame. the window scrolls
	// to the end when the number changes
	entries int
	lines   []string
}

func newWinLog() *winLog {
	return &winLog{open: true}
}

func (win *winLog) draw() {
	if !win.open {
		return
	}

	logger.BorrowLog(func(log []logger.Entry) {
		if len(log) == win.entries && len(win.lines) > 0 {
			return
		}
		win.lines = win.lines[:0]
		for i := range log {
			win.lines = append(win.lines, log[i].String())
		}
	})

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 380}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 500, Y: 200}, imgui.ConditionFirstUseEver)
	imgui.BeginV(winLogTitle, &win.open, 0)
	defer imgui.End()

	var clipper imgui.ListClipper
	clipper.Begin(len(win.lines))
	for clipper.Step() {
		for i := clipper.DisplayStart; i < clipper.DisplayEnd; i++ {
			imgui.Text(win.lines[i])
		}
	}

	if len(win.lines) != win.entries {
		imgui.SetScrollHereY(1.0)
		win.entries = len(win.lines)
	}
}
