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
	"errors"

	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/host"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/inkyblackness/imgui-go/v4"
)

// Service runs the host until the window is closed or the quit command is
// issued. Each iteration of the loop is one display refresh.
func (img *SdlImgui) Service(h *host.Host) error {
	for {
		ev := img.plt.processEvents()
		if ev.quit {
			return nil
		}

		for _, k := range ev.keys {
			cmd, ok := console.Lookup(k)
			if !ok {
				continue
			}
			s, err := h.Command(cmd)
			if errors.Is(err, host.ErrQuit) {
				return nil
			}
			img.ctl.setStatus(s, err)
		}

		fb := img.plt.framebufferSize()
		h.SetCanvas(int(fb[0]), int(fb[1]))

		img.rnd.preRender()

		if err := h.Step(); err != nil {
			logger.Log(logger.Allow, "sdlimgui", err)
		}

		// the window does not preserve the canvas between swaps
		h.Pipeline.Present()

		img.plt.newFrame()
		imgui.NewFrame()
		img.ctl.draw(h)
		img.log.draw()
		imgui.Render()

		img.rnd.render(img.plt.displaySize(), fb)
		img.plt.postRender()
	}
}
