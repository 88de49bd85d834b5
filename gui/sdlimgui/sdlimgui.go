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

	"github.com/Dodotree/zebra-sub000/gpu/gl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// SdlImgui is the desktop host window.
type SdlImgui struct {
	context *imgui.Context
	io      imgui.IO

	plt *platform
	rnd *glsl
	gpu *gl32.Context

	ctl *winControl
	log *winLog
}

// NewSdlImgui creates the window and the OpenGL context. The GPU() function
// returns the context that the pipeline should be created with.
func NewSdlImgui(title string, width int, height int) (*SdlImgui, error) {
	img := &SdlImgui{
		context: imgui.CreateContext(nil),
	}
	img.io = imgui.CurrentIO()

	// no imgui.ini file
	img.io.SetIniFilename("")

	var err error

	img.plt, err = newPlatform(img.io, title, width, height)
	if err != nil {
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	// the gl bindings are initialised by the gpu context
	img.gpu, err = gl32.NewContext()
	if err != nil {
		img.plt.destroy()
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	img.rnd, err = newGlsl()
	if err != nil {
		img.plt.destroy()
		img.context.Destroy()
		return nil, fmt.Errorf("sdlimgui: %w", err)
	}

	img.ctl = newWinControl()
	img.log = newWinLog()

	return img, nil
}

// GPU returns the context of the window.
func (img *SdlImgui) GPU() *gl32.Context {
	return img.gpu
}

// Destroy releases every resource held by the window. The pipeline should be
// destroyed before the window.
func (img *SdlImgui) Destroy() {
	img.rnd.destroy()
	img.plt.destroy()
	img.context.Destroy()
}
