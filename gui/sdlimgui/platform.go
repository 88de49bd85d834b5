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
	"runtime"
	"strings"

	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

type platform struct {
	io imgui.IO

	window    *sdl.Window
	glContext sdl.GLContext

	time        uint64
	buttonsDown [3]bool
}

// newPlatform is the preferred method of initialisation for the platform type.
func newPlatform(io imgui.IO, title string, width int, height int) (*platform, error) {
	// the SDL package calls LockOSThread() but we call it here too
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	plt := &platform{
		io:     io,
		window: window,
	}
	plt.setKeyMapping()

	plt.glContext, err = window.GLCreateContext()
	if err != nil {
		plt.destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = window.GLMakeCurrent(plt.glContext)
	if err != nil {
		plt.destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = sdl.GLSetSwapInterval(1)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "vsync unavailable: %v", err)
	}

	if mode, err := sdl.GetCurrentDisplayMode(0); err == nil {
		logger.Logf(logger.Allow, "sdl", "refresh rate: %dHz", mode.RefreshRate)
	}

	return plt, nil
}

// destroy cleans up the resources.
func (plt *platform) destroy() {
	if plt.glContext != nil {
		sdl.GLDeleteContext(plt.glContext)
		plt.glContext = nil
	}
	if plt.window != nil {
		_ = plt.window.Destroy()
		plt.window = nil
	}
	sdl.Quit()
}

// displaySize returns the dimension of the display.
func (plt *platform) displaySize() [2]float32 {
	w, h := plt.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// framebufferSize returns the dimension of the framebuffer.
func (plt *platform) framebufferSize() [2]float32 {
	w, h := plt.window.GLGetDrawableSize()
	return [2]float32{float32(w), float32(h)}
}

// newFrame marks the begin of a render pass. It forwards all current state to
// imgui.CurrentIO().
func (plt *platform) newFrame() {
	displaySize := plt.displaySize()
	plt.io.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	// SDL_GetTicks() has millisecond resolution which is not good enough
	frequency := sdl.GetPerformanceFrequency()
	currentTime := sdl.GetPerformanceCounter()
	if plt.time > 0 {
		plt.io.SetDeltaTime(float32(currentTime-plt.time) / float32(frequency))
	} else {
		plt.io.SetDeltaTime(1.0 / 60.0)
	}
	plt.time = currentTime

	// a button pressed and released between frames is passed as held for
	// this frame so the click is not missed
	x, y, state := sdl.GetMouseState()
	plt.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i, button := range []uint32{sdl.BUTTON_LEFT, sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE} {
		plt.io.SetMouseButtonDown(i, plt.buttonsDown[i] || (state&sdl.Button(button)) != 0)
		plt.buttonsDown[i] = false
	}
}

// postRender performs a buffer swap. With a swap interval of one the swap
// blocks until the vertical retrace.
func (plt *platform) postRender() {
	plt.window.GLSwap()
}

func (plt *platform) setKeyMapping() {
	keys := map[int]int{
		imgui.KeyTab:        sdl.SCANCODE_TAB,
		imgui.KeyLeftArrow:  sdl.SCANCODE_LEFT,
		imgui.KeyRightArrow: sdl.SCANCODE_RIGHT,
		imgui.KeyUpArrow:    sdl.SCANCODE_UP,
		imgui.KeyDownArrow:  sdl.SCANCODE_DOWN,
		imgui.KeyPageUp:     sdl.SCANCODE_PAGEUP,
		imgui.KeyPageDown:   sdl.SCANCODE_PAGEDOWN,
		imgui.KeyHome:       sdl.SCANCODE_HOME,
		imgui.KeyEnd:        sdl.SCANCODE_END,
		imgui.KeyInsert:     sdl.SCANCODE_INSERT,
		imgui.KeyDelete:     sdl.SCANCODE_DELETE,
		imgui.KeyBackspace:  sdl.SCANCODE_BACKSPACE,
		imgui.KeySpace:      sdl.SCANCODE_SPACE,
		imgui.KeyEnter:      sdl.SCANCODE_RETURN,
		imgui.KeyEscape:     sdl.SCANCODE_ESCAPE,
		imgui.KeyA:          sdl.SCANCODE_A,
		imgui.KeyC:          sdl.SCANCODE_C,
		imgui.KeyV:          sdl.SCANCODE_V,
		imgui.KeyX:          sdl.SCANCODE_X,
		imgui.KeyY:          sdl.SCANCODE_Y,
		imgui.KeyZ:          sdl.SCANCODE_Z,
	}

	// imgui uses these indices to peek into the io.KeysDown[] array
	for imguiKey, nativeKey := range keys {
		plt.io.KeyMap(imguiKey, nativeKey)
	}
}

// event describes the outcome of processing the SDL event queue.
type event struct {
	quit bool

	// characters typed while imgui did not want keyboard input
	keys []byte
}

// processEvents handles all pending window events.
func (plt *platform) processEvents() event {
	var ev event

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			ev.quit = true

		case *sdl.MouseWheelEvent:
			var deltaX, deltaY float32
			if e.X > 0 {
				deltaX++
			} else if e.X < 0 {
				deltaX--
			}
			if e.Y > 0 {
				deltaY++
			} else if e.Y < 0 {
				deltaY--
			}
			plt.io.AddMouseWheelDelta(deltaX, deltaY)

		case *sdl.MouseButtonEvent:
			if e.Type != sdl.MOUSEBUTTONDOWN {
				break
			}
			switch e.Button {
			case sdl.BUTTON_LEFT:
				plt.buttonsDown[0] = true
			case sdl.BUTTON_RIGHT:
				plt.buttonsDown[1] = true
			case sdl.BUTTON_MIDDLE:
				plt.buttonsDown[2] = true
			}

		case *sdl.TextInputEvent:
			text := strings.TrimRight(string(e.Text[:]), "\x00")
			if plt.io.WantTextInput() {
				plt.io.AddInputCharacters(text)
			} else if len(text) == 1 {
				ev.keys = append(ev.keys, text[0])
			}

		case *sdl.KeyboardEvent:
			switch e.Type {
			case sdl.KEYDOWN:
				plt.io.KeyPress(int(e.Keysym.Scancode))
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE && !plt.io.WantCaptureKeyboard() {
					ev.keys = append(ev.keys, 0x1b)
				}
			case sdl.KEYUP:
				plt.io.KeyRelease(int(e.Keysym.Scancode))
			}
			plt.updateKeyModifier()
		}
	}

	return ev
}

func (plt *platform) updateKeyModifier() {
	modState := sdl.GetModState()
	mapModifier := func(lMask sdl.Keymod, lKey int, rMask sdl.Keymod, rKey int) (lResult int, rResult int) {
		if (modState & lMask) != 0 {
			lResult = lKey
		}
		if (modState & rMask) != 0 {
			rResult = rKey
		}
		return
	}
	plt.io.KeyShift(mapModifier(sdl.KMOD_LSHIFT, sdl.SCANCODE_LSHIFT, sdl.KMOD_RSHIFT, sdl.SCANCODE_RSHIFT))
	plt.io.KeyCtrl(mapModifier(sdl.KMOD_LCTRL, sdl.SCANCODE_LCTRL, sdl.KMOD_RCTRL, sdl.SCANCODE_RCTRL))
	plt.io.KeyAlt(mapModifier(sdl.KMOD_LALT, sdl.SCANCODE_LALT, sdl.KMOD_RALT, sdl.SCANCODE_RALT))
}
