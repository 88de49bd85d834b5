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

// Package sdlimgui is the desktop host. It opens an SDL window with an
// OpenGL 3.2 core context, draws the pipeline canvas to the window and
// overlays a Dear ImGui control panel.
//
// The swap interval of the window is set to one so that buffer swaps are
// synchronised with the vertical retrace of the display. The vertical retrace
// is therefore the clock of the host, and Host.Step() is called once per
// retrace.
//
// All functions must be called from the main thread. NewSdlImgui() locks the
// calling goroutine to its OS thread.
package sdlimgui
