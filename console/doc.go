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

// Package console provides keyboard control of a running pipeline from the
// terminal. The terminal is put into cbreak mode so that single key presses
// are received without waiting for the return key.
//
// Key presses are translated into Command values and delivered on the
// channel returned by Commands(). The commands are applied by the host loop,
// which owns the pipeline. The console never touches the pipeline directly.
//
// The ansi sub-package contains the terminal control codes used by the
// console and by the logger's Colorizer.
package console
