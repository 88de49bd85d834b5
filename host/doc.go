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

// Package host drives a pipeline from a frame source once per display
// refresh and applies user commands to the pipeline and capture preferences.
//
// Changes to the pipeline preferences cannot be applied while a processing
// cycle is in progress. The Host remembers that a rebuild is required and
// performs it at the first refresh where the pipeline is idle.
//
// The Host is used by every front end: the terminal console, the SDL window
// and the browser.
package host
