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

// Package prefs stores preference values and saves them to disk.
//
// Preference values are typed (Bool, Int, Float, String and Generic) and can
// have hooks that are called when the value changes. A value is added to a
// Disk with a key and the Disk saves and loads every value it knows about:
//
//	var iterations prefs.Int
//	dsk, _ := prefs.NewDisk(path)
//	dsk.Add("pipeline.iterations", &iterations)
//	dsk.Load(true)
//
// The preferences file is a text file with one "key :: value" entry per line.
// Values on the command line, given with the -prefs flag, take priority over
// values in the file. See PushCommandLineStack().
package prefs
