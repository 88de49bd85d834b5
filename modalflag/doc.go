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

// Package modalflag wraps the flag package of the standard library and adds
// program modes. Each mode has its own set of flags and can have sub-modes of
// its own.
//
// Arguments are given to NewArgs() and then consumed, one mode at a time, by
// successive calls to Parse(). Flags for the current mode are added before
// each call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TRACE", "VERSION")
//	prefs := md.AddString("prefs", "", "preference overrides")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		iterations := md.AddInt("iterations", 1, "dilation passes per cycle")
//		md.Parse()
//		...
//	}
//
// The first sub-mode is the default and is selected if the first argument
// after the flags is not a sub-mode. Sub-mode names are case insensitive.
//
// Help is printed to the Output writer when the -help flag is found. The help
// text lists the flags and the sub-modes of the current mode.
package modalflag
