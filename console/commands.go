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

package console

import (
	"fmt"
	"sort"
	"strings"
)

// Command is an instruction from the user.
type Command int

// List of valid Command values.
const (
	NoCommand Command = iota
	IterationsUp
	IterationsDown
	ThresholdUp
	ThresholdDown
	ToggleCompare
	ToggleDebug
	ExposureUp
	ExposureDown
	FocusUp
	FocusDown
	ToggleAutoFocus
	ResolutionUp
	ResolutionDown
	SaveReadback
	SavePreferences
	ShowStats
	Help
	Quit
)

func (c Command) String() string {
	switch c {
	case NoCommand:
		return "none"
	case IterationsUp:
		return "more iterations"
	case IterationsDown:
		return "fewer iterations"
	case ThresholdUp:
		return "raise threshold"
	case ThresholdDown:
		return "lower threshold"
	case ToggleCompare:
		return "toggle compare"
	case ToggleDebug:
		return "toggle debug"
	case ExposureUp:
		return "raise exposure"
	case ExposureDown:
		return "lower exposure"
	case FocusUp:
		return "focus further"
	case FocusDown:
		return "focus nearer"
	case ToggleAutoFocus:
		return "toggle autofocus"
	case ResolutionUp:
		return "higher resolution"
	case ResolutionDown:
		return "lower resolution"
	case SaveReadback:
		return "save readback"
	case SavePreferences:
		return "save preferences"
	case ShowStats:
		return "show stats"
	case Help:
		return "help"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("unknown command (%d)", int(c))
}

// keymap for the console. keys are case sensitive
var keymap = map[byte]Command{
	'+':  IterationsUp,
	'=':  IterationsUp,
	'-':  IterationsDown,
	']':  ThresholdUp,
	'[':  ThresholdDown,
	'c':  ToggleCompare,
	'd':  ToggleDebug,
	'E':  ExposureUp,
	'e':  ExposureDown,
	'F':  FocusUp,
	'f':  FocusDown,
	'a':  ToggleAutoFocus,
	'>':  ResolutionUp,
	'.':  ResolutionUp,
	'<':  ResolutionDown,
	',':  ResolutionDown,
	'r':  SaveReadback,
	'p':  SavePreferences,
	's':  ShowStats,
	'?':  Help,
	'h':  Help,
	'q':  Quit,
	0x03: Quit, // ctrl-c
	0x1b: Quit, // escape
}

// Lookup returns the command for a key. The boolean is false if the key has
// no command.
func Lookup(key byte) (Command, bool) {
	c, ok := keymap[key]
	return c, ok
}

// HelpText returns a description of every printable key and its command.
func HelpText() string {
	keys := make([]int, 0, len(keymap))
	for k := range keymap {
		if k >= 0x20 && k < 0x7f {
			keys = append(keys, int(k))
		}
	}
	sort.Ints(keys)

	var s strings.Builder
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("  %c  %s\n", k, keymap[byte(k)]))
	}
	return s.String()
}
