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

// Package ansi defines the small set of ANSI control codes used when
// writing to a terminal.
package ansi

import "fmt"

// ansi color.
const (
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
)

// ansi target.
const (
	targetPen       = 3
	targetBrightPen = 9
)

// Pens is the table of colors to be used for text.
var Pens map[string]string

// DimPens is the table of pastel colors to be used for text.
var DimPens map[string]string

// NormalPen is the CSI sequence for regular text.
const NormalPen = "\033[0m"

// ClearLine is the CSI sequence that clears the current line and returns the
// cursor to the first column.
const ClearLine = "\033[2K\r"

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)

	for name, col := range map[string]int{
		"red":     colRed,
		"green":   colGreen,
		"yellow":  colYellow,
		"blue":    colBlue,
		"magenta": colMagenta,
		"cyan":    colCyan,
		"white":   colWhite,
	} {
		Pens[name] = fmt.Sprintf("\033[%d%dm", targetBrightPen, col)
		DimPens[name] = fmt.Sprintf("\033[%d%dm", targetPen, col)
	}
}
