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

package logger

import (
	"io"
	"strings"

	"github.com/Dodotree/zebra-sub000/console/ansi"
)

// Colorizer applies basic coloring rules to logging output. Lines that look
// like errors are written in red and lines that look like warnings in yellow.
// Everything else is written unaltered.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimRight(string(p), "\n"), "\n")

	for _, s := range l {
		pen := ""
		ls := strings.ToLower(s)
		if strings.Contains(ls, "error") || strings.Contains(ls, "fail") {
			pen = ansi.DimPens["red"]
		} else if strings.Contains(ls, "warning") {
			pen = ansi.DimPens["yellow"]
		}

		if pen != "" {
			s = pen + s + ansi.NormalPen
		}

		_, err := c.out.Write([]byte(s + "\n"))
		if err != nil {
			return 0, err
		}
	}

	// the number of bytes written to the underlying writer will not agree
	// with the length of p because of the colour codes
	return len(p), nil
}
