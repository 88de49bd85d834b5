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
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Dodotree/zebra-sub000/console/ansi"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/pkg/term"
)

// DefaultDevice is the terminal device used by Open() when no device is
// specified.
const DefaultDevice = "/dev/tty"

// how long a read from the terminal waits before checking for Close()
const readTimeout = 100 * time.Millisecond

// Console reads key presses from a terminal in cbreak mode.
type Console struct {
	tty *term.Term

	commands chan Command

	// the output is shared between the reading goroutine (for help text) and
	// the host (for status lines)
	crit sync.Mutex

	quit chan bool
	done chan bool
}

// Open the terminal device and start reading key presses. The terminal is
// restored to its previous state by Close().
func Open(device string) (*Console, error) {
	if device == "" {
		device = DefaultDevice
	}

	tty, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	if err := tty.SetReadTimeout(readTimeout); err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, fmt.Errorf("console: %w", err)
	}

	con := &Console{
		tty:      tty,
		commands: make(chan Command, 16),
		quit:     make(chan bool),
		done:     make(chan bool),
	}

	go con.read()

	logger.Logf(logger.Allow, "console", "reading keys from %s", device)

	return con, nil
}

// read key presses until Close() is called.
func (con *Console) read() {
	defer close(con.done)

	b := make([]byte, 1)
	for {
		select {
		case <-con.quit:
			return
		default:
		}

		n, err := con.tty.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Logf(logger.Allow, "console", "read: %v", err)
			return
		}

		// a timed out read returns no data
		if n == 0 {
			continue
		}

		cmd, ok := Lookup(b[0])
		if !ok {
			continue
		}

		if cmd == Help {
			con.Print(HelpText())
			continue
		}

		// the host may not be keeping up. drop the command rather than
		// block the terminal
		select {
		case con.commands <- cmd:
		default:
			logger.Logf(logger.Allow, "console", "dropped command: %s", cmd)
		}
	}
}

// Commands returns the channel on which commands are delivered.
func (con *Console) Commands() <-chan Command {
	return con.commands
}

// Print writes text to the terminal. The cursor is assumed to be at the start
// of a line.
func (con *Console) Print(s string) {
	con.crit.Lock()
	defer con.crit.Unlock()
	_, _ = io.WriteString(con.tty, ansi.ClearLine+s)
}

// Status replaces the current line of the terminal with a status message.
// The colour is one of the pen names in the ansi package. An empty colour
// leaves the text unaltered.
func (con *Console) Status(colour string, s string) {
	con.crit.Lock()
	defer con.crit.Unlock()

	pen, ok := ansi.Pens[colour]
	if ok {
		s = pen + s + ansi.NormalPen
	}
	_, _ = io.WriteString(con.tty, ansi.ClearLine+s)
}

// Close stops reading key presses and restores the terminal.
func (con *Console) Close() error {
	close(con.quit)
	<-con.done

	if err := con.tty.Restore(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	if err := con.tty.Close(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
