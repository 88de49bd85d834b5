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

//go:build !statsview

package statsview

import (
	"errors"
	"io"
)

// Server is a running statistics server.
type Server struct{}

// Launch returns an error. Build with the statsview tag for a working
// server.
func Launch(_ io.Writer) (*Server, error) {
	return nil, errors.New("statsview: not available in this build")
}

// Stop the server.
func (srv *Server) Stop() {}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
