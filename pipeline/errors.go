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

package pipeline

import (
	"errors"
	"fmt"

	"github.com/Dodotree/zebra-sub000/gpu"
)

// Sentinel errors returned by the package.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrLinearFilter    = errors.New("linear filtering on render target")
	ErrMissingResource = errors.New("missing resource")
	ErrDestroyed       = errors.New("pipeline destroyed")
	ErrBusy            = errors.New("processing cycle in progress")
)

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage  gpu.Stage
	Shader string
	Log    string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("compiling %s shader %s: %s", e.Stage, e.Shader, e.Log)
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Program string
	Log     string
}

func (e LinkError) Error() string {
	return fmt.Sprintf("linking program %s: %s", e.Program, e.Log)
}

// FramebufferIncompleteError is returned when a framebuffer fails the
// completeness check.
type FramebufferIncompleteError struct {
	Framebuffer string
	Status      gpu.Status
}

func (e FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("framebuffer %s incomplete: %s", e.Framebuffer, e.Status)
}

// MissingBindingWarning is logged when a named attribute or uniform is not
// active in a program. This is normal if the shader compiler has removed the
// name because it is not used.
type MissingBindingWarning struct {
	Program string
	Kind    string
	Name    string
}

func (e MissingBindingWarning) Error() string {
	return fmt.Sprintf("%s %s not active in program %s", e.Kind, e.Name, e.Program)
}
