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

package gpu

import "fmt"

// Handle types. The zero value of each is the "none" value.
type (
	Shader      uint32
	Program     uint32
	Texture     uint32
	Framebuffer uint32
	Buffer      uint32
	VertexArray uint32
	Query       uint32
)

// DefaultFramebuffer is the visible canvas.
const DefaultFramebuffer Framebuffer = 0

// Location of a named attribute or uniform in a linked program. A negative
// location indicates that the name is not active in the program.
type Location int32

// NoLocation is returned for names that are not active in a program.
const NoLocation Location = -1

// Valid returns true if the location refers to an active name.
func (l Location) Valid() bool {
	return l >= 0
}

// Stage of a shader.
type Stage int

// List of valid Stage values.
const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown stage"
}

// Format is the internal storage format of a texture.
type Format int

// List of valid Format values.
const (
	FormatR8 Format = iota
	FormatRGB8
	FormatRGBA8
	FormatRGBA32F
)

func (f Format) String() string {
	switch f {
	case FormatR8:
		return "R8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA32F:
		return "RGBA32F"
	}
	return "unknown format"
}

// Channels returns the number of components per texel.
func (f Format) Channels() int {
	switch f {
	case FormatR8:
		return 1
	case FormatRGB8:
		return 3
	}
	return 4
}

// BytesPerTexel returns the size of a single texel in bytes.
func (f Format) BytesPerTexel() int {
	if f == FormatRGBA32F {
		return 16
	}
	return f.Channels()
}

// IsFloat returns true if the format stores floating point components.
func (f Format) IsFloat() bool {
	return f == FormatRGBA32F
}

// Filter is a texture sampling filter.
type Filter int

// List of valid Filter values. FilterDefault is the filter a newly created
// texture has before any sampling parameters have been applied. It is
// mipmap dependent for minification.
const (
	FilterDefault Filter = iota
	FilterNearest
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterDefault:
		return "default"
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	}
	return "unknown filter"
}

// Wrap is a texture wrapping mode.
type Wrap int

// List of valid Wrap values.
const (
	WrapDefault Wrap = iota
	WrapClampToEdge
	WrapRepeat
	WrapMirroredRepeat
)

func (w Wrap) String() string {
	switch w {
	case WrapDefault:
		return "default"
	case WrapClampToEdge:
		return "clamp"
	case WrapRepeat:
		return "repeat"
	case WrapMirroredRepeat:
		return "mirrored"
	}
	return "unknown wrap"
}

// Sampling parameters for a texture.
type Sampling struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
}

// NearestClamp is the sampling used for every intermediate pipeline texture.
var NearestClamp = Sampling{
	MinFilter: FilterNearest,
	MagFilter: FilterNearest,
	WrapS:     WrapClampToEdge,
	WrapT:     WrapClampToEdge,
}

// Status is the result of a framebuffer completeness check.
type Status int

// List of valid Status values.
const (
	StatusComplete Status = iota
	StatusIncompleteAttachment
	StatusMissingAttachment
	StatusIncompleteDimensions
	StatusUnsupported
	StatusIncompleteMultisample
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusIncompleteAttachment:
		return "incomplete attachment"
	case StatusMissingAttachment:
		return "missing attachment"
	case StatusIncompleteDimensions:
		return "incomplete dimensions"
	case StatusUnsupported:
		return "unsupported"
	case StatusIncompleteMultisample:
		return "incomplete multisample"
	}
	return fmt.Sprintf("unknown status (%d)", int(s))
}

// Target of a buffer binding.
type Target int

// List of valid Target values.
const (
	ArrayBuffer Target = iota
	ElementArrayBuffer
)

// Info describes the implementation behind a Context.
type Info struct {
	Vendor   string
	Renderer string
	Version  string

	// the shading language dialect accepted by CompileShader(). either
	// "150 core" or "300 es"
	Dialect string

	// whether float textures can be used as color attachments
	FloatRenderable bool

	// maximum number of simultaneous color attachments
	MaxColorAttachments int
}
