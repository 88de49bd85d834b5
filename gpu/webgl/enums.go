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

//go:build js && wasm

package webgl

// WebGL enumerations. The values are the same as the OpenGL equivalents.
const (
	glVendor              = 0x1f00
	glRenderer            = 0x1f01
	glVersion             = 0x1f02
	glMaxColorAttachments = 0x8cdf

	glVertexShader   = 0x8b31
	glFragmentShader = 0x8b30
	glCompileStatus  = 0x8b81
	glLinkStatus     = 0x8b82

	glTexture2D        = 0x0de1
	glTexture0         = 0x84c0
	glTextureMinFilter = 0x2801
	glTextureMagFilter = 0x2800
	glTextureWrapS     = 0x2802
	glTextureWrapT     = 0x2803
	glNearest          = 0x2600
	glLinear           = 0x2601
	glClampToEdge      = 0x812f
	glRepeat           = 0x2901
	glMirroredRepeat   = 0x8370

	glR8           = 0x8229
	glRed          = 0x1903
	glRGB8         = 0x8051
	glRGB          = 0x1907
	glRGBA8        = 0x8058
	glRGBA         = 0x1908
	glRGBA32F      = 0x8814
	glUnsignedByte = 0x1401
	glFloat        = 0x1406

	glUnpackAlignment = 0x0cf5
	glPackAlignment   = 0x0d05

	glFramebuffer                  = 0x8d40
	glColorAttachment0             = 0x8ce0
	glFramebufferComplete          = 0x8cd5
	glIncompleteAttachment         = 0x8cd6
	glIncompleteMissingAttachment  = 0x8cd7
	glIncompleteDimensions         = 0x8cd9
	glFramebufferUnsupported       = 0x8cdd
	glIncompleteMultisample        = 0x8d56
	glArrayBuffer                  = 0x8892
	glElementArrayBuffer           = 0x8893
	glStaticDraw                   = 0x88e4
	glTriangles                    = 0x0004
	glUnsignedShort                = 0x1403
	glColorBufferBit               = 0x4000
	glAnySamplesPassedConservative = 0x8d6a
	glQueryResult                  = 0x8866
	glQueryResultAvailable         = 0x8867

	glNoError                     = 0
	glInvalidEnum                 = 0x0500
	glInvalidValue                = 0x0501
	glInvalidOperation            = 0x0502
	glOutOfMemory                 = 0x0505
	glInvalidFramebufferOperation = 0x0506
	glContextLost                 = 0x9242
)
