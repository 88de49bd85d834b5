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

// Zebra for the web browser. The pipeline runs on a WebGL2 context created
// for a canvas element and the frames come from the user's camera.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o web/www/zebra.wasm ./web/src
//
// The www directory also requires a copy of the wasm_exec.js file that comes
// with the Go distribution.
package main
