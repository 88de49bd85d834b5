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

// Package test bundles a bunch of useful functions useful for testing
// purposes, particular useful in conjunction with the standard go test
// harness.
//
// The Expect*() functions report a test error but allow the test to
// continue. The Demand*() functions are fatal to the test. Demand functions
// are useful when the value being tested is used in further tests and so
// must be correct. For example, testing that an error is nil before using the
// value returned alongside it.
//
// Success and failure are decided by the type of the value:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// It is worth describing how nil is handled because it is not obvious. The
// nil type is considered a success and consequently will cause ExpectFailure
// to fail and ExpectSuccess to succeed. This is because of how errors usually
// work (nil to indicate no error).
//
// All functions accept an optional list of tags. The tags are printed
// alongside any failure message and are useful for identifying which of
// several similar tests has failed.
package test
