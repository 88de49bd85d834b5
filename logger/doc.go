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

// Package logger is the central logging facility. Entries are made up of a
// tag and a detail string and are kept in a bounded list. Adjacent entries
// with the same tag and detail are collapsed into a single entry with a
// repeat count.
//
// The package level functions all operate on the single central log. For
// testing or for special-purpose logs, a new instance of Logger can be
// created with NewLogger().
//
// Every logging request must supply a Permission. The Allow value can be used
// when the log entry should always be made. Other implementations of the
// Permission interface can be used to suppress entries. For example, when a
// pipeline is being rebuilt repeatedly from a preferences hook we may not
// want to see the same advisory messages every time.
//
// The detail argument to Log() can be of any type. Errors are logged with the
// result of their Error() function, fmt.Stringer implementations with their
// String() function. Any other type is logged with the %v verb.
package logger
