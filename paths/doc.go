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

// Package paths contains functions to prepare paths to zebra resources.
//
// The ResourcePath() function prepends the supplied resource path with the
// appropriate configuration directory. For example, the path to the
// preferences file:
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If the base resource directory, ".zebra", is present in the program's
// current directory then that is the base path that will be used. If it is
// not present then the user's configuration directory is used, as returned by
// os.UserConfigDir(). On a Linux system the path returned by the example
// above will be:
//
//	/home/user/.config/zebra/preferences
//
// The directory part of the returned path is created if it does not exist.
package paths
