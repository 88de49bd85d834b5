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

package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// the base path for all resources when in the current directory.
const baseResourcePath = ".zebra"

// the name of the resource directory in the user's configuration directory.
const configDirName = "zebra"

// ResourcePath returns the path to a resource. The subPath is a directory
// under the base path and the file is the name of the resource in that
// directory. Either can be empty.
//
// The directories in the path are created if necessary.
func ResourcePath(subPath string, file string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	dir := filepath.Join(base, subPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	return filepath.Join(dir, file), nil
}

// getBasePath returns baseResourcePath if it is present in the current
// directory. Otherwise, the zebra directory in the user's configuration
// directory is returned.
func getBasePath() (string, error) {
	if fi, err := os.Stat(baseResourcePath); err == nil && fi.IsDir() {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, configDirName), nil
}
