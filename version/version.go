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

package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Zebra"

// number is set by the linker for release builds:
//
//	-ldflags "-X github.com/Dodotree/zebra-sub000/version.number=v1.0.0"
var number string

// revision is the vcs revision. suffixed with "+dirty" if the source has
// been modified since the last commit.
var revision string

// version is the release number, "unreleased" for a build from a vcs
// checkout without a release number, or "local" if there is no vcs
// information at all. the latter happens with "go run ."
var version string

// Version returns the version string, the revision string and whether this is a
// numbered release.
func Version() (string, string, bool) {
	return version, revision, version == number
}

// Title returns the application name and version, suitable for a window
// title.
func Title() string {
	return fmt.Sprintf("%s (%s)", ApplicationName, version)
}

func init() {
	revision, version = fromBuildInfo(number)
}

func fromBuildInfo(number string) (string, string) {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	rev := "no revision information"
	if vcsRevision != "" {
		rev = vcsRevision
		if vcsModified {
			rev = fmt.Sprintf("%s+dirty", rev)
		}
	}

	switch {
	case number != "":
		return rev, number
	case vcs:
		return rev, "unreleased"
	}
	return rev, "local"
}
