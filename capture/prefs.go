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

package capture

import (
	"fmt"

	"github.com/Dodotree/zebra-sub000/paths"
	"github.com/Dodotree/zebra-sub000/prefs"
)

// Preferences for frame sources. The camera constraints are only used by
// sources that support them.
type Preferences struct {
	dsk *prefs.Disk

	// size and depth of the frames delivered to the pipeline
	Width  prefs.Int
	Height prefs.Int
	Depth  prefs.Int

	// capture device. a device number or the filename or URL of a stream
	Device prefs.String

	Exposure  prefs.Float
	Focus     prefs.Float
	AutoFocus prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are stored in the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile creates a Preferences instance that is stored in the
// named file.
func NewPreferencesFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	positive := func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("capture: value must be positive (%d)", v.(int))
		}
		return nil
	}
	p.Width.SetHookPre(positive)
	p.Height.SetHookPre(positive)

	p.Depth.SetHookPre(func(v prefs.Value) error {
		if !ValidDepth(v.(int)) {
			return fmt.Errorf("capture: unsupported depth (%d)", v.(int))
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("capture.width", &p.Width)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.height", &p.Height)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.depth", &p.Depth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.device", &p.Device)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.exposure", &p.Exposure)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.focus", &p.Focus)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("capture.autofocus", &p.AutoFocus)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Width.Set(640)
	_ = p.Height.Set(480)
	_ = p.Depth.Set(32)
	_ = p.Device.Set("0")
	_ = p.Exposure.Set(0.0)
	_ = p.Focus.Set(0.0)
	_ = p.AutoFocus.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Size returns the width and height preferences.
func (p *Preferences) Size() (int, int) {
	return p.Width.Get().(int), p.Height.Get().(int)
}
