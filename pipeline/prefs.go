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
	"fmt"

	"github.com/Dodotree/zebra-sub000/paths"
	"github.com/Dodotree/zebra-sub000/prefs"
)

// Preferences for the pipeline. Changes take effect the next time a pipeline
// is created or rebuilt with a configuration passed through Apply().
type Preferences struct {
	dsk *prefs.Disk

	Iterations prefs.Int
	Debug      prefs.Bool
	Compare    prefs.Bool
	Threshold  prefs.Float
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

	p.Iterations.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("%w: iterations must be at least one", ErrInvalidConfig)
		}
		return nil
	})

	p.Threshold.SetHookPre(func(v prefs.Value) error {
		if f := v.(float64); f < 0 || f > 1 {
			return fmt.Errorf("%w: threshold out of range", ErrInvalidConfig)
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("pipeline.iterations", &p.Iterations)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.debug", &p.Debug)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.compare", &p.Compare)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.threshold", &p.Threshold)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	def := DefaultConfig(1, 1)
	_ = p.Iterations.Set(def.MaxIterations)
	_ = p.Debug.Set(def.Debug)
	_ = p.Compare.Set(def.Compare)
	_ = p.Threshold.Set(float64(def.Threshold))
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Apply the preference values to a configuration.
func (p *Preferences) Apply(cfg Config) Config {
	cfg.MaxIterations = p.Iterations.Get().(int)
	cfg.Debug = p.Debug.Get().(bool)
	cfg.Compare = p.Compare.Get().(bool)
	cfg.Threshold = float32(p.Threshold.Get().(float64))
	return cfg
}
