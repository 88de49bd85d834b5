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

package main

import (
	"fmt"
	"io"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/capture/camera"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/modalflag"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/prefs"
)

// options common to every mode that opens a source.
type options struct {
	source *string
	prefs  *string
	log    *bool
}

func addOptions(md *modalflag.Modes) options {
	return options{
		source: md.AddString("source", "pattern", "source of frames: PATTERN or CAMERA"),
		prefs:  md.AddString("prefs", "", "preferences that override those on disk (eg. 'pipeline.iterations::2; capture.depth::24')"),
		log:    md.AddBool("log", false, "echo log to stdout"),
	}
}

func (opts options) apply(output io.Writer) {
	if *opts.log {
		logger.SetEcho(logger.NewColorizer(output), false)
	}
	prefs.PushCommandLineStack(*opts.prefs)
}

// loadPreferences from disk. The preferences given on the command line take
// priority and any that are not used are logged.
func loadPreferences() (*pipeline.Preferences, *capture.Preferences, error) {
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "zebra", "unused preferences: %s", unused)
		}
	}()

	pp, err := pipeline.NewPreferences()
	if err != nil {
		return nil, nil, err
	}
	cp, err := capture.NewPreferences()
	if err != nil {
		return nil, nil, err
	}
	return pp, cp, nil
}

// openSource returns the source named by the -source flag. If a list of
// files is given then it is used in preference to the named source.
func openSource(source string, files []string, cp *capture.Preferences) (capture.Source, error) {
	w, h := cp.Size()
	depth := cp.Depth.Get().(int)

	if len(files) > 0 {
		return capture.NewSequence(files, w, h, depth)
	}

	switch source {
	case "pattern", "PATTERN":
		return capture.NewPattern(w, h, depth, 0)
	case "camera", "CAMERA":
		return camera.NewCamera(cp.Device.Get().(string), w, h, depth)
	}

	return nil, fmt.Errorf("unknown source: %s", source)
}

// configure returns the pipeline configuration for the capture size and
// depth with the values from the pipeline preferences applied.
func configure(pp *pipeline.Preferences, cp *capture.Preferences) pipeline.Config {
	w, h := cp.Size()
	cfg := pipeline.DefaultConfig(w, h)
	cfg.SourceDepth = cp.Depth.Get().(int)
	return pp.Apply(cfg)
}

