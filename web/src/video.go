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

package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/logger"
)

// Video implements capture.Source for a camera stream shown by an HTML video
// element. Frames are read by drawing the video to a 2D canvas.
type Video struct {
	video js.Value
	track js.Value

	// 2D context of the canvas used to read the pixels of the video
	scratch js.Value

	width  int
	height int
	pixels []byte

	uint8Array js.Value

	// logs the rejection of a call to applyConstraints()
	rejected js.Func

	// the most recent camera constraints from Apply(). applyConstraints()
	// replaces every constraint so these are sent again by Resize()
	advanced map[string]any

	seq  int
	last float64
}

// await blocks until the promise settles. Must not be called from a callback.
func await(promise js.Value) (js.Value, error) {
	done := make(chan struct{})
	var result js.Value
	var rejection js.Value

	then := js.FuncOf(func(this js.Value, args []js.Value) any {
		result = args[0]
		close(done)
		return nil
	})
	defer then.Release()

	catch := js.FuncOf(func(this js.Value, args []js.Value) any {
		rejection = args[0]
		close(done)
		return nil
	})
	defer catch.Release()

	promise.Call("then", then).Call("catch", catch)
	<-done

	if !rejection.IsUndefined() {
		return js.Undefined(), errors.New(rejection.Call("toString").String())
	}
	return result, nil
}

// NewVideo opens the user's camera and attaches the stream to the video
// element. Frames are scaled to the requested size.
func NewVideo(video js.Value, width int, height int) (*Video, error) {
	md := js.Global().Get("navigator").Get("mediaDevices")
	if md.IsUndefined() {
		return nil, errors.New("video: media devices are not available")
	}

	constraints := map[string]any{
		"audio": false,
		"video": map[string]any{
			"width":  map[string]any{"ideal": width},
			"height": map[string]any{"ideal": height},
		},
	}

	stream, err := await(md.Call("getUserMedia", constraints))
	if err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}

	video.Set("srcObject", stream)
	video.Set("muted", true)
	video.Call("play")

	scratch := js.Global().Get("document").Call("createElement", "canvas")
	scratch.Set("width", width)
	scratch.Set("height", height)

	vid := &Video{
		video:      video,
		track:      stream.Call("getVideoTracks").Index(0),
		scratch:    scratch.Call("getContext", "2d", map[string]any{"willReadFrequently": true}),
		width:      width,
		height:     height,
		pixels:     make([]byte, width*height*4),
		uint8Array: js.Global().Get("Uint8Array"),
		last:       -1,
	}

	vid.rejected = js.FuncOf(func(this js.Value, args []js.Value) any {
		logger.Logf(logger.Allow, "video", "constraints: %s", args[0].Call("toString").String())
		return nil
	})

	logger.Logf(logger.Allow, "video", "camera: %s", vid.track.Get("label").String())

	return vid, nil
}

// Frame implements the capture.Source interface.
func (vid *Video) Frame() capture.Frame {
	f := capture.Frame{
		Width:    vid.width,
		Height:   vid.height,
		Depth:    32,
		Ready:    capture.ReadyState(vid.video.Get("readyState").Int()),
		Sequence: vid.seq,
	}

	if !f.Ready.Decodable() {
		return f
	}

	// the sequence number only changes when the video has moved on
	if t := vid.video.Get("currentTime").Float(); t != vid.last {
		vid.last = t
		vid.seq++

		vid.scratch.Call("drawImage", vid.video, 0, 0, vid.width, vid.height)
		data := vid.scratch.Call("getImageData", 0, 0, vid.width, vid.height).Get("data")
		js.CopyBytesToGo(vid.pixels, vid.uint8Array.New(data.Get("buffer")))
	}

	f.Pixels = vid.pixels
	f.Sequence = vid.seq
	return f
}

// Apply implements the host.Adjuster interface. Constraints are applied
// asynchronously and constraints that the camera does not support are
// logged.
func (vid *Video) Apply(p *capture.Preferences) error {
	advanced := map[string]any{}

	if p.AutoFocus.Get().(bool) {
		advanced["focusMode"] = "continuous"
	} else {
		advanced["focusMode"] = "manual"
		advanced["focusDistance"] = p.Focus.Get().(float64)
	}

	if exp := p.Exposure.Get().(float64); exp > 0 {
		advanced["exposureMode"] = "manual"
		advanced["exposureTime"] = exp
	} else {
		advanced["exposureMode"] = "continuous"
	}

	vid.advanced = advanced
	vid.track.Call("applyConstraints", map[string]any{
		"width":    map[string]any{"ideal": vid.width},
		"height":   map[string]any{"ideal": vid.height},
		"advanced": []any{advanced},
	}).Call("catch", vid.rejected)

	return nil
}

// Resize implements the capture.Resizer interface. The camera is asked for
// the new size asynchronously and frames are scaled to the new size
// immediately.
func (vid *Video) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("video: invalid dimensions (%dx%d)", width, height)
	}

	constraints := map[string]any{
		"width":  map[string]any{"ideal": width},
		"height": map[string]any{"ideal": height},
	}
	if vid.advanced != nil {
		constraints["advanced"] = []any{vid.advanced}
	}
	vid.track.Call("applyConstraints", constraints).Call("catch", vid.rejected)

	canvas := vid.scratch.Get("canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)

	vid.width = width
	vid.height = height
	vid.pixels = make([]byte, width*height*4)

	// force a read of the video on the next call to Frame()
	vid.last = -1

	return nil
}

// Close implements the capture.Source interface.
func (vid *Video) Close() error {
	vid.track.Call("stop")
	vid.video.Set("srcObject", js.Null())
	vid.rejected.Release()
	return nil
}
