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
	"context"
	"errors"
	"syscall/js"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/clock"
	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/gpu/webgl"
	"github.com/Dodotree/zebra-sub000/host"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/prefs"
	"github.com/Dodotree/zebra-sub000/version"
)

// how often the status element is updated, in refreshes
const statusRate = 30

// page holds the elements of the HTML page used by the application.
type page struct {
	canvas js.Value
	video  js.Value
	status js.Value
}

func (pg page) setStatus(s string) {
	if !pg.status.IsNull() {
		pg.status.Set("textContent", s)
	}
}

func main() {
	doc := js.Global().Get("document")
	doc.Set("title", version.Title())

	pg := page{
		canvas: doc.Call("getElementById", "canvas"),
		video:  doc.Call("getElementById", "video"),
		status: doc.Call("getElementById", "status"),
	}

	if err := run(pg); err != nil {
		pg.setStatus(err.Error())
		js.Global().Get("console").Call("error", err.Error())
	}
}

func run(pg page) error {
	// there is no filesystem in the browser so the preferences only ever
	// have their default values
	pp, err := pipeline.NewPreferencesFile(prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}
	cp, err := capture.NewPreferencesFile(prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	w, h := cp.Size()

	vid, err := NewVideo(pg.video, w, h)
	if err != nil {
		return err
	}
	defer vid.Close()

	pg.canvas.Set("width", w)
	pg.canvas.Set("height", h)

	ctx, err := webgl.NewContext(pg.canvas)
	if err != nil {
		return err
	}

	cfg := pipeline.DefaultConfig(w, h)
	cfg.SourceDepth = 32
	pl, err := pipeline.New(ctx, nil, pp.Apply(cfg))
	if err != nil {
		return err
	}
	defer pl.Destroy()

	hst, err := host.NewHost(pl, vid, pp, cp)
	if err != nil {
		return err
	}

	// commands are taken from key presses in the same way as the console
	commands := make(chan console.Command, 16)
	keydown := js.FuncOf(func(this js.Value, args []js.Value) any {
		key := args[0].Get("key").String()
		if key == "Escape" {
			key = "\x1b"
		}
		if len(key) != 1 {
			return nil
		}
		if cmd, ok := console.Lookup(key[0]); ok {
			select {
			case commands <- cmd:
			default:
			}
		}
		return nil
	})
	defer keydown.Release()
	js.Global().Call("addEventListener", "keydown", keydown)
	defer js.Global().Call("removeEventListener", "keydown", keydown)

	// the display refresh is signalled by requestAnimationFrame()
	clk := clock.NewManual(1)
	var animate js.Func
	animate = js.FuncOf(func(this js.Value, args []js.Value) any {
		clk.TryTrigger()
		js.Global().Call("requestAnimationFrame", animate)
		return nil
	})
	defer animate.Release()
	js.Global().Call("requestAnimationFrame", animate)

	var stepErr error
	var n int

	err = clock.Run(context.Background(), clk, func() bool {
		for pending := true; pending; {
			select {
			case cmd := <-commands:
				s, err := hst.Command(cmd)
				if errors.Is(err, host.ErrQuit) {
					return false
				}
				if err != nil {
					logger.Log(logger.Allow, "web", err)
					pg.setStatus(err.Error())
				} else if s != "" {
					pg.setStatus(s)
				}
			default:
				pending = false
			}
		}

		cw := pg.canvas.Get("clientWidth").Int()
		ch := pg.canvas.Get("clientHeight").Int()
		if cw > 0 && ch > 0 {
			if pg.canvas.Get("width").Int() != cw || pg.canvas.Get("height").Int() != ch {
				pg.canvas.Set("width", cw)
				pg.canvas.Set("height", ch)
			}
			hst.SetCanvas(cw, ch)
		}

		if err := hst.Step(); err != nil {
			stepErr = err
			return false
		}
		pl.Present()

		n++
		if n%statusRate == 0 {
			pg.setStatus(hst.StatsString())
		}

		return true
	})

	if stepErr != nil {
		return stepErr
	}
	if err != nil {
		return err
	}

	pg.setStatus("stopped")
	return nil
}
