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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/capture/camera"
	"github.com/Dodotree/zebra-sub000/clock"
	"github.com/Dodotree/zebra-sub000/console"
	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/gui/sdlimgui"
	"github.com/Dodotree/zebra-sub000/host"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/modalflag"
	"github.com/Dodotree/zebra-sub000/paths"
	"github.com/Dodotree/zebra-sub000/performance"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/statsview"
	"github.com/Dodotree/zebra-sub000/version"
	"github.com/bradleyjkemp/memviz"
)

// #mainthread
//
// SDL window events and every call to an OpenGL context must happen on the
// main thread. the pipeline is not safe for concurrent use and is always
// driven from the main thread, even in modes that have no window
func init() {
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "TRACE", "DUMP", "CAMERA", "PERFORM", "PREFS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "TRACE":
		err = trace(md)

	case "DUMP":
		err = dump(md)

	case "CAMERA":
		err = cameraInfo(md)

	case "PERFORM":
		err = perform(md)

	case "PREFS":
		err = showPrefs(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Remaining arguments are image files or directories of image files\nthat are used as the source in place of -source.")

	opts := addOptions(md)
	stats := md.AddBool("statsview", false, "launch statsview server (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	pp, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	src, err := openSource(*opts.source, md.RemainingArgs(), cp)
	if err != nil {
		return err
	}
	defer src.Close()

	if *stats {
		srv, err := statsview.Launch(md.Output)
		if err != nil {
			logger.Log(logger.Allow, "zebra", err)
		} else {
			defer srv.Stop()
		}
	}

	w, h := cp.Size()
	img, err := sdlimgui.NewSdlImgui(version.Title(), w, h)
	if err != nil {
		return err
	}
	defer img.Destroy()

	pl, err := pipeline.New(img.GPU(), nil, configure(pp, cp))
	if err != nil {
		return err
	}
	defer pl.Destroy()

	hst, err := host.NewHost(pl, src, pp, cp)
	if err != nil {
		return err
	}

	return img.Service(hst)
}

// drawString describes a single draw recorded by the recorder.
func drawString(pl *pipeline.Pipeline, d recorder.Draw) string {
	return fmt.Sprintf("%-10s program=%-8s viewport=%v buffers=%v status=%s",
		pl.PassName(d.Framebuffer), pl.ProgramName(d.Program), d.Viewport, d.DrawBuffers, d.Status)
}

func trace(md *modalflag.Modes) error {
	md.NewMode()

	opts := addOptions(md)
	refreshes := md.AddInt("refreshes", 10, "number of display refreshes to trace (0 for no limit)")
	rate := md.AddInt("rate", 60, "display refreshes per second")
	calls := md.AddBool("calls", false, "trace every call to the GPU context")
	interactive := md.AddBool("console", false, "accept commands from the terminal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	pp, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	src, err := openSource(*opts.source, md.RemainingArgs(), cp)
	if err != nil {
		return err
	}
	defer src.Close()

	rec := recorder.NewRecorder()
	if *calls {
		rec.SetTrace(md.Output)
	}

	pl, err := pipeline.New(rec, nil, configure(pp, cp))
	if err != nil {
		return err
	}
	defer pl.Destroy()

	hst, err := host.NewHost(pl, src, pp, cp)
	if err != nil {
		return err
	}

	tck, err := clock.NewTicker(*rate)
	if err != nil {
		return err
	}
	defer tck.Stop()

	var con *console.Console
	if *interactive {
		con, err = console.Open(console.DefaultDevice)
		if err != nil {
			return err
		}
		defer con.Close()
		con.Print(console.HelpText())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return traceLoop(ctx, md.Output, tck, hst, rec, con, *refreshes)
}

// traceLoop steps the host once per refresh of the clock and writes the draws
// issued during each refresh to the output. The console is optional.
func traceLoop(ctx context.Context, output io.Writer, clk clock.Clock, hst *host.Host, rec *recorder.Recorder, con *console.Console, refreshes int) error {
	var commands <-chan console.Command
	if con != nil {
		commands = con.Commands()
	}

	var stepErr error
	var n int

	err := clock.Run(ctx, clk, func() bool {
		for pending := true; pending; {
			select {
			case cmd := <-commands:
				s, err := hst.Command(cmd)
				if errors.Is(err, host.ErrQuit) {
					return false
				}
				if err != nil {
					con.Status("red", err.Error())
				} else if s != "" {
					con.Status("green", s)
				}
			default:
				pending = false
			}
		}

		rec.ResetDraws()
		if err := hst.Step(); err != nil {
			stepErr = err
			return false
		}

		fmt.Fprintf(output, "refresh %d: %s\n", n, hst.Pipeline.State())
		for _, d := range rec.Draws() {
			fmt.Fprintf(output, "\t%s\n", drawString(hst.Pipeline, d))
		}
		if err := rec.Error(); err != nil {
			fmt.Fprintf(output, "\terror: %v\n", err)
		}

		n++
		return refreshes == 0 || n < refreshes
	})

	if stepErr != nil {
		return stepErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	opts := addOptions(md)
	output := md.AddString("o", "", "name of file to write the graph to (default is a unique filename)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	pp, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	src, err := openSource(*opts.source, md.RemainingArgs(), cp)
	if err != nil {
		return err
	}
	defer src.Close()

	pl, err := pipeline.New(recorder.NewRecorder(), nil, configure(pp, cp))
	if err != nil {
		return err
	}
	defer pl.Destroy()

	// process a frame so that there is a processing cycle in the graph
	pl.ProcessAndDraw(src.Frame())

	filename := *output
	if filename == "" {
		filename = paths.UniqueFilename("dump", "pipeline") + ".dot"
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, pl)

	fmt.Fprintf(md.Output, "pipeline graph written to %s\n", filename)
	return nil
}

func cameraInfo(md *modalflag.Modes) error {
	md.NewMode()

	opts := addOptions(md)
	apply := md.AddBool("apply", false, "apply the capture preferences before listing constraints")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	_, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	w, h := cp.Size()
	cam, err := camera.NewCamera(cp.Device.Get().(string), w, h, cp.Depth.Get().(int))
	if err != nil {
		return err
	}
	defer cam.Close()

	if *apply {
		if err := cam.Apply(cp); err != nil {
			return err
		}
	}

	fmt.Fprintf(md.Output, "device: %s\n", cam.Device())
	for _, c := range camera.Constraints {
		fmt.Fprintf(md.Output, "%15s: %.2f\n", c, cam.Get(c))
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	opts := addOptions(md)
	display := md.AddBool("display", false, "run the pipeline on the GPU of a window")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 1s overhead)")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma sep)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	pp, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	src, err := openSource(*opts.source, md.RemainingArgs(), cp)
	if err != nil {
		return err
	}
	defer src.Close()

	var ctx gpu.Context
	if *display {
		w, h := cp.Size()
		img, err := sdlimgui.NewSdlImgui(version.Title(), w, h)
		if err != nil {
			return err
		}
		defer img.Destroy()
		ctx = img.GPU()
	} else {
		rec := recorder.NewRecorder()
		ctx = &resettingRecorder{Recorder: rec}
	}

	pl, err := pipeline.New(ctx, nil, configure(pp, cp))
	if err != nil {
		return err
	}
	defer pl.Destroy()

	return performance.Check(md.Output, prf, pl, src, *duration)
}

// resettingRecorder discards the list of draws at the start of every
// processing cycle so that the memory used by the recorder does not grow
// without limit during a performance check.
type resettingRecorder struct {
	*recorder.Recorder
}

func (rec *resettingRecorder) BindFramebuffer(fbo gpu.Framebuffer) {
	if len(rec.Draws()) > 1024 {
		rec.ResetDraws()
	}
	rec.Recorder.BindFramebuffer(fbo)
}

func showPrefs(md *modalflag.Modes) error {
	md.NewMode()

	opts := addOptions(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	opts.apply(md.Output)

	pp, cp, err := loadPreferences()
	if err != nil {
		return err
	}

	fmt.Fprint(md.Output, pp.String())
	fmt.Fprint(md.Output, cp.String())
	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(md.Output, r)
	}
	return nil
}
