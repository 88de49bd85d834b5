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

// Package camera implements capture.Source for video capture devices.
//
// The device is read continuously in its own goroutine so that the rate of
// capture is independent of the rate at which frames are consumed. The most
// recent frame is kept and returned by Frame(). Changes to device constraints
// are passed to the capture goroutine over a channel because the underlying
// device is not safe for concurrent use.
package camera

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/logger"
	"gocv.io/x/gocv"
)

// Constraint is a property of the capture device that can be queried and
// changed.
type Constraint int

// List of valid Constraint values.
const (
	Width Constraint = iota
	Height
	FrameRate
	Exposure
	AutoExposure
	Focus
	AutoFocus
	Brightness
)

// Constraints is the list of every Constraint in display order.
var Constraints = []Constraint{Width, Height, FrameRate, Exposure, AutoExposure, Focus, AutoFocus, Brightness}

func (c Constraint) String() string {
	switch c {
	case Width:
		return "width"
	case Height:
		return "height"
	case FrameRate:
		return "frame rate"
	case Exposure:
		return "exposure"
	case AutoExposure:
		return "auto exposure"
	case Focus:
		return "focus"
	case AutoFocus:
		return "autofocus"
	case Brightness:
		return "brightness"
	}
	return fmt.Sprintf("unknown constraint (%d)", int(c))
}

func (c Constraint) property() gocv.VideoCaptureProperties {
	switch c {
	case Width:
		return gocv.VideoCaptureFrameWidth
	case Height:
		return gocv.VideoCaptureFrameHeight
	case FrameRate:
		return gocv.VideoCaptureFPS
	case Exposure:
		return gocv.VideoCaptureExposure
	case AutoExposure:
		return gocv.VideoCaptureAutoExposure
	case Focus:
		return gocv.VideoCaptureFocus
	case AutoFocus:
		return gocv.VideoCaptureAutoFocus
	case Brightness:
		return gocv.VideoCaptureBrightness
	}
	panic(fmt.Sprintf("camera: no property for %s", c))
}

// Sentinel errors returned by the package.
var (
	ErrClosed      = errors.New("camera: closed")
	ErrUnsupported = errors.New("camera: constraint not supported by device")
)

type request struct {
	constraint Constraint
	value      float64
	result     chan error
}

// Camera implements the capture.Source interface.
type Camera struct {
	device string

	depth int

	crit sync.Mutex

	// the size of the frames returned by Frame(). frames from the device are
	// scaled to this size. guarded by crit because Resize() can change it
	// while the capture goroutine is running
	width  int
	height int

	// the most recent frame from the device
	frame capture.Frame

	// most recent value of each constraint as reported by the device
	values map[Constraint]float64

	requests chan request
	quit     chan bool
	done     chan bool
}

// NewCamera is the preferred method of initialisation for the Camera type.
// The device string can be a device number or a filename or URL of a video
// stream.
func NewCamera(device string, width int, height int, depth int) (*Camera, error) {
	if !capture.ValidDepth(depth) {
		return nil, fmt.Errorf("camera: unsupported depth (%d)", depth)
	}

	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera: cannot open device %s", device)
	}

	cam := &Camera{
		device:   device,
		width:    width,
		height:   height,
		depth:    depth,
		values:   make(map[Constraint]float64),
		requests: make(chan request),
		quit:     make(chan bool),
		done:     make(chan bool),
	}

	// ask for the native resolution of the device to match the requested
	// size. the device is free to ignore the request
	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	cam.refresh(vc)

	logger.Logf(logger.Allow, "camera", "opened %s (%.0fx%.0f)", device, cam.values[Width], cam.values[Height])

	go cam.run(vc)

	return cam, nil
}

// refresh the list of constraint values. must only be called from the capture
// goroutine or before the capture goroutine has started.
func (cam *Camera) refresh(vc *gocv.VideoCapture) {
	cam.crit.Lock()
	defer cam.crit.Unlock()
	for _, c := range Constraints {
		cam.values[c] = vc.Get(c.property())
	}
}

func (cam *Camera) run(vc *gocv.VideoCapture) {
	defer func() {
		vc.Close()
		close(cam.done)
	}()

	raw := gocv.NewMat()
	defer raw.Close()
	converted := gocv.NewMat()
	defer converted.Close()
	scaled := gocv.NewMat()
	defer scaled.Close()

	var seq int

	for {
		select {
		case <-cam.quit:
			return
		case req := <-cam.requests:
			req.result <- cam.set(vc, req)
			continue
		default:
		}

		if ok := vc.Read(&raw); !ok {
			logger.Logf(logger.Allow, "camera", "device %s closed", cam.device)
			cam.crit.Lock()
			cam.frame.Ready = capture.HaveNothing
			cam.crit.Unlock()
			cam.drain()
			return
		}
		if raw.Empty() {
			continue
		}

		switch cam.depth {
		case 8:
			gocv.CvtColor(raw, &converted, gocv.ColorBGRToGray)
		case 24:
			gocv.CvtColor(raw, &converted, gocv.ColorBGRToRGB)
		default:
			gocv.CvtColor(raw, &converted, gocv.ColorBGRToRGBA)
		}
		cam.crit.Lock()
		sz := image.Pt(cam.width, cam.height)
		cam.crit.Unlock()

		gocv.Resize(converted, &scaled, sz, 0, 0, gocv.InterpolationNearestNeighbor)

		seq++

		cam.crit.Lock()
		// a frame scaled to the size before a Resize() is discarded
		if sz.X == cam.width && sz.Y == cam.height {
			cam.frame = capture.Frame{
				Width:    sz.X,
				Height:   sz.Y,
				Depth:    cam.depth,
				Pixels:   scaled.ToBytes(),
				Ready:    capture.HaveEnoughData,
				Sequence: seq,
			}
		}
		cam.crit.Unlock()
	}
}

// set a constraint on the device. a device that reports zero for a constraint
// before and after the change does not support it.
func (cam *Camera) set(vc *gocv.VideoCapture, req request) error {
	prop := req.constraint.property()
	before := vc.Get(prop)
	vc.Set(prop, req.value)
	after := vc.Get(prop)
	cam.refresh(vc)

	if before == 0 && after == 0 && req.value != 0 {
		return fmt.Errorf("%w: %s", ErrUnsupported, req.constraint)
	}
	if after != req.value {
		logger.Logf(logger.Allow, "camera", "%s: device adjusted %.2f to %.2f", req.constraint, req.value, after)
	}
	return nil
}

// drain requests until the camera is closed. used once the device has stopped
// delivering frames.
func (cam *Camera) drain() {
	for {
		select {
		case <-cam.quit:
			return
		case req := <-cam.requests:
			req.result <- ErrClosed
		}
	}
}

// Frame implements the capture.Source interface. The ready state of the frame
// is HaveNothing until the device has delivered its first frame.
func (cam *Camera) Frame() capture.Frame {
	cam.crit.Lock()
	defer cam.crit.Unlock()
	return cam.frame
}

// Set changes the value of a constraint.
func (cam *Camera) Set(c Constraint, value float64) error {
	req := request{
		constraint: c,
		value:      value,
		result:     make(chan error, 1),
	}

	select {
	case cam.requests <- req:
	case <-cam.done:
		return ErrClosed
	}

	err := <-req.result
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "camera", "%s set to %.2f", c, value)
	return nil
}

// Get returns the most recent value of a constraint as reported by the
// device.
func (cam *Camera) Get(c Constraint) float64 {
	cam.crit.Lock()
	defer cam.crit.Unlock()
	return cam.values[c]
}

// Resize implements the capture.Resizer interface. The device is asked for
// the same native resolution but is free to choose another. Frames are scaled
// to the new size whatever the device decides. Until the first frame at the
// new size is ready, Frame() returns a frame with a ready state of
// HaveNothing.
func (cam *Camera) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("camera: invalid dimensions (%dx%d)", width, height)
	}

	for _, c := range []Constraint{Width, Height} {
		v := width
		if c == Height {
			v = height
		}
		err := cam.Set(c, float64(v))
		if errors.Is(err, ErrUnsupported) {
			logger.Log(logger.Allow, "camera", err)
			continue
		}
		if err != nil {
			return err
		}
	}

	cam.crit.Lock()
	defer cam.crit.Unlock()
	cam.width = width
	cam.height = height
	cam.frame = capture.Frame{
		Width:    width,
		Height:   height,
		Depth:    cam.depth,
		Ready:    capture.HaveNothing,
		Sequence: cam.frame.Sequence,
	}

	return nil
}

// Size returns the size of the frames returned by Frame().
func (cam *Camera) Size() (int, int) {
	cam.crit.Lock()
	defer cam.crit.Unlock()
	return cam.width, cam.height
}

// Device returns the device string used to open the camera.
func (cam *Camera) Device() string {
	return cam.device
}

// Close implements the capture.Source interface.
func (cam *Camera) Close() error {
	select {
	case <-cam.done:
		return ErrClosed
	default:
	}
	close(cam.quit)
	<-cam.done
	return nil
}

// Apply the camera constraints in the capture preferences. Constraints that
// are not supported by the device are logged and otherwise ignored.
//
// The size preferences are not applied because a change of size must be
// coordinated with the consumer of the frames. Use Resize() for that. The
// device cannot be changed on an open camera and a different device in the
// preferences is only logged.
func (cam *Camera) Apply(p *capture.Preferences) error {
	if dev := p.Device.Get().(string); dev != cam.device {
		logger.Logf(logger.Allow, "camera", "device %s will be opened on restart (currently %s)", dev, cam.device)
	}

	type setting struct {
		c Constraint
		v float64
	}

	settings := []setting{
		{c: AutoFocus, v: boolToFloat(p.AutoFocus.Get().(bool))},
		{c: Exposure, v: p.Exposure.Get().(float64)},
	}

	// manual focus is only meaningful when autofocus is off
	if !p.AutoFocus.Get().(bool) {
		settings = append(settings, setting{c: Focus, v: p.Focus.Get().(float64)})
	}

	for _, s := range settings {
		// zero exposure means leave the device to decide
		if s.c == Exposure && s.v == 0 {
			continue
		}
		err := cam.Set(s.c, s.v)
		if errors.Is(err, ErrUnsupported) {
			logger.Log(logger.Allow, "camera", err)
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
