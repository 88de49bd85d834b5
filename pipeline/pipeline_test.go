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

package pipeline_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/pipeline/shaders"
	"github.com/Dodotree/zebra-sub000/test"
)

func frame(cfg pipeline.Config, seq int, ready capture.ReadyState) capture.Frame {
	bpp := cfg.SourceDepth / 8
	if bpp < 1 {
		bpp = 1
	}
	return capture.Frame{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Depth:    cfg.SourceDepth,
		Pixels:   make([]byte, cfg.Width*cfg.Height*bpp),
		Ready:    ready,
		Sequence: seq,
	}
}

func create(t *testing.T, rec *recorder.Recorder, cfg pipeline.Config) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(rec, nil, cfg)
	test.DemandSuccess(t, err)
	return p
}

func passes(p *pipeline.Pipeline, rec *recorder.Recorder) string {
	return strings.Join(p.PassNames(rec.Draws()), " ")
}

func TestPackedSize(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(256, 256)
	p := create(t, rec, cfg)
	defer p.Destroy()

	w, h := cfg.PackedSize()
	test.ExpectEquality(t, w, 32)
	test.ExpectEquality(t, h, 64)

	for _, slot := range []int{pipeline.SlotPacked, pipeline.SlotDilated} {
		format, w, h, _, ok := rec.TextureInfo(p.TextureHandle(slot))
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, format, gpu.FormatRGBA8)
		test.ExpectEquality(t, w, 32)
		test.ExpectEquality(t, h, 64)
	}

	// sizes that are not a multiple of the block size are rounded up
	cfg = pipeline.DefaultConfig(17, 5)
	w, h = cfg.PackedSize()
	test.ExpectEquality(t, w, 3)
	test.ExpectEquality(t, h, 2)

	test.DemandSuccess(t, p.ProcessAndDraw(frame(p.Config(), 1, capture.HaveEnoughData)))
	draws := rec.Draws()
	test.DemandEquality(t, len(draws), 4)
	test.ExpectEquality(t, draws[0].Viewport, [4]int{0, 0, 32, 64})
	test.ExpectEquality(t, draws[1].Viewport, [4]int{0, 0, 32, 64})
	test.ExpectEquality(t, draws[2].Viewport, [4]int{0, 0, 256, 256})
	test.ExpectEquality(t, draws[3].Viewport, [4]int{0, 0, 256, 256})
}

func TestNearestSampling(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 64)
	cfg.Debug = true
	cfg.Compare = true
	cfg.MaxIterations = 2
	p := create(t, rec, cfg)
	defer p.Destroy()

	for slot := pipeline.SlotSource; slot <= pipeline.SlotDilatedReturn; slot++ {
		_, _, _, sampling, ok := rec.TextureInfo(p.TextureHandle(slot))
		test.DemandSuccess(t, ok, slot)
		test.ExpectEquality(t, sampling, gpu.NearestClamp, slot)
	}
}

func TestSingleIteration(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	p := create(t, rec, cfg)
	defer p.Destroy()

	// no return framebuffer is needed for a single dilation
	test.ExpectEquality(t, strings.Join(p.FramebufferNames(), " "), "packing dilation unpacking")

	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectEquality(t, passes(p, rec), "packing dilation unpacking canvas")
	test.ExpectEquality(t, p.State(), pipeline.Idle)
	test.ExpectFailure(t, p.Busy())

	// nothing to do on the next tick
	test.ExpectFailure(t, p.Tick())
	test.ExpectEquality(t, len(rec.Draws()), 4)

	// the unpack pass reads the dilated mask
	v, ok := rec.Uniform(p.ProgramHandle("unpack"), "mask")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(int32), int32(pipeline.SlotDilated))

	st := p.Stats()
	test.ExpectEquality(t, st.Accepted, 1)
	test.ExpectEquality(t, st.Cycles, 1)
	test.ExpectEquality(t, st.Passes, 4)
	test.ExpectEquality(t, st.Failed, 0)
}

func TestIterations(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 3
	p := create(t, rec, cfg)
	defer p.Destroy()

	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectEquality(t, passes(p, rec), "packing dilation")
	test.ExpectEquality(t, p.State(), pipeline.Iterating)

	test.ExpectSuccess(t, p.Tick())
	test.ExpectEquality(t, passes(p, rec), "packing dilation dilation-return")

	test.ExpectFailure(t, p.Tick())
	test.ExpectEquality(t, passes(p, rec), "packing dilation dilation-return dilation unpacking canvas")
	test.ExpectEquality(t, p.State(), pipeline.Idle)

	// ping-pong: each dilation reads the texture written by the previous pass
	dilate := p.ProgramHandle("dilate")
	draws := rec.Draws()
	test.ExpectEquality(t, draws[1].Program, dilate)
	test.ExpectEquality(t, draws[2].Program, dilate)
	test.ExpectEquality(t, draws[3].Program, dilate)

	v, ok := rec.Uniform(p.ProgramHandle("unpack"), "mask")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(int32), int32(pipeline.SlotDilated))

	// an even number of dilations leaves the mask in the second dilation texture
	rec.ResetDraws()
	test.DemandSuccess(t, p.Rebuild(func() pipeline.Config { c := cfg; c.MaxIterations = 2; return c }()))
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 2, capture.HaveEnoughData)))
	test.ExpectFailure(t, p.Tick())
	test.ExpectEquality(t, passes(p, rec), "packing dilation dilation-return unpacking canvas")

	v, ok = rec.Uniform(p.ProgramHandle("unpack"), "mask")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(int32), int32(pipeline.SlotDilatedReturn))
}

func TestReentry(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 3
	p := create(t, rec, cfg)
	defer p.Destroy()

	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	n := len(rec.Draws())

	// frames arriving during a cycle are dropped without issuing any passes
	test.ExpectFailure(t, p.ProcessAndDraw(frame(cfg, 2, capture.HaveEnoughData)))
	test.ExpectFailure(t, p.ProcessAndDraw(frame(cfg, 3, capture.HaveEnoughData)))
	test.ExpectEquality(t, len(rec.Draws()), n)
	test.ExpectEquality(t, p.Stats().Dropped, 2)

	for p.Tick() {
	}
	test.ExpectEquality(t, p.Stats().Cycles, 1)

	// a new cycle can start once the previous one has completed
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 4, capture.HaveEnoughData)))
	test.ExpectEquality(t, p.Stats().Accepted, 2)
}

func TestUnreadyFrames(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	p := create(t, rec, cfg)
	defer p.Destroy()

	for i, r := range []capture.ReadyState{capture.HaveNothing, capture.HaveMetadata, capture.HaveMetadata} {
		test.ExpectFailure(t, p.ProcessAndDraw(frame(cfg, i, r)))
	}
	test.ExpectEquality(t, len(rec.Draws()), 0)
	test.ExpectEquality(t, p.State(), pipeline.Idle)
	test.ExpectEquality(t, p.Stats().Skipped, 3)

	// frame of the wrong size
	f := frame(pipeline.DefaultConfig(32, 32), 4, capture.HaveEnoughData)
	test.ExpectFailure(t, p.ProcessAndDraw(f))
	test.ExpectEquality(t, p.Stats().Skipped, 4)

	// HaveCurrentData is enough to start a cycle
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 5, capture.HaveCurrentData)))
}

func TestUniformValues(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.Threshold = 0.25
	p := create(t, rec, cfg)
	defer p.Destroy()

	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))

	pack := p.ProgramHandle("pack")
	v, ok := rec.Uniform(pack, "source")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(int32), int32(pipeline.SlotSource))

	v, ok = rec.Uniform(pack, "sourceSize")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([2]float32), [2]float32{64, 32})

	v, ok = rec.Uniform(pack, "channels")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(int32), 4)

	v, ok = rec.Uniform(pack, "threshold")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.(float32), 0.25)

	v, ok = rec.Uniform(p.ProgramHandle("dilate"), "maskSize")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([2]float32), [2]float32{8, 8})

	// the source texture is bound to its own unit during the pack pass
	test.ExpectEquality(t, rec.Draws()[0].Textures[pipeline.SlotSource], p.TextureHandle(pipeline.SlotSource))
}

func TestSourceDepth(t *testing.T) {
	rec := recorder.NewRecorder()

	for _, c := range []struct {
		depth  int
		format gpu.Format
	}{
		{depth: 8, format: gpu.FormatR8},
		{depth: 24, format: gpu.FormatRGB8},
		{depth: 32, format: gpu.FormatRGBA8},
		{depth: 16, format: gpu.FormatR8},
	} {
		cfg := pipeline.DefaultConfig(16, 16)
		cfg.SourceDepth = c.depth
		p := create(t, rec, cfg)
		format, _, _, _, ok := rec.TextureInfo(p.TextureHandle(pipeline.SlotSource))
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, format, c.format, c.depth)
		p.Destroy()
	}
}

func TestCompare(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 2
	cfg.Compare = true
	p := create(t, rec, cfg)
	defer p.Destroy()

	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectSuccess(t, p.Tick())
	test.ExpectEquality(t, p.State(), pipeline.Comparing)
	test.ExpectEquality(t, passes(p, rec), "packing dilation dilation-return comparison history")

	// waiting for the query result. no passes are issued
	test.ExpectSuccess(t, p.Tick())
	test.ExpectEquality(t, p.State(), pipeline.Comparing)
	test.ExpectEquality(t, len(rec.Draws()), 5)

	test.ExpectFailure(t, p.Tick())
	test.ExpectEquality(t, passes(p, rec), "packing dilation dilation-return comparison history unpacking canvas")
	test.ExpectSuccess(t, p.Changed())
	test.ExpectEquality(t, p.Stats().Changed, 1)

	// no samples pass the comparison
	rec.QuerySamples = func(_ []recorder.Draw) uint32 {
		return 0
	}
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 2, capture.HaveEnoughData)))
	for p.Tick() {
	}
	test.ExpectFailure(t, p.Changed())
	test.ExpectEquality(t, p.Stats().Changed, 1)
	test.ExpectEquality(t, p.Stats().Cycles, 2)
}

func TestDebug(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.Debug = true
	p := create(t, rec, cfg)
	defer p.Destroy()

	format, w, h, _, ok := rec.TextureInfo(p.TextureHandle(pipeline.SlotCoords))
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, format, gpu.FormatRGBA32F)
	test.ExpectEquality(t, w, 8)
	test.ExpectEquality(t, h, 8)

	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectEquality(t, len(rec.Draws()[0].DrawBuffers), 2)

	rb, err := p.Readback()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rb.Width, 8)
	test.ExpectEquality(t, rb.Height, 8)
	test.ExpectEquality(t, len(rb.Mask), 8*8*4)
	test.ExpectEquality(t, len(rb.Coords), 8*8*4)

	// float render targets are required for debug mode
	rec = recorder.NewRecorder()
	rec.SetFloatRenderable(false)
	_, err = pipeline.New(rec, nil, cfg)
	var fbErr pipeline.FramebufferIncompleteError
	test.DemandSuccess(t, errors.As(err, &fbErr))
	test.ExpectEquality(t, fbErr.Framebuffer, "packing")
	test.ExpectEquality(t, fbErr.Status, gpu.StatusUnsupported)
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestCompileError(t *testing.T) {
	rec := recorder.NewRecorder()
	provider := shaders.NewProvider(rec.Info().Dialect)
	provider.Override(shaders.Dilate, "#error broken shader\nvoid main() {}")

	_, err := pipeline.New(rec, provider, pipeline.DefaultConfig(64, 32))
	test.DemandFailure(t, err)

	var cmpErr pipeline.CompileError
	test.DemandSuccess(t, errors.As(err, &cmpErr))
	test.ExpectEquality(t, cmpErr.Shader, "dilate")
	test.ExpectEquality(t, cmpErr.Stage, gpu.FragmentStage)
	test.ExpectSuccess(t, strings.Contains(cmpErr.Log, "broken shader"))

	// nothing is left allocated
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestLinkError(t *testing.T) {
	rec := recorder.NewRecorder()
	provider := shaders.NewProvider(rec.Info().Dialect)
	provider.Override(shaders.Unpack, "in vec2 position2;\nout vec4 colour;\nvoid main() { colour = vec4(position2, 0.0, 1.0); }")

	_, err := pipeline.New(rec, provider, pipeline.DefaultConfig(64, 32))
	var lnkErr pipeline.LinkError
	test.DemandSuccess(t, errors.As(err, &lnkErr))
	test.ExpectEquality(t, lnkErr.Program, "unpack")
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestInvalidConfig(t *testing.T) {
	rec := recorder.NewRecorder()

	for _, cfg := range []pipeline.Config{
		func() pipeline.Config { c := pipeline.DefaultConfig(0, 32); return c }(),
		func() pipeline.Config { c := pipeline.DefaultConfig(64, 32); c.MaxIterations = 0; return c }(),
		func() pipeline.Config { c := pipeline.DefaultConfig(64, 32); c.Threshold = 2.0; return c }(),
		func() pipeline.Config { c := pipeline.DefaultConfig(64, 32); c.CanvasWidth = -1; return c }(),
	} {
		_, err := pipeline.New(rec, nil, cfg)
		test.ExpectSuccess(t, errors.Is(err, pipeline.ErrInvalidConfig))
	}
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestTextureFiltering(t *testing.T) {
	rec := recorder.NewRecorder()

	_, err := pipeline.NewTexture(rec, 1, pipeline.TextureSpec{
		Width: 4, Height: 4, Depth: 32,
		Mode: pipeline.RenderTarget,
		Sampling: gpu.Sampling{
			MinFilter: gpu.FilterLinear,
			MagFilter: gpu.FilterLinear,
		},
	})
	test.ExpectSuccess(t, errors.Is(err, pipeline.ErrLinearFilter))
	test.ExpectEquality(t, rec.Live(), 0)

	// linear filtering is acceptable for textures that are never drawn to
	tex, err := pipeline.NewTexture(rec, 0, pipeline.TextureSpec{
		Width: 4, Height: 4, Depth: 32,
		Mode: pipeline.Video,
		Sampling: gpu.Sampling{
			MinFilter: gpu.FilterLinear,
			MagFilter: gpu.FilterLinear,
		},
	})
	test.ExpectSuccess(t, err)
	tex.Destroy()

	// a render target with default filtering fails the completeness check
	tex, err = pipeline.NewTexture(rec, 1, pipeline.TextureSpec{
		Width: 4, Height: 4, Depth: 32,
		Mode: pipeline.RenderTarget,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, tex.Init())

	fbs := pipeline.NewFramebuffers(rec, map[int]*pipeline.Texture{1: tex})
	fbs.Configure(pipeline.FramebufferSpec{
		Name:        "target",
		Attachments: []pipeline.Attachment{{Slot: 0, Texture: 1}},
	})
	_, err = fbs.InitFramebuffer("target")
	var fbErr pipeline.FramebufferIncompleteError
	test.DemandSuccess(t, errors.As(err, &fbErr))
	test.ExpectEquality(t, fbErr.Status, gpu.StatusIncompleteAttachment)

	// the incomplete framebuffer has been released
	test.ExpectEquality(t, rec.Live(), 1)
	tex.Destroy()
	test.ExpectEquality(t, rec.Live(), 0)
}

// completeContext reports every framebuffer as complete. OpenGL 3.2 and
// OpenGL ES 3.0 do not take filtering into account when checking completeness
// and this context behaves in the same way.
type completeContext struct {
	*recorder.Recorder
}

func (ctx completeContext) CheckFramebufferStatus() gpu.Status {
	return gpu.StatusComplete
}

func TestDefaultFilteringIncomplete(t *testing.T) {
	rec := recorder.NewRecorder()
	ctx := completeContext{Recorder: rec}

	for i, sampling := range []gpu.Sampling{
		{},
		{MinFilter: gpu.FilterNearest},
		{MagFilter: gpu.FilterNearest},
	} {
		tex, err := pipeline.NewTexture(ctx, 1, pipeline.TextureSpec{
			Width: 4, Height: 4, Depth: 32,
			Mode:     pipeline.RenderTarget,
			Sampling: sampling,
		})
		test.DemandSuccess(t, err, i)
		test.DemandSuccess(t, tex.Init(), i)

		fbs := pipeline.NewFramebuffers(ctx, map[int]*pipeline.Texture{1: tex})
		fbs.Configure(pipeline.FramebufferSpec{
			Name:        "target",
			Attachments: []pipeline.Attachment{{Slot: 0, Texture: 1}},
		})
		_, err = fbs.InitFramebuffer("target")
		var fbErr pipeline.FramebufferIncompleteError
		test.DemandSuccess(t, errors.As(err, &fbErr), i)
		test.ExpectEquality(t, fbErr.Status, gpu.StatusIncompleteAttachment, i)
		test.ExpectEquality(t, fbErr.Framebuffer, "target", i)

		// no framebuffer was created
		test.ExpectEquality(t, rec.Live(), 1, i)
		tex.Destroy()
	}

	// nearest filtering is accepted by the same context
	tex, err := pipeline.NewTexture(ctx, 1, pipeline.TextureSpec{
		Width: 4, Height: 4, Depth: 32,
		Mode:     pipeline.RenderTarget,
		Sampling: gpu.NearestClamp,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, tex.Init())

	fbs := pipeline.NewFramebuffers(ctx, map[int]*pipeline.Texture{1: tex})
	fbs.Configure(pipeline.FramebufferSpec{
		Name:        "target",
		Attachments: []pipeline.Attachment{{Slot: 0, Texture: 1}},
	})
	_, err = fbs.InitFramebuffer("target")
	test.ExpectSuccess(t, err)

	fbs.Destroy()
	tex.Destroy()
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestFramebufferResources(t *testing.T) {
	rec := recorder.NewRecorder()
	fbs := pipeline.NewFramebuffers(rec, map[int]*pipeline.Texture{})

	_, err := fbs.InitFramebuffer("unknown")
	test.ExpectSuccess(t, errors.Is(err, pipeline.ErrMissingResource))

	fbs.Configure(pipeline.FramebufferSpec{
		Name:        "target",
		Attachments: []pipeline.Attachment{{Slot: 0, Texture: 5}},
	})
	_, err = fbs.InitFramebuffer("target")
	test.ExpectSuccess(t, errors.Is(err, pipeline.ErrMissingResource))
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestDestroy(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 4
	cfg.Compare = true
	cfg.Debug = true
	p := create(t, rec, cfg)

	// destroy in the middle of a cycle
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectSuccess(t, p.Busy())
	p.Destroy()
	test.ExpectEquality(t, rec.Live(), 0)
	test.ExpectFailure(t, p.Busy())

	// calls after destruction have no effect
	p.Destroy()
	n := len(rec.Draws())
	test.ExpectFailure(t, p.ProcessAndDraw(frame(cfg, 2, capture.HaveEnoughData)))
	test.ExpectFailure(t, p.Tick())
	test.ExpectEquality(t, len(rec.Draws()), n)

	_, err := p.Readback()
	test.ExpectSuccess(t, errors.Is(err, pipeline.ErrDestroyed))
	test.ExpectSuccess(t, errors.Is(p.Rebuild(cfg), pipeline.ErrDestroyed))
}

func TestRebuild(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 2
	p := create(t, rec, cfg)
	defer p.Destroy()
	live := rec.Live()

	test.ExpectSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectSuccess(t, errors.Is(p.Rebuild(cfg), pipeline.ErrBusy))
	test.ExpectFailure(t, p.Tick())

	// failure leaves the pipeline untouched
	bad := cfg
	bad.MaxIterations = 0
	test.ExpectFailure(t, p.Rebuild(bad))
	test.ExpectEquality(t, p.Config().MaxIterations, 2)
	test.ExpectEquality(t, rec.Live(), live)

	// resources of the old configuration are released
	ncfg := pipeline.DefaultConfig(128, 128)
	ncfg.MaxIterations = 2
	test.DemandSuccess(t, p.Rebuild(ncfg))
	test.ExpectEquality(t, rec.Live(), live)
	test.ExpectEquality(t, p.Config().Width, 128)

	// stats survive the rebuild
	test.ExpectEquality(t, p.Stats().Cycles, 1)

	rec.ResetDraws()
	test.ExpectSuccess(t, p.ProcessAndDraw(frame(ncfg, 2, capture.HaveEnoughData)))
	test.ExpectEquality(t, rec.Draws()[0].Viewport, [4]int{0, 0, 16, 32})
}

func TestCanvasSize(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.CanvasWidth = 640
	cfg.CanvasHeight = 480
	p := create(t, rec, cfg)
	defer p.Destroy()

	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	draws := rec.Draws()
	test.DemandEquality(t, len(draws), 4)
	test.ExpectEquality(t, draws[3].Framebuffer, gpu.DefaultFramebuffer)
	test.ExpectEquality(t, draws[3].Viewport, [4]int{0, 0, 640, 480})
	test.ExpectEquality(t, draws[3].Program, p.ProgramHandle("copy"))
	test.ExpectEquality(t, p.ProgramName(draws[3].Program), "copy")
	test.ExpectEquality(t, p.PassName(draws[3].Framebuffer), "canvas")

	// handles that do not belong to the pipeline
	test.ExpectEquality(t, p.ProgramName(9999), "")
	test.ExpectEquality(t, p.PassName(9999), "")
}

func TestPresent(t *testing.T) {
	rec := recorder.NewRecorder()
	cfg := pipeline.DefaultConfig(64, 32)
	cfg.MaxIterations = 2
	p := create(t, rec, cfg)
	defer p.Destroy()

	// nothing to present before the first cycle has completed
	p.Present()
	test.ExpectEquality(t, len(rec.Draws()), 0)

	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)))
	test.ExpectEquality(t, p.Tick(), false)
	rec.ResetDraws()

	p.Present()
	test.ExpectEquality(t, passes(p, rec), "canvas")

	// the previous result can be presented while the next cycle is in progress
	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 2, capture.HaveEnoughData)))
	rec.ResetDraws()
	p.Present()
	test.ExpectEquality(t, passes(p, rec), "canvas")
	for p.Tick() {
	}

	// a rebuild discards the result. the stats are kept
	test.DemandSuccess(t, p.Rebuild(cfg))
	test.ExpectEquality(t, p.Stats().Cycles, 2)
	rec.ResetDraws()
	p.Present()
	test.ExpectEquality(t, len(rec.Draws()), 0)

	test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 3, capture.HaveEnoughData)))
	for p.Tick() {
	}
	rec.ResetDraws()
	p.Present()
	test.ExpectEquality(t, passes(p, rec), "canvas")
}
