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

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/gpu"
	"github.com/Dodotree/zebra-sub000/logger"
	"github.com/Dodotree/zebra-sub000/pipeline/shaders"
)

// texture units. every texture has a unit of its own
const (
	slotSource = iota
	slotPacked
	slotCoords
	slotDilated
	slotUnpacked
	slotHistory
	slotDifference

	// second dilation target. only present when there is more than one
	// iteration
	slotDilatedReturn
)

// names of programs
const (
	programPack    = "pack"
	programDilate  = "dilate"
	programCompare = "compare"
	programUnpack  = "unpack"
	programCopy    = "copy"
)

// names of framebuffers
const (
	fboPacking        = "packing"
	fboDilation       = "dilation"
	fboDilationReturn = "dilation-return"
	fboComparison     = "comparison"
	fboHistory        = "history"
	fboUnpacking      = "unpacking"
)

// Stats are counters maintained by the pipeline.
type Stats struct {
	// frames that started a processing cycle
	Accepted int

	// frames that arrived while a processing cycle was in progress
	Dropped int

	// frames that were not decodable or did not match the source texture
	Skipped int

	// processing cycles that reached the end of the unpack pass
	Cycles int

	// number of frames that differed from the previous frame. compare mode
	// only
	Changed int

	// passes issued and the number of passes that raised an error
	Passes int
	Failed int
}

// Pipeline is the orchestrator of the processing passes.
type Pipeline struct {
	ctx      gpu.Context
	provider *shaders.Provider
	cfg      Config

	programs     map[string]*Program
	textures     map[int]*Texture
	framebuffers *Framebuffers
	geometry     *Geometry
	query        gpu.Query

	session *session
	stats   Stats

	// result of the most recent comparison
	changed bool

	// the unpacked texture holds the result of a cycle. textures created by
	// a rebuild start empty so this is never carried over
	hasResult bool

	destroyed bool

	owner owner
}

// New creates every resource required by the pipeline. If provider is nil a
// provider for the dialect of the context will be created.
//
// Errors are fatal and no resources are left allocated. The error will wrap
// one of CompileError, LinkError, FramebufferIncompleteError,
// ErrLinearFilter, ErrInvalidConfig or ErrMissingResource.
func New(ctx gpu.Context, provider *shaders.Provider, cfg Config) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if provider == nil {
		provider = shaders.NewProvider(ctx.Info().Dialect)
	}

	p := &Pipeline{
		ctx:      ctx,
		provider: provider,
		cfg:      cfg,
		programs: make(map[string]*Program),
		textures: make(map[int]*Texture),
		owner:    newOwner(),
	}
	p.framebuffers = NewFramebuffers(ctx, p.textures)

	if err := p.build(); err != nil {
		p.release()
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	w, h := cfg.PackedSize()
	logger.Logf(logger.Allow, "pipeline", "created for %dx%d (packed %dx%d, %d iterations)", cfg.Width, cfg.Height, w, h, cfg.MaxIterations)

	return p, nil
}

func (p *Pipeline) build() error {
	var err error

	p.geometry, err = NewGeometry(p.ctx)
	if err != nil {
		return err
	}

	if err := p.buildPrograms(); err != nil {
		return err
	}

	if err := p.buildTextures(); err != nil {
		return err
	}

	if err := p.buildFramebuffers(); err != nil {
		return err
	}

	if p.cfg.Compare {
		p.query = p.ctx.CreateQuery()
	}

	if err := p.ctx.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingResource, err)
	}

	return nil
}

func (p *Pipeline) buildPrograms() error {
	type def struct {
		name     string
		shader   string
		uniforms []string
	}

	defs := []def{
		{name: programPack, shader: shaders.Pack, uniforms: []string{"source", "sourceSize", "channels", "threshold"}},
		{name: programDilate, shader: shaders.Dilate, uniforms: []string{"mask", "maskSize"}},
		{name: programUnpack, shader: shaders.Unpack, uniforms: []string{"mask"}},
		{name: programCopy, shader: shaders.Copy, uniforms: []string{"image"}},
	}
	if p.cfg.Compare {
		defs = append(defs, def{name: programCompare, shader: shaders.Compare, uniforms: []string{"mask", "history"}})
	}

	var defines []string
	if p.cfg.Debug {
		defines = append(defines, "COORDS")
	}

	vert, err := p.provider.Source(shaders.Quad, defines...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingResource, err)
	}

	for _, d := range defs {
		frag, err := p.provider.Source(d.shader, defines...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMissingResource, err)
		}

		prg, err := NewProgram(p.ctx, d.name, vert, frag)
		if err != nil {
			return err
		}
		p.programs[d.name] = prg

		prg.BindLocations([]string{"position"}, d.uniforms)
	}

	return nil
}

func (p *Pipeline) buildTextures() error {
	pw, ph := p.cfg.PackedSize()

	specs := map[int]TextureSpec{
		slotSource: {
			Width: p.cfg.Width, Height: p.cfg.Height, Depth: p.cfg.SourceDepth,
			Mode: Video, Sampling: gpu.NearestClamp,
		},
		slotPacked: {
			Width: pw, Height: ph, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		},
		slotDilated: {
			Width: pw, Height: ph, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		},
		slotUnpacked: {
			Width: p.cfg.Width, Height: p.cfg.Height, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		},
	}

	if p.cfg.Debug {
		specs[slotCoords] = TextureSpec{
			Width: pw, Height: ph, Float: true,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		}
	}

	if p.cfg.Compare {
		specs[slotHistory] = TextureSpec{
			Width: pw, Height: ph, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		}
		specs[slotDifference] = TextureSpec{
			Width: pw, Height: ph, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		}
	}

	if p.cfg.MaxIterations > 1 {
		specs[slotDilatedReturn] = TextureSpec{
			Width: pw, Height: ph, Depth: 32,
			Mode: RenderTarget, Sampling: gpu.NearestClamp,
		}
	}

	// create in order of texture unit so that the order of GPU calls is
	// predictable
	for slot := slotSource; slot <= slotDilatedReturn; slot++ {
		spec, ok := specs[slot]
		if !ok {
			continue
		}

		tex, err := NewTexture(p.ctx, slot, spec)
		if err != nil {
			return err
		}
		p.textures[slot] = tex

		if err := tex.Init(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) buildFramebuffers() error {
	packing := FramebufferSpec{Name: fboPacking, Attachments: []Attachment{{Slot: 0, Texture: slotPacked}}}
	if p.cfg.Debug {
		packing.Attachments = append(packing.Attachments, Attachment{Slot: 1, Texture: slotCoords})
	}

	specs := []FramebufferSpec{
		packing,
		{Name: fboDilation, Attachments: []Attachment{{Slot: 0, Texture: slotDilated}}},
		{Name: fboUnpacking, Attachments: []Attachment{{Slot: 0, Texture: slotUnpacked}}},
	}

	// ping-pong is only needed when there is more than one dilation pass. the
	// packed texture is never written to after the packing pass
	if p.cfg.MaxIterations > 1 {
		specs = append(specs, FramebufferSpec{Name: fboDilationReturn, Attachments: []Attachment{{Slot: 0, Texture: slotDilatedReturn}}})
	}

	if p.cfg.Compare {
		specs = append(specs,
			FramebufferSpec{Name: fboComparison, Attachments: []Attachment{{Slot: 0, Texture: slotDifference}}},
			FramebufferSpec{Name: fboHistory, Attachments: []Attachment{{Slot: 0, Texture: slotHistory}}},
		)
	}

	for _, s := range specs {
		p.framebuffers.Configure(s)
		if _, err := p.framebuffers.InitFramebuffer(s.Name); err != nil {
			return err
		}
	}

	return nil
}

// release every resource. safe to call on a partially built pipeline.
func (p *Pipeline) release() {
	p.framebuffers.Destroy()
	for _, tex := range p.textures {
		tex.Destroy()
	}
	for _, prg := range p.programs {
		prg.Destroy()
	}
	if p.geometry != nil {
		p.geometry.Destroy()
	}
	if p.query != 0 {
		p.ctx.DeleteQuery(p.query)
		p.query = 0
	}

	// the textures map is shared with the framebuffers table so it is
	// cleared rather than replaced
	for k := range p.textures {
		delete(p.textures, k)
	}
	p.programs = make(map[string]*Program)
	p.geometry = nil
}

// Destroy releases every GPU resource. An in-progress processing cycle is
// abandoned. Calls after the first have no effect.
func (p *Pipeline) Destroy() {
	p.owner.check()
	if p.destroyed {
		return
	}
	p.release()
	p.session = nil
	p.destroyed = true
	logger.Log(logger.Allow, "pipeline", "destroyed")
}

// Rebuild replaces the resources of the pipeline with resources created for
// a new configuration. Rebuild cannot be called while a processing cycle is in
// progress. If creation fails the pipeline is unchanged. Stats are
// preserved.
func (p *Pipeline) Rebuild(cfg Config) error {
	p.owner.check()
	if p.destroyed {
		return fmt.Errorf("pipeline: %w", ErrDestroyed)
	}
	if p.session != nil {
		return fmt.Errorf("pipeline: %w", ErrBusy)
	}

	np, err := New(p.ctx, p.provider, cfg)
	if err != nil {
		return err
	}

	// stats describe the lifetime of the pipeline and survive the rebuild.
	// the previous result does not
	stats := p.stats
	p.release()
	*p = *np
	p.stats = stats

	return nil
}

// Config returns the configuration of the pipeline.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// State returns the current state of the processing cycle.
func (p *Pipeline) State() State {
	if p.session == nil {
		return Idle
	}
	return p.session.state
}

// Busy returns true if a processing cycle is in progress.
func (p *Pipeline) Busy() bool {
	return p.session != nil
}

// Stats returns a copy of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Changed returns true if the most recent comparison found a difference
// between frames. Always false if the Compare option is not set.
func (p *Pipeline) Changed() bool {
	return p.changed
}

// ProcessAndDraw starts a processing cycle for the frame. The frame is
// ignored if a cycle is already in progress or if the frame cannot be used.
// Returns true if the frame has started a new cycle.
//
// Depending on configuration the cycle may complete before the function
// returns. Otherwise, the cycle continues with calls to Tick().
func (p *Pipeline) ProcessAndDraw(frame capture.Frame) bool {
	p.owner.check()

	if p.destroyed {
		return false
	}

	if p.session != nil {
		p.stats.Dropped++
		return false
	}

	if !p.textures[slotSource].Update(frame) {
		p.stats.Skipped++
		return false
	}

	p.stats.Accepted++
	p.session = &session{
		state: Packing,
		max:   p.cfg.MaxIterations,
		mask:  slotPacked,
		frame: frame.Sequence,
	}

	p.advance()

	return true
}

// Tick continues an in-progress processing cycle. It should be called once
// per display refresh. Returns true if the cycle is still in progress after
// the tick.
func (p *Pipeline) Tick() bool {
	p.owner.check()

	if p.destroyed || p.session == nil {
		return false
	}

	p.advance()

	return p.session != nil
}

// advance the state machine until the session yields or completes.
func (p *Pipeline) advance() {
	for p.session != nil {
		s := p.session

		switch s.state {
		case Packing:
			p.pack()
			s.state = Iterating
			s.count = 0

		case Iterating:
			p.dilate()
			s.count++
			if s.count < s.max {
				// continue on the next tick
				return
			}
			if p.cfg.Compare {
				s.state = Comparing
			} else {
				s.state = Unpacking
			}

		case Comparing:
			if !p.compare() {
				return
			}
			s.state = Unpacking

		case Unpacking:
			p.unpack()
			p.session = nil
			p.stats.Cycles++

		default:
			logger.Logf(logger.Allow, "pipeline", "abandoning cycle in unexpected state: %s", s)
			p.session = nil
		}
	}
}

func (p *Pipeline) pack() {
	fb, _ := p.framebuffers.Get(fboPacking)
	pw, ph := p.cfg.PackedSize()

	channels := int32(p.textures[slotSource].Format().Channels())

	p.executePass(PassDescriptor{
		Name:        fboPacking,
		Program:     p.programs[programPack],
		Framebuffer: fb,
		Width:       pw,
		Height:      ph,
		DrawBuffers: fb.DrawBuffers(),
		Inputs:      []Input{{Uniform: "source", Texture: slotSource}},
		Uniforms: []Uniform{
			{Name: "sourceSize", Value: [2]float32{float32(p.cfg.Width), float32(p.cfg.Height)}},
			{Name: "channels", Value: channels},
			{Name: "threshold", Value: p.cfg.Threshold},
		},
	})

	p.session.mask = slotPacked
}

func (p *Pipeline) dilate() {
	s := p.session

	// the first pass reads the packed mask. after that the passes alternate
	// between the two dilation textures
	name, to := fboDilation, slotDilated
	if s.count%2 == 1 {
		name, to = fboDilationReturn, slotDilatedReturn
	}
	from := s.mask

	fb, _ := p.framebuffers.Get(name)
	pw, ph := p.cfg.PackedSize()

	p.executePass(PassDescriptor{
		Name:        name,
		Program:     p.programs[programDilate],
		Framebuffer: fb,
		Width:       pw,
		Height:      ph,
		DrawBuffers: fb.DrawBuffers(),
		Inputs:      []Input{{Uniform: "mask", Texture: from}},
		Uniforms: []Uniform{
			{Name: "maskSize", Value: [2]float32{float32(pw), float32(ph)}},
		},
	})

	s.mask = to
}

// compare issues the comparison pass on the first call. subsequent calls
// check for the result of the query. returns true when the result is known.
func (p *Pipeline) compare() bool {
	s := p.session

	if !s.queryIssued {
		pw, ph := p.cfg.PackedSize()

		cmp, _ := p.framebuffers.Get(fboComparison)
		p.ctx.BeginQuery(p.query)
		p.executePass(PassDescriptor{
			Name:        fboComparison,
			Program:     p.programs[programCompare],
			Framebuffer: cmp,
			Width:       pw,
			Height:      ph,
			DrawBuffers: cmp.DrawBuffers(),
			Inputs: []Input{
				{Uniform: "mask", Texture: s.mask},
				{Uniform: "history", Texture: slotHistory},
			},
		})
		p.ctx.EndQuery()

		// the current mask becomes the history for the next frame
		hist, _ := p.framebuffers.Get(fboHistory)
		p.executePass(PassDescriptor{
			Name:        fboHistory,
			Program:     p.programs[programCopy],
			Framebuffer: hist,
			Width:       pw,
			Height:      ph,
			DrawBuffers: hist.DrawBuffers(),
			Inputs:      []Input{{Uniform: "image", Texture: s.mask}},
		})

		s.queryIssued = true
		return false
	}

	if !p.ctx.QueryResultAvailable(p.query) {
		return false
	}

	p.changed = p.ctx.QueryResult(p.query) > 0
	if p.changed {
		p.stats.Changed++
	}

	return true
}

func (p *Pipeline) unpack() {
	fb, _ := p.framebuffers.Get(fboUnpacking)

	p.executePass(PassDescriptor{
		Name:        fboUnpacking,
		Program:     p.programs[programUnpack],
		Framebuffer: fb,
		Width:       p.cfg.Width,
		Height:      p.cfg.Height,
		DrawBuffers: fb.DrawBuffers(),
		Inputs:      []Input{{Uniform: "mask", Texture: p.session.mask}},
	})
	p.hasResult = true

	p.present()
}

// Present draws the result of the most recent processing cycle to the
// canvas. The end of every cycle draws to the canvas so Present() is only
// needed by hosts that do not preserve the canvas between refreshes.
//
// Nothing is drawn until a cycle has completed since the pipeline was created
// or last rebuilt.
func (p *Pipeline) Present() {
	p.owner.check()

	if p.destroyed || !p.hasResult {
		return
	}

	p.present()
}

func (p *Pipeline) present() {
	cw, ch := p.cfg.CanvasSize()
	p.executePass(PassDescriptor{
		Name:    "canvas",
		Program: p.programs[programCopy],
		Width:   cw,
		Height:  ch,
		Inputs:  []Input{{Uniform: "image", Texture: slotUnpacked}},
	})
}

// PassName returns the name of the pass that draws to the framebuffer. Draws
// to the default framebuffer are named "canvas". An empty string is returned
// for framebuffers that do not belong to the pipeline.
func (p *Pipeline) PassName(fbo gpu.Framebuffer) string {
	if fbo == gpu.DefaultFramebuffer {
		return "canvas"
	}
	if p.framebuffers == nil {
		return ""
	}
	for _, n := range p.framebuffers.Names() {
		if fb, ok := p.framebuffers.Get(n); ok && fb.handle == fbo {
			return n
		}
	}
	return ""
}

// ProgramName returns the name of the program or an empty string if the
// program does not belong to the pipeline.
func (p *Pipeline) ProgramName(prg gpu.Program) string {
	for n, v := range p.programs {
		if v.handle == prg {
			return n
		}
	}
	return ""
}
