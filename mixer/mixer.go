package mixer

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/shade/framecache"
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/internal/logs"
	"github.com/gogpu/shade/planner"
	"github.com/gogpu/shade/shader"
)

// cacheFormat is the working format every frame-cache slot is allocated
// in: half-float so HDR source material survives the cache round-trip
// without being re-quantized before compositing.
const cacheFormat = gpu.FormatRGBA16Float

// Input is one entry in a mixer call's time-indexed frame bundle (spec
// §4.G "Mixer contract"). PresentationTime is expressed relative to the
// "current" output moment: negative is past, positive is future.
type Input struct {
	Frame            *frameio.Frame
	Signature        uint64
	PresentationTime float64
}

// Params bundles one mixer call's configuration.
type Params struct {
	Mode          Mode
	Kernel        KernelConfig
	VsyncDuration float64

	// Render is the single-image render params applied both when
	// repopulating a cache slot for one input, and for the final
	// composite's output conversion (spec §4.G hands the composite off to
	// "the planner's output phase", which needs the same params any other
	// Render call does).
	Render planner.RenderParams

	// PreserveCache, when set, reuses a cache hit's texture unconditionally,
	// skipping the params-hash check entirely (spec §4.G "Cache reuse":
	// left to the caller even though it admits visibly incorrect output if
	// parameters changed mid-playback — see DESIGN.md Open Question).
	PreserveCache bool
}

// Mixer is the time-indexed frame mixer (spec component G). It drives a
// planner.Planner it does not own, and owns its own framecache.Cache.
type Mixer struct {
	planner *planner.Planner
	cache   *framecache.Cache
	logger  *slog.Logger
}

// New constructs a Mixer over p, sharing p's device and pool.
func New(p *planner.Planner, logger *slog.Logger) *Mixer {
	return &Mixer{
		planner: p,
		cache:   framecache.New(p.Device(), logger),
		logger:  logs.OrDefault(logger),
	}
}

// Destroy releases the mixer's frame cache. The underlying planner is the
// caller's to destroy.
func (m *Mixer) Destroy() { m.cache.Destroy() }

// Render mixes inputs into dst and reports success (spec §4.E/§4.G "every
// public entry point returns a boolean success indicator"). Called with no
// inputs it returns false; on any later failure it trips the mixing latch
// and falls back to rendering the "current" input directly through the
// single-image planner.
func (m *Mixer) Render(inputs []Input, dst *frameio.Frame, params Params) bool {
	if len(inputs) == 0 {
		m.logger.Error("mixer: render called with no inputs")
		return false
	}

	outW, outH := referenceSize(dst)
	if outW == 0 || outH == 0 {
		return m.fallback(inputs, dst, params, fmt.Errorf("mixer: target frame has no planes"))
	}

	caps := m.planner.Device().FormatCaps(cacheFormat)
	if !caps.SupportsBoth() {
		return m.fallback(inputs, dst, params, fmt.Errorf("mixer: cache format %v unsupported on this device", cacheFormat))
	}

	times := make([]float64, len(inputs))
	for i, in := range inputs {
		times[i] = in.PresentationTime
	}
	weights := computeWeights(params.Mode, times, params.VsyncDuration, params.Kernel)
	hash := planner.ParamsHash(params.Render)

	m.cache.MarkAll()

	type realized struct {
		entry  *framecache.Entry
		weight float64
	}
	realizedInputs := make([]realized, 0, len(inputs))

	// Every input is scanned and its cache slot marked-live regardless of
	// weight, per spec §8's GC invariant ("...OR were outside the filter
	// radius but still referenced"); only the final composite list drops
	// negligible weights.
	for i, in := range inputs {
		entry, hit := m.cache.Lookup(in.Signature)
		reusable := hit && (params.PreserveCache ||
			(entry.Texture.Width() == outW && entry.Texture.Height() == outH && entry.ParamsHash == hash))

		if !reusable {
			e, err := m.cache.EnsureSize(in.Signature, outW, outH, cacheFormat)
			if err != nil {
				return m.fallback(inputs, dst, params, err)
			}
			target := singlePlaneRGBFrame(e.Texture, in.Frame.Space)
			if !m.planner.Render(in.Frame, target, in.Signature, params.Render) {
				return m.fallback(inputs, dst, params, fmt.Errorf("mixer: failed to populate cache for signature %d", in.Signature))
			}
			e.ParamsHash = hash
			e.ColorSpace = in.Frame.Space
			e.ICCProfile = nil
			entry = e
		}
		realizedInputs = append(realizedInputs, realized{entry: entry, weight: weights[i]})
	}

	m.cache.Sweep(m.planner.Pool())

	var composite []realized
	var totalWeight float64
	for _, r := range realizedInputs {
		if math.Abs(r.weight) > negligibleWeight {
			composite = append(composite, r)
			totalWeight += r.weight
		}
	}
	if len(composite) == 0 || totalWeight == 0 {
		return m.fallback(inputs, dst, params, fmt.Errorf("mixer: no input had non-negligible weight"))
	}

	// A composite entry's texture can differ from the output size only when
	// PreserveCache forced reuse of a stale-size cache slot; the composite
	// shader's texture() sample then needs the same hardware linear-sampling
	// guarantee main scale requires (spec §4.G "Use linear sampling when the
	// cached texture's dimensions differ from the output and the format
	// supports it"). When the format can't provide it, fall back to the
	// single-image renderer rather than hand-rolling a resample in the
	// composite shader.
	for _, r := range composite {
		if r.entry.Texture.Width() != outW || r.entry.Texture.Height() != outH {
			if !caps.LinearSampling {
				m.planner.Latches.LinearSampling.Trip(m.logger, fmt.Errorf("mixer: cache format %v lacks hardware linear sampling for a mismatched-size entry", cacheFormat))
				return m.fallback(inputs, dst, params, fmt.Errorf("mixer: cannot composite mismatched-size cache entry without linear sampling"))
			}
			break
		}
	}

	engine := m.planner.Engine()
	b := engine.Begin(false)
	b.Body().WriteString("vec4 mix_accum = vec4(0.0);\n")

	for i, r := range composite {
		name := fmt.Sprintf("mix_cache%d", i)
		b.AddDescriptor(shader.Descriptor{Name: name, Kind: shader.DescriptorSampler2D, Binding: i})
		b.Body().WriteString("{\n")
		b.Body().Writef("vec4 color = texture(%s, uv);\n", name)
		if params.Render.Generators.DecodeColor != nil {
			srcRepr := frameio.ColorRepr{System: frameio.ColorSystemRGB, Levels: frameio.LevelsFull, Alpha: frameio.AlphaStraight}
			if err := params.Render.Generators.DecodeColor(b, srcRepr, r.entry.ColorSpace); err != nil {
				engine.Abort(b)
				return m.fallback(inputs, dst, params, err)
			}
		}
		b.Body().Writef("mix_accum += float(%g) * color;\n", r.weight/totalWeight)
		b.Body().WriteString("}\n")
	}
	b.Body().WriteString("vec4 color = mix_accum;\n")

	// Mix color space basis: the "current" frame's color space but forced
	// to RGB/full/premultiplied (spec §4.G "arbitrarily: the 'current'
	// frame's color space...").
	mixRepr := frameio.ColorRepr{System: frameio.ColorSystemRGB, Levels: frameio.LevelsFull, Alpha: frameio.AlphaPremultiplied}
	mixSpace := currentInput(inputs).Frame.Space
	img := frameio.NewShaderImg(b, outW, outH, mixRepr, mixSpace, 4)

	dstPixels := gpu.Rect{X0: 0, Y0: 0, X1: outW, Y1: outH}
	if !m.planner.RenderFromShader(img, dst, dstPixels, false, false, params.Render) {
		return m.fallback(inputs, dst, params, fmt.Errorf("mixer: output phase failed"))
	}
	return true
}

// fallback trips the mixing latch and recursively renders the "current"
// input directly (spec §4.G "Fallback": "set the mixing-disabled latch and
// recursively call the single-image renderer with the 'current' frame").
func (m *Mixer) fallback(inputs []Input, dst *frameio.Frame, params Params, cause error) bool {
	m.planner.Latches.Mixing.Trip(m.logger, cause)
	cur := currentInput(inputs)
	return m.planner.Render(cur.Frame, dst, cur.Signature, params.Render)
}

// currentInput returns the input whose presentation time is closest to
// "now" (abs(PresentationTime) minimal), the Open Question resolution for
// both the mix color space basis and the fallback target (spec §4.G
// leaves "current frame" undefined; DESIGN.md records this choice).
func currentInput(inputs []Input) Input {
	best := inputs[0]
	bestAbs := math.Abs(best.PresentationTime)
	for _, in := range inputs[1:] {
		if a := math.Abs(in.PresentationTime); a < bestAbs {
			best, bestAbs = in, a
		}
	}
	return best
}

// referenceSize returns the widest/tallest plane's texture dimensions,
// mirroring planner's referencePlaneSize (unexported there, so mixer
// carries its own copy rather than widening that package's surface for a
// one-line helper).
func referenceSize(f *frameio.Frame) (w, h int) {
	for _, pl := range f.Planes {
		if pl.Texture.Width() > w {
			w = pl.Texture.Width()
		}
		if pl.Texture.Height() > h {
			h = pl.Texture.Height()
		}
	}
	return w, h
}

// singlePlaneRGBFrame wraps tex as a synthetic one-plane full-range RGB
// target frame in the given color space with no ICC profile (spec §4.G
// "the cached texture wrapped as a synthetic single-plane RGB full-range
// target in the source's native color space with ICC profile stripped").
func singlePlaneRGBFrame(tex gpu.Texture, space frameio.ColorSpace) *frameio.Frame {
	return &frameio.Frame{
		Planes: []*frameio.Plane{
			{
				Texture:    tex,
				Components: 4,
				Mapping:    [4]frameio.ChannelID{frameio.ChannelR, frameio.ChannelG, frameio.ChannelB, frameio.ChannelA},
			},
		},
		Repr:  frameio.ColorRepr{System: frameio.ColorSystemRGB, Levels: frameio.LevelsFull, Alpha: frameio.AlphaStraight, SampleDepth: tex.Format().ComponentDepth(), ColorDepth: tex.Format().ComponentDepth()},
		Space: space,
	}
}
