package planner

import (
	"log/slog"

	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/internal/logs"
	"github.com/gogpu/shade/texpool"
)

// Planner is the render pipeline planner (spec component E). It owns the
// dispatch engine, the intermediate texture pool, and the degradation
// latches, all of which persist for Planner's lifetime (spec §4.E
// "Degradation policy": "Latches persist for the planner's lifetime").
type Planner struct {
	device gpu.Device
	engine *dispatch.Engine
	pool   *texpool.Pool
	logger *slog.Logger

	Latches *Latches

	// peakBufs holds one persistent peak-detect gpu.Buffer per distinct
	// source frame signature (SPEC_FULL §3 "Peak-detect persistent
	// buffer").
	peakBufs map[uint64]gpu.Buffer
}

// New constructs a Planner over device.
func New(device gpu.Device, logger *slog.Logger) *Planner {
	return &Planner{
		device:   device,
		engine:   dispatch.New(device, logger),
		pool:     texpool.New(device),
		logger:   logs.OrDefault(logger),
		Latches:  NewLatches(),
		peakBufs: make(map[uint64]gpu.Buffer),
	}
}

// Engine exposes the underlying dispatch engine, used by mixer to share the
// same compiled-pass cache when compositing.
func (p *Planner) Engine() *dispatch.Engine { return p.engine }

// Pool exposes the underlying intermediate texture pool, used by mixer and
// framecache to share recyclable textures with the planner.
func (p *Planner) Pool() *texpool.Pool { return p.pool }

// Device exposes the underlying GPU device, used by framecache to create
// and destroy its own persistent cached-frame textures (spec §3 "Cached
// frame": lifetime outlives any single Pool.Reset, so cache textures are
// not pool slots).
func (p *Planner) Device() gpu.Device { return p.device }

// ResetPeakDetect discards the persistent peak-detect buffer for signature,
// forcing a fresh detection pass next time that source is rendered (spec
// GLOSSARY "Peak detect"; SPEC_FULL §3).
func (p *Planner) ResetPeakDetect(signature uint64) {
	if buf, ok := p.peakBufs[signature]; ok {
		p.device.DestroyBuffer(buf)
		delete(p.peakBufs, signature)
	}
}

// Destroy releases the intermediate texture pool and every persistent
// peak-detect buffer (spec §5 "Lifetime").
func (p *Planner) Destroy() {
	p.pool.Destroy()
	for sig, buf := range p.peakBufs {
		p.device.DestroyBuffer(buf)
		delete(p.peakBufs, sig)
	}
}

// Render is the planner's single entry point (spec §4.E "Contract"): given
// a source frame, a target frame, and a parameter bundle, it runs the nine
// phases and reports success (spec §7: "every public entry point returns a
// boolean success indicator").
func (p *Planner) Render(src, dst *frameio.Frame, sourceSignature uint64, params RenderParams) bool {
	if p.device.IsFailed() {
		p.logger.Error("planner: backend device has failed")
		return false
	}

	// Phase 1: validate & infer.
	refSrc, srcPlaneTypes, err := p.validateAndInfer(src)
	if err != nil {
		p.logger.Error("planner: source frame validation failed", "error", err)
		return false
	}
	refDst, _, err := p.validateAndInfer(dst)
	if err != nil {
		p.logger.Error("planner: target frame validation failed", "error", err)
		return false
	}

	// Phase 2: rect normalization.
	srcCrop := src.InferCrop(refSrc)
	dstCrop := dst.InferCrop(refDst)
	targetTex := dst.Planes[refDst].Texture
	adjustedSrc, dstPixels, flipX, flipY := normalizeRects(srcCrop, dstCrop, targetTex.Width(), targetTex.Height())

	p.pool.Reset()

	// ps is the pass-state (spec §3 "Pass-state"): per-call scratch carrying
	// the current Img forward through every phase alongside the rects and
	// plane types derived above.
	ps := frameio.NewPassState(nil, adjustedSrc, gpuRectToFrameRect(dstPixels), srcPlaneTypes)

	// Phases 3-4: plane read & combine.
	img, _, err := p.planeReadAndCombine(src, srcPlaneTypes, ps.SrcRect, params)
	if err != nil {
		p.logger.Error("planner: plane read failed", "error", err)
		return false
	}
	ps.Img = img

	// Phase 5: input color conversion.
	ps.Img, err = p.inputColorConvert(ps.Img, src, params)
	if err != nil {
		p.logger.Error("planner: input color conversion failed", "error", err)
		return false
	}

	// Phase 6: HDR peak detect.
	ps.Img = p.peakDetectPhase(ps.Img, sourceSignature, src.Space, dst.Space, params)

	// Phase 7: main scale.
	ps.Img, err = p.mainScale(ps.Img, dstPixels.Width(), dstPixels.Height(), dst, params)
	if err != nil {
		p.logger.Error("planner: main scale failed", "error", err)
		return false
	}

	// Phase 8: output color conversion.
	ps.Img, err = p.outputColorConvert(ps.Img, dst, params)
	if err != nil {
		p.logger.Error("planner: output color conversion failed", "error", err)
		return false
	}

	// Phase 9: write to target planes.
	if err := p.writeTargetPlanes(ps.Img, dst, dstPixels, flipX, flipY, params); err != nil {
		p.logger.Error("planner: write to target planes failed", "error", err)
		return false
	}

	return true
}

// RenderFromShader runs only the output half of the pipeline (phases 8-9:
// output color conversion and the write to target planes) against an
// already-composited img, skipping source read/scale entirely. Used by
// mixer, which builds its own composite-color shader body directly and
// hands it to the planner only for the final color conversion and plane
// write (spec §4.G "hand off to the planner's output phase").
func (p *Planner) RenderFromShader(img *frameio.Img, dst *frameio.Frame, dstPixels gpu.Rect, flipX, flipY bool, params RenderParams) bool {
	if p.device.IsFailed() {
		p.logger.Error("planner: backend device has failed")
		return false
	}

	out, err := p.outputColorConvert(img, dst, params)
	if err != nil {
		p.logger.Error("planner: output color conversion failed", "error", err)
		return false
	}
	if err := p.writeTargetPlanes(out, dst, dstPixels, flipX, flipY, params); err != nil {
		p.logger.Error("planner: write to target planes failed", "error", err)
		return false
	}
	return true
}

func gpuRectToFrameRect(r gpu.Rect) frameio.Rect {
	return frameio.Rect{X0: float64(r.X0), Y0: float64(r.Y0), X1: float64(r.X1), Y1: float64(r.Y1)}
}

func defaultBlend() gpu.BlendParams { return gpu.BlendParams{} }
