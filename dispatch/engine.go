package dispatch

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/internal/logs"
	"github.com/gogpu/shade/shader"
)

const (
	defaultHighWaterMark = 256
	minEvictionAge       = 4

	// programCacheSize bounds the in-memory mirror of backend program
	// binaries (spec §6 "save/load... already-compiled version"), separate
	// from the compiled-pass eviction highWater governs: a program binary
	// can be reused to skip recompilation even after its compiledPass was
	// itself evicted.
	programCacheSize = 512
)

// Engine is the shader dispatch engine (spec component C). It is not safe
// for concurrent use (spec §5: "methods on a given... dispatch object must
// not be called concurrently").
type Engine struct {
	device gpu.Device
	caps   gpu.Caps
	logger *slog.Logger

	free   []*shader.Builder
	nextID uint64
	epoch  uint64

	entries      map[uint64][]*compiledPass
	highWater    int
	programCache *lru.Cache[uint64, []byte]
}

// New constructs a dispatch engine over device. A nil logger falls back to
// a no-op logger (spec Design Note: "Logging context is passed by
// dependency rather than captured globally").
func New(device gpu.Device, logger *slog.Logger) *Engine {
	programCache, _ := lru.New[uint64, []byte](programCacheSize)
	return &Engine{
		device:       device,
		caps:         device.Caps(),
		logger:       logs.OrDefault(logger),
		entries:      make(map[uint64][]*compiledPass),
		programCache: programCache,
		highWater:    defaultHighWaterMark,
	}
}

// Begin returns a reusable builder from the free-list, assigning a fresh
// identifier for name mangling when unique is true (spec §4.C "begin").
func (e *Engine) Begin(unique bool) *shader.Builder {
	var b *shader.Builder
	if n := len(e.free); n > 0 {
		b = e.free[n-1]
		e.free = e.free[:n-1]
	} else {
		b = shader.New()
	}
	if unique {
		e.nextID++
		b.SetID(e.nextID, true)
	}
	return b
}

// Abort returns the builder to the free-list without dispatching it
// (spec §4.C "abort").
func (e *Engine) Abort(b *shader.Builder) {
	e.release(b)
}

// ResetFrame bumps the eviction epoch and resets per-frame identifier
// allocation (spec §4.C "reset_frame").
func (e *Engine) ResetFrame() {
	e.epoch++
	e.nextID = 0
}

// Finish dispatches shader so it writes a 2D region of a renderable target.
// On a storable target when the backend supports parallel compute, the
// fragment shader is transparently promoted to a 16x16 compute shader
// (spec §4.C "finish").
func (e *Engine) Finish(b *shader.Builder, target gpu.Texture, rect gpu.Rect, blend gpu.BlendParams, timer gpu.Timer) error {
	defer e.release(b)

	if e.device.IsFailed() {
		return ErrDeviceFailed
	}

	kind := gpu.PassKindRaster
	if target.Storable() && e.caps.SupportsComputePromotion() {
		kind = gpu.PassKindCompute
	}

	cp, err := e.findOrCompile(b, kind, target.Format(), blend, gpu.LoadActionLoad, false, 0)
	if err != nil || cp.pass == nil {
		return ErrNullPass
	}
	cp.lastUseEpoch = e.epoch

	pc, ubo, globals := applyVariableUpload(b.Variables, cp)
	if cp.uboBuffer != nil && len(ubo) > 0 {
		if err := cp.uboBuffer.Write(0, ubo); err != nil {
			return err
		}
	}

	params := gpu.RunParams{
		Target:         target,
		Rect:           rect,
		PushConstants:  pc,
		UniformBuffer:  cp.uboBuffer,
		GlobalUniforms: globals,
		Timer:          timer,
	}
	if kind == gpu.PassKindCompute {
		w, h := rect.Width(), rect.Height()
		params.GroupCounts = [3]uint32{
			uint32((w + computePromotionTileSize - 1) / computePromotionTileSize),
			uint32((h + computePromotionTileSize - 1) / computePromotionTileSize),
			1,
		}
	}
	return cp.pass.Run(params)
}

// Compute dispatches a compute shader without a framebuffer target
// (spec §4.C "compute").
func (e *Engine) Compute(b *shader.Builder, groupCounts [3]uint32, timer gpu.Timer) error {
	defer e.release(b)

	if e.device.IsFailed() {
		return ErrDeviceFailed
	}

	cp, err := e.findOrCompile(b, gpu.PassKindCompute, gpu.FormatInvalid, gpu.BlendParams{}, gpu.LoadActionDontCare, false, 0)
	if err != nil || cp.pass == nil {
		return ErrNullPass
	}
	cp.lastUseEpoch = e.epoch

	pc, ubo, globals := applyVariableUpload(b.Variables, cp)
	if cp.uboBuffer != nil && len(ubo) > 0 {
		if err := cp.uboBuffer.Write(0, ubo); err != nil {
			return err
		}
	}

	params := gpu.RunParams{
		GroupCounts:    groupCounts,
		PushConstants:  pc,
		UniformBuffer:  cp.uboBuffer,
		GlobalUniforms: globals,
		Timer:          timer,
	}
	return cp.pass.Run(params)
}

// VertexParams bundles the extra arguments Vertex needs beyond the common
// shader/target/blend triple (spec §4.C "vertex").
type VertexParams struct {
	Target      gpu.Texture
	VertexData  []byte
	VertexCount int
	Stride      uint32
	Blend       gpu.BlendParams
	Scissor     gpu.Rect
	Flipped     [2]bool
	Timer       gpu.Timer
}

// Vertex dispatches a user-supplied vertex stream (spec §4.C "vertex").
func (e *Engine) Vertex(b *shader.Builder, p VertexParams) error {
	defer e.release(b)

	if e.device.IsFailed() {
		return ErrDeviceFailed
	}

	cp, err := e.findOrCompile(b, gpu.PassKindRaster, p.Target.Format(), p.Blend, gpu.LoadActionLoad, true, p.Stride)
	if err != nil || cp.pass == nil {
		return ErrNullPass
	}
	cp.lastUseEpoch = e.epoch

	pc, ubo, globals := applyVariableUpload(b.Variables, cp)
	if cp.uboBuffer != nil && len(ubo) > 0 {
		if err := cp.uboBuffer.Write(0, ubo); err != nil {
			return err
		}
	}

	params := gpu.RunParams{
		Target:         p.Target,
		PushConstants:  pc,
		UniformBuffer:  cp.uboBuffer,
		GlobalUniforms: globals,
		VertexData:     p.VertexData,
		VertexCount:    p.VertexCount,
		Scissor:        p.Scissor,
		Flipped:        p.Flipped,
		Timer:          p.Timer,
	}
	return cp.pass.Run(params)
}
