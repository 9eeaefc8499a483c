package dispatch

import (
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// compiledPass is the dispatch engine's cache entry: a compiled backend pass
// (or a null pass after a failed compile), its variable placement table, an
// optional uniform buffer, and per-variable last-uploaded bytes (spec §3
// "Compiled pass").
type compiledPass struct {
	signature uint64

	kind         gpu.PassKind
	targetFormat gpu.Format
	blend        gpu.BlendParams
	load         gpu.LoadAction
	vertexStride uint32
	hasVertex    bool

	pass gpu.Pass // nil means "failed to compile"

	placements       []placement
	lastUploaded     [][]byte
	pushConstants    []byte
	uboScratch       []byte
	uboBuffer        gpu.Buffer
	pushConstantSize uint32
	uboSize          uint32

	lastUseEpoch uint64
}

// matches reports whether cp can serve a lookup for the given target
// configuration (spec §4.C "Pass lookup": "compare (signature, target
// format, blend-equal, load flag, vertex type/stride)").
func (cp *compiledPass) matches(kind gpu.PassKind, targetFormat gpu.Format, blend gpu.BlendParams, load gpu.LoadAction, hasVertex bool, vertexStride uint32) bool {
	return cp.kind == kind &&
		cp.targetFormat == targetFormat &&
		cp.blend == blend &&
		cp.load == load &&
		cp.hasVertex == hasVertex &&
		cp.vertexStride == vertexStride
}

// findOrCompile looks up a compiled pass matching (b's signature, target
// config); on miss it places variables, generates source, and compiles a
// new pass, caching the result (including a null pass on failure, per spec
// §4.C "Failures").
func (e *Engine) findOrCompile(b *shader.Builder, kind gpu.PassKind, targetFormat gpu.Format, blend gpu.BlendParams, load gpu.LoadAction, hasVertex bool, vertexStride uint32) (*compiledPass, error) {
	sig := b.Signature()
	for _, cp := range e.entries[sig] {
		if cp.matches(kind, targetFormat, blend, load, hasVertex, vertexStride) {
			return cp, nil
		}
	}

	cp, err := e.compile(b, sig, kind, targetFormat, blend, load, hasVertex, vertexStride)
	e.entries[sig] = append(e.entries[sig], cp)
	e.maybeEvict()
	return cp, err
}

func (e *Engine) compile(b *shader.Builder, sig uint64, kind gpu.PassKind, targetFormat gpu.Format, blend gpu.BlendParams, load gpu.LoadAction, hasVertex bool, vertexStride uint32) (*compiledPass, error) {
	cp := &compiledPass{
		signature:    sig,
		kind:         kind,
		targetFormat: targetFormat,
		blend:        blend,
		load:         load,
		hasVertex:    hasVertex,
		vertexStride: vertexStride,
		lastUseEpoch: e.epoch,
	}

	placements, pcSize, uboSize, err := placeVariables(b.Variables, e.caps)
	if err != nil {
		e.logger.Warn("variable placement failed, caching null pass", "error", err)
		return cp, err
	}
	cp.placements = placements
	cp.pushConstantSize = pcSize
	cp.uboSize = uboSize
	cp.pushConstants = make([]byte, pcSize)
	cp.uboScratch = make([]byte, uboSize)
	cp.lastUploaded = make([][]byte, len(b.Variables))

	desc := gpu.PassDescriptor{
		Kind:             kind,
		TargetFormat:     targetFormat,
		Blend:            blend,
		Load:             load,
		VertexAttributes: b.VertexAttrs,
		VertexStride:     vertexStride,
		PushConstantSize: pcSize,
		UBOSize:          uboSize,
	}
	if saved, ok := e.programCache.Get(sig); ok {
		desc.ProgramBinary = saved
	}

	switch {
	case kind == gpu.PassKindCompute && !b.Compute:
		// Fragment shader promoted transparently to a 16x16 compute shader
		// writing into a storage image (spec §4.C "finish").
		desc.ComputeSource = buildComputeFramebufferSource(b, placements, e.caps, targetFormat, blend)
	case kind == gpu.PassKindCompute:
		desc.ComputeSource = buildComputeSource(b, placements, e.caps)
	default:
		desc.FragmentSource = buildFragmentSource(b, placements, e.caps)
		desc.VertexSource = buildVertexSource(b, e.caps)
	}

	pass, err := e.device.CreatePass(desc)
	if err != nil {
		e.logger.Warn("shader compilation failed, caching null pass", "signature", sig, "error", err)
		return cp, err
	}
	cp.pass = pass
	e.programCache.Remove(sig)

	if uboSize > 0 {
		buf, err := e.device.CreateBuffer(gpu.BufferDescriptor{Size: uint64(uboSize), HostVisible: true, Label: "dispatch-ubo"})
		if err != nil {
			e.logger.Warn("uniform buffer allocation failed, caching null pass", "error", err)
			e.device.DestroyPass(pass)
			cp.pass = nil
			return cp, err
		}
		cp.uboBuffer = buf
	}

	return cp, nil
}

func (e *Engine) release(b *shader.Builder) {
	b.Reset()
	e.free = append(e.free, b)
}
