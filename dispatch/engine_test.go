package dispatch

import (
	"bytes"
	"testing"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/gpu/gpunoop"
	"github.com/gogpu/shade/shader"
)

func testCaps() gpu.Caps {
	return gpu.Caps{
		InputVariables:      true,
		MaxPushConstantSize: 128,
		MaxUBOSize:          4096,
		UBOOffsetAlignment:  16,
		GLSLVersion:         450,
		Dialect:             gpu.DialectGL,
	}
}

func buildSimpleShader(e *Engine) *shader.Builder {
	b := e.Begin(false)
	b.AddVariable(shader.Variable{Name: "gain", Kind: shader.KindFloat, Value: []byte{0, 0, 128, 63}})
	b.Body().WriteString("return vec4(gain);\n")
	return b
}

func TestFinishCompilesAndCachesByEqualSignature(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)

	target, err := noop.CreateTexture(gpu.TextureDescriptor{Width: 4, Height: 4, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	b1 := buildSimpleShader(e)
	if err := e.Finish(b1, target, gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, gpu.BlendParams{}, nil); err != nil {
		t.Fatalf("Finish 1: %v", err)
	}
	b2 := buildSimpleShader(e)
	if err := e.Finish(b2, target, gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, gpu.BlendParams{}, nil); err != nil {
		t.Fatalf("Finish 2: %v", err)
	}

	if len(noop.Compiled) != 1 {
		t.Fatalf("expected one compiled pass shared by signature, got %d", len(noop.Compiled))
	}
}

func TestFinishFailureIsCachedAsNullPass(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)

	target, _ := noop.CreateTexture(gpu.TextureDescriptor{Width: 4, Height: 4, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})
	noop.FailNext(1)

	b1 := buildSimpleShader(e)
	if err := e.Finish(b1, target, gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, gpu.BlendParams{}, nil); err == nil {
		t.Fatalf("expected compile failure on first dispatch")
	}

	b2 := buildSimpleShader(e)
	if err := e.Finish(b2, target, gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, gpu.BlendParams{}, nil); err != ErrNullPass {
		t.Fatalf("expected ErrNullPass on second dispatch of same signature, got %v", err)
	}
	if len(noop.Compiled) != 0 {
		t.Fatalf("a failed compile must not have reached CreatePass a second time")
	}
}

// dispatchThreeShaders builds and dispatches the same 3 distinct shaders
// (differing only in the literal baked into the body) through e against
// target, in order, so two engines sharing a device can be driven through
// an identical sequence of signatures.
func dispatchThreeShaders(t *testing.T, e *Engine, target gpu.Texture) {
	t.Helper()
	for i := 0; i < 3; i++ {
		b := e.Begin(false)
		b.AddVariable(shader.Variable{Name: "x", Kind: shader.KindFloat, Value: []byte{0, 0, 0, 0}})
		b.Body().WriteString("return vec4(float(" + string(rune('0'+i)) + "));\n")
		if err := e.Finish(b, target, gpu.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2}, gpu.BlendParams{}, nil); err != nil {
			t.Fatalf("Finish %d: %v", i, err)
		}
	}
}

// TestSaveLoadRoundTrip exercises spec §8 scenario 5 and the literal
// Round-trip law: save, load into a fresh engine, recompile the same 3
// shaders against it (each reattaching its saved program binary rather than
// compiling fresh), then save again and expect byte-identical output.
func TestSaveLoadRoundTrip(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)
	target, _ := noop.CreateTexture(gpu.TextureDescriptor{Width: 2, Height: 2, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})

	dispatchThreeShaders(t, e, target)
	blob1 := e.Save()
	if len(blob1) == 0 {
		t.Fatal("expected a non-empty blob after compiling 3 shaders")
	}

	e2 := New(noop, nil)
	if err := e2.Load(blob1); err != nil {
		t.Fatalf("Load: %v", err)
	}

	compiledBefore := len(noop.Compiled)
	dispatchThreeShaders(t, e2, target)

	for i, desc := range noop.Compiled[compiledBefore:] {
		if len(desc.ProgramBinary) == 0 {
			t.Fatalf("dispatch %d against e2 did not reattach a saved program binary", i)
		}
	}

	blob2 := e2.Save()
	if !bytes.Equal(blob1, blob2) {
		t.Fatalf("expected byte-identical second save, got blob1=%v blob2=%v", blob1, blob2)
	}
}

func TestFinishRejectsOnFailedDevice(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)
	target, _ := noop.CreateTexture(gpu.TextureDescriptor{Width: 4, Height: 4, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})

	noop.SetFailed(true)
	b := buildSimpleShader(e)
	if err := e.Finish(b, target, gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, gpu.BlendParams{}, nil); err != ErrDeviceFailed {
		t.Fatalf("Finish on a failed device = %v, want ErrDeviceFailed", err)
	}
}

func TestComputeRejectsOnFailedDevice(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)

	noop.SetFailed(true)
	b := buildSimpleShader(e)
	if err := e.Compute(b, [3]uint32{1, 1, 1}, nil); err != ErrDeviceFailed {
		t.Fatalf("Compute on a failed device = %v, want ErrDeviceFailed", err)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)
	if err := e.Load([]byte("not a cache blob at all")); err == nil {
		t.Fatalf("expected error for malformed blob")
	}
}

func TestVariableUploadCachesLastUploadedValue(t *testing.T) {
	noop := gpunoop.New(testCaps(), nil)
	e := New(noop, nil)
	target, _ := noop.CreateTexture(gpu.TextureDescriptor{Width: 2, Height: 2, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})

	b := e.Begin(false)
	idx := b.AddVariable(shader.Variable{Name: "gain", Kind: shader.KindFloat, Value: []byte{1, 2, 3, 4}})
	b.Body().WriteString("return vec4(gain);\n")
	sig := b.Signature()

	if err := e.Finish(b, target, gpu.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2}, gpu.BlendParams{}, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	cp := e.entries[sig][0]
	if len(cp.lastUploaded) <= idx || string(cp.lastUploaded[idx]) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("expected cached upload to match supplied value")
	}
}
