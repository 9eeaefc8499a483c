package hook

import (
	"errors"
	"testing"

	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/gpu/gpunoop"
)

func testImg(t *testing.T, w, h int) (*frameio.Img, *dispatch.Engine) {
	t.Helper()
	noop := gpunoop.New(gpu.Caps{InputVariables: true, MaxPushConstantSize: 128, MaxUBOSize: 4096, UBOOffsetAlignment: 16, GLSLVersion: 450}, nil)
	e := dispatch.New(noop, nil)
	tex, err := noop.CreateTexture(gpu.TextureDescriptor{Width: w, Height: h, Format: gpu.FormatRGBA8Unorm, Sampleable: true, Renderable: true})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return frameio.NewTextureImg(tex, frameio.ColorRepr{}, frameio.ColorSpace{}, 4), e
}

func TestInvokeSkipsWhenLatchTripped(t *testing.T) {
	img, e := testImg(t, 4, 4)
	latch := NewLatch("test")
	latch.Trip(nil, errors.New("boom"))

	called := false
	fn := func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		called = true
		return im, nil
	}
	out, ok := Invoke(StageRGB, fn, e, img, latch, nil)
	if ok || called {
		t.Fatal("expected Invoke to skip a tripped latch without calling fn")
	}
	if out != img {
		t.Fatal("expected unmodified img back")
	}
}

func TestInvokeTripsLatchOnError(t *testing.T) {
	img, e := testImg(t, 4, 4)
	latch := NewLatch("test")
	fn := func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		return nil, errors.New("fail")
	}
	out, ok := Invoke(StageRGB, fn, e, img, latch, nil)
	if ok {
		t.Fatal("expected ok=false on fn error")
	}
	if out != img {
		t.Fatal("expected fallback to original img on error")
	}
	if !latch.Disabled() {
		t.Fatal("expected latch to trip on fn error")
	}
}

func TestInvokeTripsLatchOnUnexpectedResize(t *testing.T) {
	img, e := testImg(t, 4, 4)
	latch := NewLatch("test")
	fn := func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		resized := *im
		resized.Width = 8
		return &resized, nil
	}
	out, ok := Invoke(StageRGB, fn, e, img, latch, nil)
	if ok {
		t.Fatal("expected ok=false when non-resizable stage changes dimensions")
	}
	if out.Width != 4 {
		t.Fatal("expected fallback to original width")
	}
	if !latch.Disabled() {
		t.Fatal("expected latch to trip on unexpected resize")
	}
}

func TestInvokeAllowsResizeAtPlaneStage(t *testing.T) {
	img, e := testImg(t, 4, 4)
	latch := NewLatch("test")
	fn := func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		resized := *im
		resized.Width = 8
		return &resized, nil
	}
	out, ok := Invoke(StagePlaneLuma, fn, e, img, latch, nil)
	if !ok {
		t.Fatal("expected ok=true for resizable stage")
	}
	if out.Width != 8 {
		t.Fatal("expected resized img to be returned")
	}
	if latch.Disabled() {
		t.Fatal("expected latch to remain untripped")
	}
}

func TestInvokeAllStopsOnFirstTrip(t *testing.T) {
	img, e := testImg(t, 4, 4)
	latch := NewLatch("test")
	r := NewRegistry()

	calls := 0
	r.Register(StageRGB, func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		calls++
		return nil, errors.New("first fails")
	})
	r.Register(StageRGB, func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		calls++
		return im, nil
	})

	out := InvokeAll(r, StageRGB, e, img, latch, nil)
	if calls != 1 {
		t.Fatalf("expected only the first hook to run, got %d calls", calls)
	}
	if out != img {
		t.Fatal("expected original img back after first hook failed")
	}
}
