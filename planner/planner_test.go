package planner

import (
	"errors"
	"testing"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/gpu/gpunoop"
	"github.com/gogpu/shade/shader"
)

var errBoom = errors.New("boom")

func testCaps() gpu.Caps {
	return gpu.Caps{
		InputVariables:      true,
		MaxPushConstantSize: 128,
		MaxUBOSize:          4096,
		UBOOffsetAlignment:  16,
		GLSLVersion:         450,
	}
}

func newTestPlanner(t *testing.T) (*Planner, *gpunoop.Device) {
	t.Helper()
	dev := gpunoop.New(testCaps(), nil)
	return New(dev, nil), dev
}

func mustTexture(t *testing.T, dev *gpunoop.Device, w, h int, format gpu.Format) gpu.Texture {
	t.Helper()
	tex, err := dev.CreateTexture(gpu.TextureDescriptor{
		Width: w, Height: h, Format: format,
		Sampleable: true, Renderable: true,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return tex
}

// rgbFrame builds a single-plane RGBA frame of size (w,h), the simplest
// shape that carries its own reference grid (spec §3 "Frame").
func rgbFrame(t *testing.T, dev *gpunoop.Device, w, h int) *frameio.Frame {
	t.Helper()
	tex := mustTexture(t, dev, w, h, gpu.FormatRGBA8Unorm)
	return &frameio.Frame{
		Planes: []*frameio.Plane{
			{
				Texture:    tex,
				Components: 4,
				Mapping:    [4]frameio.ChannelID{frameio.ChannelR, frameio.ChannelG, frameio.ChannelB, frameio.ChannelA},
			},
		},
		Repr:  frameio.ColorRepr{System: frameio.ColorSystemRGB, SampleDepth: 8, ColorDepth: 8},
		Space: frameio.ColorSpace{Primaries: frameio.PrimariesBT709, Transfer: frameio.TransferSRGB, SigScale: 1},
	}
}

// ycbcrFrame builds a 3-plane 4:2:0-shaped frame: one full-res luma plane
// and two half-res chroma planes, the common merge/subsample case.
func ycbcrFrame(t *testing.T, dev *gpunoop.Device, w, h int) *frameio.Frame {
	t.Helper()
	luma := mustTexture(t, dev, w, h, gpu.FormatR8Unorm)
	cb := mustTexture(t, dev, w/2, h/2, gpu.FormatR8Unorm)
	cr := mustTexture(t, dev, w/2, h/2, gpu.FormatR8Unorm)
	return &frameio.Frame{
		Planes: []*frameio.Plane{
			{Texture: luma, Components: 1, Mapping: [4]frameio.ChannelID{frameio.ChannelY}},
			{Texture: cb, Components: 1, Mapping: [4]frameio.ChannelID{frameio.ChannelCb}, ShiftX: 0.5, ShiftY: 0.5},
			{Texture: cr, Components: 1, Mapping: [4]frameio.ChannelID{frameio.ChannelCr}, ShiftX: 0.5, ShiftY: 0.5},
		},
		Repr:  frameio.ColorRepr{System: frameio.ColorSystemYCbCr, SampleDepth: 8, ColorDepth: 8},
		Space: frameio.ColorSpace{Primaries: frameio.PrimariesBT709, Transfer: frameio.TransferBT1886, SigScale: 1},
	}
}

func identityGenerators() Generators {
	return Generators{
		DecodeColor: func(b *shader.Builder, _ frameio.ColorRepr, _ frameio.ColorSpace) error { return nil },
		EncodeColor: func(b *shader.Builder, _ frameio.ColorRepr, _ frameio.ColorSpace) error { return nil },
	}
}

func TestRenderSameSizeRGBRoundTrip(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := rgbFrame(t, dev, 8, 8)
	dst := rgbFrame(t, dev, 8, 8)

	ok := p.Render(src, dst, 1, RenderParams{Generators: identityGenerators()})
	if !ok {
		t.Fatal("expected Render to succeed")
	}
	if len(dev.Compiled) == 0 {
		t.Fatal("expected at least one compiled pass")
	}
}

func TestRenderWithCheckerboardSourcePixels(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := rgbFrame(t, dev, 8, 8)
	pixels := frameio.CheckerboardPixels(8, 8, 4)
	if err := src.Planes[0].Texture.Upload(gpu.Rect{X0: 0, Y0: 0, X1: 8, Y1: 8}, pixels); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	dst := rgbFrame(t, dev, 16, 16)

	if !p.Render(src, dst, 1, RenderParams{Generators: identityGenerators()}) {
		t.Fatal("expected Render to succeed over checkerboard source content")
	}
}

func TestRenderUpscaleYCbCrToRGB(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := ycbcrFrame(t, dev, 4, 4)
	dst := rgbFrame(t, dev, 16, 16)

	ok := p.Render(src, dst, 1, RenderParams{Generators: identityGenerators()})
	if !ok {
		t.Fatal("expected Render to succeed across a YCbCr->RGB upscale")
	}
}

func TestRenderFailsOnSourceWithNoPlanes(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := &frameio.Frame{}
	dst := rgbFrame(t, dev, 4, 4)

	ok := p.Render(src, dst, 1, RenderParams{Generators: identityGenerators()})
	if ok {
		t.Fatal("expected Render to fail validation on a frame with no planes")
	}
}

func TestRenderFailsOnFailedDevice(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := rgbFrame(t, dev, 8, 8)
	dst := rgbFrame(t, dev, 8, 8)
	dev.SetFailed(true)

	if p.Render(src, dst, 1, RenderParams{Generators: identityGenerators()}) {
		t.Fatal("expected Render to fail on a failed device")
	}
}

func TestRenderFailsWhenColorConvertErrors(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	src := rgbFrame(t, dev, 4, 4)
	dst := rgbFrame(t, dev, 4, 4)

	gens := identityGenerators()
	gens.DecodeColor = func(b *shader.Builder, _ frameio.ColorRepr, _ frameio.ColorSpace) error {
		return errBoom
	}

	ok := p.Render(src, dst, 1, RenderParams{Generators: gens})
	if ok {
		t.Fatal("expected Render to fail when a required generator errors")
	}
}

func TestResetPeakDetectDropsBuffer(t *testing.T) {
	p, _ := newTestPlanner(t)
	defer p.Destroy()

	buf, err := p.device.CreateBuffer(gpu.BufferDescriptor{Size: peakBufSize, HostVisible: true})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	p.peakBufs[42] = buf
	p.ResetPeakDetect(42)
	if _, ok := p.peakBufs[42]; ok {
		t.Fatal("expected peak buffer to be dropped")
	}
}
