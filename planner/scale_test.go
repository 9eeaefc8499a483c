package planner

import (
	"strings"
	"testing"

	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/hook"
	"github.com/gogpu/shade/shader"
)

func TestMainScaleSameSizeSkipsResize(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	img := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferSRGB})
	out, err := p.mainScale(img, 4, 4, rgbFrame(t, dev, 4, 4), RenderParams{})
	if err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("expected unchanged dimensions, got %dx%d", out.Width, out.Height)
	}
}

func TestMainScaleUpscaleResizes(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	img := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferSRGB})
	out, err := p.mainScale(img, 16, 16, rgbFrame(t, dev, 16, 16), RenderParams{})
	if err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if out.Width != 16 || out.Height != 16 {
		t.Fatalf("expected resized to 16x16, got %dx%d", out.Width, out.Height)
	}
}

func TestMainScaleLinearizesOnlyOnSDRUpscale(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	sdrImg := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferSRGB})
	out, err := p.mainScale(sdrImg, 8, 8, rgbFrame(t, dev, 8, 8), RenderParams{})
	if err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if !strings.Contains(out.Shader().Body().String(), "shade_to_linear") {
		t.Fatal("expected linearization on an SDR upscale")
	}
}

func TestMainScaleSkipsLinearizeOnHDR(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	hdrImg := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferPQ})
	out, err := p.mainScale(hdrImg, 8, 8, rgbFrame(t, dev, 8, 8), RenderParams{})
	if err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if strings.Contains(out.Shader().Body().String(), "shade_to_linear") {
		t.Fatal("expected no linearization on an already-HDR source")
	}
}

func TestMainScaleFiresPostKernelHookEvenAtSameSize(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	img := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferSRGB})

	reg := hook.NewRegistry()
	called := false
	reg.Register(hook.StagePostKernel, func(_ *dispatch.Engine, im *frameio.Img) (*frameio.Img, error) {
		called = true
		return im, nil
	})

	_, err := p.mainScale(img, 4, 4, rgbFrame(t, dev, 4, 4), RenderParams{Hooks: reg})
	if err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if !called {
		t.Fatal("expected the post-kernel hook stage to fire regardless of resize")
	}
}

func TestMainScaleFallsBackToGeneratorWhenLinearSamplingUnsupported(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()
	dev.SetFormatCaps(gpu.FormatRGBA8Unorm, gpu.FormatCaps{Sampleable: true, Renderable: true, LinearSampling: false})

	img := freshShaderImg(p.engine, 4, 4, frameio.ColorRepr{}, frameio.ColorSpace{Transfer: frameio.TransferSRGB})

	called := false
	params := RenderParams{Generators: Generators{Scale: func(b *shader.Builder, _ FilterConfig, _ Axis) error {
		called = true
		return nil
	}}}

	if _, err := p.mainScale(img, 16, 16, rgbFrame(t, dev, 16, 16), params); err != nil {
		t.Fatalf("mainScale: %v", err)
	}
	if !called {
		t.Fatal("expected the scale generator to run when the device lacks linear sampling")
	}
	if !p.Latches.LinearSampling.Disabled() {
		t.Fatal("expected the linear-sampling latch to trip")
	}
}
