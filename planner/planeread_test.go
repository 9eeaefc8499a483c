package planner

import (
	"strings"
	"testing"

	"github.com/gogpu/shade/frameio"
)

func TestPlaneReadAndCombineForcesOpaqueAlphaWhenUnmapped(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	f := ycbcrFrame(t, dev, 4, 4)
	crop := frameio.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}

	img, hadAlpha, err := p.planeReadAndCombine(f, []frameio.PlaneType{
		frameio.PlaneTypeLuma, frameio.PlaneTypeChroma, frameio.PlaneTypeChroma,
	}, crop, RenderParams{})
	if err != nil {
		t.Fatalf("planeReadAndCombine: %v", err)
	}
	if hadAlpha {
		t.Fatal("expected hadAlpha=false: no plane maps a channel to ChannelA")
	}
	if !img.InShader() {
		t.Fatal("expected an in-shader Img with no materialization yet")
	}
	body := img.Shader().Body().String()
	if !strings.Contains(body, "color.a = 1.0;") {
		t.Fatal("expected a forced opaque-alpha statement when no plane carries alpha")
	}
	if !strings.Contains(body, "crop_uv") {
		t.Fatal("expected plane sampling to read through the crop_uv computation")
	}
	if !strings.Contains(body, "plane0") || !strings.Contains(body, "plane1") || !strings.Contains(body, "plane2") {
		t.Fatal("expected a descriptor/sample for every surviving plane")
	}
}

func TestPlaneReadAndCombineDetectsAlpha(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	f := rgbFrame(t, dev, 4, 4)
	crop := frameio.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}

	_, hadAlpha, err := p.planeReadAndCombine(f, []frameio.PlaneType{frameio.PlaneTypeRGB}, crop, RenderParams{})
	if err != nil {
		t.Fatalf("planeReadAndCombine: %v", err)
	}
	if !hadAlpha {
		t.Fatal("expected hadAlpha=true: the RGBA plane maps a channel to ChannelA")
	}
}

func TestPlaneReadAndCombineDeclaresCropVariable(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	f := rgbFrame(t, dev, 10, 10)
	crop := frameio.Rect{X0: 2, Y0: 2, X1: 8, Y1: 8}

	img, _, err := p.planeReadAndCombine(f, []frameio.PlaneType{frameio.PlaneTypeRGB}, crop, RenderParams{})
	if err != nil {
		t.Fatalf("planeReadAndCombine: %v", err)
	}
	b := img.Shader()
	found := false
	for _, v := range b.Variables {
		if v.Name == "src_crop" {
			found = true
			if len(v.Value) != 16 {
				t.Fatalf("expected a 16-byte vec4 value for src_crop, got %d bytes", len(v.Value))
			}
		}
	}
	if !found {
		t.Fatal("expected a declared src_crop variable")
	}
}

func TestMergeCandidateTrueWhenDebandingEnabled(t *testing.T) {
	p, dev := newTestPlanner(t)
	defer p.Destroy()

	f := ycbcrFrame(t, dev, 4, 4)
	types := []frameio.PlaneType{frameio.PlaneTypeLuma, frameio.PlaneTypeChroma, frameio.PlaneTypeChroma}

	if !p.mergeCandidate(f, types, 1, RenderParams{Debanding: true}) {
		t.Fatal("expected cb/cr planes to be merge candidates when debanding is enabled")
	}
	if p.mergeCandidate(f, types, 1, RenderParams{}) {
		t.Fatal("expected no merge candidate with no trigger active")
	}
}

func TestEncodeVec4Returns16Bytes(t *testing.T) {
	b := encodeVec4(0.25, -1.5, 0, 3.0)
	if len(b) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(b))
	}
}
