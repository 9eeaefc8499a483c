package planner

import (
	"testing"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/gpu/gpunoop"
)

func TestPlaneTargetRectScalesToSubsampledPlane(t *testing.T) {
	dev := gpunoop.New(testCaps(), nil)
	full := mustTexture(t, dev, 16, 16, gpu.FormatR8Unorm)
	half := mustTexture(t, dev, 8, 8, gpu.FormatR8Unorm)

	dstPixels := gpu.Rect{X0: 0, Y0: 0, X1: 16, Y1: 16}

	fullRect := planeTargetRect(dstPixels, full, 16, 16)
	if fullRect != (gpu.Rect{X0: 0, Y0: 0, X1: 16, Y1: 16}) {
		t.Fatalf("full-res plane rect unexpectedly scaled: %+v", fullRect)
	}

	halfRect := planeTargetRect(dstPixels, half, 16, 16)
	if halfRect != (gpu.Rect{X0: 0, Y0: 0, X1: 8, Y1: 8}) {
		t.Fatalf("expected half-res plane rect scaled to 8x8, got %+v", halfRect)
	}
}

func TestPlaneTargetRectEmptyOnZeroReference(t *testing.T) {
	dev := gpunoop.New(testCaps(), nil)
	tex := mustTexture(t, dev, 4, 4, gpu.FormatR8Unorm)
	r := planeTargetRect(gpu.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, tex, 0, 0)
	if !r.Empty() {
		t.Fatal("expected an empty rect when the reference grid is zero")
	}
}

func TestChannelReadExprMapsLogicalChannels(t *testing.T) {
	cases := []struct {
		ch   frameio.ChannelID
		want string
	}{
		{frameio.ChannelY, "src_color.r"},
		{frameio.ChannelR, "src_color.r"},
		{frameio.ChannelCb, "src_color.g"},
		{frameio.ChannelG, "src_color.g"},
		{frameio.ChannelCr, "src_color.b"},
		{frameio.ChannelB, "src_color.b"},
		{frameio.ChannelA, "src_color.a"},
		{frameio.ChannelNone, "0.0"},
	}
	for _, c := range cases {
		if got := channelReadExpr(c.ch); got != c.want {
			t.Errorf("channelReadExpr(%d) = %q, want %q", c.ch, got, c.want)
		}
	}
}

func TestPlaneWriteExprPadsMissingComponents(t *testing.T) {
	pl := &frameio.Plane{Components: 1, Mapping: [4]frameio.ChannelID{frameio.ChannelY}}
	got := planeWriteExpr(pl)
	want := "return vec4(src_color.r, 0.0, 0.0, 0.0);\n"
	if got != want {
		t.Fatalf("planeWriteExpr = %q, want %q", got, want)
	}
}

func TestReferencePlaneSizeTakesWidestTallest(t *testing.T) {
	dev := gpunoop.New(testCaps(), nil)
	f := &frameio.Frame{Planes: []*frameio.Plane{
		{Texture: mustTexture(t, dev, 8, 8, gpu.FormatR8Unorm)},
		{Texture: mustTexture(t, dev, 16, 4, gpu.FormatR8Unorm)},
	}}
	w, h := referencePlaneSize(f)
	if w != 16 || h != 8 {
		t.Fatalf("expected (16,8), got (%d,%d)", w, h)
	}
}

func TestIntermediateFormatPicksHalfFloatForDeepTargets(t *testing.T) {
	dev := gpunoop.New(testCaps(), nil)
	f8 := &frameio.Frame{Planes: []*frameio.Plane{{Texture: mustTexture(t, dev, 4, 4, gpu.FormatRGBA8Unorm)}}}
	if got := intermediateFormat(f8); got != gpu.FormatRGBA8Unorm {
		t.Fatalf("expected 8-bit intermediate for an 8-bit target, got %v", got)
	}

	f16 := &frameio.Frame{Planes: []*frameio.Plane{{Texture: mustTexture(t, dev, 4, 4, gpu.FormatRGBA16Unorm)}}}
	if got := intermediateFormat(f16); got != gpu.FormatRGBA16Float {
		t.Fatalf("expected half-float intermediate for a 16-bit target, got %v", got)
	}
}
