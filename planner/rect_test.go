package planner

import (
	"testing"

	"github.com/gogpu/shade/frameio"
)

func TestNormalizeRectsNoFlipSameRegion(t *testing.T) {
	src := frameio.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}
	dst := frameio.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}

	adjusted, dstPixels, flipX, flipY := normalizeRects(src, dst, 100, 50)
	if flipX || flipY {
		t.Fatal("expected no flip when both rects share orientation")
	}
	if dstPixels.Width() != 100 || dstPixels.Height() != 50 {
		t.Fatalf("unexpected dst pixels: %+v", dstPixels)
	}
	if adjusted != src {
		t.Fatalf("expected unchanged source rect on an exact round-trip, got %+v", adjusted)
	}
}

func TestNormalizeRectsSourceFlipOnly(t *testing.T) {
	// A reversed source rect (X1 < X0) against a normal destination flips
	// the end-to-end output on that axis, but not the other.
	src := frameio.Rect{X0: 100, Y0: 0, X1: 0, Y1: 50}
	dst := frameio.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}

	_, _, flipX, flipY := normalizeRects(src, dst, 100, 50)
	if !flipX {
		t.Fatal("expected flipX when only the source x-axis is reversed")
	}
	if flipY {
		t.Fatal("expected no flipY")
	}
}

func TestNormalizeRectsBothFlippedCancels(t *testing.T) {
	src := frameio.Rect{X0: 100, Y0: 0, X1: 0, Y1: 50}
	dst := frameio.Rect{X0: 100, Y0: 0, X1: 0, Y1: 50}

	_, _, flipX, _ := normalizeRects(src, dst, 100, 50)
	if flipX {
		t.Fatal("expected flips on both sides to cancel out")
	}
}

func TestNormalizeRectsClipsToTargetDimensions(t *testing.T) {
	src := frameio.Rect{X0: 0, Y0: 0, X1: 64, Y1: 64}
	dst := frameio.Rect{X0: 0, Y0: 0, X1: 64, Y1: 64}

	_, dstPixels, _, _ := normalizeRects(src, dst, 32, 32)
	if dstPixels.X1 != 32 || dstPixels.Y1 != 32 {
		t.Fatalf("expected dst rect clipped to the 32x32 target, got %+v", dstPixels)
	}
}

func TestNormalizeRectsScalesSourceWithRounding(t *testing.T) {
	// A destination rect that rounds up should scale the source rect by the
	// same ratio, so the sampled fraction of the source doesn't silently
	// shrink relative to where the rounded destination actually lands.
	src := frameio.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	dst := frameio.Rect{X0: 0, Y0: 0, X1: 9.6, Y1: 9.6}

	adjusted, dstPixels, _, _ := normalizeRects(src, dst, 100, 100)
	wantScale := float64(dstPixels.Width()) / 9.6
	wantX1 := 0 + 10*wantScale
	if diff := adjusted.X1 - wantX1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected source rect scaled by rounding ratio %.6f, got X1=%.6f want %.6f", wantScale, adjusted.X1, wantX1)
	}
}
