package frameio

import "github.com/gogpu/shade/gpu"

// Rect is a floating-point crop rectangle in pixel space (spec §3 "Frame":
// "a floating-point crop rectangle in pixel space"), unlike gpu.Rect which
// is integer pixel-grid only.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1-X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1-Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports zero (or negative) area on at least one axis.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// OneAxisDegenerate reports whether exactly one axis has zero or negative
// extent. This is distinct from Empty, which is also true of the zero value
// Rect{} — the sentinel meaning "no crop set, infer the full frame" (spec
// §4.E phase 1) — since both axes are degenerate there. A crop degenerate on
// only one axis is never a valid "infer" sentinel; spec §7 "Error Handling
// Design" calls it out as its own validation failure.
func (r Rect) OneAxisDegenerate() bool {
	xDeg := r.X1 <= r.X0
	yDeg := r.Y1 <= r.Y0
	return xDeg != yDeg
}

// Normalize swaps each axis's endpoints if reversed and reports whether that
// axis was flipped (spec §4.E phase 2 "Rect normalization": "remember
// whether the end-to-end rendering is flipped per axis").
func (r Rect) Normalize() (norm Rect, flipX, flipY bool) {
	norm = r
	if norm.X1 < norm.X0 {
		norm.X0, norm.X1 = norm.X1, norm.X0
		flipX = true
	}
	if norm.Y1 < norm.Y0 {
		norm.Y0, norm.Y1 = norm.Y1, norm.Y0
		flipY = true
	}
	return norm, flipX, flipY
}

// RoundClip rounds r to an integer gpu.Rect, clipped to [0,maxW]x[0,maxH].
func (r Rect) RoundClip(maxW, maxH int) gpu.Rect {
	x0 := clampInt(roundInt(r.X0), 0, maxW)
	y0 := clampInt(roundInt(r.Y0), 0, maxH)
	x1 := clampInt(roundInt(r.X1), 0, maxW)
	y1 := clampInt(roundInt(r.Y1), 0, maxH)
	return gpu.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
