package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
)

// normalizeRects is phase 2 (spec §4.E phase 2 "Rect normalization"): it
// normalizes both rects so x0<=x1/y0<=y1, derives the end-to-end flip per
// axis (a flip on exactly one side of the pipeline flips the output; a
// flip on both cancels), rounds the destination rect to the target's
// integer pixel grid clipped to its dimensions, and scales the source rect
// proportionally so rounding never changes which region is being sampled,
// only where it lands.
func normalizeRects(src, dst frameio.Rect, targetW, targetH int) (adjustedSrc frameio.Rect, dstPixels gpu.Rect, flipX, flipY bool) {
	srcNorm, srcFlipX, srcFlipY := src.Normalize()
	dstNorm, dstFlipX, dstFlipY := dst.Normalize()

	flipX = srcFlipX != dstFlipX
	flipY = srcFlipY != dstFlipY

	dstPixels = dstNorm.RoundClip(targetW, targetH)

	scaleX, scaleY := 1.0, 1.0
	if w := dstNorm.Width(); w > 0 {
		scaleX = float64(dstPixels.Width()) / w
	}
	if h := dstNorm.Height(); h > 0 {
		scaleY = float64(dstPixels.Height()) / h
	}

	adjustedSrc = frameio.Rect{
		X0: srcNorm.X0,
		Y0: srcNorm.Y0,
		X1: srcNorm.X0 + srcNorm.Width()*scaleX,
		Y1: srcNorm.Y0 + srcNorm.Height()*scaleY,
	}
	return adjustedSrc, dstPixels, flipX, flipY
}
