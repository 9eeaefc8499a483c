package frameio

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// CheckerboardPixels renders a synthetic checkerboard at native cell
// resolution and scales it up to (w, h) with a Catmull-Rom resampler,
// returning packed row-major float32 RGBA bytes ready for gpu.Texture's
// Upload — the same test-fixture role gazed-vu's asset loader uses
// x/image/draw for, adapted here to synthesize test pixel content instead
// of decoding a file. Lets planner tests exercise real gradient/edge
// content instead of a flat color.
func CheckerboardPixels(w, h, cells int) []byte {
	if cells < 1 {
		cells = 1
	}
	src := image.NewRGBA(image.Rect(0, 0, cells, cells))
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			if (x+y)%2 == 0 {
				src.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				src.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make([]byte, w*h*4*4)
	off := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := dst.At(x, y).RGBA()
			for _, v16 := range [4]uint32{r, g, b, a} {
				bits := math.Float32bits(float32(v16) / 65535.0)
				out[off+0] = byte(bits)
				out[off+1] = byte(bits >> 8)
				out[off+2] = byte(bits >> 16)
				out[off+3] = byte(bits >> 24)
				off += 4
			}
		}
	}
	return out
}
