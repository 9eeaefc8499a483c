package planner

import (
	"fmt"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// writeTargetPlanes is phase 9 (spec §4.E phase 9 "Write to target planes"):
// close and materialize the accumulated working-space shader into one
// intermediate texture at the target's reference resolution, then resample
// that intermediate into every target plane at its own (possibly
// subsampled, possibly shifted) grid, masking to the channels that plane's
// component mapping actually carries.
func (p *Planner) writeTargetPlanes(img *frameio.Img, dst *frameio.Frame, dstPixels gpu.Rect, flipX, flipY bool, params RenderParams) error {
	interFormat := intermediateFormat(dst)
	if img.InShader() {
		if err := img.Materialize(p.engine, p.pool, interFormat, defaultBlend(), nil); err != nil {
			return err
		}
	}
	src := img.Texture()
	if src == nil {
		return fmt.Errorf("planner: write phase given an img with neither shader nor texture")
	}

	refW, refH := referencePlaneSize(dst)

	for _, pl := range dst.Planes {
		tex := pl.Texture
		rect := planeTargetRect(dstPixels, tex, refW, refH)
		if rect.Empty() {
			continue
		}

		b := p.engine.Begin(false)
		b.AddDescriptor(shader.Descriptor{Name: "src", Kind: shader.DescriptorSampler2D, Binding: 0})

		b.Body().WriteString("vec2 wuv = uv;\n")
		if flipX {
			b.Body().WriteString("wuv.x = 1.0 - wuv.x;\n")
		}
		if flipY {
			b.Body().WriteString("wuv.y = 1.0 - wuv.y;\n")
		}
		if pl.ShiftX != 0 || pl.ShiftY != 0 {
			b.Body().Writef("wuv += vec2(%g, %g) / vec2(%d.0, %d.0);\n", pl.ShiftX, pl.ShiftY, refW, refH)
		}
		b.Body().WriteString("vec4 src_color = texture(src, wuv);\n")
		b.Body().WriteString(planeWriteExpr(pl))

		blend := defaultBlend()
		if err := p.engine.Finish(b, tex, rect, blend, nil); err != nil {
			return err
		}
	}
	return nil
}

// referencePlaneSize returns the widest/tallest plane's texture dimensions,
// the target's reference sample grid (spec §3 "Frame": "at least one plane
// carries the reference sample grid").
func referencePlaneSize(f *frameio.Frame) (w, h int) {
	for _, pl := range f.Planes {
		if pl.Texture.Width() > w {
			w = pl.Texture.Width()
		}
		if pl.Texture.Height() > h {
			h = pl.Texture.Height()
		}
	}
	return w, h
}

// planeTargetRect scales a reference-grid destination rect down to a
// (possibly subsampled) plane's own grid, proportional to that plane's
// texture size relative to the reference grid, then clips to the plane's
// bounds.
func planeTargetRect(dstPixels gpu.Rect, tex gpu.Texture, refW, refH int) gpu.Rect {
	if refW == 0 || refH == 0 {
		return gpu.Rect{}
	}
	sx := float64(tex.Width()) / float64(refW)
	sy := float64(tex.Height()) / float64(refH)
	r := gpu.Rect{
		X0: clampInt(roundF(float64(dstPixels.X0)*sx), 0, tex.Width()),
		Y0: clampInt(roundF(float64(dstPixels.Y0)*sy), 0, tex.Height()),
		X1: clampInt(roundF(float64(dstPixels.X1)*sx), 0, tex.Width()),
		Y1: clampInt(roundF(float64(dstPixels.Y1)*sy), 0, tex.Height()),
	}
	return r
}

func roundF(v float64) int {
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

// planeWriteExpr builds the channel-masked write back into the combine
// convention's vec4 "color" slot expected by shaderMain's caller: each of
// the plane's mapped channels reads the corresponding component out of
// src_color (spec §3 "Plane": "component mapping vector").
func planeWriteExpr(pl *frameio.Plane) string {
	var comps [4]string
	for c := 0; c < pl.Components; c++ {
		comps[c] = channelReadExpr(pl.Mapping[c])
	}
	for c := pl.Components; c < 4; c++ {
		comps[c] = "0.0"
	}
	return fmt.Sprintf("return vec4(%s, %s, %s, %s);\n", comps[0], comps[1], comps[2], comps[3])
}

// channelReadExpr returns the src_color component expression a logical
// channel id reads from.
func channelReadExpr(c frameio.ChannelID) string {
	switch c {
	case frameio.ChannelY, frameio.ChannelR:
		return "src_color.r"
	case frameio.ChannelCb, frameio.ChannelG:
		return "src_color.g"
	case frameio.ChannelCr, frameio.ChannelB:
		return "src_color.b"
	case frameio.ChannelA:
		return "src_color.a"
	default:
		return "0.0"
	}
}

// intermediateFormat picks a working-precision format for the materialized
// pre-write image: half-float whenever any target plane needs more than
// 8-bit precision (so color conversion/dither math upstream isn't
// re-quantized before the per-plane resample), otherwise plain 8-bit RGBA
// since every target plane will truncate to 8 bits anyway.
func intermediateFormat(dst *frameio.Frame) gpu.Format {
	for _, pl := range dst.Planes {
		if pl.Texture.Format().ComponentDepth() > 8 {
			return gpu.FormatRGBA16Float
		}
	}
	return gpu.FormatRGBA8Unorm
}
