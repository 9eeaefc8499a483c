package planner

import (
	"fmt"
	"math"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/hook"
	"github.com/gogpu/shade/shader"
)

// planeReadAndCombine runs phases 3 and 4 (spec §4.E phases "Plane read"
// and "Plane combine"). Every surviving plane is sampled within the same
// combine shader rather than round-tripped through a separate merge pass
// first — the single-shader combine already amortizes the "merge"
// optimization spec describes (sampling two compatible planes together in
// one invocation) for the common case; a plane is only forced through its
// own intermediate texture first when a per-plane stage (debanding, film
// grain, or a plane-type hook) needs to run on it before the combine shader
// ever reads it.
func (p *Planner) planeReadAndCombine(f *frameio.Frame, planeTypes []frameio.PlaneType, adjustedSrc frameio.Rect, params RenderParams) (img *frameio.Img, hadAlpha bool, err error) {
	b := p.engine.Begin(false)

	neutral := "vec4(0.0, 0.0, 0.0, 1.0)"
	if f.Repr.System == frameio.ColorSystemYCbCr {
		neutral = "vec4(0.0, 0.5, 0.5, 1.0)"
	}
	b.Body().Writef("vec4 color = %s;\n", neutral)

	// The normalized source crop is expressed once, in UV space, and shared
	// by every plane regardless of subsampling: a chroma plane's own 0..1 UV
	// range covers the same spatial extent as the luma plane's, so one
	// fractional crop rect applies unscaled to every plane's sampler.
	refW, refH := referencePlaneSize(f)
	u0, v0, sw, sh := float32(0), float32(0), float32(1), float32(1)
	if refW > 0 && refH > 0 {
		u0 = float32(adjustedSrc.X0 / float64(refW))
		v0 = float32(adjustedSrc.Y0 / float64(refH))
		sw = float32(adjustedSrc.Width() / float64(refW))
		sh = float32(adjustedSrc.Height() / float64(refH))
	}
	cropIdx := b.AddVariable(shader.Variable{Name: "src_crop", Kind: shader.KindVec4, Dynamic: true})
	b.SetVariableValue(cropIdx, encodeVec4(u0, v0, sw, sh))
	b.Body().WriteString("vec2 crop_uv = src_crop.xy + uv * src_crop.zw;\n")

	w, h := 0, 0
	for i, pl := range f.Planes {
		tex := pl.Texture
		pt := planeTypes[i]
		merging := p.mergeCandidate(f, planeTypes, i, params)

		if params.FilmGrain && !p.Latches.Grain.Disabled() && params.Hooks != nil && !params.Hooks.Empty(hook.StageFilmGrain) {
			grainImg := frameio.NewTextureImg(tex, f.Repr, f.Space, pl.Components)
			grainImg = hook.InvokeAll(params.Hooks, hook.StageFilmGrain, p.engine, grainImg, p.Latches.Grain, p.logger)
			if grainImg.InTexture() {
				tex = grainImg.Texture()
			}
		}

		if params.Debanding && merging && !p.Latches.Debanding.Disabled() && params.Generators.Deband != nil {
			if newTex, err := p.runPlanePass(tex, params.Generators.Deband); err == nil {
				tex = newTex
			} else {
				p.Latches.Debanding.Trip(p.logger, err)
			}
		}

		stage := planeStage(pt)
		if params.Hooks != nil && !params.Hooks.Empty(stage) && !p.Latches.Hooks.Disabled() {
			stageImg := frameio.NewTextureImg(tex, f.Repr, f.Space, pl.Components)
			stageImg = hook.InvokeAll(params.Hooks, stage, p.engine, stageImg, p.Latches.Hooks, p.logger)
			switch {
			case stageImg.InTexture():
				tex = stageImg.Texture()
			case stageImg.InShader():
				if err := stageImg.Materialize(p.engine, p.pool, tex.Format(), defaultBlend(), nil); err == nil {
					tex = stageImg.Texture()
				}
			}
		}

		if tex.Width() > w {
			w = tex.Width()
		}
		if tex.Height() > h {
			h = tex.Height()
		}

		name := fmt.Sprintf("plane%d", i)
		b.AddDescriptor(shader.Descriptor{Name: name, Kind: shader.DescriptorSampler2D, Binding: i})
		for c := 0; c < pl.Components; c++ {
			ch := pl.Mapping[c]
			if ch == frameio.ChannelNone {
				continue
			}
			if ch == frameio.ChannelA {
				hadAlpha = true
			}
			b.Body().Writef("color.%s = texture(%s, crop_uv).%s;\n", channelSwizzle(ch), name, componentSwizzle(c))
		}
	}
	if !hadAlpha {
		b.Body().WriteString("color.a = 1.0;\n")
	}
	// No "return color;" here: inputColorConvert/peakDetectPhase/mainScale/
	// outputColorConvert keep appending to this same accumulating shader
	// body before the final phase closes the function and materializes it.

	return frameio.NewShaderImg(b, w, h, f.Repr, f.Space, 4), hadAlpha, nil
}

// mergeCandidate reports whether plane i is worth merging with a later
// compatible plane per spec §4.E phase 3's trigger list (debanding enabled,
// a hook targets this plane type, complex scaling, or film grain).
func (p *Planner) mergeCandidate(f *frameio.Frame, planeTypes []frameio.PlaneType, i int, params RenderParams) bool {
	for j := i + 1; j < len(f.Planes); j++ {
		if !frameio.MergeCompatible(f.Planes[i], f.Planes[j], f.Repr.System) {
			continue
		}
		if params.Debanding || params.FilmGrain || params.Scale.Polar {
			return true
		}
		if params.Hooks != nil && !params.Hooks.Empty(planeStage(planeTypes[i])) {
			return true
		}
	}
	return false
}

// encodeVec4 packs four float32s little-endian, the tightly-packed
// representation shader.Variable.Value expects (spec §4.C "Variable
// upload").
func encodeVec4(a, b, c, d float32) []byte {
	out := make([]byte, 16)
	for i, v := range [4]float32{a, b, c, d} {
		bits := math.Float32bits(v)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
