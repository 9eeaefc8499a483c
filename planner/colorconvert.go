package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/hook"
	"github.com/gogpu/shade/shader"
)

// inputColorConvert is phase 5 (spec §4.E phase 5 "Input color
// conversion"): apply the source LUT if it is NATIVE or CONVERSION kind
// (normalizing bit depth first), then — unless that LUT was a full
// CONVERSION — decode to RGB in the image's working color space, then
// apply any NORMALIZED-kind LUT, then invoke the RGB-stage hook.
func (p *Planner) inputColorConvert(img *frameio.Img, src *frameio.Frame, params RenderParams) (*frameio.Img, error) {
	b, err := ensureShader(p, img)
	if err != nil {
		return img, err
	}

	lut := src.LUT
	fullConversion := false
	if lut != nil && (lut.Kind == frameio.LUTNative || lut.Kind == frameio.LUTConversion) {
		b.Body().Writef("color = color * float(%d) / float(%d);", (1 << src.Repr.BitShift), 1)
		applyLUT(b, "source_lut", 0)
		fullConversion = lut.Kind == frameio.LUTConversion
	}

	if !fullConversion && params.Generators.DecodeColor != nil {
		if err := params.Generators.DecodeColor(b, src.Repr, src.Space); err != nil {
			return img, err
		}
	}

	if lut != nil && lut.Kind == frameio.LUTNormalized {
		applyLUT(b, "source_lut_normalized", 1)
	}

	rgbRepr := frameio.ColorRepr{System: frameio.ColorSystemRGB, Levels: frameio.LevelsFull, Alpha: src.Repr.Alpha}
	out := frameio.NewShaderImg(b, img.Width, img.Height, rgbRepr, src.Space, 4)

	if params.Hooks != nil && !params.Hooks.Empty(hook.StageRGB) && !p.Latches.Hooks.Disabled() {
		out = hook.InvokeAll(params.Hooks, hook.StageRGB, p.engine, out, p.Latches.Hooks, p.logger)
	}
	return out, nil
}

// outputColorConvert is phase 8 (spec §4.E phase 8 "Output color
// conversion"): route through ICC if a user ICC pair differs, else a
// direct source->target transform; honor LUT kinds symmetrically at the
// output end; encode into the target's color repr; apply cone-distortion
// simulation if requested; apply dither when the target's sample depth is
// at or below 16 bits, or when forced.
func (p *Planner) outputColorConvert(img *frameio.Img, dst *frameio.Frame, params RenderParams) (*frameio.Img, error) {
	b, err := ensureShader(p, img)
	if err != nil {
		return img, err
	}

	if len(params.ColorMap.ICCIn) > 0 && len(params.ColorMap.ICCOut) > 0 &&
		string(params.ColorMap.ICCIn) != string(params.ColorMap.ICCOut) &&
		!p.Latches.ICC.Disabled() {
		if params.Generators.ICC != nil {
			if err := params.Generators.ICC(b, params.ColorMap.ICCIn, params.ColorMap.ICCOut); err != nil {
				p.Latches.ICC.Trip(p.logger, err)
			}
		}
	}

	if dst.LUT != nil && dst.LUT.Kind == frameio.LUTNormalized {
		applyLUT(b, "target_lut_normalized", 2)
	}

	if params.Generators.EncodeColor != nil {
		if err := params.Generators.EncodeColor(b, dst.Repr, dst.Space); err != nil {
			return img, err
		}
	}

	if dst.LUT != nil && (dst.LUT.Kind == frameio.LUTNative || dst.LUT.Kind == frameio.LUTConversion) {
		applyLUT(b, "target_lut", 3)
	}

	if params.ColorMap.Cone != nil && !p.Latches.ICC.Disabled() && params.Generators.ConeSim != nil {
		if err := params.Generators.ConeSim(b, *params.ColorMap.Cone); err != nil {
			p.Latches.ICC.Trip(p.logger, err)
		}
	}

	depth := dst.Repr.ColorDepth
	if depth == 0 {
		depth = dst.Repr.SampleDepth
	}
	if (depth > 0 && depth <= 16 || params.ColorMap.ForceDither) && params.Generators.Dither != nil {
		if err := params.Generators.Dither(b, depth); err != nil {
			p.logger.Warn("dither generator failed, continuing without dither", "error", err)
		}
	}

	b.Body().WriteString("return color;\n")
	return frameio.NewShaderImg(b, img.Width, img.Height, dst.Repr, dst.Space, img.Components), nil
}

// applyLUT emits a sampling call against a LUT bound at the next available
// descriptor binding. The LUT texture itself is supplied out of band by the
// caller (frameio.LUT carries a declared Kind/Signature for hashing, not a
// bindable resource this package owns).
func applyLUT(b *shader.Builder, name string, binding int) {
	b.AddDescriptor(shader.Descriptor{Name: name, Kind: shader.DescriptorSampler2D, Binding: binding})
	b.Body().Writef("color = texture(%s, uv);", name)
}

// ensureShader returns img's held builder, sampling it back into shader
// state first if an earlier phase already materialized it to a texture.
func ensureShader(p *Planner, img *frameio.Img) (*shader.Builder, error) {
	if b := img.Shader(); b != nil {
		return b, nil
	}
	return img.Sample(p.engine, 0, false)
}
