package planner

import (
	"fmt"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/hook"
	"github.com/gogpu/shade/shader"
)

// fireHookStage invokes every hook registered at stage against img, gated on
// the shared hooks latch, returning img unchanged if there's nothing
// registered or hooks are disabled.
func fireHookStage(p *Planner, params RenderParams, stage hook.Stage, img *frameio.Img) *frameio.Img {
	if params.Hooks == nil || params.Hooks.Empty(stage) || p.Latches.Hooks.Disabled() {
		return img
	}
	return hook.InvokeAll(params.Hooks, stage, p.engine, img, p.Latches.Hooks, p.logger)
}

// mainScale is phase 7 (spec §4.E phase 7 "Main scale"): resize img to
// (dstW, dstH), linearizing and sigmoidizing around an upscale on an SDR
// transfer, running the user's filter generator for scaling configurations
// too complex for the backend's native texture sampling (or when the device
// lacks hardware linear sampling for the working format), drawing overlays
// between the pre-kernel and kernel hook stages, and firing every reserved
// scaling hook stage in spec order.
func (p *Planner) mainScale(img *frameio.Img, dstW, dstH int, dst *frameio.Frame, params RenderParams) (*frameio.Img, error) {
	sameSize := img.Width == dstW && img.Height == dstH
	upscaling := dstW > img.Width || dstH > img.Height
	linearize := !sameSize && upscaling && !img.Space.Transfer.IsHDR() && !p.Latches.LinearHDR.Disabled()

	cur := img
	if linearize {
		b, err := ensureShader(p, cur)
		if err != nil {
			return img, err
		}
		b.Body().WriteString("color.rgb = shade_to_linear(color.rgb);")
		cur = frameio.NewShaderImg(b, cur.Width, cur.Height, cur.Repr, cur.Space, cur.Components)
		cur = fireHookStage(p, params, hook.StageLinear, cur)

		b, err = ensureShader(p, cur)
		if err != nil {
			return img, err
		}
		b.Body().WriteString("color.rgb = shade_sigmoidize(color.rgb);")
		cur = frameio.NewShaderImg(b, cur.Width, cur.Height, cur.Repr, cur.Space, cur.Components)
		cur = fireHookStage(p, params, hook.StageSigmoid, cur)
	}

	cur = fireHookStage(p, params, hook.StagePreKernel, cur)

	if len(params.Overlays) > 0 && !p.Latches.Overlays.Disabled() {
		cur = fireHookStage(p, params, hook.StagePreOverlay, cur)
		b, err := ensureShader(p, cur)
		if err != nil {
			return img, err
		}
		drawOverlays(b, params.Overlays)
		cur = frameio.NewShaderImg(b, cur.Width, cur.Height, cur.Repr, cur.Space, cur.Components)
	}

	if !sameSize {
		b, err := ensureShader(p, cur)
		if err != nil {
			return img, err
		}
		complexFilter := params.Scale.Polar || (params.Scale.Kernel != "" && params.Scale.Kernel != "bilinear")

		if !p.device.FormatCaps(intermediateFormat(dst)).LinearSampling {
			p.Latches.LinearSampling.Trip(p.logger, fmt.Errorf("planner: format %v lacks hardware linear sampling", intermediateFormat(dst)))
		}
		// Bilinear/bicubic resizing is only free (the backend's own
		// texture-sampling filter performing the resample) when the working
		// format actually supports hardware linear sampling; once that's
		// false the generator black box has to do the resample itself, same
		// as a genuinely complex filter configuration (spec §4.E phase 7:
		// "Prefer built-in hardware sampling for bilinear/bicubic when
		// linear sampling is available").
		needsGenerator := complexFilter || p.Latches.LinearSampling.Disabled()

		if needsGenerator && !p.Latches.ScalerComplexity.Disabled() && params.Generators.Scale != nil {
			if err := params.Generators.Scale(b, params.Scale, AxisHorizontal); err != nil {
				p.Latches.ScalerComplexity.Trip(p.logger, err)
			} else if !params.Scale.Polar {
				if err := params.Generators.Scale(b, params.Scale, AxisVertical); err != nil {
					p.Latches.ScalerComplexity.Trip(p.logger, err)
				}
			}
		}
		// The target rect Finish() writes differs from the source's sampled
		// grid either way; when the generator above already rewrote the
		// sample coordinates itself this is just the declared resize, and
		// otherwise it's what makes the backend's implicit hardware
		// resample happen.
		cur = frameio.NewShaderImg(b, dstW, dstH, cur.Repr, cur.Space, cur.Components)
	}

	cur = fireHookStage(p, params, hook.StagePostKernel, cur)

	if linearize {
		b, err := ensureShader(p, cur)
		if err != nil {
			return img, err
		}
		b.Body().WriteString("color.rgb = shade_unsigmoidize(color.rgb);")
		b.Body().WriteString("color.rgb = shade_to_gamma(color.rgb);")
		cur = frameio.NewShaderImg(b, cur.Width, cur.Height, cur.Repr, cur.Space, cur.Components)
	}

	cur = fireHookStage(p, params, hook.StageScaled, cur)
	return cur, nil
}

// drawOverlays appends a bounds-checked alpha blend against gl_FragCoord for
// each overlay, composited directly into the in-flight combine shader rather
// than through a separate pass per overlay (spec §3 "Overlay").
func drawOverlays(b *shader.Builder, overlays []frameio.Overlay) {
	for i, ov := range overlays {
		name := fmt.Sprintf("overlay%d", i)
		b.AddDescriptor(shader.Descriptor{Name: name, Kind: shader.DescriptorSampler2D, Binding: i})
		b.Body().Writef(
			"if (gl_FragCoord.x >= %g && gl_FragCoord.x < %g && gl_FragCoord.y >= %g && gl_FragCoord.y < %g) {\n",
			ov.Dst.X0, ov.Dst.X1, ov.Dst.Y0, ov.Dst.Y1,
		)
		b.Body().Writef("  vec4 ov = texture(%s, uv);\n", name)
		b.Body().WriteString("  color.rgb = mix(color.rgb, ov.rgb, ov.a);\n")
		b.Body().WriteString("  color.a = max(color.a, ov.a);\n")
		b.Body().WriteString("}\n")
	}
}
