package dispatch

import (
	"fmt"
	"strings"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// buildComputeFramebufferSource rewrites a fragment-style builder into a
// 16x16 compute shader that writes directly into a storage image, per spec
// §4.C "Compute-shader-as-framebuffer": the target is declared as a storage
// image, integer coordinates are derived from gl_GlobalInvocationID plus the
// rect origin and clipped against the rect, blending (if enabled) loads the
// destination and blends with explicit per-factor expressions, and every
// non-position vertex attribute is reconstructed by bilinear interpolation
// among the 4 quad-corner values instead of hardware rasterizer
// interpolation.
func buildComputeFramebufferSource(b *shader.Builder, placements []placement, caps gpu.Caps, targetFormat gpu.Format, blend gpu.BlendParams) string {
	var sb strings.Builder
	sb.WriteString(buildPreamble(b, caps))
	fmt.Fprintf(&sb, "layout(local_size_x = %d, local_size_y = %d) in;\n", computePromotionTileSize, computePromotionTileSize)
	fmt.Fprintf(&sb, "layout(binding = %d, %s) uniform image2D outImage;\n", computeFramebufferImageBinding, imageFormatQualifier(targetFormat))
	sb.WriteString("uniform ivec2 rectOrigin;\n")
	sb.WriteString("uniform ivec2 rectEnd;\n")

	for i, a := range b.VertexAttrs {
		if i == b.PositionAttribute {
			continue
		}
		fmt.Fprintf(&sb, "uniform vec4 %s_corners[4];\n", a.Name)
	}

	sb.WriteString(buildPushConstantBlock(b.Variables, placements))
	sb.WriteString(buildDescriptorBindings(b.Descriptors))
	sb.WriteString(buildUniformBufferBlock(b.Variables, placements))
	sb.WriteString(buildGlobalUniforms(b.Variables, placements))

	sb.WriteString("vec4 shaderMain(vec2 normCoord) {\n")
	for i, a := range b.VertexAttrs {
		if i == b.PositionAttribute {
			continue
		}
		fmt.Fprintf(&sb, "    vec4 var_%s = mix(mix(%s_corners[0], %s_corners[1], normCoord.x), mix(%s_corners[2], %s_corners[3], normCoord.x), normCoord.y);\n",
			a.Name, a.Name, a.Name, a.Name, a.Name)
	}
	sb.WriteString(b.Body().String())
	sb.WriteString("}\n")

	sb.WriteString("void main() {\n")
	sb.WriteString("    ivec2 coord = ivec2(gl_GlobalInvocationID.xy) + rectOrigin;\n")
	sb.WriteString("    if (coord.x >= rectEnd.x || coord.y >= rectEnd.y) return;\n")
	sb.WriteString("    vec2 normCoord = vec2(coord - rectOrigin) / vec2(rectEnd - rectOrigin);\n")
	sb.WriteString("    vec4 color = shaderMain(normCoord);\n")
	if blend.Enabled {
		sb.WriteString("    vec4 dst = imageLoad(outImage, coord);\n")
		fmt.Fprintf(&sb, "    vec3 srcRGBFactor = vec3(%s);\n", blendFactorExpr(blend.SrcRGB, "color", "dst"))
		fmt.Fprintf(&sb, "    vec3 dstRGBFactor = vec3(%s);\n", blendFactorExpr(blend.DstRGB, "color", "dst"))
		fmt.Fprintf(&sb, "    float srcAFactor = %s;\n", blendFactorExpr(blend.SrcA, "color", "dst"))
		fmt.Fprintf(&sb, "    float dstAFactor = %s;\n", blendFactorExpr(blend.DstA, "color", "dst"))
		sb.WriteString("    color = vec4(color.rgb * srcRGBFactor + dst.rgb * dstRGBFactor, color.a * srcAFactor + dst.a * dstAFactor);\n")
	}
	sb.WriteString("    imageStore(outImage, coord, color);\n")
	sb.WriteString("}\n")
	return sb.String()
}

const (
	computePromotionTileSize       = 16
	computeFramebufferImageBinding = 0
)

// blendFactorExpr returns a scalar-broadcastable GLSL expression for f,
// where src/dst name the color vec4 expressions it may reference.
func blendFactorExpr(f gpu.BlendFactor, src, dst string) string {
	switch f {
	case gpu.BlendFactorZero:
		return "0.0"
	case gpu.BlendFactorOne:
		return "1.0"
	case gpu.BlendFactorSrcAlpha:
		return src + ".a"
	case gpu.BlendFactorOneMinusSrcAlpha:
		return "1.0 - " + src + ".a"
	case gpu.BlendFactorDstAlpha:
		return dst + ".a"
	case gpu.BlendFactorOneMinusDstAlpha:
		return "1.0 - " + dst + ".a"
	default:
		return "1.0"
	}
}

// imageFormatQualifier maps a gpu.Format to the GLSL image layout qualifier
// an image2D binding needs.
func imageFormatQualifier(f gpu.Format) string {
	switch f {
	case gpu.FormatRGBA8Unorm, gpu.FormatRGBA8UnormSRGB:
		return "rgba8"
	case gpu.FormatRGBA16Float:
		return "rgba16f"
	case gpu.FormatRGBA32Float:
		return "rgba32f"
	case gpu.FormatR32Float:
		return "r32f"
	case gpu.FormatRG32Float:
		return "rg32f"
	case gpu.FormatR16Float:
		return "r16f"
	case gpu.FormatRG16Float:
		return "rg16f"
	case gpu.FormatR8Unorm:
		return "r8"
	case gpu.FormatRG8Unorm:
		return "rg8"
	default:
		return "rgba8"
	}
}
