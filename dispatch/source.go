package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

const (
	pushConstantBlockName = "pc_"
	uboBlockName          = "ubo_"
	uboBinding            = 0
)

// buildPreamble emits the shading-language version line, the subset of
// extensions actually needed by the builder's descriptors, and a default
// float/sampler precision statement for embedded (GLES) dialects
// (spec §4.C "Shader source generation").
func buildPreamble(b *shader.Builder, caps gpu.Caps) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#version %d%s\n", caps.GLSLVersion, versionProfileSuffix(caps))
	for _, ext := range b.RequiredExtensions() {
		fmt.Fprintf(&sb, "#extension %s : require\n", ext)
	}
	if caps.Dialect == gpu.DialectGLES {
		sb.WriteString("precision highp float;\n")
		sb.WriteString("precision highp sampler2D;\n")
	}
	return sb.String()
}

func versionProfileSuffix(caps gpu.Caps) string {
	if caps.Dialect == gpu.DialectGLES {
		return " es"
	}
	if caps.GLSLVersion >= 150 {
		return " core"
	}
	return ""
}

// buildPushConstantBlock emits the push-constant block (members sorted by
// offset) plus a #define per member aliasing its bare declared name to the
// block member access, so the user body can reference it unqualified.
func buildPushConstantBlock(vars []shader.Variable, placements []placement) string {
	type member struct {
		v shader.Variable
		p placement
	}
	var members []member
	for i, p := range placements {
		if p.kind == placementPushConstant {
			members = append(members, member{vars[i], p})
		}
	}
	if len(members) == 0 {
		return ""
	}
	sort.Slice(members, func(i, j int) bool { return members[i].p.offset < members[j].p.offset })

	var sb strings.Builder
	sb.WriteString("layout(push_constant) uniform PushConstants {\n")
	for _, m := range members {
		fmt.Fprintf(&sb, "    %s;\n", m.v.GLSLDecl())
	}
	fmt.Fprintf(&sb, "} %s;\n", pushConstantBlockName)
	for _, m := range members {
		fmt.Fprintf(&sb, "#define %s %s.%s\n", m.v.Name, pushConstantBlockName, m.v.Name)
	}
	return sb.String()
}

// buildUniformBufferBlock emits the std140 UBO and its member aliases,
// analogous to buildPushConstantBlock.
func buildUniformBufferBlock(vars []shader.Variable, placements []placement) string {
	type member struct {
		v shader.Variable
		p placement
	}
	var members []member
	for i, p := range placements {
		if p.kind == placementUniformBuffer {
			members = append(members, member{vars[i], p})
		}
	}
	if len(members) == 0 {
		return ""
	}
	sort.Slice(members, func(i, j int) bool { return members[i].p.offset < members[j].p.offset })

	var sb strings.Builder
	fmt.Fprintf(&sb, "layout(std140, binding = %d) uniform UniformBuffer {\n", uboBinding)
	for _, m := range members {
		fmt.Fprintf(&sb, "    %s;\n", m.v.GLSLDecl())
	}
	fmt.Fprintf(&sb, "} %s;\n", uboBlockName)
	for _, m := range members {
		fmt.Fprintf(&sb, "#define %s %s.%s\n", m.v.Name, uboBlockName, m.v.Name)
	}
	return sb.String()
}

// buildGlobalUniforms emits `uniform <type> <name>;` for every
// global-uniform placed variable.
func buildGlobalUniforms(vars []shader.Variable, placements []placement) string {
	var sb strings.Builder
	for i, p := range placements {
		if p.kind == placementGlobalUniform {
			fmt.Fprintf(&sb, "uniform %s;\n", vars[i].GLSLDecl())
		}
	}
	return sb.String()
}

// buildDescriptorBindings emits one binding declaration per descriptor, with
// the correct sampler/image type and access/memory qualifiers.
func buildDescriptorBindings(descs []shader.Descriptor) string {
	var sb strings.Builder
	for _, d := range descs {
		qualifier := d.Access.GLSLQualifier()
		if qualifier != "" {
			qualifier += " "
		}
		fmt.Fprintf(&sb, "layout(binding = %d) uniform %s%s %s;\n", d.Binding, qualifier, d.GLSLType(), d.Name)
	}
	return sb.String()
}

// buildFragmentSource assembles a complete fragment shader for a raster
// pass (compute bodies go through buildComputeSource): preamble, push-constant block,
// descriptor bindings, global uniforms, the user body wrapped in
// shaderMain(), and a main() stub that calls it as a color expression.
func buildFragmentSource(b *shader.Builder, placements []placement, caps gpu.Caps) string {
	var sb strings.Builder
	sb.WriteString(buildPreamble(b, caps))
	sb.WriteString(buildPushConstantBlock(b.Variables, placements))
	sb.WriteString(buildDescriptorBindings(b.Descriptors))
	sb.WriteString(buildUniformBufferBlock(b.Variables, placements))
	sb.WriteString(buildGlobalUniforms(b.Variables, placements))
	sb.WriteString("out vec4 fragColor;\n")
	sb.WriteString("vec4 shaderMain() {\n")
	sb.WriteString(b.Body().String())
	sb.WriteString("}\n")
	sb.WriteString("void main() {\n    fragColor = shaderMain();\n}\n")
	return sb.String()
}

// buildComputeSource assembles a standalone compute shader (not a
// framebuffer rewrite): preamble, local size, bindings, and the user body
// called as a side effect.
func buildComputeSource(b *shader.Builder, placements []placement, caps gpu.Caps) string {
	var sb strings.Builder
	sb.WriteString(buildPreamble(b, caps))
	fmt.Fprintf(&sb, "layout(local_size_x = %d, local_size_y = %d, local_size_z = %d) in;\n",
		b.ComputeLocalSize[0], b.ComputeLocalSize[1], b.ComputeLocalSize[2])
	sb.WriteString(buildPushConstantBlock(b.Variables, placements))
	sb.WriteString(buildDescriptorBindings(b.Descriptors))
	sb.WriteString(buildUniformBufferBlock(b.Variables, placements))
	sb.WriteString(buildGlobalUniforms(b.Variables, placements))
	sb.WriteString("void shaderMain() {\n")
	sb.WriteString(b.Body().String())
	sb.WriteString("}\n")
	sb.WriteString("void main() {\n    shaderMain();\n}\n")
	return sb.String()
}

// buildVertexSource generates the passthrough vertex shader for a raster
// pass: gl_Position from the designated position attribute (optionally
// projected), every other attribute forwarded as a varying.
func buildVertexSource(b *shader.Builder, caps gpu.Caps) string {
	var sb strings.Builder
	sb.WriteString(buildPreamble(b, caps))
	for i, a := range b.VertexAttrs {
		fmt.Fprintf(&sb, "layout(location = %d) in %s in_%s;\n", a.Location, vertexFormatGLSL(a.Format), a.Name)
		if i != b.PositionAttribute {
			fmt.Fprintf(&sb, "out %s var_%s;\n", vertexFormatGLSL(a.Format), a.Name)
		}
	}
	sb.WriteString("void main() {\n")
	if len(b.VertexAttrs) > 0 {
		pos := b.VertexAttrs[b.PositionAttribute]
		posExpr := "in_" + pos.Name
		if vertexFormatComponents(pos.Format) < 4 {
			posExpr = fmt.Sprintf("vec4(%s, %s)", posExpr, zeroPad(4-vertexFormatComponents(pos.Format)))
		}
		if b.Projection != nil {
			sb.WriteString("    mat3 proj = mat3(")
			for i, f := range b.Projection {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%v", f)
			}
			sb.WriteString(");\n")
			fmt.Fprintf(&sb, "    gl_Position = vec4(proj * (%s).xyz, 1.0);\n", posExpr)
		} else {
			fmt.Fprintf(&sb, "    gl_Position = %s;\n", posExpr)
		}
		for i, a := range b.VertexAttrs {
			if i == b.PositionAttribute {
				continue
			}
			fmt.Fprintf(&sb, "    var_%s = in_%s;\n", a.Name, a.Name)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func vertexFormatGLSL(f gpu.VertexFormat) string {
	switch f {
	case gpu.VertexFormatFloat32:
		return "float"
	case gpu.VertexFormatFloat32x2:
		return "vec2"
	case gpu.VertexFormatFloat32x3:
		return "vec3"
	default:
		return "vec4"
	}
}

func vertexFormatComponents(f gpu.VertexFormat) int {
	switch f {
	case gpu.VertexFormatFloat32:
		return 1
	case gpu.VertexFormatFloat32x2:
		return 2
	case gpu.VertexFormatFloat32x3:
		return 3
	default:
		return 4
	}
}

func zeroPad(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "0.0"
	}
	if n == 1 {
		return parts[0]
	}
	return strings.Join(parts, ", ")
}
