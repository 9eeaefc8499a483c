package shader

// DescriptorKind enumerates the resource-binding kinds a shader body can
// declare, driving which extension the preamble must enable (spec §4.C
// "Shader source generation": "conditionally enabling the subset of
// extensions actually needed by the descriptor list").
type DescriptorKind uint8

const (
	DescriptorSampler2D DescriptorKind = iota
	DescriptorStorageImage2D
	DescriptorUniformBuffer
	DescriptorStorageBuffer
	DescriptorTexelBuffer
	DescriptorExternalSampler
)

// Access qualifies a storage image/buffer descriptor's memory access.
type Access uint8

const (
	AccessReadOnly Access = iota
	AccessWriteOnly
	AccessReadWrite
)

func (a Access) GLSLQualifier() string {
	switch a {
	case AccessReadOnly:
		return "readonly"
	case AccessWriteOnly:
		return "writeonly"
	default:
		return ""
	}
}

// Descriptor is one binding in the pipeline's descriptor set (a sampled
// texture, a storage image, a uniform or storage buffer, a texel buffer, or
// an external/YUV sampler).
type Descriptor struct {
	Name    string
	Kind    DescriptorKind
	Binding int

	// FormatQualifier is the GLSL image format qualifier for storage
	// images/texel buffers, e.g. "rgba8", or "" to use format-unspecified
	// image load/store (requires the corresponding extension).
	FormatQualifier string

	Access Access
}

// requiresExtension returns the GLSL extension string a Descriptor needs, or
// "" if none.
func (d Descriptor) requiresExtension() string {
	switch d.Kind {
	case DescriptorStorageImage2D:
		if d.FormatQualifier == "" {
			return "GL_EXT_shader_image_load_store"
		}
		return ""
	case DescriptorUniformBuffer:
		return "" // core since GLSL 140 / GLES 300
	case DescriptorStorageBuffer:
		return "GL_ARB_shader_storage_buffer_object"
	case DescriptorTexelBuffer:
		return "GL_EXT_texture_buffer"
	case DescriptorExternalSampler:
		return "GL_OES_EGL_image_external"
	default:
		return ""
	}
}

// GLSLType returns the sampler/image/block type keyword for the descriptor.
func (d Descriptor) GLSLType() string {
	switch d.Kind {
	case DescriptorSampler2D:
		return "sampler2D"
	case DescriptorExternalSampler:
		return "samplerExternalOES"
	case DescriptorStorageImage2D:
		if d.FormatQualifier == "" {
			return "image2D"
		}
		return "layout(" + d.FormatQualifier + ") image2D"
	case DescriptorTexelBuffer:
		return "samplerBuffer"
	default:
		return ""
	}
}
