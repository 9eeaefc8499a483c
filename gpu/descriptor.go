package gpu

// TextureDescriptor parametrizes Device.CreateTexture. The pool always
// requests Sampleable=Renderable=true and Storable iff the format supports
// storage (spec §4.D).
type TextureDescriptor struct {
	Width, Height int
	Format        Format
	Sampleable    bool
	Renderable    bool
	Storable      bool
	Label         string
}

// BufferDescriptor parametrizes Device.CreateBuffer.
type BufferDescriptor struct {
	Size        uint64
	HostVisible bool
	Label       string
}

// PassKind distinguishes a raster pass (fragment shader into a 2D region of a
// renderable target, or a user vertex stream) from a compute pass.
type PassKind uint8

const (
	PassKindRaster PassKind = iota
	PassKindCompute
)

// LoadAction controls how a raster pass's target is initialized.
type LoadAction uint8

const (
	LoadActionLoad LoadAction = iota
	LoadActionClear
	LoadActionDontCare
)

// BlendFactor enumerates the blend-equation terms the compute-as-framebuffer
// rewrite must synthesize explicitly (spec §4.C).
type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendParams describes a simple src-over style blend equation. Equal
// BlendParams values (by field equality) are required for two passes to
// share a cache entry (spec §4.C "Pass lookup").
type BlendParams struct {
	Enabled bool
	SrcRGB  BlendFactor
	DstRGB  BlendFactor
	SrcA    BlendFactor
	DstA    BlendFactor
}

// VertexFormat enumerates the attribute component layouts a vertex stream may
// use.
type VertexFormat uint8

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// VertexAttribute describes one attribute of a user-supplied vertex stream
// (spec §3 "Img" / §4.C "vertex(shader, target, vertex buffer/data, ...)").
type VertexAttribute struct {
	Name     string
	Location int
	Offset   uint32
	Format   VertexFormat
}

// PassDescriptor is the fully-resolved description of a runnable Pass,
// constructed by the dispatch engine from a shader.Builder plus a target
// configuration (spec §3 "Compiled pass", §4.C "Pass lookup").
type PassDescriptor struct {
	Kind PassKind

	// VertexSource, FragmentSource and ComputeSource hold the complete
	// generated shader text (spec §4.C "Shader source generation"):
	// ComputeSource for PassKindCompute, VertexSource+FragmentSource for
	// PassKindRaster.
	VertexSource   string
	FragmentSource string
	ComputeSource  string

	TargetFormat Format
	Blend        BlendParams
	Load         LoadAction

	VertexAttributes []VertexAttribute
	VertexStride     uint32

	// PushConstantSize and UBOSize are the byte sizes this pass's variable
	// placement requires, used by Device implementations that must
	// pre-allocate descriptor space.
	PushConstantSize uint32
	UBOSize          uint32

	// ProgramBinary, if non-nil, is a previously saved backend program
	// binary for this exact signature, offered so CreatePass can skip
	// recompilation (spec §4.C "save/load").
	ProgramBinary []byte

	Label string
}

// RunParams parametrizes Pass.Run. A raster pass uses Target and Rect; a
// compute pass uses GroupCounts, and a compute pass promoted from a
// framebuffer write (dispatch.Engine.Finish) also carries Target and Rect.
type RunParams struct {
	// Target and Rect select the 2D region written for a raster pass.
	Target Texture
	Rect   Rect

	// GroupCounts is the compute dispatch size for a compute pass not bound
	// to a framebuffer region (spec §4.C "compute(shader, group counts |
	// effective area)").
	GroupCounts [3]uint32

	PushConstants []byte
	UniformBuffer Buffer

	// VertexBuffer and VertexCount drive a user vertex stream
	// (spec §4.C "vertex(...)").
	VertexBuffer Buffer
	VertexData   []byte
	VertexCount  int

	Scissor Rect
	Flipped [2]bool

	// GlobalUniforms carries the variable-update records for variables
	// placed as global uniforms (spec §4.C "Variable upload": "for globals,
	// enqueue a 'variable update' record"), keyed by declared name.
	GlobalUniforms map[string][]byte

	Timer Timer
}
