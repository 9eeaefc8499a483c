package gpu

// Format identifies a texture's pixel layout. The set is small and chosen to
// cover the planes/intermediates a shader rendering pipeline actually needs:
// single- and dual-channel planes (luma, chroma pairs), packed RGBA, and the
// floating-point formats linear-light processing requires.
type Format uint8

const (
	FormatInvalid Format = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8UnormSRGB
	FormatBGRA8Unorm
	FormatR16Unorm
	FormatRG16Unorm
	FormatRGBA16Unorm
	FormatR16Float
	FormatRG16Float
	FormatRGBA16Float
	FormatR32Float
	FormatRG32Float
	FormatRGBA32Float
	FormatRGB10A2Unorm
)

// formatInfo is static metadata about a Format. Component depth is the bit
// depth of the format's first channel, used by the planner to derive
// sample_depth for UNORM textures (spec §4.E phase 1).
type formatInfo struct {
	components int
	depth      int
	float      bool
}

var formatTable = map[Format]formatInfo{
	FormatR8Unorm:        {1, 8, false},
	FormatRG8Unorm:       {2, 8, false},
	FormatRGBA8Unorm:     {4, 8, false},
	FormatRGBA8UnormSRGB: {4, 8, false},
	FormatBGRA8Unorm:     {4, 8, false},
	FormatR16Unorm:       {1, 16, false},
	FormatRG16Unorm:      {2, 16, false},
	FormatRGBA16Unorm:    {4, 16, false},
	FormatR16Float:       {1, 16, true},
	FormatRG16Float:      {2, 16, true},
	FormatRGBA16Float:    {4, 16, true},
	FormatR32Float:       {1, 32, true},
	FormatRG32Float:      {2, 32, true},
	FormatRGBA32Float:    {4, 32, true},
	FormatRGB10A2Unorm:   {4, 10, false},
}

// Components returns the channel count, 1..4.
func (f Format) Components() int { return formatTable[f].components }

// ComponentDepth returns the bit depth of the format's first channel.
// For UNORM formats this is the planner's sample_depth (spec §4.E phase 1).
func (f Format) ComponentDepth() int { return formatTable[f].depth }

// IsFloat reports whether the format stores floating-point components
// (as opposed to normalized integers).
func (f Format) IsFloat() bool { return formatTable[f].float }

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// FormatCaps reports what a given Device can do with a Format, mirroring
// spec §6's "format enumeration with capability bits".
type FormatCaps struct {
	Sampleable      bool
	Renderable      bool
	Storable        bool
	Blittable       bool
	LinearSampling  bool
	Blendable       bool
	HostReadable    bool
}

// SupportsBoth reports whether caps support both sampling and rendering,
// the minimum bar for an intermediate texture (texpool.Pool.Get).
func (c FormatCaps) SupportsBoth() bool { return c.Sampleable && c.Renderable }
