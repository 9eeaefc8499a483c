package shader

import (
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/internal/scratch"
)

// Builder accumulates one shader's GLSL source text, declared Variables,
// Descriptors, and vertex attributes before it is handed to the dispatch
// engine. Builders are recycled from a free-list (dispatch.Engine.Begin);
// Reset clears all accumulated state so the same Builder can be reused for
// the next shader.
type Builder struct {
	id       uint64
	unique   bool
	scratch  scratch.Set

	Variables   []Variable
	Descriptors []Descriptor
	VertexAttrs []gpu.VertexAttribute

	// PositionAttribute indexes VertexAttrs for the raster vertex shader's
	// gl_Position source (spec §4.C "designated position attribute").
	PositionAttribute int

	// Projection, if non-nil, is multiplied into gl_Position (spec §4.C
	// "optionally multiplied by a 3x3 coordinate projection").
	Projection *[9]float32

	// Compute marks a shader body meant to run as a compute pass rather
	// than a raster fragment shader.
	Compute bool

	// ComputeLocalSize is the declared workgroup size for a compute body.
	ComputeLocalSize [3]uint32
}

// New returns a fresh, empty Builder.
func New() *Builder {
	return &Builder{ComputeLocalSize: [3]uint32{1, 1, 1}}
}

// Reset clears all accumulated source, variables, descriptors, and vertex
// attributes, preparing the Builder for reuse from the free-list.
func (b *Builder) Reset() {
	b.scratch.Reset()
	b.Variables = b.Variables[:0]
	b.Descriptors = b.Descriptors[:0]
	b.VertexAttrs = b.VertexAttrs[:0]
	b.PositionAttribute = 0
	b.Projection = nil
	b.Compute = false
	b.ComputeLocalSize = [3]uint32{1, 1, 1}
	b.unique = false
}

// SetID assigns the name-mangling identifier used when the builder was
// obtained with Begin(unique=true) (spec §4.C "assigning a fresh identifier
// (for name mangling) when unique").
func (b *Builder) SetID(id uint64, unique bool) {
	b.id = id
	b.unique = unique
}

// ID returns the builder's name-mangling identifier.
func (b *Builder) ID() uint64 { return b.id }

// Unique reports whether this builder was assigned a fresh identifier.
func (b *Builder) Unique() bool { return b.unique }

// Body returns the mutable scratch buffer generator hooks append GLSL
// statements/expressions to — the "user body" of spec §4.C.
func (b *Builder) Body() *scratch.Buffer { return &b.scratch.Body }

// AddVariable declares a new shader variable and returns its index.
func (b *Builder) AddVariable(v Variable) int {
	b.Variables = append(b.Variables, v)
	return len(b.Variables) - 1
}

// SetVariableValue overwrites the current byte value of the variable at
// index i, read by the dispatch engine at Finish/Compute/Vertex time.
func (b *Builder) SetVariableValue(i int, value []byte) {
	b.Variables[i].Value = value
}

// AddDescriptor declares a new resource binding and returns its index.
func (b *Builder) AddDescriptor(d Descriptor) int {
	b.Descriptors = append(b.Descriptors, d)
	return len(b.Descriptors) - 1
}

// AddVertexAttribute declares a new vertex attribute and returns its index.
func (b *Builder) AddVertexAttribute(a gpu.VertexAttribute) int {
	b.VertexAttrs = append(b.VertexAttrs, a)
	return len(b.VertexAttrs) - 1
}

// RequiredExtensions returns the set of GLSL extension strings this
// builder's descriptor list needs, deduplicated, in declaration order
// (spec §4.C "Shader source generation").
func (b *Builder) RequiredExtensions() []string {
	seen := map[string]bool{}
	var exts []string
	for _, d := range b.Descriptors {
		ext := d.requiresExtension()
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}
