// Package shader implements the shader-builder component (spec component B):
// it accumulates GLSL source text, declared variables, descriptor bindings,
// and vertex attributes, and derives a stable content Signature from them.
//
// A Builder never talks to a gpu.Device directly — it is handed to the
// dispatch engine (package dispatch), which compiles it into a gpu.Pass.
package shader

import "strconv"

// Kind enumerates the scalar/vector/matrix types a Variable may declare.
type Kind uint8

const (
	KindFloat Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindInt
	KindUInt
	KindMat3
	KindMat4
)

// baseSize is the byte size of one Kind's value (std140-ish, vec3 still
// rounds to 16 bytes for UBO layout purposes but not for push constants,
// handled by placement logic rather than baked in here).
var baseSize = map[Kind]uint32{
	KindFloat: 4,
	KindVec2:  8,
	KindVec3:  12,
	KindVec4:  16,
	KindInt:   4,
	KindUInt:  4,
	KindMat3:  36,
	KindMat4:  64,
}

// Size returns the tightly-packed byte size of one value of k (ArrayLen
// multiplies it).
func (k Kind) Size() uint32 { return baseSize[k] }

// GLSLType returns the GLSL type keyword for k.
func (k Kind) GLSLType() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindMat3:
		return "mat3"
	case KindMat4:
		return "mat4"
	default:
		return "float"
	}
}

// Small reports whether k is a 1-dimensional scalar, the push-constant
// eligibility test of spec §4.C step 1 ("1-dim, non-array").
func (k Kind) Small() bool {
	switch k {
	case KindFloat, KindInt, KindUInt:
		return true
	default:
		return false
	}
}

// Variable is one value a shader body reads, to be placed into a push
// constant, a uniform buffer, or a global uniform by the dispatch engine's
// variable placement algorithm (spec §4.C).
type Variable struct {
	Name string
	Kind Kind

	// ArrayLen is 0 for a scalar value, >0 for an array of ArrayLen values.
	ArrayLen int

	// Dynamic marks a variable that changes essentially every run (spec
	// §4.C step 1: "or explicitly dynamic"), biasing it toward push
	// constants even when not 1-dimensional.
	Dynamic bool

	// Value is the variable's current tightly-packed byte representation,
	// set by the caller before Finish/Compute/Vertex. It does not
	// participate in Signature (spec §8 "Signature stability" covers only
	// declared shape, not data) but is read by the dispatch engine's
	// per-variable upload diffing (spec §4.C "Variable upload").
	Value []byte
}

// Array reports whether the variable declares an array.
func (v Variable) Array() bool { return v.ArrayLen > 0 }

// Size returns the variable's total tightly-packed byte size.
func (v Variable) Size() uint32 {
	n := uint32(1)
	if v.ArrayLen > 0 {
		n = uint32(v.ArrayLen)
	}
	return v.Kind.Size() * n
}

// GLSLDecl returns the variable's declaration text, e.g. "float gain" or
// "vec4 weights[4]".
func (v Variable) GLSLDecl() string {
	decl := v.Kind.GLSLType() + " " + v.Name
	if v.ArrayLen > 0 {
		decl += arrayBrackets(v.ArrayLen)
	}
	return decl
}

func arrayBrackets(n int) string {
	return "[" + strconv.Itoa(n) + "]"
}
