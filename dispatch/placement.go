package dispatch

import (
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// placementKind identifies where a declared variable ends up.
type placementKind uint8

const (
	placementUnplaced placementKind = iota
	placementGlobalUniform
	placementUniformBuffer
	placementPushConstant
)

// placement is the resolved binding location of one declared variable
// (spec §3 "Variable placement").
type placement struct {
	kind   placementKind
	index  int    // variable index for global-uniform
	offset uint32 // byte offset for uniform-buffer/push-constant
	stride uint32 // UBO std140-ish stride, ignored for push constants
	size   uint32 // tightly packed size
}

// uboStride rounds a variable's tight size up to its UBO alignment. vec3
// rounds to a 16-byte slot (std140), matrices to 16-byte multiples; scalars
// and vec2/vec4 stay as-is.
func uboStride(v shader.Variable) uint32 {
	size := v.Size()
	switch v.Kind {
	case shader.KindVec3:
		if v.ArrayLen > 0 {
			return 16 * uint32(v.ArrayLen)
		}
		return 16
	case shader.KindMat3:
		return 48 // 3 columns each padded to a vec4
	default:
		if v.ArrayLen > 0 && size%16 != 0 {
			return ((size + 15) / 16) * 16
		}
		return size
	}
}

// placeVariables runs the two-pass greedy placement algorithm of spec §4.C.
// It returns one placement per variable in declaration order, and the total
// push-constant and UBO byte sizes consumed. An error is returned when a
// variable cannot be placed anywhere the backend supports.
func placeVariables(vars []shader.Variable, caps gpu.Caps) ([]placement, uint32, uint32, error) {
	placements := make([]placement, len(vars))
	var pcOffset uint32
	var uboOffset uint32

	supportsPushConstants := caps.MaxPushConstantSize > 0
	supportsUBO := caps.MaxUBOSize > 0
	supportsGlobals := caps.InputVariables

	tentative := make([]bool, len(vars))

	// Pass 1: greedy-false. Only "small" or explicitly dynamic variables
	// are tentatively placed in push constants.
	for i, v := range vars {
		if !supportsPushConstants {
			continue
		}
		if !(v.Kind.Small() && !v.Array()) && !v.Dynamic {
			continue
		}
		size := v.Size()
		aligned := alignUp(pcOffset, pushConstantAlign(v))
		if aligned+size > caps.MaxPushConstantSize {
			continue
		}
		placements[i] = placement{kind: placementPushConstant, offset: aligned, size: size}
		pcOffset = aligned + size
		tentative[i] = true
	}

	// Pass 2: greedy-true. Anything still unplaced tries push constants
	// greedily, then UBO (if non-dynamic), then a global uniform.
	for i, v := range vars {
		if tentative[i] {
			continue
		}
		size := v.Size()
		if supportsPushConstants {
			aligned := alignUp(pcOffset, pushConstantAlign(v))
			if aligned+size <= caps.MaxPushConstantSize {
				placements[i] = placement{kind: placementPushConstant, offset: aligned, size: size}
				pcOffset = aligned + size
				continue
			}
		}
		if supportsUBO && !v.Dynamic {
			stride := uboStride(v)
			aligned := alignUp(uboOffset, uboAlign(v, caps))
			if aligned+stride <= caps.MaxUBOSize {
				placements[i] = placement{kind: placementUniformBuffer, offset: aligned, stride: stride, size: size}
				uboOffset = aligned + stride
				continue
			}
		}
		if supportsGlobals {
			placements[i] = placement{kind: placementGlobalUniform, index: i}
			continue
		}
		return nil, 0, 0, errNoPlacement(v.Name)
	}

	return placements, pcOffset, uboOffset, nil
}

func pushConstantAlign(v shader.Variable) uint32 {
	switch v.Kind {
	case shader.KindVec3, shader.KindVec4, shader.KindMat3, shader.KindMat4:
		return 16
	case shader.KindVec2:
		return 8
	default:
		return 4
	}
}

func uboAlign(v shader.Variable, caps gpu.Caps) uint32 {
	a := pushConstantAlign(v)
	if caps.UBOOffsetAlignment > a {
		return caps.UBOOffsetAlignment
	}
	return a
}

func alignUp(v, a uint32) uint32 {
	if a == 0 {
		return v
	}
	return (v + a - 1) / a * a
}
