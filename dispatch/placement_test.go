package dispatch

import (
	"testing"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

func TestPlaceVariablesSmallGoesToPushConstants(t *testing.T) {
	caps := gpu.Caps{MaxPushConstantSize: 128, MaxUBOSize: 4096, InputVariables: true}
	vars := []shader.Variable{{Name: "gain", Kind: shader.KindFloat}}

	placements, pc, ubo, err := placeVariables(vars, caps)
	if err != nil {
		t.Fatalf("placeVariables: %v", err)
	}
	if placements[0].kind != placementPushConstant {
		t.Fatalf("expected push constant placement, got %v", placements[0].kind)
	}
	if pc == 0 {
		t.Fatalf("expected non-zero push constant usage")
	}
	if ubo != 0 {
		t.Fatalf("expected no UBO usage")
	}
}

func TestPlaceVariablesArrayGoesToUBO(t *testing.T) {
	caps := gpu.Caps{MaxPushConstantSize: 16, MaxUBOSize: 4096, InputVariables: true}
	vars := []shader.Variable{{Name: "weights", Kind: shader.KindVec4, ArrayLen: 8}}

	placements, _, ubo, err := placeVariables(vars, caps)
	if err != nil {
		t.Fatalf("placeVariables: %v", err)
	}
	if placements[0].kind != placementUniformBuffer {
		t.Fatalf("expected UBO placement for large array, got %v", placements[0].kind)
	}
	if ubo == 0 {
		t.Fatalf("expected non-zero UBO usage")
	}
}

func TestPlaceVariablesFallsBackToGlobalUniform(t *testing.T) {
	caps := gpu.Caps{MaxPushConstantSize: 0, MaxUBOSize: 0, InputVariables: true}
	vars := []shader.Variable{{Name: "gain", Kind: shader.KindFloat}}

	placements, _, _, err := placeVariables(vars, caps)
	if err != nil {
		t.Fatalf("placeVariables: %v", err)
	}
	if placements[0].kind != placementGlobalUniform {
		t.Fatalf("expected global uniform fallback, got %v", placements[0].kind)
	}
}

func TestPlaceVariablesFailsWithNoCapability(t *testing.T) {
	caps := gpu.Caps{}
	vars := []shader.Variable{{Name: "gain", Kind: shader.KindFloat}}

	if _, _, _, err := placeVariables(vars, caps); err == nil {
		t.Fatalf("expected placement failure with no supported destination")
	}
}

func TestPlaceVariablesDynamicPrefersPushConstants(t *testing.T) {
	caps := gpu.Caps{MaxPushConstantSize: 64, MaxUBOSize: 4096, InputVariables: true}
	vars := []shader.Variable{{Name: "time", Kind: shader.KindVec4, Dynamic: true}}

	placements, pc, _, err := placeVariables(vars, caps)
	if err != nil {
		t.Fatalf("placeVariables: %v", err)
	}
	if placements[0].kind != placementPushConstant {
		t.Fatalf("expected dynamic vec4 to prefer push constants, got %v", placements[0].kind)
	}
	if pc != 16 {
		t.Fatalf("unexpected push constant usage: %d", pc)
	}
}

func TestPlaceVariablesBudgetRespected(t *testing.T) {
	caps := gpu.Caps{MaxPushConstantSize: 8, MaxUBOSize: 4096, InputVariables: true}
	vars := []shader.Variable{
		{Name: "a", Kind: shader.KindFloat},
		{Name: "b", Kind: shader.KindFloat},
		{Name: "c", Kind: shader.KindFloat},
	}
	placements, pc, _, err := placeVariables(vars, caps)
	if err != nil {
		t.Fatalf("placeVariables: %v", err)
	}
	if pc > caps.MaxPushConstantSize {
		t.Fatalf("push constant budget exceeded: %d > %d", pc, caps.MaxPushConstantSize)
	}
	pushConstCount := 0
	for _, p := range placements {
		if p.kind == placementPushConstant {
			pushConstCount++
		}
	}
	if pushConstCount != 2 {
		t.Fatalf("expected exactly 2 of 3 float vars to fit in an 8-byte push constant budget, got %d", pushConstCount)
	}
}
