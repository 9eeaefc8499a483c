package dispatch

import (
	"bytes"

	"github.com/gogpu/shade/shader"
)

// applyVariableUpload diffs each declared variable's current Value against
// the compiled pass's cached last-uploaded bytes (spec §4.C "Variable
// upload"), skipping unchanged variables. It returns the full push-constant
// buffer (always resubmitted), the UBO bytes to submit (nil unless at least
// one UBO member changed, so the caller issues at most one buffer write),
// and the set of changed global-uniform update records.
func applyVariableUpload(vars []shader.Variable, cp *compiledPass) (pushConstants []byte, uniformBuffer []byte, globals map[string][]byte) {
	var uboDirty bool
	for i, v := range vars {
		p := cp.placements[i]
		if bytes.Equal(v.Value, cp.lastUploaded[i]) {
			continue
		}
		cp.lastUploaded[i] = append(cp.lastUploaded[i][:0], v.Value...)

		switch p.kind {
		case placementPushConstant:
			copy(cp.pushConstants[p.offset:p.offset+p.size], v.Value)
		case placementUniformBuffer:
			copy(cp.uboScratch[p.offset:p.offset+p.size], v.Value)
			uboDirty = true
		case placementGlobalUniform:
			if globals == nil {
				globals = make(map[string][]byte)
			}
			globals[v.Name] = v.Value
		}
	}
	// Push constants are resubmitted every run regardless of diffing (the
	// backend call itself is cheap); only the UBO write, which costs a real
	// buffer upload, is skipped when nothing in it changed.
	if uboDirty {
		uniformBuffer = cp.uboScratch
	}
	return cp.pushConstants, uniformBuffer, globals
}
