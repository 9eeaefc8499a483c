package gpunoop

import "github.com/gogpu/shade/gpu"

// pass is a fake compiled gpu.Pass. It does not render anything; it just
// records every RunParams it was invoked with, and clears its Target (when
// present and Load is LoadActionClear) so idempotence-style tests can
// observe a deterministic result.
type pass struct {
	desc gpu.PassDescriptor
	Runs []gpu.RunParams
}

func (p *pass) Destroy() {}

func (p *pass) Run(params gpu.RunParams) error {
	p.Runs = append(p.Runs, params)
	if p.desc.Kind == gpu.PassKindRaster && params.Target != nil && p.desc.Load == gpu.LoadActionClear {
		return params.Target.Clear([4]float32{0, 0, 0, 1})
	}
	return nil
}

// Binary returns the concatenated shader source as a stand-in compiled
// program binary, or the binary supplied at creation time when the caller
// attached one (simulating a skip-recompile restore from a save/load
// cache blob).
func (p *pass) Binary() ([]byte, bool) {
	if len(p.desc.ProgramBinary) > 0 {
		return p.desc.ProgramBinary, true
	}
	src := p.desc.VertexSource + p.desc.FragmentSource + p.desc.ComputeSource
	if src == "" {
		return nil, false
	}
	return []byte(src), true
}
