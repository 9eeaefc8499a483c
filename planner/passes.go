package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// runPlanePass builds a one-shot shader that samples src through a single
// descriptor named "src", hands it to fn to append the actual processing
// body, and materializes the result into a same-size, same-format pooled
// texture. Used for the per-plane debanding stage, which needs a fully
// materialized texture rather than inline shader text.
func (p *Planner) runPlanePass(src gpu.Texture, fn func(b *shader.Builder) error) (gpu.Texture, error) {
	b := p.engine.Begin(false)
	b.AddDescriptor(shader.Descriptor{Name: "src", Kind: shader.DescriptorSampler2D, Binding: 0})
	if err := fn(b); err != nil {
		p.engine.Abort(b)
		return nil, err
	}

	out := frameio.NewShaderImg(b, src.Width(), src.Height(), frameio.ColorRepr{}, frameio.ColorSpace{}, 4)
	if err := out.Materialize(p.engine, p.pool, src.Format(), defaultBlend(), nil); err != nil {
		return nil, err
	}
	return out.Texture(), nil
}
