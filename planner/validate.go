package planner

import "github.com/gogpu/shade/frameio"

// validateAndInfer is phase 1 (spec §4.E phase 1 "Validate & infer"): it
// validates f's plane invariants (frameio.Frame.Validate covers plane
// counts, component counts, channel ids, and the reference-plane
// requirement), derives each surviving plane's type, and fills in any
// color-space/color-repr fields the caller left zero.
func (p *Planner) validateAndInfer(f *frameio.Frame) (refPlane int, planeTypes []frameio.PlaneType, err error) {
	refPlane, err = f.Validate()
	if err != nil {
		return -1, nil, err
	}

	planeTypes = make([]frameio.PlaneType, len(f.Planes))
	for i, pl := range f.Planes {
		planeTypes[i] = pl.DeriveType(f.Repr.System)
	}

	refTex := f.Planes[refPlane].Texture
	if f.Space.Primaries == frameio.PrimariesUnknown {
		f.Space.Primaries = frameio.GuessPrimariesFromResolution(refTex.Width(), refTex.Height())
	}

	format := refTex.Format()
	if !format.IsFloat() {
		f.Repr.SampleDepth = format.ComponentDepth()
		if f.Repr.ColorDepth == 0 || f.Repr.ColorDepth > f.Repr.SampleDepth {
			f.Repr.ColorDepth = f.Repr.SampleDepth
		}
		f.Repr.BitShift = f.Repr.SampleDepth - f.Repr.ColorDepth
	}

	return refPlane, planeTypes, nil
}
