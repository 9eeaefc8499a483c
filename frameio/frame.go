package frameio

import (
	"errors"

	"github.com/gogpu/shade/gpu"
)

// LUTKind distinguishes how a frame's LUT is applied (spec GLOSSARY
// "LUT kind").
type LUTKind uint8

const (
	// LUTNative is applied in the frame's source encoding.
	LUTNative LUTKind = iota
	// LUTNormalized is applied in linear light.
	LUTNormalized
	// LUTConversion performs source->target conversion outright.
	LUTConversion
)

// LUT is an opaque color lookup table with a declared kind and signature
// (the content itself is owned by the caller; this module only reasons
// about Kind and Signature, per spec §4.G "Params hash": "user LUTs hash by
// declared signature only").
type LUT struct {
	Kind      LUTKind
	Signature uint64
	Texture   gpu.Texture
}

// Overlay is a texture composited onto the working image during the main
// scale phase (spec §4.E phase 7: "Overlays are drawn onto the intermediate
// texture between pre-kernel and the kernel itself").
type Overlay struct {
	Texture gpu.Texture
	Dst     Rect
	Repr    ColorRepr
	Space   ColorSpace
}

// Frame is an ordered list of 1..4 planes plus encoding metadata
// (spec §3 "Frame").
type Frame struct {
	Planes []*Plane
	Repr   ColorRepr
	Space  ColorSpace

	ICCProfile []byte
	LUT        *LUT
	Overlays   []Overlay

	// Crop is the floating-point crop rectangle in pixel space. A zero
	// value means "infer from the reference plane's texture dimensions"
	// (spec §4.E phase 1 "infer missing crop rects from texture
	// dimensions").
	Crop Rect
}

// ErrNoPlanes is returned by Validate when a frame has no planes.
var ErrNoPlanes = errors.New("frameio: frame has no planes")

// ErrTooManyPlanes is returned when a frame exceeds the maximum plane
// count.
var ErrTooManyPlanes = errors.New("frameio: frame exceeds maximum plane count")

// ErrNoReferencePlane is returned when no plane carries the reference
// sample grid (spec §3 "Frame": "chroma-only/alpha-only frames are
// rejected").
var ErrNoReferencePlane = errors.New("frameio: frame has no luma/RGB/XYZ reference plane")

// ErrDegenerateCrop is returned when a frame's crop rectangle is zero-area
// on exactly one axis rather than both (spec §7 "Error Handling Design":
// "zero-area crop that isn't also zero-area on both axes" is a validation
// failure, not an instruction to infer the full frame).
var ErrDegenerateCrop = errors.New("frameio: crop rectangle is degenerate on one axis only")

const maxPlanes = 4

// Validate checks spec §3 "Frame"'s invariants and spec §4.E phase 1's
// "Validate & infer" plane checks, returning the index of the inferred
// reference plane on success.
func (f *Frame) Validate() (referencePlane int, err error) {
	if len(f.Planes) == 0 {
		return -1, ErrNoPlanes
	}
	if len(f.Planes) > maxPlanes {
		return -1, ErrTooManyPlanes
	}
	if f.Crop.OneAxisDegenerate() {
		return -1, ErrDegenerateCrop
	}
	referencePlane = -1
	for i, p := range f.Planes {
		if err := p.Validate(); err != nil {
			return -1, err
		}
		if referencePlane == -1 && p.DeriveType(f.Repr.System).CarriesReferenceGrid() {
			referencePlane = i
		}
	}
	if referencePlane == -1 {
		return -1, ErrNoReferencePlane
	}
	return referencePlane, nil
}

// InferCrop returns f.Crop if non-empty, else the reference plane's full
// texture dimensions (spec §4.E phase 1 "infer missing crop rects from
// texture dimensions").
func (f *Frame) InferCrop(referencePlane int) Rect {
	if !f.Crop.Empty() {
		return f.Crop
	}
	tex := f.Planes[referencePlane].Texture
	return Rect{X0: 0, Y0: 0, X1: float64(tex.Width()), Y1: float64(tex.Height())}
}
