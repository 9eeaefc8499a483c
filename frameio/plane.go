package frameio

import (
	"fmt"

	"github.com/gogpu/shade/gpu"
)

// ChannelID is a logical channel a plane's texture channel may be mapped
// to (spec §3 "Plane": "component mapping vector mapping texture channel
// index -> logical channel id (Y, Cb, Cr, R, G, B, A, none)").
type ChannelID uint8

const (
	ChannelNone ChannelID = iota
	ChannelY
	ChannelCb
	ChannelCr
	ChannelR
	ChannelG
	ChannelB
	ChannelA
)

func (c ChannelID) valid() bool { return c <= ChannelA }

// PlaneType is derived from a plane's component mapping under the frame's
// color system (spec §4.E phase 1 "derive plane types (luma/chroma/alpha/
// rgb/xyz) from component mapping under the color system").
type PlaneType uint8

const (
	PlaneTypeUnknown PlaneType = iota
	PlaneTypeLuma
	PlaneTypeChroma
	PlaneTypeAlpha
	PlaneTypeRGB
	PlaneTypeXYZ
)

// Plane is a texture handle plus channel-mapping metadata (spec §3
// "Plane").
type Plane struct {
	Texture gpu.Texture

	// Components is the plane's channel count, 1..4.
	Components int

	// Mapping[i] is the logical channel the plane's i-th texture channel
	// carries, for i < Components.
	Mapping [4]ChannelID

	// ShiftX, ShiftY are the sub-pixel offsets of this plane's sample grid
	// relative to the frame's reference grid (spec GLOSSARY "Subsampling
	// shift").
	ShiftX, ShiftY float64
}

// Validate checks spec §3 "Plane" invariants: components in [1,4] and every
// mapped channel id within the valid enumeration.
func (p *Plane) Validate() error {
	if p.Components < 1 || p.Components > 4 {
		return fmt.Errorf("frameio: plane component count %d out of range [1,4]", p.Components)
	}
	for i := 0; i < p.Components; i++ {
		if !p.Mapping[i].valid() {
			return fmt.Errorf("frameio: plane channel mapping[%d] = %d out of range", i, p.Mapping[i])
		}
	}
	return nil
}

// DeriveType infers the plane's PlaneType from its component mapping under
// system (spec §4.E phase 1).
func (p *Plane) DeriveType(system ColorSystem) PlaneType {
	var hasY, hasChroma, hasAlpha, hasRGB bool
	for i := 0; i < p.Components; i++ {
		switch p.Mapping[i] {
		case ChannelY:
			hasY = true
		case ChannelCb, ChannelCr:
			hasChroma = true
		case ChannelA:
			hasAlpha = true
		case ChannelR, ChannelG, ChannelB:
			hasRGB = true
		}
	}
	switch {
	case system == ColorSystemXYZ && hasRGB:
		return PlaneTypeXYZ
	case hasRGB:
		return PlaneTypeRGB
	case hasY:
		return PlaneTypeLuma
	case hasChroma:
		return PlaneTypeChroma
	case hasAlpha:
		return PlaneTypeAlpha
	default:
		return PlaneTypeUnknown
	}
}

// CarriesReferenceGrid reports whether this plane's type can serve as the
// frame's reference sample grid (luma, RGB, or XYZ) (spec §3 "Frame":
// "at least one plane carries the reference sample grid").
func (t PlaneType) CarriesReferenceGrid() bool {
	return t == PlaneTypeLuma || t == PlaneTypeRGB || t == PlaneTypeXYZ
}

// MergeCompatible reports whether p and other may be merged into a single
// wider-channel shader pass (spec §4.E phase 3 "Plane read"): both have
// textures, the same derived type, the same dimensions, the same sub-pixel
// shift, and at most 4 components between them. No format capabilities are
// queried; whether a format exists for the combined channel count is not
// checked.
func MergeCompatible(p, other *Plane, system ColorSystem) bool {
	if p.Texture == nil || other.Texture == nil {
		return false
	}
	if p.DeriveType(system) != other.DeriveType(system) {
		return false
	}
	if p.Texture.Width() != other.Texture.Width() || p.Texture.Height() != other.Texture.Height() {
		return false
	}
	if p.ShiftX != other.ShiftX || p.ShiftY != other.ShiftY {
		return false
	}
	return p.Components+other.Components <= 4
}
