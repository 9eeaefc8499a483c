package frameio

// PassState is per-call scratch holding the current Img, the reference
// source rectangle, the destination rectangle, inferred per-plane types, and
// a bitset marking which pool textures are already in use this call
// (spec §3 "Pass-state").
type PassState struct {
	Img *Img

	SrcRect Rect
	DstRect Rect

	PlaneTypes []PlaneType

	// inUse marks pool-texture slot indices already claimed this call, so a
	// later phase of the same call does not hand the same slot to two
	// concurrent intermediate textures (spec §4.D "usage bits are reset per
	// top-level call"; this bitset is the per-call half of that contract,
	// texpool.Pool.Reset is the per-call reset itself).
	inUse map[int]bool
}

// NewPassState starts a fresh Pass-state for one top-level render call.
func NewPassState(img *Img, src, dst Rect, planeTypes []PlaneType) *PassState {
	return &PassState{Img: img, SrcRect: src, DstRect: dst, PlaneTypes: planeTypes, inUse: make(map[int]bool)}
}

// MarkInUse records that pool-texture slot is claimed for the remainder of
// this call.
func (ps *PassState) MarkInUse(slot int) { ps.inUse[slot] = true }

// InUse reports whether slot was already claimed this call.
func (ps *PassState) InUse(slot int) bool { return ps.inUse[slot] }

// Reset clears the in-use bitset for a new top-level call, reusing the
// PassState value itself.
func (ps *PassState) Reset(img *Img, src, dst Rect, planeTypes []PlaneType) {
	ps.Img = img
	ps.SrcRect = src
	ps.DstRect = dst
	ps.PlaneTypes = planeTypes
	for k := range ps.inUse {
		delete(ps.inUse, k)
	}
}
