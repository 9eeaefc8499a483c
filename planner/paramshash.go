package planner

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ParamsHash computes a stable 64-bit digest of the render-affecting fields
// of params, grounded on shader.Builder.Signature's xxhash scratch-buffer
// pattern (spec §4.G "params_hash": "pointer-typed sub-structs dereferenced
// and hashed by value... hooks hash by identity pointer... user LUTs hash
// by declared signature only"). The mixer uses this to decide whether a
// cached frame can be reused without repopulating it.
func ParamsHash(params RenderParams) uint64 {
	h := xxhash.New()
	var scratch [8]byte

	writeUint32 := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		h.Write(scratch[:4])
	}
	writeFloat64 := func(v float64) {
		binary.LittleEndian.PutUint64(scratch[:8], math.Float64bits(v))
		h.Write(scratch[:8])
	}
	writeBool := func(v bool) {
		if v {
			scratch[0] = 1
		} else {
			scratch[0] = 0
		}
		h.Write(scratch[:1])
	}
	writeString := func(s string) {
		writeUint32(uint32(len(s)))
		h.Write([]byte(s))
	}
	writeBytes := func(b []byte) {
		writeUint32(uint32(len(b)))
		h.Write(b)
	}

	// ColorMapParams
	writeBytes(params.ColorMap.ICCIn)
	writeBytes(params.ColorMap.ICCOut)
	writeBool(params.ColorMap.ForceDither)
	if params.ColorMap.Cone != nil {
		writeBool(true)
		writeUint32(uint32(params.ColorMap.Cone.Type))
		writeFloat64(params.ColorMap.Cone.Strength)
	} else {
		writeBool(false)
	}

	// Scale (FilterConfig), hashed by value.
	writeString(params.Scale.Kernel)
	writeString(params.Scale.Window)
	writeFloat64(params.Scale.Radius)
	writeBool(params.Scale.Polar)
	for _, p := range params.Scale.Params {
		writeFloat64(p)
	}

	writeBool(params.Debanding)
	writeBool(params.FilmGrain)
	writeBool(params.DelayedPeakDetectAllowed)

	// Overlays, hashed by value; each overlay's texture identity doesn't
	// affect compositing math the way its placement/color metadata does,
	// but a changed texture still changes the rendered result, so its
	// pointer identity is folded in alongside the value fields.
	writeUint32(uint32(len(params.Overlays)))
	for _, ov := range params.Overlays {
		writeString(fmt.Sprintf("%p", ov.Texture))
		writeFloat64(ov.Dst.X0)
		writeFloat64(ov.Dst.Y0)
		writeFloat64(ov.Dst.X1)
		writeFloat64(ov.Dst.Y1)
		scratch[0] = byte(ov.Repr.System)
		h.Write(scratch[:1])
		scratch[0] = byte(ov.Repr.Alpha)
		h.Write(scratch[:1])
		scratch[0] = byte(ov.Space.Primaries)
		h.Write(scratch[:1])
		scratch[0] = byte(ov.Space.Transfer)
		h.Write(scratch[:1])
	}

	// Hooks: *hook.Registry is a black-box collaborator (SPEC_FULL §3); two
	// renders with distinct registries may run different hook code even if
	// every other field matches, so identity, not content, is what a cache
	// hit needs to preserve. A nil registry hashes as an empty pointer.
	writeString(fmt.Sprintf("%p", params.Hooks))

	return h.Sum64()
}
