package shader

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Signature computes a stable content hash over the builder's accumulated
// source text, variables, descriptors, and vertex attributes. Two builders
// that emitted identical source and declarations hash identically, satisfying
// spec §8's "Signature stability" invariant; the dispatch engine uses the
// result as the key into its compiled-pass cache.
func (b *Builder) Signature() uint64 {
	h := xxhash.New()
	var scratch [8]byte

	writeUint32 := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		h.Write(scratch[:4])
	}
	writeString := func(s string) {
		writeUint32(uint32(len(s)))
		h.Write([]byte(s))
	}

	writeString(b.scratch.Preamble.String())
	writeString(b.scratch.Body.String())
	writeString(b.scratch.VertexHead.String())
	writeString(b.scratch.VertexBody.String())

	writeUint32(uint32(len(b.Variables)))
	for _, v := range b.Variables {
		writeString(v.Name)
		scratch[0] = byte(v.Kind)
		h.Write(scratch[:1])
		writeUint32(uint32(v.ArrayLen))
		if v.Dynamic {
			scratch[0] = 1
		} else {
			scratch[0] = 0
		}
		h.Write(scratch[:1])
	}

	writeUint32(uint32(len(b.Descriptors)))
	for _, d := range b.Descriptors {
		writeString(d.Name)
		scratch[0] = byte(d.Kind)
		h.Write(scratch[:1])
		writeUint32(uint32(d.Binding))
		writeString(d.FormatQualifier)
		scratch[0] = byte(d.Access)
		h.Write(scratch[:1])
	}

	writeUint32(uint32(len(b.VertexAttrs)))
	for _, a := range b.VertexAttrs {
		writeString(a.Name)
		writeUint32(uint32(a.Location))
		writeUint32(a.Offset)
		scratch[0] = byte(a.Format)
		h.Write(scratch[:1])
	}

	writeUint32(uint32(b.PositionAttribute))
	if b.Compute {
		scratch[0] = 1
	} else {
		scratch[0] = 0
	}
	h.Write(scratch[:1])
	writeUint32(b.ComputeLocalSize[0])
	writeUint32(b.ComputeLocalSize[1])
	writeUint32(b.ComputeLocalSize[2])

	if b.Projection != nil {
		scratch[0] = 1
		h.Write(scratch[:1])
		for _, f := range b.Projection {
			binary.LittleEndian.PutUint32(scratch[:4], math.Float32bits(f))
			h.Write(scratch[:4])
		}
	} else {
		scratch[0] = 0
		h.Write(scratch[:1])
	}

	return h.Sum64()
}
