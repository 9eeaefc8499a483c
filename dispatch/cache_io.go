package dispatch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	cacheBlobVersion = 1
)

var cacheBlobMagic = [4]byte{'P', 'L', 'D', 'P'}

// ErrCacheVersionMismatch is returned by Load when the blob's version does
// not match cacheBlobVersion (spec §6: "A version mismatch aborts loading
// with a warning").
var ErrCacheVersionMismatch = errors.New("dispatch: cache blob version mismatch")

// Save serializes every successfully compiled pass's backend program binary
// into the cache blob format of spec §6: magic "PLDP", little-endian uint32
// version, uint32 entry count, then per entry uint64 signature, uint64
// length, and length bytes of opaque program binary.
func (e *Engine) Save() []byte {
	type entry struct {
		sig  uint64
		blob []byte
	}
	var entries []entry
	seen := make(map[uint64]bool)
	for sig, list := range e.entries {
		if seen[sig] {
			continue
		}
		for _, cp := range list {
			if cp.pass == nil {
				continue
			}
			if blob, ok := cp.pass.Binary(); ok {
				entries = append(entries, entry{sig, blob})
				seen[sig] = true
				break
			}
		}
	}

	// Map iteration order is randomized per range statement, so without a
	// sort step two Save() calls against an unchanged engine could legally
	// emit entries in different orders (spec §8 "Round-trip": "saving and
	// reloading a dispatch cache yields a byte-identical second save").
	sort.Slice(entries, func(i, j int) bool { return entries[i].sig < entries[j].sig })

	out := make([]byte, 0, 12)
	out = append(out, cacheBlobMagic[:]...)
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], cacheBlobVersion)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(entries)))
	out = append(out, hdr[:]...)

	for _, en := range entries {
		var rec [16]byte
		binary.LittleEndian.PutUint64(rec[0:8], en.sig)
		binary.LittleEndian.PutUint64(rec[8:16], uint64(len(en.blob)))
		out = append(out, rec[:]...)
		out = append(out, en.blob...)
	}
	return out
}

// Load parses a cache blob produced by Save and stages its entries so the
// next compile of a matching signature attaches the saved binary instead of
// recompiling from source (spec §4.C "save/load"). Unrecognized trailing
// data is ignored; duplicate signatures within the blob keep the first
// (already-compiled) entry encountered.
func (e *Engine) Load(blob []byte) error {
	if len(blob) < 12 {
		return fmt.Errorf("dispatch: cache blob too short")
	}
	if [4]byte(blob[0:4]) != cacheBlobMagic {
		return fmt.Errorf("dispatch: bad cache blob magic")
	}
	version := binary.LittleEndian.Uint32(blob[4:8])
	if version != cacheBlobVersion {
		e.logger.Warn("cache blob version mismatch", "got", version, "want", cacheBlobVersion)
		return ErrCacheVersionMismatch
	}
	count := binary.LittleEndian.Uint32(blob[8:12])

	off := 12
	for i := uint32(0); i < count; i++ {
		if off+16 > len(blob) {
			return fmt.Errorf("dispatch: cache blob truncated at entry %d", i)
		}
		sig := binary.LittleEndian.Uint64(blob[off : off+8])
		length := binary.LittleEndian.Uint64(blob[off+8 : off+16])
		off += 16
		if uint64(off)+length > uint64(len(blob)) {
			return fmt.Errorf("dispatch: cache blob truncated reading entry %d body", i)
		}
		data := blob[off : off+int(length)]
		off += int(length)

		if e.programCache.Contains(sig) {
			continue
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		e.programCache.Add(sig, cp)
	}
	return nil
}
