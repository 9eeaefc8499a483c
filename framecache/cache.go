package framecache

import (
	"log/slog"

	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/internal/logs"
	"github.com/gogpu/shade/texpool"
)

// Entry is one cached intermediate RGB frame (spec §4.F "Cached frame":
// "signature (opaque 64-bit), params_hash (64-bit), color_space,
// icc_profile, texture, evict_mark").
type Entry struct {
	Signature  uint64
	ParamsHash uint64
	ColorSpace frameio.ColorSpace
	ICCProfile []byte
	Texture    gpu.Texture

	marked bool
}

// Cache is the per-signature store of cached intermediate frames (spec
// component F). Unlike texpool.Pool, entries outlive any single render
// call; they're owned directly against the device and only released
// through Sweep (into a shared pool) or Destroy.
type Cache struct {
	device  gpu.Device
	logger  *slog.Logger
	entries map[uint64]*Entry
}

// New returns an empty Cache over device.
func New(device gpu.Device, logger *slog.Logger) *Cache {
	return &Cache{
		device:  device,
		logger:  logs.OrDefault(logger),
		entries: make(map[uint64]*Entry),
	}
}

// MarkAll marks every cached entry for eviction (spec §4.F "Cache
// management": "before examining inputs, mark every cached frame for
// eviction"). Called once at the start of a mix, before the input scan.
func (c *Cache) MarkAll() {
	for _, e := range c.entries {
		e.marked = true
	}
}

// Lookup returns the cached entry for signature, if any, clearing its
// eviction mark on a hit (spec §4.F: "if an input signature matches a
// cached frame, clear its mark").
func (c *Cache) Lookup(signature uint64) (*Entry, bool) {
	e, ok := c.entries[signature]
	if !ok {
		return nil, false
	}
	e.marked = false
	return e, true
}

// Allocate creates a fresh cache slot for signature, sized (w,h) in format,
// and stores it unmarked (spec §4.F: "if not, allocate a new cache slot").
// The texture is owned by the device directly, not by a texpool.Pool, since
// it must survive that pool's per-call Reset.
func (c *Cache) Allocate(signature uint64, w, h int, format gpu.Format) (*Entry, error) {
	caps := c.device.FormatCaps(format)
	tex, err := c.device.CreateTexture(gpu.TextureDescriptor{
		Width:      w,
		Height:     h,
		Format:     format,
		Sampleable: true,
		Renderable: true,
		Storable:   caps.Storable,
		Label:      "framecache",
	})
	if err != nil {
		return nil, err
	}
	e := &Entry{Signature: signature, Texture: tex}
	c.entries[signature] = e
	return e, nil
}

// EnsureSize returns the cache entry for signature sized (w,h) in format,
// reusing its existing texture when already that size and format, or
// replacing it in place otherwise. Used by mixer when a cache hit needs to
// be repopulated at different output dimensions than it was last rendered
// at.
func (c *Cache) EnsureSize(signature uint64, w, h int, format gpu.Format) (*Entry, error) {
	if e, ok := c.entries[signature]; ok {
		if e.Texture.Width() == w && e.Texture.Height() == h && e.Texture.Format() == format {
			return e, nil
		}
		c.device.DestroyTexture(e.Texture)
		delete(c.entries, signature)
	}
	return c.Allocate(signature, w, h, format)
}

// Sweep evicts every entry still marked, donating its texture into pool
// for reuse (spec §4.F: "after the scan, evict marked entries by returning
// their textures to a reusable intermediate-texture pool") and returns the
// number of entries evicted.
func (c *Cache) Sweep(pool *texpool.Pool) int {
	evicted := 0
	for sig, e := range c.entries {
		if !e.marked {
			continue
		}
		pool.Put(e.Texture, e.Texture.Format())
		delete(c.entries, sig)
		evicted++
	}
	if evicted > 0 {
		c.logger.Debug("framecache: evicted entries", "count", evicted)
	}
	return evicted
}

// Signatures returns the set of signatures currently held in the cache,
// used by spec §8's "Frame-cache GC" invariant.
func (c *Cache) Signatures() []uint64 {
	sigs := make([]uint64, 0, len(c.entries))
	for sig := range c.entries {
		sigs = append(sigs, sig)
	}
	return sigs
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int { return len(c.entries) }

// Destroy releases every remaining cached texture directly (spec §5
// "Lifetime"). Called at cache-owner (mixer) teardown.
func (c *Cache) Destroy() {
	for sig, e := range c.entries {
		c.device.DestroyTexture(e.Texture)
		delete(c.entries, sig)
	}
}
