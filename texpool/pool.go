package texpool

import "github.com/gogpu/shade/gpu"

// slot is one dense pool entry (spec §3 "Pool texture": "Lifetime = pool
// lifetime; recreated in place when dimensions or format change"), grounded
// on the teacher's core/track.TrackerIndexAllocator dense-slot-with-reuse
// pattern, specialized here to a single resource type with in-place
// recreation instead of index recycling.
type slot struct {
	tex    gpu.Texture
	w, h   int
	format gpu.Format
	used   bool
}

// Pool recycles renderable textures by (w, h, format) (spec §4.D).
type Pool struct {
	device gpu.Device
	slots  []*slot
}

// New returns an empty Pool over device.
func New(device gpu.Device) *Pool {
	return &Pool{device: device}
}

// Get returns a texture sized exactly (w, h) in format fmt, reusing the
// least-different unused slot (spec §4.D selection: "argmin over unused
// entries of (|w-Wi| + |h-Hi| + (fmt mismatch ? 1000 : 0))"), recreating it
// in place if its dimensions or format differ, or creating a new slot on a
// miss. Storable is derived from the backend's reported format
// capabilities, not requested by the caller.
func (p *Pool) Get(w, h int, format gpu.Format) (gpu.Texture, error) {
	best := -1
	bestScore := -1
	for i, s := range p.slots {
		if s.used {
			continue
		}
		score := absInt(w-s.w) + absInt(h-s.h)
		if s.format != format {
			score += 1000
		}
		if best == -1 || score < bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 {
		tex, err := p.create(w, h, format)
		if err != nil {
			return nil, err
		}
		p.slots = append(p.slots, &slot{tex: tex, w: w, h: h, format: format, used: true})
		return tex, nil
	}

	s := p.slots[best]
	if s.w != w || s.h != h || s.format != format {
		p.device.DestroyTexture(s.tex)
		tex, err := p.create(w, h, format)
		if err != nil {
			return nil, err
		}
		s.tex, s.w, s.h, s.format = tex, w, h, format
	}
	s.used = true
	return s.tex, nil
}

func (p *Pool) create(w, h int, format gpu.Format) (gpu.Texture, error) {
	caps := p.device.FormatCaps(format)
	return p.device.CreateTexture(gpu.TextureDescriptor{
		Width:      w,
		Height:     h,
		Format:     format,
		Sampleable: true,
		Renderable: true,
		Storable:   caps.Storable,
		Label:      "texpool",
	})
}

// Put donates an externally-owned texture to the pool as an unused slot,
// available to a later Get the same way any pool-created texture is (spec
// §4.F "Cache management": "evict marked entries by returning their
// textures to a reusable intermediate-texture pool"). The caller must not
// use tex again except through the pool.
func (p *Pool) Put(tex gpu.Texture, format gpu.Format) {
	p.slots = append(p.slots, &slot{tex: tex, w: tex.Width(), h: tex.Height(), format: format, used: false})
}

// Reset clears every slot's "used" bit, called once per top-level planner
// call (spec §4.D "usage bits are reset per top-level call").
func (p *Pool) Reset() {
	for _, s := range p.slots {
		s.used = false
	}
}

// Len returns the number of slots the pool holds (created by Get or donated
// through Put), the "peak
// concurrent set size" invariant of spec §8 observes through this.
func (p *Pool) Len() int { return len(p.slots) }

// Destroy releases every pooled texture. Called at pool-owner teardown
// (spec §5 "Lifetime": "all GPU objects created by the library must be
// destroyed before the backend").
func (p *Pool) Destroy() {
	for _, s := range p.slots {
		p.device.DestroyTexture(s.tex)
	}
	p.slots = nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
