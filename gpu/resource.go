package gpu

// Resource is the base interface for all GPU objects created through a
// Device. Adapted from the teacher's hal.Resource: a single Destroy method,
// idempotent destruction is the implementation's responsibility.
type Resource interface {
	Destroy()
}

// Rect is an integer pixel-space rectangle, half-open on [X0,X1)x[Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns X1-X0.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns Y1-Y0.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Empty reports whether the rect has zero area on at least one axis.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Texture is an opaque renderable/sampleable/optionally-storable GPU image
// (spec §3 "Pool texture", §6 "texture create/destroy/upload/download/clear/
// blit/invalidate/poll").
type Texture interface {
	Resource

	Width() int
	Height() int
	Format() Format

	Sampleable() bool
	Renderable() bool
	Storable() bool

	// Upload writes host pixels into rect. data must be tightly packed for
	// Format.Components()*bytes-per-component.
	Upload(rect Rect, data []byte) error

	// Download reads rect back to host memory.
	Download(rect Rect) ([]byte, error)

	// Clear fills the whole texture with a constant color.
	Clear(color [4]float32) error

	// Blit copies srcRect of src into dstRect of this texture, scaling if the
	// rects differ in size. Requires FormatCaps.Blittable on both formats.
	Blit(src Texture, srcRect, dstRect Rect) error

	// Invalidate hints the backend that current contents may be discarded.
	Invalidate()

	// Poll returns true once any asynchronous upload/download affecting this
	// texture has completed.
	Poll() bool
}

// Buffer is an opaque linear GPU memory region (spec §6 "buffer create/
// destroy/write/read/copy/poll").
type Buffer interface {
	Resource

	Size() uint64

	Write(offset uint64, data []byte) error
	Read(offset, size uint64) ([]byte, error)
	Copy(dst Buffer, srcOffset, dstOffset, size uint64) error
	Poll() bool
}

// Pass is a compiled, runnable GPU pass: one draw call or one compute
// dispatch, built from exactly one PassDescriptor (spec §3 "Compiled pass").
type Pass interface {
	Resource

	// Run executes the pass. For a raster pass, params.Target must be set;
	// for a compute pass, params.GroupCounts is used instead.
	Run(params RunParams) error

	// Binary returns the backend-compiled program binary for this pass, if
	// the backend supports extracting one (spec §6 "Cache blob format").
	// ok is false when the backend has no binary representation to offer.
	Binary() (blob []byte, ok bool)
}

// Timer is an opaque GPU timestamp query pair.
type Timer interface {
	Resource

	// Query returns the elapsed nanoseconds and whether the result is ready.
	Query() (ns uint64, ready bool)
}

// Device is the backend surface this module depends on. Every method here
// corresponds to one bullet of spec §6's "Backend GPU surface consumed".
type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
	DestroyTexture(Texture)

	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	DestroyBuffer(Buffer)

	CreatePass(desc PassDescriptor) (Pass, error)
	DestroyPass(Pass)

	CreateTimer() (Timer, error)
	DestroyTimer(Timer)

	// FormatCaps reports what operations a Format supports on this Device.
	FormatCaps(Format) FormatCaps

	// Caps reports fixed device capability flags.
	Caps() Caps

	// Flush submits queued commands without waiting.
	Flush()

	// Finish blocks until all submitted work completes.
	Finish() error

	// IsFailed reports a fatal backend failure (device lost), detected
	// lazily and surfaced to the caller on the next call (spec §7).
	IsFailed() bool
}
