package hook

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
)

// Invoke runs fn at stage against img, enforcing the hook dispatch
// discipline every call site shares: skip entirely once latch has tripped;
// on fn's own error, trip latch and fall back to the unmodified img; on a
// non-resizable stage, trip latch and fall back if fn changed the working
// dimensions anyway (spec §4.E phase 3: "resizable stages may change
// dimensions; non-resizable must preserve them"). ok is false whenever img
// was not replaced by fn's result.
func Invoke(stage Stage, fn Func, e *dispatch.Engine, img *frameio.Img, latch *Latch, logger *slog.Logger) (out *frameio.Img, ok bool) {
	if latch.Disabled() {
		return img, false
	}

	w, h := img.Width, img.Height
	result, err := fn(e, img)
	if err != nil {
		latch.Trip(logger, err)
		return img, false
	}
	if !stage.Resizable() && (result.Width != w || result.Height != h) {
		latch.Trip(logger, fmt.Errorf("hook.Invoke: %s hook changed dimensions %dx%d -> %dx%d at non-resizable stage", stage, w, h, result.Width, result.Height))
		return img, false
	}
	return result, true
}

// InvokeAll runs every hook registered at stage in order, threading img
// through each; it stops early (keeping the last good img) the moment
// latch trips.
func InvokeAll(r *Registry, stage Stage, e *dispatch.Engine, img *frameio.Img, latch *Latch, logger *slog.Logger) *frameio.Img {
	for _, fn := range r.At(stage) {
		if latch.Disabled() {
			break
		}
		img, _ = Invoke(stage, fn, e, img, latch, logger)
	}
	return img
}
