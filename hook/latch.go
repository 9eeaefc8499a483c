package hook

import "log/slog"

// Latch is a boolean "capability disabled" flag that trips once and stays
// tripped for the owner's lifetime, logging a single warning on the
// transition (spec §4.E "Degradation policy": "Every optional capability...
// has a boolean disabled latch. On first failure of that capability the
// latch is set and a warning logged; subsequent calls silently skip it.
// Latches persist for the planner's lifetime."). The render planner owns
// one Latch per optional capability (compute, storable intermediates,
// linear HDR, debanding, hooks, scaler complexity, overlays, ICC,
// peak-detect, grain, mixing); this type lives in hook because the
// hook-dispatch call sites (plane hooks, film grain, main-scale hooks) are
// the most frequent trippers.
type Latch struct {
	name     string
	disabled bool
}

// NewLatch names a capability for logging purposes.
func NewLatch(name string) *Latch {
	return &Latch{name: name}
}

// Disabled reports whether this capability has already failed once.
func (l *Latch) Disabled() bool { return l.disabled }

// Trip marks the capability permanently disabled, logging at WARN only on
// the first call (subsequent Trip calls are silent, matching "subsequent
// calls silently skip it").
func (l *Latch) Trip(logger *slog.Logger, err error) {
	if l.disabled {
		return
	}
	l.disabled = true
	if logger != nil {
		logger.Warn("capability disabled after failure", "capability", l.name, "error", err)
	}
}

// Reset clears the latch, used only by tests; production code never resets
// a tripped latch within a planner's lifetime.
func (l *Latch) Reset() { l.disabled = false }
