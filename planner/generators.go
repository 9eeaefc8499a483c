package planner

import (
	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
)

// FilterConfig names a scaling kernel by value (spec §4.G "Params hash":
// "filter configs hash their kernel/window by value"), enough detail for
// Generators.Scale to emit the right shader body without Planner needing to
// know anything about the math.
type FilterConfig struct {
	Kernel string
	Window string
	Radius float64
	Polar  bool
	Params [4]float64
}

// ConeParams parametrizes the cone-distortion (colorblindness) simulation
// supplement (SPEC_FULL §3).
type ConeParams struct {
	Type     int
	Strength float64
}

// Axis distinguishes the two passes of an orthogonal separable scaler.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Generators bundles every black-box image-processing algorithm the
// planner invokes by calling into shader-body-emitting functions supplied
// by the caller (spec §1 Non-goals, SPEC_FULL §4: "remain black-box
// collaborators invoked through hook.Func / a Generator interface"). A nil
// field means that optional capability is simply unavailable — Planner
// skips the step that would call it and proceeds without it; no Latch is
// tripped for a nil field.
type Generators struct {
	// DecodeColor and EncodeColor are required: every render needs a
	// source->RGB and RGB->target color transform (spec §4.E phases 5, 8).
	DecodeColor func(b *shader.Builder, repr frameio.ColorRepr, space frameio.ColorSpace) error
	EncodeColor func(b *shader.Builder, repr frameio.ColorRepr, space frameio.ColorSpace) error

	// Scale emits one axis of a separable kernel, or the whole kernel when
	// cfg.Polar is set (single pass, axis ignored) (spec §4.E phase 7).
	Scale func(b *shader.Builder, cfg FilterConfig, axis Axis) error

	// Deband emits a debanding pass body (spec §4.E phase 3 merge trigger:
	// "debanding enabled").
	Deband func(b *shader.Builder) error

	// ICC emits source->target ICC profile transform code (spec §4.E
	// phase 8: "apply source -> ICC_in -> ICC_out -> target").
	ICC func(b *shader.Builder, iccIn, iccOut []byte) error

	// Dither emits a dither pass for the given output sample depth (spec
	// §4.E phase 8: "apply dither if sample depth <= 16 (or forced)").
	Dither func(b *shader.Builder, depth int) error

	// PeakDetect runs a (typically subgroup-reduction) shader that updates
	// buf in place from img and returns the (possibly-reattached) img
	// (SPEC_FULL §3 "Peak-detect persistent buffer").
	PeakDetect func(e *dispatch.Engine, img *frameio.Img, buf gpu.Buffer) (*frameio.Img, error)

	// ConeSim emits the cone-distortion simulation pass body (SPEC_FULL §3
	// "Cone-distortion simulation").
	ConeSim func(b *shader.Builder, params ConeParams) error
}
