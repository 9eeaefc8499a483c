package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/hook"
)

// Latches bundles the boolean "capability disabled" flags spec §4.E
// "Degradation policy" names, one per optional capability, persisting for
// the Planner's lifetime. Mixer reuses the same set (its "mixing" latch is
// one of the names here) since the mixer recursively drives the same
// Planner (spec §4.G "Fallback": "set the mixing-disabled latch"). Unlike
// the others, LinearSampling trips from a static device capability check
// rather than a runtime failure (spec §7 "Capability shortfall": "lack of
// linear sampling where required").
type Latches struct {
	Compute              *hook.Latch
	StorableIntermediate *hook.Latch
	LinearHDR            *hook.Latch
	Debanding            *hook.Latch
	Hooks                *hook.Latch
	ScalerComplexity     *hook.Latch
	Overlays             *hook.Latch
	ICC                  *hook.Latch
	PeakDetect           *hook.Latch
	Grain                *hook.Latch
	Mixing               *hook.Latch
	LinearSampling       *hook.Latch
}

// NewLatches constructs a fresh set of untripped latches.
func NewLatches() *Latches {
	return &Latches{
		Compute:              hook.NewLatch("compute"),
		StorableIntermediate: hook.NewLatch("storable-intermediate"),
		LinearHDR:            hook.NewLatch("linear-hdr"),
		Debanding:            hook.NewLatch("debanding"),
		Hooks:                hook.NewLatch("hooks"),
		ScalerComplexity:     hook.NewLatch("scaler-complexity"),
		Overlays:             hook.NewLatch("overlays"),
		ICC:                  hook.NewLatch("icc"),
		PeakDetect:           hook.NewLatch("peak-detect"),
		Grain:                hook.NewLatch("grain"),
		Mixing:               hook.NewLatch("mixing"),
		LinearSampling:       hook.NewLatch("linear-sampling"),
	}
}

// ColorMapParams controls the input/output color conversion phases (spec
// §4.E phases 5, 8).
type ColorMapParams struct {
	// ICCIn, ICCOut are opaque ICC profile blobs; output conversion uses
	// the ICC path only when both are set and differ (spec §4.E phase 8:
	// "If a user ICC pair differs").
	ICCIn, ICCOut []byte

	// ForceDither applies dither regardless of target sample depth (spec
	// §4.E phase 8: "apply dither if sample depth <= 16 (or forced)").
	ForceDither bool

	// Cone, if non-nil, requests cone-distortion simulation at the output
	// stage (SPEC_FULL §3 "Cone-distortion simulation").
	Cone *ConeParams
}

// RenderParams is the parameter bundle threaded through one Planner.Render
// call (spec §4.E "Contract": "(source frame, target frame, params)").
type RenderParams struct {
	Hooks      *hook.Registry
	Generators Generators
	ColorMap   ColorMapParams
	Scale      FilterConfig

	// Debanding enables the debanding merge trigger (spec §4.E phase 3).
	Debanding bool

	// FilmGrain enables the AV1-film-grain hook stage (spec §4.E phase 3,
	// SPEC_FULL §3).
	FilmGrain bool

	// DelayedPeakDetectAllowed lets HDR peak detect attach lazily even
	// without intermediate textures available this call (spec §4.E
	// phase 6).
	DelayedPeakDetectAllowed bool

	// Overlays are drawn between pre-kernel and kernel during main scale
	// (spec §4.E phase 7).
	Overlays []frameio.Overlay
}
