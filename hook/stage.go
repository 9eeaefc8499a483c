package hook

// Stage names a point in the render planner's pipeline at which a user hook
// may be invoked (spec §4.E phase 3 "apply user hooks registered at that
// plane's input stage"; phase 7 "Fire hooks at linear, sigmoid, pre-overlay,
// pre-kernel, post-kernel, and scaled stages").
type Stage uint8

const (
	// StagePlaneLuma, StagePlaneChroma, StagePlaneAlpha, StagePlaneRGB, and
	// StagePlaneXYZ fire once per surviving plane, keyed by that plane's
	// derived type, during the plane-read phase.
	StagePlaneLuma Stage = iota
	StagePlaneChroma
	StagePlaneAlpha
	StagePlaneRGB
	StagePlaneXYZ

	// StageRGB fires once after input color conversion has decoded the
	// working image to RGB (spec §4.E phase 5: "invoke the RGB-stage
	// hook").
	StageRGB

	// StageLinear, StageSigmoid, StagePreOverlay, StagePreKernel,
	// StagePostKernel, and StageScaled fire during the main-scale phase, in
	// pipeline order (spec §4.E phase 7).
	StageLinear
	StageSigmoid
	StagePreOverlay
	StagePreKernel
	StagePostKernel
	StageScaled

	// StageFilmGrain is reserved for AV1 film grain application, modeled as
	// an ordinary hook so it shares the abort-disables-latch machinery
	// instead of a bespoke code path (SPEC_FULL §3 "AV1 film grain as a
	// per-plane stage").
	StageFilmGrain
)

// Resizable reports whether a hook at this stage is permitted to change the
// working image's dimensions (spec §4.E phase 3: "resizable stages may
// change dimensions; non-resizable must preserve them"). Only the per-plane
// input stages are resizable; every later stage operates on an
// already-established working size.
func (s Stage) Resizable() bool {
	switch s {
	case StagePlaneLuma, StagePlaneChroma, StagePlaneAlpha, StagePlaneRGB, StagePlaneXYZ:
		return true
	default:
		return false
	}
}

func (s Stage) String() string {
	switch s {
	case StagePlaneLuma:
		return "plane-luma"
	case StagePlaneChroma:
		return "plane-chroma"
	case StagePlaneAlpha:
		return "plane-alpha"
	case StagePlaneRGB:
		return "plane-rgb"
	case StagePlaneXYZ:
		return "plane-xyz"
	case StageRGB:
		return "rgb"
	case StageLinear:
		return "linear"
	case StageSigmoid:
		return "sigmoid"
	case StagePreOverlay:
		return "pre-overlay"
	case StagePreKernel:
		return "pre-kernel"
	case StagePostKernel:
		return "post-kernel"
	case StageScaled:
		return "scaled"
	case StageFilmGrain:
		return "film-grain"
	default:
		return "unknown"
	}
}
