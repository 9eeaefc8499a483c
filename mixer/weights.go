package mixer

import "math"

// Mode selects how mixer computes per-input weights (spec §4.G "Mixer
// contract": "a mixer kernel or 'oversample' mode").
type Mode int

const (
	ModeKernel Mode = iota
	ModeOversample
)

// KernelConfig parametrizes kernel-mode weighting. FilterSample is a
// caller-supplied black-box (SPEC_FULL §3, the same Non-goals-preserving
// collaborator convention as planner.Generators: "scaling kernels... are
// out of scope").
type KernelConfig struct {
	FilterSample func(t float64) float64
	Radius       float64
}

// negligibleWeight is the threshold below which a realized weight is
// dropped from the final composite (spec §4.G: "Inputs whose absolute
// weight is <= 10^-3 are dropped after GC marking").
const negligibleWeight = 1e-3

// computeWeights returns one weight per input, in input order, following
// spec §4.G "Weight computation" exactly:
//
//   - kernel mode: weight(t) = FilterSample(t) if |t| < radius, else 0.
//   - oversample mode: the visible interval of input i is [tᵢ, tᵢ₊₁]
//     (∞ for the last input), clipped to [0, vsyncDuration]; weight is
//     that clipped interval's length divided by vsyncDuration.
//
// times must already be sorted ascending (spec: "timestamps monotonically
// non-decreasing"), the mixer's caller's responsibility.
func computeWeights(mode Mode, times []float64, vsyncDuration float64, kernel KernelConfig) []float64 {
	weights := make([]float64, len(times))
	switch mode {
	case ModeKernel:
		for i, t := range times {
			if math.Abs(t) < kernel.Radius && kernel.FilterSample != nil {
				weights[i] = kernel.FilterSample(t)
			}
		}
	case ModeOversample:
		for i, t := range times {
			upper := math.Inf(1)
			if i+1 < len(times) {
				upper = times[i+1]
			}
			lo := math.Max(t, 0)
			hi := math.Min(upper, vsyncDuration)
			if hi > lo {
				weights[i] = (hi - lo) / vsyncDuration
			}
		}
	}
	return weights
}
