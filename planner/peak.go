package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/gpu"
)

// peakBufSize is the byte size of the persistent peak-detect reduction
// buffer: one running max, one running average accumulator, one sample
// counter, each a 32-bit value (SPEC_FULL §3 "Peak-detect persistent
// buffer").
const peakBufSize = 12

// peakDetectPhase is phase 6 (spec §4.E phase 6 "HDR peak detect"): when the
// source carries an HDR transfer, feed img through the caller-supplied peak
// detector, accumulating into a buffer persisted across calls for the same
// source signature so the estimate converges over a sequence of frames
// rather than resetting every call.
func (p *Planner) peakDetectPhase(img *frameio.Img, sourceSignature uint64, srcSpace, dstSpace frameio.ColorSpace, params RenderParams) *frameio.Img {
	if !srcSpace.Transfer.IsHDR() {
		return img
	}
	if p.Latches.PeakDetect.Disabled() || params.Generators.PeakDetect == nil {
		return img
	}
	if params.DelayedPeakDetectAllowed && dstSpace.Peak >= srcSpace.Peak && dstSpace.Peak > 0 {
		// Target already declares a peak at or above the source's; detection
		// can be deferred to a later frame without affecting this one's
		// tone mapping decision.
		return img
	}

	buf, ok := p.peakBufs[sourceSignature]
	if !ok {
		var err error
		buf, err = p.device.CreateBuffer(gpu.BufferDescriptor{
			Size:        peakBufSize,
			HostVisible: true,
			Label:       "peak-detect",
		})
		if err != nil {
			p.Latches.PeakDetect.Trip(p.logger, err)
			return img
		}
		p.peakBufs[sourceSignature] = buf
	}

	out, err := params.Generators.PeakDetect(p.engine, img, buf)
	if err != nil {
		p.Latches.PeakDetect.Trip(p.logger, err)
		return img
	}
	return out
}
