package planner

import (
	"github.com/gogpu/shade/frameio"
	"github.com/gogpu/shade/hook"
)

// channelSwizzle returns the vec4 component letter a working-color channel
// id writes to.
func channelSwizzle(c frameio.ChannelID) string {
	switch c {
	case frameio.ChannelY, frameio.ChannelR:
		return "r"
	case frameio.ChannelCb, frameio.ChannelG:
		return "g"
	case frameio.ChannelCr, frameio.ChannelB:
		return "b"
	case frameio.ChannelA:
		return "a"
	default:
		return "r"
	}
}

// componentSwizzle returns the vec4 component letter a plane texture's i-th
// channel samples from.
func componentSwizzle(i int) string {
	return [...]string{"r", "g", "b", "a"}[i&3]
}

// planeStage maps a derived PlaneType to the hook.Stage fired for that
// plane during plane read (spec §4.E phase 3: "apply user hooks registered
// at that plane's input stage").
func planeStage(t frameio.PlaneType) hook.Stage {
	switch t {
	case frameio.PlaneTypeLuma:
		return hook.StagePlaneLuma
	case frameio.PlaneTypeChroma:
		return hook.StagePlaneChroma
	case frameio.PlaneTypeAlpha:
		return hook.StagePlaneAlpha
	case frameio.PlaneTypeXYZ:
		return hook.StagePlaneXYZ
	default:
		return hook.StagePlaneRGB
	}
}
