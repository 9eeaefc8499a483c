package hook

import (
	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/frameio"
)

// Func is a user-supplied pipeline transformation. It receives the engine
// (to begin further shaders or dispatch) and the current working image, and
// returns the (possibly different, per spec: "may replace the current
// shader or texture") working image, or an error if the hook declines or
// fails to run at this call (spec GLOSSARY "Hook").
type Func func(e *dispatch.Engine, img *frameio.Img) (*frameio.Img, error)
