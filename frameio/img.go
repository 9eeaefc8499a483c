package frameio

import (
	"errors"

	"github.com/gogpu/shade/dispatch"
	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/shader"
	"github.com/gogpu/shade/texpool"
)

// ErrImgNotShader is returned when an operation requiring shader state finds
// Img holding a texture instead.
var ErrImgNotShader = errors.New("frameio: img does not hold an unfinished shader")

// ErrImgNotTexture is returned when an operation requiring texture state
// finds Img holding a shader instead.
var ErrImgNotTexture = errors.New("frameio: img does not hold a completed texture")

// Img is an in-flight image: it carries either an unfinished shader or a
// completed texture, exclusively, plus logical dimensions, a source
// rectangle in its own pixel space, current encoding, and effective
// component count (spec §3 "Img").
type Img struct {
	Width, Height int
	SrcRect       Rect
	Repr          ColorRepr
	Space         ColorSpace
	Components    int

	shader  *shader.Builder
	texture gpu.Texture
}

// NewShaderImg wraps b as an Img in shader state.
func NewShaderImg(b *shader.Builder, w, h int, repr ColorRepr, space ColorSpace, components int) *Img {
	return &Img{Width: w, Height: h, SrcRect: Rect{X0: 0, Y0: 0, X1: float64(w), Y1: float64(h)}, Repr: repr, Space: space, Components: components, shader: b}
}

// NewTextureImg wraps tex as an Img already in texture state.
func NewTextureImg(tex gpu.Texture, repr ColorRepr, space ColorSpace, components int) *Img {
	return &Img{Width: tex.Width(), Height: tex.Height(), SrcRect: Rect{X0: 0, Y0: 0, X1: float64(tex.Width()), Y1: float64(tex.Height())}, Repr: repr, Space: space, Components: components, texture: tex}
}

// InShader reports whether this Img currently holds an unfinished shader.
func (im *Img) InShader() bool { return im.shader != nil }

// InTexture reports whether this Img currently holds a completed texture.
func (im *Img) InTexture() bool { return im.texture != nil }

// Shader returns the currently held builder, or nil if Img is in texture
// state, for callers that want to keep building on it without transitioning
// (e.g. adding variables/descriptors before Materialize).
func (im *Img) Shader() *shader.Builder { return im.shader }

// Texture returns the currently held texture, or nil if Img is in shader
// state.
func (im *Img) Texture() gpu.Texture { return im.texture }

// Materialize dispatches the held shader so it writes a pool texture sized
// to Width x Height in format, swapping Img into texture state (spec §3
// "Img": "materialize (dispatch to texture)... swap the exclusive state").
func (im *Img) Materialize(e *dispatch.Engine, pool *texpool.Pool, format gpu.Format, blend gpu.BlendParams, timer gpu.Timer) error {
	if im.shader == nil {
		return ErrImgNotShader
	}
	tex, err := pool.Get(im.Width, im.Height, format)
	if err != nil {
		e.Abort(im.shader)
		im.shader = nil
		return err
	}
	rect := gpu.Rect{X0: 0, Y0: 0, X1: im.Width, Y1: im.Height}
	if err := e.Finish(im.shader, tex, rect, blend, timer); err != nil {
		im.shader = nil
		return err
	}
	im.shader = nil
	im.texture = tex
	return nil
}

// Sample begins a new sampling shader reading the currently held texture,
// binding it as a sampler2D descriptor named "img_tex" at the given binding
// slot, and swaps Img into
// shader state holding the new builder (spec §3 "Img": "sample (begin a
// sampling shader)... swap the exclusive state").
func (im *Img) Sample(e *dispatch.Engine, binding int, unique bool) (*shader.Builder, error) {
	if im.texture == nil {
		return nil, ErrImgNotTexture
	}
	b := e.Begin(unique)
	b.AddDescriptor(shader.Descriptor{
		Name:    "img_tex",
		Kind:    shader.DescriptorSampler2D,
		Binding: binding,
	})
	im.texture = nil
	im.shader = b
	return b, nil
}
