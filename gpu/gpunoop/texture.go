package gpunoop

import (
	"fmt"

	"github.com/gogpu/shade/gpu"
)

// texture is a host-memory-backed gpu.Texture. Pixels are stored as
// 32-bit-float-per-component regardless of the declared Format, which keeps
// Upload/Download/Clear/Blit exact without per-format packing logic; the
// declared Format still drives Components() so callers see the same shape a
// real backend would expose.
type texture struct {
	desc gpu.TextureDescriptor
	pix  []float32 // len == w*h*components
}

func newTexture(desc gpu.TextureDescriptor) *texture {
	n := desc.Width * desc.Height * desc.Format.Components()
	return &texture{desc: desc, pix: make([]float32, n)}
}

func (t *texture) Destroy()         {}
func (t *texture) Width() int       { return t.desc.Width }
func (t *texture) Height() int      { return t.desc.Height }
func (t *texture) Format() gpu.Format { return t.desc.Format }
func (t *texture) Sampleable() bool { return t.desc.Sampleable }
func (t *texture) Renderable() bool { return t.desc.Renderable }
func (t *texture) Storable() bool   { return t.desc.Storable }
func (t *texture) Poll() bool       { return true }
func (t *texture) Invalidate()      {}

func (t *texture) stride() int { return t.desc.Format.Components() }

func (t *texture) idx(x, y int) int {
	return (y*t.desc.Width + x) * t.stride()
}

// Upload expects data as tightly-packed float32 components in row-major
// order for rect. Real backends would accept packed bytes matching Format;
// this fake normalizes to float32 so Download is always exact regardless of
// Format's bit depth.
func (t *texture) Upload(rect gpu.Rect, data []byte) error {
	if rect.Empty() {
		return fmt.Errorf("gpunoop: empty upload rect")
	}
	stride := t.stride()
	want := rect.Width() * rect.Height() * stride * 4
	if len(data) != want {
		return fmt.Errorf("gpunoop: upload expects %d bytes, got %d", want, len(data))
	}
	off := 0
	for y := rect.Y0; y < rect.Y1; y++ {
		for x := rect.X0; x < rect.X1; x++ {
			for c := 0; c < stride; c++ {
				bits := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
				t.pix[t.idx(x, y)+c] = float32frombits(bits)
				off += 4
			}
		}
	}
	return nil
}

func (t *texture) Download(rect gpu.Rect) ([]byte, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("gpunoop: empty download rect")
	}
	stride := t.stride()
	out := make([]byte, rect.Width()*rect.Height()*stride*4)
	off := 0
	for y := rect.Y0; y < rect.Y1; y++ {
		for x := rect.X0; x < rect.X1; x++ {
			for c := 0; c < stride; c++ {
				bits := float32bits(t.pix[t.idx(x, y)+c])
				out[off] = byte(bits)
				out[off+1] = byte(bits >> 8)
				out[off+2] = byte(bits >> 16)
				out[off+3] = byte(bits >> 24)
				off += 4
			}
		}
	}
	return out, nil
}

func (t *texture) Clear(color [4]float32) error {
	stride := t.stride()
	for y := 0; y < t.desc.Height; y++ {
		for x := 0; x < t.desc.Width; x++ {
			base := t.idx(x, y)
			for c := 0; c < stride; c++ {
				t.pix[base+c] = color[c]
			}
		}
	}
	return nil
}

// Blit nearest-samples src's srcRect into dstRect, scaling if sizes differ.
func (t *texture) Blit(srcRes gpu.Texture, srcRect, dstRect gpu.Rect) error {
	src, ok := srcRes.(*texture)
	if !ok {
		return fmt.Errorf("gpunoop: Blit source is not a gpunoop texture")
	}
	stride := t.stride()
	srcStride := src.stride()
	sw, sh := srcRect.Width(), srcRect.Height()
	dw, dh := dstRect.Width(), dstRect.Height()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return fmt.Errorf("gpunoop: Blit with empty rect")
	}
	for y := 0; y < dh; y++ {
		sy := srcRect.Y0 + y*sh/dh
		for x := 0; x < dw; x++ {
			sx := srcRect.X0 + x*sw/dw
			sbase := src.idx(sx, sy)
			dbase := t.idx(dstRect.X0+x, dstRect.Y0+y)
			for c := 0; c < stride; c++ {
				if c < srcStride {
					t.pix[dbase+c] = src.pix[sbase+c]
				}
			}
		}
	}
	return nil
}
