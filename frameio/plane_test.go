package frameio

import (
	"testing"

	"github.com/gogpu/shade/gpu"
	"github.com/gogpu/shade/gpu/gpunoop"
)

func TestPlaneValidateRejectsBadComponentCount(t *testing.T) {
	p := &Plane{Components: 0}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for 0 components")
	}
	p = &Plane{Components: 5}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for 5 components")
	}
}

func TestPlaneDeriveType(t *testing.T) {
	tests := []struct {
		name    string
		mapping [4]ChannelID
		n       int
		system  ColorSystem
		want    PlaneType
	}{
		{"luma", [4]ChannelID{ChannelY}, 1, ColorSystemYCbCr, PlaneTypeLuma},
		{"chroma", [4]ChannelID{ChannelCb, ChannelCr}, 2, ColorSystemYCbCr, PlaneTypeChroma},
		{"alpha", [4]ChannelID{ChannelA}, 1, ColorSystemYCbCr, PlaneTypeAlpha},
		{"rgb", [4]ChannelID{ChannelR, ChannelG, ChannelB}, 3, ColorSystemRGB, PlaneTypeRGB},
		{"xyz", [4]ChannelID{ChannelR, ChannelG, ChannelB}, 3, ColorSystemXYZ, PlaneTypeXYZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Plane{Components: tt.n, Mapping: tt.mapping}
			if got := p.DeriveType(tt.system); got != tt.want {
				t.Fatalf("DeriveType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCarriesReferenceGrid(t *testing.T) {
	for _, tt := range []struct {
		pt   PlaneType
		want bool
	}{
		{PlaneTypeLuma, true},
		{PlaneTypeRGB, true},
		{PlaneTypeXYZ, true},
		{PlaneTypeChroma, false},
		{PlaneTypeAlpha, false},
		{PlaneTypeUnknown, false},
	} {
		if got := tt.pt.CarriesReferenceGrid(); got != tt.want {
			t.Fatalf("%v.CarriesReferenceGrid() = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestMergeCompatible(t *testing.T) {
	dev := gpunoop.New(gpu.Caps{}, nil)
	tex1, _ := dev.CreateTexture(gpu.TextureDescriptor{Width: 4, Height: 4, Format: gpu.FormatR8Unorm, Sampleable: true})
	tex2, _ := dev.CreateTexture(gpu.TextureDescriptor{Width: 4, Height: 4, Format: gpu.FormatR8Unorm, Sampleable: true})
	tex3, _ := dev.CreateTexture(gpu.TextureDescriptor{Width: 8, Height: 8, Format: gpu.FormatR8Unorm, Sampleable: true})

	a := &Plane{Texture: tex1, Components: 1, Mapping: [4]ChannelID{ChannelCb}}
	b := &Plane{Texture: tex2, Components: 1, Mapping: [4]ChannelID{ChannelCr}}
	if !MergeCompatible(a, b, ColorSystemYCbCr) {
		t.Fatal("expected compatible Cb+Cr planes to merge")
	}

	c := &Plane{Texture: tex3, Components: 1, Mapping: [4]ChannelID{ChannelCr}}
	if MergeCompatible(a, c, ColorSystemYCbCr) {
		t.Fatal("expected mismatched dimensions to reject merge")
	}

	lumaPlane := &Plane{Texture: tex2, Components: 1, Mapping: [4]ChannelID{ChannelY}}
	if MergeCompatible(a, lumaPlane, ColorSystemYCbCr) {
		t.Fatal("expected luma+chroma type mismatch to reject merge")
	}

	nilTex := &Plane{Texture: nil, Components: 1, Mapping: [4]ChannelID{ChannelCr}}
	if MergeCompatible(a, nilTex, ColorSystemYCbCr) {
		t.Fatal("expected nil texture to reject merge")
	}
}
