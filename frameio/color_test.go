package frameio

import "testing"

func TestTransferIsHDR(t *testing.T) {
	for _, tt := range []struct {
		tr   Transfer
		want bool
	}{
		{TransferPQ, true},
		{TransferHLG, true},
		{TransferBT1886, false},
		{TransferSRGB, false},
		{TransferLinear, false},
	} {
		if got := tt.tr.IsHDR(); got != tt.want {
			t.Fatalf("%v.IsHDR() = %v, want %v", tt.tr, got, tt.want)
		}
	}
}

func TestGuessPrimariesFromResolution(t *testing.T) {
	for _, tt := range []struct {
		w, h int
		want Primaries
	}{
		{3840, 2160, PrimariesBT2020},
		{1920, 1080, PrimariesBT709},
		{720, 480, PrimariesBT601NTSC},
	} {
		if got := GuessPrimariesFromResolution(tt.w, tt.h); got != tt.want {
			t.Fatalf("GuessPrimariesFromResolution(%d,%d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
