package gpunoop

import (
	"fmt"

	"github.com/gogpu/shade/gpu"
)

type buffer struct {
	data []byte
}

func (b *buffer) Destroy()     {}
func (b *buffer) Size() uint64 { return uint64(len(b.data)) }
func (b *buffer) Poll() bool   { return true }

func (b *buffer) Write(offset uint64, data []byte) error {
	end := offset + uint64(len(data))
	if end > uint64(len(b.data)) {
		return fmt.Errorf("gpunoop: buffer write out of range (%d > %d)", end, len(b.data))
	}
	copy(b.data[offset:end], data)
	return nil
}

func (b *buffer) Read(offset, size uint64) ([]byte, error) {
	end := offset + size
	if end > uint64(len(b.data)) {
		return nil, fmt.Errorf("gpunoop: buffer read out of range (%d > %d)", end, len(b.data))
	}
	out := make([]byte, size)
	copy(out, b.data[offset:end])
	return out, nil
}

func (b *buffer) Copy(dstRes gpu.Buffer, srcOffset, dstOffset, size uint64) error {
	dst, ok := dstRes.(*buffer)
	if !ok {
		return fmt.Errorf("gpunoop: Copy destination is not a gpunoop buffer")
	}
	if srcOffset+size > uint64(len(b.data)) || dstOffset+size > uint64(len(dst.data)) {
		return fmt.Errorf("gpunoop: buffer copy out of range")
	}
	copy(dst.data[dstOffset:dstOffset+size], b.data[srcOffset:srcOffset+size])
	return nil
}
