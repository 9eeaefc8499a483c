package gpunoop

import (
	"fmt"

	"github.com/gogpu/shade/gpu"
)

// Device is a fake gpu.Device that keeps all resources in host memory.
type Device struct {
	caps    gpu.Caps
	formats map[gpu.Format]gpu.FormatCaps

	failed    bool
	failNextN int

	// Compiled records every PassDescriptor handed to CreatePass, in order,
	// for test assertions (e.g. counting how many passes a planner run
	// produced, spec §8 scenario 1).
	Compiled []gpu.PassDescriptor
}

// New returns a Device with the given capabilities. If formats is nil, every
// Format known to the gpu package is reported as fully capable.
func New(caps gpu.Caps, formats map[gpu.Format]gpu.FormatCaps) *Device {
	d := &Device{caps: caps, formats: formats}
	if d.formats == nil {
		d.formats = defaultFormatCaps()
	}
	return d
}

func defaultFormatCaps() map[gpu.Format]gpu.FormatCaps {
	full := gpu.FormatCaps{
		Sampleable: true, Renderable: true, Storable: true,
		Blittable: true, LinearSampling: true, Blendable: true, HostReadable: true,
	}
	m := map[gpu.Format]gpu.FormatCaps{}
	for _, f := range []gpu.Format{
		gpu.FormatR8Unorm, gpu.FormatRG8Unorm, gpu.FormatRGBA8Unorm, gpu.FormatRGBA8UnormSRGB,
		gpu.FormatBGRA8Unorm, gpu.FormatR16Unorm, gpu.FormatRG16Unorm, gpu.FormatRGBA16Unorm,
		gpu.FormatR16Float, gpu.FormatRG16Float, gpu.FormatRGBA16Float,
		gpu.FormatR32Float, gpu.FormatRG32Float, gpu.FormatRGBA32Float, gpu.FormatRGB10A2Unorm,
	} {
		m[f] = full
	}
	return m
}

// FailNext arms the next n CreateTexture/CreateBuffer/CreatePass calls to
// fail (textures and buffers with gpu.ErrOutOfMemory, passes with
// gpu.ErrCompileFailed), simulating spec §7 "Backend allocation failure" /
// §8 scenario 6 ("failure latch").
func (d *Device) FailNext(n int) { d.failNextN = n }

func (d *Device) consumeFailure() bool {
	if d.failNextN > 0 {
		d.failNextN--
		return true
	}
	return false
}

// SetFormatCaps overrides the reported capabilities for one format, used by
// tests that simulate "no storable intermediate format" (spec §7).
func (d *Device) SetFormatCaps(f gpu.Format, caps gpu.FormatCaps) {
	d.formats[f] = caps
}

func (d *Device) FormatCaps(f gpu.Format) gpu.FormatCaps { return d.formats[f] }
func (d *Device) Caps() gpu.Caps                         { return d.caps }

func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if d.consumeFailure() {
		return nil, gpu.ErrOutOfMemory
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gpunoop: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	return newTexture(desc), nil
}

func (d *Device) DestroyTexture(gpu.Texture) {}

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	if d.consumeFailure() {
		return nil, gpu.ErrOutOfMemory
	}
	return &buffer{data: make([]byte, desc.Size)}, nil
}

func (d *Device) DestroyBuffer(gpu.Buffer) {}

func (d *Device) CreatePass(desc gpu.PassDescriptor) (gpu.Pass, error) {
	if d.consumeFailure() {
		return nil, gpu.ErrCompileFailed
	}
	d.Compiled = append(d.Compiled, desc)
	return &pass{desc: desc}, nil
}

func (d *Device) DestroyPass(gpu.Pass) {}

func (d *Device) CreateTimer() (gpu.Timer, error) { return &timer{}, nil }
func (d *Device) DestroyTimer(gpu.Timer)          {}

func (d *Device) Flush()          {}
func (d *Device) Finish() error   { return nil }
func (d *Device) IsFailed() bool  { return d.failed }

// SetFailed forces IsFailed() to return true, simulating device loss.
func (d *Device) SetFailed(v bool) { d.failed = v }
