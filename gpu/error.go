package gpu

import "errors"

// Sentinel errors returned by Device implementations, mirroring the
// teacher's error.go re-export pattern (wgpu/error.go: ErrDeviceLost,
// ErrOutOfMemory, ...) narrowed to what this module's callers branch on.
var (
	// ErrDeviceLost signals a fatal backend failure (spec §7 "Fatal backend
	// failure").
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrOutOfMemory signals a backend allocation failure (spec §7
	// "Backend allocation failure").
	ErrOutOfMemory = errors.New("gpu: out of memory")

	// ErrUnsupportedFormat is returned by CreateTexture/CreatePass when the
	// requested format lacks a required capability bit.
	ErrUnsupportedFormat = errors.New("gpu: unsupported format")

	// ErrCompileFailed is returned by CreatePass when shader compilation
	// fails (spec §7 "Shader compilation failure").
	ErrCompileFailed = errors.New("gpu: shader compilation failed")
)
