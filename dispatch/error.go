package dispatch

import (
	"errors"
	"fmt"
)

// ErrDeviceFailed is returned when the underlying gpu.Device reports
// is_failed (spec §7 "Fatal backend failure").
var ErrDeviceFailed = errors.New("dispatch: backend device failed")

// ErrNullPass is returned by Finish/Compute/Vertex when the shader's
// signature failed to compile, on this call or an earlier one; the dispatch
// is silently skipped
// per spec §4.C "Failures".
var ErrNullPass = errors.New("dispatch: shader previously failed to compile")

func errNoPlacement(name string) error {
	return fmt.Errorf("dispatch: variable %q could not be placed: no push constants, uniform buffer, or global uniforms supported", name)
}
