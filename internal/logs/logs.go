// Package logs provides the default silent logger shared by this module's
// constructors.
//
// Unlike the teacher (gogpu/wgpu/hal.SetLogger), which stores the active
// logger in a package-level atomic pointer, every constructor in this module
// takes its logger as an explicit parameter and falls back to Default when
// nil. Logging context is passed by dependency, never captured globally.
package logs

import (
	"context"
	"log/slog"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Default returns a logger that discards everything, used when a caller
// passes a nil *slog.Logger to a constructor.
func Default() *slog.Logger {
	return slog.New(nopHandler{})
}

// OrDefault returns l, or Default() if l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Default()
	}
	return l
}
