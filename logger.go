package vo

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// nopHandler drops every record. Enabled reports false, so slog never
// builds the record in the first place.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger. SetLogger may race with a frame in flight.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for vo and all its sub-packages.
// By default, vo produces no log output. Call SetLogger to enable logging.
//
// The logger is also handed to the wgpu HAL so that backend diagnostics
// (adapter selection, surface creation) end up in the same place.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vo:
//   - [slog.LevelDebug]: per-frame diagnostics (texture reallocation, skipped frames)
//   - [slog.LevelInfo]: session lifecycle (backend selected, surface format, resize)
//   - [slog.LevelWarn]: recovered failures (render or upload failed, broken LUT or shader)
//   - [slog.LevelError]: failures that prevent a session from opening
//
// Example:
//
//	vo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	hal.SetLogger(l)
}

// Logger returns the logger installed by SetLogger, or a silent one.
// Every vo package logs through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
