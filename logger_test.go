package vo

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// restoreLogger puts back the package logger after a test swaps it.
func restoreLogger(t *testing.T) {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
}

func TestDiscardHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	ctx := context.Background()
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelError + 4} {
		if h.Enabled(ctx, lvl) {
			t.Errorf("Enabled(%v) = true", lvl)
		}
	}
	if err := h.Handle(ctx, slog.NewRecord(time.Time{}, slog.LevelWarn, "dropped", 0)); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	derived := []slog.Handler{
		h.WithAttrs([]slog.Attr{slog.String("session", "x")}),
		h.WithGroup("frame"),
	}
	for _, d := range derived {
		if _, ok := d.(nopHandler); !ok {
			t.Errorf("derived handler is %T", d)
		}
	}
}

func TestLoggerSilentUntilSet(t *testing.T) {
	restoreLogger(t)
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("silent logger accepts errors")
	}
}

func TestSetLoggerRoutesRecords(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)

	if Logger() != l {
		t.Fatal("Logger() did not return the installed logger")
	}
	Logger().With("session", "abc").Debug("frame skipped", "reason", "no frame")
	out := buf.String()
	for _, want := range []string{"frame skipped", "session=abc", `reason="no frame"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestSetLoggerReachesHAL(t *testing.T) {
	restoreLogger(t)

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)
	if hal.Logger() != l {
		t.Error("HAL logger not updated")
	}

	SetLogger(nil)
	if hal.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("HAL still logging after SetLogger(nil)")
	}
}

func TestLoggerRace(t *testing.T) {
	restoreLogger(t)

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.Default())
				SetLogger(nil)
				return
			}
			Logger().Debug("render", "frame", i)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledDebug(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("frame", "pts", 1.5)
	}
}
