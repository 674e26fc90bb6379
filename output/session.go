// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/platform"
	"github.com/gogpu/vo/pool"
	"github.com/gogpu/vo/render"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("output: session closed")

// Config describes an output session.
type Config struct {
	// Backend is a backend name or alias; empty or "auto" probes.
	Backend string `mapstructure:"backend" yaml:"backend" json:"backend"`

	// Window is the caller-owned native window.
	Window platform.Window `mapstructure:"-" yaml:"-" json:"-"`

	// Pipeline configures the color pipeline. The zero value is replaced
	// by pipeline.DefaultOptions.
	Pipeline pipeline.Options `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// TargetICC is the display ICC profile, if known.
	TargetICC []byte `mapstructure:"-" yaml:"-" json:"-"`

	// Assets is where the custom LUT and shader paths are resolved; nil
	// uses the host file system.
	Assets fs.FS `mapstructure:"-" yaml:"-" json:"-"`
}

// Stats combines renderer and pool counters.
type Stats struct {
	Render render.Stats
	Pool   pool.Stats
}

// Session is an open output: a backend instance, its texture pool and
// the renderer drawing into its swapchain.
type Session struct {
	id  uuid.UUID
	log *slog.Logger

	mu       sync.Mutex
	closed   bool
	inst     backend.Instance
	pool     *pool.Pool
	renderer *render.Renderer
	loader   *asset.Loader
}

// Open creates the backend for cfg.Window, builds the color pipeline and
// sizes the swapchain to the window. Every error is session-fatal; what
// was created is released before Open returns.
func Open(cfg Config) (*Session, error) {
	id := uuid.New()
	log := vo.Logger().With("session", id.String())

	opts := cfg.Pipeline
	if opts == (pipeline.Options{}) {
		opts = pipeline.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fatal(log, "validate options", err)
	}

	inst, err := backend.Create(backend.Config{Name: cfg.Backend, Window: cfg.Window})
	if err != nil {
		return nil, fatal(log, "create backend", err)
	}

	loader := asset.NewLoader(cfg.Assets)
	params := pipeline.Build(opts, loader)
	p := pool.New(inst.Allocator(), log)

	r, err := render.New(render.Config{
		Context:   inst,
		Swapchain: inst.Swapchain(),
		Painter:   inst.Painter(),
		Pool:      p,
		Params:    params,
		Device:    inst.Device(),
		TargetICC: cfg.TargetICC,
		Logger:    log,
	})
	if err != nil {
		return nil, fatal(log, "create renderer", errors.Join(err, inst.Destroy()))
	}

	s := &Session{id: id, log: log, inst: inst, pool: p, renderer: r, loader: loader}

	// The surface format is chosen from the hint, so it has to come
	// before the first resize. Frames re-hint with their own colorimetry.
	r.Hint(vo.ColorInfo{})
	w, h := inst.WindowSize()
	if gw, gh := r.Resize(w, h); gw == 0 || gh == 0 {
		return nil, fatal(log, "configure swapchain", errors.Join(
			fmt.Errorf("output: no usable swapchain for %dx%d window", w, h), s.Close()))
	}

	log.Info("output: session open", "backend", inst.Name(), "width", w, "height", h)
	return s, nil
}

func fatal(log *slog.Logger, op string, err error) error {
	log.Error("output: open failed", "op", op, "err", err)
	return vo.Fatal("output: "+op, err)
}

// ID returns the session identifier attached to its log records.
func (s *Session) ID() uuid.UUID { return s.id }

// Backend returns the canonical name of the backend in use.
func (s *Session) Backend() string { return s.inst.Name() }

// Params returns the resolved pipeline parameters.
func (s *Session) Params() *pipeline.Params { return s.renderer.Params() }

// Draw renders f with overlays and presents it. A nil frame is skipped.
func (s *Session) Draw(f *vo.Frame, overlays []vo.Overlay) render.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return render.Skipped
	}
	return s.renderer.DrawFrame(f, overlays)
}

// Resize resizes the swapchain and returns the size in effect. Failures
// keep the previous size. It is safe to call from a window callback
// while another goroutine draws; the resize runs between frames.
func (s *Session) Resize(width, height int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, 0
	}
	return s.renderer.Resize(width, height)
}

// LastFailure returns the error behind the most recent failed frame.
func (s *Session) LastFailure() error { return s.renderer.LastFailure() }

// AssetErrors returns the errors of the last LUT and shader loads.
func (s *Session) AssetErrors() (lut, shader error) {
	return s.loader.LUTError(), s.loader.ShaderError()
}

// Stats returns the activity counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Render: s.renderer.Stats(), Pool: s.pool.Stats()}
}

// Close waits for the frame in progress, releases the pool textures and
// destroys the backend. Calling it again does nothing.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.inst.MakeCurrent(); err != nil {
		s.log.Warn("output: make current for close", "err", err)
	}
	s.pool.DestroyAll()
	s.inst.ReleaseCurrent()

	err := s.inst.Destroy()
	if err != nil {
		s.log.Warn("output: destroy backend", "err", err)
	}
	s.log.Info("output: session closed", "stats", fmt.Sprintf("%+v", s.renderer.Stats()))
	return err
}
