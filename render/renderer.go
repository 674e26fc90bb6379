// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/pool"
)

// Result is the outcome of one DrawFrame call.
type Result uint8

// Frame results.
const (
	// Skipped means nothing was drawn or presented.
	Skipped Result = iota

	// Rendered means the frame was drawn and presented.
	Rendered

	// Failed means the error color was presented instead of the frame.
	Failed
)

func (r Result) String() string {
	switch r {
	case Skipped:
		return "skipped"
	case Rendered:
		return "rendered"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", r)
	}
}

// Stats counts renderer activity.
type Stats struct {
	Frames            int
	Rendered          int
	Skipped           int
	Failed            int
	OverlaysTruncated int
	SubmitErrors      int
	ResizeErrors      int
}

// Config holds the collaborators of a Renderer.
type Config struct {
	Context   Context
	Swapchain Swapchain
	Painter   Painter
	Pool      *pool.Pool
	Params    *pipeline.Params

	// Device is optional and only used for diagnostics.
	Device DeviceHandle

	// TargetICC is the display ICC profile, if known.
	TargetICC []byte

	// Logger defaults to vo.Logger().
	Logger *slog.Logger
}

// Renderer draws decoded frames into the swapchain of one session.
//
// DrawFrame, Resize and the accessors may be called from different
// goroutines; a resize waits for the frame in progress to be presented.
type Renderer struct {
	mu sync.Mutex

	ctx     Context
	sw      Swapchain
	painter Painter
	pool    *pool.Pool
	params  *pipeline.Params
	log     *slog.Logger

	targetICC []byte
	icc       iccCache

	lastHint      vo.ColorInfo
	hinted        bool
	width, height int
	stats         Stats
	lastFail      error
}

// New creates a renderer. Params must not be modified afterwards.
func New(cfg Config) (*Renderer, error) {
	if cfg.Context == nil || cfg.Swapchain == nil || cfg.Painter == nil || cfg.Pool == nil || cfg.Params == nil {
		return nil, errors.New("render: incomplete config")
	}
	log := cfg.Logger
	if log == nil {
		log = vo.Logger()
	}
	r := &Renderer{
		ctx:       cfg.Context,
		sw:        cfg.Swapchain,
		painter:   cfg.Painter,
		pool:      cfg.Pool,
		params:    cfg.Params,
		log:       log,
		targetICC: cfg.TargetICC,
	}
	log.Info("render: renderer ready", deviceAttrs(cfg.Device)...)
	return r, nil
}

// Params returns the pipeline parameters in use.
func (r *Renderer) Params() *pipeline.Params { return r.params }

// Stats returns the activity counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// LastFailure returns the error behind the most recent Failed result.
func (r *Renderer) LastFailure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastFail
}

// SetTargetICC replaces the display ICC profile. The signature is
// recomputed on the next frame only if b is a different buffer.
func (r *Renderer) SetTargetICC(b []byte) {
	r.mu.Lock()
	r.targetICC = b
	r.mu.Unlock()
}

// Hint advises the swapchain of the expected output colorimetry. It is a
// no-op when nothing changed since the last hint.
func (r *Renderer) Hint(c vo.ColorInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hint(c)
}

func (r *Renderer) hint(c vo.ColorInfo) {
	if r.hinted && c == r.lastHint {
		return
	}
	r.lastHint, r.hinted = c, true
	r.sw.ColorspaceHint(c, r.params.OutputMode)
}

// Resize resizes the swapchain with the context current. Failures are
// logged and otherwise ignored; the returned size is the one in effect.
func (r *Renderer) Resize(width, height int) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ctx.MakeCurrent(); err != nil {
		r.stats.ResizeErrors++
		r.log.Warn("render: resize: make current failed", "err", err)
		return r.width, r.height
	}
	defer r.ctx.ReleaseCurrent()

	w, h, err := r.sw.Resize(width, height)
	if err != nil {
		r.stats.ResizeErrors++
		r.log.Warn("render: resize failed", "width", width, "height", height, "err", err)
		return r.width, r.height
	}
	if w != width || h != height {
		r.log.Debug("render: resize clamped", "requested_w", width, "requested_h", height, "w", w, "h", h)
	}
	r.width, r.height = w, h
	return w, h
}

// Size returns the swapchain size after the last successful Resize.
func (r *Renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// DrawFrame renders f with overlays into the next swapchain image and
// presents it. A nil f skips the frame.
func (r *Renderer) DrawFrame(f *vo.Frame, overlays []vo.Overlay) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Frames++
	if f == nil {
		return r.skip("no decoded frame")
	}

	r.hint(f.Color)

	if err := r.ctx.MakeCurrent(); err != nil {
		r.log.Warn("render: make current failed", "err", err)
		return r.skip("no context")
	}
	defer r.ctx.ReleaseCurrent()

	fr, ok := r.sw.AcquireFrame()
	if !ok {
		return r.skip("no swapchain image")
	}

	var failure error
	src, err := buildSource(f, r.pool, r.params)
	if err != nil {
		failure = vo.Transient("upload", err)
	}

	t := buildTarget(fr, src, r.targetICC, &r.icc, r.params, r.sw.Flipped())
	t.Overlays = r.uploadOverlays(overlays, t)

	if err := r.painter.Clear(t, ClearColor); err != nil {
		r.log.Warn("render: clear failed", "err", err)
	}
	if failure == nil {
		if err := r.painter.Render(src, t, r.params); err != nil {
			failure = vo.Transient("render", err)
		}
	}
	if failure != nil {
		if err := r.painter.Clear(t, ErrorColor); err != nil {
			r.log.Warn("render: error clear failed", "err", err)
		}
	}

	if err := r.painter.Flush(); err != nil {
		r.log.Warn("render: flush failed", "err", err)
		if failure == nil {
			failure = vo.Transient("flush", err)
		}
	}

	if err := r.sw.SubmitFrame(fr); err != nil {
		r.stats.SubmitErrors++
		r.log.Warn("render: submit failed", "err", err)
	}
	r.sw.Present()

	if failure != nil {
		r.stats.Failed++
		r.lastFail = failure
		r.log.Warn("render: frame failed", "pts", f.PTS, "err", failure)
		return Failed
	}
	r.stats.Rendered++
	return Rendered
}

func (r *Renderer) skip(reason string) Result {
	r.stats.Skipped++
	r.log.Debug("render: frame skipped", "reason", reason)
	return Skipped
}

// uploadOverlays uploads the overlay images and places them on t. A
// failed upload truncates the list at that region.
func (r *Renderer) uploadOverlays(overlays []vo.Overlay, t *Target) []TargetOverlay {
	if len(overlays) == 0 {
		return nil
	}
	r.pool.GrowOverlays(len(overlays))

	out := make([]TargetOverlay, 0, len(overlays))
	for i, ov := range overlays {
		if ov.Image == nil || ov.Dst.Empty() {
			continue
		}
		tex, err := r.pool.UploadOverlay(i, pool.OverlayData(ov.Image))
		if err != nil {
			r.stats.OverlaysTruncated++
			r.log.Warn("render: overlay upload failed, dropping remaining overlays",
				"index", i, "dropped", len(overlays)-i, "err", err)
			break
		}
		rect := ov.Dst
		if t.Flipped {
			rect = flipRect(rect, t.Frame.Height())
		}
		out = append(out, TargetOverlay{Texture: tex, Rect: rect, Color: ov.Color})
	}
	return out
}
