// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/render"
)

// Preferred surface formats, best first.
var (
	hdrFormats = []gputypes.TextureFormat{gputypes.TextureFormatRGB10A2Unorm, gputypes.TextureFormatRGBA16Float}
	sdrFormats = []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm}
)

// negotiateFormat picks the surface format for the wanted dynamic range,
// falling back to the other range and then to the first advertised format.
func negotiateFormat(available []gputypes.TextureFormat, hdr bool) gputypes.TextureFormat {
	order := append(slices.Clone(sdrFormats), hdrFormats...)
	if hdr {
		order = append(slices.Clone(hdrFormats), sdrFormats...)
	}
	for _, f := range order {
		if slices.Contains(available, f) {
			return f
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return gputypes.TextureFormatUndefined
}

// isHDRFormat reports whether f can carry more than 8 bits per channel.
func isHDRFormat(f gputypes.TextureFormat) bool {
	return slices.Contains(hdrFormats, f)
}

// outputColor returns the colorimetry the surface is driven with for a
// given content hint, mode and negotiated format.
func outputColor(c vo.ColorInfo, mode vo.OutputMode, format gputypes.TextureFormat) vo.ColorInfo {
	sdr := vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferSRGB}
	if !isHDRFormat(format) {
		return sdr
	}
	switch mode {
	case vo.OutputHDR10:
		return vo.ColorInfo{Primaries: vo.PrimariesBT2020, Transfer: vo.TransferPQ, HDR: c.HDR}
	case vo.OutputHLG:
		return vo.ColorInfo{Primaries: vo.PrimariesBT2020, Transfer: vo.TransferHLG, HDR: c.HDR}
	case vo.OutputAuto:
		if c.IsHDR() {
			return vo.ColorInfo{Primaries: vo.PrimariesBT2020, Transfer: c.Transfer, HDR: c.HDR}
		}
	}
	return sdr
}

func wantsHDR(c vo.ColorInfo, mode vo.OutputMode) bool {
	switch mode {
	case vo.OutputHDR10, vo.OutputHLG:
		return true
	case vo.OutputAuto:
		return c.IsHDR()
	}
	return false
}

// Frame is an acquired swapchain image.
type Frame struct {
	tex    hal.SurfaceTexture
	view   hal.TextureView
	width  int
	height int
	format gputypes.TextureFormat
	color  vo.ColorInfo
}

func (f *Frame) Width() int                     { return f.width }
func (f *Frame) Height() int                    { return f.height }
func (f *Frame) Format() gputypes.TextureFormat { return f.format }
func (f *Frame) Color() vo.ColorInfo            { return f.color }

// View returns the render target view of the image.
func (f *Frame) View() hal.TextureView { return f.view }

type frameState uint8

const (
	stateIdle frameState = iota
	stateAcquired
	stateSubmitted
)

// Swapchain drives a hal.Surface as a ring of presentable images.
// It is not safe for concurrent use; the session's render thread owns it.
type Swapchain struct {
	surface hal.Surface
	device  hal.Device
	queue   hal.Queue
	caps    hal.SurfaceCapabilities
	maxDim  int
	flipped bool

	hinted bool
	format gputypes.TextureFormat
	color  vo.ColorInfo

	width, height int
	configured    bool
	stale         bool

	state frameState
	cur   *Frame
}

// NewSwapchain returns an unconfigured swapchain for surface. The surface
// is configured by the first Resize.
func NewSwapchain(surface hal.Surface, device hal.Device, queue hal.Queue, caps *hal.SurfaceCapabilities, maxDim int, flipped bool) *Swapchain {
	s := &Swapchain{surface: surface, device: device, queue: queue, maxDim: maxDim, flipped: flipped}
	if caps != nil {
		s.caps = *caps
	}
	return s
}

// ColorspaceHint selects the surface format for c and mode. A format
// change on a configured surface takes effect with the next frame.
func (s *Swapchain) ColorspaceHint(c vo.ColorInfo, mode vo.OutputMode) {
	format := negotiateFormat(s.caps.Formats, wantsHDR(c, mode))
	s.color = outputColor(c, mode, format)
	if s.configured && format != s.format {
		s.stale = true
	}
	s.format = format
	s.hinted = true
	vo.Logger().Debug("native: colorspace hint", "mode", mode, "transfer", c.Transfer, "format", format)
}

// Format returns the negotiated surface format.
func (s *Swapchain) Format() gputypes.TextureFormat { return s.format }

// Flipped reports whether the presentation origin is bottom-left.
func (s *Swapchain) Flipped() bool { return s.flipped }

// Size returns the configured size.
func (s *Swapchain) Size() (int, int) { return s.width, s.height }

func (s *Swapchain) clamp(v int) int {
	if v < 1 {
		v = 1
	}
	if s.maxDim > 0 && v > s.maxDim {
		v = s.maxDim
	}
	return v
}

// Resize configures the surface for the requested size, clamped to the
// device limits, and returns the size in effect. Resizing to the current
// size is a no-op.
func (s *Swapchain) Resize(width, height int) (int, int, error) {
	if s.state != stateIdle {
		return s.width, s.height, ErrFrameInFlight
	}
	w, h := s.clamp(width), s.clamp(height)
	if s.configured && !s.stale && w == s.width && h == s.height {
		return w, h, nil
	}
	if !s.hinted {
		vo.Logger().Debug("native: resize before colorspace hint, assuming SDR")
		s.ColorspaceHint(vo.ColorInfo{}, vo.OutputSDR)
	}
	if err := s.configure(w, h); err != nil {
		return s.width, s.height, err
	}
	return w, h, nil
}

func (s *Swapchain) configure(w, h int) error {
	if s.format == gputypes.TextureFormatUndefined {
		return ErrNoSurfaceFormat
	}
	err := s.surface.Configure(s.device, &hal.SurfaceConfiguration{
		Width:       uint32(w),
		Height:      uint32(h),
		Format:      s.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: s.presentMode(),
		AlphaMode:   s.alphaMode(),
	})
	if err != nil {
		return fmt.Errorf("native: configure surface %dx%d: %w", w, h, err)
	}
	s.width, s.height = w, h
	s.configured = true
	s.stale = false
	return nil
}

func (s *Swapchain) presentMode() gputypes.PresentMode {
	if len(s.caps.PresentModes) == 0 || slices.Contains(s.caps.PresentModes, gputypes.PresentModeFifo) {
		return gputypes.PresentModeFifo
	}
	return s.caps.PresentModes[0]
}

func (s *Swapchain) alphaMode() gputypes.CompositeAlphaMode {
	if len(s.caps.AlphaModes) == 0 || slices.Contains(s.caps.AlphaModes, gputypes.CompositeAlphaModeOpaque) {
		return gputypes.CompositeAlphaModeOpaque
	}
	return s.caps.AlphaModes[0]
}

// AcquireFrame returns the next image. Timeouts, outdated or lost
// surfaces and an unconfigured swapchain all mean "no frame"; an outdated
// surface is reconfigured before the next attempt.
func (s *Swapchain) AcquireFrame() (render.Frame, bool) {
	log := vo.Logger()
	if s.state != stateIdle {
		log.Warn("native: acquire with frame in flight", "err", ErrFrameInFlight)
		return nil, false
	}
	if !s.configured {
		return nil, false
	}
	if s.stale {
		if err := s.configure(s.width, s.height); err != nil {
			log.Debug("native: reconfigure failed", "err", err)
			return nil, false
		}
	}

	acq, err := s.surface.AcquireTexture(nil)
	if err != nil {
		switch {
		case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady), errors.Is(err, hal.ErrZeroArea):
			log.Debug("native: no frame", "err", err)
		case errors.Is(err, hal.ErrSurfaceOutdated), errors.Is(err, hal.ErrSurfaceLost):
			log.Debug("native: surface outdated", "err", err)
			s.stale = true
		default:
			log.Warn("native: acquire failed", "err", err)
		}
		return nil, false
	}
	if acq == nil || acq.Texture == nil {
		return nil, false
	}
	if acq.Suboptimal {
		s.stale = true
	}

	view, err := s.device.CreateTextureView(acq.Texture, &hal.TextureViewDescriptor{
		Label:           "vo swapchain",
		Format:          s.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		log.Warn("native: swapchain view failed", "err", err)
		s.surface.DiscardTexture(acq.Texture)
		return nil, false
	}

	s.cur = &Frame{tex: acq.Texture, view: view, width: s.width, height: s.height, format: s.format, color: s.color}
	s.state = stateAcquired
	return s.cur, true
}

// SubmitFrame marks rendering into f as complete.
func (s *Swapchain) SubmitFrame(f render.Frame) error {
	if s.state != stateAcquired || f == nil || f != render.Frame(s.cur) {
		return ErrNotAcquired
	}
	s.state = stateSubmitted
	return nil
}

// Present displays the acquired image, even if submitting it failed.
// Without an acquired image it does nothing.
func (s *Swapchain) Present() {
	if s.cur == nil {
		return
	}
	f := s.cur
	s.cur = nil
	s.state = stateIdle

	if err := s.queue.Present(s.surface, f.tex, nil); err != nil {
		if errors.Is(err, hal.ErrSurfaceOutdated) || errors.Is(err, hal.ErrSurfaceLost) {
			s.stale = true
		}
		vo.Logger().Warn("native: present failed", "err", err)
	}
	s.device.DestroyTextureView(f.view)
}

// destroy discards an unpresented image and unconfigures the surface.
func (s *Swapchain) destroy() {
	if s.cur != nil {
		s.device.DestroyTextureView(s.cur.view)
		s.surface.DiscardTexture(s.cur.tex)
		s.cur = nil
		s.state = stateIdle
	}
	if s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
}

var _ render.Swapchain = (*Swapchain)(nil)
