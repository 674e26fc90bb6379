// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"hash/maphash"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/pool"
)

// Background colors.
var (
	// ClearColor fills the target before the picture is drawn.
	ClearColor = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

	// ErrorColor fills the target when a frame could not be rendered.
	ErrorColor = gputypes.Color{R: 1, G: 0, B: 0, A: 1}
)

// TargetOverlay is one uploaded overlay region.
type TargetOverlay struct {
	Texture pool.Texture

	// Rect is the placement in image coordinates of the target texture,
	// already flipped for bottom-left presentation.
	Rect  image.Rectangle
	Color vo.ColorInfo
}

// Target describes the acquired swapchain image for one render call.
type Target struct {
	Frame Frame

	// Dst is where the picture goes, letterboxed inside the image.
	Dst image.Rectangle

	Color        vo.ColorInfo
	Bits         pipeline.BitDepth
	ICC          []byte
	ICCSignature uint64
	Overlays     []TargetOverlay
	LUT          *asset.LUT
	Flipped      bool
}

// Bounds returns the full image rectangle of the target.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Frame.Width(), t.Frame.Height())
}

// BitsFor returns the bit depth of a swapchain format.
func BitsFor(f gputypes.TextureFormat) pipeline.BitDepth {
	switch f {
	case gputypes.TextureFormatRGB10A2Unorm:
		return pipeline.BitDepth{Sample: 10, Color: 10}
	case gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatRGBA16Unorm:
		return pipeline.BitDepth{Sample: 16, Color: 16}
	default:
		return pipeline.BitDepth{Sample: 8, Color: 8}
	}
}

// Letterbox returns the largest rectangle with aspect ratio w:h centered
// in r.
func Letterbox(w, h float64, r image.Rectangle) image.Rectangle {
	rw, rh := float64(r.Dx()), float64(r.Dy())
	if w <= 0 || h <= 0 || rw <= 0 || rh <= 0 {
		return r
	}
	scale := math.Min(rw/w, rh/h)
	dw := int(math.Round(w * scale))
	dh := int(math.Round(h * scale))
	x := r.Min.X + (r.Dx()-dw)/2
	y := r.Min.Y + (r.Dy()-dh)/2
	return image.Rect(x, y, x+dw, y+dh)
}

// iccCache remembers the signature of the last ICC profile seen. The
// profile is identified by its backing array and length, so the hash is
// only computed when the caller hands in a different buffer.
type iccCache struct {
	seed   maphash.Seed
	data   *byte
	n      int
	sig    uint64
	hashes int
}

func (c *iccCache) signature(icc []byte) uint64 {
	if len(icc) == 0 {
		return 0
	}
	p := unsafe.SliceData(icc)
	if p == c.data && len(icc) == c.n {
		return c.sig
	}
	if c.seed == (maphash.Seed{}) {
		c.seed = maphash.MakeSeed()
	}
	c.data, c.n = p, len(icc)
	c.sig = maphash.Bytes(c.seed, icc)
	c.hashes++
	return c.sig
}

// buildTarget describes fr with the user overrides applied.
func buildTarget(fr Frame, src *Source, icc []byte, cache *iccCache, p *pipeline.Params, flipped bool) *Target {
	t := &Target{
		Frame:        fr,
		Color:        p.ApplyTarget(fr.Color()),
		Bits:         p.ApplyDitherDepth(BitsFor(fr.Format())),
		ICC:          icc,
		ICCSignature: cache.signature(icc),
		Flipped:      flipped,
	}
	if p.LUT != nil && !p.LUTType.OnSource() {
		t.LUT = p.LUT
	}
	t.Dst = t.Bounds()
	if src != nil {
		w, h := src.OrientedSize()
		t.Dst = Letterbox(w, h, t.Bounds())
	}
	return t
}

// flipRect mirrors r vertically inside an image of height h.
func flipRect(r image.Rectangle, h int) image.Rectangle {
	return image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y)
}
