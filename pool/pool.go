// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/vo"
)

// Errors returned by Pool.
var (
	// ErrPoolDestroyed is returned when using a pool after DestroyAll.
	ErrPoolDestroyed = errors.New("pool: destroyed")

	// ErrIndex is returned for a plane or overlay index out of range.
	ErrIndex = errors.New("pool: index out of range")

	// ErrEmptyPlane is returned when uploading a plane with no area.
	ErrEmptyPlane = errors.New("pool: empty plane")
)

// Stats counts pool activity since creation.
type Stats struct {
	// Allocations is the number of textures created.
	Allocations int

	// Reuses is the number of uploads that reused an existing texture.
	Reuses int

	// Uploads is the number of successful uploads.
	Uploads int

	// Failures is the number of failed allocations or uploads.
	Failures int
}

// Pool owns the plane and overlay textures of one output session.
type Pool struct {
	alloc     Allocator
	log       *slog.Logger
	planes    [vo.MaxPlanes]Texture
	overlays  []Texture
	stats     Stats
	destroyed bool
}

// New creates an empty pool that allocates through alloc. A nil log
// uses vo.Logger().
func New(alloc Allocator, log *slog.Logger) *Pool {
	if log == nil {
		log = vo.Logger()
	}
	return &Pool{alloc: alloc, log: log}
}

// UploadPlane uploads data into the texture for plane i, reusing the
// existing texture when its format and size match.
func (p *Pool) UploadPlane(i int, data PlaneData) (Texture, error) {
	if p.destroyed {
		return nil, ErrPoolDestroyed
	}
	if i < 0 || i >= len(p.planes) {
		return nil, fmt.Errorf("%w: plane %d", ErrIndex, i)
	}
	return p.upload(&p.planes[i], fmt.Sprintf("plane%d", i), data)
}

// Plane returns the current texture for plane i, or nil.
func (p *Pool) Plane(i int) Texture {
	if i < 0 || i >= len(p.planes) {
		return nil
	}
	return p.planes[i]
}

// GrowOverlays makes room for at least n overlay regions. New entries
// hold no texture. The overlay capacity never shrinks.
func (p *Pool) GrowOverlays(n int) {
	if n <= len(p.overlays) {
		return
	}
	grown := make([]Texture, n)
	copy(grown, p.overlays)
	p.log.Debug("pool: overlay capacity grown", "from", len(p.overlays), "to", n)
	p.overlays = grown
}

// OverlayCap returns the overlay capacity.
func (p *Pool) OverlayCap() int { return len(p.overlays) }

// UploadOverlay uploads data into overlay slot i. The slot must exist,
// see GrowOverlays.
func (p *Pool) UploadOverlay(i int, data PlaneData) (Texture, error) {
	if p.destroyed {
		return nil, ErrPoolDestroyed
	}
	if i < 0 || i >= len(p.overlays) {
		return nil, fmt.Errorf("%w: overlay %d of %d", ErrIndex, i, len(p.overlays))
	}
	return p.upload(&p.overlays[i], fmt.Sprintf("overlay%d", i), data)
}

// Overlay returns the current texture in overlay slot i, or nil.
func (p *Pool) Overlay(i int) Texture {
	if i < 0 || i >= len(p.overlays) {
		return nil
	}
	return p.overlays[i]
}

func (p *Pool) upload(slot *Texture, label string, data PlaneData) (Texture, error) {
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("%w: %s %dx%d", ErrEmptyPlane, label, data.Width, data.Height)
	}

	want := data.Desc(label)
	tex := *slot
	if tex != nil && tex.Desc().matches(want) {
		p.stats.Reuses++
	} else {
		if tex != nil {
			p.log.Debug("pool: reallocating texture", "old", tex.Desc(), "new", want)
			tex.Destroy()
			*slot = nil
		}
		created, err := p.alloc.CreateTexture(want)
		if err != nil {
			p.stats.Failures++
			return nil, fmt.Errorf("pool: create %s: %w", label, err)
		}
		p.stats.Allocations++
		tex = created
		*slot = tex
	}

	if err := p.alloc.Upload(tex, data); err != nil {
		p.stats.Failures++
		tex.Destroy()
		*slot = nil
		return nil, fmt.Errorf("pool: upload %s: %w", label, err)
	}
	p.stats.Uploads++
	return tex, nil
}

// Stats returns the activity counters.
func (p *Pool) Stats() Stats { return p.stats }

// DestroyAll releases every texture. The pool cannot be used afterwards.
// DestroyAll is idempotent.
func (p *Pool) DestroyAll() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	for i, tex := range p.planes {
		if tex != nil {
			tex.Destroy()
			p.planes[i] = nil
		}
	}
	for i, tex := range p.overlays {
		if tex != nil {
			tex.Destroy()
			p.overlays[i] = nil
		}
	}
}
