package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pool"
)

// Texture is a sampled 2D texture holding one image plane or overlay.
//
// Texture wraps a hal.Texture and creates its default view lazily with
// sync.Once, the first time a painter binds it.
//
// Lifecycle:
//  1. Create via Allocator.CreateTexture
//  2. Upload data with Allocator.Upload
//  3. The painter binds View()
//  4. Call Destroy when done; the pool does this on reallocation and teardown
type Texture struct {
	mu sync.RWMutex

	raw    hal.Texture
	device hal.Device
	desc   pool.TextureDesc

	viewOnce sync.Once
	view     hal.TextureView
	viewErr  error

	destroyed bool
}

// Desc returns the description the texture was created with.
func (t *Texture) Desc() pool.TextureDesc { return t.desc }

// Raw returns the underlying HAL texture, or nil after Destroy.
func (t *Texture) Raw() hal.Texture {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.destroyed {
		return nil
	}
	return t.raw
}

// View returns the default view covering the whole texture, creating it
// on first use.
func (t *Texture) View() (hal.TextureView, error) {
	t.mu.RLock()
	destroyed := t.destroyed
	t.mu.RUnlock()
	if destroyed {
		return nil, ErrTextureDestroyed
	}

	t.viewOnce.Do(func() {
		t.view, t.viewErr = t.device.CreateTextureView(t.raw, &hal.TextureViewDescriptor{
			Label:           t.desc.Label + " (default view)",
			Format:          t.desc.Format,
			Dimension:       gputypes.TextureViewDimension2D,
			Aspect:          gputypes.TextureAspectAll,
			MipLevelCount:   1,
			ArrayLayerCount: 1,
		})
		if t.viewErr != nil {
			t.viewErr = fmt.Errorf("native: create view %s: %w", t.desc.Label, t.viewErr)
		}
	})
	return t.view, t.viewErr
}

// Destroy releases the view and the texture. It is idempotent.
func (t *Texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	raw, view := t.raw, t.view
	t.raw, t.view = nil, nil
	t.mu.Unlock()

	if view != nil {
		t.device.DestroyTextureView(view)
	}
	if raw != nil {
		t.device.DestroyTexture(raw)
	}
}

// Allocator creates plane textures on a device and uploads pixel data
// through its queue. It implements pool.Allocator.
type Allocator struct {
	device hal.Device
	queue  hal.Queue
	maxDim int
}

// NewAllocator returns an allocator for device and queue. maxDim is the
// device's largest 2D texture dimension; 0 means unlimited.
func NewAllocator(device hal.Device, queue hal.Queue, maxDim int) *Allocator {
	return &Allocator{device: device, queue: queue, maxDim: maxDim}
}

// CreateTexture creates a sampled, copy-destination 2D texture.
func (a *Allocator) CreateTexture(desc pool.TextureDesc) (pool.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("native: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if a.maxDim > 0 && (desc.Width > a.maxDim || desc.Height > a.maxDim) {
		return nil, fmt.Errorf("native: texture %dx%d exceeds device limit %d", desc.Width, desc.Height, a.maxDim)
	}

	raw, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %s: %w", desc, err)
	}
	return &Texture{raw: raw, device: a.device, desc: desc}, nil
}

// Upload writes data into tex. The data layout uses the plane stride as
// the row pitch, so no repacking happens on the CPU.
func (a *Allocator) Upload(tex pool.Texture, data pool.PlaneData) error {
	t, ok := tex.(*Texture)
	if !ok {
		return ErrForeignTexture
	}
	raw := t.Raw()
	if raw == nil {
		return ErrTextureDestroyed
	}

	row := data.Width * vo.BytesPerTexel(data.Format)
	need := data.Stride*(data.Height-1) + row
	if data.Height <= 0 || data.Stride < row || len(data.Data) < need {
		return fmt.Errorf("native: plane data too short for %dx%d stride %d", data.Width, data.Height, data.Stride)
	}

	err := a.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: raw, Aspect: gputypes.TextureAspectAll},
		data.Data[:need],
		&hal.ImageDataLayout{BytesPerRow: uint32(data.Stride), RowsPerImage: uint32(data.Height)},
		&hal.Extent3D{Width: uint32(data.Width), Height: uint32(data.Height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("native: upload %s: %w", t.desc.Label, err)
	}
	return nil
}

var (
	_ pool.Allocator = (*Allocator)(nil)
	_ pool.Texture   = (*Texture)(nil)
)
