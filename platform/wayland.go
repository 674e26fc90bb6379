package platform

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// waylandPlatform passes caller-owned wl_display and wl_surface pointers
// to the HAL. Wayland has no way to query a surface size, so the size
// always comes from the window description and later resizes.
type waylandPlatform struct {
	display, surface uintptr
	width, height    int
}

func (p *waylandPlatform) Name() string { return "wayland" }

func (p *waylandPlatform) Init(w Window) error {
	if w.Display == 0 || w.Handle == 0 {
		return fmt.Errorf("%w: wayland needs both wl_display and wl_surface", ErrNoWindow)
	}
	p.display, p.surface = w.Display, w.Handle
	p.width, p.height = sizeOr(w.Width, w.Height)
	return nil
}

func (p *waylandPlatform) CreateSurface(inst hal.Instance) (hal.Surface, error) {
	if p.surface == 0 {
		return nil, ErrNotInitialized
	}
	return inst.CreateSurface(p.display, p.surface)
}

func (p *waylandPlatform) Size() (int, int) { return p.width, p.height }

func (p *waylandPlatform) Close() error {
	p.display, p.surface = 0, 0
	return nil
}
