package platform

import (
	"github.com/gogpu/wgpu/hal"
)

// headlessPlatform creates surfaces that are not attached to any window.
// Only HAL backends with offscreen surfaces (the noop backend) accept it.
type headlessPlatform struct {
	width, height int
	initialized   bool
}

func (p *headlessPlatform) Name() string { return "headless" }

func (p *headlessPlatform) Init(w Window) error {
	p.width, p.height = sizeOr(w.Width, w.Height)
	p.initialized = true
	return nil
}

func (p *headlessPlatform) CreateSurface(inst hal.Instance) (hal.Surface, error) {
	if !p.initialized {
		return nil, ErrNotInitialized
	}
	return inst.CreateSurface(0, 0)
}

func (p *headlessPlatform) Size() (int, int) { return p.width, p.height }

func (p *headlessPlatform) Close() error {
	p.initialized = false
	return nil
}
