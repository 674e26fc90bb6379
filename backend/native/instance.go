// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/platform"
	"github.com/gogpu/vo/pool"
	"github.com/gogpu/vo/render"
)

// ContextBinder manages an implicit per-thread API context. OpenGL needs
// one; explicit APIs use NoopBinder.
type ContextBinder interface {
	// Attach captures the context the HAL instance created.
	Attach(inst hal.Instance) error

	// MakeCurrent binds the context to the calling thread.
	MakeCurrent() error

	// ReleaseCurrent unbinds it.
	ReleaseCurrent()

	// Detach forgets the context. The HAL instance owns and destroys it.
	Detach()
}

// NoopBinder is the ContextBinder of explicit-API backends.
type NoopBinder struct{}

func (NoopBinder) Attach(hal.Instance) error { return nil }
func (NoopBinder) MakeCurrent() error        { return nil }
func (NoopBinder) ReleaseCurrent()           {}
func (NoopBinder) Detach()                   {}

// Options select the HAL backend an Instance runs on.
type Options struct {
	// Name is the canonical backend name reported by the instance.
	Name string

	// Variant is the HAL backend to instantiate. Its package must be
	// imported for side effects so it is registered.
	Variant gputypes.Backend

	// Binder manages the API context; nil means NoopBinder.
	Binder ContextBinder

	// Flipped reports a bottom-left presentation origin.
	Flipped bool

	// Flags are passed to the HAL instance.
	Flags gputypes.InstanceFlags
}

// Instance is a HAL device bound to one window surface. It implements
// backend.Instance; Device exposes the HAL objects to host code through
// gpucontext.DeviceProvider.
type Instance struct {
	mu        sync.Mutex
	destroyed bool

	name   string
	binder ContextBinder
	plat   platform.Platform

	inst    hal.Instance
	surface hal.Surface
	adapter hal.Adapter
	info    gputypes.AdapterInfo
	device  hal.Device
	queue   hal.Queue

	swapchain *Swapchain
	allocator *Allocator
	painter   *Painter

	// undo releases what New created, in creation order.
	undo []func()
}

// New creates an instance for the window in cfg. On failure everything
// created so far is released in reverse order.
func New(opts Options, cfg backend.Config) (*Instance, error) {
	if opts.Binder == nil {
		opts.Binder = NoopBinder{}
	}
	i := &Instance{name: opts.Name, binder: opts.Binder}
	if err := i.init(opts, cfg); err != nil {
		i.unwind()
		return nil, fmt.Errorf("native: %s: %w", opts.Name, err)
	}
	i.binder.ReleaseCurrent()

	vo.Logger().Info("native: instance ready",
		"backend", i.name,
		"adapter", i.info.Name,
		"vendor", i.info.Vendor,
		"type", i.info.DeviceType.String(),
		"platform", i.plat.Name(),
		"surface_format", i.swapchain.Format(),
	)
	return i, nil
}

func (i *Instance) init(opts Options, cfg backend.Config) error {
	plat, err := cfg.NewPlatform()
	if err != nil {
		return err
	}
	if err := plat.Init(cfg.Window); err != nil {
		return err
	}
	i.plat = plat
	i.push(func() {
		if err := plat.Close(); err != nil {
			vo.Logger().Warn("native: close platform", "err", err)
		}
	})

	api, ok := hal.GetBackend(opts.Variant)
	if !ok {
		return fmt.Errorf("%w: %v", ErrHALBackendMissing, opts.Variant)
	}
	i.inst, err = api.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.Backends(1) << opts.Variant,
		Flags:    opts.Flags,
	})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	i.push(i.inst.Destroy)

	if err := i.binder.Attach(i.inst); err != nil {
		return fmt.Errorf("attach context: %w", err)
	}
	i.push(i.binder.Detach)
	if err := i.binder.MakeCurrent(); err != nil {
		return fmt.Errorf("make current: %w", err)
	}

	i.surface, err = plat.CreateSurface(i.inst)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	i.push(i.surface.Destroy)

	adapters := i.inst.EnumerateAdapters(i.surface)
	cand, ok := pickAdapter(adapters, i.surface)
	if !ok {
		return ErrNoGPU
	}
	releaseUnused(adapters, cand.index)
	i.adapter, i.info = cand.Adapter, cand.Info
	i.push(i.adapter.Destroy)
	if cand.caps == nil {
		return fmt.Errorf("%w: adapter %q", ErrNoSurfaceFormat, cand.Info.Name)
	}

	limits := cand.Capabilities.Limits
	dev, err := i.adapter.Open(0, limits)
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	i.device, i.queue = dev.Device, dev.Queue
	i.push(i.device.Destroy)

	maxDim := int(limits.MaxTextureDimension2D)
	i.swapchain = NewSwapchain(i.surface, i.device, i.queue, cand.caps, maxDim, opts.Flipped)
	i.push(i.swapchain.destroy)

	i.allocator = NewAllocator(i.device, i.queue, maxDim)

	i.painter, err = NewPainter(i.device, i.queue)
	if err != nil {
		return err
	}
	i.push(i.painter.destroy)
	return nil
}

func (i *Instance) push(f func()) { i.undo = append(i.undo, f) }

// unwind runs the undo stack in reverse with the context current.
func (i *Instance) unwind() {
	if err := i.binder.MakeCurrent(); err != nil {
		vo.Logger().Debug("native: make current for teardown", "err", err)
	}
	for k := len(i.undo) - 1; k >= 0; k-- {
		i.undo[k]()
	}
	i.undo = nil
}

// Name returns the canonical backend name.
func (i *Instance) Name() string { return i.name }

// MakeCurrent binds the API context to the calling thread.
func (i *Instance) MakeCurrent() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return backend.ErrDestroyed
	}
	return i.binder.MakeCurrent()
}

// ReleaseCurrent unbinds the API context.
func (i *Instance) ReleaseCurrent() { i.binder.ReleaseCurrent() }

func (i *Instance) Swapchain() render.Swapchain { return i.swapchain }
func (i *Instance) Painter() render.Painter     { return i.painter }
func (i *Instance) Allocator() pool.Allocator   { return i.allocator }
func (i *Instance) Device() render.DeviceHandle { return deviceHandle{i} }

// WindowSize returns the size of the bound window.
func (i *Instance) WindowSize() (int, int) { return i.plat.Size() }

// Destroy waits for the GPU and releases the painter, swapchain, device,
// adapter, surface and instance in that order. Calling it again does
// nothing.
func (i *Instance) Destroy() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return nil
	}
	i.destroyed = true

	var errs []error
	if i.device != nil {
		if err := i.binder.MakeCurrent(); err != nil {
			errs = append(errs, fmt.Errorf("make current: %w", err))
		} else if err := i.device.WaitIdle(); err != nil {
			errs = append(errs, fmt.Errorf("wait idle: %w", err))
		}
	}
	i.unwind()
	i.binder.ReleaseCurrent()
	vo.Logger().Debug("native: instance destroyed", "backend", i.name)
	return errors.Join(errs...)
}

// deviceHandle exposes the HAL device through gpucontext.DeviceProvider.
type deviceHandle struct{ i *Instance }

func (h deviceHandle) Device() gpucontext.Device   { return h.i.device }
func (h deviceHandle) Queue() gpucontext.Queue     { return h.i.queue }
func (h deviceHandle) Adapter() gpucontext.Adapter { return h.i.adapter }

func (h deviceHandle) SurfaceFormat() gputypes.TextureFormat { return h.i.swapchain.Format() }

func (h deviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: h.i.info.Name, Type: adapterType(h.i.info.DeviceType)}
}

var (
	_ backend.Instance    = (*Instance)(nil)
	_ render.DeviceHandle = deviceHandle{}
	_ ContextBinder       = NoopBinder{}
)
