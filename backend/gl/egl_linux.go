// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/gles"
	"github.com/gogpu/wgpu/hal/gles/egl"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/backend/native"
)

const supported = true

// errNoContext is returned by MakeCurrent when the captured context was
// lost or never existed.
var errNoContext = errors.New("gl: no EGL context")

// eglAPI is the subset of EGL the binder uses.
type eglAPI interface {
	load() error
	currentDisplay() egl.EGLDisplay
	currentContext() egl.EGLContext
	makeCurrent(dpy egl.EGLDisplay, ctx egl.EGLContext) bool
	lastError() int
}

type systemEGL struct{}

var (
	loadOnce sync.Once
	loadErr  error
)

func (systemEGL) load() error {
	loadOnce.Do(func() { loadErr = egl.Init() })
	return loadErr
}

func (systemEGL) currentDisplay() egl.EGLDisplay { return egl.GetCurrentDisplay() }
func (systemEGL) currentContext() egl.EGLContext { return egl.GetCurrentContext() }
func (systemEGL) lastError() int                 { return int(egl.GetError()) }

func (systemEGL) makeCurrent(dpy egl.EGLDisplay, ctx egl.EGLContext) bool {
	return egl.MakeCurrent(dpy, egl.NoSurface, egl.NoSurface, ctx) != egl.False
}

// eglBinder rebinds the context the GLES HAL creates together with the
// surface. The context does not exist when Attach runs, so it is captured
// from the thread state the first time MakeCurrent finds one current.
type eglBinder struct {
	api eglAPI

	mu       sync.Mutex
	attached bool
	dpy      egl.EGLDisplay
	ctx      egl.EGLContext
}

func newBinder() native.ContextBinder { return &eglBinder{api: systemEGL{}} }

func (b *eglBinder) Attach(hal.Instance) error {
	if err := b.api.load(); err != nil {
		return fmt.Errorf("gl: load EGL: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = true
	b.captureLocked()
	return nil
}

// captureLocked records the current EGL context, if there is one.
func (b *eglBinder) captureLocked() {
	if b.ctx != egl.NoContext {
		return
	}
	if ctx := b.api.currentContext(); ctx != egl.NoContext {
		b.dpy, b.ctx = b.api.currentDisplay(), ctx
		vo.Logger().Debug("gl: captured EGL context", "display", uintptr(b.dpy), "context", uintptr(b.ctx))
	}
}

func (b *eglBinder) MakeCurrent() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return errNoContext
	}
	b.captureLocked()
	if b.ctx == egl.NoContext {
		// Before the surface exists there is nothing to bind.
		return nil
	}
	if !b.api.makeCurrent(b.dpy, b.ctx) {
		return fmt.Errorf("gl: eglMakeCurrent failed: error 0x%x", b.api.lastError())
	}
	return nil
}

func (b *eglBinder) ReleaseCurrent() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == egl.NoContext {
		return
	}
	if !b.api.makeCurrent(b.dpy, egl.NoContext) {
		vo.Logger().Debug("gl: release context failed", "err", b.api.lastError())
	}
}

func (b *eglBinder) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	b.dpy, b.ctx = egl.NoDisplay, egl.NoContext
}
