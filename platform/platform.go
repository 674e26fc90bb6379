package platform

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Errors.
var (
	// ErrNoWindow is returned when a window handle is required but missing.
	ErrNoWindow = errors.New("platform: no window handle")

	// ErrUnsupportedWindow is returned for window kinds without a platform.
	ErrUnsupportedWindow = errors.New("platform: unsupported window kind")

	// ErrNotInitialized is returned when CreateSurface is called before Init.
	ErrNotInitialized = errors.New("platform: not initialized")

	// ErrClosed is returned when using a platform after Close.
	ErrClosed = errors.New("platform: closed")
)

// WindowKind identifies the windowing system a native window belongs to.
type WindowKind uint8

// Window kinds.
const (
	Headless WindowKind = iota
	X11
	Wayland
)

func (k WindowKind) String() string {
	switch k {
	case Headless:
		return "headless"
	case X11:
		return "x11"
	case Wayland:
		return "wayland"
	default:
		return fmt.Sprintf("WindowKind(%d)", k)
	}
}

// Window describes a native window owned by the caller.
//
// For X11, Handle is the window XID and Display an optional Xlib Display*.
// For Wayland, Display is the wl_display* and Handle the wl_surface*.
// Width and Height are the initial size hint; platforms that can query
// the real size prefer it.
type Window struct {
	Kind    WindowKind
	Display uintptr
	Handle  uintptr
	Width   int
	Height  int
}

// Platform is the windowing-system specific part of a backend instance.
type Platform interface {
	// Name returns the platform identifier (e.g. "x11").
	Name() string

	// Init binds the platform to a window and opens any connections
	// needed to create surfaces for it.
	Init(w Window) error

	// CreateSurface creates a presentation surface for the bound window.
	CreateSurface(inst hal.Instance) (hal.Surface, error)

	// Size returns the current window size in pixels.
	Size() (width, height int)

	// Close releases the platform's connections. It does not touch the
	// window. Close is idempotent.
	Close() error
}

// defaultSize is used when a window reports no size at all.
const (
	defaultWidth  = 640
	defaultHeight = 480
)

func sizeOr(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}
