package backend

import (
	"errors"
	"strings"

	"github.com/gogpu/vo/platform"
	"github.com/gogpu/vo/pool"
	"github.com/gogpu/vo/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no backend could be created
	// for the requested name or, in auto mode, by any candidate.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrUnknownBackend is returned when a name is not registered.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrDestroyed is returned when using an instance after Destroy.
	ErrDestroyed = errors.New("backend: instance destroyed")
)

// Canonical backend names.
const (
	Auto   = "auto"
	Vulkan = "vulkan"
	GL     = "gl"
	Null   = "null"
)

var aliases = map[string]string{
	"":       Auto,
	"opengl": GL,
	"gles":   GL,
	"vk":     Vulkan,
	"noop":   Null,
}

// CanonicalName lowercases name and resolves aliases ("opengl" is "gl",
// "vk" is "vulkan", the empty string is "auto").
func CanonicalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// Instance is a created backend: a GPU device bound to one window surface.
//
// MakeCurrent and ReleaseCurrent bracket all GPU work of a frame and of a
// resize. For explicit-API backends they are no-ops.
type Instance interface {
	render.Context

	// Name returns the canonical backend name.
	Name() string

	// Swapchain returns the instance's swapchain.
	Swapchain() render.Swapchain

	// Painter returns the painter recording into the swapchain images.
	Painter() render.Painter

	// Allocator returns the texture allocator for the session's pool.
	Allocator() pool.Allocator

	// Device exposes the underlying GPU device.
	Device() render.DeviceHandle

	// WindowSize returns the current size of the bound window.
	WindowSize() (width, height int)

	// Destroy releases the swapchain, device and surface in reverse
	// creation order. Calling it again does nothing.
	Destroy() error
}

// Config selects a backend and the window it presents to.
type Config struct {
	// Name is a backend name or alias; "auto" or empty probes all
	// auto-probe backends in priority order.
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// Window is the caller-owned native window.
	Window platform.Window `mapstructure:"-" yaml:"-" json:"-"`

	// Platform overrides the platform created from Window.Kind.
	Platform platform.Platform `mapstructure:"-" yaml:"-" json:"-"`
}

// NewPlatform returns c.Platform if set, or a fresh platform for the
// window kind.
func (c Config) NewPlatform() (platform.Platform, error) {
	if c.Platform != nil {
		return c.Platform, nil
	}
	return platform.New(c.Window.Kind)
}
