//go:build !android && !js

package vulkan

import (
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/backend/native"
)

// Priority is the auto-probe priority of the Vulkan backend.
const Priority = 100

// loader names the Vulkan loader is installed under.
var loader = []string{"libvulkan.so.1", "libvulkan.so"}

func init() {
	backend.Register(backend.Vulkan, backend.Entry{
		Priority:  Priority,
		Factory:   New,
		Available: func() bool { return native.LibraryAvailable(loader...) },
		AutoProbe: true,
	})
}

// New creates a Vulkan instance for the window in cfg.
func New(cfg backend.Config) (backend.Instance, error) {
	inst, err := native.New(native.Options{
		Name:    backend.Vulkan,
		Variant: gputypes.BackendVulkan,
	}, cfg)
	if err != nil {
		return nil, err
	}
	return inst, nil
}
