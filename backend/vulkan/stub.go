//go:build android || js

package vulkan

import "github.com/gogpu/vo/backend"

// Priority is the auto-probe priority of the Vulkan backend.
const Priority = 100

// init registers an unavailable entry so the name still resolves.
func init() {
	backend.Register(backend.Vulkan, backend.Entry{
		Priority:  Priority,
		Factory:   New,
		Available: func() bool { return false },
		AutoProbe: true,
	})
}

// New always fails on this platform.
func New(backend.Config) (backend.Instance, error) {
	return nil, backend.ErrBackendNotAvailable
}
