// Package backend selects and creates the GPU backend of an output session.
//
// A backend [Instance] owns a GPU device bound to one window surface and
// hands out the swapchain, painter and texture allocator the renderer
// works with. Variants register themselves on import:
//
//	import (
//		_ "github.com/gogpu/vo/backend/gl"
//		_ "github.com/gogpu/vo/backend/vulkan"
//	)
//
// # Backend Selection
//
// [Create] with an explicit name tries only that backend. With "auto" (or
// an empty name) it probes every available auto-probe backend, highest
// priority first, and returns the first that binds to the window:
//
//	inst, err := backend.Create(backend.Config{
//		Name:   "auto",
//		Window: platform.Window{Kind: platform.X11, Handle: xid},
//	})
//
// # Available Backends
//
//   - "vulkan" (alias "vk"): priority 100, auto-probed
//   - "gl" (aliases "opengl", "gles"): priority 50, auto-probed
//   - "null" (alias "noop"): headless, explicit selection only
package backend
