// Package vulkan registers the Vulkan backend.
//
// Import it for side effects:
//
//	import _ "github.com/gogpu/vo/backend/vulkan"
//
// The backend is auto-probed first (priority 100) and is available when
// the Vulkan loader library can be opened. Surfaces are created for X11
// and Wayland windows; presentation origin is top-left.
package vulkan
