// Package gl registers the OpenGL backend.
//
// Import it for side effects:
//
//	import _ "github.com/gogpu/vo/backend/gl"
//
// OpenGL binds its context to a thread implicitly. The backend captures
// the EGL context the HAL creates with the surface and rebinds it in
// MakeCurrent, so callers must bracket GPU work with MakeCurrent and
// ReleaseCurrent on the thread that does it. Presentation origin is
// bottom-left, which the renderer compensates for when placing overlays.
//
// The backend is auto-probed after Vulkan (priority 50) and is available
// when libEGL can be opened. Only Linux is supported.
package gl
