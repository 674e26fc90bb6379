//go:build linux

package platform

import (
	"github.com/gogpu/wgpu/hal/gles/egl"
)

// openXlibDisplay opens the default Xlib display through the EGL loader's
// display owner. It returns 0 if libX11 is missing or $DISPLAY is unusable.
func openXlibDisplay() (uintptr, func()) {
	owner := egl.OpenX11Display()
	if owner == nil || owner.Display() == 0 {
		return 0, nil
	}
	return owner.Display(), owner.Close
}
