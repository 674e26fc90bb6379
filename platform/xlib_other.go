//go:build !linux

package platform

// openXlibDisplay is unavailable off Linux; callers must pass the Xlib
// display in Window.Display.
func openXlibDisplay() (uintptr, func()) {
	return 0, nil
}
