//go:build (darwin || freebsd || linux || netbsd) && !android

package native

import (
	"github.com/ebitengine/purego"

	"github.com/gogpu/vo"
)

// LibraryAvailable reports whether any of the named shared libraries can
// be loaded. Backends use it as a cheap availability probe before
// creating an instance.
func LibraryAvailable(names ...string) bool {
	for _, name := range names {
		h, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_LOCAL)
		if err != nil {
			vo.Logger().Debug("native: library not loadable", "lib", name, "err", err)
			continue
		}
		if err := purego.Dlclose(h); err != nil {
			vo.Logger().Debug("native: dlclose", "lib", name, "err", err)
		}
		return true
	}
	return false
}
