//go:build !((darwin || freebsd || linux || netbsd) && !android)

package native

// LibraryAvailable always reports true where libraries cannot be probed
// without loading them; instance creation reports the real failure.
func LibraryAvailable(names ...string) bool { return len(names) > 0 }
