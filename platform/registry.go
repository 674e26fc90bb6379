package platform

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates an uninitialized Platform.
type Factory func() Platform

var (
	registryMu sync.RWMutex
	factories  = make(map[WindowKind]Factory)
)

func init() {
	Register(Headless, func() Platform { return &headlessPlatform{} })
	Register(Wayland, func() Platform { return &waylandPlatform{} })
	Register(X11, func() Platform { return &x11Platform{} })
}

// Register installs the platform factory for a window kind.
// If one is already registered, it is replaced.
func Register(kind WindowKind, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[kind] = factory
}

// Unregister removes the platform for a window kind.
// This is useful for testing.
func Unregister(kind WindowKind) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, kind)
}

// Kinds returns the window kinds that have a registered platform.
func Kinds() []WindowKind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]WindowKind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New returns a fresh, uninitialized platform for the window kind.
func New(kind WindowKind) (Platform, error) {
	registryMu.RLock()
	factory, ok := factories[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWindow, kind)
	}
	return factory(), nil
}
