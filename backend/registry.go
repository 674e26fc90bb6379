// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/vo"
)

// Factory creates a backend instance for cfg. It must release everything
// it acquired before returning an error.
type Factory func(cfg Config) (Instance, error)

// Entry is a registered backend.
type Entry struct {
	// Priority determines probe order (higher = preferred).
	// Standard priorities:
	//   - 100: Vulkan
	//   - 50: OpenGL
	//   - 0: null (never auto-probed)
	Priority int

	// Factory creates instances.
	Factory Factory

	// Available reports whether the backend's system libraries can be
	// loaded. Nil means always available.
	Available func() bool

	// AutoProbe includes the backend in auto selection.
	AutoProbe bool
}

// Info describes a registered backend.
type Info struct {
	Name      string
	Priority  int
	Available bool
	AutoProbe bool
}

// Registry manages registered backends.
//
// Variants register themselves from init:
//
//	func init() {
//	    backend.Register(backend.Vulkan, backend.Entry{Priority: 100, Factory: New, Available: available, AutoProbe: true})
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Create.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

var globalRegistry = NewRegistry()

// Register adds a backend to the global registry.
func Register(name string, e Entry) { globalRegistry.Register(name, e) }

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// Names returns all registered backend names, highest priority first.
func Names() []string { return globalRegistry.Names() }

// Available returns the registered backends whose libraries load,
// highest priority first.
func Available() []string { return globalRegistry.Available() }

// List describes every registered backend, highest priority first.
func List() []Info { return globalRegistry.List() }

// Create creates an instance from the global registry.
func Create(cfg Config) (Instance, error) { return globalRegistry.Create(cfg) }

// Register adds a backend to this registry. Registering a name that
// already exists replaces the previous entry.
func (r *Registry) Register(name string, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	if e.Available == nil {
		e.Available = func() bool { return true }
	}
	r.entries[CanonicalName(name)] = e
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, CanonicalName(name))
}

// Names returns all registered backend names sorted by priority.
func (r *Registry) Names() []string {
	infos := r.List()
	names := make([]string, len(infos))
	for i, in := range infos {
		names[i] = in.Name
	}
	return names
}

// Available returns the names of available backends sorted by priority.
func (r *Registry) Available() []string {
	var names []string
	for _, in := range r.List() {
		if in.Available {
			names = append(names, in.Name)
		}
	}
	return names
}

// List returns information about every registered backend.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

// Create creates an instance of the named backend, or probes in auto mode.
//
// An explicit name tries only that backend. Auto mode tries every
// available auto-probe backend, highest priority first, and returns the
// first that binds to the window. If none does, the error wraps
// ErrBackendNotAvailable and every individual failure.
func (r *Registry) Create(cfg Config) (Instance, error) {
	name := CanonicalName(cfg.Name)
	if name != Auto {
		return r.createNamed(name, cfg)
	}

	r.mu.RLock()
	var candidates []string
	infos := r.listLocked()
	r.mu.RUnlock()

	log := vo.Logger()
	for _, in := range infos {
		switch {
		case !in.AutoProbe:
		case !in.Available:
			log.Debug("backend: skipping unavailable", "backend", in.Name)
		default:
			candidates = append(candidates, in.Name)
		}
	}

	var errs []error
	for _, n := range candidates {
		inst, err := r.createNamed(n, cfg)
		if err == nil {
			return inst, nil
		}
		log.Warn("backend: probe failed", "backend", n, "err", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no auto-probe backend available", ErrBackendNotAvailable)
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

func (r *Registry) createNamed(name string, cfg Config) (Instance, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if !e.Available() {
		return nil, fmt.Errorf("%w: %s: system library not found", ErrBackendNotAvailable, name)
	}

	cfg.Name = name
	inst, err := e.Factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	vo.Logger().Info("backend: selected", "backend", name)
	return inst, nil
}

// listLocked is List without taking the lock.
func (r *Registry) listLocked() []Info {
	infos := make([]Info, 0, len(r.entries))
	for name, e := range r.entries {
		infos = append(infos, Info{Name: name, Priority: e.Priority, Available: e.Available(), AutoProbe: e.AutoProbe})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Priority != infos[j].Priority {
			return infos[i].Priority > infos[j].Priority
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}
