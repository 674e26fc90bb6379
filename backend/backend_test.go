package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/vo/platform"
	"github.com/gogpu/vo/pool"
	"github.com/gogpu/vo/render"
)

type fakeInstance struct {
	name      string
	destroyed int
}

func (f *fakeInstance) MakeCurrent() error          { return nil }
func (f *fakeInstance) ReleaseCurrent()             {}
func (f *fakeInstance) Name() string                { return f.name }
func (f *fakeInstance) Swapchain() render.Swapchain { return nil }
func (f *fakeInstance) Painter() render.Painter     { return nil }
func (f *fakeInstance) Allocator() pool.Allocator   { return nil }
func (f *fakeInstance) Device() render.DeviceHandle { return render.NullDeviceHandle{} }
func (f *fakeInstance) WindowSize() (int, int)      { return 640, 480 }
func (f *fakeInstance) Destroy() error              { f.destroyed++; return nil }

// recorder builds factories that log the order in which they are called.
type recorder struct {
	calls []string
}

func (r *recorder) factory(name string, err error) Factory {
	return func(cfg Config) (Instance, error) {
		r.calls = append(r.calls, name)
		if cfg.Name != name {
			return nil, errors.New("factory got name " + cfg.Name)
		}
		if err != nil {
			return nil, err
		}
		return &fakeInstance{name: name}, nil
	}
}

func always(v bool) func() bool { return func() bool { return v } }

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", Auto},
		{"auto", Auto},
		{" OpenGL ", GL},
		{"gl", GL},
		{"gles", GL},
		{"VK", Vulkan},
		{"vulkan", Vulkan},
		{"noop", Null},
		{"null", Null},
		{"metal", "metal"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	r.Register("null", Entry{Priority: 0, Factory: rec.factory("null", nil)})
	r.Register("vk", Entry{Priority: 100, Factory: rec.factory("vulkan", nil), AutoProbe: true, Available: always(false)})
	r.Register("opengl", Entry{Priority: 50, Factory: rec.factory("gl", nil), AutoProbe: true})

	if got, want := r.Names(), []string{"vulkan", "gl", "null"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got, want := r.Available(), []string{"gl", "null"}; !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}

	list := r.List()
	if list[0].Available || !list[0].AutoProbe || list[0].Priority != 100 {
		t.Errorf("List()[0] = %+v", list[0])
	}
	if list[2].AutoProbe {
		t.Error("null should not be auto-probed")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	r.Register(GL, Entry{Factory: rec.factory(GL, nil)})
	r.Unregister("OpenGL")
	if len(r.Names()) != 0 {
		t.Errorf("Names() = %v after Unregister", r.Names())
	}
}

func TestCreateExplicit(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	r.Register(Vulkan, Entry{Priority: 100, Factory: rec.factory(Vulkan, nil), AutoProbe: true})
	r.Register(GL, Entry{Priority: 50, Factory: rec.factory(GL, nil), AutoProbe: true})
	r.Register(Null, Entry{Factory: rec.factory(Null, nil)})

	inst, err := r.Create(Config{Name: "opengl"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if inst.Name() != GL {
		t.Errorf("Name() = %q, want gl", inst.Name())
	}
	if !slices.Equal(rec.calls, []string{GL}) {
		t.Errorf("calls = %v, want only gl", rec.calls)
	}

	// Explicit selection works for backends excluded from probing.
	if _, err := r.Create(Config{Name: Null}); err != nil {
		t.Errorf("Create(null) error = %v", err)
	}
}

func TestCreateExplicitFailures(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	boom := errors.New("no surface")
	r.Register(Vulkan, Entry{Factory: rec.factory(Vulkan, boom)})
	r.Register(GL, Entry{Factory: rec.factory(GL, nil), Available: always(false)})

	tests := []struct {
		name string
		want error
	}{
		{"metal", ErrUnknownBackend},
		{GL, ErrBackendNotAvailable},
		{Vulkan, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := r.Create(Config{Name: tt.name})
			if !errors.Is(err, tt.want) {
				t.Errorf("Create(%q) error = %v, want %v", tt.name, err, tt.want)
			}
			if inst != nil {
				t.Error("expected nil instance on error")
			}
		})
	}

	// An explicit failure never falls back to another backend.
	if slices.Contains(rec.calls, GL) {
		t.Errorf("unavailable backend factory was called: %v", rec.calls)
	}
}

func TestCreateAutoProbeOrder(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	vkErr := errors.New("vulkan: no adapter")
	r.Register(Vulkan, Entry{Priority: 100, Factory: rec.factory(Vulkan, vkErr), AutoProbe: true})
	r.Register(GL, Entry{Priority: 50, Factory: rec.factory(GL, nil), AutoProbe: true})
	r.Register(Null, Entry{Priority: 0, Factory: rec.factory(Null, nil)})

	inst, err := r.Create(Config{})
	if err != nil {
		t.Fatalf("Create(auto) error = %v", err)
	}
	if inst.Name() != GL {
		t.Errorf("selected %q, want gl", inst.Name())
	}
	if want := []string{Vulkan, GL}; !slices.Equal(rec.calls, want) {
		t.Errorf("probe order = %v, want %v", rec.calls, want)
	}
}

func TestCreateAutoSkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	r.Register(Vulkan, Entry{Priority: 100, Factory: rec.factory(Vulkan, nil), AutoProbe: true, Available: always(false)})
	r.Register(GL, Entry{Priority: 50, Factory: rec.factory(GL, nil), AutoProbe: true})

	if _, err := r.Create(Config{Name: Auto}); err != nil {
		t.Fatalf("Create(auto) error = %v", err)
	}
	if !slices.Equal(rec.calls, []string{GL}) {
		t.Errorf("calls = %v, want only gl", rec.calls)
	}
}

func TestCreateAutoAllFail(t *testing.T) {
	r := NewRegistry()
	var rec recorder
	vkErr := errors.New("vulkan failed")
	glErr := errors.New("gl failed")
	r.Register(Vulkan, Entry{Priority: 100, Factory: rec.factory(Vulkan, vkErr), AutoProbe: true})
	r.Register(GL, Entry{Priority: 50, Factory: rec.factory(GL, glErr), AutoProbe: true})
	r.Register(Null, Entry{Factory: rec.factory(Null, nil)})

	_, err := r.Create(Config{Name: Auto})
	for _, want := range []error{ErrBackendNotAvailable, vkErr, glErr} {
		if !errors.Is(err, want) {
			t.Errorf("error %v does not wrap %v", err, want)
		}
	}
	if slices.Contains(rec.calls, Null) {
		t.Error("auto mode must not try the null backend")
	}
}

func TestCreateAutoEmpty(t *testing.T) {
	if _, err := NewRegistry().Create(Config{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Create on empty registry error = %v", err)
	}
}

func TestConfigNewPlatform(t *testing.T) {
	p, err := Config{Window: platform.Window{Kind: platform.Headless}}.NewPlatform()
	if err != nil {
		t.Fatalf("NewPlatform() error = %v", err)
	}
	if p.Name() != "headless" {
		t.Errorf("platform = %q, want headless", p.Name())
	}

	cfg := Config{Platform: p, Window: platform.Window{Kind: platform.X11}}
	if got, _ := cfg.NewPlatform(); got != p {
		t.Error("NewPlatform should return the injected platform")
	}
}
