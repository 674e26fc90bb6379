package null

import (
	"errors"
	"testing"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/backend"
	"github.com/gogpu/vo/platform"
)

func TestNotAutoProbed(t *testing.T) {
	for _, in := range backend.List() {
		if in.Name == backend.Null && in.AutoProbe {
			t.Fatal("null backend is auto-probed")
		}
	}
	_, err := backend.Create(backend.Config{Name: backend.Auto})
	if !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("auto with only null registered: error = %v", err)
	}
}

func TestFrameCycle(t *testing.T) {
	inst, err := backend.Create(backend.Config{Name: "noop", Window: platform.Window{Kind: platform.Headless, Width: 64, Height: 48}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer inst.Destroy()

	if inst.Name() != backend.Null {
		t.Errorf("Name() = %q", inst.Name())
	}
	sw := inst.Swapchain()
	sw.ColorspaceHint(vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferBT1886}, vo.OutputAuto)
	if w, h, err := sw.Resize(inst.WindowSize()); err != nil || w != 64 || h != 48 {
		t.Fatalf("Resize() = %d, %d, %v", w, h, err)
	}
	for range 3 {
		f, ok := sw.AcquireFrame()
		if !ok {
			t.Fatal("AcquireFrame() returned no image")
		}
		if f.Width() != 64 || f.Height() != 48 {
			t.Errorf("frame size %dx%d", f.Width(), f.Height())
		}
		if err := sw.SubmitFrame(f); err != nil {
			t.Fatal(err)
		}
		sw.Present()
	}
}
