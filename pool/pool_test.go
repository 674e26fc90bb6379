package pool

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

type fakeTexture struct {
	desc      TextureDesc
	destroyed int
}

func (t *fakeTexture) Desc() TextureDesc { return t.desc }
func (t *fakeTexture) Destroy()          { t.destroyed++ }

type fakeAllocator struct {
	created   []*fakeTexture
	uploads   int
	failAlloc bool
	failNext  bool
}

func (a *fakeAllocator) CreateTexture(desc TextureDesc) (Texture, error) {
	if a.failAlloc {
		return nil, errors.New("out of memory")
	}
	t := &fakeTexture{desc: desc}
	a.created = append(a.created, t)
	return t, nil
}

func (a *fakeAllocator) Upload(Texture, PlaneData) error {
	if a.failNext {
		a.failNext = false
		return errors.New("device lost")
	}
	a.uploads++
	return nil
}

func lumaPlane(w, h int) PlaneData {
	return PlaneData{Format: gputypes.TextureFormatR8Unorm, Width: w, Height: h, Stride: w, Data: make([]byte, w*h)}
}

func TestUploadPlaneReusesMatchingTexture(t *testing.T) {
	alloc := &fakeAllocator{}
	p := New(alloc, nil)

	for range 10 {
		if _, err := p.UploadPlane(0, lumaPlane(64, 32)); err != nil {
			t.Fatalf("UploadPlane() error = %v", err)
		}
	}

	st := p.Stats()
	if st.Allocations != 1 {
		t.Errorf("Allocations = %d, want 1", st.Allocations)
	}
	if st.Reuses != 9 {
		t.Errorf("Reuses = %d, want 9", st.Reuses)
	}
	if st.Uploads != 10 || alloc.uploads != 10 {
		t.Errorf("Uploads = %d (allocator %d), want 10", st.Uploads, alloc.uploads)
	}
}

func TestUploadPlaneReallocatesOnChange(t *testing.T) {
	tests := []struct {
		name string
		next PlaneData
	}{
		{"width", lumaPlane(65, 32)},
		{"height", lumaPlane(64, 33)},
		{"format", PlaneData{Format: gputypes.TextureFormatR16Unorm, Width: 64, Height: 32, Stride: 128, Data: make([]byte, 128*32)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &fakeAllocator{}
			p := New(alloc, nil)
			if _, err := p.UploadPlane(1, lumaPlane(64, 32)); err != nil {
				t.Fatal(err)
			}
			if _, err := p.UploadPlane(1, tt.next); err != nil {
				t.Fatal(err)
			}
			if len(alloc.created) != 2 {
				t.Fatalf("created %d textures, want 2", len(alloc.created))
			}
			if alloc.created[0].destroyed != 1 {
				t.Error("old texture was not destroyed")
			}
			if p.Plane(1) != alloc.created[1] {
				t.Error("Plane(1) is not the new texture")
			}
		})
	}
}

func TestUploadPlaneFailureClearsEntry(t *testing.T) {
	alloc := &fakeAllocator{}
	p := New(alloc, nil)
	if _, err := p.UploadPlane(0, lumaPlane(8, 8)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.UploadPlane(1, lumaPlane(4, 4)); err != nil {
		t.Fatal(err)
	}

	alloc.failNext = true
	if _, err := p.UploadPlane(0, lumaPlane(8, 8)); err == nil {
		t.Fatal("UploadPlane() should fail")
	}
	if p.Plane(0) != nil {
		t.Error("failed plane entry should be cleared")
	}
	if p.Plane(1) == nil {
		t.Error("other planes must survive a failed upload")
	}
	if got := p.Stats().Failures; got != 1 {
		t.Errorf("Failures = %d, want 1", got)
	}

	// The next upload allocates again.
	if _, err := p.UploadPlane(0, lumaPlane(8, 8)); err != nil {
		t.Fatal(err)
	}
	if got := p.Stats().Allocations; got != 3 {
		t.Errorf("Allocations = %d, want 3", got)
	}
}

func TestUploadPlaneErrors(t *testing.T) {
	p := New(&fakeAllocator{}, nil)
	if _, err := p.UploadPlane(-1, lumaPlane(2, 2)); !errors.Is(err, ErrIndex) {
		t.Errorf("index -1: %v", err)
	}
	if _, err := p.UploadPlane(4, lumaPlane(2, 2)); !errors.Is(err, ErrIndex) {
		t.Errorf("index 4: %v", err)
	}
	if _, err := p.UploadPlane(0, lumaPlane(0, 2)); !errors.Is(err, ErrEmptyPlane) {
		t.Errorf("empty plane: %v", err)
	}

	failing := New(&fakeAllocator{failAlloc: true}, nil)
	if _, err := failing.UploadPlane(0, lumaPlane(2, 2)); err == nil {
		t.Error("allocation failure should be reported")
	}
}

func TestOverlayCapacityNeverShrinks(t *testing.T) {
	p := New(&fakeAllocator{}, nil)
	counts := []int{2, 5, 1, 0, 3, 7, 4}
	prev := 0
	for _, n := range counts {
		p.GrowOverlays(n)
		if p.OverlayCap() < prev {
			t.Fatalf("capacity shrank from %d to %d", prev, p.OverlayCap())
		}
		if p.OverlayCap() < n {
			t.Fatalf("capacity %d < requested %d", p.OverlayCap(), n)
		}
		prev = p.OverlayCap()
	}
	if p.OverlayCap() != 7 {
		t.Errorf("OverlayCap() = %d, want 7", p.OverlayCap())
	}
}

func TestPoolLogsThroughSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("session", "s1")
	p := New(&fakeAllocator{}, log)

	p.GrowOverlays(2)
	if _, err := p.UploadPlane(0, lumaPlane(4, 4)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.UploadPlane(0, lumaPlane(8, 8)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logged %d records, want grow and reallocate:\n%s", len(lines), buf.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, "session=s1") {
			t.Errorf("record lacks session attribute: %s", l)
		}
	}
}

func TestGrowOverlaysKeepsTextures(t *testing.T) {
	p := New(&fakeAllocator{}, nil)
	p.GrowOverlays(1)
	tex, err := p.UploadOverlay(0, lumaPlane(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	p.GrowOverlays(3)
	if p.Overlay(0) != tex {
		t.Error("existing overlay texture lost on grow")
	}
	if p.Overlay(2) != nil {
		t.Error("new overlay slot should be empty")
	}
	if _, err := p.UploadOverlay(3, lumaPlane(4, 4)); !errors.Is(err, ErrIndex) {
		t.Errorf("UploadOverlay past capacity = %v, want ErrIndex", err)
	}
}

func TestDestroyAll(t *testing.T) {
	alloc := &fakeAllocator{}
	p := New(alloc, nil)
	_, _ = p.UploadPlane(0, lumaPlane(4, 4))
	_, _ = p.UploadPlane(2, lumaPlane(2, 2))
	p.GrowOverlays(2)
	_, _ = p.UploadOverlay(1, lumaPlane(3, 3))

	p.DestroyAll()
	p.DestroyAll()

	for i, tex := range alloc.created {
		if tex.destroyed != 1 {
			t.Errorf("texture %d destroyed %d times, want 1", i, tex.destroyed)
		}
	}
	if _, err := p.UploadPlane(0, lumaPlane(4, 4)); !errors.Is(err, ErrPoolDestroyed) {
		t.Errorf("UploadPlane after DestroyAll = %v", err)
	}
	if _, err := p.UploadOverlay(0, lumaPlane(4, 4)); !errors.Is(err, ErrPoolDestroyed) {
		t.Errorf("UploadOverlay after DestroyAll = %v", err)
	}
}

func TestOverlayData(t *testing.T) {
	t.Run("rgba passthrough", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 5, 3))
		d := OverlayData(img)
		if d.Width != 5 || d.Height != 3 || d.Stride != 20 {
			t.Errorf("got %dx%d stride %d", d.Width, d.Height, d.Stride)
		}
		if &d.Data[0] != &img.Pix[0] {
			t.Error("RGBA image should not be copied")
		}
	})

	t.Run("offset paletted", func(t *testing.T) {
		pal := color.Palette{color.Transparent, color.RGBA{R: 255, A: 255}}
		img := image.NewPaletted(image.Rect(10, 10, 14, 12), pal)
		img.SetColorIndex(10, 10, 1)
		d := OverlayData(img)
		if d.Width != 4 || d.Height != 2 {
			t.Fatalf("got %dx%d, want 4x2", d.Width, d.Height)
		}
		if d.Format != gputypes.TextureFormatRGBA8Unorm {
			t.Errorf("Format = %v", d.Format)
		}
		if d.Data[0] != 255 || d.Data[3] != 255 {
			t.Errorf("first pixel = %v, want opaque red", d.Data[:4])
		}
		if d.Data[4+3] != 0 {
			t.Error("second pixel should be transparent")
		}
	})
}
