package render

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/pipeline"
)

func testLUT() *asset.LUT {
	return &asset.LUT{Kind: asset.LUT1D, Size: 2, DomainMax: [3]float32{1, 1, 1}, Data: []float32{0, 0, 0, 1, 1, 1}}
}

func TestLetterbox(t *testing.T) {
	screen := image.Rect(0, 0, 1920, 1080)
	tests := []struct {
		name string
		w, h float64
		want image.Rectangle
	}{
		{"same aspect", 1280, 720, image.Rect(0, 0, 1920, 1080)},
		{"4:3 pillarbox", 640, 480, image.Rect(240, 0, 1680, 1080)},
		{"scope letterbox", 2048, 858, image.Rect(0, 138, 1920, 942)},
		{"portrait", 1080, 1920, image.Rect(656, 0, 1264, 1080)},
		{"degenerate", 0, 10, screen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Letterbox(tt.w, tt.h, screen); got != tt.want {
				t.Errorf("Letterbox(%g, %g) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestBuildTargetRotatedDst(t *testing.T) {
	p := pipeline.Build(pipeline.DefaultOptions(), nil)
	src := &Source{Crop: Rect{0, 0, 1920, 1080}, Rotation: 90}
	tgt := buildTarget(&fakeFrame{w: 1920, h: 1080}, src, nil, &iccCache{}, p, false)
	if tgt.Dst != image.Rect(656, 0, 1264, 1080) {
		t.Errorf("Dst = %v, rotated picture must be letterboxed as portrait", tgt.Dst)
	}
	if w, h := src.OrientedSize(); w != 1080 || h != 1920 {
		t.Errorf("OrientedSize() = %gx%g", w, h)
	}
}

func TestBuildTargetWithoutSource(t *testing.T) {
	p := pipeline.Build(pipeline.DefaultOptions(), nil)
	tgt := buildTarget(&fakeFrame{w: 100, h: 50}, nil, nil, &iccCache{}, p, true)
	if tgt.Dst != image.Rect(0, 0, 100, 50) || !tgt.Flipped {
		t.Errorf("target = %+v", tgt)
	}
}

func TestBitsFor(t *testing.T) {
	tests := []struct {
		f    gputypes.TextureFormat
		want pipeline.BitDepth
	}{
		{gputypes.TextureFormatBGRA8Unorm, pipeline.BitDepth{Sample: 8, Color: 8}},
		{gputypes.TextureFormatRGB10A2Unorm, pipeline.BitDepth{Sample: 10, Color: 10}},
		{gputypes.TextureFormatRGBA16Float, pipeline.BitDepth{Sample: 16, Color: 16}},
	}
	for _, tt := range tests {
		if got := BitsFor(tt.f); got != tt.want {
			t.Errorf("BitsFor(%v) = %+v, want %+v", tt.f, got, tt.want)
		}
	}
}

func TestICCSignatureCached(t *testing.T) {
	var c iccCache
	if c.signature(nil) != 0 {
		t.Error("empty profile must have signature 0")
	}

	profile := []byte("fake icc profile data")
	s1 := c.signature(profile)
	for range 10 {
		if c.signature(profile) != s1 {
			t.Fatal("signature changed for the same buffer")
		}
	}
	if c.hashes != 1 {
		t.Errorf("hashed %d times, want 1", c.hashes)
	}

	other := append([]byte(nil), profile...)
	if c.signature(other) != s1 {
		t.Error("equal content must hash equally")
	}
	if c.hashes != 2 {
		t.Errorf("hashed %d times, want 2", c.hashes)
	}

	other[0] = 'F'
	other = append([]byte(nil), other...)
	if c.signature(other) == s1 {
		t.Error("different content must change the signature")
	}
}

func TestRendererTargetICC(t *testing.T) {
	h := newHarness(t, pipeline.DefaultOptions())
	icc := []byte("display profile")
	h.r.SetTargetICC(icc)
	for range 3 {
		h.r.DrawFrame(newTestFrame(4, 4), nil)
	}
	if h.r.icc.hashes != 1 {
		t.Errorf("hashed %d times over 3 frames, want 1", h.r.icc.hashes)
	}
	if h.painter.lastTarget.ICCSignature == 0 {
		t.Error("target has no ICC signature")
	}
}

func TestFlipRect(t *testing.T) {
	got := flipRect(image.Rect(0, 0, 10, 10), 100)
	if got != image.Rect(0, 90, 10, 100) {
		t.Errorf("flipRect() = %v", got)
	}
}
