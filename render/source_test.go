package render

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/pool"
)

func TestInferColor(t *testing.T) {
	tests := []struct {
		name   string
		format vo.PixelFormat
		w, h   int
		in     vo.ColorInfo
		want   vo.ColorInfo
	}{
		{
			name: "hd yuv", format: vo.PixelFormatNV12, w: 1920, h: 1080,
			want: vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferBT1886, Matrix: vo.MatrixBT709, Range: vo.RangeLimited},
		},
		{
			name: "pal", format: vo.PixelFormatYUV420P, w: 720, h: 576,
			want: vo.ColorInfo{Primaries: vo.PrimariesBT601_625, Transfer: vo.TransferBT1886, Matrix: vo.MatrixBT601, Range: vo.RangeLimited},
		},
		{
			name: "ntsc", format: vo.PixelFormatYUV420P, w: 720, h: 480,
			want: vo.ColorInfo{Primaries: vo.PrimariesBT601_525, Transfer: vo.TransferBT1886, Matrix: vo.MatrixBT601, Range: vo.RangeLimited},
		},
		{
			name: "rgb", format: vo.PixelFormatRGBA, w: 640, h: 480,
			want: vo.ColorInfo{Primaries: vo.PrimariesBT601_525, Transfer: vo.TransferSRGB, Matrix: vo.MatrixRGB, Range: vo.RangeFull},
		},
		{
			name: "bt2020 primaries pick matrix", format: vo.PixelFormatP010, w: 3840, h: 2160,
			in:   vo.ColorInfo{Primaries: vo.PrimariesBT2020, Transfer: vo.TransferPQ},
			want: vo.ColorInfo{Primaries: vo.PrimariesBT2020, Transfer: vo.TransferPQ, Matrix: vo.MatrixBT2020NC, Range: vo.RangeLimited},
		},
		{
			name: "tagged kept", format: vo.PixelFormatNV12, w: 720, h: 576,
			in:   vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferSRGB, Matrix: vo.MatrixBT709, Range: vo.RangeFull},
			want: vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferSRGB, Matrix: vo.MatrixBT709, Range: vo.RangeFull},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &vo.Frame{Format: tt.format, Width: tt.w, Height: tt.h, Color: tt.in}
			if got := InferColor(f); got != tt.want {
				t.Errorf("InferColor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSourceHDRSanity(t *testing.T) {
	b := vo.DefaultSanityBounds
	tests := []struct {
		name   string
		maxCLL float64
		dyn    *vo.DynamicHDR
		peak   float64
		scene  float64
		avg    float64
		hasAvg bool
	}{
		{name: "untagged"},
		{name: "1000 nits", maxCLL: 1000, peak: 1000 / vo.SDRWhite},
		{name: "exactly sdr white", maxCLL: vo.SDRWhite, peak: 0},
		{name: "absurd", maxCLL: 101 * vo.SDRWhite, peak: 0},
		{name: "upper bound", maxCLL: 100 * vo.SDRWhite, peak: 100},
		{name: "dynamic ok", dyn: &vo.DynamicHDR{ScenePeak: 4, SceneAvg: 0.25}, scene: 4, avg: 0.25, hasAvg: true},
		{name: "dynamic bogus", dyn: &vo.DynamicHDR{ScenePeak: 0.5, SceneAvg: 1.5}},
		{name: "dynamic nan", dyn: &vo.DynamicHDR{ScenePeak: math.NaN(), SceneAvg: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &vo.Frame{Color: vo.ColorInfo{HDR: vo.HDRMetadata{MaxCLL: tt.maxCLL}}, DynamicHDR: tt.dyn}
			got := sourceHDR(f, b)
			if math.Abs(got.Peak-tt.peak) > 1e-9 {
				t.Errorf("Peak = %g, want %g", got.Peak, tt.peak)
			}
			if got.ScenePeak != tt.scene || got.SceneAvg != tt.avg || got.HasAvg != tt.hasAvg {
				t.Errorf("scene = %g/%g/%v, want %g/%g/%v", got.ScenePeak, got.SceneAvg, got.HasAvg, tt.scene, tt.avg, tt.hasAvg)
			}
		})
	}
}

func TestOrient(t *testing.T) {
	crop := image.Rect(0, 0, 160, 90)
	tests := []struct {
		name string
		o    vo.Orientation
		rect Rect
		rot  int
	}{
		{"identity", vo.Orientation{}, Rect{0, 0, 160, 90}, 0},
		{"rotate 90", vo.Orientation{Rotate: 90}, Rect{0, 0, 160, 90}, 90},
		{"flip h", vo.Orientation{FlipH: true}, Rect{160, 0, 0, 90}, 0},
		{"flip v", vo.Orientation{FlipV: true}, Rect{160, 0, 0, 90}, 180},
		{"transpose", vo.Orientation{Transpose: true}, Rect{160, 0, 0, 90}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rot := orient(crop, tt.o)
			if r != tt.rect || rot != tt.rot {
				t.Errorf("orient() = %v, %d; want %v, %d", r, rot, tt.rect, tt.rot)
			}
		})
	}
}

func TestBuildSourceChromaShiftOnlyOnChroma(t *testing.T) {
	p := pool.New(&fakeAllocator{}, nil)
	params := pipeline.Build(pipeline.DefaultOptions(), nil)

	f := newTestFrame(16, 16)
	f.Format = vo.PixelFormatYUVA420P
	f.Planes = append(f.Planes, vo.Plane{Data: make([]byte, 256), Stride: 16, Width: 16, Height: 16})
	f.Color.Chroma = vo.ChromaTopLeft

	src, err := buildSource(f, p, params)
	if err != nil {
		t.Fatalf("buildSource() error = %v", err)
	}
	for i, pl := range src.Planes {
		chroma := i == 1 || i == 2
		shifted := pl.ShiftX != 0 || pl.ShiftY != 0
		if chroma != shifted {
			t.Errorf("plane %d shift = (%g, %g), chroma = %v", i, pl.ShiftX, pl.ShiftY, chroma)
		}
		if pl.Texture == nil {
			t.Errorf("plane %d has no texture", i)
		}
	}
	if src.Planes[1].ShiftX != -0.5 || src.Planes[1].ShiftY != -0.5 {
		t.Errorf("chroma shift = (%g, %g), want (-0.5, -0.5)", src.Planes[1].ShiftX, src.Planes[1].ShiftY)
	}
	if !src.Repr.Alpha {
		t.Error("yuva420p must report alpha")
	}
}

func TestBuildSourceNoShiftFor444(t *testing.T) {
	p := pool.New(&fakeAllocator{}, nil)
	params := pipeline.Build(pipeline.DefaultOptions(), nil)

	f := &vo.Frame{Format: vo.PixelFormatYUV444P, Width: 4, Height: 4}
	for range 3 {
		f.Planes = append(f.Planes, vo.Plane{Data: make([]byte, 16), Stride: 4, Width: 4, Height: 4})
	}
	src, err := buildSource(f, p, params)
	if err != nil {
		t.Fatal(err)
	}
	for i, pl := range src.Planes {
		if pl.ShiftX != 0 || pl.ShiftY != 0 {
			t.Errorf("plane %d of a 4:4:4 frame shifted", i)
		}
	}
}

func TestBuildSourceLUTPlacement(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.LUTType = pipeline.LUTNative
	p := pipeline.Build(opts, nil)
	p.LUT = testLUT()
	src, err := buildSource(newTestFrame(4, 4), pool.New(&fakeAllocator{}, nil), p)
	if err != nil {
		t.Fatal(err)
	}
	if src.LUT == nil {
		t.Error("native LUT must be attached to the source")
	}
	tgt := buildTarget(&fakeFrame{w: 4, h: 4}, src, nil, &iccCache{}, p, false)
	if tgt.LUT != nil {
		t.Error("native LUT must not be attached to the target")
	}

	p.LUTType = pipeline.LUTAuto
	src, _ = buildSource(newTestFrame(4, 4), pool.New(&fakeAllocator{}, nil), p)
	tgt = buildTarget(&fakeFrame{w: 4, h: 4}, src, nil, &iccCache{}, p, false)
	if src.LUT != nil || tgt.LUT == nil {
		t.Error("auto LUT must be attached to the target only")
	}
}
