package pipeline

import (
	"errors"
	"testing"

	"github.com/gogpu/vo"
)

func TestDefaultOptionsValid(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"unknown preset", func(o *Options) { o.Upscaler.Preset = "magic" }},
		{"unknown window", func(o *Options) { o.Downscaler.Window = "curtain" }},
		{"clamp", func(o *Options) { o.Upscaler.Clamp = 2 }},
		{"deband iterations", func(o *Options) { o.Deband.Iterations = 17 }},
		{"deband radius", func(o *Options) { o.Deband.Radius = 0 }},
		{"deband threshold", func(o *Options) { o.Deband.Threshold = -1 }},
		{"sigmoid center", func(o *Options) { o.Sigmoid.Center = 1.5 }},
		{"sigmoid slope", func(o *Options) { o.Sigmoid.Slope = 0.5 }},
		{"dither method", func(o *Options) { o.Dither.Method = "noise" }},
		{"dither lut size", func(o *Options) { o.Dither.LUTSize = 9 }},
		{"dither depth", func(o *Options) { o.Dither.Depth = 17 }},
		{"peak period", func(o *Options) { o.Peak.Period = 1001 }},
		{"scene order", func(o *Options) { o.Peak.SceneLow, o.Peak.SceneHigh = 12, 10 }},
		{"tone mapping", func(o *Options) { o.ToneMap.Function = "aces" }},
		{"gamut mapping", func(o *Options) { o.ToneMap.GamutMapping = "stretch" }},
		{"hdr bounds", func(o *Options) { o.HDRBounds.PeakMax = 0.5 }},
		{"lut type", func(o *Options) { o.LUTType = "sideways" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			if err := o.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Validate() = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestValidateAcceptsEdges(t *testing.T) {
	o := DefaultOptions()
	o.Upscaler = ScalerOptions{Preset: "custom", Kernel: "anything"}
	o.Downscaler = ScalerOptions{}
	o.Dither.Depth = -1
	o.Peak = PeakOptions{SceneLow: 0, SceneHigh: 3}
	o.Target = TargetOptions{Primaries: vo.PrimariesBT2020, Transfer: vo.TransferPQ}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
