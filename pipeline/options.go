package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/vo"
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("pipeline: invalid options")

// ScalerOptions selects a scaling filter, either by preset name or,
// with Preset set to "custom", from the individual fields.
type ScalerOptions struct {
	Preset string  `mapstructure:"preset" yaml:"preset" json:"preset"`
	Kernel string  `mapstructure:"kernel" yaml:"kernel,omitempty" json:"kernel,omitempty"`
	Window string  `mapstructure:"window" yaml:"window,omitempty" json:"window,omitempty"`
	Clamp  float64 `mapstructure:"clamp" yaml:"clamp,omitempty" json:"clamp,omitempty"`
	Blur   float64 `mapstructure:"blur" yaml:"blur,omitempty" json:"blur,omitempty"`
	Taper  float64 `mapstructure:"taper" yaml:"taper,omitempty" json:"taper,omitempty"`
	Polar  bool    `mapstructure:"polar" yaml:"polar,omitempty" json:"polar,omitempty"`
}

// DebandOptions configures the debanding filter.
type DebandOptions struct {
	Enable     bool    `mapstructure:"enable" yaml:"enable" json:"enable"`
	Iterations int     `mapstructure:"iterations" yaml:"iterations" json:"iterations"`
	Threshold  float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	Radius     float64 `mapstructure:"radius" yaml:"radius" json:"radius"`
	Grain      float64 `mapstructure:"grain" yaml:"grain" json:"grain"`
}

// SigmoidOptions configures sigmoidized upscaling.
type SigmoidOptions struct {
	Enable bool    `mapstructure:"enable" yaml:"enable" json:"enable"`
	Center float64 `mapstructure:"center" yaml:"center" json:"center"`
	Slope  float64 `mapstructure:"slope" yaml:"slope" json:"slope"`
}

// DitherOptions configures output dithering.
type DitherOptions struct {
	// Method is one of "none", "blue", "ordered" or "white".
	Method   string `mapstructure:"method" yaml:"method" json:"method"`
	LUTSize  int    `mapstructure:"lut_size" yaml:"lut_size" json:"lut_size"`
	Temporal bool   `mapstructure:"temporal" yaml:"temporal" json:"temporal"`

	// Depth overrides the target bit depth: -1 disables dithering,
	// 0 uses the swapchain depth.
	Depth int `mapstructure:"depth" yaml:"depth" json:"depth"`
}

// PeakOptions configures HDR peak detection.
type PeakOptions struct {
	// Period is the smoothing period in frames; 0 disables detection.
	Period       float64 `mapstructure:"period" yaml:"period" json:"period"`
	SceneLow     float64 `mapstructure:"scene_low" yaml:"scene_low" json:"scene_low"`
	SceneHigh    float64 `mapstructure:"scene_high" yaml:"scene_high" json:"scene_high"`
	AllowDelayed bool    `mapstructure:"allow_delayed" yaml:"allow_delayed" json:"allow_delayed"`
}

// ToneMapOptions selects tone and gamut mapping.
type ToneMapOptions struct {
	Function     string  `mapstructure:"function" yaml:"function" json:"function"`
	Param        float64 `mapstructure:"param" yaml:"param,omitempty" json:"param,omitempty"`
	GamutMapping string  `mapstructure:"gamut_mapping" yaml:"gamut_mapping" json:"gamut_mapping"`
}

// TargetOptions overrides the output colorimetry. Unknown values keep
// what the swapchain reports.
type TargetOptions struct {
	Primaries vo.Primaries `mapstructure:"primaries" yaml:"primaries" json:"primaries"`
	Transfer  vo.Transfer  `mapstructure:"transfer" yaml:"transfer" json:"transfer"`
}

// Options is the user-facing color pipeline configuration.
type Options struct {
	OutputMode vo.OutputMode   `mapstructure:"output_mode" yaml:"output_mode" json:"output_mode"`
	Upscaler   ScalerOptions   `mapstructure:"upscaler" yaml:"upscaler" json:"upscaler"`
	Downscaler ScalerOptions   `mapstructure:"downscaler" yaml:"downscaler" json:"downscaler"`
	Deband     DebandOptions   `mapstructure:"deband" yaml:"deband" json:"deband"`
	Sigmoid    SigmoidOptions  `mapstructure:"sigmoid" yaml:"sigmoid" json:"sigmoid"`
	Dither     DitherOptions   `mapstructure:"dither" yaml:"dither" json:"dither"`
	Peak       PeakOptions     `mapstructure:"peak_detect" yaml:"peak_detect" json:"peak_detect"`
	ToneMap    ToneMapOptions  `mapstructure:"tone_mapping" yaml:"tone_mapping" json:"tone_mapping"`
	Target     TargetOptions   `mapstructure:"target" yaml:"target" json:"target"`
	HDRBounds  vo.SanityBounds `mapstructure:"hdr_bounds" yaml:"hdr_bounds" json:"hdr_bounds"`
	LUT        string          `mapstructure:"lut" yaml:"lut" json:"lut"`
	LUTType    LUTType         `mapstructure:"lut_type" yaml:"lut_type" json:"lut_type"`
	Shader     string          `mapstructure:"shader" yaml:"shader" json:"shader"`
}

// LUTType tells where the custom LUT is applied.
type LUTType string

// LUT types. Native and normalized LUTs transform the decoded image;
// conversion LUTs transform the output. Auto treats the LUT as a
// conversion LUT.
const (
	LUTAuto       LUTType = "auto"
	LUTNative     LUTType = "native"
	LUTNormalized LUTType = "normalized"
	LUTConversion LUTType = "conversion"
)

// OnSource reports whether the LUT is applied to the source image.
func (t LUTType) OnSource() bool { return t == LUTNative || t == LUTNormalized }

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		OutputMode: vo.OutputAuto,
		Upscaler:   ScalerOptions{Preset: "lanczos"},
		Downscaler: ScalerOptions{Preset: "hermite"},
		Deband: DebandOptions{
			Iterations: 1,
			Threshold:  48,
			Radius:     16,
			Grain:      32,
		},
		Sigmoid: SigmoidOptions{Enable: true, Center: 0.75, Slope: 6.5},
		Dither:  DitherOptions{Method: "blue", LUTSize: 6},
		Peak: PeakOptions{
			Period:    100,
			SceneLow:  5.5,
			SceneHigh: 10,
		},
		ToneMap:   ToneMapOptions{Function: "auto", GamutMapping: "auto"},
		HDRBounds: vo.DefaultSanityBounds,
		LUTType:   LUTAuto,
	}
}

// Dither methods.
var ditherMethods = []string{"none", "blue", "ordered", "white"}

// Tone mapping functions and gamut mapping modes.
var (
	toneMapFunctions = []string{"auto", "clip", "bt.2390", "bt.2446a", "spline", "reinhard", "mobius", "hable", "gamma", "linear", "st2094-40"}
	gamutMappings    = []string{"auto", "clip", "perceptual", "relative", "saturation", "absolute", "desaturate", "darken"}
)

// Validate checks every option against its allowed range and returns
// all problems joined.
func (o Options) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	inRange := func(name string, v, lo, hi float64) {
		check(v >= lo && v <= hi, "%s = %g, want %g..%g", name, v, lo, hi)
	}

	for _, s := range []struct {
		name string
		opt  ScalerOptions
	}{{"upscaler", o.Upscaler}, {"downscaler", o.Downscaler}} {
		p := strings.ToLower(s.opt.Preset)
		if _, ok := LookupPreset(p); !ok && p != PresetCustom && p != "" {
			errs = append(errs, fmt.Errorf("%s: unknown preset %q", s.name, s.opt.Preset))
		}
		if s.opt.Window != "" && ParseWindow(s.opt.Window) == WindowNone {
			errs = append(errs, fmt.Errorf("%s: unknown window %q", s.name, s.opt.Window))
		}
		inRange(s.name+".clamp", s.opt.Clamp, 0, 1)
		inRange(s.name+".blur", s.opt.Blur, 0, 100)
		inRange(s.name+".taper", s.opt.Taper, 0, 1)
	}

	inRange("deband.iterations", float64(o.Deband.Iterations), 0, 16)
	inRange("deband.threshold", o.Deband.Threshold, 0, 4096)
	inRange("deband.radius", o.Deband.Radius, 1, 64)
	inRange("deband.grain", o.Deband.Grain, 0, 4096)

	inRange("sigmoid.center", o.Sigmoid.Center, 0, 1)
	inRange("sigmoid.slope", o.Sigmoid.Slope, 1, 20)

	check(slices.Contains(ditherMethods, o.Dither.Method), "dither.method: unknown %q", o.Dither.Method)
	inRange("dither.lut_size", float64(o.Dither.LUTSize), 1, 8)
	inRange("dither.depth", float64(o.Dither.Depth), -1, 16)

	inRange("peak_detect.period", o.Peak.Period, 0, 1000)
	inRange("peak_detect.scene_low", o.Peak.SceneLow, 0, 20)
	inRange("peak_detect.scene_high", o.Peak.SceneHigh, 0, 20)
	if o.Peak.SceneLow > 0 && o.Peak.SceneHigh > 0 {
		check(o.Peak.SceneLow <= o.Peak.SceneHigh, "peak_detect: scene_low %g > scene_high %g", o.Peak.SceneLow, o.Peak.SceneHigh)
	}

	check(slices.Contains(toneMapFunctions, o.ToneMap.Function), "tone_mapping.function: unknown %q", o.ToneMap.Function)
	check(slices.Contains(gamutMappings, o.ToneMap.GamutMapping), "tone_mapping.gamut_mapping: unknown %q", o.ToneMap.GamutMapping)

	switch o.LUTType {
	case "", LUTAuto, LUTNative, LUTNormalized, LUTConversion:
	default:
		errs = append(errs, fmt.Errorf("lut_type: unknown %q", o.LUTType))
	}

	b := o.HDRBounds
	check(b.PeakMin < b.PeakMax, "hdr_bounds: peak_min %g >= peak_max %g", b.PeakMin, b.PeakMax)
	check(b.AvgMin <= b.AvgMax, "hdr_bounds: avg_min %g > avg_max %g", b.AvgMin, b.AvgMax)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
}
