package pipeline

import (
	"math"
	"strings"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/asset"
)

// Deband holds active debanding parameters.
type Deband struct {
	Iterations int
	Threshold  float64
	Radius     float64
	Grain      float64
}

// Sigmoid holds active sigmoidization parameters.
type Sigmoid struct {
	Center float64
	Slope  float64
}

// Dither holds active dithering parameters.
type Dither struct {
	Method   string
	LUTSize  int
	Temporal bool
}

// PeakDetect holds active peak detection parameters.
type PeakDetect struct {
	Period       float64
	SceneLow     float64
	SceneHigh    float64
	AllowDelayed bool
}

// ToneMap holds the tone and gamut mapping selection.
type ToneMap struct {
	Function     string
	Param        float64
	GamutMapping string
}

// BitDepth describes how color values are stored in a sample.
type BitDepth struct {
	// Sample is the number of bits a sample occupies.
	Sample int

	// Color is the number of significant bits.
	Color int
}

// Params is the resolved, read-only parameter set handed to every render
// call. A nil pointer field means the feature is disabled, or for the
// scalers that the backend default is used.
type Params struct {
	OutputMode vo.OutputMode
	Upscaler   *Scaler
	Downscaler *Scaler
	Deband     *Deband
	Sigmoid    *Sigmoid
	Dither     *Dither
	PeakDetect *PeakDetect
	ToneMap    ToneMap

	// TargetPrimaries and TargetTransfer are user overrides; the Unknown
	// value means no override.
	TargetPrimaries vo.Primaries
	TargetTransfer  vo.Transfer

	// DitherDepth is the forced output depth, 0 for none.
	DitherDepth int

	HDRBounds vo.SanityBounds

	LUT     *asset.LUT
	LUTType LUTType
	Shader  *asset.Shader
}

// Build resolves opts into Params. The custom LUT and shader are fetched
// through loader, which may be nil to disable both. Build never fails:
// settings that cannot be honored fall back to defaults with a warning.
func Build(opts Options, loader *asset.Loader) *Params {
	p := &Params{
		OutputMode:      opts.OutputMode,
		Upscaler:        resolveScaler("upscaler", opts.Upscaler),
		Downscaler:      resolveScaler("downscaler", opts.Downscaler),
		TargetPrimaries: opts.Target.Primaries,
		TargetTransfer:  opts.Target.Transfer,
		HDRBounds:       opts.HDRBounds,
		LUTType:         opts.LUTType,
		ToneMap: ToneMap{
			Function:     opts.ToneMap.Function,
			Param:        opts.ToneMap.Param,
			GamutMapping: opts.ToneMap.GamutMapping,
		},
	}
	if p.HDRBounds == (vo.SanityBounds{}) {
		p.HDRBounds = vo.DefaultSanityBounds
	}

	if d := opts.Deband; d.Enable && (d.Iterations > 0 || d.Grain > 0) {
		p.Deband = &Deband{Iterations: d.Iterations, Threshold: d.Threshold, Radius: d.Radius, Grain: d.Grain}
	}
	if s := opts.Sigmoid; s.Enable && s.Slope > 0 {
		p.Sigmoid = &Sigmoid{Center: s.Center, Slope: s.Slope}
	}
	if d := opts.Dither; d.Method != "" && d.Method != "none" && d.Depth >= 0 {
		p.Dither = &Dither{Method: d.Method, LUTSize: d.LUTSize, Temporal: d.Temporal}
		p.DitherDepth = d.Depth
	}
	if pk := opts.Peak; pk.Period > 0 {
		p.PeakDetect = &PeakDetect{
			Period:       pk.Period,
			SceneLow:     pk.SceneLow,
			SceneHigh:    pk.SceneHigh,
			AllowDelayed: pk.AllowDelayed,
		}
	}

	if loader != nil {
		p.LUT = loader.LUT(opts.LUT)
		p.Shader = loader.Shader(opts.Shader)
	}

	vo.Logger().Debug("pipeline: built",
		"upscaler", scalerName(p.Upscaler),
		"downscaler", scalerName(p.Downscaler),
		"deband", p.Deband != nil,
		"sigmoid", p.Sigmoid != nil,
		"dither", p.Dither != nil,
		"peak_detect", p.PeakDetect != nil,
		"lut", p.LUTActive(),
		"shader_passes", p.ShaderCount())
	return p
}

// resolveScaler maps scaler options to a filter. An empty preset, an
// unknown preset or a custom preset without a kernel yield nil.
func resolveScaler(which string, o ScalerOptions) *Scaler {
	preset := strings.ToLower(strings.TrimSpace(o.Preset))
	if preset == "" {
		return nil
	}
	if preset != PresetCustom {
		s, ok := LookupPreset(preset)
		if !ok {
			vo.Logger().Warn("pipeline: unknown scaler preset, using backend default", "scaler", which, "preset", o.Preset)
			return nil
		}
		return &s
	}

	k := ParseKernel(o.Kernel)
	if k == KernelNone {
		vo.Logger().Warn("pipeline: custom scaler has no kernel, using backend default", "scaler", which, "kernel", o.Kernel)
		return nil
	}
	return &Scaler{
		Name:   PresetCustom,
		Kernel: k,
		Window: ParseWindow(o.Window),
		Clamp:  o.Clamp,
		Blur:   o.Blur,
		Taper:  o.Taper,
		Polar:  o.Polar,
	}
}

func scalerName(s *Scaler) string {
	if s == nil {
		return "default"
	}
	return s.Name
}

// LUTActive reports whether a custom LUT is in use.
func (p *Params) LUTActive() bool { return p.LUT != nil }

// ShaderCount returns the number of custom shader passes in use.
func (p *Params) ShaderCount() int {
	if p.Shader == nil {
		return 0
	}
	return len(p.Shader.Passes)
}

// ApplyDitherDepth applies the dither depth override to bits. The color
// depth is scaled by the same ratio as the sample depth.
func (p *Params) ApplyDitherDepth(bits BitDepth) BitDepth {
	if p.DitherDepth <= 0 {
		return bits
	}
	if bits.Sample > 0 {
		bits.Color = int(math.Round(float64(bits.Color) * float64(p.DitherDepth) / float64(bits.Sample)))
	} else {
		bits.Color = p.DitherDepth
	}
	bits.Sample = p.DitherDepth
	return bits
}

// ApplyTarget applies the user target overrides to c.
func (p *Params) ApplyTarget(c vo.ColorInfo) vo.ColorInfo {
	if p.TargetPrimaries != vo.PrimariesUnknown {
		c.Primaries = p.TargetPrimaries
	}
	if p.TargetTransfer != vo.TransferUnknown {
		c.Transfer = p.TargetTransfer
	}
	return c
}
