package vo

import "math"

// SDRWhite is the reference white in cd/m² that signal-relative
// brightness values are expressed against (BT.2408).
const SDRWhite = 203.0

// Chromaticities holds CIE 1931 xy coordinates of a display's primaries
// and white point.
type Chromaticities struct {
	Red, Green, Blue, White [2]float64
}

// HDRMetadata is static HDR metadata (SMPTE ST 2086 mastering display
// plus CTA-861.3 content light levels). Luminances are in cd/m²;
// zero means not present.
type HDRMetadata struct {
	MinLuma   float64
	MaxLuma   float64
	MaxCLL    float64
	MaxFALL   float64
	Mastering *Chromaticities
}

// IsZero reports whether no HDR metadata is present.
func (h HDRMetadata) IsZero() bool {
	return h.MinLuma == 0 && h.MaxLuma == 0 && h.MaxCLL == 0 && h.MaxFALL == 0 && h.Mastering == nil
}

// SignalPeak returns the content peak relative to SDRWhite, taken from
// MaxCLL and falling back to the mastering display peak. Returns 0 when
// neither is known.
func (h HDRMetadata) SignalPeak() float64 {
	switch {
	case h.MaxCLL > 0:
		return h.MaxCLL / SDRWhite
	case h.MaxLuma > 0:
		return h.MaxLuma / SDRWhite
	}
	return 0
}

// DynamicHDR is per-scene HDR metadata attached to a frame as side data.
// ScenePeak is relative to SDRWhite, SceneAvg relative to the peak.
// Payload carries the raw side data (e.g. an HDR10+ SEI) when known.
type DynamicHDR struct {
	ScenePeak float64
	SceneAvg  float64
	Payload   []byte
}

// ColorInfo is the full colorimetry tag of an image.
type ColorInfo struct {
	Primaries Primaries
	Transfer  Transfer
	Matrix    Matrix
	Range     Range
	Chroma    ChromaLocation
	HDR       HDRMetadata
}

// IsHDR reports whether the tagged transfer is an HDR curve.
func (c ColorInfo) IsHDR() bool { return c.Transfer.IsHDR() }

// SanityBounds are the ranges outside of which signal-relative peak and
// average values are considered bogus tagging and ignored.
// The peak range is exclusive at the bottom and inclusive at the top.
type SanityBounds struct {
	PeakMin float64 `mapstructure:"peak_min" yaml:"peak_min" json:"peak_min"`
	PeakMax float64 `mapstructure:"peak_max" yaml:"peak_max" json:"peak_max"`
	AvgMin  float64 `mapstructure:"avg_min" yaml:"avg_min" json:"avg_min"`
	AvgMax  float64 `mapstructure:"avg_max" yaml:"avg_max" json:"avg_max"`
}

// DefaultSanityBounds accepts peaks in (1, 100] and averages in [0, 1].
var DefaultSanityBounds = SanityBounds{
	PeakMin: 1.0,
	PeakMax: 100.0,
	AvgMin:  0.0,
	AvgMax:  1.0,
}

// Peak returns v if it lies in (PeakMin, PeakMax], otherwise 0 (absent).
func (b SanityBounds) Peak(v float64) float64 {
	if math.IsNaN(v) || v <= b.PeakMin || v > b.PeakMax {
		return 0
	}
	return v
}

// Avg returns v and true if it lies in [AvgMin, AvgMax]; otherwise the
// average is treated as absent.
func (b SanityBounds) Avg(v float64) (float64, bool) {
	if math.IsNaN(v) || v < b.AvgMin || v > b.AvgMax {
		return 0, false
	}
	return v, true
}
