// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vo

import (
	"fmt"
	"strings"
)

// Primaries identifies the RGB primaries (gamut) of an image.
type Primaries uint8

// Supported primaries. The zero value means untagged.
const (
	PrimariesUnknown Primaries = iota
	PrimariesBT601_525
	PrimariesBT601_625
	PrimariesBT709
	PrimariesBT470M
	PrimariesBT2020
	PrimariesDCIP3
	PrimariesDisplayP3
	PrimariesAdobeRGB
	PrimariesProPhoto
)

var primariesNames = []string{
	PrimariesUnknown:   "auto",
	PrimariesBT601_525: "bt.601-525",
	PrimariesBT601_625: "bt.601-625",
	PrimariesBT709:     "bt.709",
	PrimariesBT470M:    "bt.470m",
	PrimariesBT2020:    "bt.2020",
	PrimariesDCIP3:     "dci-p3",
	PrimariesDisplayP3: "display-p3",
	PrimariesAdobeRGB:  "adobe",
	PrimariesProPhoto:  "prophoto",
}

// IsWide reports whether the gamut is wider than BT.709.
func (p Primaries) IsWide() bool {
	switch p {
	case PrimariesBT2020, PrimariesDCIP3, PrimariesDisplayP3, PrimariesAdobeRGB, PrimariesProPhoto:
		return true
	}
	return false
}

func (p Primaries) String() string { return enumName(primariesNames, p) }

// MarshalText implements encoding.TextMarshaler.
func (p Primaries) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Primaries) UnmarshalText(b []byte) error {
	return parseEnum(primariesNames, "primaries", b, p)
}

// Transfer identifies the transfer function (gamma curve) of an image.
type Transfer uint8

// Supported transfer functions. The zero value means untagged.
const (
	TransferUnknown Transfer = iota
	TransferBT1886
	TransferSRGB
	TransferLinear
	TransferGamma22
	TransferGamma28
	TransferProPhoto
	TransferPQ
	TransferHLG
)

var transferNames = []string{
	TransferUnknown:  "auto",
	TransferBT1886:   "bt.1886",
	TransferSRGB:     "srgb",
	TransferLinear:   "linear",
	TransferGamma22:  "gamma2.2",
	TransferGamma28:  "gamma2.8",
	TransferProPhoto: "prophoto",
	TransferPQ:       "pq",
	TransferHLG:      "hlg",
}

// IsHDR reports whether the transfer function encodes high dynamic range.
func (t Transfer) IsHDR() bool {
	return t == TransferPQ || t == TransferHLG
}

func (t Transfer) String() string { return enumName(transferNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t Transfer) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transfer) UnmarshalText(b []byte) error {
	return parseEnum(transferNames, "transfer", b, t)
}

// Matrix identifies the YCbCr to RGB conversion matrix.
type Matrix uint8

// Supported matrices. The zero value means untagged.
const (
	MatrixUnknown Matrix = iota
	MatrixBT601
	MatrixBT709
	MatrixSMPTE240M
	MatrixBT2020NC
	MatrixBT2020C
	MatrixICtCp
	MatrixYCgCo
	MatrixRGB
)

var matrixNames = []string{
	MatrixUnknown:   "auto",
	MatrixBT601:     "bt.601",
	MatrixBT709:     "bt.709",
	MatrixSMPTE240M: "smpte-240m",
	MatrixBT2020NC:  "bt.2020-ncl",
	MatrixBT2020C:   "bt.2020-cl",
	MatrixICtCp:     "bt.2100-ictcp",
	MatrixYCgCo:     "ycgco",
	MatrixRGB:       "rgb",
}

func (m Matrix) String() string { return enumName(matrixNames, m) }

// Coefficients returns the luma coefficients (Kr, Kb) of the matrix.
// ok is false for matrices that are not plain Kr/Kb matrices.
func (m Matrix) Coefficients() (kr, kb float64, ok bool) {
	switch m {
	case MatrixBT601:
		return 0.299, 0.114, true
	case MatrixBT709:
		return 0.2126, 0.0722, true
	case MatrixSMPTE240M:
		return 0.2122, 0.0865, true
	case MatrixBT2020NC, MatrixBT2020C:
		return 0.2627, 0.0593, true
	}
	return 0, 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Matrix) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Matrix) UnmarshalText(b []byte) error {
	return parseEnum(matrixNames, "matrix", b, m)
}

// Range is the quantization range of the encoded samples.
type Range uint8

// Supported ranges. The zero value means untagged.
const (
	RangeUnknown Range = iota
	RangeLimited
	RangeFull
)

var rangeNames = []string{
	RangeUnknown: "auto",
	RangeLimited: "limited",
	RangeFull:    "full",
}

func (r Range) String() string { return enumName(rangeNames, r) }

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(b []byte) error {
	return parseEnum(rangeNames, "range", b, r)
}

// ChromaLocation is the position of subsampled chroma samples
// relative to the luma grid.
type ChromaLocation uint8

// Supported chroma locations. The zero value means untagged.
const (
	ChromaUnknown ChromaLocation = iota
	ChromaLeft
	ChromaCenter
	ChromaTopLeft
	ChromaTop
	ChromaBottomLeft
	ChromaBottom
)

var chromaNames = []string{
	ChromaUnknown:    "auto",
	ChromaLeft:       "left",
	ChromaCenter:     "center",
	ChromaTopLeft:    "top-left",
	ChromaTop:        "top",
	ChromaBottomLeft: "bottom-left",
	ChromaBottom:     "bottom",
}

func (c ChromaLocation) String() string { return enumName(chromaNames, c) }

// Offset returns the chroma sample position relative to the center of
// the covered luma block, in units of one chroma sample. Untagged content
// is treated as left-sited, the MPEG-2 and H.264 default.
func (c ChromaLocation) Offset() (x, y float64) {
	switch c {
	case ChromaCenter:
		return 0, 0
	case ChromaTopLeft:
		return -0.5, -0.5
	case ChromaTop:
		return 0, -0.5
	case ChromaBottomLeft:
		return -0.5, 0.5
	case ChromaBottom:
		return 0, 0.5
	default:
		return -0.5, 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ChromaLocation) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ChromaLocation) UnmarshalText(b []byte) error {
	return parseEnum(chromaNames, "chroma location", b, c)
}

// OutputMode selects the color space the swapchain is configured for.
type OutputMode uint8

// Output modes.
const (
	OutputAuto OutputMode = iota
	OutputSDR
	OutputHDR10
	OutputHLG
)

var outputModeNames = []string{
	OutputAuto:  "auto",
	OutputSDR:   "sdr",
	OutputHDR10: "hdr10",
	OutputHLG:   "hlg",
}

func (m OutputMode) String() string { return enumName(outputModeNames, m) }

// MarshalText implements encoding.TextMarshaler.
func (m OutputMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *OutputMode) UnmarshalText(b []byte) error {
	return parseEnum(outputModeNames, "output mode", b, m)
}

// enumName returns the table name of v, or a numeric placeholder.
func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

// parseEnum looks up text (case-insensitive) in names and stores its index
// in dst. An empty string selects the zero value.
func parseEnum[T ~uint8](names []string, what string, text []byte, dst *T) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" || s == "unknown" {
		*dst = 0
		return nil
	}
	for i, n := range names {
		if n == s {
			*dst = T(i)
			return nil
		}
	}
	return fmt.Errorf("vo: unknown %s %q", what, s)
}
