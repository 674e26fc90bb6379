package native

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/render"
)

// videoUniformSize is the size of the Params block in video.wgsl.
const videoUniformSize = 16 * 16

// videoUniforms mirrors the Params struct of video.wgsl.
type videoUniforms struct {
	M      [3][4]float32
	Crop   [4]float32
	Rot    [4]float32
	Chroma [4]float32
	Color  [4]float32
	Gamut  [3][4]float32
	FX     [4]float32

	// Deband is iterations, threshold, radius in pixels and grain, with
	// threshold and grain scaled to normalized units.
	Deband [4]float32

	// Sigmoid is center, slope, offset and scale; zero scale disables it.
	Sigmoid [4]float32

	// LUT is side (lutOff, lutSource, lutTarget), kind, size and the
	// row width of a wrapped 1D table.
	LUT    [4]float32
	LUTMin [4]float32
	LUTMax [4]float32
}

func (u *videoUniforms) bytes() []byte {
	vals := make([]float32, 0, videoUniformSize/4)
	for _, r := range u.M {
		vals = append(vals, r[:]...)
	}
	vals = append(vals, u.Crop[:]...)
	vals = append(vals, u.Rot[:]...)
	vals = append(vals, u.Chroma[:]...)
	vals = append(vals, u.Color[:]...)
	for _, r := range u.Gamut {
		vals = append(vals, r[:]...)
	}
	vals = append(vals, u.FX[:]...)
	vals = append(vals, u.Deband[:]...)
	vals = append(vals, u.Sigmoid[:]...)
	vals = append(vals, u.LUT[:]...)
	vals = append(vals, u.LUTMin[:]...)
	vals = append(vals, u.LUTMax[:]...)

	buf := make([]byte, videoUniformSize)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Plane layouts understood by video.wgsl.
const (
	layoutPlanar     = 0
	layoutSemiPlanar = 1
	layoutPacked     = 2
)

// Transfer codes understood by video.wgsl.
const (
	trcSDR = 0
	trcPQ  = 1
	trcHLG = 2
)

// LUT sides understood by video.wgsl.
const (
	lutOff    = 0
	lutSource = 1
	lutTarget = 2
)

// Deband threshold and grain are given in units of these fractions of
// full scale.
const (
	debandThresholdScale = 1.0 / 16384
	debandGrainScale     = 1.0 / 8192
)

// Nominal peaks relative to SDR white.
const (
	pqPeak  = 10000 / vo.SDRWhite
	hlgPeak = 1000 / vo.SDRWhite
)

func planeLayout(f vo.PixelFormat) int {
	switch {
	case !f.IsYUV() && f.HasAlpha():
		return layoutPacked
	case f.PlaneCount() == 2:
		return layoutSemiPlanar
	}
	return layoutPlanar
}

func trcCode(t vo.Transfer) int {
	switch t {
	case vo.TransferPQ:
		return trcPQ
	case vo.TransferHLG:
		return trcHLG
	}
	return trcSDR
}

func nominalPeak(t vo.Transfer) float64 {
	switch t {
	case vo.TransferPQ:
		return pqPeak
	case vo.TransferHLG:
		return hlgPeak
	}
	return 1
}

// ycbcrMatrix returns the rows of the affine YCbCr to RGB conversion,
// with range expansion folded into the coefficients. Gray formats get
// zero chroma coefficients.
func ycbcrMatrix(r render.Repr, f vo.PixelFormat) [3][4]float32 {
	ys, yoff, cs, coff := 1.0, 0.0, 1.0, 0.5
	if r.Range == vo.RangeLimited {
		ys, yoff, cs, coff = 255.0/219.0, 16.0/255.0, 255.0/224.0, 128.0/255.0
	}

	var rows [3][3]float64 // coefficients for Y, Cb', Cr'
	if r.Matrix == vo.MatrixYCgCo {
		rows = [3][3]float64{{1, -1, 1}, {1, 1, 0}, {1, -1, -1}}
	} else {
		kr, kb, ok := r.Matrix.Coefficients()
		if !ok {
			kr, kb, _ = vo.MatrixBT709.Coefficients()
		}
		kg := 1 - kr - kb
		rows = [3][3]float64{
			{1, 0, 2 * (1 - kr)},
			{1, -2 * kb * (1 - kb) / kg, -2 * kr * (1 - kr) / kg},
			{1, 2 * (1 - kb), 0},
		}
	}
	if !f.IsYUV() {
		for i := range rows {
			rows[i][1], rows[i][2] = 0, 0
		}
	}

	var m [3][4]float32
	for i, row := range rows {
		y, cb, cr := row[0]*ys, row[1]*cs, row[2]*cs
		m[i] = [4]float32{float32(y), float32(cb), float32(cr), float32(-y*yoff - cb*coff - cr*coff)}
	}
	return m
}

// rotation returns the map from centered output coordinates to centered
// source coordinates for a clockwise display rotation.
func rotation(deg int) [4]float32 {
	switch deg {
	case 90:
		return [4]float32{0, 1, -1, 0}
	case 180:
		return [4]float32{-1, 0, 0, -1}
	case 270:
		return [4]float32{0, -1, 1, 0}
	}
	return [4]float32{1, 0, 0, 1}
}

// Linear-light primaries conversions.
var gamutMatrices = map[[2]vo.Primaries][3][3]float32{
	{vo.PrimariesBT2020, vo.PrimariesBT709}: {
		{1.6605, -0.5876, -0.0728},
		{-0.1246, 1.1329, -0.0083},
		{-0.0182, -0.1006, 1.1187},
	},
	{vo.PrimariesBT709, vo.PrimariesBT2020}: {
		{0.6274, 0.3293, 0.0433},
		{0.0691, 0.9195, 0.0114},
		{0.0164, 0.0880, 0.8956},
	},
}

func gamutRows(src, dst vo.Primaries) ([3][4]float32, bool) {
	m, ok := gamutMatrices[[2]vo.Primaries{src, dst}]
	if !ok {
		return [3][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}, false
	}
	var rows [3][4]float32
	for i := range m {
		rows[i] = [4]float32{m[i][0], m[i][1], m[i][2], 0}
	}
	rows[0][3] = 1
	return rows, true
}

// buildVideoUniforms computes the shader parameters for drawing src into t.
func buildVideoUniforms(src *render.Source, t *render.Target, p *pipeline.Params, frame uint32) videoUniforms {
	var u videoUniforms
	u.M = ycbcrMatrix(src.Repr, src.Format)

	if len(src.Planes) > 0 {
		d := src.Planes[0].Texture.Desc()
		w, h := float64(d.Width), float64(d.Height)
		u.Crop = [4]float32{float32(src.Crop.X0 / w), float32(src.Crop.Y0 / h), float32(src.Crop.X1 / w), float32(src.Crop.Y1 / h)}
	}
	u.Rot = rotation(src.Rotation)

	u.Chroma[2] = float32(planeLayout(src.Format))
	if len(src.Planes) > 1 && src.Format.IsChromaPlane(1) {
		d := src.Planes[1].Texture.Desc()
		u.Chroma[0] = float32(-src.Planes[1].ShiftX / float64(d.Width))
		u.Chroma[1] = float32(-src.Planes[1].ShiftY / float64(d.Height))
	}
	if src.Format.HasAlpha() && src.Format.IsYUV() && len(src.Planes) == vo.MaxPlanes {
		u.Chroma[3] = 1
	}

	srcPeak := nominalPeak(src.Color.Transfer)
	if src.HDR.Peak > 0 {
		srcPeak = src.HDR.Peak
	}
	if p != nil && p.PeakDetect != nil && src.HDR.ScenePeak > 0 {
		srcPeak = src.HDR.ScenePeak
	}
	dstPeak := nominalPeak(t.Color.Transfer)
	if pk := t.Color.HDR.SignalPeak(); pk > 0 && t.Color.IsHDR() {
		dstPeak = pk
	}
	if p != nil && p.ToneMap.Function == "clip" {
		srcPeak = dstPeak
	}
	u.Color = [4]float32{float32(trcCode(src.Color.Transfer)), float32(trcCode(t.Color.Transfer)), float32(srcPeak), float32(dstPeak)}

	u.Gamut, _ = gamutRows(src.Color.Primaries, t.Color.Primaries)

	if p != nil && p.Dither != nil && t.Bits.Color > 0 && t.Bits.Color < 24 {
		u.FX[0] = float32(1 / (math.Exp2(float64(t.Bits.Color)) - 1))
		if p.Dither.Temporal {
			u.FX[1] = float32(frame % 64)
		}
	}

	if p != nil && p.Deband != nil {
		d := p.Deband
		u.Deband = [4]float32{float32(d.Iterations), float32(d.Threshold * debandThresholdScale), float32(d.Radius), float32(d.Grain * debandGrainScale)}
	}
	if p != nil && p.Sigmoid != nil && !src.Color.IsHDR() && upscaling(src, t, p) {
		u.Sigmoid = sigmoidParams(p.Sigmoid.Center, p.Sigmoid.Slope)
	}

	side, l := lutOff, src.LUT
	switch {
	case src.LUT != nil:
		side = lutSource
	case t.LUT != nil:
		side, l = lutTarget, t.LUT
	}
	if l != nil && l.Entries() > 0 {
		ext := lutExtent(l)
		u.LUT = [4]float32{float32(side), float32(l.Kind), float32(l.Size), float32(ext.Width)}
		u.LUTMin = [4]float32{l.DomainMin[0], l.DomainMin[1], l.DomainMin[2], 0}
		u.LUTMax = [4]float32{l.DomainMax[0], l.DomainMax[1], l.DomainMax[2], 0}
	}
	return u
}

// upscaling reports whether the draw enlarges the picture with an
// interpolating kernel.
func upscaling(src *render.Source, t *render.Target, p *pipeline.Params) bool {
	w, _ := src.OrientedSize()
	if w <= 0 || float64(t.Dst.Dx()) <= w {
		return false
	}
	return p.Upscaler == nil || p.Upscaler.Kernel != pipeline.KernelBox
}

// sigmoidParams returns the curve constants for video.wgsl. The offset
// and scale map the curve's ends at 0 and 1 onto 0 and 1.
func sigmoidParams(center, slope float64) [4]float32 {
	offset := 1 / (1 + math.Exp(slope*center))
	scale := 1/(1+math.Exp(slope*(center-1))) - offset
	if scale <= 0 {
		return [4]float32{}
	}
	return [4]float32{float32(center), float32(slope), float32(offset), float32(scale)}
}
