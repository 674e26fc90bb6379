package render

import (
	"fmt"
	"image"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/pool"
)

// Rect is a rectangle with fractional coordinates. X0 > X1 (or Y0 > Y1)
// mirrors the image along that axis.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectFrom converts an integer rectangle.
func RectFrom(r image.Rectangle) Rect {
	return Rect{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

// W returns the absolute width.
func (r Rect) W() float64 { return abs(r.X1 - r.X0) }

// H returns the absolute height.
func (r Rect) H() float64 { return abs(r.Y1 - r.Y0) }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Repr describes how color values are encoded in the planes.
type Repr struct {
	Matrix vo.Matrix
	Range  vo.Range
	Bits   pipeline.BitDepth
	Alpha  bool
}

// SourceHDR is HDR brightness information after sanity checks.
// Zero values are absent.
type SourceHDR struct {
	// Peak is the signal peak relative to SDR white.
	Peak float64

	// ScenePeak and SceneAvg come from dynamic metadata. HasAvg is false
	// when the average is missing or was rejected.
	ScenePeak float64
	SceneAvg  float64
	HasAvg    bool
}

// SourcePlane is one uploaded plane of the source image.
type SourcePlane struct {
	Texture pool.Texture

	// ShiftX and ShiftY are the chroma siting offset in plane samples;
	// zero for luma, alpha and packed planes.
	ShiftX, ShiftY float64

	// Offset is the plane origin inside the frame.
	Offset image.Point
}

// Source describes the decoded image for one render call.
type Source struct {
	Format vo.PixelFormat
	Planes []SourcePlane

	// Crop is the visible region in frame coordinates, mirrored for a
	// horizontal flip.
	Crop Rect

	// Rotation is the clockwise rotation in degrees (0, 90, 180, 270)
	// applied after the crop.
	Rotation int

	Color      vo.ColorInfo
	Repr       Repr
	HDR        SourceHDR
	ICC        []byte
	DynamicHDR *vo.DynamicHDR
	LUT        *asset.LUT
}

// OrientedSize returns the size of the cropped image after rotation.
func (s *Source) OrientedSize() (w, h float64) {
	w, h = s.Crop.W(), s.Crop.H()
	if s.Rotation == 90 || s.Rotation == 270 {
		return h, w
	}
	return w, h
}

// InferColor fills the untagged fields of f's colorimetry with the
// usual defaults for its size and pixel format.
func InferColor(f *vo.Frame) vo.ColorInfo {
	c := f.Color
	yuv := f.Format.IsYUV()
	sd := f.Width <= 1024 && f.Height <= 576

	if c.Matrix == vo.MatrixUnknown {
		switch {
		case !yuv:
			c.Matrix = vo.MatrixRGB
		case c.Primaries == vo.PrimariesBT2020:
			c.Matrix = vo.MatrixBT2020NC
		case sd:
			c.Matrix = vo.MatrixBT601
		default:
			c.Matrix = vo.MatrixBT709
		}
	}
	if c.Range == vo.RangeUnknown {
		if yuv {
			c.Range = vo.RangeLimited
		} else {
			c.Range = vo.RangeFull
		}
	}
	if c.Primaries == vo.PrimariesUnknown {
		switch {
		case c.Matrix == vo.MatrixBT2020NC || c.Matrix == vo.MatrixBT2020C:
			c.Primaries = vo.PrimariesBT2020
		case sd && f.Height == 480:
			c.Primaries = vo.PrimariesBT601_525
		case sd:
			c.Primaries = vo.PrimariesBT601_625
		default:
			c.Primaries = vo.PrimariesBT709
		}
	}
	if c.Transfer == vo.TransferUnknown {
		if yuv {
			c.Transfer = vo.TransferBT1886
		} else {
			c.Transfer = vo.TransferSRGB
		}
	}
	return c
}

// sourceHDR derives sanity-checked brightness values from f.
func sourceHDR(f *vo.Frame, b vo.SanityBounds) SourceHDR {
	h := SourceHDR{Peak: b.Peak(f.Color.HDR.SignalPeak())}
	if d := f.DynamicHDR; d != nil {
		h.ScenePeak = b.Peak(d.ScenePeak)
		h.SceneAvg, h.HasAvg = b.Avg(d.SceneAvg)
	}
	return h
}

// orient folds o into a crop rectangle and a clockwise rotation.
func orient(crop image.Rectangle, o vo.Orientation) (Rect, int) {
	n := o.Normalize()
	r := RectFrom(crop)
	if n.FlipH {
		r.X0, r.X1 = r.X1, r.X0
	}
	return r, n.Rotate
}

// planeData returns the upload description of plane i of f.
func planeData(f *vo.Frame, i int) pool.PlaneData {
	pl := f.Planes[i]
	return pool.PlaneData{
		Format: f.Format.PlaneFormat(i),
		Width:  pl.Width,
		Height: pl.Height,
		Stride: pl.Stride,
		Data:   pl.Data,
	}
}

// buildSource uploads the planes of f and describes them. On error the
// returned source is incomplete and must not be rendered.
func buildSource(f *vo.Frame, pl *pool.Pool, p *pipeline.Params) (*Source, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	color := InferColor(f)
	crop, rot := orient(f.CropRect(), f.Orientation)
	src := &Source{
		Format:   f.Format,
		Planes:   make([]SourcePlane, len(f.Planes)),
		Crop:     crop,
		Rotation: rot,
		Color:    color,
		Repr: Repr{
			Matrix: color.Matrix,
			Range:  color.Range,
			Bits:   pipeline.BitDepth{Sample: f.Format.SampleDepth(), Color: f.Format.ColorDepth()},
			Alpha:  f.Format.HasAlpha(),
		},
		HDR:        sourceHDR(f, p.HDRBounds),
		ICC:        f.ICC,
		DynamicHDR: f.DynamicHDR,
	}
	if p.LUT != nil && p.LUTType.OnSource() {
		src.LUT = p.LUT
	}

	sx, sy := f.Format.ChromaShift()
	cx, cy := color.Chroma.Offset()
	for i := range f.Planes {
		tex, err := pl.UploadPlane(i, planeData(f, i))
		if err != nil {
			return nil, fmt.Errorf("render: plane %d: %w", i, err)
		}
		sp := SourcePlane{Texture: tex, Offset: f.Planes[i].Offset}
		if f.Format.IsChromaPlane(i) {
			if sx > 0 {
				sp.ShiftX = cx
			}
			if sy > 0 {
				sp.ShiftY = cy
			}
		}
		src.Planes[i] = sp
	}
	return src, nil
}
