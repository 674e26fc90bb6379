package vo

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
)

// Frame errors.
var (
	// ErrPlaneCount is returned when a frame carries the wrong number of planes.
	ErrPlaneCount = errors.New("vo: plane count does not match pixel format")

	// ErrPlaneSize is returned when a plane's data is too short for its geometry.
	ErrPlaneSize = errors.New("vo: plane data shorter than stride*height")
)

// MaxPlanes is the maximum number of planes a frame can have.
const MaxPlanes = 4

// PixelFormat identifies how a decoded frame is laid out in memory.
type PixelFormat uint8

// Supported pixel formats.
const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatYUV420P             // planar Y, U, V; chroma halved in both axes
	PixelFormatNV12                // Y plane + interleaved UV plane, 4:2:0
	PixelFormatP010                // 10-bit NV12 in 16-bit words
	PixelFormatYUV444P             // planar Y, U, V at full resolution
	PixelFormatYUVA420P            // YUV420P plus a full-resolution alpha plane
	PixelFormatRGBA                // packed 8-bit RGBA
	PixelFormatBGRA                // packed 8-bit BGRA
	PixelFormatGray8               // single 8-bit luma plane
)

// planeKind is the role of a plane within a pixel format.
type planeKind uint8

const (
	planeLuma planeKind = iota
	planeChroma
	planeAlpha
	planePacked
)

type planeLayout struct {
	format gputypes.TextureFormat
	kind   planeKind
}

type formatInfo struct {
	name        string
	planes      []planeLayout
	shiftX      int
	shiftY      int
	sampleDepth int
	colorDepth  int
}

var formatTable = [...]formatInfo{
	PixelFormatUnknown: {name: "unknown"},
	PixelFormatYUV420P: {
		name:   "yuv420p",
		planes: []planeLayout{{gputypes.TextureFormatR8Unorm, planeLuma}, {gputypes.TextureFormatR8Unorm, planeChroma}, {gputypes.TextureFormatR8Unorm, planeChroma}},
		shiftX: 1, shiftY: 1, sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatNV12: {
		name:   "nv12",
		planes: []planeLayout{{gputypes.TextureFormatR8Unorm, planeLuma}, {gputypes.TextureFormatRG8Unorm, planeChroma}},
		shiftX: 1, shiftY: 1, sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatP010: {
		name:   "p010",
		planes: []planeLayout{{gputypes.TextureFormatR16Unorm, planeLuma}, {gputypes.TextureFormatRG16Unorm, planeChroma}},
		shiftX: 1, shiftY: 1, sampleDepth: 16, colorDepth: 10,
	},
	PixelFormatYUV444P: {
		name:        "yuv444p",
		planes:      []planeLayout{{gputypes.TextureFormatR8Unorm, planeLuma}, {gputypes.TextureFormatR8Unorm, planeChroma}, {gputypes.TextureFormatR8Unorm, planeChroma}},
		sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatYUVA420P: {
		name: "yuva420p",
		planes: []planeLayout{
			{gputypes.TextureFormatR8Unorm, planeLuma}, {gputypes.TextureFormatR8Unorm, planeChroma},
			{gputypes.TextureFormatR8Unorm, planeChroma}, {gputypes.TextureFormatR8Unorm, planeAlpha},
		},
		shiftX: 1, shiftY: 1, sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatRGBA: {
		name:        "rgba",
		planes:      []planeLayout{{gputypes.TextureFormatRGBA8Unorm, planePacked}},
		sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatBGRA: {
		name:        "bgra",
		planes:      []planeLayout{{gputypes.TextureFormatBGRA8Unorm, planePacked}},
		sampleDepth: 8, colorDepth: 8,
	},
	PixelFormatGray8: {
		name:        "gray8",
		planes:      []planeLayout{{gputypes.TextureFormatR8Unorm, planeLuma}},
		sampleDepth: 8, colorDepth: 8,
	},
}

func (p PixelFormat) info() formatInfo {
	if int(p) < len(formatTable) {
		return formatTable[p]
	}
	return formatTable[PixelFormatUnknown]
}

func (p PixelFormat) String() string { return p.info().name }

// PlaneCount returns the number of planes for this pixel format.
func (p PixelFormat) PlaneCount() int { return len(p.info().planes) }

// PlaneFormat returns the texture format used to upload plane i,
// or TextureFormatUndefined if i is out of range.
func (p PixelFormat) PlaneFormat(i int) gputypes.TextureFormat {
	planes := p.info().planes
	if i < 0 || i >= len(planes) {
		return gputypes.TextureFormatUndefined
	}
	return planes[i].format
}

// IsChromaPlane reports whether plane i carries chroma samples.
// Luma, alpha and packed RGB planes are never chroma planes.
func (p PixelFormat) IsChromaPlane(i int) bool {
	planes := p.info().planes
	return i >= 0 && i < len(planes) && planes[i].kind == planeChroma
}

// ChromaShift returns log2 of the horizontal and vertical chroma
// subsampling factors.
func (p PixelFormat) ChromaShift() (x, y int) {
	fi := p.info()
	return fi.shiftX, fi.shiftY
}

// IsYUV reports whether the format stores YCbCr samples.
func (p PixelFormat) IsYUV() bool {
	for _, pl := range p.info().planes {
		if pl.kind == planeChroma {
			return true
		}
	}
	return false
}

// HasAlpha reports whether the format carries an alpha channel.
func (p PixelFormat) HasAlpha() bool {
	for _, pl := range p.info().planes {
		if pl.kind == planeAlpha || pl.format == gputypes.TextureFormatRGBA8Unorm || pl.format == gputypes.TextureFormatBGRA8Unorm {
			return true
		}
	}
	return false
}

// SampleDepth returns the number of bits each sample occupies in memory.
func (p PixelFormat) SampleDepth() int { return p.info().sampleDepth }

// ColorDepth returns the number of significant bits per sample.
func (p PixelFormat) ColorDepth() int { return p.info().colorDepth }

// BytesPerTexel returns the size of one texel of the plane texture formats
// used by vo, or 0 for formats it never uploads.
func BytesPerTexel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatR16Unorm:
		return 2
	case gputypes.TextureFormatRG16Unorm, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	case gputypes.TextureFormatRGBA16Float:
		return 8
	}
	return 0
}

// Plane is one image plane of a decoded frame.
type Plane struct {
	// Data holds the rows of the plane, Stride bytes apart.
	Data []byte

	// Stride is the distance in bytes between the starts of two rows.
	Stride int

	// Width and Height are the plane dimensions in samples.
	Width, Height int

	// Offset is the plane origin inside the frame, in plane samples.
	Offset image.Point
}

// Frame is a decoded video frame. The decoder owns the plane memory;
// the pipeline reads it only for the duration of one draw call.
type Frame struct {
	Format PixelFormat
	Width  int
	Height int
	Planes []Plane

	// Crop is the visible rectangle. An empty Crop means the full frame.
	Crop image.Rectangle

	Color       ColorInfo
	ICC         []byte
	DynamicHDR  *DynamicHDR
	Orientation Orientation
	PTS         time.Duration
}

// NewFrame allocates a frame of the given format and size with zeroed,
// tightly packed planes. Chroma planes are rounded up.
func NewFrame(format PixelFormat, width, height int) *Frame {
	f := &Frame{Format: format, Width: width, Height: height}
	sx, sy := format.ChromaShift()
	for i := range format.PlaneCount() {
		w, h := width, height
		if format.IsChromaPlane(i) {
			w, h = (width+1<<sx-1)>>sx, (height+1<<sy-1)>>sy
		}
		stride := w * BytesPerTexel(format.PlaneFormat(i))
		f.Planes = append(f.Planes, Plane{Data: make([]byte, stride*h), Stride: stride, Width: w, Height: h})
	}
	return f
}

// CropRect returns the visible rectangle of the frame.
func (f *Frame) CropRect() image.Rectangle {
	full := image.Rect(0, 0, f.Width, f.Height)
	if f.Crop.Empty() {
		return full
	}
	return f.Crop.Intersect(full)
}

// Validate checks the plane count and that each plane holds enough data.
func (f *Frame) Validate() error {
	if len(f.Planes) != f.Format.PlaneCount() || len(f.Planes) > MaxPlanes {
		return fmt.Errorf("%w: %s has %d planes, got %d", ErrPlaneCount, f.Format, f.Format.PlaneCount(), len(f.Planes))
	}
	for i, pl := range f.Planes {
		row := pl.Width * BytesPerTexel(f.Format.PlaneFormat(i))
		if pl.Height > 0 && (pl.Stride < row || len(pl.Data) < pl.Stride*(pl.Height-1)+row) {
			return fmt.Errorf("%w: plane %d", ErrPlaneSize, i)
		}
	}
	return nil
}

// Overlay is a subtitle or OSD region drawn on top of the video.
type Overlay struct {
	// Image is the region content. Non-RGBA images are converted on upload.
	Image image.Image

	// Dst is the placement in target coordinates (top-left origin).
	Dst image.Rectangle

	// Color is the colorimetry of the overlay image.
	Color ColorInfo
}
