package pool

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// OverlayData converts an overlay image into premultiplied RGBA plane
// data. *image.RGBA images with a zero origin are used without copying.
func OverlayData(img image.Image) PlaneData {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return PlaneData{
		Format: gputypes.TextureFormatRGBA8Unorm,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Stride: rgba.Stride,
		Data:   rgba.Pix,
	}
}
