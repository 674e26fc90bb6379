package pool

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureDesc describes a 2D texture holding one image plane.
type TextureDesc struct {
	Label  string
	Format gputypes.TextureFormat
	Width  int
	Height int
}

// matches reports whether a texture created from d can hold data shaped
// like o. Labels are ignored.
func (d TextureDesc) matches(o TextureDesc) bool {
	return d.Format == o.Format && d.Width == o.Width && d.Height == o.Height
}

func (d TextureDesc) String() string {
	return fmt.Sprintf("%s %dx%d format=%d", d.Label, d.Width, d.Height, d.Format)
}

// PlaneData is one plane of pixel data ready for upload.
// Rows are Stride bytes apart; Data holds at least
// Stride*(Height-1) + Width*bytesPerTexel bytes.
type PlaneData struct {
	Format gputypes.TextureFormat
	Width  int
	Height int
	Stride int
	Data   []byte
}

// Desc returns the texture description needed to hold p.
func (p PlaneData) Desc(label string) TextureDesc {
	return TextureDesc{Label: label, Format: p.Format, Width: p.Width, Height: p.Height}
}

// Texture is a GPU texture created by an Allocator.
type Texture interface {
	// Desc returns the description the texture was created with.
	Desc() TextureDesc

	// Destroy releases the texture. It is safe to call more than once.
	Destroy()
}

// Allocator creates textures and writes pixel data into them.
// Backends implement it on top of their device and queue.
type Allocator interface {
	CreateTexture(desc TextureDesc) (Texture, error)
	Upload(tex Texture, data PlaneData) error
}
