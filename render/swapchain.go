package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pipeline"
)

// Context brackets GPU work on the calling thread. Backends with an
// implicit per-thread context (OpenGL) bind and unbind it; explicit-API
// backends implement both methods as no-ops.
type Context interface {
	MakeCurrent() error
	ReleaseCurrent()
}

// Frame is a swapchain image acquired for drawing.
type Frame interface {
	Width() int
	Height() int
	Format() gputypes.TextureFormat

	// Color is the colorimetry the image is displayed with.
	Color() vo.ColorInfo
}

// Swapchain is the backend-owned ring of presentable images.
//
// Per frame the calls are strictly AcquireFrame, SubmitFrame, Present;
// a second AcquireFrame before SubmitFrame is an error.
type Swapchain interface {
	// ColorspaceHint advises the backend of the expected output
	// colorimetry so it can pick a surface format. It must be called
	// before the first Resize.
	ColorspaceHint(c vo.ColorInfo, mode vo.OutputMode)

	// Resize requests a size and returns the size actually in effect.
	// Resizing to the current size changes nothing.
	Resize(width, height int) (int, int, error)

	// AcquireFrame returns the next writable image. ok is false when no
	// image is available right now; that is not an error.
	AcquireFrame() (f Frame, ok bool)

	// SubmitFrame marks rendering into f as complete.
	SubmitFrame(f Frame) error

	// Present displays the submitted image.
	Present()

	// Flipped reports whether the presentation origin is bottom-left.
	Flipped() bool
}

// Painter records the GPU work of one frame.
type Painter interface {
	// Clear fills the whole target image with c.
	Clear(t *Target, c gputypes.Color) error

	// Render draws src into t.Dst with the given parameters, followed by
	// t.Overlays.
	Render(src *Source, t *Target, p *pipeline.Params) error

	// Flush submits all recorded work to the GPU queue.
	Flush() error
}
