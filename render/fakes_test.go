package render

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/pool"
)

var errFake = errors.New("fake failure")

type fakeContext struct {
	current  bool
	makes    int
	releases int
	fail     bool
}

func (c *fakeContext) MakeCurrent() error {
	if c.fail {
		return errFake
	}
	c.makes++
	c.current = true
	return nil
}

func (c *fakeContext) ReleaseCurrent() {
	c.releases++
	c.current = false
}

type fakeFrame struct {
	w, h   int
	format gputypes.TextureFormat
	color  vo.ColorInfo
}

func (f *fakeFrame) Width() int                     { return f.w }
func (f *fakeFrame) Height() int                    { return f.h }
func (f *fakeFrame) Format() gputypes.TextureFormat { return f.format }
func (f *fakeFrame) Color() vo.ColorInfo            { return f.color }

// fakeSwapchain records the calls made to it.
type fakeSwapchain struct {
	ctx       *fakeContext
	calls     []string
	noFrame   bool
	submitErr error
	flipped   bool
	w, h      int
	max       int
	hints     []vo.ColorInfo
	frame     fakeFrame
	inFlight  bool
}

func newFakeSwapchain(ctx *fakeContext) *fakeSwapchain {
	return &fakeSwapchain{
		ctx:   ctx,
		max:   4096,
		frame: fakeFrame{w: 1920, h: 1080, format: gputypes.TextureFormatBGRA8Unorm, color: vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferSRGB}},
	}
}

func (s *fakeSwapchain) ColorspaceHint(c vo.ColorInfo, _ vo.OutputMode) {
	s.calls = append(s.calls, "hint")
	s.hints = append(s.hints, c)
}

func (s *fakeSwapchain) Resize(w, h int) (int, int, error) {
	s.calls = append(s.calls, "resize")
	if w <= 0 || h <= 0 {
		return s.w, s.h, errFake
	}
	s.w, s.h = min(w, s.max), min(h, s.max)
	s.frame.w, s.frame.h = s.w, s.h
	return s.w, s.h, nil
}

func (s *fakeSwapchain) AcquireFrame() (Frame, bool) {
	s.calls = append(s.calls, "acquire")
	if s.ctx != nil && !s.ctx.current {
		panic("acquire without current context")
	}
	if s.inFlight {
		panic("acquire before submit")
	}
	if s.noFrame {
		return nil, false
	}
	s.inFlight = true
	return &s.frame, true
}

func (s *fakeSwapchain) SubmitFrame(Frame) error {
	s.calls = append(s.calls, "submit")
	s.inFlight = false
	return s.submitErr
}

func (s *fakeSwapchain) Present()      { s.calls = append(s.calls, "present") }
func (s *fakeSwapchain) Flipped() bool { return s.flipped }

func (s *fakeSwapchain) count(call string) int {
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakePainter records clears and captures the last descriptors.
type fakePainter struct {
	clears     []gputypes.Color
	renders    int
	flushes    int
	failRender int
	lastSrc    *Source
	lastTarget *Target
}

func (p *fakePainter) Clear(t *Target, c gputypes.Color) error {
	p.clears = append(p.clears, c)
	p.lastTarget = t
	return nil
}

func (p *fakePainter) Render(src *Source, t *Target, _ *pipeline.Params) error {
	p.renders++
	p.lastSrc, p.lastTarget = src, t
	if p.failRender > 0 {
		p.failRender--
		return errFake
	}
	return nil
}

func (p *fakePainter) Flush() error {
	p.flushes++
	return nil
}

type fakeTexture struct{ desc pool.TextureDesc }

func (t *fakeTexture) Desc() pool.TextureDesc { return t.desc }
func (t *fakeTexture) Destroy()               {}

// fakeAllocator fails the upload with index failAt (counted from 1).
type fakeAllocator struct {
	uploads int
	failAt  int
}

func (a *fakeAllocator) CreateTexture(d pool.TextureDesc) (pool.Texture, error) {
	return &fakeTexture{desc: d}, nil
}

func (a *fakeAllocator) Upload(pool.Texture, pool.PlaneData) error {
	a.uploads++
	if a.uploads == a.failAt {
		return errFake
	}
	return nil
}

type harness struct {
	ctx     *fakeContext
	sw      *fakeSwapchain
	painter *fakePainter
	alloc   *fakeAllocator
	pool    *pool.Pool
	r       *Renderer
}

func newHarness(t testing.TB, opts pipeline.Options) *harness {
	t.Helper()
	h := &harness{
		ctx:     &fakeContext{},
		painter: &fakePainter{},
		alloc:   &fakeAllocator{},
	}
	h.sw = newFakeSwapchain(h.ctx)
	h.pool = pool.New(h.alloc, nil)
	r, err := New(Config{
		Context:   h.ctx,
		Swapchain: h.sw,
		Painter:   h.painter,
		Pool:      h.pool,
		Params:    pipeline.Build(opts, nil),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.r = r
	return h
}

// newTestFrame returns a valid yuv420p frame.
func newTestFrame(w, h int) *vo.Frame {
	cw, ch := (w+1)/2, (h+1)/2
	return &vo.Frame{
		Format: vo.PixelFormatYUV420P,
		Width:  w,
		Height: h,
		Planes: []vo.Plane{
			{Data: make([]byte, w*h), Stride: w, Width: w, Height: h},
			{Data: make([]byte, cw*ch), Stride: cw, Width: cw, Height: ch},
			{Data: make([]byte, cw*ch), Stride: cw, Width: cw, Height: ch},
		},
	}
}

func testOverlay(x, y, w, h int) vo.Overlay {
	return vo.Overlay{
		Image: image.NewRGBA(image.Rect(0, 0, w, h)),
		Dst:   image.Rect(x, y, x+w, y+h),
	}
}
