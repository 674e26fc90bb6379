package platform

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoXlibDisplay is returned when no Xlib display could be opened for
// surface creation.
var ErrNoXlibDisplay = errors.New("platform: cannot open Xlib display")

// x11Platform validates the window and tracks its geometry over an xgb
// connection. Vulkan surface creation needs an Xlib Display*, which is
// taken from the window description or opened here.
type x11Platform struct {
	conn    *xgb.Conn
	window  xproto.Window
	display uintptr

	// closeDisplay releases a display opened by Init; nil when the
	// caller supplied the display.
	closeDisplay func()

	width, height int
	closed        bool
}

func (p *x11Platform) Name() string { return "x11" }

func (p *x11Platform) Init(w Window) error {
	if w.Handle == 0 {
		return fmt.Errorf("%w: x11 needs a window id", ErrNoWindow)
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("platform: failed to connect to X server: %w", err)
	}

	win := xproto.Window(w.Handle)
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		conn.Close()
		return fmt.Errorf("platform: window %#x: %w", w.Handle, err)
	}

	display := w.Display
	var closeDisplay func()
	if display == 0 {
		display, closeDisplay = openXlibDisplay()
		if display == 0 {
			conn.Close()
			return ErrNoXlibDisplay
		}
	}

	p.conn = conn
	p.window = win
	p.display = display
	p.closeDisplay = closeDisplay
	p.width, p.height = sizeOr(int(geom.Width), int(geom.Height))
	p.closed = false
	return nil
}

func (p *x11Platform) CreateSurface(inst hal.Instance) (hal.Surface, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.conn == nil {
		return nil, ErrNotInitialized
	}
	return inst.CreateSurface(p.display, uintptr(p.window))
}

// Size queries the current window geometry, falling back to the last
// known size if the query fails.
func (p *x11Platform) Size() (int, int) {
	if p.conn == nil || p.closed {
		return p.width, p.height
	}
	geom, err := xproto.GetGeometry(p.conn, xproto.Drawable(p.window)).Reply()
	if err == nil && geom.Width > 0 && geom.Height > 0 {
		p.width, p.height = int(geom.Width), int(geom.Height)
	}
	return p.width, p.height
}

func (p *x11Platform) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.closeDisplay != nil {
		p.closeDisplay()
		p.closeDisplay = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	p.display = 0
	return nil
}
