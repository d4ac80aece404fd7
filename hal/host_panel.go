//go:build !tinygo

package hal

import (
	"errors"
	"sync"

	"guition/display"

	"tinygo.org/x/drivers"
)

// hostPanel simulates the LCD: rows arrive in panel byte order and are
// swapped back into a native-endian RGB565 framebuffer the window renderer
// reads from.
type hostPanel struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte

	win    display.Rect
	pushed int

	backlight bool
	logger    *hostLogger
}

var (
	errWindowBounds  = errors.New("hal: window outside panel")
	errWindowOverrun = errors.New("hal: row push past window")
	errShortRow      = errors.New("hal: row narrower than window")
)

func newHostPanel(width, height int, logger *hostLogger) *hostPanel {
	return &hostPanel{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
		logger: logger,
	}
}

func (p *hostPanel) Size() (int, int) { return p.width, p.height }

func (p *hostPanel) SetWindow(r display.Rect) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Empty() || r.X1 < 0 || r.Y1 < 0 || r.X2 >= p.width || r.Y2 >= p.height {
		return errWindowBounds
	}
	p.win = r
	p.pushed = 0
	return nil
}

func (p *hostPanel) PushRow(row []uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w := p.win.W()
	if len(row) < w {
		return errShortRow
	}
	y := p.win.Y1 + p.pushed
	if y > p.win.Y2 {
		return errWindowOverrun
	}
	p.pushed++

	off := (y*p.width + p.win.X1) * 2
	for x := 0; x < w; x++ {
		s := row[x]
		native := s<<8 | s>>8
		p.buf[off] = byte(native)
		p.buf[off+1] = byte(native >> 8)
		off += 2
	}
	return nil
}

func (p *hostPanel) Fill(pix uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	lo := byte(pix)
	hi := byte(pix >> 8)
	for i := 0; i < len(p.buf); i += 2 {
		p.buf[i] = lo
		p.buf[i+1] = hi
	}
	return nil
}

func (p *hostPanel) SetRotation(rot drivers.Rotation) error {
	_ = rot
	return nil
}

func (p *hostPanel) SetBacklight(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backlight = on
	if on {
		p.logger.WriteLineString("backlight: ON")
	} else {
		p.logger.WriteLineString("backlight: OFF")
	}
}

func (p *hostPanel) RowBuffer(pixels int) []uint16 {
	if pixels <= 0 {
		return nil
	}
	return make([]uint16, pixels)
}

func (p *hostPanel) snapshotRGB565(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.buf)
}
