// Package display owns the glue between a pixel source and a panel driver:
// a session holding the frame and row-transfer buffers, and the flush path
// that byte-swaps each scanline into the panel's byte order.
package display

import "errors"

// Rect is an inclusive pixel rectangle from (X1,Y1) to (X2,Y2).
type Rect struct {
	X1, Y1, X2, Y2 int
}

// W returns the rectangle width in pixels.
func (r Rect) W() int { return r.X2 - r.X1 + 1 }

// H returns the rectangle height in pixels.
func (r Rect) H() int { return r.Y2 - r.Y1 + 1 }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.X2 < r.X1 || r.Y2 < r.Y1 }

// RowSink receives one converted scanline at a time, after the addressing
// window has been positioned. Rows are RGB565 samples already in the byte
// order the panel controller expects.
type RowSink interface {
	SetWindow(r Rect) error
	PushRow(row []uint16) error
}

// FallbackRowPixels is the capacity of the static row buffer used when the
// preferred (DMA-capable) allocation fails.
const FallbackRowPixels = 512

var (
	ErrNoSink      = errors.New("display: nil row sink")
	ErrBadSize     = errors.New("display: invalid panel size")
	ErrFrameAlloc  = errors.New("display: frame buffer allocation failed")
	ErrRowOverflow = errors.New("display: rectangle wider than row buffer")
	ErrShortSource = errors.New("display: source smaller than rectangle")
)

// Config sizes a Session and lets the platform supply its own buffer
// allocators. AllocRow stands in for a DMA-capable heap: returning nil
// activates the static fallback buffer. AllocFrame failures are fatal.
type Config struct {
	Width  int
	Height int

	AllocFrame func(pixels int) []uint16
	AllocRow   func(pixels int) []uint16
}

// Session owns the frame buffer rendered into by the scene and the
// transient row buffer handed to the sink. One session per panel,
// constructed once at bring-up and never freed.
type Session struct {
	sink   RowSink
	width  int
	height int

	frame    []uint16
	row      []uint16
	fallback [FallbackRowPixels]uint16

	usingFallback bool
	done          func()
	pushErrs      int
}

// New builds a session for the given sink. Frame allocation failure is
// returned as an error; row allocation failure falls back to the static
// buffer and is reported through UsingFallback.
func New(sink RowSink, cfg Config) (*Session, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrBadSize
	}

	s := &Session{
		sink:   sink,
		width:  cfg.Width,
		height: cfg.Height,
	}

	allocFrame := cfg.AllocFrame
	if allocFrame == nil {
		allocFrame = func(pixels int) []uint16 { return make([]uint16, pixels) }
	}
	s.frame = allocFrame(cfg.Width * cfg.Height)
	if len(s.frame) < cfg.Width*cfg.Height {
		return nil, ErrFrameAlloc
	}

	allocRow := cfg.AllocRow
	if allocRow == nil {
		allocRow = func(pixels int) []uint16 { return make([]uint16, pixels) }
	}
	s.row = allocRow(cfg.Width)
	if len(s.row) < cfg.Width {
		s.row = s.fallback[:]
		s.usingFallback = true
	}

	return s, nil
}

// Width returns the panel width in pixels.
func (s *Session) Width() int { return s.width }

// Height returns the panel height in pixels.
func (s *Session) Height() int { return s.height }

// Frame returns the session's frame buffer, native-endian RGB565 in
// row-major order with a stride of Width.
func (s *Session) Frame() []uint16 { return s.frame }

// UsingFallback reports whether row transfers run through the static
// fallback buffer instead of a platform-allocated one.
func (s *Session) UsingFallback() bool { return s.usingFallback }

// PushErrors returns how many flushes saw at least one sink error.
func (s *Session) PushErrors() int { return s.pushErrs }

// SetFlushDone installs the flush-complete hook. It fires exactly once per
// Flush call, error or not; the scene has no other way to resume rendering.
func (s *Session) SetFlushDone(fn func()) { s.done = fn }

// Flush delivers the rectangle r to the sink. src must hold at least
// r.W()*r.H() tightly packed native-endian RGB565 samples covering r.
// Each row is byte-swapped into the row buffer and pushed; the first sink
// error is recorded and returned but does not stop remaining rows.
func (s *Session) Flush(r Rect, src []uint16) error {
	defer func() {
		if s.done != nil {
			s.done()
		}
	}()

	if r.Empty() {
		return nil
	}
	w := r.W()
	h := r.H()
	if w > len(s.row) {
		return ErrRowOverflow
	}
	if len(src) < w*h {
		return ErrShortSource
	}

	var first error
	if err := s.sink.SetWindow(r); err != nil {
		first = err
	}

	row := s.row[:w]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			row[x] = swap16(src[x])
		}
		if err := s.sink.PushRow(row); err != nil && first == nil {
			first = err
		}
		src = src[w:]
	}

	if first != nil {
		s.pushErrs++
	}
	return first
}

// The panel expects big-endian RGB565; the frame buffer is native-endian.
func swap16(v uint16) uint16 {
	return v<<8 | v>>8
}
