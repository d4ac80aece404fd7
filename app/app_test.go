package app

import (
	"strings"
	"testing"

	"guition/display"
	"guition/hal"

	"tinygo.org/x/drivers"
)

type stubPanel struct {
	w, h int

	windows []display.Rect
	rows    int
	fills   []uint16

	backlight  bool
	rowBufFail bool
}

func (p *stubPanel) Size() (int, int) { return p.w, p.h }

func (p *stubPanel) SetWindow(r display.Rect) error {
	p.windows = append(p.windows, r)
	return nil
}

func (p *stubPanel) PushRow(row []uint16) error {
	p.rows++
	return nil
}

func (p *stubPanel) Fill(pix uint16) error {
	p.fills = append(p.fills, pix)
	return nil
}

func (p *stubPanel) SetRotation(rot drivers.Rotation) error { return nil }

func (p *stubPanel) SetBacklight(on bool) { p.backlight = on }

func (p *stubPanel) RowBuffer(pixels int) []uint16 {
	if p.rowBufFail || pixels <= 0 {
		return nil
	}
	return make([]uint16, pixels)
}

type stubLogger struct {
	lines []string
}

func (l *stubLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *stubLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *stubLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type stubDisplay struct {
	p hal.Panel
}

func (d stubDisplay) Panel() hal.Panel { return d.p }

type stubTime struct {
	ch chan uint64
}

func (t *stubTime) Ticks() <-chan uint64 { return t.ch }

func (t *stubTime) advance(ms int) {
	for i := 0; i < ms; i++ {
		t.ch <- uint64(i)
	}
}

type stubHAL struct {
	log   *stubLogger
	panel hal.Panel
	t     *stubTime
}

func (h *stubHAL) Logger() hal.Logger   { return h.log }
func (h *stubHAL) Display() hal.Display { return stubDisplay{p: h.panel} }
func (h *stubHAL) Time() hal.Time       { return h.t }

func newStubHAL(p *stubPanel) *stubHAL {
	var panel hal.Panel
	if p != nil {
		panel = p
	}
	return &stubHAL{
		log:   &stubLogger{},
		panel: panel,
		t:     &stubTime{ch: make(chan uint64, 8192)},
	}
}

func TestBringUpHello(t *testing.T) {
	p := &stubPanel{w: 320, h: 480}
	h := newStubHAL(p)

	step, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.backlight {
		t.Fatal("backlight not switched on")
	}
	if !h.log.contains("bring-up") {
		t.Fatal("missing banner log line")
	}

	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.windows) != 1 {
		t.Fatalf("got %d flushes, want 1", len(p.windows))
	}
	want := display.Rect{X1: 0, Y1: 0, X2: 319, Y2: 479}
	if p.windows[0] != want {
		t.Fatalf("window = %+v, want %+v", p.windows[0], want)
	}
	if p.rows != 480 {
		t.Fatalf("got %d row pushes, want 480", p.rows)
	}

	// Clean scene: no further flushes.
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.windows) != 1 {
		t.Fatal("clean scene issued a flush")
	}
}

func TestRowBufferFallbackWarning(t *testing.T) {
	p := &stubPanel{w: 320, h: 480, rowBufFail: true}
	h := newStubHAL(p)

	step, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !h.log.contains("static fallback") {
		t.Fatalf("missing fallback warning, log: %v", h.log.lines)
	}
	if err := step(); err != nil {
		t.Fatalf("step on fallback buffer: %v", err)
	}
	if p.rows != 480 {
		t.Fatalf("got %d row pushes, want 480", p.rows)
	}
}

func TestNoPanel(t *testing.T) {
	h := newStubHAL(nil)
	if _, err := New(h, Config{}); err != ErrNoPanel {
		t.Fatalf("New: %v, want ErrNoPanel", err)
	}
}

func TestColorCycle(t *testing.T) {
	p := &stubPanel{w: 320, h: 480}
	h := newStubHAL(p)

	step, err := New(h, Config{ColorCycle: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// First step fills immediately.
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.fills) != 1 || p.fills[0] != 0xF800 {
		t.Fatalf("fills = %#v, want [0xF800]", p.fills)
	}

	// Under the fill period nothing happens.
	h.t.advance(fillPeriodMs - 1)
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.fills) != 1 {
		t.Fatalf("early fill: %#v", p.fills)
	}

	h.t.advance(1)
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.fills) != 2 || p.fills[1] != 0x07E0 {
		t.Fatalf("fills = %#v, want green second", p.fills)
	}
	if !h.log.contains("GREEN") {
		t.Fatal("missing fill log line")
	}
}

func TestBootLogFlushesBeforeScene(t *testing.T) {
	p := &stubPanel{w: 320, h: 480}
	h := newStubHAL(p)

	step, err := New(h, Config{BootLog: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// The boot log flushes the full frame once during New, through the
	// session rather than the terminal.
	if len(p.windows) != 1 {
		t.Fatalf("boot log issued %d flushes, want 1", len(p.windows))
	}
	full := display.Rect{X1: 0, Y1: 0, X2: 319, Y2: 479}
	if p.windows[0] != full {
		t.Fatalf("boot log window = %+v, want %+v", p.windows[0], full)
	}
	if p.rows != 480 {
		t.Fatalf("boot log pushed %d rows, want 480", p.rows)
	}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(p.windows) != 2 {
		t.Fatalf("scene flush missing, windows = %d", len(p.windows))
	}
}
