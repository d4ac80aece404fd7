package scene

import (
	"image/color"
	"testing"

	"guition/display"
)

type fakeSink struct {
	windows []display.Rect
	rows    [][]uint16
}

func (f *fakeSink) SetWindow(r display.Rect) error {
	f.windows = append(f.windows, r)
	return nil
}

func (f *fakeSink) PushRow(row []uint16) error {
	cp := make([]uint16, len(row))
	copy(cp, row)
	f.rows = append(f.rows, cp)
	return nil
}

func newTestScene(t *testing.T, w, h int) (*Scene, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	sess, err := display.New(sink, display.Config{Width: w, Height: h})
	if err != nil {
		t.Fatalf("display.New: %v", err)
	}
	return New(sess), sink
}

func TestInitialStepFlushesFullScreen(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)

	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(sink.windows) != 1 {
		t.Fatalf("got %d flushes, want 1", len(sink.windows))
	}
	want := display.Rect{X1: 0, Y1: 0, X2: 319, Y2: 479}
	if sink.windows[0] != want {
		t.Fatalf("window = %+v, want %+v", sink.windows[0], want)
	}
	if len(sink.rows) != 480 {
		t.Fatalf("got %d rows, want 480", len(sink.rows))
	}
}

func TestStepIdleWhenClean(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)

	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	n := len(sink.windows)
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(sink.windows) != n {
		t.Fatal("clean scene issued a flush")
	}
}

func TestLabelFlushesCenteredBand(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	sc.SetLabel("hello", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(sink.windows) != 2 {
		t.Fatalf("got %d flushes, want 2", len(sink.windows))
	}
	win := sink.windows[1]
	if win.X1 != 0 || win.X2 != 319 {
		t.Fatalf("band not full width: %+v", win)
	}
	if win.H() >= 480 {
		t.Fatalf("one-line label dirtied the whole screen: %+v", win)
	}
	mid := 480 / 2
	if win.Y1 > mid || win.Y2 < mid {
		t.Fatalf("band %+v does not straddle the vertical center", win)
	}
}

func TestLabelPixelsUseForeground(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)
	sc.SetLabel("hello", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// White is 0xFFFF either byte order; the default background is not.
	var fg, bg int
	for _, row := range sink.rows {
		for _, v := range row {
			if v == 0xFFFF {
				fg++
			} else {
				bg++
			}
		}
	}
	if fg == 0 {
		t.Fatal("no label pixels flushed")
	}
	if bg == 0 {
		t.Fatal("no background pixels flushed")
	}
}

func TestBackgroundChangeRepaintsAll(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	sc.SetBackground(color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF})
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	win := sink.windows[len(sink.windows)-1]
	if win.H() != 480 {
		t.Fatalf("background change flushed %d rows, want 480", win.H())
	}
	// Blue 0x001F crosses the wire byte-swapped as 0x1F00.
	last := sink.rows[len(sink.rows)-1]
	if last[0] != 0x1F00 {
		t.Fatalf("flushed background = %#04x, want 0x1F00", last[0])
	}
}

func TestLabelMoveClearsOldBand(t *testing.T) {
	sc, sink := newTestScene(t, 320, 480)
	sc.SetLabel("one", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// Growing to three lines moves the block start upward; the flushed
	// band must cover both the old and new extents.
	sc.SetLabel("one\ntwo\nthree", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	if err := sc.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	win := sink.windows[len(sink.windows)-1]
	oneY0, oneY1 := (480-defaultLineHeight)/2-bandPad, (480+defaultLineHeight)/2+bandPad
	if win.Y1 > oneY0 || win.Y2 < oneY1 {
		t.Fatalf("band %+v does not cover old label band [%d,%d]", win, oneY0, oneY1)
	}
}
