// Package scene is the retained picture shown during bring-up: one
// background-colored screen with one centered label. It tracks dirty rows
// as full-width bands so every flush source stays tightly packed, and
// resumes rendering only when the session signals flush-done.
package scene

import (
	"image/color"
	"strings"

	"guition/display"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

const (
	defaultLineHeight = 20
	baselineDrop      = 5
	bandPad           = 2
)

type Scene struct {
	sess *display.Session

	bg   color.RGBA
	text string
	fg   color.RGBA
	font tinyfont.Fonter

	lineHeight int

	dirty    bool
	dirtyY0  int
	dirtyY1  int
	inFlight bool

	prevBandY0 int
	prevBandY1 int
	hasPrev    bool
}

// New builds a scene over the session and marks the whole screen dirty so
// the first Step paints it.
func New(sess *display.Session) *Scene {
	s := &Scene{
		sess:       sess,
		bg:         color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF},
		fg:         color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		font:       &freesans.Regular9pt7b,
		lineHeight: defaultLineHeight,
	}
	sess.SetFlushDone(s.flushDone)
	s.markRows(0, sess.Height()-1)
	return s
}

// SetBackground recolors the screen.
func (s *Scene) SetBackground(c color.RGBA) {
	s.bg = c
	s.markRows(0, s.sess.Height()-1)
}

// SetLabel replaces the centered label. Newlines split it into centered
// lines. The band holding the previous text is redrawn too.
func (s *Scene) SetLabel(text string, c color.RGBA) {
	if s.hasPrev {
		s.markRows(s.prevBandY0, s.prevBandY1)
	}
	s.text = text
	s.fg = c

	y0, y1 := s.labelBand()
	s.markRows(y0, y1)
	s.prevBandY0 = y0
	s.prevBandY1 = y1
	s.hasPrev = true
}

// Step renders and flushes the dirty band, if any. It does nothing while a
// flush is outstanding; only the session's flush-done signal clears that
// state, there is no failure path that does.
func (s *Scene) Step() error {
	if s.inFlight || !s.dirty {
		return nil
	}

	w := s.sess.Width()
	y0 := s.dirtyY0
	y1 := s.dirtyY1
	frame := s.sess.Frame()

	bg := display.RGB565From888(s.bg.R, s.bg.G, s.bg.B)
	for i := y0 * w; i < (y1+1)*w; i++ {
		frame[i] = bg
	}
	s.drawLabel()

	s.dirty = false
	s.inFlight = true
	return s.sess.Flush(
		display.Rect{X1: 0, Y1: y0, X2: w - 1, Y2: y1},
		frame[y0*w:(y1+1)*w],
	)
}

func (s *Scene) flushDone() {
	s.inFlight = false
}

func (s *Scene) markRows(y0, y1 int) {
	if y0 < 0 {
		y0 = 0
	}
	if max := s.sess.Height() - 1; y1 > max {
		y1 = max
	}
	if y1 < y0 {
		return
	}
	if !s.dirty {
		s.dirty = true
		s.dirtyY0 = y0
		s.dirtyY1 = y1
		return
	}
	if y0 < s.dirtyY0 {
		s.dirtyY0 = y0
	}
	if y1 > s.dirtyY1 {
		s.dirtyY1 = y1
	}
}

// labelBand returns the full-width row band the label occupies.
func (s *Scene) labelBand() (y0, y1 int) {
	n := len(splitLines(s.text))
	top := s.labelTop(n)
	return top - bandPad, top + n*s.lineHeight + bandPad
}

func (s *Scene) labelTop(lines int) int {
	top := (s.sess.Height() - lines*s.lineHeight) / 2
	if top < 0 {
		top = 0
	}
	return top
}

func (s *Scene) drawLabel() {
	if s.text == "" {
		return
	}
	lines := splitLines(s.text)
	w := s.sess.Width()
	top := s.labelTop(len(lines))

	d := &frameDisplayer{sess: s.sess}
	for i, line := range lines {
		if line == "" {
			continue
		}
		_, lw := tinyfont.LineWidth(s.font, line)
		x := (w - int(lw)) / 2
		if x < 0 {
			x = 0
		}
		baseline := top + i*s.lineHeight + s.lineHeight - baselineDrop
		tinyfont.WriteLine(d, s.font, int16(x), int16(baseline), line, s.fg)
	}
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// frameDisplayer lets tinyfont draw straight into the session frame.
type frameDisplayer struct {
	sess *display.Session
}

func (d *frameDisplayer) Size() (x, y int16) {
	return int16(d.sess.Width()), int16(d.sess.Height())
}

func (d *frameDisplayer) SetPixel(x, y int16, c color.RGBA) {
	w := d.sess.Width()
	h := d.sess.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}
	d.sess.Frame()[iy*w+ix] = display.RGB565From888(c.R, c.G, c.B)
}

func (d *frameDisplayer) Display() error { return nil }
