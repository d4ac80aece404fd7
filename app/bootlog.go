package app

import (
	"image/color"

	"guition/display"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// showBootLog replays the init progress on the panel through a terminal,
// so a board with a dead serial link still shows where bring-up got to.
func showBootLog(sess *display.Session, lines []string) error {
	d := &sessionDisplayer{sess: sess}
	term := tinyterm.NewTerminal(d)
	term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})

	for _, line := range lines {
		if _, err := term.Write([]byte(line + "\n")); err != nil {
			return err
		}
	}
	return d.Display()
}

// sessionDisplayer adapts the session frame to tinyterm's Displayer;
// Display flushes the whole frame.
type sessionDisplayer struct {
	sess *display.Session
}

func (d *sessionDisplayer) Size() (x, y int16) {
	return int16(d.sess.Width()), int16(d.sess.Height())
}

func (d *sessionDisplayer) SetPixel(x, y int16, c color.RGBA) {
	w := d.sess.Width()
	h := d.sess.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}
	d.sess.Frame()[iy*w+ix] = display.RGB565From888(c.R, c.G, c.B)
}

func (d *sessionDisplayer) Display() error {
	w := d.sess.Width()
	h := d.sess.Height()
	return d.sess.Flush(
		display.Rect{X1: 0, Y1: 0, X2: w - 1, Y2: h - 1},
		d.sess.Frame(),
	)
}

func (d *sessionDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	w := d.sess.Width()
	h := d.sess.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)

	pix := display.RGB565From888(c.R, c.G, c.B)
	frame := d.sess.Frame()
	for py := y0; py < y1; py++ {
		row := py * w
		for px := x0; px < x1; px++ {
			frame[row+px] = pix
		}
	}
	return nil
}

func (d *sessionDisplayer) SetScroll(line int16) {
	_ = line
}

func (d *sessionDisplayer) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
