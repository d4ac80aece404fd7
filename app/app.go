// Package app runs the bring-up sequence: panel, buffers, session, scene,
// then hands back a step function the platform loop drives.
package app

import (
	"errors"
	"image/color"
	"strconv"

	"guition/display"
	"guition/hal"
	"guition/internal/buildinfo"
	"guition/scene"
)

// Config selects the bring-up mode.
type Config struct {
	// ColorCycle fills the whole panel red/green/blue in a loop instead
	// of building the scene (the first smoke test to run on new boards).
	ColorCycle bool

	// BootLog prints the init progress on the panel before the scene
	// appears.
	BootLog bool
}

var ErrNoPanel = errors.New("app: HAL provides no panel")

// New runs the bring-up sequence and returns the per-tick step function.
// Initialization failures come back as errors; the caller decides whether
// to retry or stop.
func New(h hal.HAL, cfg Config) (func() error, error) {
	log := h.Logger()
	boot := []string{"guition 3.5\" bring-up (" + buildinfo.Short() + ")"}
	log.WriteLineString(boot[0])

	disp := h.Display()
	if disp == nil {
		return nil, ErrNoPanel
	}
	panel := disp.Panel()
	if panel == nil {
		log.WriteLineString("fatal: " + ErrNoPanel.Error())
		return nil, ErrNoPanel
	}
	w, ht := panel.Size()
	boot = bootLine(log, boot, "panel "+strconv.Itoa(w)+"x"+strconv.Itoa(ht)+" ready")
	panel.SetBacklight(true)

	if cfg.ColorCycle {
		boot = bootLine(log, boot, "starting color cycle")
		return newColorCycle(log, panel, h.Time()), nil
	}

	sess, err := display.New(panel, display.Config{
		Width:    w,
		Height:   ht,
		AllocRow: panel.RowBuffer,
	})
	if err != nil {
		log.WriteLineString("fatal: " + err.Error())
		return nil, err
	}
	if sess.UsingFallback() {
		boot = bootLine(log, boot, "warning: row buffer allocation failed, using static fallback")
	} else {
		boot = bootLine(log, boot, "row buffer allocated ("+strconv.Itoa(2*w)+" bytes)")
	}

	if cfg.BootLog {
		if err := showBootLog(sess, boot); err != nil {
			log.WriteLineString("boot log skipped: " + err.Error())
		}
	}

	sc := scene.New(sess)
	sc.SetBackground(color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF})
	sc.SetLabel(
		"Hello, Guition 3.5\"\n\nAXS15231B over QSPI\n"+buildinfo.Short(),
		color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	)
	log.WriteLineString("scene built, starting render loop")

	return sc.Step, nil
}

func bootLine(log hal.Logger, boot []string, line string) []string {
	log.WriteLineString(line)
	return append(boot, line)
}

const fillPeriodMs = 2000

var cycleColors = []struct {
	name string
	pix  uint16
}{
	{"RED", 0xF800},
	{"GREEN", 0x07E0},
	{"BLUE", 0x001F},
}

type cycler struct {
	log   hal.Logger
	panel hal.Panel
	ticks <-chan uint64

	ms   uint64
	next uint64
	idx  int
}

func newColorCycle(log hal.Logger, panel hal.Panel, t hal.Time) func() error {
	c := &cycler{log: log, panel: panel}
	if t != nil {
		c.ticks = t.Ticks()
	}
	return c.step
}

func (c *cycler) step() error {
	for drained := false; !drained; {
		select {
		case <-c.ticks:
			c.ms++
		default:
			drained = true
		}
	}
	if c.ms < c.next {
		return nil
	}
	c.next = c.ms + fillPeriodMs

	e := cycleColors[c.idx%len(cycleColors)]
	c.idx++
	c.log.WriteLineString("filling screen " + e.name)
	return c.panel.Fill(e.pix)
}
