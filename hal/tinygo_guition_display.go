//go:build tinygo && baremetal && guition

package hal

import (
	"errors"
	"machine"
	"time"

	"guition/display"

	"tinygo.org/x/drivers"
)

// Guition JC3248W535 wiring, traced from the board schematic
// (JC3248W535-2). These must match the board exactly or the panel stays
// dark. The schematic clocks the controller at 40 MHz; bit-banged GPIO
// runs slower, which is fine for bring-up.
const (
	pinSCLK = machine.GPIO39
	pinD0   = machine.GPIO40
	pinD1   = machine.GPIO41
	pinD2   = machine.GPIO42
	pinD3   = machine.GPIO45
	pinCS   = machine.GPIO38
	pinDC   = machine.GPIO46 // unused by the QSPI command format
	pinRST  = machine.GPIO48
	pinBL   = machine.GPIO47
)

const (
	panelWidth  = 320
	panelHeight = 480
)

// AXS15231B command set (the subset bring-up needs).
const (
	cmdSleepOut     = 0x11
	cmdInvertOn     = 0x21
	cmdDisplayOn    = 0x29
	cmdColumnAddr   = 0x2A
	cmdRowAddr      = 0x2B
	cmdMemWrite     = 0x2C
	cmdMemWriteCont = 0x3C
	cmdMemAccess    = 0x36
	cmdPixelFormat  = 0x3A
	cmdBrightness   = 0x51
	cmdCtrlDisplay  = 0x53
)

// QSPI opcodes: 0x02 prefixes single-lane command writes, 0x32 prefixes
// quad-lane pixel data.
const (
	opCmdWrite   = 0x02
	opPixelWrite = 0x32
)

type axs15231b struct {
	sclk machine.Pin
	d0   machine.Pin
	d1   machine.Pin
	d2   machine.Pin
	d3   machine.Pin
	cs   machine.Pin
	rst  machine.Pin
	bl   machine.Pin

	win    display.Rect
	pushed int

	fill []uint16
}

var errBadWindow = errors.New("hal: window outside panel")

func initAXS15231B() (*axs15231b, error) {
	d := &axs15231b{
		sclk: pinSCLK,
		d0:   pinD0,
		d1:   pinD1,
		d2:   pinD2,
		d3:   pinD3,
		cs:   pinCS,
		rst:  pinRST,
		bl:   pinBL,
	}

	for _, p := range []machine.Pin{d.sclk, d.d0, d.d1, d.d2, d.d3, d.cs, d.rst, d.bl, pinDC} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	d.cs.High()
	d.sclk.Low()
	d.rst.High()
	d.bl.Low()

	d.reset()
	d.init()

	return d, nil
}

func (d *axs15231b) reset() {
	d.rst.Low()
	time.Sleep(10 * time.Millisecond)
	d.rst.High()
	time.Sleep(120 * time.Millisecond)
}

func (d *axs15231b) init() {
	d.cmd(cmdSleepOut)
	time.Sleep(120 * time.Millisecond)

	d.cmd(cmdPixelFormat, 0x55) // 16bpp
	d.cmd(cmdMemAccess, 0x00)
	d.cmd(cmdInvertOn)

	// Backlight control path on this panel runs through the controller.
	d.cmd(cmdCtrlDisplay, 0x24)
	d.cmd(cmdBrightness, 0xFF)

	d.cmd(cmdDisplayOn)
	time.Sleep(20 * time.Millisecond)
}

func (d *axs15231b) Size() (int, int) { return panelWidth, panelHeight }

func (d *axs15231b) SetWindow(r display.Rect) error {
	if r.Empty() || r.X1 < 0 || r.Y1 < 0 || r.X2 >= panelWidth || r.Y2 >= panelHeight {
		return errBadWindow
	}
	d.cmd(cmdColumnAddr,
		byte(r.X1>>8), byte(r.X1),
		byte(r.X2>>8), byte(r.X2),
	)
	d.cmd(cmdRowAddr,
		byte(r.Y1>>8), byte(r.Y1),
		byte(r.Y2>>8), byte(r.Y2),
	)
	d.win = r
	d.pushed = 0
	return nil
}

// PushRow transmits one scanline of samples already in panel byte order.
// The first row after SetWindow opens the write, later rows continue it.
func (d *axs15231b) PushRow(row []uint16) error {
	w := d.win.W()
	if w <= 0 || len(row) < w {
		return errBadWindow
	}
	c := byte(cmdMemWriteCont)
	if d.pushed == 0 {
		c = cmdMemWrite
	}
	d.pushed++
	d.pixels(c, row[:w])
	return nil
}

func (d *axs15231b) Fill(pix uint16) error {
	if d.fill == nil {
		d.fill = make([]uint16, panelWidth)
	}
	s := pix<<8 | pix>>8
	for i := range d.fill {
		d.fill[i] = s
	}

	if err := d.SetWindow(display.Rect{X1: 0, Y1: 0, X2: panelWidth - 1, Y2: panelHeight - 1}); err != nil {
		return err
	}
	for y := 0; y < panelHeight; y++ {
		if err := d.PushRow(d.fill); err != nil {
			return err
		}
	}
	return nil
}

// SetRotation programs MADCTL. Hardware rotation is unreliable on this
// panel revision; bring-up keeps rotation 0.
func (d *axs15231b) SetRotation(rot drivers.Rotation) error {
	var v byte
	switch rot {
	case drivers.Rotation0:
		v = 0x00
	case drivers.Rotation90:
		v = 0x60
	case drivers.Rotation180:
		v = 0xC0
	case drivers.Rotation270:
		v = 0xA0
	default:
		return ErrNotImplemented
	}
	d.cmd(cmdMemAccess, v)
	return nil
}

func (d *axs15231b) SetBacklight(on bool) {
	d.bl.Set(on)
}

// RowBuffer allocates the transfer scanline. ESP32-S3 internal SRAM is
// DMA-capable, so a plain allocation serves.
func (d *axs15231b) RowBuffer(pixels int) []uint16 {
	if pixels <= 0 {
		return nil
	}
	return make([]uint16, pixels)
}

// cmd sends a register write: opcode + command on one lane, then any
// arguments on the same lane.
func (d *axs15231b) cmd(c byte, args ...byte) {
	d.cs.Low()
	d.writeByte1(opCmdWrite)
	d.writeByte1(0x00)
	d.writeByte1(c)
	d.writeByte1(0x00)
	for _, a := range args {
		d.writeByte1(a)
	}
	d.cs.High()
}

// pixels sends a memory write burst: opcode + command on one lane, then
// the samples on all four lanes. Samples are pre-swapped, so the low byte
// goes on the wire first.
func (d *axs15231b) pixels(c byte, row []uint16) {
	d.cs.Low()
	d.writeByte1(opPixelWrite)
	d.writeByte1(0x00)
	d.writeByte1(c)
	d.writeByte1(0x00)
	for _, s := range row {
		d.writeByte4(byte(s))
		d.writeByte4(byte(s >> 8))
	}
	d.cs.High()
}

func (d *axs15231b) clock() {
	d.sclk.High()
	d.sclk.Low()
}

func (d *axs15231b) writeByte1(b byte) {
	for i := 7; i >= 0; i-- {
		d.d0.Set(b&(1<<uint(i)) != 0)
		d.clock()
	}
}

func (d *axs15231b) writeByte4(b byte) {
	d.setNibble(b >> 4)
	d.clock()
	d.setNibble(b)
	d.clock()
}

func (d *axs15231b) setNibble(n byte) {
	d.d3.Set(n&0x8 != 0)
	d.d2.Set(n&0x4 != 0)
	d.d1.Set(n&0x2 != 0)
	d.d0.Set(n&0x1 != 0)
}
