package hal

import (
	"errors"

	"guition/display"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Panel is the panel-driver contract: a row sink plus the handful of
// whole-panel operations bring-up needs. Implemented by the AXS15231B
// driver on hardware and by the simulated panel on the host.
type Panel interface {
	display.RowSink

	// Size returns the panel dimensions in pixels.
	Size() (width, height int)

	// Fill paints the whole panel one native-endian RGB565 color.
	Fill(pix uint16) error

	// SetRotation programs the controller's memory access order.
	SetRotation(rot drivers.Rotation) error

	// SetBacklight switches the backlight pin.
	SetBacklight(on bool)

	// RowBuffer returns a transfer buffer of at least the given pixel
	// count from memory the panel can push from (DMA-capable on
	// hardware), or nil when no such memory is available.
	RowBuffer(pixels int) []uint16
}

// Display provides access to the panel (if one initialized).
type Display interface {
	Panel() Panel
}

// Time provides a base tick stream.
//
// The tick duration is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the bring-up code and the
// outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
}
