//go:build !tinygo

package hal

import (
	"errors"
	"image"

	"guition/display"
)

// FrameImage returns a copy of the simulated panel contents. Only host
// HALs can be snapshotted.
func FrameImage(h HAL) (*image.RGBA, error) {
	hh, ok := h.(*hostHAL)
	if !ok {
		return nil, errors.New("hal: not a host HAL")
	}
	p := hh.panel

	raw := make([]byte, len(p.buf))
	p.snapshotRGB565(raw)

	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i+1 < len(raw); i += 2 {
		r, g, b := display.RGB888From565(uint16(raw[i]) | uint16(raw[i+1])<<8)
		j := (i / 2) * 4
		img.Pix[j+0] = r
		img.Pix[j+1] = g
		img.Pix[j+2] = b
		img.Pix[j+3] = 0xFF
	}
	return img, nil
}
