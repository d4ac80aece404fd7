package display

import "testing"

func TestRGB565From888(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0x00, 0x00, 0xF800},
		{0x00, 0xFF, 0x00, 0x07E0},
		{0x00, 0x00, 0xFF, 0x001F},
		{0x22, 0x22, 0x22, 0x2104},
	}
	for _, c := range cases {
		if got := RGB565From888(c.r, c.g, c.b); got != c.want {
			t.Errorf("RGB565From888(%#02x, %#02x, %#02x) = %#04x, want %#04x",
				c.r, c.g, c.b, got, c.want)
		}
	}
}

func TestRGB888From565FullRange(t *testing.T) {
	// Full-range components must expand back to 0xFF, not 0xF8/0xFC.
	for _, c := range []struct {
		pix     uint16
		r, g, b uint8
	}{
		{0x0000, 0x00, 0x00, 0x00},
		{0xFFFF, 0xFF, 0xFF, 0xFF},
		{0xF800, 0xFF, 0x00, 0x00},
		{0x07E0, 0x00, 0xFF, 0x00},
		{0x001F, 0x00, 0x00, 0xFF},
	} {
		r, g, b := RGB888From565(c.pix)
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("RGB888From565(%#04x) = (%#02x, %#02x, %#02x), want (%#02x, %#02x, %#02x)",
				c.pix, r, g, b, c.r, c.g, c.b)
		}
	}
}
