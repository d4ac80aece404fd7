package display

// RGB565From888 packs 8-bit channels into a native-endian RGB565 sample.
func RGB565From888(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}

// RGB888From565 expands a native-endian RGB565 sample back to 8-bit
// channels, scaling so full-range components map to 0xFF.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
