package hal

// RGB565 packs an 8-bit-per-channel color into the little-endian pixel
// format of Framebuffer.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB888 expands a packed pixel, scaling each channel to the full 0..255
// range.
func RGB888(p uint16) (r, g, b uint8) {
	return uint8(uint32(p>>11) * 255 / 31),
		uint8(uint32(p>>5&0x3F) * 255 / 63),
		uint8(uint32(p&0x1F) * 255 / 31)
}
