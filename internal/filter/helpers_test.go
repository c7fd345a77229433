package filter

// Test helper functions shared across filter tests.

// solidBuffer returns a packed RGB buffer filled with one color.
func solidBuffer(w, h int, r, g, b uint8) []uint8 {
	buf := make([]uint8, w*h*3)
	for i := 0; i < len(buf); i += 3 {
		buf[i+0] = r
		buf[i+1] = g
		buf[i+2] = b
	}
	return buf
}

// rampBuffer returns a buffer whose channels vary with position so that
// misplaced pixels show up in comparisons.
func rampBuffer(w, h int) []uint8 {
	buf := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			buf[i+0] = uint8((x * 37) % 256)
			buf[i+1] = uint8((y * 53) % 256)
			buf[i+2] = uint8((x*11 + y*7) % 256)
		}
	}
	return buf
}

// pixel returns the RGB triple at (x, y).
func pixel(buf []uint8, w, x, y int) [3]uint8 {
	i := (y*w + x) * 3
	return [3]uint8{buf[i], buf[i+1], buf[i+2]}
}
