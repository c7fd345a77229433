package rasterfx

import (
	"math/rand/v2"
	"testing"
)

// Test helper functions shared across rasterfx tests.

// solidRaster creates a raster filled with one color.
func solidRaster(t testing.TB, w, h int, c RGB) *Raster {
	t.Helper()
	pix := make([]uint8, w*h*3)
	for i := 0; i < len(pix); i += 3 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
	}
	r, err := FromPix(w, h, pix)
	if err != nil {
		t.Fatalf("FromPix() error = %v", err)
	}
	return r
}

// mustRows builds a raster from a literal grid.
func mustRows(t testing.TB, rows [][]RGB) *Raster {
	t.Helper()
	r, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	return r
}

// randomRaster creates a raster with reproducible pseudo-random pixels.
func randomRaster(t testing.TB, w, h int, seed uint64) *Raster {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pix := make([]uint8, w*h*3)
	for i := range pix {
		pix[i] = uint8(rng.IntN(256))
	}
	r, err := FromPix(w, h, pix)
	if err != nil {
		t.Fatalf("FromPix() error = %v", err)
	}
	return r
}

// mustPixel returns the pixel at (row, col) or fails the test.
func mustPixel(t testing.TB, r *Raster, row, col int) RGB {
	t.Helper()
	p, err := r.PixelAt(row, col)
	if err != nil {
		t.Fatalf("PixelAt(%d, %d) error = %v", row, col, err)
	}
	return p
}

// assertEqualRaster fails the test if the rasters differ, reporting the
// first differing pixel.
func assertEqualRaster(t testing.TB, got, want *Raster) {
	t.Helper()
	if got.Equal(want) {
		return
	}
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			if g, w := mustPixel(t, got, y, x), mustPixel(t, want, y, x); g != w {
				t.Fatalf("pixel(%d, %d) = %v, want %v", y, x, g, w)
			}
		}
	}
}

// absDiff returns |a-b| for channel values.
func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
