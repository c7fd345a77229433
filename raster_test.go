package rasterfx

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	r, err := New(4, 3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("New() size = %dx%d, want 4x3", r.Width(), r.Height())
	}
	if got := mustPixel(t, r, 2, 3); got != (RGB{}) {
		t.Errorf("New() pixel = %v, want black", got)
	}
}

func TestNewEmptyAndNegative(t *testing.T) {
	r, err := New(0, 0)
	if err != nil {
		t.Fatalf("New(0, 0) error = %v", err)
	}
	if !r.Empty() {
		t.Error("New(0, 0).Empty() = false, want true")
	}
	if _, err := New(-1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("New(-1, 2) error = %v, want ErrInvalidArgument", err)
	}
}

func TestFromPixCopies(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	r, err := FromPix(2, 1, pix)
	if err != nil {
		t.Fatalf("FromPix() error = %v", err)
	}
	pix[0] = 99
	if got := mustPixel(t, r, 0, 0); got != (RGB{1, 2, 3}) {
		t.Errorf("raster aliases caller data: pixel = %v", got)
	}

	out := r.Pix()
	out[3] = 99
	if got := mustPixel(t, r, 0, 1); got != (RGB{4, 5, 6}) {
		t.Errorf("Pix() aliases raster data: pixel = %v", got)
	}
}

func TestFromPixLengthMismatch(t *testing.T) {
	if _, err := FromPix(2, 2, make([]uint8, 11)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FromPix() error = %v, want ErrInvalidArgument", err)
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]RGB{{{}, {}}, {{}}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("FromRows() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestPixelAtOutOfRange(t *testing.T) {
	r := solidRaster(t, 3, 2, RGB{1, 1, 1})
	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		if _, err := r.PixelAt(pos[0], pos[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("PixelAt(%d, %d) error = %v, want ErrIndexOutOfRange", pos[0], pos[1], err)
		}
	}
	empty, _ := New(0, 0)
	if _, err := empty.PixelAt(0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("empty.PixelAt(0, 0) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestWithPixel(t *testing.T) {
	r := solidRaster(t, 2, 2, RGB{10, 20, 30})
	next, err := r.WithPixel(1, 0, RGB{1, 2, 3})
	if err != nil {
		t.Fatalf("WithPixel() error = %v", err)
	}
	if got := mustPixel(t, next, 1, 0); got != (RGB{1, 2, 3}) {
		t.Errorf("new pixel = %v, want {1 2 3}", got)
	}
	if got := mustPixel(t, r, 1, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("WithPixel modified its receiver: pixel = %v", got)
	}
	if _, err := r.WithPixel(2, 0, RGB{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("WithPixel(2, 0) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestEqualAndHash(t *testing.T) {
	a := randomRaster(t, 5, 4, 1)
	b := a.Clone()

	if !a.Equal(b) {
		t.Error("clone is not Equal to original")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal rasters have different hashes")
	}

	c, _ := a.WithPixel(0, 0, RGB{255 - mustPixel(t, a, 0, 0).R, 0, 0})
	if a.Equal(c) {
		t.Error("rasters with different pixels are Equal")
	}

	// Same bytes, different shape.
	wide, _ := FromPix(6, 1, make([]uint8, 18))
	tall, _ := FromPix(1, 6, make([]uint8, 18))
	if wide.Equal(tall) {
		t.Error("6x1 and 1x6 rasters are Equal")
	}
	if wide.Hash() == tall.Hash() {
		t.Error("6x1 and 1x6 rasters share a hash")
	}

	var nilRaster *Raster
	if !nilRaster.Equal(nil) {
		t.Error("nil.Equal(nil) = false, want true")
	}
	if a.Equal(nil) {
		t.Error("a.Equal(nil) = true, want false")
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := randomRaster(t, 7, 3, 2)
	img := src.ToImage()

	if img.Bounds() != image.Rect(0, 0, 7, 3) {
		t.Fatalf("ToImage() bounds = %v", img.Bounds())
	}
	if a := img.NRGBAAt(2, 1).A; a != 0xff {
		t.Errorf("ToImage() alpha = %d, want 255", a)
	}
	assertEqualRaster(t, FromImage(img), src)
}

func TestFromImageGeneric(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 12, 11))
	img.SetGray(11, 10, color.Gray{Y: 77})

	r := FromImage(img)
	if r.Width() != 2 || r.Height() != 1 {
		t.Fatalf("FromImage() size = %dx%d, want 2x1", r.Width(), r.Height())
	}
	if got := mustPixel(t, r, 0, 1); got != (RGB{77, 77, 77}) {
		t.Errorf("pixel = %v, want {77 77 77}", got)
	}
}

func TestChannelString(t *testing.T) {
	if Red.String() != "red" || Green.String() != "green" || Blue.String() != "blue" {
		t.Error("unexpected channel names")
	}
	if got := Channel(7).String(); got != "Channel(7)" {
		t.Errorf("Channel(7).String() = %q", got)
	}
}
