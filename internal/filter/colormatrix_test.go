package filter

import (
	"bytes"
	"testing"
)

func TestIdentityMatrix(t *testing.T) {
	m := IdentityMatrix()
	src := rampBuffer(6, 4)
	dst := make([]uint8, len(src))

	m.Apply(dst, src, 6, 4, 0)

	if !bytes.Equal(dst, src) {
		t.Error("identity matrix changed the buffer")
	}
}

func TestSepiaTransform(t *testing.T) {
	m := SepiaMatrix()
	tests := []struct {
		name string
		in   [3]uint8
		want [3]uint8
	}{
		{"black", [3]uint8{0, 0, 0}, [3]uint8{0, 0, 0}},
		{"white saturates", [3]uint8{255, 255, 255}, [3]uint8{255, 255, 238}},
		// 0.393*100+0.769*50+0.189*20 = 81.53; 0.349*100+0.686*50+0.168*20 = 72.56;
		// 0.272*100+0.534*50+0.131*20 = 56.52
		{"mixed", [3]uint8{100, 50, 20}, [3]uint8{81, 72, 56}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := m.Transform(tt.in[0], tt.in[1], tt.in[2])
			if got := [3]uint8{r, g, b}; got != tt.want {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGreyscaleTransform(t *testing.T) {
	m := GreyscaleMatrix()
	// 0.2126*200 + 0.7152*100 + 0.0722*50 = 42.52 + 71.52 + 3.61 = 117.65
	r, g, b := m.Transform(200, 100, 50)
	if r != 117 || g != 117 || b != 117 {
		t.Errorf("Transform(200, 100, 50) = (%d, %d, %d), want all 117", r, g, b)
	}
	// The weights sum to 1 but the float sum for white lands just below 255.
	r, g, b = m.Transform(255, 255, 255)
	if r != 254 || g != 254 || b != 254 {
		t.Errorf("Transform(white) = (%d, %d, %d), want all 254", r, g, b)
	}
}

func TestColorMatrixApplySplit(t *testing.T) {
	const w, h = 10, 3
	m := SepiaMatrix()
	src := rampBuffer(w, h)
	dst := make([]uint8, len(src))

	m.Apply(dst, src, w, h, 4)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in := pixel(src, w, x, y)
			want := in
			if x >= 4 {
				r, g, b := m.Transform(in[0], in[1], in[2])
				want = [3]uint8{r, g, b}
			}
			if got := pixel(dst, w, x, y); got != want {
				t.Errorf("pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorMatrixApplyEmpty(t *testing.T) {
	m := SepiaMatrix()
	m.Apply(nil, nil, 0, 0, 50)
}
