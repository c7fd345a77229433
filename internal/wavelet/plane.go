package wavelet

import (
	"math"

	"github.com/gogpu/rasterfx/internal/parallel"
)

// Plane is a single-channel grid of coefficients stored row-major.
// Width and Height must be powers of two before transforming.
type Plane struct {
	Width  int
	Height int
	Data   []float64
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// Pad copies channel c of a packed RGB buffer (width x height) into a new
// plane whose sides are the next powers of two. Extra cells are zero.
func Pad(pix []uint8, width, height, c int) *Plane {
	p := NewPlane(NextPowerOfTwo(width), NextPowerOfTwo(height))
	for y := 0; y < height; y++ {
		row := p.Data[y*p.Width:]
		for x := 0; x < width; x++ {
			row[x] = float64(pix[(y*width+x)*3+c])
		}
	}
	return p
}

// Crop writes the top-left width x height region of the plane into channel c
// of a packed RGB buffer, rounding half up and clamping to [0, 255].
func (p *Plane) Crop(pix []uint8, width, height, c int) {
	for y := 0; y < height; y++ {
		row := p.Data[y*p.Width:]
		for x := 0; x < width; x++ {
			pix[(y*width+x)*3+c] = roundClamp(row[x])
		}
	}
}

// Forward2D transforms every row, then every column of the result.
func (p *Plane) Forward2D() {
	p.rows(Forward1D)
	p.cols(Forward1D)
}

// Inverse2D undoes Forward2D: columns first, then rows.
func (p *Plane) Inverse2D() {
	p.cols(Inverse1D)
	p.rows(Inverse1D)
}

// Compress applies Forward2D levels times, zeroes coefficients below
// threshold, then applies Inverse2D levels times. Each level transforms the
// whole plane produced by the previous one. It returns the number of
// coefficients dropped.
func (p *Plane) Compress(levels int, threshold float64) int {
	for range levels {
		p.Forward2D()
	}
	zeroed := p.Threshold(threshold)
	for range levels {
		p.Inverse2D()
	}
	return zeroed
}

// Threshold zeroes every coefficient whose magnitude is below t and returns
// how many were zeroed.
func (p *Plane) Threshold(t float64) int {
	zeroed := 0
	for i, v := range p.Data {
		if math.Abs(v) < t {
			if v != 0 {
				zeroed++
			}
			p.Data[i] = 0
		}
	}
	return zeroed
}

// NonZero returns the number of non-zero coefficients.
func (p *Plane) NonZero() int {
	n := 0
	for _, v := range p.Data {
		if v != 0 {
			n++
		}
	}
	return n
}

func (p *Plane) rows(fn func(data, scratch []float64)) {
	parallel.Rows(p.Height, func(y0, y1 int) {
		scratch := make([]float64, p.Width)
		for y := y0; y < y1; y++ {
			fn(p.Data[y*p.Width:(y+1)*p.Width], scratch)
		}
	})
}

func (p *Plane) cols(fn func(data, scratch []float64)) {
	parallel.Rows(p.Width, func(x0, x1 int) {
		col := make([]float64, p.Height)
		scratch := make([]float64, p.Height)
		for x := x0; x < x1; x++ {
			for y := range col {
				col[y] = p.Data[y*p.Width+x]
			}
			fn(col, scratch)
			for y, v := range col {
				p.Data[y*p.Width+x] = v
			}
		}
	})
}

func roundClamp(v float64) uint8 {
	r := math.Floor(v + 0.5)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
