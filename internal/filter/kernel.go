package filter

import (
	"errors"
	"fmt"
)

// ErrBadKernel is returned for an empty or ragged kernel matrix.
var ErrBadKernel = errors.New("filter: malformed kernel")

// Kernel is a matrix of convolution weights stored row-major.
// The weight applied to the source pixel at (row+i-Rows/2, col+j-Rows/2)
// is Weights[i*Cols+j].
type Kernel struct {
	Rows    int
	Cols    int
	Weights []float64
}

// NewKernel builds a kernel from a nested matrix. All rows must have the same
// non-zero length. The weights are copied.
func NewKernel(m [][]float64) (Kernel, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return Kernel{}, fmt.Errorf("%w: empty matrix", ErrBadKernel)
	}
	rows, cols := len(m), len(m[0])
	weights := make([]float64, 0, rows*cols)
	for i, row := range m {
		if len(row) != cols {
			return Kernel{}, fmt.Errorf("%w: row %d has %d weights, want %d", ErrBadKernel, i, len(row), cols)
		}
		weights = append(weights, row...)
	}
	return Kernel{Rows: rows, Cols: cols, Weights: weights}, nil
}

// At returns the weight at row i, column j.
func (k Kernel) At(i, j int) float64 {
	return k.Weights[i*k.Cols+j]
}

// Offset returns the distance from the kernel's top-left weight to its
// center. The row offset is used on both axes.
func (k Kernel) Offset() int {
	return k.Rows / 2
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// BlurKernel returns the 3x3 Gaussian-style blur kernel.
func BlurKernel() Kernel {
	return Kernel{
		Rows: 3,
		Cols: 3,
		Weights: []float64{
			0.0625, 0.125, 0.0625,
			0.125, 0.25, 0.125,
			0.0625, 0.125, 0.0625,
		},
	}
}

// SharpenKernel returns the 5x5 unsharp kernel: -1/8 border, 1/4 inner ring,
// 1 at the center.
func SharpenKernel() Kernel {
	const (
		e = -1.0 / 8.0
		q = 1.0 / 4.0
	)
	return Kernel{
		Rows: 5,
		Cols: 5,
		Weights: []float64{
			e, e, e, e, e,
			e, q, q, q, e,
			e, q, 1, q, e,
			e, q, q, q, e,
			e, e, e, e, e,
		},
	}
}
