package rasterfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/rasterfx/internal/filter"
)

// Kernel is a matrix of convolution weights. The kernel's center,
// (Rows()/2, Rows()/2), is aligned with the target pixel.
type Kernel struct {
	k filter.Kernel
}

// NewKernel builds a kernel from a rectangular, non-empty weight matrix.
// The weights are copied.
func NewKernel(weights [][]float64) (Kernel, error) {
	k, err := filter.NewKernel(weights)
	if err != nil {
		if errors.Is(err, filter.ErrBadKernel) {
			return Kernel{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return Kernel{}, err
	}
	return Kernel{k: k}, nil
}

// BlurKernel returns the 3x3 Gaussian-style kernel used by Blur.
func BlurKernel() Kernel { return Kernel{k: filter.BlurKernel()} }

// SharpenKernel returns the 5x5 unsharp kernel used by Sharpen.
func SharpenKernel() Kernel { return Kernel{k: filter.SharpenKernel()} }

// Rows returns the kernel height.
func (k Kernel) Rows() int { return k.k.Rows }

// Cols returns the kernel width.
func (k Kernel) Cols() int { return k.k.Cols }

// At returns the weight at row i, column j.
func (k Kernel) At(i, j int) float64 { return k.k.At(i, j) }

// ApplyFilter convolves every pixel of r with k. Samples outside the raster
// count as zero. Results are rounded to nearest and clamped to [0, 255].
func ApplyFilter(r *Raster, k Kernel) (*Raster, error) {
	return ApplySplitFilter(r, k, 100)
}

// ApplySplitFilter convolves the columns at or beyond
// SplitColumn(width, splitPercent) and copies the rest. splitPercent is
// not validated: values at or below 0 leave r unchanged, values at or above
// 100 filter everything. Neighborhoods of filtered pixels still read from
// the copied columns.
func ApplySplitFilter(r *Raster, k Kernel, splitPercent int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if k.k.Rows == 0 || k.k.Cols == 0 {
		return nil, invalidArgf("empty kernel")
	}
	out := emptyLike(r)
	filter.Convolve(out.pix, r.pix, r.width, r.height, SplitColumn(r.width, splitPercent), k.k)
	return out, nil
}

// Blur applies the 3x3 blur kernel to the columns selected by splitPercent,
// which must lie in [0, 100].
func Blur(r *Raster, splitPercent int) (*Raster, error) {
	if err := checkSplit(splitPercent); err != nil {
		return nil, err
	}
	return ApplySplitFilter(r, BlurKernel(), splitPercent)
}

// Sharpen applies the 5x5 sharpen kernel to the columns selected by
// splitPercent, which must lie in [0, 100].
func Sharpen(r *Raster, splitPercent int) (*Raster, error) {
	if err := checkSplit(splitPercent); err != nil {
		return nil, err
	}
	return ApplySplitFilter(r, SharpenKernel(), splitPercent)
}
