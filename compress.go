package rasterfx

import (
	"github.com/gogpu/rasterfx/internal/parallel"
	"github.com/gogpu/rasterfx/internal/wavelet"
)

// CompressLevels is the number of times the 2D Haar transform is applied
// before thresholding.
const CompressLevels = 3

// Compress performs lossy compression with the Haar wavelet transform and
// returns the reconstructed raster.
//
// Each channel is zero-padded to power-of-two sides, transformed
// CompressLevels times (each pass over the whole plane produced by the
// previous one), stripped of every coefficient whose magnitude is below
// threshold, inverse transformed the same number of times, then cropped,
// rounded to nearest and clamped. A threshold of zero or less reproduces
// the input up to rounding.
func Compress(r *Raster, threshold float64) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if r.Empty() {
		return newRaster(r.width, r.height), nil
	}

	out := emptyLike(r)
	var dropped [3]int
	_ = parallel.Each(3, func(c int) error {
		plane := wavelet.Pad(r.pix, r.width, r.height, c)
		dropped[c] = plane.Compress(CompressLevels, threshold)
		plane.Crop(out.pix, r.width, r.height, c)
		return nil
	})

	Logger().Debug("rasterfx: compress",
		"width", r.width, "height", r.height,
		"padded_w", wavelet.NextPowerOfTwo(r.width), "padded_h", wavelet.NextPowerOfTwo(r.height),
		"threshold", threshold, "dropped", dropped)
	return out, nil
}
