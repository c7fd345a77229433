package rasterfx

import "github.com/gogpu/rasterfx/internal/filter"

// Sepia applies the sepia tone matrix to the columns selected by
// splitPercent, which must lie in [0, 100]. Channel results are truncated
// and capped at 255.
func Sepia(r *Raster, splitPercent int) (*Raster, error) {
	return applyMatrix(r, filter.SepiaMatrix(), splitPercent)
}

// Greyscale replaces the selected columns with their luma,
// floor(0.2126R + 0.7152G + 0.0722B), in all three channels.
func Greyscale(r *Raster, splitPercent int) (*Raster, error) {
	return applyMatrix(r, filter.GreyscaleMatrix(), splitPercent)
}

func applyMatrix(r *Raster, m filter.ColorMatrix, splitPercent int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if err := checkSplit(splitPercent); err != nil {
		return nil, err
	}
	out := emptyLike(r)
	m.Apply(out.pix, r.pix, r.width, r.height, SplitColumn(r.width, splitPercent))
	return out, nil
}

// LevelsAdjust maps every channel of the selected columns through a
// piecewise-linear tone curve with black point b, mid point m and white
// point w:
//
//	v <= b      -> 0
//	b < v <= m  -> 0..128 with slope 128/(m-b)
//	m < v <= w  -> 128..255 with slope 127/(w-m)
//	v > w       -> 255
//
// Values are truncated. b=m=w=0 maps everything to 0 and b=m=w=255 maps
// everything to 255. splitPercent must lie in [0, 100] and b must not exceed w.
func LevelsAdjust(r *Raster, b, m, w, splitPercent int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if err := checkSplit(splitPercent); err != nil {
		return nil, err
	}
	if b > w {
		return nil, invalidArgf("black point %d above white point %d", b, w)
	}
	out := emptyLike(r)
	filter.NewLevels(b, m, w).Apply(out.pix, r.pix, r.width, r.height, SplitColumn(r.width, splitPercent))
	return out, nil
}
