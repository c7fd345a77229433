package rasterfx

import (
	"math"

	"github.com/gogpu/rasterfx/internal/parallel"
)

// FlipHorizontal mirrors the raster left to right.
func FlipHorizontal(r *Raster) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	out := emptyLike(r)
	w := r.width
	for y := 0; y < r.height; y++ {
		row := y * w * 3
		for x := 0; x < w; x++ {
			copy(out.pix[row+x*3:row+x*3+3], r.pix[row+(w-1-x)*3:])
		}
	}
	return out, nil
}

// FlipVertical mirrors the raster top to bottom.
func FlipVertical(r *Raster) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	out := emptyLike(r)
	stride := r.width * 3
	for y := 0; y < r.height; y++ {
		src := (r.height - 1 - y) * stride
		copy(out.pix[y*stride:(y+1)*stride], r.pix[src:src+stride])
	}
	return out, nil
}

// Downscale resamples the raster to newWidth x newHeight with bilinear
// interpolation. Destination pixel (x, y) samples the source at
// (x*oldW/newW, y*oldH/newH) and blends the four surrounding pixels, with
// neighbors clamped to the source bounds. Results are truncated.
//
// Despite the name, the target may also be larger than the source.
func Downscale(r *Raster, newWidth, newHeight int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if newWidth <= 0 || newHeight <= 0 {
		return nil, invalidArgf("target size %dx%d must be positive", newWidth, newHeight)
	}
	if r.Empty() {
		return newRaster(0, 0), nil
	}

	oldW, oldH := r.width, r.height
	Logger().Debug("rasterfx: downscale",
		"from_w", oldW, "from_h", oldH, "to_w", newWidth, "to_h", newHeight)

	out := newRaster(newWidth, newHeight)
	parallel.Rows(newHeight, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			sy := float64(y) * float64(oldH) / float64(newHeight)
			top, bottom, ty := neighbors(sy, oldH)
			for x := 0; x < newWidth; x++ {
				sx := float64(x) * float64(oldW) / float64(newWidth)
				left, right, tx := neighbors(sx, oldW)

				p00 := r.offset(top, left)
				p10 := r.offset(top, right)
				p01 := r.offset(bottom, left)
				p11 := r.offset(bottom, right)
				o := out.offset(y, x)
				for c := 0; c < 3; c++ {
					v := lerp2D(r.pix[p00+c], r.pix[p10+c], r.pix[p01+c], r.pix[p11+c], tx, ty)
					out.pix[o+c] = clamp255(int(v))
				}
			}
		}
	})
	return out, nil
}

// neighbors returns the floor and ceil sample indices around s, clamped to
// [0, n-1], and the fractional weight of the upper one.
func neighbors(s float64, n int) (lo, hi int, t float64) {
	lo = int(math.Floor(s))
	hi = int(math.Ceil(s))
	t = s - float64(lo)
	lo = min(lo, n-1)
	hi = min(hi, n-1)
	return lo, hi, t
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return float64(a*(1-t)) + float64(b*t)
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11 uint8, tx, ty float64) float64 {
	v0 := lerp(float64(v00), float64(v10), tx)
	v1 := lerp(float64(v01), float64(v11), tx)
	return lerp(v0, v1, ty)
}
