package filter

import (
	"math"

	"github.com/gogpu/rasterfx/internal/parallel"
)

// Convolve applies k to the packed RGB buffer src (width x height) and writes
// the result to dst, which must have the same length as src.
//
// Columns below split are copied from src unchanged. For the remaining
// columns every channel is the weighted sum of its neighborhood, where
// samples outside the image contribute zero. Sums are rounded half up and
// clamped to [0, 255].
//
// split may be negative (everything is filtered) or beyond width (nothing is).
func Convolve(dst, src []uint8, width, height, split int, k Kernel) {
	if width <= 0 || height <= 0 {
		return
	}
	split = clampInt(split, 0, width)
	offset := k.Offset()

	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowStart := y * width * 3
			copy(dst[rowStart:rowStart+split*3], src[rowStart:rowStart+split*3])

			for x := split; x < width; x++ {
				var sr, sg, sb float64
				for ki := 0; ki < k.Rows; ki++ {
					sy := y + ki - offset
					if sy < 0 || sy >= height {
						continue
					}
					for kj := 0; kj < k.Cols; kj++ {
						sx := x + kj - offset
						if sx < 0 || sx >= width {
							continue
						}
						w := k.Weights[ki*k.Cols+kj]
						i := (sy*width + sx) * 3
						sr += float64(float64(src[i+0]) * w)
						sg += float64(float64(src[i+1]) * w)
						sb += float64(float64(src[i+2]) * w)
					}
				}
				o := rowStart + x*3
				dst[o+0] = roundClamp(sr)
				dst[o+1] = roundClamp(sg)
				dst[o+2] = roundClamp(sb)
			}
		}
	})
}

// roundClamp rounds half up and clamps to [0, 255].
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

// truncClamp truncates toward zero and clamps to [0, 255].
func truncClamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
