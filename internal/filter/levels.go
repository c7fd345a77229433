package filter

import "github.com/gogpu/rasterfx/internal/parallel"

// Levels is a per-channel tone curve precomputed as a lookup table.
type Levels [256]uint8

// NewLevels builds the three-point levels curve for black point b, mid point
// m and white point w:
//
//	v <= b      -> 0
//	b < v <= m  -> 128*(v-b)/(m-b)
//	m < v <= w  -> 128 + 127*(v-m)/(w-m)
//	v > w       -> 255
//
// Ramp values are truncated. b=m=w=0 maps everything to 0 and b=m=w=255
// maps everything to 255.
func NewLevels(b, m, w int) *Levels {
	var l Levels
	for v := range l {
		l[v] = levelOf(v, b, m, w)
	}
	return &l
}

func levelOf(v, b, m, w int) uint8 {
	switch {
	case b == 255 && m == 255 && w == 255:
		return 255
	case b == 0 && m == 0 && w == 0:
		return 0
	case v <= b:
		return 0
	case v <= m:
		// Reachable only when m > b.
		slope := 128.0 / float64(m-b)
		return truncClamp(float64(slope * float64(v-b)))
	case v <= w:
		// Reachable only when w > m.
		slope := 127.0 / float64(w-m)
		return truncClamp(128 + float64(slope*float64(v-m)))
	default:
		return 255
	}
}

// Apply maps every channel at or beyond split through the curve.
func (l *Levels) Apply(dst, src []uint8, width, height, split int) {
	if width <= 0 || height <= 0 {
		return
	}
	split = clampInt(split, 0, width)

	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowStart := y * width * 3
			copy(dst[rowStart:rowStart+split*3], src[rowStart:rowStart+split*3])
			for i := rowStart + split*3; i < rowStart+width*3; i++ {
				dst[i] = l[src[i]]
			}
		}
	})
}
