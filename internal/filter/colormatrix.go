package filter

import "github.com/gogpu/rasterfx/internal/parallel"

// ColorMatrix is a 3x3 color transformation applied to each pixel:
//
//	[R']   [m0 m1 m2]   [R]
//	[G'] = [m3 m4 m5] * [G]
//	[B']   [m6 m7 m8]   [B]
//
// Results are truncated toward zero and clamped to [0, 255].
type ColorMatrix [9]float64

// Luma weights (Rec. 709).
const (
	LumR = 0.2126
	LumG = 0.7152
	LumB = 0.0722
)

// IdentityMatrix returns a matrix that passes colors through unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// SepiaMatrix returns the classic sepia tone matrix.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix{
		0.393, 0.769, 0.189,
		0.349, 0.686, 0.168,
		0.272, 0.534, 0.131,
	}
}

// GreyscaleMatrix returns a matrix that writes the luma of each pixel to all
// three channels.
func GreyscaleMatrix() ColorMatrix {
	return ColorMatrix{
		LumR, LumG, LumB,
		LumR, LumG, LumB,
		LumR, LumG, LumB,
	}
}

// Transform applies the matrix to a single color.
func (m *ColorMatrix) Transform(r, g, b uint8) (uint8, uint8, uint8) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	nr := float64(m[0]*fr) + float64(m[1]*fg) + float64(m[2]*fb)
	ng := float64(m[3]*fr) + float64(m[4]*fg) + float64(m[5]*fb)
	nb := float64(m[6]*fr) + float64(m[7]*fg) + float64(m[8]*fb)
	return truncClamp(nr), truncClamp(ng), truncClamp(nb)
}

// Apply transforms columns at or beyond split of the packed RGB buffer src
// into dst. Columns below split are copied.
func (m *ColorMatrix) Apply(dst, src []uint8, width, height, split int) {
	if width <= 0 || height <= 0 {
		return
	}
	split = clampInt(split, 0, width)

	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowStart := y * width * 3
			copy(dst[rowStart:rowStart+split*3], src[rowStart:rowStart+split*3])
			for x := split; x < width; x++ {
				i := rowStart + x*3
				dst[i+0], dst[i+1], dst[i+2] = m.Transform(src[i+0], src[i+1], src[i+2])
			}
		}
	})
}
