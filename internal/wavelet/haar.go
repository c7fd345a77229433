// Package wavelet implements the orthonormal Haar wavelet transform on
// float64 planes, as used by the rasterfx lossy compressor.
//
// A 1D forward transform repeatedly halves the working length: each pair
// (a, b) becomes the approximation (a+b)/√2 in the lower half and the detail
// (a-b)/√2 in the upper half, until one approximation remains. The inverse
// doubles back up from length 1. Lengths must be powers of two.
package wavelet

import (
	"math"
	"math/bits"
)

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Forward1D applies the full-depth forward Haar transform to data in place.
// scratch must be at least len(data) long.
func Forward1D(data, scratch []float64) {
	for n := len(data); n > 1; n /= 2 {
		half := n / 2
		for i := 0; i < half; i++ {
			a, b := data[2*i], data[2*i+1]
			scratch[i] = (a + b) / math.Sqrt2
			scratch[half+i] = (a - b) / math.Sqrt2
		}
		copy(data[:n], scratch[:n])
	}
}

// Inverse1D undoes Forward1D in place. scratch must be at least len(data) long.
func Inverse1D(data, scratch []float64) {
	for n := 1; n < len(data); n *= 2 {
		for i := 0; i < n; i++ {
			a, d := data[i], data[n+i]
			scratch[2*i] = (a + d) / math.Sqrt2
			scratch[2*i+1] = (a - d) / math.Sqrt2
		}
		copy(data[:2*n], scratch[:2*n])
	}
}
