// Package filter implements the buffer-level pixel kernels behind the
// rasterfx transform operations:
//   - generic 2D convolution with zero padding
//   - 3x3 color matrices (sepia, greyscale)
//   - the three-point levels tone curve
//
// Every kernel reads a packed RGB source buffer (three bytes per pixel,
// row-major) and writes a destination buffer of the same size. Columns left
// of the split column are copied unchanged; the rest are transformed.
//
// Products are wrapped in explicit float64 conversions wherever the result
// is truncated or rounded, so they are never fused into FMA instructions.
package filter
