// Package rasterfx is a raster image transformation engine.
//
// # Overview
//
// rasterfx operates on [Raster], an immutable RGB buffer with 8 bits per
// channel. Every operation is a deterministic function that reads its
// inputs and returns a newly allocated Raster; nothing is modified in place,
// so operations can be chained and rasters shared between goroutines.
//
// # Quick Start
//
//	import "github.com/gogpu/rasterfx"
//
//	src, _ := rasterfx.FromRows([][]rasterfx.RGB{
//	    {{255, 0, 0}, {0, 255, 0}},
//	    {{0, 0, 255}, {255, 255, 255}},
//	})
//
//	flipped, _ := rasterfx.FlipHorizontal(src)
//	blurred, _ := rasterfx.Blur(flipped, 100)
//	small, _ := rasterfx.Downscale(blurred, 1, 1)
//
// # Operations
//
//   - Geometric and channel: FlipHorizontal, FlipVertical, VisualizeChannel,
//     SplitRGB, CombineRGB, Value, Intensity, Luma, AdjustBrightness, Downscale
//   - Convolution: ApplyFilter, ApplySplitFilter, Blur, Sharpen
//   - Tone: Sepia, Greyscale, LevelsAdjust
//   - Statistics: ComputeHistogram, RenderHistogram, HistogramImage, ColorCorrect
//   - Wavelet: Compress
//
// # Split Preview
//
// Operations taking a split percentage transform only the columns at or
// beyond [SplitColumn] and copy the rest, so the left part of the result
// shows the original for comparison. A split of 100 transforms the whole
// raster and 0 transforms nothing.
//
// # Errors
//
// Failures wrap one of [ErrInvalidArgument], [ErrDimensionMismatch],
// [ErrIndexOutOfRange] or [ErrNullInput]. Clamping channel values to
// [0, 255] is silent.
//
// # Architecture
//
// The package is organized into:
//   - Public API: Raster, Kernel, Histogram and the operations above
//   - internal/filter: convolution, color matrices, levels curve
//   - internal/wavelet: Haar transforms on float64 planes
//   - internal/parallel: deterministic row-band fan-out
//   - codec: PPM, PNG, JPEG, BMP, TIFF and WebP conversion
//   - script: the command interpreter used by cmd/rasterfx
package rasterfx
