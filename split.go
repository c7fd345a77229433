package rasterfx

// SplitColumn returns the first column a split-aware operation transforms
// for a raster of the given width. percent is the share of the width,
// measured from the right edge, that receives the effect: 0 transforms
// nothing, 100 transforms every column, and 50 leaves the left half as a
// before/after preview.
//
// The boundary is width*(100-percent)/100, rounded toward zero, with percent
// first clamped to [0, 100]. Columns left of it are copied unchanged. Every
// split-aware operation in this package uses this helper.
func SplitColumn(width, percent int) int {
	percent = max(0, min(100, percent))
	return width * (100 - percent) / 100
}
