package rasterfx

import (
	"errors"
	"fmt"
)

// Errors returned by transform operations. Failures wrap one of these with
// detail; match them with errors.Is.
var (
	// ErrInvalidArgument is returned for out-of-range numeric parameters:
	// split percent outside [0,100], non-positive target dimensions,
	// a black point above the white point.
	ErrInvalidArgument = errors.New("rasterfx: invalid argument")

	// ErrDimensionMismatch is returned when rasters that must share a size do not.
	ErrDimensionMismatch = errors.New("rasterfx: dimension mismatch")

	// ErrIndexOutOfRange is returned for pixel access outside the raster bounds.
	ErrIndexOutOfRange = errors.New("rasterfx: index out of range")

	// ErrNullInput is returned when an operation is given a nil raster.
	ErrNullInput = errors.New("rasterfx: nil raster")
)

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// checkRaster reports ErrNullInput for a nil raster, naming the parameter.
func checkRaster(name string, r *Raster) error {
	if r == nil {
		return fmt.Errorf("%w: %s", ErrNullInput, name)
	}
	return nil
}

// checkSplit validates a split percentage for the named split-aware operations.
func checkSplit(percent int) error {
	if percent < 0 || percent > 100 {
		return invalidArgf("split percent %d outside [0,100]", percent)
	}
	return nil
}
