package codec

// PPMFormat selects the PPM variant written by Encode.
type PPMFormat uint8

const (
	// PPMPlain writes ASCII "P3" files, one pixel per line.
	PPMPlain PPMFormat = iota

	// PPMRaw writes binary "P6" files.
	PPMRaw
)

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 90

// Option configures encoding.
//
// Example:
//
//	err := codec.Save("out.ppm", r, codec.WithPPMFormat(codec.PPMRaw))
type Option func(*options)

type options struct {
	jpegQuality int
	ppmFormat   PPMFormat
}

func defaultOptions() options {
	return options{
		jpegQuality: DefaultJPEGQuality,
		ppmFormat:   PPMPlain,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithJPEGQuality sets the JPEG quality (1-100). Values outside the range
// are clamped.
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.jpegQuality = max(1, min(100, q))
	}
}

// WithPPMFormat selects plain (P3) or raw (P6) PPM output.
func WithPPMFormat(f PPMFormat) Option {
	return func(o *options) {
		o.ppmFormat = f
	}
}
