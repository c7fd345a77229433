package rasterfx

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
)

// RGB is a single pixel value.
type RGB struct {
	R, G, B uint8
}

// Channel selects one of the three color channels.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
}

// Raster is an RGB pixel buffer with 8 bits per channel.
//
// Pixels are stored in one dense slice, three bytes per pixel, row-major:
// channel c of (row, col) lives at (row*width+col)*3+c.
//
// A Raster is never modified after construction. Every operation in this
// package allocates a new Raster for its result, so a *Raster can be shared
// freely between goroutines.
type Raster struct {
	width  int
	height int
	pix    []uint8
}

// New creates a black raster of the given size. Zero dimensions are allowed
// and produce an empty raster.
func New(width, height int) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, invalidArgf("negative raster size %dx%d", width, height)
	}
	return newRaster(width, height), nil
}

// newRaster allocates without validation; callers pass known-good sizes.
func newRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// FromPix creates a raster from packed RGB bytes. The data is copied.
func FromPix(width, height int, pix []uint8) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, invalidArgf("negative raster size %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return nil, invalidArgf("pixel data has %d bytes, want %d for %dx%d", len(pix), width*height*3, width, height)
	}
	r := newRaster(width, height)
	copy(r.pix, pix)
	return r, nil
}

// FromRows creates a raster from a grid of rows. Every row must have the same
// length. The data is copied.
func FromRows(rows [][]RGB) (*Raster, error) {
	height := len(rows)
	if height == 0 {
		return newRaster(0, 0), nil
	}
	width := len(rows[0])
	r := newRaster(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrDimensionMismatch, y, len(row), width)
		}
		for x, p := range row {
			i := (y*width + x) * 3
			r.pix[i+0] = p.R
			r.pix[i+1] = p.G
			r.pix[i+2] = p.B
		}
	}
	return r, nil
}

// FromImage converts any image to a raster. Alpha is discarded.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	r := newRaster(width, height)

	// Fast path for the layout the standard decoders produce most often.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := 0; x < width; x++ {
				i := (y*width + x) * 3
				r.pix[i+0] = row[x*4+0]
				r.pix[i+1] = row[x*4+1]
				r.pix[i+2] = row[x*4+2]
			}
		}
		return r
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*width + x) * 3
			r.pix[i+0] = c.R
			r.pix[i+1] = c.G
			r.pix[i+2] = c.B
		}
	}
	return r
}

// ToImage converts the raster to an opaque image.NRGBA.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for i, j := 0, 0; i < len(r.pix); i, j = i+3, j+4 {
		img.Pix[j+0] = r.pix[i+0]
		img.Pix[j+1] = r.pix[i+1]
		img.Pix[j+2] = r.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.width == 0 || r.height == 0
}

// PixelAt returns the pixel at (row, col).
func (r *Raster) PixelAt(row, col int) (RGB, error) {
	if !r.inBounds(row, col) {
		return RGB{}, r.indexError(row, col)
	}
	i := r.offset(row, col)
	return RGB{r.pix[i], r.pix[i+1], r.pix[i+2]}, nil
}

// WithPixel returns a copy of the raster with the pixel at (row, col) replaced.
func (r *Raster) WithPixel(row, col int, p RGB) (*Raster, error) {
	if !r.inBounds(row, col) {
		return nil, r.indexError(row, col)
	}
	out := r.Clone()
	i := out.offset(row, col)
	out.pix[i+0] = p.R
	out.pix[i+1] = p.G
	out.pix[i+2] = p.B
	return out, nil
}

// Pix returns a copy of the packed RGB data.
func (r *Raster) Pix() []uint8 {
	out := make([]uint8, len(r.pix))
	copy(out, r.pix)
	return out
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	out := &Raster{
		width:  r.width,
		height: r.height,
		pix:    make([]uint8, len(r.pix)),
	}
	copy(out.pix, r.pix)
	return out
}

// Equal reports whether two rasters have the same size and pixel values.
// Two nil rasters are equal.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.width != other.width || r.height != other.height || len(r.pix) != len(other.pix) {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Hash returns a content hash over the size and pixel values. Equal rasters
// have equal hashes.
func (r *Raster) Hash() uint64 {
	h := fnv.New64a()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[0:8], uint64(r.width))
	binary.LittleEndian.PutUint64(dims[8:16], uint64(r.height))
	_, _ = h.Write(dims[:])
	_, _ = h.Write(r.pix)
	return h.Sum64()
}

// String returns a short description such as "Raster(640x480)".
func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d)", r.width, r.height)
}

func (r *Raster) offset(row, col int) int {
	return (row*r.width + col) * 3
}

func (r *Raster) inBounds(row, col int) bool {
	return row >= 0 && row < r.height && col >= 0 && col < r.width
}

func (r *Raster) indexError(row, col int) error {
	return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrIndexOutOfRange, row, col, r.width, r.height)
}

// consistent reports whether the buffer length matches the dimensions.
func (r *Raster) consistent() bool {
	return r.width >= 0 && r.height >= 0 && len(r.pix) == r.width*r.height*3
}

// emptyLike returns a fresh raster with the same size as r and no pixels set.
func emptyLike(r *Raster) *Raster {
	return newRaster(r.width, r.height)
}

// clamp255 clamps an integer channel value to [0, 255].
func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
