// Package codec converts rasters to and from image files.
//
// Supported formats, chosen by file extension:
//
//	.ppm          plain (P3) and raw (P6) portable pixmaps, read and write
//	.png          read and write
//	.jpg, .jpeg   read and write
//	.bmp          read and write
//	.tif, .tiff   read and write
//	.webp         read only
//
// Appending ".zst" to any of these (for example "scan.ppm.zst") wraps the
// file in a Zstandard stream. Alpha channels are dropped on load and written
// as opaque on save.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/gogpu/rasterfx"
)

// Codec errors.
var (
	// ErrUnsupportedFormat is returned for unknown extensions and for
	// formats that cannot be written.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("codec: empty data")

	// ErrMalformed is returned for syntactically invalid PPM data.
	ErrMalformed = errors.New("codec: malformed image")
)

// Format identifies an image file format.
type Format uint8

const (
	FormatPPM Format = iota + 1
	FormatPNG
	FormatJPEG
	FormatBMP
	FormatTIFF
	FormatWebP
)

var formatNames = map[Format]string{
	FormatPPM:  "ppm",
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatWebP: "webp",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// CanEncode reports whether rasters can be written in this format.
func (f Format) CanEncode() bool {
	return f != FormatWebP && formatNames[f] != ""
}

// FormatFromPath returns the format for path and whether the file is
// Zstandard-compressed.
func FormatFromPath(path string) (Format, bool, error) {
	compressed := false
	ext := strings.ToLower(filepath.Ext(path))
	if ext == zstdExt {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".ppm":
		return FormatPPM, compressed, nil
	case ".png":
		return FormatPNG, compressed, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, compressed, nil
	case ".bmp":
		return FormatBMP, compressed, nil
	case ".tif", ".tiff":
		return FormatTIFF, compressed, nil
	case ".webp":
		return FormatWebP, compressed, nil
	default:
		return 0, false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Load reads the image at path.
func Load(path string) (*rasterfx.Raster, error) {
	format, compressed, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("codec: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if compressed {
		zr, err := newZstdReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r, format)
}

// Save writes r to path in the format implied by its extension.
func Save(path string, r *rasterfx.Raster, opts ...Option) error {
	if r == nil {
		return fmt.Errorf("codec: save: %w", rasterfx.ErrNullInput)
	}
	format, compressed, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !format.CanEncode() {
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("codec: create file: %w", err)
	}

	var w io.Writer = f
	var zw *zstd.Encoder
	if compressed {
		zw, err = newZstdWriter(f)
		if err != nil {
			_ = f.Close()
			return err
		}
		w = zw
	}

	if err := Encode(w, r, format, opts...); err != nil {
		if zw != nil {
			_ = zw.Close()
		}
		_ = f.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			_ = f.Close()
			return fmt.Errorf("codec: finish zstd stream: %w", err)
		}
	}
	return f.Close()
}

// Decode reads one image in the given format.
func Decode(r io.Reader, format Format) (*rasterfx.Raster, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPPM:
		return DecodePPM(r)
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", format, err)
	}
	return rasterfx.FromImage(img), nil
}

// Encode writes r in the given format.
func Encode(w io.Writer, r *rasterfx.Raster, format Format, opts ...Option) error {
	if r == nil {
		return fmt.Errorf("codec: encode: %w", rasterfx.ErrNullInput)
	}
	o := buildOptions(opts)

	var err error
	switch format {
	case FormatPPM:
		return EncodePPM(w, r, o.ppmFormat)
	case FormatPNG:
		err = png.Encode(w, r.ToImage())
	case FormatJPEG:
		err = jpeg.Encode(w, r.ToImage(), &jpeg.Options{Quality: o.jpegQuality})
	case FormatBMP:
		err = bmp.Encode(w, r.ToImage())
	case FormatTIFF:
		err = tiff.Encode(w, r.ToImage(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", format, err)
	}
	return nil
}
