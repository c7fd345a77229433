package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/rasterfx"
)

// maxPPMDimension bounds header sizes so a corrupt file cannot request an
// absurd allocation.
const maxPPMDimension = 1 << 15

// DecodePPM reads a plain (P3) or raw (P6) portable pixmap. Comments
// starting with '#' run to the end of the line and may appear anywhere a
// header or P3 sample is expected. Samples are rescaled to 0-255 when the
// file's maximum value differs from 255.
func DecodePPM(r io.Reader) (*rasterfx.Raster, error) {
	s := &ppmScanner{r: bufio.NewReader(r)}

	magic, err := s.token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyData
		}
		return nil, err
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q, want P3 or P6", ErrMalformed, magic)
	}

	width, err := s.int("width", 0, maxPPMDimension)
	if err != nil {
		return nil, err
	}
	height, err := s.int("height", 0, maxPPMDimension)
	if err != nil {
		return nil, err
	}
	maxVal, err := s.int("maximum value", 1, 65535)
	if err != nil {
		return nil, err
	}

	pix := make([]uint8, width*height*3)
	if magic == "P3" {
		for i := range pix {
			v, err := s.int("sample", 0, maxVal)
			if err != nil {
				return nil, fmt.Errorf("%w (sample %d of %d)", err, i+1, len(pix))
			}
			pix[i] = scaleSample(v, maxVal)
		}
		return rasterfx.FromPix(width, height, pix)
	}

	if maxVal > 255 {
		return nil, fmt.Errorf("%w: 16-bit P6", ErrUnsupportedFormat)
	}
	// A single whitespace byte separates the header from the samples.
	if _, err := s.r.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: missing raster data", ErrMalformed)
	}
	if _, err := io.ReadFull(s.r, pix); err != nil {
		return nil, fmt.Errorf("%w: short raster data: %v", ErrMalformed, err)
	}
	if maxVal != 255 {
		for i, v := range pix {
			if int(v) > maxVal {
				return nil, fmt.Errorf("%w: sample %d above maximum %d", ErrMalformed, v, maxVal)
			}
			pix[i] = scaleSample(int(v), maxVal)
		}
	}
	return rasterfx.FromPix(width, height, pix)
}

// EncodePPM writes r as a portable pixmap with maximum value 255. Plain
// output has a "P3", "width height", "255" header followed by one
// "r g b" line per pixel.
func EncodePPM(w io.Writer, r *rasterfx.Raster, format PPMFormat) error {
	if r == nil {
		return fmt.Errorf("codec: encode: %w", rasterfx.ErrNullInput)
	}
	bw := bufio.NewWriter(w)
	magic := "P3"
	if format == PPMRaw {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, r.Width(), r.Height()); err != nil {
		return fmt.Errorf("codec: write PPM header: %w", err)
	}

	pix := r.Pix()
	if format == PPMRaw {
		if _, err := bw.Write(pix); err != nil {
			return fmt.Errorf("codec: write PPM data: %w", err)
		}
		return bw.Flush()
	}

	line := make([]byte, 0, 12)
	for i := 0; i < len(pix); i += 3 {
		line = line[:0]
		line = strconv.AppendUint(line, uint64(pix[i+0]), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(pix[i+1]), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(pix[i+2]), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("codec: write PPM data: %w", err)
		}
	}
	return bw.Flush()
}

func scaleSample(v, maxVal int) uint8 {
	if maxVal == 255 {
		return uint8(v)
	}
	return uint8((v*255 + maxVal/2) / maxVal)
}

// ppmScanner splits netpbm text into whitespace-separated tokens.
type ppmScanner struct {
	r   *bufio.Reader
	buf []byte
}

func (s *ppmScanner) token() (string, error) {
	s.buf = s.buf[:0]
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(s.buf) > 0 {
				return string(s.buf), nil
			}
			return "", err
		}
		switch {
		case c == '#':
			if _, err := s.r.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			if len(s.buf) > 0 {
				return string(s.buf), nil
			}
		case isSpace(c):
			if len(s.buf) > 0 {
				// Leave the delimiter for P6, which reads exactly one.
				_ = s.r.UnreadByte()
				return string(s.buf), nil
			}
		default:
			s.buf = append(s.buf, c)
		}
	}
}

func (s *ppmScanner) int(what string, lo, hi int) (int, error) {
	tok, err := s.token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: unexpected end of data reading %s", ErrMalformed, what)
		}
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformed, what, tok)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s %d outside [%d,%d]", ErrMalformed, what, v, lo, hi)
	}
	return v, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
