package rasterfx

import "fmt"

// VisualizeChannel returns a grey raster where every pixel is (c, c, c) for
// the selected channel value c.
func VisualizeChannel(r *Raster, ch Channel) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if ch > Blue {
		return nil, invalidArgf("unknown channel %d", uint8(ch))
	}
	c := int(ch)
	return broadcast(r, func(p []uint8) uint8 { return p[c] }), nil
}

// SplitRGB returns the red, green and blue channel visualizations of r.
func SplitRGB(r *Raster) (red, green, blue *Raster, err error) {
	if err := checkRaster("source", r); err != nil {
		return nil, nil, nil, err
	}
	red, _ = VisualizeChannel(r, Red)
	green, _ = VisualizeChannel(r, Green)
	blue, _ = VisualizeChannel(r, Blue)
	return red, green, blue, nil
}

// CombineRGB builds a raster whose pixels take red from r, green from g and
// blue from b. All three must have the same size.
func CombineRGB(r, g, b *Raster) (*Raster, error) {
	for _, in := range []struct {
		name string
		r    *Raster
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if err := checkRaster(in.name, in.r); err != nil {
			return nil, err
		}
	}
	if r.width != g.width || r.width != b.width || r.height != g.height || r.height != b.height {
		return nil, fmt.Errorf("%w: red %dx%d, green %dx%d, blue %dx%d", ErrDimensionMismatch,
			r.width, r.height, g.width, g.height, b.width, b.height)
	}
	out := emptyLike(r)
	for i := 0; i < len(out.pix); i += 3 {
		out.pix[i+0] = r.pix[i+0]
		out.pix[i+1] = g.pix[i+1]
		out.pix[i+2] = b.pix[i+2]
	}
	return out, nil
}

// Value returns max(R, G, B) of every pixel broadcast to all channels.
func Value(r *Raster) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	return broadcast(r, func(p []uint8) uint8 {
		return max(p[0], p[1], p[2])
	}), nil
}

// Intensity returns the floor of (R+G+B)/3 of every pixel broadcast to all
// channels.
func Intensity(r *Raster) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	return broadcast(r, func(p []uint8) uint8 {
		return uint8((int(p[0]) + int(p[1]) + int(p[2])) / 3)
	}), nil
}

// Luma returns floor(0.2126R + 0.7152G + 0.0722B) of every pixel broadcast
// to all channels.
func Luma(r *Raster) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	return broadcast(r, func(p []uint8) uint8 {
		return clamp255(int(luma(p[0], p[1], p[2])))
	}), nil
}

// AdjustBrightness adds delta to every channel, clamping to [0, 255].
func AdjustBrightness(r *Raster, delta int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	// Any delta beyond ±255 saturates; clamping it first avoids overflow.
	delta = max(-255, min(255, delta))
	out := emptyLike(r)
	for i, v := range r.pix {
		out.pix[i] = clamp255(int(v) + delta)
	}
	return out, nil
}

func luma(r, g, b uint8) float64 {
	return float64(0.2126*float64(r)) + float64(0.7152*float64(g)) + float64(0.0722*float64(b))
}

// broadcast writes f(pixel) to all three channels of every output pixel.
func broadcast(r *Raster, f func(p []uint8) uint8) *Raster {
	out := emptyLike(r)
	for i := 0; i < len(r.pix); i += 3 {
		v := f(r.pix[i : i+3])
		out.pix[i+0] = v
		out.pix[i+1] = v
		out.pix[i+2] = v
	}
	return out
}
