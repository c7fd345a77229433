package rasterfx

import "fmt"

// Histogram holds per-channel value frequencies, indexed by Channel then value.
type Histogram [3][256]int

// Peak search range. Values near the extremes are usually clipped shadows
// or highlights and are ignored when locating a channel's peak.
const (
	PeakMin = 10
	PeakMax = 245
)

// HistogramSize is the side length of the image produced by RenderHistogram.
const HistogramSize = 256

// ComputeHistogram counts how often each value occurs in each channel.
func ComputeHistogram(r *Raster) (*Histogram, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if !r.consistent() {
		return nil, invalidArgf("corrupt raster: %d bytes for %dx%d", len(r.pix), r.width, r.height)
	}
	var h Histogram
	for i := 0; i < len(r.pix); i += 3 {
		h[Red][r.pix[i+0]]++
		h[Green][r.pix[i+1]]++
		h[Blue][r.pix[i+2]]++
	}
	return &h, nil
}

// Max returns the highest frequency in the channel.
func (h *Histogram) Max(c Channel) int {
	m := 0
	for _, n := range h[c] {
		m = max(m, n)
	}
	return m
}

// Peak returns the most frequent value of the channel within
// [PeakMin, PeakMax]. Ties go to the lowest value. A channel with no values
// in that range has peak 0.
func (h *Histogram) Peak(c Channel) int {
	peak, best := 0, 0
	for v := PeakMin; v <= PeakMax; v++ {
		if h[c][v] > best {
			best = h[c][v]
			peak = v
		}
	}
	return peak
}

// Peaks returns the peak of every channel.
func (h *Histogram) Peaks() [3]int {
	return [3]int{h.Peak(Red), h.Peak(Green), h.Peak(Blue)}
}

// RenderHistogram draws the histogram as a 256x256 raster on a white
// background. For each channel, in the order red, green, blue, column v
// gets a bar in the channel's pure color rising from the bottom row, with
// height count*255/max(1, channelMax). Later channels overwrite earlier
// ones where bars overlap. Every bar covers at least the bottom row.
func RenderHistogram(h *Histogram) (*Raster, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: histogram", ErrNullInput)
	}
	out := newRaster(HistogramSize, HistogramSize)
	for i := range out.pix {
		out.pix[i] = 255
	}

	colors := [3]RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	bottom := HistogramSize - 1
	for c := Red; c <= Blue; c++ {
		top := max(1, h.Max(c))
		col := colors[c]
		for v := 0; v < HistogramSize; v++ {
			scaled := h[c][v] * 255 / top
			for y := bottom - scaled; y <= bottom; y++ {
				o := out.offset(y, v)
				out.pix[o+0] = col.R
				out.pix[o+1] = col.G
				out.pix[o+2] = col.B
			}
		}
	}
	return out, nil
}

// HistogramImage computes the histogram of r and renders it.
func HistogramImage(r *Raster) (*Raster, error) {
	h, err := ComputeHistogram(r)
	if err != nil {
		return nil, err
	}
	return RenderHistogram(h)
}

// ColorCorrect aligns the histogram peaks of the three channels. Each
// channel's peak is found with Histogram.Peak; the channels are then shifted
// by (average peak - own peak), where the average uses integer division.
// Only the columns selected by splitPercent, which must lie in [0, 100],
// are shifted. Results are clamped to [0, 255].
func ColorCorrect(r *Raster, splitPercent int) (*Raster, error) {
	if err := checkRaster("source", r); err != nil {
		return nil, err
	}
	if err := checkSplit(splitPercent); err != nil {
		return nil, err
	}
	h, err := ComputeHistogram(r)
	if err != nil {
		return nil, err
	}

	peaks := h.Peaks()
	avg := (peaks[0] + peaks[1] + peaks[2]) / 3
	offsets := [3]int{avg - peaks[0], avg - peaks[1], avg - peaks[2]}
	Logger().Debug("rasterfx: color correct", "peaks", peaks, "average", avg, "offsets", offsets)

	// One lookup table per channel.
	var lut [3][256]uint8
	for c := range lut {
		for v := range lut[c] {
			lut[c][v] = clamp255(v + offsets[c])
		}
	}

	out := emptyLike(r)
	split := SplitColumn(r.width, splitPercent)
	for y := 0; y < r.height; y++ {
		row := y * r.width * 3
		copy(out.pix[row:row+split*3], r.pix[row:row+split*3])
		for i := row + split*3; i < row+r.width*3; i += 3 {
			out.pix[i+0] = lut[0][r.pix[i+0]]
			out.pix[i+1] = lut[1][r.pix[i+1]]
			out.pix[i+2] = lut[2][r.pix[i+2]]
		}
	}
	return out, nil
}
