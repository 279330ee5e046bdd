package colormap

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyFrame is returned when a frame holds no valid (non-zero) samples.
var ErrEmptyFrame = errors.New("colormap: frame has no valid depth samples")

// Histogram counts how often each depth value occurs in a frame. Zero samples
// are counted in Counts[0] but excluded from Total.
type Histogram struct {
	Counts [FullTableSize]uint32
	Total  uint64
}

// NewHistogram counts the samples of img.
func NewHistogram(img *image.Gray16) *Histogram {
	h := &Histogram{}
	h.Add(img)
	return h
}

// Add accumulates the samples of img into h.
func (h *Histogram) Add(img *image.Gray16) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 2 {
			v := uint16(row[i])<<8 | uint16(row[i+1])
			h.Counts[v]++
			if v != 0 {
				h.Total++
			}
		}
	}
}

// Reset clears all counts.
func (h *Histogram) Reset() {
	*h = Histogram{}
}

// Equalized builds a table with maxValue+1 entries in which every valid depth
// value is colored by its rank in the cumulative distribution of h, so that
// colors are spread evenly over the depths actually present in the frame.
// Entry 0 stays transparent black.
func Equalized(h *Histogram, p Palette, maxValue uint16) Table {
	t := NewTable(int(maxValue) + 1)

	var total uint64
	for v := 1; v <= int(maxValue); v++ {
		total += uint64(h.Counts[v])
	}
	if total == 0 {
		for v := 1; v < len(t); v++ {
			t[v] = p.At(0)
		}
		return t
	}

	var running uint64
	for v := 1; v < len(t); v++ {
		running += uint64(h.Counts[v])
		t[v] = p.At(float64(running) / float64(total))
	}
	return t
}

// AutoRange picks a display range for img from the low and high quantiles of
// its non-zero samples. low and high must satisfy 0 <= low < high <= 1.
func AutoRange(img *image.Gray16, low, high float64) (minValue, maxValue uint16, err error) {
	if low < 0 || high > 1 || low >= high {
		return 0, 0, fmt.Errorf("colormap: invalid quantile range [%v, %v]", low, high)
	}

	b := img.Bounds()
	samples := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := img.Gray16At(x, y).Y; v != 0 {
				samples = append(samples, float64(v))
			}
		}
	}
	if len(samples) == 0 {
		return 0, 0, ErrEmptyFrame
	}

	sort.Float64s(samples)
	lo := stat.Quantile(low, stat.Empirical, samples, nil)
	hi := stat.Quantile(high, stat.Empirical, samples, nil)
	return uint16(lo), uint16(hi), nil
}
