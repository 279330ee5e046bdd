package main

import (
	"fmt"
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pion/depthcolor/pkg/colormap"
)

const histogramBins = 64

// writeHistogram plots the distribution of the valid samples of depth up to
// maxValue and saves it to path. The image format follows the file extension.
func writeHistogram(path string, depth *image.Gray16, maxValue uint16) error {
	h := colormap.NewHistogram(depth)

	xys := make(plotter.XYs, 0, histogramBins)
	for v := 1; v <= int(maxValue); v++ {
		if n := h.Counts[v]; n > 0 {
			xys = append(xys, plotter.XY{X: float64(v), Y: float64(n)})
		}
	}
	if len(xys) == 0 {
		return fmt.Errorf("histogram: %w", colormap.ErrEmptyFrame)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Depth histogram (%d valid samples)", h.Total)
	p.X.Label.Text = "Depth"
	p.Y.Label.Text = "Samples"

	hist, err := plotter.NewHistogram(xys, histogramBins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	return nil
}
