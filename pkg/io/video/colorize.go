package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pion/depthcolor/pkg/colormap"
)

type colorizeConfig struct {
	ctx     context.Context
	workers int
}

// ColorizeOption configures the colorize transforms.
type ColorizeOption func(*colorizeConfig)

// WithWorkers bounds the number of goroutines used per frame. n <= 0 uses
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) ColorizeOption {
	return func(c *colorizeConfig) {
		c.workers = n
	}
}

// WithContext stops colorizing when ctx is done.
func WithContext(ctx context.Context) ColorizeOption {
	return func(c *colorizeConfig) {
		c.ctx = ctx
	}
}

func newColorizeConfig(opts []ColorizeOption) colorizeConfig {
	c := colorizeConfig{ctx: context.Background()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// ColorizeImage maps every sample of src through m and writes the colors to dst,
// which must have the same size as src. Rows are split into bands that are
// colorized concurrently by at most workers goroutines.
func ColorizeImage(ctx context.Context, dst *image.RGBA, src *image.Gray16, m *colormap.Mapper, workers int) error {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Size() != db.Size() {
		return fmt.Errorf("video: destination size %v does not match source size %v", db.Size(), sb.Size())
	}

	rows := sb.Dy()
	if rows == 0 || sb.Dx() == 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		colorizeRows(dst, src, m, 0, rows)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	band := (rows + workers - 1) / workers
	for start := 0; start < rows; start += band {
		start, end := start, min(start+band, rows)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			colorizeRows(dst, src, m, start, end)
			return nil
		})
	}
	return g.Wait()
}

// colorizeRows handles rows [y0, y1) relative to the bounds of src.
func colorizeRows(dst *image.RGBA, src *image.Gray16, m *colormap.Mapper, y0, y1 int) {
	sb, db := src.Bounds(), dst.Bounds()
	width := sb.Dx()
	for y := y0; y < y1; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		for x := 0; x < width; x++ {
			c := m.Map(uint16(src.Pix[si])<<8 | uint16(src.Pix[si+1]))
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
			si += 2
			di += 4
		}
	}
}

// prepareRGBA resizes dst to r, reusing its memory when possible.
func prepareRGBA(dst *image.RGBA, r image.Rectangle) {
	size := 4 * r.Dx() * r.Dy()
	if cap(dst.Pix) < size {
		dst.Pix = make([]uint8, size)
	}
	dst.Pix = dst.Pix[:size]
	dst.Stride = 4 * r.Dx()
	dst.Rect = image.Rect(0, 0, r.Dx(), r.Dy())
}

// colorizeWith builds a transform that converts *image.Gray16 frames to
// *image.RGBA. mapperFor is called once per frame, before any pixel of that
// frame is mapped. The returned frame is only valid until the next Read.
func colorizeWith(cfg colorizeConfig, mapperFor func(*image.Gray16) (*colormap.Mapper, error)) TransformFunc {
	return func(r Reader) Reader {
		var dst image.RGBA
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			if release != nil {
				defer release()
			}

			depth, ok := img.(*image.Gray16)
			if !ok {
				return nil, func() {}, errUnsupportedImageType
			}

			m, err := mapperFor(depth)
			if err != nil {
				return nil, func() {}, err
			}

			prepareRGBA(&dst, depth.Bounds())
			if err := ColorizeImage(cfg.ctx, &dst, depth, m, cfg.workers); err != nil {
				return nil, func() {}, err
			}
			return &dst, func() {}, nil
		})
	}
}

// Colorize returns a transform that colors depth frames with m.
func Colorize(m *colormap.Mapper, opts ...ColorizeOption) TransformFunc {
	return colorizeWith(newColorizeConfig(opts), func(*image.Gray16) (*colormap.Mapper, error) {
		return m, nil
	})
}

// ColorizeEqualized returns a transform that builds a histogram-equalized table
// from every frame and colors that frame with it. Samples above maxValue are
// transparent black.
func ColorizeEqualized(p colormap.Palette, maxValue uint16, opts ...ColorizeOption) TransformFunc {
	var hist colormap.Histogram
	return colorizeWith(newColorizeConfig(opts), func(depth *image.Gray16) (*colormap.Mapper, error) {
		hist.Reset()
		hist.Add(depth)
		return colormap.NewMapper(
			colormap.WithTable(colormap.Equalized(&hist, p, maxValue)),
			colormap.WithMaxValue(uint32(maxValue)),
		)
	})
}

// ColorizeAutoRange returns a transform that spreads p over the [low, high]
// quantiles of each frame's valid samples. Samples above the high quantile are
// transparent black, as are frames without any valid sample.
func ColorizeAutoRange(p colormap.Palette, low, high float64, opts ...ColorizeOption) TransformFunc {
	return colorizeWith(newColorizeConfig(opts), func(depth *image.Gray16) (*colormap.Mapper, error) {
		minValue, maxValue, err := colormap.AutoRange(depth, low, high)
		if errors.Is(err, colormap.ErrEmptyFrame) {
			minValue, maxValue = 0, 0
		} else if err != nil {
			return nil, err
		}
		return colormap.NewMapper(
			colormap.WithTable(colormap.Linear(p, minValue, maxValue)),
			colormap.WithMaxValue(uint32(maxValue)),
		)
	})
}
