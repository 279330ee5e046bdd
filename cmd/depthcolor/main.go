// Command depthcolor renders 16-bit depth frames as color PNGs.
//
// Frames come from raw Z16/Y16/Y16_BE files, 16-bit grayscale PNGs or a registered
// depth source:
//
//	depthcolor -palette jet -max 4000 -out frames capture-*.z16
//	depthcolor -source depthtest -frames 10 -equalize -out frames
//	depthcolor -source cmd -cmd "ffmpeg -i depth.mkv -f rawvideo -pix_fmt gray16le -" -out frames
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pion/depthcolor/internal/logging"
	"github.com/pion/depthcolor/pkg/colormap"
	"github.com/pion/depthcolor/pkg/frame"
	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

var logger = logging.NewLogger("cmd")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "depthcolor:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	o, inputs, err := parseArgs(args)
	if err != nil {
		return err
	}

	colorize, err := newColorizer(ctx, o)
	if err != nil {
		return err
	}

	var src video.Reader
	switch {
	case len(inputs) > 0:
		src, err = fileSource(inputs, frame.Format(o.format), o.width, o.height)
		if err != nil {
			return err
		}
	case o.source != "":
		var closeSource func()
		src, closeSource, err = openSource(o)
		if err != nil {
			return err
		}
		defer closeSource()
	default:
		return errors.New("no input files and no -source given")
	}

	transforms := make([]video.TransformFunc, 0, 4)
	if o.scale != "" {
		w, h, err := parseSize(o.scale)
		if err != nil {
			return fmt.Errorf("-scale: %w", err)
		}
		transforms = append(transforms, video.Scale(w, h, video.ScalerNearestNeighbor))
	}
	depth := video.NewFrameBuffer(0)
	transforms = append(transforms,
		video.DetectChanges(time.Second, 1, func(p prop.Media) {
			logger.Infof("depth stream is %dx%d at %.1f fps", p.Width, p.Height, p.FrameRate)
		}),
		video.Snapshot(depth),
		colorize,
	)
	r := video.Merge(transforms...)(src)

	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return err
	}

	for n := 0; o.frames <= 0 || len(inputs) > 0 || n < o.frames; n++ {
		if err := ctx.Err(); err != nil {
			logger.Infof("stopped after %d frames", n)
			return nil
		}

		img, release, err := r.Read()
		if err == io.EOF {
			logger.Infof("wrote %d frames to %s", n, o.out)
			return nil
		}
		if errors.Is(err, context.Canceled) {
			logger.Infof("stopped after %d frames", n)
			return nil
		}
		if err != nil {
			return err
		}

		if n == 0 && o.histogram != "" {
			if err := writeHistogram(o.histogram, depth.Load().(*image.Gray16), histogramMax(o)); err != nil {
				logger.Warnf("failed to write %s: %v", o.histogram, err)
			}
		}

		path := filepath.Join(o.out, fmt.Sprintf("frame-%04d.png", n))
		err = writePNG(path, img)
		release()
		if err != nil {
			return err
		}
		logger.Debugf("wrote %s", path)
	}

	logger.Infof("wrote %d frames to %s", o.frames, o.out)
	return nil
}

// newColorizer builds the coloring stage selected by o.
func newColorizer(ctx context.Context, o *options) (video.TransformFunc, error) {
	colorizeOpts := []video.ColorizeOption{video.WithWorkers(o.workers), video.WithContext(ctx)}

	mode, err := colormap.ParseMode(o.mode)
	if err != nil {
		return nil, err
	}
	if mode == colormap.ModeGrayscale {
		m, err := colormap.NewMapper(colormap.WithMode(colormap.ModeGrayscale))
		if err != nil {
			return nil, err
		}
		return video.Colorize(m, colorizeOpts...), nil
	}

	palette, err := colormap.PaletteByName(o.palette)
	if err != nil {
		return nil, err
	}
	if o.maxValue >= colormap.FullTableSize {
		return nil, fmt.Errorf("-max %d does not fit a 16-bit sample", o.maxValue)
	}
	if o.minValue > o.maxValue {
		return nil, fmt.Errorf("-min %d is above -max %d", o.minValue, o.maxValue)
	}
	maxValue := uint16(o.maxValue)

	switch {
	case !o.clamp && (o.equalize || o.autoRange != ""):
		return nil, errors.New("-equalize and -auto-range always clamp, -clamp=false is not supported with them")
	case o.equalize && o.autoRange != "":
		return nil, errors.New("-equalize and -auto-range are mutually exclusive")
	case o.equalize:
		return video.ColorizeEqualized(palette, maxValue, colorizeOpts...), nil
	case o.autoRange != "":
		low, high, err := parseQuantiles(o.autoRange)
		if err != nil {
			return nil, fmt.Errorf("-auto-range: %w", err)
		}
		return video.ColorizeAutoRange(palette, low, high, colorizeOpts...), nil
	}

	table := colormap.Linear(palette, uint16(o.minValue), maxValue)
	if !o.clamp {
		table = table.Extend(colormap.FullTableSize)
	}
	m, err := colormap.NewMapper(
		colormap.WithTable(table),
		colormap.WithClamp(o.clamp),
		colormap.WithMaxValue(uint32(maxValue)),
	)
	if err != nil {
		return nil, err
	}
	return video.Colorize(m, colorizeOpts...), nil
}

func histogramMax(o *options) uint16 {
	if o.maxValue >= colormap.FullTableSize {
		return colormap.FullTableSize - 1
	}
	return uint16(o.maxValue)
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}
