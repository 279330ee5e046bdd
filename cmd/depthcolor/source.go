package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/depthcolor/pkg/driver"
	"github.com/pion/depthcolor/pkg/driver/availability"
	"github.com/pion/depthcolor/pkg/driver/cmdsource"
	"github.com/pion/depthcolor/pkg/driver/depthtest"
	"github.com/pion/depthcolor/pkg/frame"
	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

const cmdSourceLabel = "depthcolor-cmd"

// fileSource reads one depth frame per path. Paths ending in .png must hold
// 16-bit grayscale images; anything else is a raw frame of the given format.
func fileSource(paths []string, f frame.Format, width, height int) (video.Reader, error) {
	decoder, err := frame.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	i := 0
	return video.ReaderFunc(func() (image.Image, func(), error) {
		if i >= len(paths) {
			return nil, func() {}, io.EOF
		}
		path := paths[i]
		i++

		if strings.EqualFold(filepath.Ext(path), ".png") {
			img, err := readPNG(path)
			return img, func() {}, err
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return nil, func() {}, err
		}
		img, err := decoder.Decode(b, width, height)
		if err != nil {
			return nil, func() {}, fmt.Errorf("%s: %w", path, err)
		}
		return img, func() {}, nil
	}), nil
}

func readPNG(path string) (*image.Gray16, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	depth, ok := img.(*image.Gray16)
	if !ok {
		return nil, fmt.Errorf("%s: %T is not a 16-bit grayscale image", path, img)
	}
	return depth, nil
}

// openSource opens the registered driver selected by o.source and starts it.
// The returned function closes the driver.
func openSource(o *options) (video.Reader, func(), error) {
	var filter driver.FilterFn
	switch o.source {
	case "depthtest":
		filter = driver.FilterLabel(depthtest.Label)
	case "cmd":
		if o.command == "" {
			return nil, nil, fmt.Errorf("-source cmd requires -cmd")
		}
		p := []prop.Media{{Video: prop.Video{Width: o.width, Height: o.height, FrameFormat: frame.Format(o.format)}}}
		if err := cmdsource.AddCmdSource(cmdSourceLabel, o.command, p, o.readTimeout); err != nil {
			return nil, nil, err
		}
		filter = driver.FilterAnd(driver.FilterLabel(cmdSourceLabel), driver.FilterDeviceType(driver.CmdSource))
	default:
		return nil, nil, fmt.Errorf("unknown source %q", o.source)
	}

	drivers := driver.GetManager().Query(driver.FilterAnd(filter, driver.FilterVideoRecorder()))
	if len(drivers) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", o.source, availability.ErrNoDevice)
	}
	d := drivers[0]

	if err := d.Open(); err != nil {
		return nil, nil, err
	}
	logger.Infof("opened %s (%s)", d.Info().Label, d.ID())

	r, err := d.(driver.VideoRecorder).VideoRecord(prop.Media{
		DeviceID: d.ID(),
		Video: prop.Video{
			Width:       o.width,
			Height:      o.height,
			FrameFormat: frame.Format(o.format),
		},
	})
	if err != nil {
		_ = d.Close()
		return nil, nil, err
	}

	return r, func() {
		if err := d.Close(); err != nil {
			logger.Warnf("failed to close %s: %v", d.Info().Label, err)
		}
	}, nil
}
