package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

type options struct {
	mode      string
	palette   string
	clamp     bool
	maxValue  uint
	minValue  uint
	equalize  bool
	autoRange string
	scale     string
	workers   int
	out       string
	config    string
	histogram string

	source      string
	command     string
	format      string
	frames      int
	width       int
	height      int
	readTimeout time.Duration
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("depthcolor", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: depthcolor [flags] [input.z16|input.png ...]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.mode, "mode", "table", "mapping mode: table or grayscale")
	fs.StringVar(&o.palette, "palette", "jet", "color palette used to build the table")
	fs.BoolVar(&o.clamp, "clamp", true, "render samples above -max as transparent black, required by -equalize and -auto-range")
	fs.UintVar(&o.maxValue, "max", 3000, "largest depth value covered by the table")
	fs.UintVar(&o.minValue, "min", 0, "depth value mapped to the first palette color")
	fs.BoolVar(&o.equalize, "equalize", false, "equalize the histogram of every frame")
	fs.StringVar(&o.autoRange, "auto-range", "", "low,high quantiles picking the range of every frame, e.g. 0.02,0.98")
	fs.StringVar(&o.scale, "scale", "", "resize depth frames to WxH before coloring, -1 keeps the aspect ratio")
	fs.IntVar(&o.workers, "workers", 0, "goroutines coloring a frame, 0 uses every CPU")
	fs.StringVar(&o.out, "out", ".", "directory the PNG frames are written to")
	fs.StringVar(&o.config, "config", "", "JSON config file, comments and trailing commas allowed")
	fs.StringVar(&o.histogram, "histogram", "", "write a PNG plot of the first frame's depth histogram")

	fs.StringVar(&o.source, "source", "", "depth source when no input files are given: depthtest or cmd")
	fs.StringVar(&o.command, "cmd", "", "command writing raw frames to stdout, for -source cmd")
	fs.StringVar(&o.format, "format", "Z16", "raw frame format: Z16, Y16 or Y16_BE")
	fs.IntVar(&o.frames, "frames", 30, "number of frames to read from a source, 0 reads until the end")
	fs.IntVar(&o.width, "width", 640, "frame width of raw inputs and sources")
	fs.IntVar(&o.height, "height", 480, "frame height of raw inputs and sources")
	fs.DurationVar(&o.readTimeout, "read-timeout", 5*time.Second, "frame read timeout for -source cmd")
	return fs
}

// parseArgs parses the command line. Values from the -config file only apply to
// flags that were not given explicitly.
func parseArgs(args []string) (*options, []string, error) {
	o := &options{}
	fs := newFlagSet(o)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if o.config != "" {
		values, err := loadConfig(o.config)
		if err != nil {
			return nil, nil, err
		}

		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		for name, value := range values {
			if fs.Lookup(name) == nil {
				return nil, nil, fmt.Errorf("%s: unknown setting %q", o.config, name)
			}
			if explicit[name] || name == "config" {
				continue
			}
			if err := fs.Set(name, value); err != nil {
				return nil, nil, fmt.Errorf("%s: %s: %w", o.config, name, err)
			}
		}
	}

	return o, fs.Args(), nil
}

// loadConfig reads a JSON object whose keys are flag names, e.g.
//
//	{
//		// close range camera
//		"max": 1500,
//		"palette": "warm",
//	}
func loadConfig(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err = hujson.Standardize(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for name, v := range raw {
		switch v := v.(type) {
		case string:
			values[name] = v
		case json.Number:
			values[name] = v.String()
		case bool:
			values[name] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("%s: %s: unsupported value %v", path, name, v)
		}
	}
	return values, nil
}

var errInvalidPair = errors.New("invalid pair")

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %v", errInvalidPair, s, err)
	}
	if w <= 0 && h <= 0 {
		return 0, 0, fmt.Errorf("%w %q: width or height must be positive", errInvalidPair, s)
	}
	return w, h, nil
}

// parseQuantiles parses "low,high".
func parseQuantiles(s string) (float64, float64, error) {
	var low, high float64
	if _, err := fmt.Sscanf(s, "%g,%g", &low, &high); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %v", errInvalidPair, s, err)
	}
	return low, high, nil
}
