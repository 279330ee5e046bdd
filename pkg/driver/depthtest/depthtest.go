// Package depthtest provides dummy depth camera driver for testing.
package depthtest

import (
	"context"
	"encoding/binary"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/pion/depthcolor/pkg/driver"
	"github.com/pion/depthcolor/pkg/frame"
	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

// Label is the label the dummy driver is registered with.
const Label = "DepthTest"

const (
	nearDepth  = 600  // closest point of the background, in millimeters
	farDepth   = 2800 // farthest point of the background
	boxDepth   = 1000 // depth of the moving box
	dropoutPct = 2    // share of pixels without a measurement in the noise area
)

func init() {
	driver.GetManager().Register(
		newDepthTest(),
		driver.Info{Label: Label, DeviceType: driver.DepthCamera},
	)
}

type dummy struct {
	closed <-chan struct{}
	cancel func()
	tick   *time.Ticker
}

func newDepthTest() *dummy {
	return &dummy{}
}

func (d *dummy) Open() error {
	ctx, cancel := context.WithCancel(context.Background())
	d.closed = ctx.Done()
	d.cancel = cancel
	return nil
}

func (d *dummy) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	if d.tick != nil {
		d.tick.Stop()
	}
	return nil
}

// VideoRecord produces a far wall sloping from left to right, a box sweeping
// across the upper half of the frame and a noisy strip at the bottom where some
// pixels carry no measurement.
func (d *dummy) VideoRecord(p prop.Media) (video.Reader, error) {
	defaults := d.Properties()[0]
	defaults.Merge(p)
	p = defaults

	decoder, err := frame.NewDecoder(frame.FormatZ16)
	if err != nil {
		return nil, err
	}

	base := make([]byte, frame.FrameSizeMap[frame.FormatZ16](p.Width, p.Height))
	raw := make([]byte, len(base))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			z := nearDepth + (farDepth-nearDepth)*x/max(p.Width-1, 1)
			binary.LittleEndian.PutUint16(base[2*(y*p.Width+x):], uint16(z))
		}
	}

	boxW, boxH := p.Width/5, p.Height/3
	noiseStart := p.Height * 7 / 8
	random := rand.New(rand.NewSource(0))

	tick := time.NewTicker(time.Duration(float32(time.Second) / p.FrameRate))
	d.tick = tick
	closed := d.closed
	var n int

	r := video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		copy(raw, base)
		boxX := 0
		if span := p.Width - boxW; span > 0 {
			boxX = (n * 8) % span
		}
		for y := p.Height / 6; y < p.Height/6+boxH; y++ {
			for x := boxX; x < boxX+boxW; x++ {
				binary.LittleEndian.PutUint16(raw[2*(y*p.Width+x):], boxDepth)
			}
		}
		for y := noiseStart; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				i := 2 * (y*p.Width + x)
				if random.Intn(100) < dropoutPct {
					binary.LittleEndian.PutUint16(raw[i:], 0)
					continue
				}
				z := binary.LittleEndian.Uint16(raw[i:])
				binary.LittleEndian.PutUint16(raw[i:], z+uint16(random.Intn(32)))
			}
		}
		n++

		img, err := decoder.Decode(raw, p.Width, p.Height)
		if err != nil {
			return nil, func() {}, err
		}
		return img, func() {}, nil
	})

	return r, nil
}

func (d *dummy) Properties() []prop.Media {
	return []prop.Media{
		{
			DeviceID: Label,
			Video: prop.Video{
				Width:       640,
				Height:      480,
				FrameRate:   30,
				FrameFormat: frame.FormatZ16,
			},
		},
	}
}
