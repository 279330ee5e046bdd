package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleDepthNearestNeighbor(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 2))
	src.SetGray16(0, 0, color.Gray16{Y: 100})
	src.SetGray16(1, 0, color.Gray16{Y: 2000})
	src.SetGray16(0, 1, color.Gray16{Y: 0})
	src.SetGray16(1, 1, color.Gray16{Y: 65535})

	img, _, err := Scale(4, 4, nil)(sourceOf(src)).Read()
	require.NoError(t, err)

	scaled, ok := img.(*image.Gray16)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 0, 4, 4), scaled.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.Gray16At(x/2, y/2), scaled.Gray16At(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestScaleKeepAspectRatio(t *testing.T) {
	cases := map[string]struct {
		width, height int
		src           image.Image
		expected      image.Rectangle
	}{
		"DepthByWidth": {
			width: 320, height: -1,
			src:      image.NewGray16(image.Rect(0, 0, 640, 480)),
			expected: image.Rect(0, 0, 320, 240),
		},
		"RGBAByHeight": {
			width: 0, height: 120,
			src:      image.NewRGBA(image.Rect(0, 0, 640, 480)),
			expected: image.Rect(0, 0, 160, 120),
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			img, _, err := Scale(c.width, c.height, ScalerBiLinear)(sourceOf(c.src)).Read()
			require.NoError(t, err)
			assert.Equal(t, c.expected, img.Bounds())
		})
	}
}

func TestScaleUnsupportedImage(t *testing.T) {
	_, _, err := Scale(2, 2, nil)(sourceOf(image.NewGray(image.Rect(0, 0, 4, 4)))).Read()
	assert.ErrorIs(t, err, errUnsupportedImageType)

	assert.Panics(t, func() { Scale(-1, -1, nil)(sourceOf()) })
}
