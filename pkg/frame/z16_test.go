package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeZ16(t *testing.T) {
	const (
		width  = 2
		height = 3
	)
	decoder, err := NewDecoder(FormatZ16)
	require.NoError(t, err)

	_, err = decoder.Decode([]byte{0x00}, width, height)
	assert.Error(t, err, "expected to get a frame length mismatch")

	input := []byte{
		0x0c, 0x00, 0x20, 0x03,
		0xa3, 0x01, 0x10, 0x00,
		0x56, 0x09, 0x5d, 0x00,
	}
	expected := image.NewGray16(image.Rect(0, 0, width, height))
	expected.SetGray16(0, 0, color.Gray16{Y: 12})
	expected.SetGray16(1, 0, color.Gray16{Y: 800})
	expected.SetGray16(0, 1, color.Gray16{Y: 419})
	expected.SetGray16(1, 1, color.Gray16{Y: 16})
	expected.SetGray16(0, 2, color.Gray16{Y: 2390})
	expected.SetGray16(1, 2, color.Gray16{Y: 93})

	img, err := decoder.Decode(input, width, height)
	require.NoError(t, err)
	if diff := cmp.Diff(expected, img); diff != "" {
		t.Errorf("wrong decode result (-want +got):\n%s", diff)
	}

	assert.Equal(t, input, EncodeZ16(img))
}

func TestDecodeY16(t *testing.T) {
	decoder, err := NewDecoder(FormatY16)
	require.NoError(t, err)

	img, err := decoder.Decode([]byte{0x20, 0x03, 0x0c, 0x00}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(800), img.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(12), img.Gray16At(1, 0).Y)
}

func TestDecodeY16BE(t *testing.T) {
	decoder, err := NewDecoder(FormatY16BE)
	require.NoError(t, err)

	input := []byte{0x03, 0x20, 0x00, 0x0c}
	img, err := decoder.Decode(input, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(800), img.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(12), img.Gray16At(1, 0).Y)

	_, err = decoder.Decode(input, 3, 1)
	assert.Error(t, err)
}

func TestEncodeZ16SubImage(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 3, 2))
	for i := 0; i < 6; i++ {
		img.SetGray16(i%3, i/3, color.Gray16{Y: uint16(i + 1)})
	}
	sub := img.SubImage(image.Rect(1, 0, 3, 2)).(*image.Gray16)

	assert.Equal(t, []byte{2, 0, 3, 0, 5, 0, 6, 0}, EncodeZ16(sub))
}

func TestNewDecoderUnsupported(t *testing.T) {
	_, err := NewDecoder(Format("MJPEG"))
	assert.Error(t, err)
}

func TestFrameSizeMap(t *testing.T) {
	assert.Equal(t, uint(2*640*480), FrameSizeMap[FormatZ16](640, 480))
	assert.Equal(t, uint(2*4*4), FrameSizeMap[FormatY16](4, 4))
	assert.Equal(t, uint(2*4*4), FrameSizeMap[FormatY16BE](4, 4))
}
