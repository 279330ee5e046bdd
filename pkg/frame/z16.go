package frame

import (
	"encoding/binary"
	"fmt"
	"image"
)

func checkSize(frame []byte, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	expectedSize := int(frameSize16(width, height))
	if expectedSize != len(frame) {
		return fmt.Errorf("frame length (%d) not expected size (%d)", len(frame), expectedSize)
	}
	return nil
}

// decodeZ16 converts little-endian depth samples into a new *image.Gray16.
//
// v4l describes Z16 as a series of lines, each depth value stored low byte first:
//
//	Width: 3, Height: 2
//	[Z_low(x_0,y_0), Z_high(x_0,y_0), Z_low(x_1,y_0), Z_high(x_1,y_0), Z_low(x_2,y_0), Z_high(x_2,y_0),
//	 Z_low(x_0,y_1), Z_high(x_0,y_1), Z_low(x_1,y_1), Z_high(x_1,y_1), Z_low(x_2,y_1), Z_high(x_2,y_1)]
func decodeZ16(frame []byte, width, height int) (*image.Gray16, error) {
	if err := checkSize(frame, width, height); err != nil {
		return nil, err
	}
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for i := 0; i < len(frame); i += 2 {
		z := binary.LittleEndian.Uint16(frame[i : i+2])
		binary.BigEndian.PutUint16(img.Pix[i:i+2], z)
	}
	return img, nil
}

// decodeY16BE wraps frame without copying; it already has the memory layout of
// *image.Gray16.
func decodeY16BE(frame []byte, width, height int) (*image.Gray16, error) {
	if err := checkSize(frame, width, height); err != nil {
		return nil, err
	}
	return &image.Gray16{
		Pix:    frame[:len(frame):len(frame)],
		Stride: 2 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// EncodeZ16 serializes img as a Z16 frame. The result has no padding between
// rows, whatever the stride of img.
func EncodeZ16(img *image.Gray16) []byte {
	b := img.Bounds()
	out := make([]byte, 0, frameSize16(b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 2 {
			out = append(out, row[i+1], row[i])
		}
	}
	return out
}
