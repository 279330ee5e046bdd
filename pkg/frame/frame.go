package frame

import "image"

type Decoder interface {
	Decode(frame []byte, width, height int) (*image.Gray16, error)
}

// decoderFunc is a proxy type for Decoder
type decoderFunc func(frame []byte, width, height int) (*image.Gray16, error)

func (f decoderFunc) Decode(frame []byte, width, height int) (*image.Gray16, error) {
	return f(frame, width, height)
}
