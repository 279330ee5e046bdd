package frame

import (
	"fmt"
)

func NewDecoder(f Format) (Decoder, error) {
	var decoder decoderFunc

	switch f {
	case FormatZ16, FormatY16:
		decoder = decodeZ16
	case FormatY16BE:
		decoder = decodeY16BE
	default:
		return nil, fmt.Errorf("%s is not supported", f)
	}

	return decoder, nil
}
