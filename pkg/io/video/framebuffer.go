package video

import (
	"image"

	"golang.org/x/image/draw"
)

// FrameBuffer keeps a private copy of a depth or color frame.
type FrameBuffer struct {
	buffer []uint8
	tmp    image.Image
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{
		buffer: make([]uint8, initialSize),
	}
}

func (buff *FrameBuffer) store(src []uint8) []uint8 {
	if cap(buff.buffer) < len(src) {
		buff.buffer = make([]uint8, len(src))
	}
	buff.buffer = buff.buffer[:len(src)]
	copy(buff.buffer, src)
	return buff.buffer[:len(src):len(src)]
}

// Load loads the current owned image. It returns nil until StoreCopy is called.
func (buff *FrameBuffer) Load() image.Image {
	return buff.tmp
}

// StoreCopy makes a copy of src and store its copy. StoreCopy will reuse as much memory as it can
// from the previous copies. For example, if StoreCopy is given an image that has the same resolution
// and format from the previous call, StoreCopy will not allocate extra memory and only copy the content
// from src to the previous buffer. Images other than *image.Gray16 and *image.RGBA are
// converted to *image.RGBA.
func (buff *FrameBuffer) StoreCopy(src image.Image) {
	switch src := src.(type) {
	case *image.Gray16:
		clone, ok := buff.tmp.(*image.Gray16)
		if !ok {
			clone = &image.Gray16{}
		}
		*clone = *src
		clone.Pix = buff.store(src.Pix)
		buff.tmp = clone
	case *image.RGBA:
		clone, ok := buff.tmp.(*image.RGBA)
		if !ok {
			clone = &image.RGBA{}
		}
		*clone = *src
		clone.Pix = buff.store(src.Pix)
		buff.tmp = clone
	default:
		converted := image.NewRGBA(src.Bounds())
		draw.Draw(converted, converted.Bounds(), src, src.Bounds().Min, draw.Src)
		buff.StoreCopy(converted)
	}
}

// Snapshot returns a transform that stores a copy of every frame passing
// through it in buff, so that the latest frame can be inspected after the
// readers further down the chain have reused their buffers.
func Snapshot(buff *FrameBuffer) TransformFunc {
	return func(r Reader) Reader {
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			buff.StoreCopy(img)
			return img, release, nil
		})
	}
}
