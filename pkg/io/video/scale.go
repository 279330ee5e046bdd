package video

import (
	"image"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

// Scale returns video scaling transform for depth (*image.Gray16) and color
// (*image.RGBA) frames.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// Negative width or height value will keep the aspect ratio of incoming image.
//
// Note: interpolating scalers blend depth values across object edges and
// invent depths that were never measured. Prefer ScalerNearestNeighbor before
// colorizing and the interpolating scalers after.
func Scale(width, height int, scaler Scaler) TransformFunc {
	return func(r Reader) Reader {
		if scaler == nil {
			scaler = ScalerNearestNeighbor
		}

		var rect image.Rectangle
		if width > 0 && height > 0 {
			rect = image.Rect(0, 0, width, height)
		} else if width <= 0 && height <= 0 {
			panic("Both width and height are negative!")
		}

		var imgScaled draw.Image
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			if release != nil {
				defer release()
			}

			if rect.Empty() {
				if height <= 0 {
					h := img.Bounds().Dy() * width / img.Bounds().Dx()
					rect = image.Rect(0, 0, width, h)
				} else if width <= 0 {
					w := img.Bounds().Dx() * height / img.Bounds().Dy()
					rect = image.Rect(0, 0, w, height)
				}
			}

			switch img.(type) {
			case *image.Gray16:
				if _, ok := imgScaled.(*image.Gray16); !ok {
					imgScaled = image.NewGray16(rect)
				}
			case *image.RGBA:
				if _, ok := imgScaled.(*image.RGBA); !ok {
					imgScaled = image.NewRGBA(rect)
				}
			default:
				return nil, func() {}, errUnsupportedImageType
			}

			scaler.Scale(imgScaled, rect, img, img.Bounds(), draw.Src, nil)
			return imgScaled, func() {}, nil
		})
	}
}
