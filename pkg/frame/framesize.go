package frame

// FrameSizeMap returns a function to get the number of bytes a frame will occupy in the given format
var FrameSizeMap = map[Format]frameSizeFunc{
	FormatZ16:   frameSize16,
	FormatY16:   frameSize16,
	FormatY16BE: frameSize16,
}

type frameSizeFunc func(width, height int) uint

func frameSize16(width, height int) uint {
	return uint(2 * width * height)
}
