package frame

type Format string

const (
	// Depth Formats

	// FormatZ16 https://www.kernel.org/doc/html/latest/userspace-api/media/v4l/pixfmt-z16.html
	FormatZ16 Format = "Z16"

	// Luminance Formats

	// FormatY16 https://www.kernel.org/doc/html/latest/userspace-api/media/v4l/pixfmt-y16.html
	FormatY16 Format = "Y16"
	// FormatY16BE https://www.kernel.org/doc/html/latest/userspace-api/media/v4l/pixfmt-y16-be.html
	// It has the memory layout of *image.Gray16.
	FormatY16BE Format = "Y16_BE"
)

// FormatDepth is an alias of FormatZ16
const FormatDepth = FormatZ16
