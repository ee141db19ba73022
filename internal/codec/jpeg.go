package codec

import (
	"image"
	"image/jpeg"
	"io"
)

// DefaultJPEGQuality is used when no quality or an out-of-range one is given.
const DefaultJPEGQuality = 90

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string { return "jpeg" }

func (e *JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
