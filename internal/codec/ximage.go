package codec

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// BMPEncoder encodes uncompressed BMP via golang.org/x/image.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string { return "bmp" }

func (e *BMPEncoder) Encode(w io.Writer, img image.Image, _ int) error {
	return bmp.Encode(w, img)
}

// TIFFEncoder encodes deflate-compressed TIFF via golang.org/x/image.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() string { return "tiff" }

func (e *TIFFEncoder) Encode(w io.Writer, img image.Image, _ int) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}
