// Package codec converts between image files and RGB pixel grids.
package codec

import (
	"image"
	"io"
)

// Encoder writes an image in one output format.
type Encoder interface {
	// Format returns the format name (e.g. "png", "jpeg").
	Format() string

	// Encode writes img to w. quality is 1-100 and ignored by lossless formats.
	Encode(w io.Writer, img image.Image, quality int) error
}
