package codec

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/laplace-cli/internal/grid"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode wraps every failure to open or decode a source image.
var ErrDecode = errors.New("decode failure")

// Source describes a decoded input file.
type Source struct {
	Path   string
	Format string // normalized: png, jpeg, gif, bmp, tiff, webp
	Size   int64  // bytes on disk
}

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for Decode.
type DecodeOption func(*decodeConfig)

// AutoOrientation controls whether the EXIF orientation tag is applied after
// decoding. It is enabled by default. Disabled, pixels come out in stored
// order, which may swap width and height for rotated JPEGs.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode reads the image at path and returns its RGB pixels. Alpha is
// discarded.
func Decode(path string, opts ...DecodeOption) (*grid.Grid, Source, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	src := Source{Path: path, Format: FormatFromPath(path)}

	f, err := os.Open(path)
	if err != nil {
		return nil, src, fmt.Errorf("%w: open %s: %w", ErrDecode, path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		src.Size = info.Size()
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(cfg.autoOrientation))
	if err != nil {
		return nil, src, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	g, err := FromImage(img)
	if err != nil {
		return nil, src, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return g, src, nil
}

// FromImage copies the R, G and B samples of img into a new grid.
func FromImage(img image.Image) (*grid.Grid, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]uint8, 0, w*h*grid.Channels)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			pix = append(pix, row[i], row[i+1], row[i+2])
		}
	}
	return grid.FromPixels(w, h, pix)
}

// ToImage returns an opaque NRGBA image holding the pixels of g.
func ToImage(g *grid.Grid) *image.NRGBA {
	w, h := g.Width(), g.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	src := g.Pix()
	for i, j := 0, 0; i < len(src); i, j = i+grid.Channels, j+4 {
		img.Pix[j] = src[i]
		img.Pix[j+1] = src[i+1]
		img.Pix[j+2] = src[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FormatFromPath returns the normalized format name for a file extension,
// or the bare lowercase extension when it is not a known image format.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}
