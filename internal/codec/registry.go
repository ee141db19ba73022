package codec

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AnyUserName/laplace-cli/internal/grid"
)

// ErrUnsupportedFormat is returned when no encoder handles an output path.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Registry holds encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry returns a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for format, or nil.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// DefaultFormat is used for output paths without an extension.
const DefaultFormat = "png"

// ForPath resolves the encoder from the extension of path. A path with no
// extension is written as DefaultFormat.
func (r *Registry) ForPath(path string) (Encoder, error) {
	format := FormatFromPath(path)
	if format == "" {
		format = DefaultFormat
	}
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, r)
	}
	return enc, nil
}

// Available returns the registered format names in a stable order.
func (r *Registry) Available() []string {
	var out []string
	for _, f := range []string{"png", "jpeg", "bmp", "tiff"} {
		if _, ok := r.encoders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) String() string {
	return strings.Join(r.Available(), ", ")
}

// Encode writes g to path in the format implied by its extension. A partially
// written file is removed when encoding fails.
func (r *Registry) Encode(path string, g *grid.Grid, quality int) (err error) {
	enc, err := r.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriterSize(f, 256*1024)
	if err := enc.Encode(bw, ToImage(g), quality); err != nil {
		return fmt.Errorf("encode %s as %s: %w", path, enc.Format(), err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
