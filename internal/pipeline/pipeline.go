// Package pipeline runs the filter phases over a pixel grid with a fixed pool
// of row-partitioned workers.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AnyUserName/laplace-cli/internal/codec"
	"github.com/AnyUserName/laplace-cli/internal/filter"
	"github.com/AnyUserName/laplace-cli/internal/grid"
	"github.com/AnyUserName/laplace-cli/internal/hasher"
	"github.com/AnyUserName/laplace-cli/internal/partition"
	"github.com/AnyUserName/laplace-cli/internal/report"
)

// Config holds all parameters for a pipeline run.
type Config struct {
	Workers  int
	Quality  int     // JPEG quality 1-100, 0 = encoder default
	NoOrient bool    // decode pixels in stored order, ignoring EXIF orientation
	Phases   []Phase // nil = DefaultPhases(filter.Laplacian())
	Verbose  bool
	Log      io.Writer // verbose output, nil = os.Stderr
}

// Pipeline orchestrates decode, the parallel phases and encode.
type Pipeline struct {
	cfg      Config
	registry *codec.Registry
}

// Result is the outcome of Apply.
type Result struct {
	Output *grid.Grid
	Ranges []partition.RowRange
	Phases []PhaseTiming
}

// PhaseTiming records how long one phase took, barrier included.
type PhaseTiming struct {
	Name     string
	Duration time.Duration
}

// New validates cfg and creates a pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be at least 1, got %d", partition.ErrInvalidConfig, cfg.Workers)
	}
	if cfg.Phases == nil {
		cfg.Phases = DefaultPhases(filter.Laplacian())
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Pipeline{cfg: cfg, registry: codec.NewRegistry()}, nil
}

// Apply runs every phase over in and returns a freshly allocated output grid.
// in is modified by phases that write to it. Border pixels that no phase
// writes stay zero. On failure no output is returned.
func (p *Pipeline) Apply(in *grid.Grid) (*Result, error) {
	ranges, err := partition.Split(in.Height(), p.cfg.Workers)
	if err != nil {
		return nil, err
	}
	out, err := grid.New(in.Width(), in.Height())
	if err != nil {
		return nil, err
	}

	p.logf("%dx%d image, %d workers, ranges %v", in.Width(), in.Height(), len(ranges), ranges)

	res := &Result{Output: out, Ranges: ranges}
	for _, ph := range p.cfg.Phases {
		start := time.Now()
		if err := runPhase(ph, in, out, ranges); err != nil {
			return nil, fmt.Errorf("phase %s: %w", ph.Name, err)
		}
		d := time.Since(start)
		res.Phases = append(res.Phases, PhaseTiming{Name: ph.Name, Duration: d})
		p.logf("phase %s done in %s", ph.Name, d.Round(time.Microsecond))
	}
	return res, nil
}

// Run decodes src, applies the phases and encodes the result to dst.
// Nothing is written to dst when decoding or any phase fails.
func (p *Pipeline) Run(src, dst string) (*report.Report, error) {
	start := time.Now()
	rep := report.New(p.cfg.Workers)

	// Resolve the encoder up front so an unwritable target costs no work.
	enc, err := p.registry.ForPath(dst)
	if err != nil {
		return nil, err
	}

	in, source, err := codec.Decode(src, codec.AutoOrientation(!p.cfg.NoOrient))
	if err != nil {
		return nil, err
	}
	rep.Timing.DecodeMS = report.Millis(time.Since(start))
	rep.Input = report.ImageInfo{
		Path:      src,
		Format:    source.Format,
		Width:     in.Width(),
		Height:    in.Height(),
		Size:      source.Size,
		PixelHash: hasher.Digest(in.Pix()),
	}
	p.logf("decoded %s (%s, %d bytes)", src, source.Format, source.Size)

	res, err := p.Apply(in)
	if err != nil {
		return nil, err
	}
	rep.Ranges = res.Ranges
	for _, pt := range res.Phases {
		rep.Timing.PhasesMS[pt.Name] = report.Millis(pt.Duration)
	}

	encStart := time.Now()
	if err := p.registry.Encode(dst, res.Output, p.cfg.Quality); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	rep.Timing.EncodeMS = report.Millis(time.Since(encStart))

	fileHash, err := hasher.DigestFile(dst)
	if err != nil {
		return nil, fmt.Errorf("hash output: %w", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}
	avg := res.Output.Mean()
	rep.AvgColor = &avg
	rep.Output = report.ImageInfo{
		Path:      dst,
		Format:    enc.Format(),
		Width:     res.Output.Width(),
		Height:    res.Output.Height(),
		Size:      info.Size(),
		FileHash:  fileHash,
		PixelHash: hasher.Digest(res.Output.Pix()),
	}
	rep.Timing.TotalMS = report.Millis(time.Since(start))
	p.logf("wrote %s (%d bytes)", dst, info.Size())
	return rep, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Log, "[laplace] "+format+"\n", args...)
	}
}
