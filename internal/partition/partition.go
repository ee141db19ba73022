// Package partition splits image rows into contiguous ranges, one per worker.
package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for a worker count below one or a negative height.
var ErrInvalidConfig = errors.New("invalid config")

// RowRange is the half-open row interval [Start, End) owned by one worker.
type RowRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of rows in r.
func (r RowRange) Len() int { return r.End - r.Start }

// Empty reports whether r holds no rows.
func (r RowRange) Empty() bool { return r.End <= r.Start }

func (r RowRange) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Split divides [0, height) into workers ranges of height/workers rows each.
// The last range absorbs the remainder, so when height < workers every range
// but the last is empty.
func Split(height, workers int) ([]RowRange, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidConfig, workers)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: negative height %d", ErrInvalidConfig, height)
	}

	size := height / workers
	ranges := make([]RowRange, workers)
	for i := range ranges {
		ranges[i] = RowRange{Start: i * size, End: (i + 1) * size}
	}
	ranges[workers-1].End = height
	return ranges, nil
}

// Covers reports whether ranges tile [0, height) contiguously in order,
// with no gaps or overlaps.
func Covers(ranges []RowRange, height int) bool {
	next := 0
	for _, r := range ranges {
		if r.Start != next || r.End < r.Start {
			return false
		}
		next = r.End
	}
	return next == height
}
