package pipeline

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/AnyUserName/laplace-cli/internal/filter"
	"github.com/AnyUserName/laplace-cli/internal/grid"
	"github.com/AnyUserName/laplace-cli/internal/partition"
	"golang.org/x/sync/errgroup"
)

// Phase is one data-parallel pass. Apply is called once per worker with that
// worker's rows and must only write rows inside r. Every worker finishes a
// phase before any worker starts the next one.
type Phase struct {
	Name  string
	Apply func(in, out *grid.Grid, r partition.RowRange)
}

// DefaultPhases returns the color pass followed by the sharpen pass.
//
// The color pass mutates in; the sharpen pass reads rows r.Start-1 and r.End
// of in, which belong to neighbouring workers. Keeping them in separate
// phases guarantees those rows are already filtered when they are read.
func DefaultPhases(k filter.Kernel) []Phase {
	return []Phase{
		{
			Name: "color",
			Apply: func(in, _ *grid.Grid, r partition.RowRange) {
				filter.ZeroGreenBlue(in, r)
			},
		},
		{
			Name: "sharpen",
			Apply: func(in, out *grid.Grid, r partition.RowRange) {
				filter.Sharpen(in, out, k, r)
			},
		},
	}
}

// ErrWorkerFault matches any *WorkerError via errors.Is.
var ErrWorkerFault = errors.New("worker fault")

// WorkerError reports a panic recovered inside a worker.
type WorkerError struct {
	Worker int
	Phase  string
	Rows   partition.RowRange
	Value  any
	Stack  []byte
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d, phase %s, rows %s: panic: %v", e.Worker, e.Phase, e.Rows, e.Value)
}

func (e *WorkerError) Is(target error) bool { return target == ErrWorkerFault }

// Unwrap exposes the panic value when it is itself an error, such as a
// *grid.BoundsError.
func (e *WorkerError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// runPhase runs ph over every range concurrently and returns after all of
// them have finished. The returned error is the first failure observed.
func runPhase(ph Phase, in, out *grid.Grid, ranges []partition.RowRange) error {
	var g errgroup.Group
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &WorkerError{Worker: i, Phase: ph.Name, Rows: r, Value: v, Stack: debug.Stack()}
				}
			}()
			if r.Empty() {
				return nil
			}
			ph.Apply(in, out, r)
			return nil
		})
	}
	return g.Wait()
}
