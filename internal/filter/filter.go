// Package filter implements the per-row filters applied by pipeline workers.
package filter

import (
	"fmt"

	"github.com/AnyUserName/laplace-cli/internal/grid"
	"github.com/AnyUserName/laplace-cli/internal/partition"
)

// Kernel is a 3×3 integer convolution matrix indexed [ky+1][kx+1].
type Kernel [3][3]int

// Laplacian returns the 4-neighbour Laplacian. Kernel is an array, so every
// caller gets its own copy.
func Laplacian() Kernel {
	return Kernel{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}
}

// ZeroGreenBlue clears the G and B channels of every pixel in rows r,
// leaving R untouched. Rows outside r are never read or written.
func ZeroGreenBlue(g *grid.Grid, r partition.RowRange) {
	w := g.Width()
	for y := r.Start; y < r.End; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, grid.G, 0)
			g.Set(x, y, grid.B, 0)
		}
	}
}

// Sharpen writes input + (k ⊛ input) into out for every interior pixel in rows r.
// The outer ring of rows and columns has no full 3×3 neighbourhood and is left
// untouched in out. in is only read; rows r.Start-1 and r.End may belong to
// another worker, so in must not be mutated while Sharpen runs.
// Sharpen panics if out and in differ in size.
func Sharpen(in, out *grid.Grid, k Kernel, r partition.RowRange) {
	if !in.SameSize(out) {
		panic(fmt.Errorf("filter: output %dx%d does not match input %dx%d",
			out.Width(), out.Height(), in.Width(), in.Height()))
	}
	w, h := in.Width(), in.Height()

	// Rows 0 and h-1 are border rows.
	y0, y1 := max(r.Start, 1), min(r.End, h-1)
	for y := y0; y < y1; y++ {
		for x := 1; x < w-1; x++ {
			for c := 0; c < grid.Channels; c++ {
				sum := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						sum += k[ky+1][kx+1] * int(in.Get(x+kx, y+ky, c))
					}
				}
				out.Set(x, y, c, clamp(int(in.Get(x, y, c))+sum))
			}
		}
	}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
