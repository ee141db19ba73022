// Package grid holds decoded RGB pixels in a single contiguous buffer.
package grid

import (
	"fmt"
)

// Channels is the number of bytes per pixel. Channel order is fixed to R, G, B.
const Channels = 3

// Channel indices within a pixel.
const (
	R = 0
	G = 1
	B = 2
)

// Grid is a width×height×3 byte buffer in row-major RGB order.
//
// All pixel access goes through Get and Set, which panic with a *BoundsError
// when a coordinate falls outside the grid. Concurrent writers are safe as
// long as they touch disjoint rows.
type Grid struct {
	width  int
	height int
	pix    []uint8
}

// BoundsError is the panic value raised by Get and Set for an out-of-range access.
type BoundsError struct {
	X, Y, C       int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grid: access (%d,%d,%d) outside %dx%dx%d",
		e.X, e.Y, e.C, e.Width, e.Height, Channels)
}

// New allocates a zero-filled grid.
func New(width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}, nil
}

// FromPixels wraps an existing row-major RGB buffer. The grid takes ownership
// of pix; callers must not modify it afterwards.
func FromPixels(width, height int, pix []uint8) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	if want := width * height * Channels; len(pix) != want {
		return nil, fmt.Errorf("grid: buffer has %d bytes, want %d for %dx%d", len(pix), want, width, height)
	}
	return &Grid{width: width, height: height, pix: pix}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Pix returns the underlying buffer for handoff to an encoder.
func (g *Grid) Pix() []uint8 { return g.pix }

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.width == o.width && g.height == o.height
}

// Get returns channel c of pixel (x, y).
func (g *Grid) Get(x, y, c int) uint8 {
	return g.pix[g.index(x, y, c)]
}

// Set stores v into channel c of pixel (x, y).
func (g *Grid) Set(x, y, c int, v uint8) {
	g.pix[g.index(x, y, c)] = v
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// Mean returns the average value of each channel, or zeros for an empty grid.
func (g *Grid) Mean() [Channels]uint8 {
	var sum [Channels]uint64
	n := uint64(g.width * g.height)
	if n == 0 {
		return [Channels]uint8{}
	}
	for i := 0; i < len(g.pix); i += Channels {
		sum[R] += uint64(g.pix[i+R])
		sum[G] += uint64(g.pix[i+G])
		sum[B] += uint64(g.pix[i+B])
	}
	return [Channels]uint8{uint8(sum[R] / n), uint8(sum[G] / n), uint8(sum[B] / n)}
}

func (g *Grid) index(x, y, c int) int {
	// Unsigned compares fold the negative checks into the upper-bound checks.
	if uint(x) >= uint(g.width) || uint(y) >= uint(g.height) || uint(c) >= Channels {
		panic(&BoundsError{X: x, Y: y, C: c, Width: g.width, Height: g.height})
	}
	return (y*g.width+x)*Channels + c
}
