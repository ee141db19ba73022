package grid

import (
	"errors"
	"testing"
)

func TestNew_ZeroFilled(t *testing.T) {
	g, err := New(3, 2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(g.Pix()) != 3*2*Channels {
		t.Fatalf("buffer length: got %d", len(g.Pix()))
	}
	for i, v := range g.Pix() {
		if v != 0 {
			t.Fatalf("byte %d: got %d, want 0", i, v)
		}
	}
}

func TestNew_NegativeDimensions(t *testing.T) {
	if _, err := New(-1, 4); err == nil {
		t.Error("expected error for negative width")
	}
	if _, err := New(4, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestFromPixels_LengthMismatch(t *testing.T) {
	if _, err := FromPixels(2, 2, make([]uint8, 11)); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestGetSet_RowMajorLayout(t *testing.T) {
	g, _ := New(4, 3)
	g.Set(2, 1, B, 77)

	// index = (y*width + x)*3 + c
	if got := g.Pix()[(1*4+2)*3+2]; got != 77 {
		t.Fatalf("raw byte: got %d, want 77", got)
	}
	if got := g.Get(2, 1, B); got != 77 {
		t.Fatalf("get: got %d, want 77", got)
	}
}

func TestGet_OutOfBoundsPanics(t *testing.T) {
	g, _ := New(2, 2)

	cases := []struct {
		name    string
		x, y, c int
	}{
		{"x past width", 2, 0, 0},
		{"y past height", 0, 2, 0},
		{"negative x", -1, 0, 0},
		{"negative y", 0, -1, 0},
		{"channel past B", 0, 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				v := recover()
				if v == nil {
					t.Fatal("expected panic")
				}
				err, ok := v.(error)
				if !ok {
					t.Fatalf("panic value %T is not an error", v)
				}
				var be *BoundsError
				if !errors.As(err, &be) {
					t.Fatalf("panic value %T is not *BoundsError", v)
				}
			}()
			g.Get(tc.x, tc.y, tc.c)
		})
	}
}

func TestClone_Independent(t *testing.T) {
	g, _ := New(2, 2)
	g.Set(1, 1, R, 10)
	c := g.Clone()
	c.Set(1, 1, R, 20)
	if g.Get(1, 1, R) != 10 {
		t.Error("clone shares buffer with original")
	}
}

func TestMean(t *testing.T) {
	g, _ := New(2, 1)
	g.Set(0, 0, R, 100)
	g.Set(1, 0, R, 200)
	g.Set(1, 0, G, 50)
	m := g.Mean()
	if m != [Channels]uint8{150, 25, 0} {
		t.Errorf("mean: got %v", m)
	}

	empty, _ := New(0, 0)
	if empty.Mean() != [Channels]uint8{} {
		t.Error("empty grid mean should be zero")
	}
}
