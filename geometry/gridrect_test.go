package geometry

import (
	"math/rand"
	"testing"

	"flowgrid/core"

	"github.com/stretchr/testify/assert"
)

func TestComputeGridRect(t *testing.T) {
	tests := []struct {
		name    string
		anchor  core.Point
		pointer core.Point
		want    GridRect
	}{
		{
			name:    "pointer right and below",
			anchor:  core.Point{X: 100, Y: 100},
			pointer: core.Point{X: 260, Y: 140},
			want:    GridRect{X: 100, Y: 60, Width: 160, Height: 80, Cols: 8, Rows: 4},
		},
		{
			name:    "pointer left on same row",
			anchor:  core.Point{X: 100, Y: 100},
			pointer: core.Point{X: 40, Y: 100},
			want:    GridRect{X: 40, Y: 60, Width: 60, Height: 80, Cols: 3, Rows: 4},
		},
		{
			name:    "pointer on anchor gives minimum",
			anchor:  core.Point{X: 100, Y: 100},
			pointer: core.Point{X: 100, Y: 100},
			want:    GridRect{X: 100, Y: 60, Width: 40, Height: 80, Cols: 2, Rows: 4},
		},
		{
			name:    "pointer above mirrors below",
			anchor:  core.Point{X: 100, Y: 100},
			pointer: core.Point{X: 260, Y: 40},
			want:    GridRect{X: 100, Y: 40, Width: 160, Height: 120, Cols: 8, Rows: 6},
		},
		{
			name:    "half cell rounds up",
			anchor:  core.Point{X: 0, Y: 0},
			pointer: core.Point{X: 50, Y: 0},
			want:    GridRect{X: 0, Y: -40, Width: 60, Height: 80, Cols: 3, Rows: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeGridRect(tt.anchor, tt.pointer))
		})
	}
}

func TestComputeGridRectProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		// Anchors land on the grid the way committed clicks do.
		anchor := core.Point{
			X: Snap(rng.Float64()*2000 - 1000),
			Y: Snap(rng.Float64()*2000 - 1000),
		}
		pointer := core.Point{
			X: rng.Float64()*2000 - 1000,
			Y: rng.Float64()*2000 - 1000,
		}
		r := ComputeGridRect(anchor, pointer)

		assert.True(t, OnGrid(r.X), "x %v not on grid", r.X)
		assert.True(t, OnGrid(r.Y), "y %v not on grid", r.Y)
		assert.True(t, OnGrid(r.Width), "width %v not on grid", r.Width)
		assert.True(t, OnGrid(r.Height), "height %v not on grid", r.Height)

		assert.Equal(t, 0, r.Rows%2, "rows must be even")
		assert.GreaterOrEqual(t, r.Rows, 2*MinGrid)
		assert.GreaterOrEqual(t, r.Cols, MinGrid)

		assert.Equal(t, anchor.Y, r.Y+r.Height/2, "rect must be centered on anchor")
		assert.Equal(t, float64(r.Cols*GridCell), r.Width)
		assert.Equal(t, float64(r.Rows*GridCell), r.Height)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{9, 0},
		{10, 20},
		{-10, 0},
		{-11, -20},
		{-15, -20},
		{105, 100},
		{110, 120},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Snap(tt.in), "Snap(%v)", tt.in)
	}
}
