package terminal

import "flowgrid/core"

// Viewport maps terminal cells to logical coordinates. Origin is the logical
// point at the top-left corner of cell (0,0).
type Viewport struct {
	CellWidth  float64 // logical units per column
	CellHeight float64 // logical units per row
	Origin     core.Point
}

// NewViewport creates a viewport at the logical origin. Non-positive cell
// sizes fall back to 10x20.
func NewViewport(cellWidth, cellHeight float64) *Viewport {
	if cellWidth <= 0 {
		cellWidth = 10
	}
	if cellHeight <= 0 {
		cellHeight = 20
	}
	return &Viewport{CellWidth: cellWidth, CellHeight: cellHeight}
}

// ScreenToLogical returns the logical point at the center of a cell.
func (v *Viewport) ScreenToLogical(screen core.Point) core.Point {
	return core.Point{
		X: v.Origin.X + (screen.X+0.5)*v.CellWidth,
		Y: v.Origin.Y + (screen.Y+0.5)*v.CellHeight,
	}
}

// LogicalToScreen returns fractional cell coordinates; the containing cell is
// the floor of each axis.
func (v *Viewport) LogicalToScreen(logical core.Point) core.Point {
	return core.Point{
		X: (logical.X - v.Origin.X) / v.CellWidth,
		Y: (logical.Y - v.Origin.Y) / v.CellHeight,
	}
}

// Pan scrolls the viewport by whole cells.
func (v *Viewport) Pan(cols, rows int) {
	v.Origin.X += float64(cols) * v.CellWidth
	v.Origin.Y += float64(rows) * v.CellHeight
}

// Center returns the logical point at the middle of a width x height screen.
func (v *Viewport) Center(width, height int) core.Point {
	return v.ScreenToLogical(core.Point{X: float64(width / 2), Y: float64(height / 2)})
}
