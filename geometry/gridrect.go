package geometry

import (
	"math"

	"flowgrid/core"
)

// GridRect is a grid-snapped sizing rectangle. Width and Height are always
// Cols*GridCell and Rows*GridCell; Rows is always even.
type GridRect struct {
	X, Y          float64
	Width, Height float64
	Cols, Rows    int
}

// Rect drops the cell counts.
func (g GridRect) Rect() core.Rect {
	return core.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

// ComputeGridRect sizes a rectangle from anchor toward pointer. The rectangle
// grows right or left depending on which side of the anchor the pointer is,
// and is always vertically centered on anchor.Y.
func ComputeGridRect(anchor, pointer core.Point) GridRect {
	dx := pointer.X - anchor.X
	dy := pointer.Y - anchor.Y

	cols := int(math.Max(MinGrid, Round(math.Abs(dx)/GridCell)))
	halfRows := int(math.Max(MinGrid, Round(math.Abs(dy)/GridCell)))
	rows := halfRows * 2

	width := float64(cols * GridCell)
	height := float64(rows * GridCell)

	x := anchor.X
	if dx < 0 {
		x = anchor.X - width
	}

	return GridRect{
		X:      x,
		Y:      anchor.Y - height/2,
		Width:  width,
		Height: height,
		Cols:   cols,
		Rows:   rows,
	}
}
