// Package layout keeps node rectangles apart on the logical grid, both when a
// node is dragged or dropped (ResolveCollisions) and when a new node needs a
// free spot (FindNonOverlappingPosition).
package layout

import "flowgrid/core"

// Overlaps reports whether two boxes come closer than spacing on both axes.
// Collision resolution, placement search and document validation all use it.
func Overlaps(a, b core.NodeBox, spacing float64) bool {
	return a.X < b.X+b.Width+spacing &&
		b.X < a.X+a.Width+spacing &&
		a.Y < b.Y+b.Height+spacing &&
		b.Y < a.Y+a.Height+spacing
}
