package layout

import (
	"flowgrid/core"
	"flowgrid/geometry"
)

// placementRings is how many multiples of the node footprint are searched in
// each direction. Five directions over eight rings plus the desired spot caps
// the search at 41 candidate evaluations.
const placementRings = 8

// Search directions in priority order: right, down, down-right, left, up.
var placementDirections = []struct{ dx, dy float64 }{
	{1, 0},
	{0, 1},
	{1, 1},
	{-1, 0},
	{0, -1},
}

// FindNonOverlappingPosition returns the grid-snapped position nearest to
// desired where a width x height box keeps PlacementMargin clearance from
// every existing box.
//
// When nothing within the searched rings is clear it falls back to one spacing
// unit right of desired, which may overlap.
func FindNonOverlappingPosition(existing []core.NodeBox, width, height float64, desired core.Point) core.Point {
	pos, _ := searchPosition(existing, width, height, desired)
	return pos
}

// searchPosition does the work of FindNonOverlappingPosition and also reports
// how many candidate positions were evaluated.
func searchPosition(existing []core.NodeBox, width, height float64, desired core.Point) (core.Point, int) {
	const margin = geometry.PlacementMargin

	start := snapPoint(desired)
	evaluated := 1
	if isClear(existing, core.NodeBox{X: start.X, Y: start.Y, Width: width, Height: height}, margin) {
		return start, evaluated
	}

	stepX := width + margin
	stepY := height + margin

	for ring := 1; ring <= placementRings; ring++ {
		for _, dir := range placementDirections {
			candidate := snapPoint(core.Point{
				X: desired.X + dir.dx*float64(ring)*stepX,
				Y: desired.Y + dir.dy*float64(ring)*stepY,
			})
			evaluated++
			if isClear(existing, core.NodeBox{X: candidate.X, Y: candidate.Y, Width: width, Height: height}, margin) {
				return candidate, evaluated
			}
		}
	}

	return snapPoint(core.Point{X: desired.X + margin, Y: desired.Y}), evaluated
}

func isClear(existing []core.NodeBox, candidate core.NodeBox, margin float64) bool {
	for _, box := range existing {
		if Overlaps(candidate, box, margin) {
			return false
		}
	}
	return true
}

func snapPoint(p core.Point) core.Point {
	return core.Point{X: geometry.Snap(p.X), Y: geometry.Snap(p.Y)}
}
