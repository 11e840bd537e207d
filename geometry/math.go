// Package geometry holds the logical grid the editor snaps to and the pure
// numeric helpers built on it.
package geometry

import "math"

// Grid constants shared by the placement engine and its collaborators.
const (
	GridCell = 20 // smallest logical distance unit
	MinGrid  = 2  // minimum cells per sizing axis

	// PlacementMargin is the clearance used when auto-placing new nodes.
	PlacementMargin = 5 * GridCell
)

// Round rounds half up (toward positive infinity), so -0.5 rounds to 0.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Snap returns v moved to the nearest multiple of GridCell.
func Snap(v float64) float64 {
	s := Round(v/GridCell) * GridCell
	if s == 0 {
		return 0 // avoid -0
	}
	return s
}

// OnGrid reports whether v is an exact GridCell multiple.
func OnGrid(v float64) bool {
	return math.Mod(v, GridCell) == 0
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
