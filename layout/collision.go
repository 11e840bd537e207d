package layout

import (
	"math"

	"flowgrid/core"
	"flowgrid/geometry"
)

// DefaultMaxIterations bounds ResolveCollisions when no limit is given.
const DefaultMaxIterations = 50

// CollisionOptions tunes ResolveCollisions.
type CollisionOptions struct {
	Margin        float64 // clearance kept between box edges
	MaxIterations int     // separation passes before giving up
	AnchorID      string  // box that must not move (dragged or just placed)
}

// DefaultCollisionOptions returns a one-cell margin, 50 passes and no anchor.
func DefaultCollisionOptions() CollisionOptions {
	return CollisionOptions{
		Margin:        geometry.GridCell,
		MaxIterations: DefaultMaxIterations,
	}
}

// ResolveCollisions pushes overlapping boxes apart along their axis of least
// penetration, then snaps every moved box to the grid.
//
// The input is not modified. A box whose final position equals its input
// position is returned as the same pointer, so callers can detect changes by
// identity. The anchor box is never moved and never snapped.
//
// A non-positive Margin or MaxIterations takes its DefaultCollisionOptions
// value, so a zero CollisionOptions behaves like the defaults with no anchor.
//
// With several mutually overlapping boxes the passes may run out before every
// overlap is gone; the result is then best effort.
func ResolveCollisions(boxes []*core.NodeBox, opts CollisionOptions) []*core.NodeBox {
	if opts.Margin <= 0 {
		opts.Margin = geometry.GridCell
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	work := make([]core.NodeBox, len(boxes))
	for i, b := range boxes {
		work[i] = *b
	}

	for iteration := 0; iteration < opts.MaxIterations; iteration++ {
		moved := false

		for i := 0; i < len(work); i++ {
			for j := i + 1; j < len(work); j++ {
				if separateBoxes(&work[i], &work[j], opts) {
					moved = true
				}
			}
		}

		if !moved {
			break
		}
	}

	result := make([]*core.NodeBox, len(boxes))
	for i, original := range boxes {
		next := work[i]
		if !isAnchor(next, opts.AnchorID) {
			next.X = geometry.Snap(next.X)
			next.Y = geometry.Snap(next.Y)
		}

		if next.X == original.X && next.Y == original.Y {
			result[i] = original
			continue
		}
		result[i] = &next
	}

	return result
}

func isAnchor(b core.NodeBox, anchorID string) bool {
	return anchorID != "" && b.ID == anchorID
}

// separateBoxes pushes a and b apart if they overlap and reports whether
// anything moved.
func separateBoxes(a, b *core.NodeBox, opts CollisionOptions) bool {
	if !Overlaps(*a, *b, opts.Margin) {
		return false
	}

	aFixed := isAnchor(*a, opts.AnchorID)
	bFixed := isAnchor(*b, opts.AnchorID)
	if aFixed && bFixed {
		return false
	}

	overlapX := math.Min(a.X+a.Width, b.X+b.Width) + opts.Margin - math.Max(a.X, b.X)
	overlapY := math.Min(a.Y+a.Height, b.Y+b.Height) + opts.Margin - math.Max(a.Y, b.Y)

	// Identical centers push b toward positive x or y.
	aCenter := a.Center()
	bCenter := b.Center()

	if overlapX <= overlapY {
		dir := 1.0
		if bCenter.X < aCenter.X {
			dir = -1
		}
		aShift, bShift := splitPush(overlapX, aFixed, bFixed)
		a.X -= dir * aShift
		b.X += dir * bShift
	} else {
		dir := 1.0
		if bCenter.Y < aCenter.Y {
			dir = -1
		}
		aShift, bShift := splitPush(overlapY, aFixed, bFixed)
		a.Y -= dir * aShift
		b.Y += dir * bShift
	}

	return true
}

// splitPush divides an overlap between two boxes. A fixed box hands its half
// to the other one.
func splitPush(overlap float64, aFixed, bFixed bool) (aShift, bShift float64) {
	half := overlap / 2
	switch {
	case aFixed:
		return 0, half * 2
	case bFixed:
		return half * 2, 0
	default:
		return half, half
	}
}
