package layout

import (
	"fmt"
	"math/rand"
	"testing"

	"flowgrid/core"
	"flowgrid/geometry"
)

// TestValidator provides geometry checks shared by the layout tests.
type TestValidator struct {
	t *testing.T
}

// NewTestValidator creates a validator for the given test.
func NewTestValidator(t *testing.T) *TestValidator {
	return &TestValidator{t: t}
}

// ValidateNoOverlaps ensures no two boxes come within margin of each other.
func (v *TestValidator) ValidateNoOverlaps(boxes []*core.NodeBox, margin float64) {
	v.t.Helper()
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if Overlaps(*boxes[i], *boxes[j], margin) {
				v.t.Errorf("Boxes %s and %s overlap: %s and %s",
					boxes[i].ID, boxes[j].ID,
					v.boxBounds(*boxes[i]), v.boxBounds(*boxes[j]))
			}
		}
	}
}

// ValidateOnGrid ensures every box except skipID sits on a grid multiple.
func (v *TestValidator) ValidateOnGrid(boxes []*core.NodeBox, skipID string) {
	v.t.Helper()
	for _, b := range boxes {
		if b.ID == skipID {
			continue
		}
		if !geometry.OnGrid(b.X) || !geometry.OnGrid(b.Y) {
			v.t.Errorf("Box %s is off grid at (%v, %v)", b.ID, b.X, b.Y)
		}
	}
}

func (v *TestValidator) boxBounds(b core.NodeBox) string {
	return fmt.Sprintf("[%v,%v - %v,%v]", b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// GenerateCluster scatters n default-sized boxes inside a square of the
// given side, so most of them overlap.
func GenerateCluster(rng *rand.Rand, n int, side float64) []*core.NodeBox {
	boxes := make([]*core.NodeBox, n)
	for i := 0; i < n; i++ {
		b := core.NewNodeBox(fmt.Sprintf("n%d", i), core.Point{
			X: rng.Float64() * side,
			Y: rng.Float64() * side,
		})
		boxes[i] = &b
	}
	return boxes
}

// GenerateRow lays n boxes out left to right on the grid with the given gap.
func GenerateRow(n int, gap float64) []*core.NodeBox {
	boxes := make([]*core.NodeBox, n)
	for i := 0; i < n; i++ {
		b := core.NewNodeBox(fmt.Sprintf("n%d", i), core.Point{
			X: float64(i) * (core.DefaultNodeWidth + gap),
		})
		boxes[i] = &b
	}
	return boxes
}

func boxValues(boxes []*core.NodeBox) []core.NodeBox {
	out := make([]core.NodeBox, len(boxes))
	for i, b := range boxes {
		out[i] = *b
	}
	return out
}
