// Package core contains the fundamental geometry types shared by the flowgrid
// placement engine and its host editor.
package core

// DefaultNodeWidth and DefaultNodeHeight are used for a node that has neither
// a measured nor a styled size.
const (
	DefaultNodeWidth  = 100
	DefaultNodeHeight = 60
)

// DefaultNodeSize is the fallback size for nodes with no known dimensions.
var DefaultNodeSize = Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}

// Point is a coordinate in the graph's logical space (not screen cells).
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in logical units.
type Size struct {
	Width, Height float64
}

// IsZero reports whether either dimension is unset.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// NodeBox is the known geometry of an existing graph node.
type NodeBox struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
}

// NewNodeBox builds a box at pos. The first non-zero size wins; with none the
// box gets DefaultNodeSize.
func NewNodeBox(id string, pos Point, sizes ...Size) NodeBox {
	size := DefaultNodeSize
	for _, s := range sizes {
		if !s.IsZero() {
			size = s
			break
		}
	}
	return NodeBox{ID: id, X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Position returns the top-left corner of the box.
func (b NodeBox) Position() Point {
	return Point{X: b.X, Y: b.Y}
}

// Rect returns the box as a rectangle.
func (b NodeBox) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Center returns the center point of the box.
func (b NodeBox) Center() Point {
	return b.Rect().Center()
}
