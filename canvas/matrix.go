// Package canvas provides a 2D character grid the editor paints into before
// the terminal host copies it to the screen.
package canvas

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// MatrixCanvas is a rune matrix with box, line and text primitives.
//
// MatrixCanvas is NOT thread-safe. Origin (0,0) is top-left, X grows right
// and Y grows down, all in character cells. A zero rune marks the second
// cell of a wide character.
type MatrixCanvas struct {
	cells  []rune // row-major, width*height
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a blank canvas of width x height cells.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	c := &MatrixCanvas{
		cells:  make([]rune, width*height),
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the rune at (x, y), or ' ' off the canvas.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inBounds(x, y) {
		return ' '
	}
	return c.cells[c.index(x, y)]
}

// Set writes a rune, merging box-drawing intersections with what is there.
func (c *MatrixCanvas) Set(x, y int, char rune) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	i := c.index(x, y)
	c.cells[i] = c.merger.Merge(c.cells[i], char)
	return nil
}

// Put overwrites a rune. Off-canvas writes are dropped.
func (c *MatrixCanvas) Put(x, y int, char rune) {
	if c.inBounds(x, y) {
		c.cells[c.index(x, y)] = char
	}
}

// Clear blanks every cell.
func (c *MatrixCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

// Each calls fn for every cell in row order, skipping wide-character
// continuations.
func (c *MatrixCanvas) Each(fn func(x, y int, r rune)) {
	for i, r := range c.cells {
		if r != 0 {
			fn(i%c.width, i/c.width, r)
		}
	}
}

// String renders the rows joined by newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(len(c.cells) + c.height)
	for i, r := range c.cells {
		if i > 0 && i%c.width == 0 {
			sb.WriteByte('\n')
		}
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// DrawBox outlines a width x height rectangle with its top-left cell at
// (x, y). Parts off the canvas are clipped.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("box %dx%d is smaller than its corners", width, height)
	}
	right, bottom := x+width-1, y+height-1

	for col := x + 1; col < right; col++ {
		c.Set(col, y, style.Horizontal)
		c.Set(col, bottom, style.Horizontal)
	}
	for row := y + 1; row < bottom; row++ {
		c.Set(x, row, style.Vertical)
		c.Set(right, row, style.Vertical)
	}
	c.Set(x, y, style.TopLeft)
	c.Set(right, y, style.TopRight)
	c.Set(x, bottom, style.BottomLeft)
	c.Set(right, bottom, style.BottomRight)
	return nil
}

// FillRect blanks the inside of a rectangle.
func (c *MatrixCanvas) FillRect(x, y, width, height int, char rune) {
	for j := y; j < y+height; j++ {
		for i := x; i < x+width; i++ {
			c.Put(i, j, char)
		}
	}
}

// DrawLine plots char along the straight segment between two cells, one
// cell per step along the longer axis.
func (c *MatrixCanvas) DrawLine(x1, y1, x2, y2 int, char rune) {
	steps := max(abs(x2-x1), abs(y2-y1))
	if steps == 0 {
		c.Put(x1, y1, char)
		return
	}
	dx := float64(x2-x1) / float64(steps)
	dy := float64(y2-y1) / float64(steps)
	for i := 0; i <= steps; i++ {
		x := x1 + int(math.Round(dx*float64(i)))
		y := y1 + int(math.Round(dy*float64(i)))
		c.Put(x, y, char)
	}
}

// DrawOrthogonal draws an elbow connector: horizontal to the midpoint column,
// vertical, then horizontal into the target.
func (c *MatrixCanvas) DrawOrthogonal(x1, y1, x2, y2 int) {
	if y1 == y2 {
		c.drawHorizontal(x1, x2, y1)
		return
	}

	mid := x1 + (x2-x1)/2
	c.drawHorizontal(x1, mid, y1)
	c.drawVertical(mid, y1, y2)
	c.drawHorizontal(mid, x2, y2)

	// Corners at the elbows
	goingDown := y2 > y1
	goingRight := x2 >= x1
	switch {
	case goingRight && goingDown:
		c.Put(mid, y1, '╮')
		c.Put(mid, y2, '╰')
	case goingRight && !goingDown:
		c.Put(mid, y1, '╯')
		c.Put(mid, y2, '╭')
	case !goingRight && goingDown:
		c.Put(mid, y1, '╭')
		c.Put(mid, y2, '╯')
	default:
		c.Put(mid, y1, '╰')
		c.Put(mid, y2, '╮')
	}
}

func (c *MatrixCanvas) drawHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.Set(x, y, '─')
	}
}

func (c *MatrixCanvas) drawVertical(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.Set(x, y, '│')
	}
}

// DrawText writes text starting at (x, y). With a positive maxWidth the text
// is cut to that many cells with a trailing ellipsis. Wide runes that would
// straddle the right edge are dropped.
func (c *MatrixCanvas) DrawText(x, y int, text string, maxWidth int) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}
	if maxWidth > 0 {
		text = runewidth.Truncate(text, maxWidth, "…")
	}

	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.width {
			break
		}
		if col >= 0 {
			c.cells[c.index(col, y)] = r
			if w == 2 {
				c.cells[c.index(col+1, y)] = 0
			}
		}
		col += w
	}
	return nil
}

func (c *MatrixCanvas) index(x, y int) int {
	return y*c.width + x
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
