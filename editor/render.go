package editor

import (
	"fmt"
	"math"

	"flowgrid/canvas"
	"flowgrid/connector"
	"flowgrid/core"
	"flowgrid/diagram"
)

// Draw paints the document into c: edges first, then nodes with their
// handles, then the live connection preview and the widget picker.
func (e *Editor) Draw(c *canvas.MatrixCanvas, surface connector.Surface) {
	c.Clear()

	for _, edge := range e.doc.Edges {
		e.drawEdge(c, surface, edge)
	}
	for _, node := range e.doc.Nodes {
		drawNode(c, surface, node)
	}

	if e.machine != nil {
		if from, to, ok := e.machine.Preview(); ok {
			x1, y1 := cellOf(from)
			x2, y2 := cellOf(to)
			c.DrawLine(x1, y1, x2, y2, canvas.PreviewRune)
		}
	}

	if e.pickerFor != "" {
		e.drawPicker(c, surface)
	}
}

func (e *Editor) drawEdge(c *canvas.MatrixCanvas, surface connector.Surface, edge diagram.Edge) {
	from, err := e.doc.Node(edge.From)
	if err != nil {
		return
	}
	to, err := e.doc.Node(edge.To)
	if err != nil {
		return
	}

	x1, y1 := screenCell(surface, from.Handle())
	r := to.Rect()
	x2, y2 := screenCell(surface, core.Point{X: r.X, Y: r.Y + r.Height/2})

	c.DrawOrthogonal(x1, y1, x2-1, y2)
	c.Put(x2-1, y2, canvas.ArrowRune)
}

func drawNode(c *canvas.MatrixCanvas, surface connector.Surface, node diagram.Node) {
	r := node.Rect()
	x1, y1 := screenCell(surface, core.Point{X: r.X, Y: r.Y})
	x2, y2 := screenCell(surface, core.Point{X: r.Right(), Y: r.Bottom()})
	w := max(x2-x1, 2)
	h := max(y2-y1, 2)

	style := canvas.NodeBoxStyle
	label := node.Label
	if node.Placeholder {
		style = canvas.PlaceholderBoxStyle
		label = fmt.Sprintf("%dx%d", int(r.Width), int(r.Height))
	}
	if label == "" {
		label = node.Type
	}

	c.FillRect(x1, y1, w, h, ' ')
	c.DrawBox(x1, y1, w, h, style)
	if h > 2 && w > 2 {
		c.DrawText(x1+1, y1+1, label, w-2)
	}

	if !node.Placeholder {
		hx, hy := screenCell(surface, node.Handle())
		c.Put(hx, hy, canvas.HandleRune)
	}
}

// drawPicker lists the catalog beside the waiting placeholder.
func (e *Editor) drawPicker(c *canvas.MatrixCanvas, surface connector.Surface) {
	node, err := e.doc.Node(e.pickerFor)
	if err != nil {
		return
	}

	lines := make([]string, 0, e.catalog.Len())
	width := 0
	for i, wt := range e.catalog.Types() {
		line := fmt.Sprintf("%d %s", i+1, wt.Label)
		lines = append(lines, line)
		width = max(width, len([]rune(line)))
	}

	r := node.Rect()
	x, y := screenCell(surface, core.Point{X: r.Right(), Y: r.Y})
	x += 2

	c.FillRect(x, y, width+4, len(lines)+2, ' ')
	c.DrawBox(x, y, width+4, len(lines)+2, canvas.SimpleBoxStyle)
	for i, line := range lines {
		c.DrawText(x+2, y+1+i, line, width)
	}
}

func screenCell(surface connector.Surface, logical core.Point) (int, int) {
	return cellOf(surface.LogicalToScreen(logical))
}

func cellOf(p core.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}
