// Package diagram holds the workflow document the editor works on: typed
// nodes with logical geometry and the edges between them.
package diagram

import (
	"errors"

	"flowgrid/core"
)

// Common errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrDuplicateID  = errors.New("duplicate id")
)

// Node represents a workflow step on the canvas.
type Node struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Label       string            `json:"label,omitempty"`
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	Width       float64           `json:"width,omitempty"`
	Height      float64           `json:"height,omitempty"`
	GridCols    int               `json:"gridCols,omitempty"` // Cells chosen while sizing
	GridRows    int               `json:"gridRows,omitempty"`
	Template    map[string]string `json:"template,omitempty"`
	Placeholder bool              `json:"-"` // Provisional box, never saved
}

// Box returns the node's geometry, defaulting an unset size.
func (n Node) Box() core.NodeBox {
	return core.NewNodeBox(n.ID, core.Point{X: n.X, Y: n.Y}, core.Size{Width: n.Width, Height: n.Height})
}

// Rect returns the node's footprint.
func (n Node) Rect() core.Rect {
	return n.Box().Rect()
}

// Handle returns the logical position of the node's outgoing connection
// handle, the middle of its right edge.
func (n Node) Handle() core.Point {
	r := n.Rect()
	return core.Point{X: r.Right(), Y: r.Y + r.Height/2}
}

// Edge represents a directed connection between nodes.
type Edge struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Metadata contains optional document metadata.
type Metadata struct {
	Name    string `json:"name,omitempty"`
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
}

// Diagram is a complete workflow graph.
type Diagram struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Clone creates a deep copy of the diagram
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}

	clone := &Diagram{
		Nodes:    make([]Node, len(d.Nodes)),
		Edges:    make([]Edge, len(d.Edges)),
		Metadata: d.Metadata,
	}

	// Template maps are the only reference fields on nodes
	for i, node := range d.Nodes {
		clone.Nodes[i] = node
		if node.Template != nil {
			clone.Nodes[i].Template = make(map[string]string, len(node.Template))
			for k, v := range node.Template {
				clone.Nodes[i].Template[k] = v
			}
		}
	}
	copy(clone.Edges, d.Edges)

	return clone
}

// Node returns a pointer to the node with the given id.
func (d *Diagram) Node(id string) (*Node, error) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], nil
		}
	}
	return nil, ErrNodeNotFound
}

// AddNode appends a node, rejecting an id already in use.
func (d *Diagram) AddNode(n Node) error {
	if _, err := d.Node(n.ID); err == nil {
		return ErrDuplicateID
	}
	d.Nodes = append(d.Nodes, n)
	return nil
}

// RemoveNode deletes a node and every edge touching it.
func (d *Diagram) RemoveNode(id string) error {
	idx := -1
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNodeNotFound
	}
	d.Nodes = append(d.Nodes[:idx], d.Nodes[idx+1:]...)

	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if e.From != id && e.To != id {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
	return nil
}

// Boxes snapshots every node's geometry for the layout engine.
func (d *Diagram) Boxes() []*core.NodeBox {
	boxes := make([]*core.NodeBox, len(d.Nodes))
	for i, n := range d.Nodes {
		b := n.Box()
		boxes[i] = &b
	}
	return boxes
}

// ApplyBoxes commits resolver output back to the nodes. Entries that are the
// same pointer as in before are skipped. It reports how many nodes moved.
func (d *Diagram) ApplyBoxes(before, after []*core.NodeBox) int {
	moved := 0
	for i := range after {
		if i < len(before) && before[i] == after[i] {
			continue
		}
		node, err := d.Node(after[i].ID)
		if err != nil {
			continue
		}
		node.X, node.Y = after[i].X, after[i].Y
		moved++
	}
	return moved
}
