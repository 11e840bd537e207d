// Package validation checks a workflow document for structural and geometric
// problems: broken references, geometry off the grid and nodes that crowd
// each other.
package validation

import (
	"fmt"

	"flowgrid/diagram"
	"flowgrid/geometry"
	"flowgrid/layout"
)

// Severity grades an issue.
type Severity int

const (
	Warning Severity = iota // The document loads but the editor would fix it up
	Error                   // The document is broken
)

// String returns the severity name for display
func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// ValidationError describes one problem, tied to a node or edge when there
// is one.
type ValidationError struct {
	Severity Severity
	NodeID   string
	EdgeID   string
	Message  string
}

func (e ValidationError) Error() string {
	switch {
	case e.NodeID != "":
		return fmt.Sprintf("%s: node %s: %s", e.Severity, e.NodeID, e.Message)
	case e.EdgeID != "":
		return fmt.Sprintf("%s: edge %s: %s", e.Severity, e.EdgeID, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
}

// Validator checks documents.
type Validator struct {
	errors []ValidationError
	margin float64 // clearance below which nodes count as crowded
}

// NewValidator creates a validator that flags nodes closer than one grid
// cell, the clearance drag-time collision resolution keeps.
func NewValidator() *Validator {
	return &Validator{margin: geometry.GridCell}
}

// SetMargin changes the clearance checked between nodes.
func (v *Validator) SetMargin(margin float64) {
	v.margin = margin
}

// Validate returns every problem found in d, errors before warnings in
// document order within each group.
func (v *Validator) Validate(d *diagram.Diagram) []ValidationError {
	v.errors = nil

	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			v.add(Error, "", "", "node without an id")
			continue
		}
		if nodes[n.ID] {
			v.add(Error, n.ID, "", "duplicate node id")
		}
		nodes[n.ID] = true
		v.checkGeometry(n)
	}

	edges := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if e.ID != "" && edges[e.ID] {
			v.add(Error, "", e.ID, "duplicate edge id")
		}
		edges[e.ID] = true
		if !nodes[e.From] {
			v.add(Error, "", e.ID, fmt.Sprintf("source %q does not exist", e.From))
		}
		if !nodes[e.To] {
			v.add(Error, "", e.ID, fmt.Sprintf("target %q does not exist", e.To))
		}
	}

	v.checkSpacing(d)

	return v.sorted()
}

func (v *Validator) checkGeometry(n diagram.Node) {
	if !geometry.IsFinite(n.X, n.Y, n.Width, n.Height) {
		v.add(Error, n.ID, "", "geometry is not finite")
		return
	}
	if n.Width < 0 || n.Height < 0 {
		v.add(Error, n.ID, "", fmt.Sprintf("negative size %gx%g", n.Width, n.Height))
	}
	if !geometry.OnGrid(n.X) || !geometry.OnGrid(n.Y) {
		v.add(Warning, n.ID, "", fmt.Sprintf("position (%g, %g) is off the %d-unit grid", n.X, n.Y, geometry.GridCell))
	}
	if !geometry.OnGrid(n.Width) || !geometry.OnGrid(n.Height) {
		v.add(Warning, n.ID, "", fmt.Sprintf("size %gx%g is not whole grid cells", n.Width, n.Height))
	}
}

func (v *Validator) checkSpacing(d *diagram.Diagram) {
	boxes := d.Boxes()
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			if layout.Overlaps(*a, *b, v.margin) {
				v.add(Warning, a.ID, "", fmt.Sprintf("within %g of node %s", v.margin, b.ID))
			}
		}
	}
}

func (v *Validator) add(sev Severity, nodeID, edgeID, msg string) {
	v.errors = append(v.errors, ValidationError{
		Severity: sev,
		NodeID:   nodeID,
		EdgeID:   edgeID,
		Message:  msg,
	})
}

func (v *Validator) sorted() []ValidationError {
	out := make([]ValidationError, 0, len(v.errors))
	for _, sev := range []Severity{Error, Warning} {
		for _, e := range v.errors {
			if e.Severity == sev {
				out = append(out, e)
			}
		}
	}
	return out
}

// HasErrors reports whether any issue is an Error.
func HasErrors(issues []ValidationError) bool {
	for _, e := range issues {
		if e.Severity == Error {
			return true
		}
	}
	return false
}
