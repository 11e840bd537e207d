package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"flowgrid/diagram"

	"github.com/goccy/go-graphviz"
)

// DOTExporter exports documents to Graphviz DOT syntax, ranked left to right
// like the editor lays out new nodes.
type DOTExporter struct{}

// NewDOTExporter creates a new DOT exporter
func NewDOTExporter() *DOTExporter {
	return &DOTExporter{}
}

// Export converts the committed part of d to DOT
func (e *DOTExporter) Export(d *diagram.Diagram) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	d = d.Committed()
	if len(d.Nodes) == 0 {
		return "", fmt.Errorf("diagram has no nodes")
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", plainLabel(n))}
		attrs = append(attrs, dotShape(n.Type)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	if len(d.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, edge := range d.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", edge.From, edge.To)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// FileExtension returns the recommended file extension
func (e *DOTExporter) FileExtension() string {
	return ".dot"
}

func plainLabel(n diagram.Node) string {
	switch {
	case n.Label != "":
		return n.Label
	case n.Type != "":
		return n.Type
	default:
		return "node"
	}
}

func dotShape(widgetType string) []string {
	switch widgetType {
	case "trigger":
		return []string{"shape=oval"}
	case "condition":
		return []string{"shape=diamond"}
	case "agent":
		return []string{"shape=hexagon"}
	case "output":
		return []string{`style="rounded"`}
	default:
		return nil
	}
}

// SVGExporter renders the DOT export with Graphviz.
type SVGExporter struct {
	dot *DOTExporter
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{dot: NewDOTExporter()}
}

// Export renders the committed part of d as SVG
func (e *SVGExporter) Export(d *diagram.Diagram) (string, error) {
	dot, err := e.dot.Export(d)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return "", fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

// FileExtension returns the recommended file extension
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}
