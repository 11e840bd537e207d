package export

import (
	"fmt"
	"sort"
	"strings"

	"flowgrid/diagram"
)

// MermaidExporter exports documents as a left-to-right Mermaid flowchart.
// Nodes are declared in reading order (top to bottom, then left to right)
// so the generated layout follows the grid layout.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the committed part of d to Mermaid syntax
func (e *MermaidExporter) Export(d *diagram.Diagram) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	d = d.Committed()
	if len(d.Nodes) == 0 {
		return "", fmt.Errorf("diagram has no nodes")
	}

	nodes := make([]diagram.Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Y != nodes[j].Y {
			return nodes[i].Y < nodes[j].Y
		}
		return nodes[i].X < nodes[j].X
	})

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	// Mermaid ids must be simple words; uuids are not.
	nodeMap := make(map[string]string, len(nodes))
	for i, node := range nodes {
		nodeID := fmt.Sprintf("N%d", i+1)
		nodeMap[node.ID] = nodeID
		sb.WriteString(fmt.Sprintf("    %s%s\n", nodeID, formatNodeWithShape(nodeLabel(node), shapeFor(node.Type))))
	}

	if len(d.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range d.Edges {
		fromID, ok := nodeMap[edge.From]
		if !ok {
			continue
		}
		toID, ok := nodeMap[edge.To]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", fromID, toID))
	}

	return sb.String(), nil
}

// FileExtension returns the recommended file extension
func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

func nodeLabel(node diagram.Node) string {
	label := node.Label
	if label == "" {
		label = node.Type
	}
	if label == "" {
		label = "node"
	}
	return `"` + strings.ReplaceAll(label, `"`, "#quot;") + `"`
}

// shapeFor picks a Mermaid shape for the built-in widget types.
func shapeFor(widgetType string) string {
	switch widgetType {
	case "trigger":
		return "stadium"
	case "condition":
		return "rhombus"
	case "agent":
		return "hexagon"
	case "output":
		return "rounded"
	default:
		return "rectangle"
	}
}

func formatNodeWithShape(label, shape string) string {
	switch shape {
	case "stadium":
		return fmt.Sprintf("([%s])", label)
	case "rounded":
		return fmt.Sprintf("(%s)", label)
	case "hexagon":
		return fmt.Sprintf("{{%s}}", label)
	case "rhombus":
		return fmt.Sprintf("{%s}", label)
	default:
		return fmt.Sprintf("[%s]", label)
	}
}
