package importer

import (
	"fmt"
	"regexp"
	"strings"

	"flowgrid/catalog"
	"flowgrid/core"
	"flowgrid/diagram"
	"flowgrid/layout"
)

// Spacing between the ranks and rows nodes are first aimed at. The placement
// search shifts a node from there when it would crowd a neighbour.
const (
	columnStep = 320
	rowStep    = 180
)

var (
	// ID["text"], ID(["text"]), ID{{text}}, ID{text}, ID(text)
	nodePattern = regexp.MustCompile(`([A-Za-z0-9_]+)(\(\[.*?\]\)|\{\{.*?\}\}|\[.*?\]|\(.*?\)|\{.*?\})`)

	// -->, ---, -.->, ==>, <--> with an optional |label|
	arrowPattern = regexp.MustCompile(`\s*(?:<-->|-->|---|-\.->|==>)\s*`)

	// |label| on a link; its text may contain shape brackets
	labelPattern = regexp.MustCompile(`\|[^|]*\|`)

	identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// MermaidImporter reads Mermaid flowcharts. Node shapes pick the widget type
// (the reverse of the Mermaid exporter) and the catalog supplies its size.
type MermaidImporter struct {
	catalog *catalog.Catalog
}

// NewMermaidImporter creates an importer sizing nodes from cat, or from the
// built-in catalog when cat is nil.
func NewMermaidImporter(cat *catalog.Catalog) *MermaidImporter {
	if cat == nil {
		cat = catalog.Default()
	}
	return &MermaidImporter{catalog: cat}
}

// CanImport checks if the content is a Mermaid flowchart
func (m *MermaidImporter) CanImport(content string) bool {
	content = strings.TrimSpace(content)
	return strings.HasPrefix(content, "flowchart") || strings.HasPrefix(content, "graph")
}

// FormatName returns the format name
func (m *MermaidImporter) FormatName() string {
	return "Mermaid"
}

// FileExtensions returns common file extensions
func (m *MermaidImporter) FileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}

type parsedNode struct {
	name       string
	widgetType string
	label      string
}

// Import converts a Mermaid flowchart into a document.
func (m *MermaidImporter) Import(content string) (*diagram.Diagram, error) {
	if !m.CanImport(content) {
		return nil, fmt.Errorf("not a Mermaid flowchart")
	}

	var nodes []*parsedNode
	byName := make(map[string]*parsedNode)
	var links [][2]string

	declare := func(name string) *parsedNode {
		if n, ok := byName[name]; ok {
			return n
		}
		n := &parsedNode{name: name}
		byName[name] = n
		nodes = append(nodes, n)
		return n
	}

	for i, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if i == 0 || skipLine(line) {
			continue
		}
		line = labelPattern.ReplaceAllString(line, " ")

		for _, match := range nodePattern.FindAllStringSubmatch(line, -1) {
			n := declare(match[1])
			if n.widgetType == "" {
				n.widgetType, n.label = parseShape(match[2])
			}
		}

		parts := arrowPattern.Split(nodePattern.ReplaceAllString(line, "$1"), -1)
		if len(parts) < 2 {
			continue
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
			if !identPattern.MatchString(parts[j]) {
				return nil, fmt.Errorf("line %d: cannot read %q", i+1, line)
			}
		}
		for j := 0; j+1 < len(parts); j++ {
			declare(parts[j])
			declare(parts[j+1])
			links = append(links, [2]string{parts[j], parts[j+1]})
		}
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("flowchart has no nodes")
	}

	return m.build(nodes, links), nil
}

func skipLine(line string) bool {
	if line == "" || line == "end" || strings.HasPrefix(line, "%%") {
		return true
	}
	for _, keyword := range []string{"subgraph", "classDef", "class ", "style ", "linkStyle", "click "} {
		if strings.HasPrefix(line, keyword) {
			return true
		}
	}
	return false
}

// parseShape maps a bracketed shape to a widget type and its label.
func parseShape(shape string) (string, string) {
	var widgetType string
	var open int
	switch {
	case strings.HasPrefix(shape, "(["):
		widgetType, open = "trigger", 2
	case strings.HasPrefix(shape, "{{"):
		widgetType, open = "agent", 2
	case strings.HasPrefix(shape, "{"):
		widgetType, open = "condition", 1
	case strings.HasPrefix(shape, "("):
		widgetType, open = "output", 1
	default:
		widgetType, open = "script", 1
	}
	label := strings.TrimSpace(shape[open : len(shape)-open])
	label = strings.Trim(label, `"`)
	return widgetType, strings.ReplaceAll(label, "#quot;", `"`)
}

// build ranks nodes by their longest path from a source and places each one
// with the placement search, in declaration order within a rank.
func (m *MermaidImporter) build(nodes []*parsedNode, links [][2]string) *diagram.Diagram {
	rank := make(map[string]int, len(nodes))
	// Bounded relaxation; cycles stop growing once a rank reaches len(nodes).
	for pass := 0; pass < len(nodes); pass++ {
		changed := false
		for _, l := range links {
			if next := rank[l[0]] + 1; next > rank[l[1]] && next < len(nodes) {
				rank[l[1]] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	d := &diagram.Diagram{}
	ids := make(map[string]string, len(nodes))
	rows := make(map[int]int)
	placed := make([]core.NodeBox, 0, len(nodes))

	for _, n := range nodes {
		widgetType := n.widgetType
		if widgetType == "" {
			widgetType = "script"
		}
		wt, err := m.catalog.Lookup(widgetType)
		if err != nil {
			wt = catalog.WidgetType{Name: widgetType}
		}
		size := wt.Size()

		label := n.label
		if label == "" {
			label = n.name
		}

		r := rank[n.name]
		desired := core.Point{X: float64(r * columnStep), Y: float64(rows[r] * rowStep)}
		rows[r]++
		pos := layout.FindNonOverlappingPosition(placed, size.Width, size.Height, desired)

		id := diagram.NewID()
		ids[n.name] = id
		placed = append(placed, core.NewNodeBox(id, pos, size))

		var template map[string]string
		if len(wt.Template) > 0 {
			template = make(map[string]string, len(wt.Template))
			for k, v := range wt.Template {
				template[k] = v
			}
		}

		d.Nodes = append(d.Nodes, diagram.Node{
			ID:       id,
			Type:     widgetType,
			Label:    label,
			X:        pos.X,
			Y:        pos.Y,
			Width:    size.Width,
			Height:   size.Height,
			Template: template,
		})
	}

	for _, l := range links {
		d.Edges = append(d.Edges, diagram.Edge{ID: diagram.NewID(), From: ids[l[0]], To: ids[l[1]]})
	}
	return d
}
