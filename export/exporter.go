// Package export converts workflow documents to text formats other tools
// can read.
package export

import (
	"fmt"

	"flowgrid/diagram"
)

// Format represents an export format
type Format string

const (
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatJSON exports the committed document as indented JSON
	FormatJSON Format = "json"
	// FormatDOT exports to Graphviz DOT syntax
	FormatDOT Format = "dot"
	// FormatSVG renders the DOT export to SVG
	FormatSVG Format = "svg"
)

// Exporter converts a document to one format.
type Exporter interface {
	Export(d *diagram.Diagram) (string, error)
	// FileExtension returns the recommended file extension, with the dot
	FileExtension() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatDOT:
		return NewDOTExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "json":
		return FormatJSON, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns every export format.
func AvailableFormats() []Format {
	return []Format{FormatMermaid, FormatJSON, FormatDOT, FormatSVG}
}
