package export

import (
	"encoding/json"

	"flowgrid/diagram"
)

// JSONExporter exports documents as the editor saves them.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the committed part of d to JSON
func (e *JSONExporter) Export(d *diagram.Diagram) (string, error) {
	data, err := json.MarshalIndent(d.Committed(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileExtension returns the file extension for JSON
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
