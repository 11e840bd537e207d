// Package importer turns diagrams written in other tools' text formats into
// workflow documents laid out on the editor's grid.
package importer

import (
	"fmt"
	"strings"

	"flowgrid/diagram"
)

// Importer converts one text format into a document.
type Importer interface {
	// CanImport checks if the given content looks like this format
	CanImport(content string) bool

	// Import converts the content into a document with grid positions
	Import(content string) (*diagram.Diagram, error)

	// FormatName returns the human-readable name of the format
	FormatName() string

	// FileExtensions returns common file extensions for this format
	FileExtensions() []string
}

// Registry manages available importers
type Registry struct {
	importers []Importer
}

// NewRegistry creates a registry holding the given importers.
func NewRegistry(importers ...Importer) *Registry {
	return &Registry{importers: importers}
}

// Register adds a new importer to the registry
func (r *Registry) Register(imp Importer) {
	r.importers = append(r.importers, imp)
}

// DetectFormat attempts to detect the format of the given content
func (r *Registry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("unable to detect format")
}

// Import imports content using auto-detection
func (r *Registry) Import(content string) (*diagram.Diagram, error) {
	imp, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// ImportWithFormat imports content using the named format
func (r *Registry) ImportWithFormat(content, format string) (*diagram.Diagram, error) {
	for _, imp := range r.importers {
		if strings.EqualFold(imp.FormatName(), format) {
			return imp.Import(content)
		}
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// AvailableFormats returns the names of the registered formats
func (r *Registry) AvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.FormatName()
	}
	return formats
}
