package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a diagram from a JSON file and repairs missing ids.
func Load(filename string) (*Diagram, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	EnsureUniqueIDs(&d)
	return &d, nil
}

// Save writes the diagram as indented JSON. Placeholders and their edges are
// left out.
func Save(filename string, d *Diagram) error {
	data, err := json.MarshalIndent(d.Committed(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// Committed returns a copy without placeholder nodes or edges touching them.
func (d *Diagram) Committed() *Diagram {
	out := d.Clone()
	for _, n := range d.Nodes {
		if n.Placeholder {
			out.RemoveNode(n.ID)
		}
	}
	return out
}
