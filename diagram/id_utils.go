package diagram

import "github.com/google/uuid"

// NewID mints a fresh node or edge identifier.
func NewID() string {
	return uuid.NewString()
}

// EnsureUniqueIDs gives every node and edge a unique id. Missing ids and
// repeats of an earlier id are replaced; edges that pointed at a replaced
// node id keep pointing at the first node that owned it.
func EnsureUniqueIDs(d *Diagram) {
	if d == nil {
		return
	}

	seen := make(map[string]bool, len(d.Nodes))
	for i := range d.Nodes {
		id := d.Nodes[i].ID
		if id == "" || seen[id] {
			d.Nodes[i].ID = NewID()
		}
		seen[d.Nodes[i].ID] = true
	}

	seenEdges := make(map[string]bool, len(d.Edges))
	for i := range d.Edges {
		id := d.Edges[i].ID
		if id == "" || seenEdges[id] {
			d.Edges[i].ID = NewID()
		}
		seenEdges[d.Edges[i].ID] = true
	}
}
