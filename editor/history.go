package editor

import "flowgrid/diagram"

// History keeps committed diagram snapshots for undo and redo. Snapshots are
// deep copies, so later edits never reach back into history.
type History struct {
	states  []*diagram.Diagram
	current int // index of the state the document is at
	max     int
}

// NewHistory creates a history holding at most max states.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]*diagram.Diagram, 0, max),
		current: -1,
		max:     max,
	}
}

// Save records d as the newest state, dropping anything that was undone.
func (h *History) Save(d *diagram.Diagram) {
	snapshot := d.Committed()

	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, snapshot)

	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo returns true if there is an earlier state.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is an undone state.
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo steps back and returns a copy of that state, or nil at the start.
func (h *History) Undo() *diagram.Diagram {
	if !h.CanUndo() {
		return nil
	}
	h.current--
	return h.states[h.current].Clone()
}

// Redo steps forward and returns a copy of that state, or nil at the end.
func (h *History) Redo() *diagram.Diagram {
	if !h.CanRedo() {
		return nil
	}
	h.current++
	return h.states[h.current].Clone()
}

// Stats returns the current position (1-based) and the number of states.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
