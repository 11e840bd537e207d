package connector

import "flowgrid/core"

// PhaseKind names a phase for display and logging.
type PhaseKind int

const (
	PhaseIdle        PhaseKind = iota // No gesture in progress
	PhasePositioning                  // Dragging a connection out of a handle
	PhaseSizing                       // Sizing the placeholder from its anchor
	PhasePlaced                       // Waiting for a widget type
)

// String returns the phase name for display
func (k PhaseKind) String() string {
	switch k {
	case PhaseIdle:
		return "IDLE"
	case PhasePositioning:
		return "POSITIONING"
	case PhaseSizing:
		return "SIZING"
	case PhasePlaced:
		return "PLACED"
	default:
		return "UNKNOWN"
	}
}

// Phase is one of Idle, Positioning, Sizing or Placed.
type Phase interface {
	Kind() PhaseKind
	isPhase()
}

// Idle means no gesture is in progress.
type Idle struct{}

// Positioning tracks a connection being drawn from a handle.
type Positioning struct {
	SourceID  string
	SourcePos core.Point // logical position of the handle
	CursorPos core.Point // logical pointer position
}

// Sizing tracks a placeholder growing out of Anchor.
type Sizing struct {
	PlaceholderID string
	SourceID      string
	Anchor        core.Point
}

// Placed holds a sized placeholder until a widget type is chosen.
type Placed struct {
	PlaceholderID string
	SourceID      string
	Anchor        core.Point
	GridCols      int
	GridRows      int
}

func (Idle) Kind() PhaseKind        { return PhaseIdle }
func (Positioning) Kind() PhaseKind { return PhasePositioning }
func (Sizing) Kind() PhaseKind      { return PhaseSizing }
func (Placed) Kind() PhaseKind      { return PhasePlaced }

func (Idle) isPhase()        {}
func (Positioning) isPhase() {}
func (Sizing) isPhase()      {}
func (Placed) isPhase()      {}
