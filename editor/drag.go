package editor

import (
	"flowgrid/connector"
	"flowgrid/core"
)

// dragState tracks a node being dragged by its body.
type dragState struct {
	id     string
	grab   core.Point // pointer offset from the node's top-left corner
	origin core.Point
}

// Dragging reports whether a node drag is in progress.
func (e *Editor) Dragging() bool {
	return e.drag != nil
}

// ListenForDrags lets the user drag committed nodes by their body while no
// connector gesture is active. The node follows the pointer freely and is
// snapped and separated from its neighbours on release. ESC puts it back.
// The returned func detaches every listener.
func (e *Editor) ListenForDrags(in connector.InputSource, surface connector.Surface) connector.Unsubscribe {
	subs := []connector.Unsubscribe{
		in.SubscribePointerDown(func(ev connector.PointerEvent) {
			e.beginDrag(ev.Target, surface.ScreenToLogical(ev.Screen))
		}),
		in.SubscribePointerMove(func(ev connector.PointerEvent) {
			e.dragTo(surface.ScreenToLogical(ev.Screen))
		}),
		in.SubscribeClick(func(connector.PointerEvent) {
			e.endDrag()
		}),
		in.SubscribeKey(func(ev connector.KeyEvent) {
			if ev.Key == connector.KeyEscape {
				e.abortDrag()
			}
		}),
	}
	return func() {
		for _, unsubscribe := range subs {
			unsubscribe()
		}
	}
}

func (e *Editor) beginDrag(target connector.Target, at core.Point) {
	if target.Kind != connector.TargetNode || target.NodeID == "" {
		return
	}
	if e.machine != nil && e.machine.Phase().Kind() != connector.PhaseIdle {
		return
	}
	node, err := e.doc.Node(target.NodeID)
	if err != nil || node.Placeholder {
		return
	}

	origin := core.Point{X: node.X, Y: node.Y}
	e.drag = &dragState{
		id:     node.ID,
		grab:   at.Sub(origin),
		origin: origin,
	}
	e.selected = node.ID
}

func (e *Editor) dragTo(at core.Point) {
	if e.drag == nil {
		return
	}
	node, err := e.doc.Node(e.drag.id)
	if err != nil {
		e.drag = nil
		return
	}
	pos := at.Sub(e.drag.grab)
	node.X, node.Y = pos.X, pos.Y
}

func (e *Editor) endDrag() {
	if e.drag == nil {
		return
	}
	d := e.drag
	e.drag = nil

	node, err := e.doc.Node(d.id)
	if err != nil {
		return
	}
	pos := core.Point{X: node.X, Y: node.Y}
	if pos == d.origin {
		return
	}
	if err := e.MoveNode(d.id, pos); err != nil {
		e.logger.Warn("drag failed", "id", d.id, "err", err)
	}
}

func (e *Editor) abortDrag() {
	if e.drag == nil {
		return
	}
	if node, err := e.doc.Node(e.drag.id); err == nil {
		node.X, node.Y = e.drag.origin.X, e.drag.origin.Y
	}
	e.drag = nil
}
