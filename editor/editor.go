// Package editor is the host side of the placement subsystem. It owns the
// workflow document, answers the connector machine's callbacks by creating,
// resizing and committing placeholder nodes, and keeps nodes apart when they
// are dragged, dropped or added.
package editor

import (
	"errors"
	"fmt"
	"io"

	"flowgrid/catalog"
	"flowgrid/connector"
	"flowgrid/core"
	"flowgrid/diagram"
	"flowgrid/geometry"
	"flowgrid/layout"

	"github.com/charmbracelet/log"
)

// ErrPlaceholder is returned for operations that only apply to committed nodes.
var ErrPlaceholder = errors.New("node is a placeholder")

// handleTolerance is how far from a handle, in logical units, a pointer may
// land and still hit it.
const handleTolerance = geometry.GridCell

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistorySize sets how many undo states are kept.
func WithHistorySize(n int) Option {
	return func(e *Editor) {
		e.history = NewHistory(n)
	}
}

// Editor holds the document being edited and implements connector.Callbacks.
type Editor struct {
	doc     *diagram.Diagram
	catalog *catalog.Catalog
	history *History
	logger  *log.Logger
	machine *connector.Machine

	pickerFor string // placeholder waiting for a widget type
	selected  string
	drag      *dragState
	dirty     bool
	status    string
}

var _ connector.Callbacks = (*Editor)(nil)

// New creates an editor over d. A nil d starts an empty document and a nil
// cat uses catalog.Default.
func New(d *diagram.Diagram, cat *catalog.Catalog, opts ...Option) *Editor {
	if d == nil {
		d = &diagram.Diagram{}
	}
	if cat == nil {
		cat = catalog.Default()
	}

	e := &Editor{
		doc:     d,
		catalog: cat,
		history: NewHistory(0),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.history.Save(e.doc)
	return e
}

// Attach connects the machine whose callbacks this editor answers. Undo, redo
// and the picker go through it.
func (e *Editor) Attach(m *connector.Machine) {
	e.machine = m
}

// Diagram returns the live document.
func (e *Editor) Diagram() *diagram.Diagram {
	return e.doc
}

// Catalog returns the widget catalog.
func (e *Editor) Catalog() *catalog.Catalog {
	return e.catalog
}

// Dirty reports whether there are changes since the last MarkSaved.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkSaved clears the dirty flag.
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// Status returns the last status message.
func (e *Editor) Status() string {
	return e.status
}

// SetStatus replaces the status message.
func (e *Editor) SetStatus(msg string) {
	e.status = msg
}

// Selected returns the id of the most recently placed or moved node.
func (e *Editor) Selected() string {
	return e.selected
}

// PickerOpen reports whether a placeholder is waiting for a widget type.
func (e *Editor) PickerOpen() bool {
	return e.pickerFor != ""
}

// Save writes the committed document to filename.
func (e *Editor) Save(filename string) error {
	if err := diagram.Save(filename, e.doc); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	e.dirty = false
	e.status = "saved " + filename
	e.logger.Info("saved", "file", filename, "nodes", len(e.doc.Nodes))
	return nil
}

// CreatePlaceholder adds a minimal placeholder at anchor with a pending edge
// from sourceID. It refuses, returning "", when the source is unknown.
func (e *Editor) CreatePlaceholder(sourceID string, anchor core.Point) string {
	source, err := e.doc.Node(sourceID)
	if err != nil || source.Placeholder {
		e.logger.Debug("placeholder refused", "source", sourceID)
		return ""
	}

	rect := geometry.ComputeGridRect(anchor, anchor)
	id := diagram.NewID()
	e.doc.Nodes = append(e.doc.Nodes, diagram.Node{
		ID:          id,
		X:           rect.X,
		Y:           rect.Y,
		Width:       rect.Width,
		Height:      rect.Height,
		GridCols:    rect.Cols,
		GridRows:    rect.Rows,
		Placeholder: true,
	})
	e.doc.Edges = append(e.doc.Edges, diagram.Edge{
		ID:   diagram.NewID(),
		From: sourceID,
		To:   id,
	})

	e.logger.Debug("placeholder created", "id", id, "source", sourceID, "anchor", anchor)
	e.status = "size the new node, click to confirm"
	return id
}

// ResizePlaceholder applies the sizing rect to the placeholder.
func (e *Editor) ResizePlaceholder(placeholderID string, rect core.Rect) {
	node, err := e.placeholder(placeholderID)
	if err != nil {
		e.logger.Warn("resize of unknown placeholder", "id", placeholderID)
		return
	}
	node.X, node.Y = rect.X, rect.Y
	node.Width, node.Height = rect.Width, rect.Height
}

// SizingFinalized opens the widget picker for the placeholder.
func (e *Editor) SizingFinalized(placeholderID string) {
	if _, err := e.placeholder(placeholderID); err != nil {
		return
	}
	e.pickerFor = placeholderID
	e.status = "pick a widget type"
}

// Finalize turns the placeholder into a typed node and pushes its neighbours
// out of the way.
func (e *Editor) Finalize(placeholderID, widgetType string, template any, gridCols, gridRows int) {
	if e.pickerFor == placeholderID {
		e.pickerFor = ""
	}

	node, err := e.placeholder(placeholderID)
	if err != nil {
		e.logger.Warn("finalize of unknown placeholder", "id", placeholderID)
		return
	}

	node.Placeholder = false
	node.Type = widgetType
	node.Label = widgetType
	if wt, err := e.catalog.Lookup(widgetType); err == nil {
		node.Label = wt.Label
	}
	node.GridCols, node.GridRows = gridCols, gridRows
	node.Template = templateValues(template)

	moved := e.resolveAround(placeholderID)
	e.selected = placeholderID
	e.commit()

	e.logger.Info("node placed", "id", placeholderID, "type", widgetType,
		"cols", gridCols, "rows", gridRows, "pushed", moved)
	e.status = fmt.Sprintf("placed %s", node.Label)
}

// Cancel drops the placeholder and its pending edge.
func (e *Editor) Cancel(placeholderID string) {
	if e.pickerFor == placeholderID {
		e.pickerFor = ""
	}
	if _, err := e.placeholder(placeholderID); err != nil {
		return
	}
	e.doc.RemoveNode(placeholderID)
	e.logger.Debug("placeholder cancelled", "id", placeholderID)
	e.status = "cancelled"
}

// PickWidget finalizes the waiting placeholder as the catalog entry at
// index. It reports false when no placeholder is waiting or the index is out
// of range.
func (e *Editor) PickWidget(index int) bool {
	if e.machine == nil || !e.PickerOpen() {
		return false
	}
	wt, ok := e.catalog.At(index)
	if !ok {
		return false
	}
	return e.machine.SelectWidget(wt.Name, wt.Template)
}

// HitTest reports what lies under a logical point. Later nodes are on top.
// Only committed nodes have handles.
func (e *Editor) HitTest(p core.Point) connector.Target {
	for i := len(e.doc.Nodes) - 1; i >= 0; i-- {
		node := e.doc.Nodes[i]
		if !node.Placeholder {
			h := node.Handle()
			if abs(p.X-h.X) <= handleTolerance/2 && abs(p.Y-h.Y) <= handleTolerance/2 {
				return connector.Target{Kind: connector.TargetHandle, NodeID: node.ID, HandleID: "out"}
			}
		}
		if node.Rect().Contains(p) {
			return connector.Target{Kind: connector.TargetNode, NodeID: node.ID}
		}
	}
	return connector.Target{Kind: connector.TargetCanvas}
}

// Resolve hit-tests a screen point. A handle target also carries the screen
// cell the handle is drawn in.
func (e *Editor) Resolve(surface connector.Surface, screen core.Point) connector.Target {
	t := e.HitTest(surface.ScreenToLogical(screen))
	if t.Kind != connector.TargetHandle {
		return t
	}
	if node, err := e.doc.Node(t.NodeID); err == nil {
		x, y := screenCell(surface, node.Handle())
		t.HandleScreen = &core.Point{X: float64(x), Y: float64(y)}
	}
	return t
}

// MoveNode drops a committed node at pos, snapped to the grid, and pushes
// overlapping neighbours away. The moved node itself stays where it was put.
func (e *Editor) MoveNode(id string, pos core.Point) error {
	node, err := e.doc.Node(id)
	if err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	if node.Placeholder {
		return fmt.Errorf("move %s: %w", id, ErrPlaceholder)
	}

	node.X, node.Y = geometry.Snap(pos.X), geometry.Snap(pos.Y)
	moved := e.resolveAround(id)
	e.selected = id
	e.commit()

	e.logger.Debug("node moved", "id", id, "x", node.X, "y", node.Y, "pushed", moved)
	return nil
}

// AddNode places a node of widgetType at its catalog default size, as close
// to desired as the placement spacing allows.
func (e *Editor) AddNode(widgetType string, desired core.Point) (string, error) {
	wt, err := e.catalog.Lookup(widgetType)
	if err != nil {
		return "", err
	}
	size := wt.Size()

	existing := make([]core.NodeBox, 0, len(e.doc.Nodes))
	for _, n := range e.doc.Nodes {
		existing = append(existing, n.Box())
	}
	pos := layout.FindNonOverlappingPosition(existing, size.Width, size.Height, desired)

	id := diagram.NewID()
	if err := e.doc.AddNode(diagram.Node{
		ID:       id,
		Type:     wt.Name,
		Label:    wt.Label,
		X:        pos.X,
		Y:        pos.Y,
		Width:    size.Width,
		Height:   size.Height,
		Template: templateValues(wt.Template),
	}); err != nil {
		return "", err
	}

	e.selected = id
	e.commit()
	e.logger.Debug("node added", "id", id, "type", wt.Name, "x", pos.X, "y", pos.Y)
	e.status = "added " + wt.Label
	return id, nil
}

// DeleteNode removes a committed node and its edges.
func (e *Editor) DeleteNode(id string) error {
	node, err := e.doc.Node(id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if node.Placeholder {
		return fmt.Errorf("delete %s: %w", id, ErrPlaceholder)
	}
	if err := e.doc.RemoveNode(id); err != nil {
		return err
	}
	if e.selected == id {
		e.selected = ""
	}
	e.commit()
	return nil
}

// Undo restores the previous committed state, cancelling any gesture first.
func (e *Editor) Undo() bool {
	e.cancelGesture()
	d := e.history.Undo()
	if d == nil {
		return false
	}
	e.doc = d
	e.dirty = true
	e.status = "undo"
	return true
}

// Redo re-applies an undone state, cancelling any gesture first.
func (e *Editor) Redo() bool {
	e.cancelGesture()
	d := e.history.Redo()
	if d == nil {
		return false
	}
	e.doc = d
	e.dirty = true
	e.status = "redo"
	return true
}

// History returns the undo history.
func (e *Editor) History() *History {
	return e.history
}

func (e *Editor) cancelGesture() {
	if e.machine != nil {
		e.machine.Cancel()
	}
	e.drag = nil
}

func (e *Editor) commit() {
	e.history.Save(e.doc)
	e.dirty = true
}

// resolveAround separates every node from its neighbours, holding id still,
// and reports how many nodes moved.
func (e *Editor) resolveAround(id string) int {
	opts := layout.DefaultCollisionOptions()
	opts.AnchorID = id

	before := e.doc.Boxes()
	after := layout.ResolveCollisions(before, opts)
	return e.doc.ApplyBoxes(before, after)
}

func (e *Editor) placeholder(id string) (*diagram.Node, error) {
	node, err := e.doc.Node(id)
	if err != nil {
		return nil, err
	}
	if !node.Placeholder {
		return nil, fmt.Errorf("%s: %w", id, diagram.ErrNodeNotFound)
	}
	return node, nil
}

// templateValues copies a widget template into node storage.
func templateValues(template any) map[string]string {
	values, ok := template.(map[string]string)
	if !ok || len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
