// Package connector turns pointer and keyboard events into a new node: drag a
// connection out of a handle, click empty canvas to drop an anchor, size the
// placeholder on the grid, click to commit the size, then pick a widget type.
//
// The Machine is single-threaded. Every listener it registers, and every
// Scheduler callback, must be invoked from the goroutine that drives input.
package connector

import (
	"io"
	"time"

	"flowgrid/core"
	"flowgrid/geometry"

	"github.com/charmbracelet/log"
)

// DefaultClickDelay keeps the click that entered a phase from also leaving it.
const DefaultClickDelay = 150 * time.Millisecond

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClickDelay overrides how long Positioning and Sizing wait before
// listening for the click that advances them.
func WithClickDelay(d time.Duration) Option {
	return func(m *Machine) {
		if d >= 0 {
			m.clickDelay = d
		}
	}
}

// Machine is the connector phase state machine.
type Machine struct {
	callbacks Callbacks
	input     InputSource
	surface   Surface
	scheduler Scheduler

	logger     *log.Logger
	clickDelay time.Duration

	phase Phase
	rect  geometry.GridRect // latest sizing rect

	// Phase-local resources, released on every phase exit.
	subs      []Unsubscribe
	cancelArm func()
	gen       uint64

	started bool
}

// New creates a machine in the Idle phase. Call Start to begin listening.
func New(callbacks Callbacks, input InputSource, surface Surface, scheduler Scheduler, opts ...Option) *Machine {
	m := &Machine{
		callbacks:  callbacks,
		input:      input,
		surface:    surface,
		scheduler:  scheduler,
		logger:     log.New(io.Discard),
		clickDelay: DefaultClickDelay,
		phase:      Idle{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Start attaches the Idle listeners. It is a no-op when already started.
func (m *Machine) Start() {
	if m.started {
		return
	}
	m.started = true
	m.enter(Idle{})
}

// Close cancels any gesture in progress and detaches every listener.
func (m *Machine) Close() {
	m.Cancel()
	m.teardown()
	m.started = false
}

// Cancel aborts the current gesture. A placeholder, if one exists, is
// reported to Callbacks.Cancel after the machine is back in Idle.
func (m *Machine) Cancel() {
	var placeholderID string
	switch p := m.phase.(type) {
	case Idle:
		return
	case Sizing:
		placeholderID = p.PlaceholderID
	case Placed:
		placeholderID = p.PlaceholderID
	}

	m.logger.Debug("gesture cancelled", "phase", m.phase.Kind(), "placeholder", placeholderID)
	m.enter(Idle{})
	if placeholderID != "" {
		m.callbacks.Cancel(placeholderID)
	}
}

// SelectWidget finalizes a placed placeholder as widgetType. It reports
// false, doing nothing, outside the Placed phase.
func (m *Machine) SelectWidget(widgetType string, template any) bool {
	p, ok := m.phase.(Placed)
	if !ok {
		return false
	}

	m.logger.Debug("widget selected", "placeholder", p.PlaceholderID, "type", widgetType,
		"cols", p.GridCols, "rows", p.GridRows)
	m.enter(Idle{})
	m.callbacks.Finalize(p.PlaceholderID, widgetType, template, p.GridCols, p.GridRows)
	return true
}

// Preview returns the live connection line in screen coordinates while
// positioning.
func (m *Machine) Preview() (from, to core.Point, ok bool) {
	p, isPositioning := m.phase.(Positioning)
	if !isPositioning {
		return core.Point{}, core.Point{}, false
	}
	return m.surface.LogicalToScreen(p.SourcePos), m.surface.LogicalToScreen(p.CursorPos), true
}

// SizingRect returns the latest placeholder rect while sizing or placed.
func (m *Machine) SizingRect() (geometry.GridRect, bool) {
	switch m.phase.(type) {
	case Sizing, Placed:
		return m.rect, true
	}
	return geometry.GridRect{}, false
}

// enter releases the current phase's listeners and attaches next's.
func (m *Machine) enter(next Phase) {
	m.teardown()
	if m.phase.Kind() != next.Kind() {
		m.logger.Debug("phase", "from", m.phase.Kind(), "to", next.Kind())
	}
	m.phase = next
	m.gen++

	switch next.(type) {
	case Idle:
		m.listen(m.input.SubscribePointerDown(m.guardPointer(m.handlePointerDown)))
	case Positioning:
		m.listen(m.input.SubscribePointerMove(m.guardPointer(m.handlePositioningMove)))
		m.listenForCancel()
		m.armClick(m.handlePositioningClick)
	case Sizing:
		m.listen(m.input.SubscribePointerMove(m.guardPointer(m.handleSizingMove)))
		m.listenForCancel()
		m.armClick(m.handleSizingClick)
	case Placed:
		m.listenForCancel()
	}
}

func (m *Machine) teardown() {
	if m.cancelArm != nil {
		m.cancelArm()
		m.cancelArm = nil
	}
	for _, unsubscribe := range m.subs {
		unsubscribe()
	}
	m.subs = nil
}

func (m *Machine) listen(u Unsubscribe) {
	m.subs = append(m.subs, u)
}

func (m *Machine) listenForCancel() {
	gen := m.gen
	m.listen(m.input.SubscribeKey(func(ev KeyEvent) {
		if gen == m.gen && ev.Key == KeyEscape {
			m.Cancel()
		}
	}))
	m.listen(m.input.SubscribeSecondaryClick(func(PointerEvent) {
		if gen == m.gen {
			m.Cancel()
		}
	}))
}

// armClick attaches the phase's click listener after the click delay.
func (m *Machine) armClick(handler func(PointerEvent, core.Point)) {
	gen := m.gen
	attach := func() {
		if gen != m.gen {
			return
		}
		m.cancelArm = nil
		m.listen(m.input.SubscribeClick(m.guardPointer(handler)))
	}

	if m.clickDelay == 0 {
		attach()
		return
	}
	m.cancelArm = m.scheduler.AfterFunc(m.clickDelay, attach)
}

// guardPointer drops events delivered after their phase ended and events
// whose logical position is not finite, and hands the rest over converted.
func (m *Machine) guardPointer(handler func(PointerEvent, core.Point)) func(PointerEvent) {
	gen := m.gen
	return func(ev PointerEvent) {
		if gen != m.gen {
			return
		}
		logical := m.surface.ScreenToLogical(ev.Screen)
		if !geometry.IsFinite(logical.X, logical.Y) {
			m.logger.Debug("dropped non-finite pointer event", "phase", m.phase.Kind(), "screen", ev.Screen)
			return
		}
		handler(ev, logical)
	}
}

func (m *Machine) handlePointerDown(ev PointerEvent, logical core.Point) {
	if ev.Target.Kind != TargetHandle {
		return
	}
	if ev.Target.NodeID == "" {
		m.logger.Debug("ignored handle without node id", "handle", ev.Target.HandleID)
		return
	}

	source := logical
	if hs := ev.Target.HandleScreen; hs != nil {
		if p := m.surface.ScreenToLogical(*hs); geometry.IsFinite(p.X, p.Y) {
			source = p
		}
	}

	m.enter(Positioning{
		SourceID:  ev.Target.NodeID,
		SourcePos: source,
		CursorPos: logical,
	})
}

func (m *Machine) handlePositioningMove(_ PointerEvent, logical core.Point) {
	p := m.phase.(Positioning)
	p.CursorPos = logical
	m.phase = p
}

// handlePositioningClick drops the anchor, snapped so the sizing rect stays on
// the grid.
func (m *Machine) handlePositioningClick(ev PointerEvent, logical core.Point) {
	if ev.Target.Kind != TargetCanvas {
		return
	}
	p := m.phase.(Positioning)
	anchor := core.Point{X: geometry.Snap(logical.X), Y: geometry.Snap(logical.Y)}

	placeholderID := m.callbacks.CreatePlaceholder(p.SourceID, anchor)
	if placeholderID == "" {
		m.logger.Debug("placeholder refused", "source", p.SourceID)
		m.enter(Idle{})
		return
	}

	m.rect = geometry.ComputeGridRect(anchor, anchor)
	m.enter(Sizing{
		PlaceholderID: placeholderID,
		SourceID:      p.SourceID,
		Anchor:        anchor,
	})
}

func (m *Machine) handleSizingMove(_ PointerEvent, logical core.Point) {
	s := m.phase.(Sizing)
	m.rect = geometry.ComputeGridRect(s.Anchor, logical)
	m.callbacks.ResizePlaceholder(s.PlaceholderID, m.rect.Rect())
}

func (m *Machine) handleSizingClick(_ PointerEvent, _ core.Point) {
	s := m.phase.(Sizing)
	m.enter(Placed{
		PlaceholderID: s.PlaceholderID,
		SourceID:      s.SourceID,
		Anchor:        s.Anchor,
		GridCols:      m.rect.Cols,
		GridRows:      m.rect.Rows,
	})
	m.callbacks.SizingFinalized(s.PlaceholderID)
}
