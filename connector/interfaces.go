package connector

import (
	"time"

	"flowgrid/core"
)

// TargetKind says what a pointer event landed on.
type TargetKind int

const (
	TargetCanvas TargetKind = iota // Empty canvas
	TargetNode                     // Body of an existing node
	TargetHandle                   // Connection handle of an existing node
)

// Target identifies what is under the pointer. NodeID is empty when the host
// could not resolve the node, which makes gesture-starting events no-ops.
// HandleScreen, when set on a handle target, is where the handle itself sits
// on screen; the connection starts there rather than at the pointer.
type Target struct {
	Kind         TargetKind
	NodeID       string
	HandleID     string
	HandleScreen *core.Point
}

// PointerEvent is a pointer action in screen coordinates.
type PointerEvent struct {
	Screen core.Point
	Target Target
}

// Key is a keyboard key the machine cares about.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Unsubscribe detaches a listener. Calling it more than once is allowed.
type Unsubscribe func()

// InputSource delivers pointer and key events to listeners in dispatch order.
type InputSource interface {
	SubscribePointerDown(func(PointerEvent)) Unsubscribe
	SubscribePointerMove(func(PointerEvent)) Unsubscribe
	SubscribeClick(func(PointerEvent)) Unsubscribe
	SubscribeSecondaryClick(func(PointerEvent)) Unsubscribe
	SubscribeKey(func(KeyEvent)) Unsubscribe
}

// Surface converts between screen and logical coordinates.
type Surface interface {
	ScreenToLogical(screen core.Point) core.Point
	LogicalToScreen(logical core.Point) core.Point
}

// Scheduler runs fn once after d. fn must run on the same goroutine that
// delivers input events. The returned func cancels a pending run.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Callbacks is implemented by the host application that owns the graph.
type Callbacks interface {
	// CreatePlaceholder materializes a provisional box at anchor and returns
	// its id. An empty id aborts the gesture.
	CreatePlaceholder(sourceID string, anchor core.Point) string
	ResizePlaceholder(placeholderID string, rect core.Rect)
	SizingFinalized(placeholderID string)
	Finalize(placeholderID, widgetType string, template any, gridCols, gridRows int)
	Cancel(placeholderID string)
}
