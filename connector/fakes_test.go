package connector

import (
	"fmt"
	"time"

	"flowgrid/core"
)

// fakeInput records subscriptions so tests can dispatch events and count
// live listeners.
type fakeInput struct {
	nextID int
	down   map[int]func(PointerEvent)
	move   map[int]func(PointerEvent)
	click  map[int]func(PointerEvent)
	second map[int]func(PointerEvent)
	keys   map[int]func(KeyEvent)
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		down:   map[int]func(PointerEvent){},
		move:   map[int]func(PointerEvent){},
		click:  map[int]func(PointerEvent){},
		second: map[int]func(PointerEvent){},
		keys:   map[int]func(KeyEvent){},
	}
}

func subscribe[T any](f *fakeInput, set map[int]func(T), fn func(T)) Unsubscribe {
	f.nextID++
	id := f.nextID
	set[id] = fn
	return func() { delete(set, id) }
}

func (f *fakeInput) SubscribePointerDown(fn func(PointerEvent)) Unsubscribe {
	return subscribe(f, f.down, fn)
}

func (f *fakeInput) SubscribePointerMove(fn func(PointerEvent)) Unsubscribe {
	return subscribe(f, f.move, fn)
}

func (f *fakeInput) SubscribeClick(fn func(PointerEvent)) Unsubscribe {
	return subscribe(f, f.click, fn)
}

func (f *fakeInput) SubscribeSecondaryClick(fn func(PointerEvent)) Unsubscribe {
	return subscribe(f, f.second, fn)
}

func (f *fakeInput) SubscribeKey(fn func(KeyEvent)) Unsubscribe {
	return subscribe(f, f.keys, fn)
}

func dispatch[T any](set map[int]func(T), ev T) {
	var fns []func(T)
	for _, fn := range set {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func (f *fakeInput) PointerDown(x, y float64, target Target) {
	dispatch(f.down, PointerEvent{Screen: core.Point{X: x, Y: y}, Target: target})
}

func (f *fakeInput) Move(x, y float64) {
	dispatch(f.move, PointerEvent{Screen: core.Point{X: x, Y: y}})
}

func (f *fakeInput) Click(x, y float64, target Target) {
	dispatch(f.click, PointerEvent{Screen: core.Point{X: x, Y: y}, Target: target})
}

func (f *fakeInput) SecondaryClick(x, y float64) {
	dispatch(f.second, PointerEvent{Screen: core.Point{X: x, Y: y}})
}

func (f *fakeInput) Escape() {
	dispatch(f.keys, KeyEvent{Key: KeyEscape})
}

func (f *fakeInput) Listeners() int {
	return len(f.down) + len(f.move) + len(f.click) + len(f.second) + len(f.keys)
}

// manualScheduler holds timers until Flush is called.
type manualScheduler struct {
	pending map[int]func()
	delays  []time.Duration
	next    int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: map[int]func(){}}
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.delays = append(s.delays, d)
	return func() { delete(s.pending, id) }
}

func (s *manualScheduler) Flush() {
	for id, fn := range s.pending {
		delete(s.pending, id)
		fn()
	}
}

// scaledSurface maps one screen unit to scale logical units.
type scaledSurface struct {
	scale float64
}

func (s scaledSurface) ScreenToLogical(p core.Point) core.Point {
	return core.Point{X: p.X * s.scale, Y: p.Y * s.scale}
}

func (s scaledSurface) LogicalToScreen(p core.Point) core.Point {
	return core.Point{X: p.X / s.scale, Y: p.Y / s.scale}
}

// recorder is a Callbacks implementation that logs every call.
type recorder struct {
	calls     []string
	rects     []core.Rect
	anchors   []core.Point
	refuse    bool
	created   int
	finalized []finalizeCall
}

type finalizeCall struct {
	id, widgetType string
	template       any
	cols, rows     int
}

func (r *recorder) CreatePlaceholder(sourceID string, anchor core.Point) string {
	r.calls = append(r.calls, "create:"+sourceID)
	r.anchors = append(r.anchors, anchor)
	if r.refuse {
		return ""
	}
	r.created++
	return fmt.Sprintf("ph%d", r.created)
}

func (r *recorder) ResizePlaceholder(id string, rect core.Rect) {
	r.calls = append(r.calls, "resize:"+id)
	r.rects = append(r.rects, rect)
}

func (r *recorder) SizingFinalized(id string) {
	r.calls = append(r.calls, "sized:"+id)
}

func (r *recorder) Finalize(id, widgetType string, template any, cols, rows int) {
	r.calls = append(r.calls, "finalize:"+id)
	r.finalized = append(r.finalized, finalizeCall{id, widgetType, template, cols, rows})
}

func (r *recorder) Cancel(id string) {
	r.calls = append(r.calls, "cancel:"+id)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}
