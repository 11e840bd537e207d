package editor

import (
	"time"

	"flowgrid/connector"
	"flowgrid/core"
)

// stubInput is an InputSource that dispatches to listeners in registration
// order.
type stubInput struct {
	next   int
	down   []listener[connector.PointerEvent]
	move   []listener[connector.PointerEvent]
	click  []listener[connector.PointerEvent]
	second []listener[connector.PointerEvent]
	keys   []listener[connector.KeyEvent]
}

type listener[T any] struct {
	id int
	fn func(T)
}

func add[T any](s *stubInput, list *[]listener[T], fn func(T)) connector.Unsubscribe {
	s.next++
	id := s.next
	*list = append(*list, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range *list {
			if l.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func fire[T any](list []listener[T], ev T) {
	snapshot := append([]listener[T](nil), list...)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

func (s *stubInput) SubscribePointerDown(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return add(s, &s.down, fn)
}

func (s *stubInput) SubscribePointerMove(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return add(s, &s.move, fn)
}

func (s *stubInput) SubscribeClick(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return add(s, &s.click, fn)
}

func (s *stubInput) SubscribeSecondaryClick(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return add(s, &s.second, fn)
}

func (s *stubInput) SubscribeKey(fn func(connector.KeyEvent)) connector.Unsubscribe {
	return add(s, &s.keys, fn)
}

func (s *stubInput) pointerDown(p core.Point, target connector.Target) {
	fire(s.down, connector.PointerEvent{Screen: p, Target: target})
}

func (s *stubInput) moveTo(p core.Point) {
	fire(s.move, connector.PointerEvent{Screen: p})
}

func (s *stubInput) clickAt(p core.Point, target connector.Target) {
	fire(s.click, connector.PointerEvent{Screen: p, Target: target})
}

func (s *stubInput) escape() {
	fire(s.keys, connector.KeyEvent{Key: connector.KeyEscape})
}

// identity treats screen and logical coordinates as the same.
type identity struct{}

func (identity) ScreenToLogical(p core.Point) core.Point { return p }
func (identity) LogicalToScreen(p core.Point) core.Point { return p }

// cellSurface maps ten logical units to one screen cell.
type cellSurface struct{}

func (cellSurface) ScreenToLogical(p core.Point) core.Point {
	return core.Point{X: p.X * 10, Y: p.Y * 10}
}

func (cellSurface) LogicalToScreen(p core.Point) core.Point {
	return core.Point{X: p.X / 10, Y: p.Y / 10}
}

// noDelay never needs a timer because the machines under test use a zero
// click delay.
type noDelay struct{}

func (noDelay) AfterFunc(time.Duration, func()) func() { return func() {} }
