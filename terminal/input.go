// Package terminal hosts the editor in a tcell screen. It turns tcell mouse
// and key events into the connector's input events, maps screen cells to
// logical coordinates, and runs timers on the event loop goroutine.
package terminal

import (
	"flowgrid/connector"
	"flowgrid/core"

	"github.com/gdamore/tcell/v2"
)

// Resolver reports what lies under a screen cell.
type Resolver func(screen core.Point) connector.Target

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Input is a connector.InputSource fed from tcell events. Listeners run in
// registration order.
//
// tcell reports button state rather than clicks, so Input derives them: a
// primary press is a pointer-down, a primary release is a click, and a
// secondary press is a secondary click.
type Input struct {
	resolve Resolver

	buttons tcell.ButtonMask
	last    core.Point
	seen    bool

	next      int
	down      []subscriber[connector.PointerEvent]
	move      []subscriber[connector.PointerEvent]
	click     []subscriber[connector.PointerEvent]
	secondary []subscriber[connector.PointerEvent]
	keys      []subscriber[connector.KeyEvent]
}

var _ connector.InputSource = (*Input)(nil)

// NewInput creates an input source. A nil resolver reports empty canvas
// everywhere.
func NewInput(resolve Resolver) *Input {
	if resolve == nil {
		resolve = func(core.Point) connector.Target {
			return connector.Target{Kind: connector.TargetCanvas}
		}
	}
	return &Input{resolve: resolve}
}

func subscribe[T any](in *Input, list *[]subscriber[T], fn func(T)) connector.Unsubscribe {
	in.next++
	id := in.next
	*list = append(*list, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, s := range *list {
			if s.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// notify calls the listeners registered when the event arrived. Listeners
// added by a handler wait for the next event.
func notify[T any](list []subscriber[T], ev T) {
	snapshot := make([]subscriber[T], len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		s.fn(ev)
	}
}

func (in *Input) SubscribePointerDown(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return subscribe(in, &in.down, fn)
}

func (in *Input) SubscribePointerMove(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return subscribe(in, &in.move, fn)
}

func (in *Input) SubscribeClick(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return subscribe(in, &in.click, fn)
}

func (in *Input) SubscribeSecondaryClick(fn func(connector.PointerEvent)) connector.Unsubscribe {
	return subscribe(in, &in.secondary, fn)
}

func (in *Input) SubscribeKey(fn func(connector.KeyEvent)) connector.Unsubscribe {
	return subscribe(in, &in.keys, fn)
}

// Listeners returns how many listeners are attached.
func (in *Input) Listeners() int {
	return len(in.down) + len(in.move) + len(in.click) + len(in.secondary) + len(in.keys)
}

// Dispatch delivers a tcell event and reports whether it was a mouse or key
// event.
func (in *Input) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		in.dispatchMouse(ev)
		return true
	case *tcell.EventKey:
		in.dispatchKey(ev)
		return true
	}
	return false
}

func (in *Input) dispatchMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := core.Point{X: float64(x), Y: float64(y)}
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	pressed := buttons &^ in.buttons
	released := in.buttons &^ buttons
	in.buttons = buttons

	moved := !in.seen || p != in.last
	in.last, in.seen = p, true

	// The target is resolved once, before any listener can change the document.
	pe := connector.PointerEvent{Screen: p, Target: in.resolve(p)}

	if moved {
		notify(in.move, pe)
	}
	if pressed&tcell.Button1 != 0 {
		notify(in.down, pe)
	}
	if released&tcell.Button1 != 0 {
		notify(in.click, pe)
	}
	if pressed&tcell.Button2 != 0 {
		notify(in.secondary, pe)
	}
}

func (in *Input) dispatchKey(ev *tcell.EventKey) {
	ke := connector.KeyEvent{Key: connector.KeyOther}
	switch ev.Key() {
	case tcell.KeyEscape:
		ke.Key = connector.KeyEscape
	case tcell.KeyRune:
		ke.Rune = ev.Rune()
	}
	notify(in.keys, ke)
}
