package terminal

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	postRetries  = 5
	retryBackoff = 2 * time.Millisecond
)

// Poster is the part of tcell.Screen the scheduler needs.
type Poster interface {
	PostEvent(ev tcell.Event) error
}

// waitPoster can block until the event queue has room. tcell.Screen
// implements it.
type waitPoster interface {
	PostEventWait(ev tcell.Event)
}

// Scheduler runs delayed callbacks on the event loop: the timer only posts a
// tcell.EventInterrupt, and the loop runs the callback when it reaches it.
type Scheduler struct {
	poster Poster
	logger *log.Logger
}

// task is the interrupt payload. cancelled is only touched on the loop
// goroutine.
type task struct {
	fn        func()
	cancelled bool
}

// NewScheduler creates a scheduler that posts to p. A nil logger discards.
func NewScheduler(p Poster, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{poster: p, logger: logger}
}

// AfterFunc implements connector.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &task{fn: fn}
	timer := time.AfterFunc(d, func() {
		s.post(tcell.NewEventInterrupt(t))
	})

	return func() {
		timer.Stop()
		t.cancelled = true
	}
}

// post delivers ev from a timer goroutine, so it may block. A full queue is
// waited out when the poster allows it and retried with backoff otherwise.
func (s *Scheduler) post(ev tcell.Event) {
	err := s.poster.PostEvent(ev)
	if err == nil {
		return
	}
	s.logger.Warn("event queue full, retrying scheduled task", "err", err)

	if w, ok := s.poster.(waitPoster); ok {
		w.PostEventWait(ev)
		return
	}
	for i := 1; i <= postRetries; i++ {
		time.Sleep(time.Duration(i) * retryBackoff)
		if err = s.poster.PostEvent(ev); err == nil {
			return
		}
	}
	s.logger.Error("dropped scheduled task", "err", err, "attempts", postRetries+1)
}

// RunTask runs the callback carried by ev, unless it was cancelled after
// being posted. It reports whether ev came from a Scheduler.
func RunTask(ev *tcell.EventInterrupt) bool {
	t, ok := ev.Data().(*task)
	if !ok {
		return false
	}
	if !t.cancelled {
		t.fn()
	}
	return true
}
