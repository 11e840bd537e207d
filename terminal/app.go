package terminal

import (
	"context"
	"fmt"
	"io"
	"time"

	"flowgrid/canvas"
	"flowgrid/connector"
	"flowgrid/core"
	"flowgrid/editor"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

// Options configures an App.
type Options struct {
	Filename   string        // where 's' saves; empty disables saving
	ClickDelay time.Duration // debounce before a phase listens for clicks
	CellWidth  float64       // logical units per column
	CellHeight float64       // logical units per row
	Logger     *log.Logger
}

// App runs the editor in a tcell screen.
type App struct {
	screen    tcell.Screen
	editor    *editor.Editor
	machine   *connector.Machine
	input     *Input
	viewport  *Viewport
	scheduler *Scheduler
	logger    *log.Logger
	filename  string
	stopDrags connector.Unsubscribe
}

type quitSignal struct{}

// Styles for the screen
var (
	styleDefault = tcell.StyleDefault
	styleHandle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePreview = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// NewApp wires the editor to a connector machine driven by screen's events.
// The screen must already be initialized.
func NewApp(screen tcell.Screen, ed *editor.Editor, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := &App{
		screen:    screen,
		editor:    ed,
		viewport:  NewViewport(opts.CellWidth, opts.CellHeight),
		scheduler: NewScheduler(screen, logger),
		logger:    logger,
		filename:  opts.Filename,
	}
	a.input = NewInput(func(p core.Point) connector.Target {
		return ed.Resolve(a.viewport, p)
	})

	a.machine = connector.New(ed, a.input, a.viewport, a.scheduler,
		connector.WithLogger(logger),
		connector.WithClickDelay(opts.ClickDelay))
	ed.Attach(a.machine)
	a.machine.Start()
	a.stopDrags = ed.ListenForDrags(a.input, a.viewport)

	return a
}

// Machine returns the connector machine.
func (a *App) Machine() *connector.Machine {
	return a.machine
}

// Viewport returns the viewport.
func (a *App) Viewport() *Viewport {
	return a.viewport
}

// Run processes events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	defer a.close()

	done, exited := make(chan struct{}), make(chan struct{})
	defer func() {
		close(done)
		<-exited
	}()
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			a.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
		case <-done:
		}
	}()

	for {
		a.Draw()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.Handle(ev) {
			return ctx.Err()
		}
	}
}

func (a *App) close() {
	a.stopDrags()
	a.machine.Close()
}

// Handle processes one event and reports whether the app should quit.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			return true
		}
		RunTask(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		a.input.Dispatch(ev)
	case *tcell.EventKey:
		a.input.Dispatch(ev)
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		a.viewport.Pan(-4, 0)
	case tcell.KeyRight:
		a.viewport.Pan(4, 0)
	case tcell.KeyUp:
		a.viewport.Pan(0, -2)
	case tcell.KeyDown:
		a.viewport.Pan(0, 2)
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return false
}

func (a *App) handleRune(r rune) bool {
	if a.editor.PickerOpen() {
		if r >= '1' && r <= '9' {
			a.editor.PickWidget(int(r - '1'))
		}
		return false
	}

	switch r {
	case 'q':
		return true
	case 'u':
		a.editor.Undo()
	case 'r':
		a.editor.Redo()
	case 's':
		a.save()
	case 'a':
		a.addNode()
	}
	return false
}

func (a *App) save() {
	if a.filename == "" {
		a.editor.SetStatus("no file to save to")
		return
	}
	if err := a.editor.Save(a.filename); err != nil {
		a.logger.Error("save failed", "err", err)
		a.editor.SetStatus(err.Error())
	}
}

// addNode drops the first catalog widget at the middle of the screen.
func (a *App) addNode() {
	wt, ok := a.editor.Catalog().At(0)
	if !ok {
		return
	}
	w, h := a.screen.Size()
	if _, err := a.editor.AddNode(wt.Name, a.viewport.Center(w, h-1)); err != nil {
		a.editor.SetStatus(err.Error())
	}
}

// Draw paints the editor and the status line.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if h < 2 || w < 1 {
		a.screen.Show()
		return
	}

	c, err := canvas.NewMatrixCanvas(w, h-1)
	if err != nil {
		a.screen.Show()
		return
	}
	a.editor.Draw(c, a.viewport)

	c.Each(func(x, y int, r rune) {
		style := styleDefault
		switch r {
		case canvas.HandleRune:
			style = styleHandle
		case canvas.PreviewRune:
			style = stylePreview
		}
		a.screen.SetContent(x, y, r, nil, style)
	})

	a.drawStatus(w, h-1)
	a.screen.Show()
}

func (a *App) drawStatus(width, row int) {
	dirty := ""
	if a.editor.Dirty() {
		dirty = " *"
	}
	line := fmt.Sprintf(" %s%s | %s", a.machine.Phase().Kind(), dirty, a.editor.Status())

	x := 0
	for _, r := range line {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, styleStatus)
		x++
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
}
