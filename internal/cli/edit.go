package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"flowgrid/diagram"
	"flowgrid/editor"
	"flowgrid/terminal"

	charmlog "github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

type editOpts struct {
	debounce time.Duration
	logFile  string
}

// editCommand opens a document in the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [file.json]",
		Short: "Open a workflow in the terminal editor",
		Long: `Open a workflow in the terminal editor. A missing file starts an empty
document that is created on the first save.

Drag from a node's handle and click empty canvas to drop a new node, move
the mouse to size it, click to confirm and press 1-9 to pick its type.
ESC or a right click cancels. Keys: a add, u undo, r redo, s save, arrows
pan, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runEdit(cmd, path, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "click debounce after entering a phase (overrides config)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the editor runs")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, path string, opts editOpts) error {
	cfg, err := c.loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	d, err := openDocument(path)
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	level := cfg.Level()
	if c.verbose {
		level = charmlog.DebugLevel
	}
	logger := newLogger(logOut, level)

	delay := cfg.ClickDelay()
	if cmd.Flags().Changed("debounce") {
		delay = opts.debounce
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ed := editor.New(d, cat, editor.WithLogger(logger), editor.WithHistorySize(cfg.HistorySize))
	app := terminal.NewApp(screen, ed, terminal.Options{
		Filename:   path,
		ClickDelay: delay,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Logger:     logger,
	})

	logger.Info("editing", "file", path, "nodes", len(d.Nodes), "debounce", delay)
	if err := app.Run(cmd.Context()); err != nil {
		return err
	}

	if ed.Dirty() {
		loggerFromContext(cmd.Context()).Warn("quit with unsaved changes", "file", path)
	}
	return nil
}

// openDocument loads path, or returns an empty document when path is empty
// or does not exist yet.
func openDocument(path string) (*diagram.Diagram, error) {
	if path == "" {
		return &diagram.Diagram{}, nil
	}
	d, err := diagram.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &diagram.Diagram{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}
