// Package cli implements the flowgrid command-line interface.
//
// The commands are:
//   - edit: open a workflow document in the terminal editor
//   - catalog: list the widget types a placeholder can become
//   - place: report where a new node of a given size would be auto-placed
//   - resolve: push overlapping nodes apart and snap them to the grid
//   - export: convert a document to Mermaid or plain JSON
//   - check: report broken edges and crowded or off-grid nodes
//   - import: build a document from a Mermaid flowchart
//
// All commands accept --config for the TOML settings file and --verbose for
// debug logging. The logger travels in the command's context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"flowgrid/config"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds state shared by every command.
type CLI struct {
	stderr     io.Writer
	configPath string
	verbose    bool
}

// New creates a CLI that logs to stderr.
func New(stderr io.Writer) *CLI {
	return &CLI{stderr: stderr}
}

// Execute runs the flowgrid CLI with the process arguments.
func Execute(ctx context.Context) error {
	return New(os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "flowgrid",
		Short:         "flowgrid edits node-and-edge workflow graphs on a grid",
		Long:          `flowgrid is a terminal editor for workflow graphs. New nodes are drawn out of a connection handle, sized on a fixed grid and kept clear of their neighbours.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if c.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(c.stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("flowgrid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "flowgrid.toml", "settings file")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.importCommand())

	return root
}

// loadConfig reads the settings file and warns about keys it does not know.
func (c *CLI) loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	for _, key := range cfg.Unknown {
		loggerFromContext(ctx).Warn("unknown config key", "key", key, "file", c.configPath)
	}
	return cfg, nil
}
