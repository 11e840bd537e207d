package cli

import (
	"errors"
	"fmt"

	"flowgrid/core"
	"flowgrid/diagram"
	"flowgrid/layout"

	"github.com/spf13/cobra"
)

type placeOpts struct {
	x, y          float64
	width, height float64
	widget        string
}

// placeCommand reports where a new node would be auto-placed in a document.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [flags] <file.json>",
		Short: "Find a clear position for a new node",
		Long: `Find the grid position nearest to --x/--y where a new node keeps the
placement spacing from every node in the document.

The node size is --width/--height, or the catalog default for --type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", 0, "desired x")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "desired y")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "node width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "node height")
	cmd.Flags().StringVarP(&opts.widget, "type", "t", "", "widget type to take the size from")

	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, path string, opts placeOpts) error {
	logger := loggerFromContext(cmd.Context())

	d, err := diagram.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	size := core.Size{Width: opts.width, Height: opts.height}
	if opts.widget != "" {
		cfg, err := c.loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		cat, err := cfg.LoadCatalog()
		if err != nil {
			return err
		}
		if _, err := cat.Lookup(opts.widget); err != nil {
			return err
		}
		size = cat.DefaultSize(opts.widget)
	}
	if size.IsZero() {
		if opts.width != 0 || opts.height != 0 {
			return errors.New("--width and --height must both be positive")
		}
		size = core.DefaultNodeSize
	}

	existing := make([]core.NodeBox, len(d.Nodes))
	for i, n := range d.Nodes {
		existing[i] = n.Box()
	}

	desired := core.Point{X: opts.x, Y: opts.y}
	pos := layout.FindNonOverlappingPosition(existing, size.Width, size.Height, desired)
	logger.Debug("placement", "desired", desired, "size", size, "nodes", len(existing), "result", pos)

	w := cmd.OutOrStdout()
	if pos == desired {
		printSuccess(w, "%s is clear", formatPoint(pos.X, pos.Y))
	} else {
		printSuccess(w, "%s %s %s", formatPoint(desired.X, desired.Y), iconArrow, formatPoint(pos.X, pos.Y))
	}
	printDetail(w, "size %gx%g, %d existing nodes", size.Width, size.Height, len(existing))
	return nil
}
