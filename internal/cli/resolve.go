package cli

import (
	"fmt"

	"flowgrid/diagram"
	"flowgrid/layout"

	"github.com/spf13/cobra"
)

type resolveOpts struct {
	anchor     string
	margin     float64
	iterations int
	write      bool
}

// resolveCommand separates overlapping nodes in a document.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{
		margin:     layout.DefaultCollisionOptions().Margin,
		iterations: layout.DefaultMaxIterations,
	}

	cmd := &cobra.Command{
		Use:   "resolve [flags] <file.json>",
		Short: "Push overlapping nodes apart and snap them to the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "id of a node that must not move")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "clearance between nodes; 0 or less uses one grid cell")
	cmd.Flags().IntVar(&opts.iterations, "iterations", opts.iterations, "separation passes before giving up")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, path string, opts resolveOpts) error {
	logger := loggerFromContext(cmd.Context())

	d, err := diagram.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if opts.anchor != "" {
		if _, err := d.Node(opts.anchor); err != nil {
			return fmt.Errorf("anchor %s: %w", opts.anchor, err)
		}
	}

	before := d.Boxes()
	after := layout.ResolveCollisions(before, layout.CollisionOptions{
		Margin:        opts.margin,
		MaxIterations: opts.iterations,
		AnchorID:      opts.anchor,
	})

	w := cmd.OutOrStdout()
	for i := range after {
		if after[i] == before[i] {
			continue
		}
		printDetail(w, "%s %s %s %s", after[i].ID,
			formatPoint(before[i].X, before[i].Y), iconArrow, formatPoint(after[i].X, after[i].Y))
	}

	moved := d.ApplyBoxes(before, after)
	logger.Debug("resolved", "nodes", len(before), "moved", moved)

	if opts.write && moved > 0 {
		if err := diagram.Save(path, d); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		printSuccess(w, "Moved %d of %d nodes, wrote %s", moved, len(before), path)
		return nil
	}
	printSuccess(w, "Moved %d of %d nodes", moved, len(before))
	return nil
}
