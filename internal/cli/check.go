package cli

import (
	"errors"
	"fmt"

	"flowgrid/diagram"
	"flowgrid/validation"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// errInvalid is returned when check finds at least one error.
var errInvalid = errors.New("document has errors")

// checkCommand reports structural and geometric problems in a document.
func (c *CLI) checkCommand() *cobra.Command {
	var margin float64

	cmd := &cobra.Command{
		Use:   "check [flags] <file.json>",
		Short: "Report broken edges, off-grid nodes and crowded nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diagram.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			v := validation.NewValidator()
			if cmd.Flags().Changed("margin") {
				v.SetMargin(margin)
			}
			issues := v.Validate(d)
			loggerFromContext(cmd.Context()).Debug("checked", "nodes", len(d.Nodes), "edges", len(d.Edges), "issues", len(issues))

			w := cmd.OutOrStdout()
			if len(issues) == 0 {
				printSuccess(w, "%s is clean (%d nodes, %d edges)", args[0], len(d.Nodes), len(d.Edges))
				return nil
			}
			for _, issue := range issues {
				style := styleWarning
				if issue.Severity == validation.Error {
					style = styleError
				}
				fmt.Fprintln(w, style.Render(issue.Error()))
			}
			if validation.HasErrors(issues) {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&margin, "margin", 0, "clearance below which nodes are reported as crowded (default one grid cell)")
	return cmd
}
