package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// catalogCommand lists the configured widget types in picker order.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the widget types new nodes can become",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := cfg.LoadCatalog()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, cat.Len())
			for i, wt := range cat.Types() {
				size := wt.Size()
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					wt.Name,
					wt.Label,
					fmt.Sprintf("%gx%g", size.Width, size.Height),
					formatTemplate(wt.Template),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("#", "Name", "Label", "Size", "Template").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return styleHeader.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})

			fmt.Fprintln(cmd.OutOrStdout(), styleTitle.Render("Widget catalog"))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func formatTemplate(values map[string]string) string {
	if len(values) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + values[k]
	}
	return strings.Join(parts, " ")
}
