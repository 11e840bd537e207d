package cli

import (
	"fmt"
	"os"
	"strings"

	"flowgrid/diagram"
	"flowgrid/export"

	"github.com/spf13/cobra"
)

type exportOpts struct {
	format string
	output string
}

// exportCommand converts a document to another format.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	formats := make([]string, 0, len(export.AvailableFormats()))
	for _, f := range export.AvailableFormats() {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "export [flags] <file.json>",
		Short: "Convert a workflow document to another format",
		Long:  "Convert the committed nodes and edges of a workflow document. Placeholders left by an unfinished gesture are dropped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatMermaid),
		"output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	logger := loggerFromContext(cmd.Context())

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}

	d, err := diagram.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	out, err := exporter.Export(d)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logger.Debug("exported", "format", format, "nodes", len(d.Nodes), "bytes", len(out))

	if opts.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	}

	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.OutOrStdout(), "Exported %s", opts.output)
	return nil
}

func exportJSON(d *diagram.Diagram) (string, error) {
	return export.NewJSONExporter().Export(d)
}
