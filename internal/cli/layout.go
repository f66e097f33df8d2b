package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/chartio"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pipeline"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render/sink"
)

// layoutCommand creates the layout command for computing chart positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		compact bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [chart.json|chart.toml|-]",
		Short: "Compute the layout of a chart",
		Long: `Compute the layout of a chart.

The layout command reads a chart description and writes every resolved
position (plot area, title, axis labels, data labels and bubbles) as JSON.
Use '-' to read the chart from stdin and '-o -' to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], output, compact, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width when the chart sets none")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height when the chart sets none")

	return cmd
}

// runLayout loads the chart, computes the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, input, output string, compact bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	chart, err := chartio.Import(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	opts.Formats = []string{pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	req, err := pipeline.BuildRequest(chart, opts)
	if err != nil {
		return err
	}
	res, err := runner.Layout(ctx, req)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	jsonOpts := []sink.JSONOption{sink.WithJSONID(uuid.NewString())}
	if compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	data, err := sink.RenderJSON(res, jsonOpts...)
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = basePath("", input) + ".layout.json"
	}
	if err := writeOutput(stdout, path, data); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}
	prog.done("Computed layout")

	printSuccess(stdout, "Layout complete")
	printFile(stdout, path)
	printStats(stdout, len(res.Labels), res.Hidden, len(res.Nodes))
	return nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// outputPaths maps each format to its destination file. A single format
// with an explicit output writes exactly there. A derived path never
// overwrites the input.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + "." + strings.ToLower(f)
		if p == input {
			p = base + ".out." + strings.ToLower(f)
		}
		paths[f] = p
	}
	return paths
}
