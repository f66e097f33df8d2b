package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/chartio"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pipeline"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render/sink"
)

// renderCommand creates the render command for generating chart outputs.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px (a chart's own size wins)
//   - scale: 2 for PNG
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [chart.json|chart.toml|-]",
		Short: "Render a chart to SVG, PNG, PDF or JSON",
		Long: `Render a chart to SVG, PNG, PDF or JSON.

With one format, -o names the output file ('-' for stdout). With several
formats, -o is a base path and each output gets its format's extension.
PDF output requires rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width when the chart sets none")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height when the chart sets none")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the measuring font in SVG output")
	cmd.Flags().BoolVar(&opts.ShowHidden, "show-hidden", false, "draw hidden labels faintly")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "outline label boxes")

	return cmd
}

// runRender loads the chart, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	if slices.Contains(opts.Formats, pipeline.FormatPDF) && !sink.PDFAvailable() {
		printWarning(stdout, "rsvg-convert not found; PDF output will fail")
	}

	chart, err := chartio.Import(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s chart: %d rows", chart.Template, len(chart.Rows))

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	opts.Logger = logger

	res, err := runner.Execute(ctx, chart, opts)
	if err != nil {
		return err
	}

	paths := outputPaths(opts.Formats, output, input)
	toStdout := false
	for _, format := range opts.Formats {
		path := paths[format]
		data := res.Artifacts[format]
		logger.Debugf("Generated %s: %d bytes", format, len(data))
		if err := writeOutput(stdout, path, data); err != nil {
			return err
		}
		toStdout = toStdout || path == "-"
	}
	if toStdout {
		return nil
	}
	prog.done("Rendered " + input)

	printSuccess(stdout, "Rendered %s", res.ID)
	for _, format := range opts.Formats {
		printFile(stdout, paths[format])
	}
	printStats(stdout, res.Stats.Labels, res.Stats.Hidden, res.Stats.Nodes)
	if res.Stats.Hidden > 0 && !opts.ShowHidden {
		printNextStep(stdout, "Inspect hidden labels", appName+" render --show-hidden --debug "+input)
	}
	return nil
}
