package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// fontFlags holds the font selection shared by measure and fit.
type fontFlags struct {
	family string
	size   float64
	weight string
}

func (f *fontFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.family, "family", "", "font family (default: configured label family)")
	cmd.Flags().Float64Var(&f.size, "size", 0, "font size in px (default: configured label size)")
	cmd.Flags().StringVar(&f.weight, "weight", "", "font weight: normal, bold or 100-900")
}

// spec resolves the flags against the configured label style.
func (f *fontFlags) spec(c *CLI) (text.FontSpec, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return text.FontSpec{}, err
	}
	size := f.size
	if !(size > 0) {
		size = cfg.Style.LabelSize
	}
	font := cfg.Font(size, f.weight)
	if f.family != "" {
		font.Family = f.family
	}
	return font, nil
}

// measureCommand reports the metrics of a text run.
func (c *CLI) measureCommand() *cobra.Command {
	var ff fontFlags

	cmd := &cobra.Command{
		Use:   "measure <text>",
		Short: "Measure a text run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			font, err := ff.spec(c)
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			m := runner.Provider.Measure(args[0], font)
			w := cmd.OutOrStdout()
			printKeyValue(w, "font", font.String())
			printKeyValue(w, "width", formatNumber(m.Width))
			printKeyValue(w, "height", formatNumber(m.Height))
			printKeyValue(w, "ascent", formatNumber(m.Ascent))
			printKeyValue(w, "descent", formatNumber(m.Descent))
			printKeyValue(w, "line height", formatNumber(runner.Provider.LineHeight(font)))
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

// fitCommand fits text into a width by truncating, shrinking or wrapping.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		ff       fontFlags
		maxWidth float64
		mode     string
		minSize  float64
		maxLines int
	)

	cmd := &cobra.Command{
		Use:   "fit <text>",
		Short: "Fit text into a width",
		Long: `Fit text into a width.

Modes:
  truncate  shorten with an ellipsis at the given size
  shrink    reduce the font size down to --min-size, then truncate
  wrap      break on spaces and shrink until every line fits`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(maxWidth >= 0) {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "--max-width must not be negative")
			}
			font, err := ff.spec(c)
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			fitter := runner.Coordinator.Fitter()

			var fit text.Fit
			switch mode {
			case "truncate":
				fit = fitter.Truncate(args[0], font, maxWidth)
			case "shrink":
				fit = fitter.ShrinkToFit(args[0], font, maxWidth, minSize)
			case "wrap":
				opts := runner.Config.WrapOptions(maxLines)
				if minSize > 0 {
					opts.MinSize = minSize
				}
				fit = fitter.WrapAndShrink(args[0], font, maxWidth, opts)
			default:
				return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown fit mode %q (must be truncate, shrink or wrap)", mode)
			}
			printFit(cmd.OutOrStdout(), fit)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().Float64Var(&maxWidth, "max-width", 0, "available width in px")
	cmd.Flags().StringVarP(&mode, "mode", "m", "truncate", "fit mode: truncate, shrink or wrap")
	cmd.Flags().Float64Var(&minSize, "min-size", 0, "smallest font size (default: configured minimum)")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "line limit for wrap (0 means unlimited)")
	_ = cmd.MarkFlagRequired("max-width")
	return cmd
}

func printFit(w io.Writer, fit text.Fit) {
	if fit.Empty() {
		printWarning(w, "nothing fits")
		return
	}
	for _, line := range strings.Split(fit.Text, "\n") {
		fmt.Fprintln(w, StyleValue.Render(line))
	}
	printKeyValue(w, "font", fit.Font.String())
	printKeyValue(w, "size", formatNumber(fit.Width)+" x "+formatNumber(fit.Height))
	var flags []string
	if fit.Truncated {
		flags = append(flags, "truncated")
	}
	if fit.Shrunk {
		flags = append(flags, "shrunk")
	}
	if len(flags) > 0 {
		printKeyValue(w, "adjusted", strings.Join(flags, ", "))
	}
}
