// Package config holds the explicit configuration value threaded through a
// layout pass: text backend and fitting limits, label candidates, packing
// tuning, margins and default style.
//
// A Config is a plain value. Start from Default and override fields, or
// decode a TOML or JSON file on top of the defaults with Load or Decode.
//
//	[text]
//	backend = "harfbuzz"
//	min_font_size = 9
//
//	[labels]
//	candidates = ["top", "right", "bottom", "left"]
//
//	[packing]
//	area_budget = 0.45
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Supported configuration formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Config is the full layout configuration.
type Config struct {
	Text    Text         `json:"text" toml:"text"`
	Labels  Labels       `json:"labels" toml:"labels"`
	Packing pack.Options `json:"packing" toml:"packing"`
	Layout  Layout       `json:"layout" toml:"layout"`
	Style   Style        `json:"style" toml:"style"`
}

// Text configures measurement and fitting.
type Text struct {
	Backend           string  `json:"backend" toml:"backend"`
	Ellipsis          string  `json:"ellipsis" toml:"ellipsis"`
	MinFontSize       float64 `json:"min_font_size" toml:"min_font_size"`
	ShrinkStep        float64 `json:"shrink_step" toml:"shrink_step"`
	LineHeight        float64 `json:"line_height" toml:"line_height"`
	MaxWrapIterations int     `json:"max_wrap_iterations" toml:"max_wrap_iterations"`
	MaxTitleLines     int     `json:"max_title_lines" toml:"max_title_lines"`
}

// Labels configures the label placer.
type Labels struct {
	Candidates []string `json:"candidates" toml:"candidates"`
	Gap        float64  `json:"gap" toml:"gap"`
	Padding    float64  `json:"padding" toml:"padding"`
}

// Layout configures margins and reserved regions.
type Layout struct {
	Padding           float64 `json:"padding" toml:"padding"`
	MaxMarginFraction float64 `json:"max_margin_fraction" toml:"max_margin_fraction"`
	HeaderHeight      float64 `json:"header_height" toml:"header_height"`
	AxisGap           float64 `json:"axis_gap" toml:"axis_gap"`
}

// Style holds default fonts and colors.
type Style struct {
	FontFamily  string   `json:"font_family" toml:"font_family"`
	TitleSize   float64  `json:"title_size" toml:"title_size"`
	TitleWeight string   `json:"title_weight" toml:"title_weight"`
	AxisSize    float64  `json:"axis_size" toml:"axis_size"`
	LabelSize   float64  `json:"label_size" toml:"label_size"`
	Background  string   `json:"background" toml:"background"`
	Foreground  string   `json:"foreground" toml:"foreground"`
	Palette     []string `json:"palette" toml:"palette"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Text: Text{
			Backend:           text.BackendOpenType,
			Ellipsis:          text.DefaultEllipsis,
			MinFontSize:       text.DefaultMinSize,
			ShrinkStep:        text.DefaultShrinkStep,
			LineHeight:        text.DefaultLineHeight,
			MaxWrapIterations: text.DefaultMaxIterations,
			MaxTitleLines:     2,
		},
		Labels: Labels{
			Candidates: label.CandidateNames(),
			Gap:        label.DefaultGap,
			Padding:    label.DefaultPadding,
		},
		Packing: pack.DefaultOptions(),
		Layout: Layout{
			Padding:           16,
			MaxMarginFraction: 0.3,
			HeaderHeight:      48,
			AxisGap:           6,
		},
		Style: Style{
			FontFamily:  "sans-serif",
			TitleSize:   18,
			TitleWeight: "bold",
			AxisSize:    11,
			LabelSize:   11,
			Background:  "#ffffff",
			Foreground:  "#333333",
			Palette: []string{
				"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
				"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
			},
		},
	}
}

// Load reads a configuration file. The format follows the extension
// (.toml or .json); unset fields keep their defaults.
func Load(path string) (Config, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Decode(bytes.NewReader(data), FormatFor(path))
}

// FormatFor returns the configuration format implied by a file name.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Decode reads a configuration in the given format on top of Default and
// validates the result.
func Decode(r io.Reader, format string) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML, "":
		if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode toml config")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode json config")
		}
	default:
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported config format %q (must be toml or json)", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every section and returns an INVALID_CONFIG error for
// the first problem found.
func (c Config) Validate() error {
	if !text.ValidBackend(c.Text.Backend) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "text.backend %q must be one of %v", c.Text.Backend, text.BackendNames)
	}
	sizes := []struct {
		name string
		v    float64
	}{
		{"text.min_font_size", c.Text.MinFontSize},
		{"style.title_size", c.Style.TitleSize},
		{"style.axis_size", c.Style.AxisSize},
		{"style.label_size", c.Style.LabelSize},
	}
	for _, sz := range sizes {
		if err := apperrors.ValidateFontSize(sz.v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s", sz.name)
		}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"text.shrink_step", c.Text.ShrinkStep},
		{"text.line_height", c.Text.LineHeight},
	}
	for _, p := range positive {
		if !finite(p.v) || p.v <= 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s must be a positive number, got %v", p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"labels.gap", c.Labels.Gap},
		{"labels.padding", c.Labels.Padding},
		{"layout.padding", c.Layout.Padding},
		{"layout.header_height", c.Layout.HeaderHeight},
		{"layout.axis_gap", c.Layout.AxisGap},
	}
	for _, p := range nonNegative {
		if !finite(p.v) || p.v < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", p.name, p.v)
		}
	}
	if f := c.Layout.MaxMarginFraction; !finite(f) || f <= 0 || f >= 0.5 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "layout.max_margin_fraction must be in (0, 0.5), got %v", f)
	}
	if c.Text.MaxWrapIterations < 0 || c.Text.MaxTitleLines < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "text iteration and line limits must not be negative")
	}
	if _, err := label.CandidatesByName(c.Labels.Candidates); err != nil {
		return err
	}
	if err := c.Packing.Validate(); err != nil {
		return err
	}
	for _, col := range append([]string{c.Style.Background, c.Style.Foreground}, c.Style.Palette...) {
		if err := apperrors.ValidateColor(col); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "style")
		}
	}
	return nil
}

// Provider builds the font metrics provider selected by Text.Backend.
func (c Config) Provider(registry *fonts.Registry, opts ...text.ProviderOption) (*text.Provider, error) {
	b, err := text.BackendByName(c.Text.Backend, registry)
	if err != nil {
		return nil, err
	}
	return text.NewProvider(b, opts...), nil
}

// Fitter builds a text fitter using the Text section.
func (c Config) Fitter(p *text.Provider) *text.Fitter {
	return text.NewFitter(p,
		text.WithEllipsis(c.Text.Ellipsis),
		text.WithShrinkStep(c.Text.ShrinkStep),
		text.WithMinSize(c.Text.MinFontSize),
	)
}

// WrapOptions returns the wrap settings of the Text section.
func (c Config) WrapOptions(maxLines int) text.WrapOptions {
	return text.WrapOptions{
		LineHeight:    c.Text.LineHeight,
		MinSize:       c.Text.MinFontSize,
		MaxLines:      maxLines,
		MaxIterations: c.Text.MaxWrapIterations,
	}
}

// Placer builds a label placer using the Labels section.
func (c Config) Placer(p *text.Provider) (*label.Placer, error) {
	cands, err := label.CandidatesByName(c.Labels.Candidates)
	if err != nil {
		return nil, err
	}
	return label.NewPlacer(p,
		label.WithCandidates(cands),
		label.WithGap(c.Labels.Gap),
		label.WithPadding(c.Labels.Padding),
	), nil
}

// Font returns a FontSpec in the configured family.
func (c Config) Font(size float64, weight string) text.FontSpec {
	return text.FontSpec{Family: c.Style.FontFamily, Size: size, Weight: text.ParseWeight(weight)}
}

// Color returns the palette color for index i.
func (c Config) Color(i int) string {
	if len(c.Style.Palette) == 0 {
		return c.Style.Foreground
	}
	return c.Style.Palette[((i%len(c.Style.Palette))+len(c.Style.Palette))%len(c.Style.Palette)]
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
