// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP API.
//
// A run has three stages:
//
//  1. Template: turn a chart file (rows plus a field mapping) into a
//     layout request.
//  2. Layout: measure, fit, place and pack via [layout.Coordinator].
//  3. Render: build the drawing scene and write the requested formats
//     (SVG, PNG, PDF, JSON).
//
// # Usage
//
//	runner, err := pipeline.NewRunner(config.Default(), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, chart, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stages can also be run on their own:
//
//	req, err := pipeline.BuildRequest(chart, opts)
//	res, err := runner.Layout(ctx, req)
//	artifacts, err := runner.Render(ctx, res, opts)
//
// [layout.Coordinator]: github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout.Coordinator
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the canvas width used when a chart does not set one.
	DefaultWidth = 800.0

	// DefaultHeight is the canvas height used when a chart does not set one.
	DefaultHeight = 600.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxCanvasSide bounds each canvas side.
	MaxCanvasSide = apperrors.MaxCanvasSide
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	// Canvas size; a chart's own width and height take precedence.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`       // PNG resolution multiplier
	EmbedFont  bool     `json:"embed_font,omitempty"`  // Embed the measuring font in SVG
	ShowHidden bool     `json:"show_hidden,omitempty"` // Draw hidden labels faintly
	Debug      bool     `json:"debug,omitempty"`       // Outline label boxes

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and JSON output.
	ID string

	// Request is the layout request built from the chart.
	Request layout.Request

	// Layout holds every resolved position.
	Layout layout.Result

	// Scene is the drawing description the artifacts were rendered from.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and count information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Labels     int
	Hidden     int
	Nodes      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCanvas checks a canvas size from user input.
func ValidateCanvas(w, h float64) error {
	return apperrors.ValidateDimensions(w, h)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// theme returns the render theme for cfg adjusted by the debug options.
func (o *Options) theme(base render.Theme) render.Theme {
	base.ShowHidden = o.ShowHidden
	base.Debug = o.Debug
	return base
}
