package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/chartio"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/config"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/observability"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Runner executes the pipeline for one configuration.
//
// The Runner holds no per-run state: the font registry and metrics
// provider are immutable after construction, so multiple goroutines can
// use the same Runner with different charts.
type Runner struct {
	Config      config.Config
	Registry    *fonts.Registry
	Provider    *text.Provider
	Coordinator *layout.Coordinator
	Logger      *log.Logger
}

// NewRunner validates cfg and builds the measurement and layout stack.
// A nil logger uses log.Default().
func NewRunner(cfg config.Config, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Config:   cfg,
		Registry: fonts.NewRegistry(),
		Logger:   logger,
	}
	provider, err := cfg.Provider(r.Registry, text.WithFallbackHook(r.measureFallback))
	if err != nil {
		return nil, err
	}
	coord, err := layout.New(cfg, provider)
	if err != nil {
		return nil, err
	}
	r.Provider = provider
	r.Coordinator = coord
	return r, nil
}

// measureFallback reports a backend failure. Measurement itself carries on
// with the estimate.
func (r *Runner) measureFallback(f text.FontSpec, err error) {
	r.Logger.Debug("measurement fallback", "font", f.String(), "err", err)
	observability.Layout().OnMeasureFallback(context.Background(), f.Family, err)
}

// Execute runs template → layout → render for c.
func (r *Runner) Execute(ctx context.Context, c chartio.Chart, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	req, err := BuildRequest(c, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{ID: uuid.NewString(), Request: req}
	logger = logger.With("id", result.ID)

	// Stage 1: Layout
	layoutStart := time.Now()
	res, err := r.Layout(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Labels = len(res.Labels)
	result.Stats.Hidden = res.Hidden
	result.Stats.Nodes = len(res.Nodes)

	logger.Info("computed layout",
		"kind", req.Kind,
		"labels", result.Stats.Labels,
		"hidden", result.Stats.Hidden,
		"nodes", result.Stats.Nodes,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	result.Scene = render.Build(res, opts.theme(render.ThemeFrom(r.Config)))
	artifacts, err := r.renderScene(ctx, res, result.Scene, result.ID, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout runs the coordinator with layout hooks around it.
func (r *Runner) Layout(ctx context.Context, req layout.Request) (layout.Result, error) {
	hooks := observability.Layout()
	kind := string(req.Kind)
	hooks.OnLayoutStart(ctx, kind, len(req.Annotations)+len(req.Nodes)+len(req.Marks))

	start := time.Now()
	res, err := r.Coordinator.Layout(req)
	hooks.OnLayoutComplete(ctx, kind, time.Since(start), err)
	if err != nil {
		return layout.Result{}, err
	}
	for _, l := range res.Labels {
		if !l.Visible {
			hooks.OnLabelHidden(ctx, l.Text)
		}
	}
	return res, nil
}

// Render builds the scene for res and writes the requested formats.
func (r *Runner) Render(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	scene := render.Build(res, opts.theme(render.ThemeFrom(r.Config)))
	return r.renderScene(ctx, res, scene, "", opts)
}

func (r *Runner) renderScene(ctx context.Context, res layout.Result, scene render.Scene, id string, opts Options) (map[string][]byte, error) {
	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := renderFormats(ctx, res, scene, id, r.renderOptions(opts))
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
