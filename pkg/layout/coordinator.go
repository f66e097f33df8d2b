package layout

import (
	"fmt"
	"math"
	"slices"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/config"
	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Obstacle IDs that keep annotations off the header and the tick labels.
const (
	headerMarkID = "__header__"
	tickMarkID   = "__tick__"
)

// nodeLabelFill is the share of a circle's diameter a node label may use.
const nodeLabelFill = 0.85

// Coordinator runs layout passes. It holds no per-pass state and is safe to
// reuse across calls; concurrent use is safe when the provider's backend is.
type Coordinator struct {
	cfg      config.Config
	provider *text.Provider
	fitter   *text.Fitter
	placer   *label.Placer
	solver   *pack.Solver
}

// New validates cfg and builds a coordinator measuring with provider. A nil
// provider measures with the fallback estimate.
func New(cfg config.Config, provider *text.Provider) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = text.NewProvider(nil)
	}
	placer, err := cfg.Placer(provider)
	if err != nil {
		return nil, err
	}
	return &Coordinator{
		cfg:      cfg,
		provider: provider,
		fitter:   cfg.Fitter(provider),
		placer:   placer,
		solver:   pack.NewSolver(cfg.Packing),
	}, nil
}

// Config returns the configuration the coordinator was built with.
func (c *Coordinator) Config() config.Config { return c.cfg }

// Provider returns the font metrics provider.
func (c *Coordinator) Provider() *text.Provider { return c.provider }

// Fitter returns the text fitter.
func (c *Coordinator) Fitter() *text.Fitter { return c.fitter }

// Layout runs one pass for req.
func (c *Coordinator) Layout(req Request) (Result, error) {
	if !req.Kind.Valid() {
		return Result{}, apperrors.New(apperrors.ErrCodeInvalidKind, "unknown chart kind %q (must be one of %v)", req.Kind, Kinds)
	}
	res := Result{Kind: req.Kind, Canvas: req.Canvas}
	if req.Canvas.Empty() || math.IsInf(req.Canvas.Width, 0) || math.IsInf(req.Canvas.Height, 0) {
		return res, nil
	}
	req = c.withDefaults(req)

	ext := c.measure(req)
	c.frame(req, ext, &res)
	if res.Plot.Empty() {
		return res, nil
	}
	c.axes(req, &res)
	c.annotate(req, &res)
	c.pack(req, &res)
	return res, nil
}

func (c *Coordinator) withDefaults(req Request) Request {
	st := c.cfg.Style
	req.TitleFont = defaultFont(req.TitleFont, st.FontFamily, st.TitleSize, text.ParseWeight(st.TitleWeight))
	req.AxisFont = defaultFont(req.AxisFont, st.FontFamily, st.AxisSize, text.WeightNormal)
	req.Annotations = slices.Clone(req.Annotations)
	for i := range req.Annotations {
		req.Annotations[i].Font = defaultFont(req.Annotations[i].Font, st.FontFamily, st.LabelSize, text.WeightNormal)
	}
	if req.Padding.IsZero() {
		req.Padding = Uniform(c.cfg.Layout.Padding)
	}
	if req.HeaderHeight <= 0 {
		req.HeaderHeight = c.cfg.Layout.HeaderHeight
	}
	return req
}

func defaultFont(f text.FontSpec, family string, size float64, weight text.Weight) text.FontSpec {
	if f.Family == "" {
		f.Family = family
	}
	if !(f.Size > 0) {
		f.Size = size
	}
	if f.Weight == 0 {
		f.Weight = weight
	}
	return f
}

// extents are the worst-case text sizes found in the measuring stage.
type extents struct {
	yLabelWidth  float64
	xLabelHeight float64
	annotation   float64
}

func (c *Coordinator) measure(req Request) extents {
	var ext extents
	if !req.Kind.axes() {
		return ext
	}
	for _, s := range req.YLabels {
		ext.yLabelWidth = max(ext.yLabelWidth, c.provider.Width(s, req.AxisFont))
	}
	if len(req.XLabels) > 0 {
		ext.xLabelHeight = c.provider.LineHeight(req.AxisFont)
	}
	for _, a := range req.Annotations {
		ext.annotation = max(ext.annotation, c.provider.Measure(a.Text, a.Font).Height)
	}
	return ext
}

// frame derives the header, margins and plot rectangle.
func (c *Coordinator) frame(req Request, ext extents, res *Result) {
	w, h := req.Canvas.Width, req.Canvas.Height
	capX := c.cfg.Layout.MaxMarginFraction * w
	capY := c.cfg.Layout.MaxMarginFraction * h
	gap := c.cfg.Layout.AxisGap

	headerH := 0.0
	if req.Title != "" {
		headerH = min(req.HeaderHeight, capY)
		res.Header = geom.HeaderRegion(req.Canvas, headerH)
		res.Title = c.title(req, headerH)
	}

	m := Insets{
		Top:    min(capY, req.Padding.Top+headerH),
		Right:  min(capX, req.Padding.Right),
		Bottom: min(capY, req.Padding.Bottom),
		Left:   min(capX, req.Padding.Left),
	}
	if req.Kind.axes() {
		if ext.yLabelWidth > 0 {
			m.Left = min(capX, req.Padding.Left+ext.yLabelWidth+gap)
		}
		if ext.xLabelHeight > 0 {
			m.Bottom = min(capY, req.Padding.Bottom+ext.xLabelHeight+gap)
		}
		// Annotations above the top data point need room below the header.
		if ext.annotation > 0 {
			m.Top = min(capY, m.Top+ext.annotation/2)
		}
	}
	res.Margins = m
	res.Plot = geom.Rect{X0: m.Left, Y0: m.Top, X1: w - m.Right, Y1: h - m.Bottom}
	if res.Plot.Empty() {
		res.Plot = geom.Rect{}
	}
}

// title wraps and shrinks the title into the header strip.
func (c *Coordinator) title(req Request, headerH float64) PositionedText {
	maxW := req.Canvas.Width - req.Padding.Left - req.Padding.Right
	if maxW <= 0 || headerH <= 0 {
		return PositionedText{}
	}
	lh := c.cfg.Text.LineHeight
	font := req.TitleFont
	font.Size = min(font.Size, headerH/lh)

	lines := c.cfg.Text.MaxTitleLines
	if lines <= 0 {
		lines = 1
	}
	lines = max(1, min(lines, int(math.Floor(headerH/(font.Size*lh)))))
	fit := c.fitter.WrapAndShrink(req.Title, font, maxW, c.cfg.WrapOptions(lines))
	return PositionedText{
		Fit:    fit,
		X:      req.Padding.Left + maxW/2,
		Y:      headerH / 2,
		Anchor: label.AnchorMiddle,
	}
}

// axes fits and positions the tick labels.
func (c *Coordinator) axes(req Request, res *Result) {
	if !req.Kind.axes() {
		return
	}
	plot := res.Plot
	gap := c.cfg.Layout.AxisGap

	if n := len(req.XLabels); n > 0 {
		slot := plot.Width() / float64(n)
		lh := c.provider.LineHeight(req.AxisFont)
		for i, s := range req.XLabels {
			fit := c.fitter.ShrinkToFit(s, req.AxisFont, max(0, slot-gap), 0)
			res.XLabels = append(res.XLabels, PositionedText{
				Fit:    fit,
				X:      plot.X0 + (float64(i)+0.5)*slot,
				Y:      plot.Y1 + gap + lh/2,
				Anchor: label.AnchorMiddle,
			})
		}
	}

	if n := len(req.YLabels); n > 0 {
		maxW := max(0, res.Margins.Left-req.Padding.Left-gap)
		for i, s := range req.YLabels {
			y := plot.Center().Y
			if n > 1 {
				y = plot.Y1 - float64(i)*plot.Height()/float64(n-1)
			}
			res.YLabels = append(res.YLabels, PositionedText{
				Fit:    c.fitter.Truncate(s, req.AxisFont, maxW),
				X:      plot.X0 - gap,
				Y:      y,
				Anchor: label.AnchorEnd,
			})
		}
	}
}

// toPixel maps plot-normalised coordinates to canvas pixels.
func toPixel(plot geom.Rect, u, v float64) geom.Point {
	return geom.Pt(plot.X0+u*plot.Width(), plot.Y1-v*plot.Height())
}

// annotate converts marks to pixels and places annotation labels.
func (c *Coordinator) annotate(req Request, res *Result) {
	plot := res.Plot
	for _, m := range req.Marks {
		p := toPixel(plot, m.X, m.Y)
		m.X, m.Y = p.X, p.Y
		if !m.Circular() {
			m.W *= plot.Width()
			m.H *= plot.Height()
		}
		res.Marks = append(res.Marks, m)
	}
	if len(req.Annotations) == 0 {
		return
	}

	obstacles := slices.Clone(res.Marks)
	if !res.Header.Empty() {
		obstacles = append(obstacles, rectMark(headerMarkID, res.Header.Rect))
	}
	for _, t := range slices.Concat(res.XLabels, res.YLabels) {
		if !t.Fit.Empty() {
			obstacles = append(obstacles, rectMark(tickMarkID, t.Box()))
		}
	}
	reqs := make([]label.Request, len(req.Annotations))
	for i, a := range req.Annotations {
		reqs[i] = label.Request{Anchor: toPixel(plot, a.U, a.V), Text: a.Text, Font: a.Font, MarkID: a.MarkID}
	}
	res.Labels = c.placer.PlaceAll(reqs, obstacles, req.Canvas)
	for _, l := range res.Labels {
		if !l.Visible {
			res.Hidden++
		}
	}
}

func rectMark(id string, r geom.Rect) label.Mark {
	return label.Mark{ID: id, X: r.X0, Y: r.Y0, W: r.Width(), H: r.Height()}
}

// pack positions nodes around the canvas center with the header protected
// and fits each node's label inside its circle.
func (c *Coordinator) pack(req Request, res *Result) {
	if len(req.Nodes) == 0 {
		return
	}
	var protected []geom.Region
	if !res.Header.Empty() {
		protected = append(protected, res.Header)
	}
	nodes := make([]pack.Node, len(req.Nodes))
	copy(nodes, req.Nodes)
	for i := range nodes {
		if nodes[i].ID == "" {
			nodes[i].ID = fmt.Sprintf("node-%d", i)
		}
		if nodes[i].Color == "" {
			nodes[i].Color = c.cfg.Color(i)
		}
	}
	res.Nodes = c.solver.Pack(nodes, req.Canvas, protected)

	font := c.cfg.Font(c.cfg.Style.LabelSize, "")
	for _, n := range res.Nodes {
		if n.Label == "" {
			continue
		}
		fit := c.fitter.ShrinkToFit(n.Label, font, 2*n.Radius*nodeLabelFill, 0)
		if fit.Empty() || fit.Height > 2*n.Radius {
			continue
		}
		res.NodeLabels = append(res.NodeLabels, PositionedText{Fit: fit, X: n.X, Y: n.Y, Anchor: label.AnchorMiddle})
	}
}
