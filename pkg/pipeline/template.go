package pipeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/chartio"
	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
)

const (
	// PointRadius is the radius of scatter points in pixels.
	PointRadius = 4.0

	// TickCount is the number of value-axis labels.
	TickCount = 5

	// plotInset keeps scatter points off the plot edges (fraction per side).
	plotInset = 0.05

	// barFill is the share of a category slot covered by its bar.
	barFill = 0.6
)

// BuildRequest turns a chart into a layout request. A raw request in the
// chart is returned with only the canvas defaulted.
func BuildRequest(c chartio.Chart, opts Options) (layout.Request, error) {
	if err := c.Validate(); err != nil {
		return layout.Request{}, err
	}
	w, h := opts.Width, opts.Height
	if c.Width > 0 {
		w = c.Width
	}
	if c.Height > 0 {
		h = c.Height
	}
	if err := ValidateCanvas(w, h); err != nil {
		return layout.Request{}, err
	}

	if c.Request != nil {
		req := *c.Request
		if req.Canvas.Empty() {
			req.Canvas.Width, req.Canvas.Height = w, h
		}
		return req, nil
	}

	req := layout.Request{Title: c.Title}
	req.Canvas.Width, req.Canvas.Height = w, h
	f := c.Fields.WithDefaults()
	switch c.Template {
	case chartio.TemplateScatter:
		scatter(&req, c.Rows, f)
	case chartio.TemplateBar:
		bar(&req, c.Rows, f)
	case chartio.TemplateBubble:
		bubble(&req, c.Rows, f)
	default:
		return layout.Request{}, apperrors.New(apperrors.ErrCodeInvalidKind, "unknown template %q", c.Template)
	}
	return req, nil
}

// =============================================================================
// Scatter
// =============================================================================

func scatter(req *layout.Request, rows []chartio.Row, f chartio.Fields) {
	req.Kind = layout.KindScatter

	type point struct {
		x, y  float64
		label string
		color string
	}
	var pts []point
	for _, r := range rows {
		x, okX := r.Number(f.X)
		y, okY := r.Number(f.Y)
		if !okX || !okY || !finite(x) || !finite(y) {
			continue
		}
		pts = append(pts, point{x: x, y: y, label: r.String(f.Label), color: r.String(f.Color)})
	}
	if len(pts) == 0 {
		return
	}

	xs, ys := newScale(), newScale()
	for _, p := range pts {
		xs.add(p.x)
		ys.add(p.y)
	}
	for i, p := range pts {
		id := fmt.Sprintf("point-%d", i)
		u, v := xs.norm(p.x), ys.norm(p.y)
		req.Marks = append(req.Marks, label.Mark{ID: id, X: u, Y: v, Radius: PointRadius, Color: p.color})
		if p.label != "" {
			req.Annotations = append(req.Annotations, layout.Annotation{U: u, V: v, Text: p.label, MarkID: id})
		}
	}

	// X labels sit at slot centers; Y labels run bottom to top.
	for i := range TickCount {
		req.XLabels = append(req.XLabels, formatTick(xs.value((float64(i)+0.5)/TickCount)))
		req.YLabels = append(req.YLabels, formatTick(ys.value(float64(i)/(TickCount-1))))
	}
}

// scale maps a data range onto [plotInset, 1-plotInset].
type scale struct{ lo, hi float64 }

func newScale() scale { return scale{lo: math.Inf(1), hi: math.Inf(-1)} }

func (s *scale) add(v float64) {
	s.lo = min(s.lo, v)
	s.hi = max(s.hi, v)
}

func (s scale) norm(v float64) float64 {
	if s.hi <= s.lo {
		return 0.5
	}
	return plotInset + (1-2*plotInset)*(v-s.lo)/(s.hi-s.lo)
}

// value is the inverse of norm.
func (s scale) value(t float64) float64 {
	if s.hi <= s.lo {
		return s.lo
	}
	return s.lo + (t-plotInset)/(1-2*plotInset)*(s.hi-s.lo)
}

// =============================================================================
// Bar
// =============================================================================

func bar(req *layout.Request, rows []chartio.Row, f chartio.Fields) {
	req.Kind = layout.KindBar
	n := len(rows)
	if n == 0 {
		return
	}

	values := make([]float64, n)
	var top float64
	for i, r := range rows {
		v, ok := r.Number(f.Value)
		if !ok || !finite(v) || v < 0 {
			v = 0
		}
		values[i] = v
		top = max(top, v)
	}

	slot := 1 / float64(n)
	for i, r := range rows {
		req.XLabels = append(req.XLabels, r.String(f.Label))
		h := 0.0
		if top > 0 {
			h = values[i] / top
		}
		req.Marks = append(req.Marks, label.Mark{
			ID:    fmt.Sprintf("bar-%d", i),
			X:     (float64(i) + (1-barFill)/2) * slot,
			Y:     h,
			W:     barFill * slot,
			H:     h,
			Color: r.String(f.Color),
		})
		// The bar itself stays an obstacle so the value lands above it.
		req.Annotations = append(req.Annotations, layout.Annotation{
			U:    (float64(i) + 0.5) * slot,
			V:    h,
			Text: formatTick(values[i]),
		})
	}
	for i := range TickCount {
		req.YLabels = append(req.YLabels, formatTick(top*float64(i)/(TickCount-1)))
	}
}

// =============================================================================
// Bubble
// =============================================================================

func bubble(req *layout.Request, rows []chartio.Row, f chartio.Fields) {
	req.Kind = layout.KindBubble
	for i, r := range rows {
		v, ok := r.Number(f.Value)
		if !ok || !finite(v) || v < 0 {
			continue
		}
		req.Nodes = append(req.Nodes, pack.Node{
			ID:    fmt.Sprintf("node-%d", i),
			Value: v,
			Label: r.String(f.Label),
			Color: r.String(f.Color),
		})
	}
}

// formatTick prints v with at most four significant digits.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
