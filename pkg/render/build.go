package render

import (
	"strings"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Build converts a layout result into a scene. Items are emitted back to
// front: background, axes, marks, nodes, then all text. Build does not
// modify res.
func Build(res layout.Result, theme Theme) Scene {
	if theme.LineHeight <= 0 {
		theme.LineHeight = text.DefaultLineHeight
	}
	s := Scene{Width: res.Canvas.Width, Height: res.Canvas.Height, Background: theme.Background}
	if res.Canvas.Empty() {
		return s
	}

	b := builder{theme: theme}
	b.axes(res)
	b.marks(res.Marks)
	b.nodes(res.Nodes)
	b.nodeLabels(res.NodeLabels)
	for _, pt := range res.YLabels {
		b.text("y-label", "", pt, theme.Foreground)
	}
	for _, pt := range res.XLabels {
		b.text("x-label", "", pt, theme.Foreground)
	}
	b.labels(res.Labels)
	b.text("title", "title", res.Title, theme.Foreground)

	s.Items = b.items
	return s
}

type builder struct {
	theme Theme
	items []Item
}

func (b *builder) add(it Item) { b.items = append(b.items, it) }

func (b *builder) axes(res layout.Result) {
	if len(res.XLabels) == 0 && len(res.YLabels) == 0 {
		return
	}
	p := res.Plot
	st := Style{Stroke: b.theme.Axis, StrokeWidth: 1}
	if len(res.YLabels) > 0 {
		b.add(Item{Kind: KindLine, Class: "axis", X: p.X0, Y: p.Y0, X2: p.X0, Y2: p.Y1, Style: st})
	}
	b.add(Item{Kind: KindLine, Class: "axis", X: p.X0, Y: p.Y1, X2: p.X1, Y2: p.Y1, Style: st})
}

func (b *builder) marks(marks []label.Mark) {
	for i, m := range marks {
		fill := m.Color
		if fill == "" {
			fill = b.theme.color(i)
		}
		st := Style{Fill: fill}
		if m.Circular() {
			st.Stroke, st.StrokeWidth = b.theme.MarkStroke, 1
			b.add(Item{Kind: KindCircle, ID: m.ID, Class: "mark", X: m.X, Y: m.Y, R: m.Radius, Style: st})
			continue
		}
		r := m.Bounds()
		b.add(Item{Kind: KindRect, ID: m.ID, Class: "mark", X: r.X0, Y: r.Y0, W: r.Width(), H: r.Height(), Style: st})
	}
}

func (b *builder) nodes(nodes []pack.Node) {
	for i, n := range nodes {
		fill := n.Color
		if fill == "" {
			fill = b.theme.color(i)
		}
		b.add(Item{
			Kind: KindCircle, ID: n.ID, Class: "node",
			X: n.X, Y: n.Y, R: n.Radius,
			Style: Style{Fill: fill, Stroke: b.theme.MarkStroke, StrokeWidth: 1, Opacity: b.theme.NodeAlpha},
		})
	}
}

func (b *builder) nodeLabels(texts []layout.PositionedText) {
	for _, pt := range texts {
		b.text("node-label", "", pt, b.theme.Background)
	}
}

func (b *builder) labels(labels []label.Label) {
	for _, l := range labels {
		if !l.Visible && !b.theme.ShowHidden {
			continue
		}
		if b.theme.Debug {
			box := l.Box()
			b.add(Item{
				Kind: KindRect, Class: "debug", X: box.X0, Y: box.Y0, W: box.Width(), H: box.Height(),
				Style: Style{Stroke: b.theme.Axis, StrokeWidth: 0.5},
			})
		}
		st := Style{Fill: b.theme.Foreground, Font: l.Font, Anchor: l.Anchor}
		class := "label"
		if !l.Visible {
			st.Opacity = 0.25
			class = "label hidden"
		}
		b.add(Item{
			Kind: KindText, ID: labelID(l), Class: class,
			X: l.ResolvedX, Y: l.ResolvedY,
			Lines:      []string{l.Text},
			LineHeight: l.Height,
			Style:      st,
		})
	}
}

func (b *builder) text(class, id string, pt layout.PositionedText, fill string) {
	if pt.Fit.Empty() {
		return
	}
	lines := make([]string, 0, len(pt.Fit.Lines))
	for _, l := range pt.Fit.Lines {
		lines = append(lines, l.Text)
	}
	if len(lines) == 0 {
		lines = strings.Split(pt.Fit.Text, "\n")
	}
	b.add(Item{
		Kind: KindText, ID: id, Class: class,
		X: pt.X, Y: pt.Y,
		Lines:      lines,
		LineHeight: pt.Fit.Font.Size * b.theme.LineHeight,
		Style:      Style{Fill: fill, Font: pt.Fit.Font, Anchor: pt.Anchor},
	})
}

func labelID(l label.Label) string {
	if l.MarkID != "" {
		return "label-" + l.MarkID
	}
	return ""
}

// Bounds returns the area covered by an item, used for hit tests and raster
// clipping. Text items report their line block around the anchor.
func (it Item) Bounds() geom.Rect {
	switch it.Kind {
	case KindRect:
		return geom.XYWH(it.X, it.Y, it.W, it.H)
	case KindCircle:
		return geom.Circle{Center: geom.Pt(it.X, it.Y), Radius: it.R}.BoundingBox()
	case KindLine:
		return geom.Rect{X0: it.X, Y0: it.Y, X1: it.X2, Y1: it.Y2}.Abs()
	}
	h := float64(len(it.Lines)) * it.LineHeight
	return geom.Rect{X0: it.X, Y0: it.Y - h/2, X1: it.X, Y1: it.Y + h/2}
}
