package layout

import (
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Kind selects which stages of a layout pass run.
type Kind string

const (
	// KindAuto runs every stage that has input.
	KindAuto Kind = ""
	// KindScatter places annotations against point marks inside axes.
	KindScatter Kind = "scatter"
	// KindBar places category labels and value annotations above bars.
	KindBar Kind = "bar"
	// KindBubble packs nodes across the canvas without axes.
	KindBubble Kind = "bubble"
)

// Kinds lists the accepted kinds.
var Kinds = []Kind{KindAuto, KindScatter, KindBar, KindBubble}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

func (k Kind) axes() bool { return k != KindBubble }

// Insets are distances from the canvas edges.
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns insets of v on every side.
func Uniform(v float64) Insets { return Insets{Top: v, Right: v, Bottom: v, Left: v} }

// IsZero reports whether all sides are zero.
func (in Insets) IsZero() bool { return in == Insets{} }

// Annotation is a text label anchored at plot-normalised coordinates: U
// runs left to right and V bottom to top, both in [0, 1].
type Annotation struct {
	U      float64       `json:"u"`
	V      float64       `json:"v"`
	Text   string        `json:"text"`
	Font   text.FontSpec `json:"font,omitzero"`
	MarkID string        `json:"mark_id,omitempty"`
}

// Request describes one chart to lay out.
//
// Marks use plot-normalised coordinates like annotations. Circular marks
// keep Radius in pixels; for rectangular marks X, Y is the top-left corner
// (V axis pointing up) and W, H are fractions of the plot size. Node
// positions are ignored; only values, labels and colors are read.
type Request struct {
	Kind         Kind          `json:"kind,omitempty"`
	Canvas       geom.Bounds   `json:"canvas"`
	Padding      Insets        `json:"padding,omitzero"`
	Title        string        `json:"title,omitempty"`
	TitleFont    text.FontSpec `json:"title_font,omitzero"`
	XLabels      []string      `json:"x_labels,omitempty"`
	YLabels      []string      `json:"y_labels,omitempty"`
	AxisFont     text.FontSpec `json:"axis_font,omitzero"`
	Annotations  []Annotation  `json:"annotations,omitempty"`
	Marks        []label.Mark  `json:"marks,omitempty"`
	Nodes        []pack.Node   `json:"nodes,omitempty"`
	HeaderHeight float64       `json:"header_height,omitempty"`
}

// PositionedText is fitted text at a resolved position. Y is the vertical
// center of the text block.
type PositionedText struct {
	Fit    text.Fit         `json:"fit"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Anchor label.AnchorMode `json:"anchor"`
}

// Box returns the bounding box of the text block.
func (t PositionedText) Box() geom.Rect {
	x0 := t.X
	switch t.Anchor {
	case label.AnchorMiddle:
		x0 -= t.Fit.Width / 2
	case label.AnchorEnd:
		x0 -= t.Fit.Width
	}
	return geom.XYWH(x0, t.Y-t.Fit.Height/2, t.Fit.Width, t.Fit.Height)
}

// Result holds every resolved position of a layout pass in canvas pixels.
type Result struct {
	Kind       Kind             `json:"kind,omitempty"`
	Canvas     geom.Bounds      `json:"canvas"`
	Plot       geom.Rect        `json:"plot"`
	Margins    Insets           `json:"margins"`
	Header     geom.Region      `json:"header"`
	Title      PositionedText   `json:"title"`
	XLabels    []PositionedText `json:"x_labels,omitempty"`
	YLabels    []PositionedText `json:"y_labels,omitempty"`
	Labels     []label.Label    `json:"labels,omitempty"`
	Marks      []label.Mark     `json:"marks,omitempty"`
	Nodes      []pack.Node      `json:"nodes,omitempty"`
	NodeLabels []PositionedText `json:"node_labels,omitempty"`
	Hidden     int              `json:"hidden"`
}

// Empty reports whether the result has nothing to draw.
func (r Result) Empty() bool {
	return r.Title.Fit.Empty() && len(r.XLabels) == 0 && len(r.YLabels) == 0 &&
		len(r.Labels) == 0 && len(r.Marks) == 0 && len(r.Nodes) == 0
}
