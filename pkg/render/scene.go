package render

import (
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/config"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Kind identifies the shape of an Item.
type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindText   Kind = "text"
)

// Style holds the resolved presentation of an Item. Empty colors mean "none".
type Style struct {
	Fill        string           `json:"fill,omitempty"`
	Stroke      string           `json:"stroke,omitempty"`
	StrokeWidth float64          `json:"stroke_width,omitempty"`
	Opacity     float64          `json:"opacity,omitempty"`
	Font        text.FontSpec    `json:"font,omitzero"`
	Anchor      label.AnchorMode `json:"anchor,omitempty"`
}

// Item is one drawing record.
//
//   - rect: X, Y top-left; W, H size
//   - circle: X, Y center; R radius
//   - line: X, Y to X2, Y2
//   - text: X anchor position; Y vertical center of the block; Lines drawn
//     LineHeight apart
type Item struct {
	Kind       Kind     `json:"kind"`
	ID         string   `json:"id,omitempty"`
	Class      string   `json:"class,omitempty"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	W          float64  `json:"w,omitempty"`
	H          float64  `json:"h,omitempty"`
	R          float64  `json:"r,omitempty"`
	X2         float64  `json:"x2,omitempty"`
	Y2         float64  `json:"y2,omitempty"`
	Lines      []string `json:"lines,omitempty"`
	LineHeight float64  `json:"line_height,omitempty"`
	Style      Style    `json:"style"`
}

// Scene is a complete, immutable drawing description.
type Scene struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background,omitempty"`
	Items      []Item  `json:"items"`
}

// Theme is the scene-wide look passed to Build.
type Theme struct {
	Background string
	Foreground string
	Axis       string
	MarkStroke string
	Palette    []string
	LineHeight float64
	NodeAlpha  float64
	// ShowHidden draws hidden labels faintly; Debug outlines every label box.
	ShowHidden bool
	Debug      bool
}

// DefaultTheme returns the theme for the default configuration.
func DefaultTheme() Theme { return ThemeFrom(config.Default()) }

// ThemeFrom derives a theme from a configuration.
func ThemeFrom(cfg config.Config) Theme {
	return Theme{
		Background: cfg.Style.Background,
		Foreground: cfg.Style.Foreground,
		Axis:       "#999999",
		MarkStroke: "#ffffff",
		Palette:    append([]string(nil), cfg.Style.Palette...),
		LineHeight: cfg.Text.LineHeight,
		NodeAlpha:  0.85,
	}
}

func (t Theme) color(i int) string {
	if len(t.Palette) == 0 {
		return t.Foreground
	}
	return t.Palette[i%len(t.Palette)]
}
