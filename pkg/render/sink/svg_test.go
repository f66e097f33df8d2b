package sink

import (
	"strings"
	"testing"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

func sampleScene() render.Scene {
	font := text.Font("Helvetica Neue, Arial", 12)
	return render.Scene{
		Width:      120,
		Height:     80,
		Background: "#ffffff",
		Items: []render.Item{
			{Kind: render.KindLine, Class: "axis", X: 10, Y: 70, X2: 110, Y2: 70, Style: render.Style{Stroke: "#999999", StrokeWidth: 1}},
			{Kind: render.KindRect, ID: "bar", Class: "mark", X: 20, Y: 30, W: 20, H: 40, Style: render.Style{Fill: "#ff0000"}},
			{Kind: render.KindCircle, ID: "dot", Class: "mark", X: 80, Y: 40, R: 10, Style: render.Style{Fill: "#0000ff", Stroke: "#ffffff", StrokeWidth: 1, Opacity: 0.5}},
			{Kind: render.KindText, Class: "label", X: 30, Y: 20, Lines: []string{"a & b"}, LineHeight: 14, Style: render.Style{Fill: "#333333", Font: font, Anchor: label.AnchorMiddle}},
			{Kind: render.KindText, Class: "title", X: 60, Y: 40, Lines: []string{"one", "two"}, LineHeight: 10, Style: render.Style{Fill: "#333333", Font: font.WithWeight(text.WeightBold)}},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleScene()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.0 80.0" width="120" height="80">`,
		`<rect width="100%" height="100%" fill="#ffffff"/>`,
		`<line class="axis" x1="10.00" y1="70.00" x2="110.00" y2="70.00" fill="none" stroke="#999999" stroke-width="1.00"/>`,
		`<rect id="bar" class="mark" x="20.00" y="30.00" width="20.00" height="40.00" fill="#ff0000"/>`,
		`<circle id="dot" class="mark" cx="80.00" cy="40.00" r="10.00" fill="#0000ff" stroke="#ffffff" stroke-width="1.00" opacity="0.50"/>`,
		`text-anchor="middle"`,
		`<tspan y="20.00">a &amp; b</tspan>`,
		`font-family="&#39;Helvetica Neue&#39;, Arial, sans-serif"`,
		`font-weight="700"`,
		`<tspan x="60.00" y="35.00">one</tspan>`,
		`<tspan x="60.00" y="45.00">two</tspan>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
	if strings.Contains(svg, "<style>") {
		t.Error("unexpected <style> without options")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	face, ok := fonts.NewRegistry().Lookup("sans-serif", fonts.WeightRegular)
	if !ok {
		t.Fatal("no default face")
	}
	svg := string(RenderSVG(sampleScene(),
		WithEmbeddedFont(face),
		WithDocumentTitle("Sales <2024>"),
	))

	for _, want := range []string{
		"@font-face { font-family: 'Go'; font-weight: 400; src: url(data:font/ttf;base64,",
		"<title>Sales &lt;2024&gt;</title>",
		`font-family="Go, &#39;Helvetica Neue&#39;, Arial, sans-serif"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a<b>", "a&lt;b&gt;"},
		{`"q" & 'a'`, "&#34;q&#34; &amp; &#39;a&#39;"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSSFamily(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "sans-serif"},
		{"sans-serif", "sans-serif"},
		{"Go", "Go, sans-serif"},
		{"Go Mono, monospace", "'Go Mono', monospace"},
	}
	for _, tt := range tests {
		if got := cssFamily(tt.in); got != tt.want {
			t.Errorf("cssFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineCenters(t *testing.T) {
	got := lineCenters(50, 10, 3)
	want := []float64{40, 50, 60}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lineCenters()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
