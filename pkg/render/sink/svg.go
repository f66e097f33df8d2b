package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	faces []fonts.Face
	title string
}

// WithEmbeddedFont embeds face as an @font-face rule and puts the first
// embedded family in front of every text's font list, so viewers draw the
// glyphs the layout was measured with.
func WithEmbeddedFont(face fonts.Face) SVGOption {
	return func(r *svgRenderer) { r.faces = append(r.faces, face) }
}

// WithDocumentTitle sets the <title> element used by screen readers.
func WithDocumentTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// RenderSVG writes s as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(r.title))
	}
	r.renderDefs(&buf)
	if s.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.Background))
	}
	for _, it := range s.Items {
		r.renderItem(&buf, it)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDefs(buf *bytes.Buffer) {
	if len(r.faces) == 0 {
		return
	}
	buf.WriteString("  <defs>\n    <style>")
	for _, f := range r.faces {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; font-weight: %d; src: url(%s) format('truetype'); }",
			fontFaceFamily(f), f.Weight, f.DataURI())
	}
	buf.WriteString("\n    </style>\n  </defs>\n")
}

func fontFaceFamily(f fonts.Face) string {
	if f.Family == "go" || f.Family == "" {
		return fonts.FontFamily
	}
	return f.Family
}

func (r svgRenderer) renderItem(buf *bytes.Buffer, it render.Item) {
	switch it.Kind {
	case render.KindRect:
		fmt.Fprintf(buf, `  <rect%s x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
			attrs(it), it.X, it.Y, it.W, it.H, paint(it.Style))
	case render.KindCircle:
		fmt.Fprintf(buf, `  <circle%s cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
			attrs(it), it.X, it.Y, it.R, paint(it.Style))
	case render.KindLine:
		fmt.Fprintf(buf, `  <line%s x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
			attrs(it), it.X, it.Y, it.X2, it.Y2, paint(it.Style))
	case render.KindText:
		r.renderText(buf, it)
	}
}

func (r svgRenderer) renderText(buf *bytes.Buffer, it render.Item) {
	if len(it.Lines) == 0 {
		return
	}
	st := it.Style
	family := st.Font.Family
	if len(r.faces) > 0 {
		family = strings.TrimSuffix(fontFaceFamily(r.faces[0])+", "+family, ", ")
	}
	fmt.Fprintf(buf, `  <text%s x="%.2f" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%.2f"`,
		attrs(it), it.X, textAnchor(st.Anchor), EscapeXML(cssFamily(family)), st.Font.Size)
	if w := st.Font.Weight; w != 0 && w != text.WeightNormal {
		fmt.Fprintf(buf, ` font-weight="%d"`, int(w))
	}
	buf.WriteString(paint(st))
	buf.WriteString(">")

	ys := lineCenters(it.Y, it.LineHeight, len(it.Lines))
	if len(it.Lines) == 1 {
		fmt.Fprintf(buf, `<tspan y="%.2f">%s</tspan>`, ys[0], EscapeXML(it.Lines[0]))
	} else {
		for i, line := range it.Lines {
			fmt.Fprintf(buf, "\n    "+`<tspan x="%.2f" y="%.2f">%s</tspan>`, it.X, ys[i], EscapeXML(line))
		}
		buf.WriteString("\n  ")
	}
	buf.WriteString("</text>\n")
}

func attrs(it render.Item) string {
	var s string
	if it.ID != "" {
		s += fmt.Sprintf(` id="%s"`, EscapeXML(it.ID))
	}
	if it.Class != "" {
		s += fmt.Sprintf(` class="%s"`, EscapeXML(it.Class))
	}
	return s
}

func paint(st render.Style) string {
	fill := st.Fill
	if fill == "" {
		fill = "none"
	}
	s := fmt.Sprintf(` fill="%s"`, EscapeXML(fill))
	if st.Stroke != "" && st.StrokeWidth > 0 {
		s += fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, EscapeXML(st.Stroke), st.StrokeWidth)
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		s += fmt.Sprintf(` opacity="%.2f"`, st.Opacity)
	}
	return s
}

func textAnchor(a label.AnchorMode) string {
	switch a {
	case label.AnchorMiddle, label.AnchorEnd:
		return string(a)
	}
	return "start"
}
