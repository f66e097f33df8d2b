package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/label"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// circleSegments is the number of cubic arcs used per circle.
const circleSegments = 4

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// PNGOption configures RenderPNG.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	registry *fonts.Registry
}

// WithScale renders at scale times the scene size. Values <= 0 are ignored.
func WithScale(scale float64) PNGOption {
	return func(r *pngRenderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithFontRegistry selects the faces used for text. The default is
// fonts.NewRegistry().
func WithFontRegistry(reg *fonts.Registry) PNGOption {
	return func(r *pngRenderer) { r.registry = reg }
}

// RenderPNG rasterizes s. Text uses the same faces as the OpenType
// measurement backend, so labels land where the layout put them.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.registry == nil {
		r.registry = fonts.NewRegistry()
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeDegenerateInput, "cannot rasterize a %gx%g scene", s.Width, s.Height)
	}

	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: r.scale,
		fonts: newFaceCache(r.registry),
	}
	defer c.fonts.close()

	if bg, ok := parseColor(s.Background); ok {
		draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	for _, it := range s.Items {
		if err := c.item(it); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type canvas struct {
	img   *image.RGBA
	scale float64
	fonts *faceCache
}

func (c *canvas) item(it render.Item) error {
	st := it.Style
	switch it.Kind {
	case render.KindRect:
		x0, y0, x1, y1 := it.X, it.Y, it.X+it.W, it.Y+it.H
		if col, ok := parseColor(st.Fill); ok {
			c.fill(withOpacity(col, st.Opacity), func(z *vector.Rasterizer) { c.rect(z, x0, y0, x1, y1) })
		}
		if col, ok := parseColor(st.Stroke); ok && st.StrokeWidth > 0 {
			d := st.StrokeWidth / 2
			c.fill(withOpacity(col, st.Opacity), func(z *vector.Rasterizer) {
				c.rect(z, x0-d, y0-d, x1+d, y1+d)
				c.rect(z, x1-d, y0+d, x0+d, y1-d)
			})
		}
	case render.KindCircle:
		if col, ok := parseColor(st.Fill); ok {
			c.fill(withOpacity(col, st.Opacity), func(z *vector.Rasterizer) { c.circle(z, it.X, it.Y, it.R, false) })
		}
		if col, ok := parseColor(st.Stroke); ok && st.StrokeWidth > 0 {
			d := st.StrokeWidth / 2
			c.fill(withOpacity(col, st.Opacity), func(z *vector.Rasterizer) {
				c.circle(z, it.X, it.Y, it.R+d, false)
				c.circle(z, it.X, it.Y, max(0, it.R-d), true)
			})
		}
	case render.KindLine:
		col, ok := parseColor(st.Stroke)
		if !ok {
			return nil
		}
		c.fill(withOpacity(col, st.Opacity), func(z *vector.Rasterizer) {
			c.line(z, it.X, it.Y, it.X2, it.Y2, max(st.StrokeWidth, 1))
		})
	case render.KindText:
		return c.text(it)
	}
	return nil
}

func (c *canvas) fill(col color.NRGBA, path func(z *vector.Rasterizer)) {
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	path(z)
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func (c *canvas) pt(x, y float64) (float32, float32) {
	return float32(x * c.scale), float32(y * c.scale)
}

// rect adds a closed rectangle. Swapping x0 and x1 reverses the winding,
// which cuts a hole when combined with an outer rectangle.
func (c *canvas) rect(z *vector.Rasterizer, x0, y0, x1, y1 float64) {
	z.MoveTo(c.pt(x0, y0))
	z.LineTo(c.pt(x1, y0))
	z.LineTo(c.pt(x1, y1))
	z.LineTo(c.pt(x0, y1))
	z.ClosePath()
}

func (c *canvas) circle(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	if r <= 0 {
		return
	}
	dir := 1.0
	if reverse {
		dir = -1
	}
	step := dir * 2 * math.Pi / circleSegments
	k := kappa * r
	z.MoveTo(c.pt(cx+r, cy))
	for i := range circleSegments {
		a0 := float64(i) * step
		a1 := a0 + step
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		x1, y1 := c.pt(cx+r*c0-dir*k*s0, cy+r*s0+dir*k*c0)
		x2, y2 := c.pt(cx+r*c1+dir*k*s1, cy+r*s1-dir*k*c1)
		x3, y3 := c.pt(cx+r*c1, cy+r*s1)
		z.CubeTo(x1, y1, x2, y2, x3, y3)
	}
	z.ClosePath()
}

func (c *canvas) line(z *vector.Rasterizer, x1, y1, x2, y2, width float64) {
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	z.MoveTo(c.pt(x1+nx, y1+ny))
	z.LineTo(c.pt(x2+nx, y2+ny))
	z.LineTo(c.pt(x2-nx, y2-ny))
	z.LineTo(c.pt(x1-nx, y1-ny))
	z.ClosePath()
}

func (c *canvas) text(it render.Item) error {
	col, ok := parseColor(it.Style.Fill)
	if !ok || len(it.Lines) == 0 {
		return nil
	}
	f := it.Style.Font
	face, err := c.fonts.face(f, c.scale)
	if err != nil {
		return err
	}
	m := face.Metrics()
	// Baseline that centers the ascent/descent box on the line center.
	shift := (m.Ascent - m.Descent).Ceil() / 2

	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(withOpacity(col, it.Style.Opacity)), Face: face}
	for i, y := range lineCenters(it.Y, it.LineHeight, len(it.Lines)) {
		line := it.Lines[i]
		w := font.MeasureString(face, line)
		x := fixed.Int26_6(it.X * c.scale * 64)
		switch it.Style.Anchor {
		case label.AnchorMiddle:
			x -= w / 2
		case label.AnchorEnd:
			x -= w
		}
		d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(y*c.scale*64) + fixed.I(shift)}
		d.DrawString(line)
	}
	return nil
}

type faceKey struct {
	name string
	size float64
}

// faceCache opens each face and size once per render.
type faceCache struct {
	registry *fonts.Registry
	parsed   map[string]*opentype.Font
	open     map[faceKey]font.Face
}

func newFaceCache(reg *fonts.Registry) *faceCache {
	return &faceCache{
		registry: reg,
		parsed:   make(map[string]*opentype.Font),
		open:     make(map[faceKey]font.Face),
	}
}

func (fc *faceCache) face(spec text.FontSpec, scale float64) (font.Face, error) {
	ff, ok := fc.registry.Lookup(spec.Family, int(spec.Weight))
	if !ok {
		ff, ok = fc.registry.Lookup(fonts.FontFamily, int(spec.Weight))
	}
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeMeasurementUnavailable, "no face for family %q", spec.Family)
	}
	key := faceKey{name: ff.Name, size: spec.Size * scale}
	if f, ok := fc.open[key]; ok {
		return f, nil
	}

	otf, ok := fc.parsed[ff.Name]
	if !ok {
		var err error
		if otf, err = opentype.Parse(ff.TTF); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeMeasurementUnavailable, err, "parse %s", ff.Name)
		}
		fc.parsed[ff.Name] = otf
	}
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: max(key.size, 1), DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMeasurementUnavailable, err, "open %s", ff.Name)
	}
	fc.open[key] = f
	return f, nil
}

func (fc *faceCache) close() {
	for _, f := range fc.open {
		_ = f.Close()
	}
}
