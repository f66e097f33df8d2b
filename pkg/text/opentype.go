package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
)

// measureDPI makes one point equal one pixel.
const measureDPI = 72

// OpenTypeBackend measures text with golang.org/x/image/font/opentype.
// Widths include kerning; height is ascent + descent of the face.
type OpenTypeBackend struct {
	registry *fonts.Registry
	parsed   *parseCache[*opentype.Font]
}

// NewOpenTypeBackend returns a backend resolving families through r. A nil
// registry uses fonts.NewRegistry().
func NewOpenTypeBackend(r *fonts.Registry) *OpenTypeBackend {
	if r == nil {
		r = fonts.NewRegistry()
	}
	return &OpenTypeBackend{
		registry: r,
		parsed:   newParseCache(opentype.Parse),
	}
}

// Measure implements Backend. The font.Face is created for this call only
// and closed before returning.
func (b *OpenTypeBackend) Measure(s string, f FontSpec) (Metrics, error) {
	face, ok := b.registry.Lookup(f.Family, int(f.Weight))
	if !ok {
		return Metrics{}, apperrors.New(apperrors.ErrCodeMeasurementUnavailable, "no face for family %q", f.Family)
	}
	otf, err := b.parsed.get(face)
	if err != nil {
		return Metrics{}, apperrors.Wrap(apperrors.ErrCodeMeasurementUnavailable, err, "parse %s", face.Name)
	}

	ff, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     measureDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Metrics{}, apperrors.Wrap(apperrors.ErrCodeMeasurementUnavailable, err, "open %s at %gpx", face.Name, f.Size)
	}
	defer ff.Close()

	fm := ff.Metrics()
	ascent := fixedToFloat64(fm.Ascent)
	descent := fixedToFloat64(fm.Descent)
	return Metrics{
		Width:   fixedToFloat64(font.MeasureString(ff, s)),
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
	}, nil
}

// parseCache holds parsed, immutable font tables keyed by face name.
type parseCache[T any] struct {
	mu    sync.Mutex
	fonts map[string]T
	parse func([]byte) (T, error)
}

func newParseCache[T any](parse func([]byte) (T, error)) *parseCache[T] {
	return &parseCache[T]{fonts: make(map[string]T), parse: parse}
}

func (c *parseCache[T]) get(face fonts.Face) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := face.Family + "/" + face.Name
	if f, ok := c.fonts[key]; ok {
		return f, nil
	}
	f, err := c.parse(face.TTF)
	if err != nil {
		var zero T
		return zero, err
	}
	c.fonts[key] = f
	return f, nil
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
