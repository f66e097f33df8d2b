package text

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
)

// ShapingBackend measures text with the HarfBuzz shaper from
// go-text/typesetting. It applies ligatures and contextual forms, so it is
// the right choice for scripts where advance-width sums are misleading.
type ShapingBackend struct {
	registry *fonts.Registry
	parsed   *parseCache[*gotext.Font]
}

// NewShapingBackend returns a shaping backend resolving families through r.
// A nil registry uses fonts.NewRegistry().
func NewShapingBackend(r *fonts.Registry) *ShapingBackend {
	if r == nil {
		r = fonts.NewRegistry()
	}
	return &ShapingBackend{
		registry: r,
		parsed:   newParseCache(parseGoText),
	}
}

func parseGoText(data []byte) (*gotext.Font, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
}

// Measure implements Backend. Face and shaper are per call: neither is safe
// for concurrent use and neither is retained.
func (b *ShapingBackend) Measure(s string, f FontSpec) (Metrics, error) {
	face, ok := b.registry.Lookup(f.Family, int(f.Weight))
	if !ok {
		return Metrics{}, apperrors.New(apperrors.ErrCodeMeasurementUnavailable, "no face for family %q", f.Family)
	}
	parsed, err := b.parsed.get(face)
	if err != nil {
		return Metrics{}, apperrors.Wrap(apperrors.ErrCodeMeasurementUnavailable, err, "parse %s", face.Name)
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(parsed),
		Size:      floatToFixed(f.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	ascent := fixedToFloat64(out.LineBounds.Ascent)
	descent := -fixedToFloat64(out.LineBounds.Descent)
	return Metrics{
		Width:   fixedToFloat64(out.Advance),
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
	}, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
