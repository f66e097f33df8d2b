package text

import "unicode/utf8"

// Fallback estimate ratios, relative to the font size.
const (
	FallbackWidthRatio  = 0.6
	FallbackHeightRatio = 1.2
	fallbackAscentRatio = 0.9
)

// ApproxBackend measures text with the fallback estimate
// runeCount * size * 0.6. It never fails and needs no font data.
type ApproxBackend struct{}

// Measure implements Backend.
func (ApproxBackend) Measure(s string, f FontSpec) (Metrics, error) {
	if s == "" || f.Size <= 0 {
		return Metrics{}, nil
	}
	n := float64(utf8.RuneCountInString(s))
	return Metrics{
		Width:   n * f.Size * FallbackWidthRatio,
		Height:  f.Size * FallbackHeightRatio,
		Ascent:  f.Size * fallbackAscentRatio,
		Descent: f.Size * (FallbackHeightRatio - fallbackAscentRatio),
	}, nil
}
