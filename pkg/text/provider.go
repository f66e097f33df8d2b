package text

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// Backend measures text. Implementations return an error wrapping
// errors.ErrCodeMeasurementUnavailable when they cannot measure a font; the
// Provider recovers from it.
type Backend interface {
	Measure(s string, f FontSpec) (Metrics, error)
}

// Provider is the font metrics provider. It is safe for concurrent use when
// its backend is.
type Provider struct {
	backend    Backend
	fallback   ApproxBackend
	onFallback func(FontSpec, error)
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithFallbackHook registers fn to be called every time the backend fails
// and the fallback estimate is used instead.
func WithFallbackHook(fn func(FontSpec, error)) ProviderOption {
	return func(p *Provider) { p.onFallback = fn }
}

// NewProvider returns a Provider using b. A nil backend measures everything
// with the fallback estimate.
func NewProvider(b Backend, opts ...ProviderOption) *Provider {
	p := &Provider{backend: b}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Measure returns the extent of s rendered in f. It is deterministic for
// identical inputs and never fails.
func (p *Provider) Measure(s string, f FontSpec) Metrics {
	if s == "" || !(f.Size > 0) || math.IsInf(f.Size, 0) {
		return Metrics{}
	}
	s = norm.NFC.String(s)
	if p == nil || p.backend == nil {
		m, _ := ApproxBackend{}.Measure(s, f)
		return m
	}
	m, err := p.backend.Measure(s, f)
	if err != nil {
		if p.onFallback != nil {
			p.onFallback(f, err)
		}
		m, _ = p.fallback.Measure(s, f)
	}
	return clampMetrics(m)
}

// Width is a shorthand for Measure(s, f).Width.
func (p *Provider) Width(s string, f FontSpec) float64 { return p.Measure(s, f).Width }

// LineHeight returns the height of one line of f, independent of content.
func (p *Provider) LineHeight(f FontSpec) float64 {
	return p.Measure("Hg", f).Height
}

func clampMetrics(m Metrics) Metrics {
	m.Width = nonNegative(m.Width)
	m.Height = nonNegative(m.Height)
	m.Ascent = nonNegative(m.Ascent)
	m.Descent = nonNegative(m.Descent)
	return m
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
