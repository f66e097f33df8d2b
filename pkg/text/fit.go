package text

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"
)

// Fitting defaults.
const (
	DefaultEllipsis   = "…"
	DefaultShrinkStep = 1.0
	DefaultMinSize    = 8.0

	// widthEps absorbs floating-point noise in width comparisons.
	widthEps = 1e-6
)

// Line is one line of fitted text.
type Line struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
}

// Fit is the result of a fitting operation.
type Fit struct {
	Text      string   `json:"text"`
	Font      FontSpec `json:"font"`
	Lines     []Line   `json:"lines,omitempty"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Truncated bool     `json:"truncated,omitempty"`
	Shrunk    bool     `json:"shrunk,omitempty"`
}

// Empty reports whether nothing is left to draw.
func (f Fit) Empty() bool { return f.Text == "" }

// Fitter fits text into width constraints using a Provider.
type Fitter struct {
	provider *Provider
	ellipsis string
	step     float64
	minSize  float64
}

// FitterOption configures a Fitter.
type FitterOption func(*Fitter)

// WithEllipsis sets the truncation marker (default "…").
func WithEllipsis(s string) FitterOption { return func(f *Fitter) { f.ellipsis = s } }

// WithShrinkStep sets the font size decrement of ShrinkToFit (default 1px).
func WithShrinkStep(step float64) FitterOption {
	return func(f *Fitter) {
		if step > 0 {
			f.step = step
		}
	}
}

// WithMinSize sets the default minimum font size (default 8px).
func WithMinSize(size float64) FitterOption {
	return func(f *Fitter) {
		if size > 0 {
			f.minSize = size
		}
	}
}

// NewFitter returns a Fitter measuring through p.
func NewFitter(p *Provider, opts ...FitterOption) *Fitter {
	f := &Fitter{
		provider: p,
		ellipsis: DefaultEllipsis,
		step:     DefaultShrinkStep,
		minSize:  DefaultMinSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Provider returns the provider the fitter measures with.
func (f *Fitter) Provider() *Provider { return f.provider }

// MinSize returns the configured minimum font size.
func (f *Fitter) MinSize() float64 { return f.minSize }

// Truncate shortens s until s+"…" fits within maxWidth. Text that already
// fits is returned unchanged. If not even the ellipsis fits, the result is
// empty.
func (f *Fitter) Truncate(s string, font FontSpec, maxWidth float64) Fit {
	if s == "" {
		return Fit{Font: font}
	}
	m := f.provider.Measure(s, font)
	if m.Width <= maxWidth+widthEps {
		return single(s, font, m)
	}
	text, w := f.ellipsize(s, font, maxWidth, false)
	out := Fit{Text: text, Font: font, Width: w, Truncated: true}
	if text != "" {
		out.Lines = []Line{{Text: text, Width: w}}
		out.Height = m.Height
	}
	return out
}

// ShrinkToFit lowers the font size by the configured step while s is wider
// than maxWidth and the size is above minSize. If s still overflows at the
// smallest size it is truncated at that size. A minSize <= 0 uses the
// fitter default.
func (f *Fitter) ShrinkToFit(s string, font FontSpec, maxWidth, minSize float64) Fit {
	if s == "" {
		return Fit{Font: font}
	}
	if minSize <= 0 {
		minSize = f.minSize
	}

	cur := font
	m := f.provider.Measure(s, cur)
	for m.Width > maxWidth+widthEps && cur.Size > minSize {
		cur = cur.WithSize(max(minSize, cur.Size-f.step))
		m = f.provider.Measure(s, cur)
	}

	var out Fit
	if m.Width <= maxWidth+widthEps {
		out = single(s, cur, m)
	} else {
		out = f.Truncate(s, cur, maxWidth)
	}
	out.Shrunk = cur.Size < font.Size
	return out
}

// ellipsize finds the longest prefix of s, cut at a grapheme boundary and
// stripped of trailing blanks, that fits together with the ellipsis. With
// force set the full text is a candidate too, which marks text that was cut
// elsewhere (e.g. at a line limit).
func (f *Fitter) ellipsize(s string, font FontSpec, maxWidth float64, force bool) (string, float64) {
	ends := clusterEnds(s)
	hi := len(ends) - 1
	if force {
		hi = len(ends)
	}
	head := func(n int) string { return strings.TrimRight(s[:ends[n-1]], " \t") }

	// Prefixes made only of blanks trim to nothing and are skipped.
	lo := len(ends) + 1
	if i := strings.IndexFunc(s, func(r rune) bool { return r != ' ' && r != '\t' }); i >= 0 {
		k, _ := slices.BinarySearch(ends, i+1)
		lo = k + 1
	}

	// Width grows with the prefix, so the longest fit is found by bisection.
	var best string
	var bestW float64
	for lo <= hi {
		mid := lo + (hi-lo)/2
		cand := head(mid) + f.ellipsis
		if w := f.provider.Width(cand, font); w <= maxWidth+widthEps {
			best, bestW = cand, w
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best != "" {
		return best, bestW
	}
	if f.ellipsis != "" {
		if w := f.provider.Width(f.ellipsis, font); w <= maxWidth+widthEps {
			return f.ellipsis, w
		}
	}
	return "", 0
}

func single(s string, font FontSpec, m Metrics) Fit {
	return Fit{
		Text:   s,
		Font:   font,
		Lines:  []Line{{Text: s, Width: m.Width}},
		Width:  m.Width,
		Height: m.Height,
	}
}

// clusterEnds returns the byte offset after each user-perceived character
// of s, so truncation never separates a base letter from its combining marks
// or splits an emoji.
func clusterEnds(s string) []int {
	var out []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, end := g.Positions()
		out = append(out, end)
	}
	return out
}
