// Package fonts provides the embedded font faces used for text measurement
// and for the SVG preview.
//
// The faces come from the Go font family (golang.org/x/image/font/gofont),
// which is compiled into the binary, so measurement never depends on fonts
// installed on the host. Common web families (Arial, Helvetica, Verdana,
// Courier) are mapped onto the closest Go face: widths differ slightly from
// the real fonts, but they are deterministic and far closer than a
// character-count estimate.
package fonts

import (
	"encoding/base64"
	"slices"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight constants follow the CSS numeric scale.
const (
	WeightRegular = 400
	WeightMedium  = 500
	WeightBold    = 700
)

// FontFamily is the CSS font-family name of the default embedded face.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack written into SVG output so that
// viewers without the embedded face still get a sans-serif font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Face is one embedded font face.
type Face struct {
	Name   string // Human readable face name, e.g. "Go Bold"
	Family string // Canonical family the face belongs to
	Weight int    // CSS weight
	TTF    []byte // TrueType data
}

// DataURI returns the face as a base64 data URI suitable for an SVG
// @font-face rule.
func (f Face) DataURI() string {
	return "data:font/ttf;base64," + base64.StdEncoding.EncodeToString(f.TTF)
}

// Registry maps family names and weights to faces. A Registry is immutable
// after construction and safe for concurrent use.
type Registry struct {
	faces   map[string][]Face // canonical family -> faces sorted by weight
	aliases map[string]string // lowercase alias -> canonical family
}

// Option configures a Registry.
type Option func(*Registry)

// WithFace registers an additional face under family.
func WithFace(family string, weight int, name string, ttf []byte) Option {
	return func(r *Registry) { r.add(family, Face{Name: name, Weight: weight, TTF: ttf}) }
}

// WithAlias makes alias resolve to family.
func WithAlias(alias, family string) Option {
	return func(r *Registry) { r.aliases[normalize(alias)] = normalize(family) }
}

// NewRegistry returns a registry holding the Go sans and mono families plus
// the default aliases.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		faces:   make(map[string][]Face),
		aliases: make(map[string]string),
	}

	r.add("go", Face{Name: "Go Regular", Weight: WeightRegular, TTF: goregular.TTF})
	r.add("go", Face{Name: "Go Medium", Weight: WeightMedium, TTF: gomedium.TTF})
	r.add("go", Face{Name: "Go Bold", Weight: WeightBold, TTF: gobold.TTF})
	r.add("go mono", Face{Name: "Go Mono", Weight: WeightRegular, TTF: gomono.TTF})
	r.add("go mono", Face{Name: "Go Mono Bold", Weight: WeightBold, TTF: gomonobold.TTF})

	for _, alias := range []string{"sans-serif", "serif", "system-ui", "arial", "helvetica", "helvetica neue", "verdana", "tahoma", "segoe ui", "roboto", "open sans"} {
		r.aliases[alias] = "go"
	}
	for _, alias := range []string{"monospace", "courier", "courier new", "menlo", "consolas"} {
		r.aliases[alias] = "go mono"
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) add(family string, f Face) {
	key := normalize(family)
	f.Family = key
	faces := append(r.faces[key], f)
	slices.SortFunc(faces, func(a, b Face) int { return a.Weight - b.Weight })
	r.faces[key] = faces
}

// Lookup resolves a CSS-style family list ("Arial, sans-serif") and a weight
// to a face. Families are tried left to right; within a family the face
// with the nearest weight wins, ties going to the heavier face.
func (r *Registry) Lookup(family string, weight int) (Face, bool) {
	for _, candidate := range strings.Split(family, ",") {
		key := normalize(candidate)
		if key == "" {
			continue
		}
		if canonical, ok := r.aliases[key]; ok {
			key = canonical
		}
		faces := r.faces[key]
		if len(faces) == 0 {
			continue
		}
		return nearestWeight(faces, weight), true
	}
	return Face{}, false
}

// Families returns the canonical family names in sorted order.
func (r *Registry) Families() []string {
	out := make([]string, 0, len(r.faces))
	for k := range r.faces {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func nearestWeight(faces []Face, weight int) Face {
	if weight <= 0 {
		weight = WeightRegular
	}
	best := faces[0]
	bestDiff := abs(best.Weight - weight)
	for _, f := range faces[1:] {
		if d := abs(f.Weight - weight); d <= bestDiff {
			best, bestDiff = f, d
		}
	}
	return best
}

func normalize(family string) string {
	s := strings.TrimSpace(strings.ToLower(family))
	return strings.Trim(s, `"'`)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
