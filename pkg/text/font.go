package text

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
)

// Weight is a CSS font weight on the 100–900 scale.
type Weight int

// Common weights.
const (
	WeightNormal Weight = fonts.WeightRegular
	WeightMedium Weight = fonts.WeightMedium
	WeightBold   Weight = fonts.WeightBold
)

// ParseWeight converts CSS weight keywords and numeric strings to a Weight.
// Unknown values map to WeightNormal.
func ParseWeight(s string) Weight {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return WeightNormal
	case "bold", "bolder":
		return WeightBold
	case "medium":
		return WeightMedium
	case "lighter", "light":
		return 300
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
		return Weight(n)
	}
	return WeightNormal
}

// String returns the CSS keyword for 400 and 700 and the number otherwise.
func (w Weight) String() string {
	switch w {
	case 0, WeightNormal:
		return "normal"
	case WeightBold:
		return "bold"
	}
	return strconv.Itoa(int(w))
}

// UnmarshalText accepts keywords and numeric strings (TOML, flags).
func (w *Weight) UnmarshalText(b []byte) error {
	*w = ParseWeight(string(b))
	return nil
}

// UnmarshalJSON accepts both `"bold"` and `700`.
func (w *Weight) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*w = Weight(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("font weight: %w", err)
	}
	*w = ParseWeight(s)
	return nil
}

// FontSpec describes a font. It is an immutable value type.
type FontSpec struct {
	Family string  `json:"family" toml:"family"`
	Size   float64 `json:"size" toml:"size"`
	Weight Weight  `json:"weight,omitempty" toml:"weight"`
}

// Font is a shorthand constructor for a regular-weight FontSpec.
func Font(family string, size float64) FontSpec {
	return FontSpec{Family: family, Size: size, Weight: WeightNormal}
}

// WithSize returns f with a different size.
func (f FontSpec) WithSize(size float64) FontSpec {
	f.Size = size
	return f
}

// WithWeight returns f with a different weight.
func (f FontSpec) WithWeight(w Weight) FontSpec {
	f.Weight = w
	return f
}

func (f FontSpec) String() string {
	return fmt.Sprintf("%s %gpx %s", f.Family, f.Size, f.Weight)
}

// Metrics is the measured extent of a text run. All fields are >= 0.
type Metrics struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}
