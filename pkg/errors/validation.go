package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasSide bounds each canvas side accepted from callers. Larger
// canvases are almost always unit mistakes (mm vs px) and would allocate an
// unbounded raster.
const MaxCanvasSide = 10000

// ValidateDimensions checks that a canvas width and height are finite,
// non-negative and below the supported maximum.
//
// Zero is accepted: a zero-sized canvas is a degenerate input that the
// layout stages answer with an empty result, not an error.
func ValidateDimensions(width, height float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", v.name)
		}
		if v.value < 0 {
			return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", v.name, v.value)
		}
		if v.value > MaxCanvasSide {
			return New(ErrCodeInvalidInput, "%s too large (max %d)", v.name, MaxCanvasSide)
		}
	}
	return nil
}

// ValidateFontSize checks that a font size is a positive finite number.
func ValidateFontSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return New(ErrCodeInvalidInput, "font size must be a positive number (got %g)", size)
	}
	return nil
}

// ValidateFieldName validates a row field name used to map data rows onto
// chart roles (label, value, x, y, ...).
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "field name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "field name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "field name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateColor accepts CSS hex colors (#rgb, #rrggbb) and plain color
// keywords. It does not resolve keywords; that is left to the output format.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return New(ErrCodeInvalidInput, "invalid hex color: %q", c)
		}
		for _, r := range hex {
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return New(ErrCodeInvalidInput, "invalid hex color: %q", c)
			}
		}
		return nil
	}
	for _, r := range c {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidInput, "invalid color keyword: %q", c)
		}
	}
	return nil
}
