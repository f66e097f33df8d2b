package chartio

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
)

// Templates that turn rows into a layout request.
const (
	TemplateScatter = "scatter"
	TemplateBar     = "bar"
	TemplateBubble  = "bubble"
)

// Templates lists the supported template names.
var Templates = []string{TemplateScatter, TemplateBar, TemplateBubble}

// Row is one data record.
type Row map[string]any

// Fields maps template roles to row keys.
type Fields struct {
	Label string `json:"label,omitempty" toml:"label"`
	Value string `json:"value,omitempty" toml:"value"`
	X     string `json:"x,omitempty" toml:"x"`
	Y     string `json:"y,omitempty" toml:"y"`
	Color string `json:"color,omitempty" toml:"color"`
}

// WithDefaults fills unset roles with their default key names.
func (f Fields) WithDefaults() Fields {
	set := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	set(&f.Label, "label")
	set(&f.Value, "value")
	set(&f.X, "x")
	set(&f.Y, "y")
	set(&f.Color, "color")
	return f
}

// Validate checks every key that is set. Unset roles use their defaults.
func (f Fields) Validate() error {
	for _, key := range []string{f.Label, f.Value, f.X, f.Y, f.Color} {
		if key == "" {
			continue
		}
		if err := apperrors.ValidateFieldName(key); err != nil {
			return err
		}
	}
	return nil
}

// Chart is a chart description file.
type Chart struct {
	Template string          `json:"template,omitempty" toml:"template"`
	Title    string          `json:"title,omitempty" toml:"title"`
	Width    float64         `json:"width,omitempty" toml:"width"`
	Height   float64         `json:"height,omitempty" toml:"height"`
	Fields   Fields          `json:"fields,omitzero" toml:"fields"`
	Rows     []Row           `json:"rows,omitempty" toml:"rows"`
	Request  *layout.Request `json:"request,omitempty" toml:"-"`
}

// Validate checks that c names a known template or carries a raw request.
func (c Chart) Validate() error {
	if c.Request != nil {
		return nil
	}
	switch c.Template {
	case TemplateScatter, TemplateBar, TemplateBubble:
	case "":
		return apperrors.New(apperrors.ErrCodeInvalidInput, "chart needs a template or a request")
	default:
		return apperrors.New(apperrors.ErrCodeInvalidKind, "unknown template %q (must be one of %v)", c.Template, Templates)
	}
	if err := apperrors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	return c.Fields.Validate()
}

// String returns the value at key formatted as text. Missing keys yield "".
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Number returns the value at key as a float64. ok is false when the key
// is missing or the value is not numeric.
func (r Row) Number(key string) (float64, bool) {
	switch x := r[key].(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
