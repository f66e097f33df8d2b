package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDecodeTOML(t *testing.T) {
	src := `
[text]
backend = "harfbuzz"
min_font_size = 9

[labels]
candidates = ["top", "right"]

[packing]
area_budget = 0.4
iterations = 50

[layout]
header_height = 60
`
	cfg, err := Decode(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := Default()
	want.Text.Backend = text.BackendHarfBuzz
	want.Text.MinFontSize = 9
	want.Labels.Candidates = []string{"top", "right"}
	want.Packing.AreaBudget = 0.4
	want.Packing.Iterations = 50
	want.Layout.HeaderHeight = 60
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{"style": {"font_family": "Go Mono"}}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Style.FontFamily != "Go Mono" || cfg.Style.TitleSize != 18 {
		t.Errorf("Style = %+v", cfg.Style)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format string
		code   apperrors.Code
	}{
		{"bad backend", "[text]\nbackend = \"cairo\"", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"bad candidate", "[labels]\ncandidates = [\"sideways\"]", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"budget above one", "[packing]\narea_budget = 2.0", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"margin fraction", "[layout]\nmax_margin_fraction = 0.7", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"negative gap", "[labels]\ngap = -2.0", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"bad color", "[style]\nbackground = \"#12345\"", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"negative label size", "[style]\nlabel_size = -4.0", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"syntax", "[text", FormatTOML, apperrors.ErrCodeInvalidConfig},
		{"unknown json field", `{"colour": 1}`, FormatJSON, apperrors.ErrCodeInvalidConfig},
		{"unknown format", "", "yaml", apperrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("error code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadAndEncode(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Text.Ellipsis = "..."
	cfg.Layout.Padding = 24

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBuilders(t *testing.T) {
	cfg := Default()
	cfg.Text.Backend = text.BackendApprox
	cfg.Labels.Candidates = []string{"left"}

	p, err := cfg.Provider(nil)
	if err != nil {
		t.Fatalf("Provider() error = %v", err)
	}
	if w := p.Width("abc", text.Font("x", 10)); w != 18 {
		t.Errorf("approx width = %v, want 18", w)
	}

	placer, err := cfg.Placer(p)
	if err != nil {
		t.Fatalf("Placer() error = %v", err)
	}
	if c := placer.Candidates(); len(c) != 1 || c[0].Name != "left" {
		t.Errorf("Candidates() = %v", c)
	}

	if f := cfg.Fitter(p); f.MinSize() != cfg.Text.MinFontSize {
		t.Errorf("Fitter MinSize = %v", f.MinSize())
	}
	if got := cfg.Color(len(cfg.Style.Palette) + 1); got != cfg.Style.Palette[1] {
		t.Errorf("Color() wraps to %q", got)
	}
	if f := cfg.Font(12, "bold"); f.Weight != text.WeightBold || f.Family != "sans-serif" {
		t.Errorf("Font() = %+v", f)
	}
}

func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load(example) error = %v", err)
	}
	if cfg.Text.Backend != text.BackendHarfBuzz {
		t.Errorf("Backend = %q, want %q", cfg.Text.Backend, text.BackendHarfBuzz)
	}
	if cfg.Packing.AreaBudget != 0.45 {
		t.Errorf("AreaBudget = %v, want 0.45", cfg.Packing.AreaBudget)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Style.TitleSize != Default().Style.TitleSize {
		t.Errorf("TitleSize = %v, want default %v", cfg.Style.TitleSize, Default().Style.TitleSize)
	}
}
