package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return img
}

func rgb(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRenderPNGShapes(t *testing.T) {
	data, err := RenderPNG(sampleScene())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img := decodePNG(t, data)

	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Fatalf("size = %v, want 120x80", b.Size())
	}
	if r, g, b := rgb(img.At(30, 50)); r != 255 || g != 0 || b != 0 {
		t.Errorf("bar pixel = %d,%d,%d, want red", r, g, b)
	}
	// Half-opaque blue over white.
	if r, g, b := rgb(img.At(86, 42)); b != 255 || r < 100 || r > 155 || g < 100 || g > 155 {
		t.Errorf("dot pixel = %d,%d,%d, want light blue", r, g, b)
	}
	if r, g, b := rgb(img.At(2, 2)); r != 255 || g != 255 || b != 255 {
		t.Errorf("background pixel = %d,%d,%d, want white", r, g, b)
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(sampleScene(), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if b := decodePNG(t, data).Bounds(); b.Dx() != 240 || b.Dy() != 160 {
		t.Errorf("size = %v, want 240x160", b.Size())
	}
}

func TestRenderPNGStrokeOnlyCircle(t *testing.T) {
	s := render.Scene{
		Width: 40, Height: 40, Background: "white",
		Items: []render.Item{
			{Kind: render.KindCircle, X: 20, Y: 20, R: 15, Style: render.Style{Stroke: "black", StrokeWidth: 2}},
		},
	}
	data, err := RenderPNG(s)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img := decodePNG(t, data)
	if r, _, _ := rgb(img.At(20, 20)); r != 255 {
		t.Errorf("center = %d, want unpainted", r)
	}
	if r, _, _ := rgb(img.At(35, 20)); r > 128 {
		t.Errorf("ring = %d, want dark", r)
	}
}

func TestRenderPNGText(t *testing.T) {
	s := render.Scene{
		Width: 100, Height: 30, Background: "#ffffff",
		Items: []render.Item{{
			Kind: render.KindText, X: 50, Y: 15, Lines: []string{"Hello"}, LineHeight: 16,
			Style: render.Style{Fill: "#000000", Font: text.Font("sans-serif", 14), Anchor: "middle"},
		}},
	}
	data, err := RenderPNG(s)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img := decodePNG(t, data)

	var inked, left int
	for y := range 30 {
		for x := range 100 {
			if r, _, _ := rgb(img.At(x, y)); r < 128 {
				inked++
				if x < 25 {
					left++
				}
			}
		}
	}
	if inked == 0 {
		t.Fatal("no text pixels drawn")
	}
	if left > 0 {
		t.Errorf("%d text pixels left of x=25, want middle-anchored text", left)
	}
}

func TestRenderPNGDegenerate(t *testing.T) {
	_, err := RenderPNG(render.Scene{Width: 0, Height: 10})
	if !apperrors.Is(err, apperrors.ErrCodeDegenerateInput) {
		t.Errorf("error = %v, want %s", err, apperrors.ErrCodeDegenerateInput)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}, true},
		{"#1f77b4", color.NRGBA{0x1f, 0x77, 0xb4, 255}, true},
		{"#1f77b480", color.NRGBA{0x1f, 0x77, 0xb4, 0x80}, true},
		{"Red", color.NRGBA{255, 0, 0, 255}, true},
		{"none", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"chartreuse-ish", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := parseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
