package pipeline

import (
	"context"
	"strings"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render/sink"
)

// renderOptions is the resolved per-format configuration of one render.
type renderOptions struct {
	formats []string
	svg     []sink.SVGOption
	png     []sink.PNGOption
}

func (r *Runner) renderOptions(opts Options) renderOptions {
	ro := renderOptions{
		formats: opts.Formats,
		png:     []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithFontRegistry(r.Registry)},
	}
	if opts.EmbedFont {
		ro.svg = append(ro.svg, r.embeddedFaces()...)
	}
	return ro
}

// embeddedFaces returns the regular and bold faces of the configured family.
func (r *Runner) embeddedFaces() []sink.SVGOption {
	var out []sink.SVGOption
	seen := make(map[string]bool)
	for _, w := range []int{fonts.WeightRegular, fonts.WeightBold} {
		face, ok := r.Registry.Lookup(r.Config.Style.FontFamily, w)
		if !ok || seen[face.Name] {
			continue
		}
		seen[face.Name] = true
		out = append(out, sink.WithEmbeddedFont(face))
	}
	return out
}

// renderFormats writes scene in every requested format. PDF is converted
// from the SVG output.
func renderFormats(ctx context.Context, res layout.Result, scene render.Scene, id string, ro renderOptions) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(ro.formats))
	var svg []byte
	svgBytes := func() []byte {
		if svg == nil {
			opts := ro.svg
			if title := strings.ReplaceAll(res.Title.Fit.Text, "\n", " "); title != "" {
				opts = append([]sink.SVGOption{sink.WithDocumentTitle(title)}, opts...)
			}
			svg = sink.RenderSVG(scene, opts...)
		}
		return svg
	}

	for _, format := range ro.formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = svgBytes()
		case FormatPNG:
			data, err = sink.RenderPNG(scene, ro.png...)
		case FormatPDF:
			data, err = sink.ToPDF(ctx, svgBytes())
		case FormatJSON:
			data, err = sink.RenderJSON(res, sink.WithJSONID(id), sink.WithJSONScene(scene))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
