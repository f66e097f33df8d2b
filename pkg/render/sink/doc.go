// Package sink writes a [render.Scene] in concrete output formats.
//
//   - [RenderSVG] produces a standalone SVG document, optionally with the
//     measuring font embedded so the browser draws exactly the widths the
//     layout was computed with.
//   - [RenderPNG] rasterizes natively with golang.org/x/image.
//   - [RenderJSON] serializes the layout result for other renderers.
//   - [ToPDF] converts SVG through rsvg-convert when it is installed.
//
// [render.Scene]: github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render.Scene
package sink
