// Package render turns a layout result into immutable drawing records.
//
// [Build] is a pure function from a [layout.Result] and a [Theme] to a
// [Scene]: an ordered list of rectangles, circles, lines and text blocks
// with their styles fully resolved. Nothing in a Scene refers back to the
// layout, so any drawing surface can consume it.
//
// Output formats live in the [sink] subpackage:
//
//	scene := render.Build(result, render.ThemeFrom(cfg))
//	svg := sink.RenderSVG(scene, sink.WithEmbeddedFont(face))
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//
// [layout.Result]: github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout.Result
// [sink]: github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render/sink
package render
