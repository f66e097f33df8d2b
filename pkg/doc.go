// Package pkg provides the core libraries for adaptive chart layout.
//
// # Overview
//
// Chartlayout decides where the text and marks of a chart go so that nothing
// overflows its region and labels do not collide. The pkg directory is
// organized into four main areas:
//
//  1. Measurement - [text] and [fonts]: font metrics and text fitting
//  2. Placement - [label] and [pack]: collision-free labels and bubble packing
//  3. Coordination - [layout] and [config]: one pass over a whole chart
//  4. Delivery - [pipeline], [render], [chartio] and [api]: charts in, artifacts out
//
// # Architecture
//
// The typical data flow:
//
//	chart.toml / chart.json
//	         ↓
//	    [chartio] package (decode and validate)
//	         ↓
//	    [pipeline] package (template → layout.Request)
//	         ↓
//	    [layout] package (margins, title, axes, labels, bubbles)
//	         ↓
//	    [render] package (scene) → [render/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
// Lay out and render a bubble chart:
//
//	import (
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/config"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pack"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
//	    "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render/sink"
//	)
//
//	cfg := config.Default()
//	provider, _ := cfg.Provider(fonts.NewRegistry())
//	coord, _ := layout.New(cfg, provider)
//
//	res, _ := coord.Layout(layout.Request{
//	    Kind:   layout.KindBubble,
//	    Canvas: geom.Bounds{Width: 600, Height: 400},
//	    Title:  "Revenue by region",
//	    Nodes: []pack.Node{
//	        {ID: "emea", Label: "EMEA", Value: 42},
//	        {ID: "apac", Label: "APAC", Value: 17},
//	    },
//	})
//	svg := sink.RenderSVG(render.Build(res, render.ThemeFrom(cfg)))
//
// # Main Packages
//
// ## Measurement
//
// [text] - Font metrics through pluggable backends (OpenType via
// golang.org/x/image, HarfBuzz shaping via go-text/typesetting, and a
// character-count estimate). The [text.Fitter] truncates, shrinks and wraps
// text into a width.
//
// [fonts] - Registry of embedded faces and family aliases used by the
// measuring backends and the PNG rasterizer.
//
// ## Placement
//
// [label] - Greedy candidate placement of data labels around their anchors,
// avoiding marks, other labels and the plot edge.
//
// [pack] - Area-proportional bubble sizing and a force-directed solver that
// keeps circles apart and out of protected regions.
//
// [geom] - Points, rectangles, circles and the intersection tests the
// placers share.
//
// ## Coordination
//
// [layout] - The [layout.Coordinator] reserves margins from measured text,
// fits the title into the header, places axis and data labels, and packs
// bubbles into the remaining plot area.
//
// [config] - Tunables for every stage, loaded from TOML or JSON.
//
// ## Delivery
//
// [pipeline] - Chart templates (scatter, bar, bubble) and the runner used by
// both the CLI and the HTTP API.
//
// [render] - Turns a layout result into a flat scene; [render/sink] writes
// the scene as SVG, PNG, PDF (via rsvg-convert) or JSON.
//
// [api] - HTTP handlers for layout, render, measure and fit.
//
// [observability] - Hooks for layout, render and HTTP events.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg
