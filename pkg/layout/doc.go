// Package layout sequences a complete layout pass for one chart.
//
// A [Coordinator] takes a [Request] (canvas size, title, axis labels,
// annotations, marks and packing nodes) and runs four stages:
//
//  1. Measure every axis and annotation text to find worst-case extents.
//  2. Derive margins from those extents plus padding. Each side is capped
//     at a fraction of the canvas; axis labels that would exceed the cap
//     are truncated. The title is wrapped and shrunk into the header strip.
//  3. Place annotations against the marks and pack nodes around the
//     center, keeping both out of the header.
//  4. Return every resolved position in a [Result] for drawing.
//
// Measurement failures degrade through the provider's fallback estimate.
// A degenerate canvas yields an empty Result; only an unknown chart kind is
// an error.
package layout
