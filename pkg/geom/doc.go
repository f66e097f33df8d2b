// Package geom provides the small set of value types shared by every layout
// stage: points, axis-aligned rectangles, circles, canvas bounds and
// protected regions.
//
// Coordinates are in user units (pixels in SVG output) in a y-down space:
// the origin is the top-left corner of the canvas. All types are immutable
// values; methods return new values instead of mutating the receiver.
package geom
