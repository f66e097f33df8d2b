// Package text measures and fits text without a live layout pass.
//
// # Measurement
//
// A [Provider] is the font metrics provider used by every layout stage. It
// wraps a [Backend] and never fails: when the backend cannot measure a run
// (unknown family, unparsable font data) the provider falls back to the
// documented estimate
//
//	width  = runeCount(text) * size * 0.6
//	height = size * 1.2
//
// Three backends are available:
//   - [OpenTypeBackend]: glyph advances and kerning from golang.org/x/image
//   - [ShapingBackend]: HarfBuzz shaping from go-text/typesetting (ligatures, complex scripts)
//   - [ApproxBackend]: the fallback estimate itself
//
// Measurement resources (font faces, shapers) are created and released
// inside each Measure call. Only parsed font tables, which are immutable, are
// kept on the backend value.
//
// # Fitting
//
// A [Fitter] builds on a Provider and offers three constraint solvers:
//
//   - [Fitter.Truncate]: drop trailing graphemes and append an ellipsis
//   - [Fitter.ShrinkToFit]: reduce the font size in fixed steps down to a minimum
//   - [Fitter.WrapAndShrink]: greedy word wrap coupled with a shared shrink factor
//
// Every result width is at most the requested width. When the minimum font
// size is reached and text still overflows, the overflowing line is
// truncated with an ellipsis (or emptied) rather than returned oversized.
package text
