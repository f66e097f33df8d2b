// Package label places text annotations next to their anchors without
// overlapping marks, other labels, or the canvas edge.
//
// Each label walks a priority-ordered list of [Candidate] offsets
// (right, top, left, bottom, then the diagonals by default). The first
// candidate whose bounding box stays inside the bounds, avoids every mark
// except the one the label belongs to, and avoids every previously placed
// visible label is accepted. When no candidate qualifies the label is
// Hidden but keeps the geometry of the last candidate tried.
//
// Placement is first-come: labels are processed in input order and earlier
// labels are never moved to make room for later ones. Reordering the input
// can therefore change which labels end up visible.
package label
