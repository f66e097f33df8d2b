package label

import (
	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// State is the placement state of a Label.
type State int

const (
	Unplaced State = iota
	Evaluating
	Placed
	Hidden
)

func (s State) String() string {
	switch s {
	case Unplaced:
		return "unplaced"
	case Evaluating:
		return "evaluating"
	case Placed:
		return "placed"
	case Hidden:
		return "hidden"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, v := range []State{Unplaced, Evaluating, Placed, Hidden} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown label state %q", b)
}

// Label is a text annotation attached to an anchor point. ResolvedX is the
// x coordinate the text is anchored at (see Anchor); ResolvedY is the
// vertical center of the text box.
type Label struct {
	AnchorX        float64       `json:"anchor_x"`
	AnchorY        float64       `json:"anchor_y"`
	Text           string        `json:"text"`
	Font           text.FontSpec `json:"font"`
	CandidateIndex int           `json:"candidate_index"`
	ResolvedX      float64       `json:"x"`
	ResolvedY      float64       `json:"y"`
	Anchor         AnchorMode    `json:"anchor"`
	Visible        bool          `json:"visible"`
	State          State         `json:"state"`
	MarkID         string        `json:"mark_id,omitempty"`
	Width          float64       `json:"width"`
	Height         float64       `json:"height"`
}

// Box returns the bounding box of the label at its resolved position.
func (l Label) Box() geom.Rect {
	if l.Width == 0 && l.Height == 0 {
		return geom.Rect{X0: l.ResolvedX, Y0: l.ResolvedY, X1: l.ResolvedX, Y1: l.ResolvedY}
	}
	var x0 float64
	switch l.Anchor {
	case AnchorMiddle:
		x0 = l.ResolvedX - l.Width/2
	case AnchorEnd:
		x0 = l.ResolvedX - l.Width
	default:
		x0 = l.ResolvedX
	}
	y0 := l.ResolvedY - l.Height/2
	return geom.XYWH(x0, y0, l.Width, l.Height)
}

// Candidate returns the candidate the label was resolved with, if any.
func (l Label) Candidate(cands []Candidate) (Candidate, bool) {
	if l.CandidateIndex < 0 || l.CandidateIndex >= len(cands) {
		return Candidate{}, false
	}
	return cands[l.CandidateIndex], true
}

// Mark is an obstacle drawn on the chart. It is circular when Radius > 0
// (X, Y is the center) and rectangular otherwise (X, Y is the top-left
// corner).
type Mark struct {
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	W      float64 `json:"width,omitempty"`
	H      float64 `json:"height,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Circular reports whether m is a circle.
func (m Mark) Circular() bool { return m.Radius > 0 }

// Center returns the center of the mark.
func (m Mark) Center() geom.Point {
	if m.Circular() {
		return geom.Pt(m.X, m.Y)
	}
	return geom.Pt(m.X+m.W/2, m.Y+m.H/2)
}

// Bounds returns the bounding box of the mark.
func (m Mark) Bounds() geom.Rect {
	if m.Circular() {
		return geom.Circle{Center: geom.Pt(m.X, m.Y), Radius: m.Radius}.BoundingBox()
	}
	return geom.XYWH(m.X, m.Y, m.W, m.H).Abs()
}

// Intersects reports whether box overlaps m: by distance from the circle
// center for circular marks, by AABB overlap otherwise.
func (m Mark) Intersects(box geom.Rect) bool {
	if m.Circular() {
		return geom.Circle{Center: geom.Pt(m.X, m.Y), Radius: m.Radius}.IntersectsRect(box)
	}
	return m.Bounds().Intersects(box)
}
