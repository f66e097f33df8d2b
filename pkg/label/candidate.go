package label

import (
	"strings"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
)

// AnchorMode is the horizontal text anchor of a placed label, matching the
// SVG text-anchor values.
type AnchorMode string

const (
	AnchorStart  AnchorMode = "start"
	AnchorMiddle AnchorMode = "middle"
	AnchorEnd    AnchorMode = "end"
)

// Candidate is a relative position to try. DX and DY are unit directions
// scaled by the placement offset; DY < 0 is above the anchor.
type Candidate struct {
	Name   string     `json:"name"`
	DX     float64    `json:"dx"`
	DY     float64    `json:"dy"`
	Anchor AnchorMode `json:"anchor"`
}

var builtin = []Candidate{
	{Name: "right", DX: 1, DY: 0, Anchor: AnchorStart},
	{Name: "top", DX: 0, DY: -1, Anchor: AnchorMiddle},
	{Name: "left", DX: -1, DY: 0, Anchor: AnchorEnd},
	{Name: "bottom", DX: 0, DY: 1, Anchor: AnchorMiddle},
	{Name: "top-right", DX: 1, DY: -1, Anchor: AnchorStart},
	{Name: "top-left", DX: -1, DY: -1, Anchor: AnchorEnd},
	{Name: "bottom-right", DX: 1, DY: 1, Anchor: AnchorStart},
	{Name: "bottom-left", DX: -1, DY: 1, Anchor: AnchorEnd},
}

// DefaultCandidates returns the default priority order: right, top, left,
// bottom, top-right, top-left, bottom-right, bottom-left.
func DefaultCandidates() []Candidate {
	out := make([]Candidate, len(builtin))
	copy(out, builtin)
	return out
}

// CandidateNames lists the names accepted by CandidatesByName.
func CandidateNames() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name
	}
	return names
}

// CandidatesByName builds a custom priority order from candidate names.
// An empty list yields the default order.
func CandidatesByName(names []string) ([]Candidate, error) {
	if len(names) == 0 {
		return DefaultCandidates(), nil
	}
	out := make([]Candidate, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		c, ok := lookup(name)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown label candidate %q (must be one of %v)", raw, CandidateNames())
		}
		if seen[name] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "label candidate %q listed twice", raw)
		}
		seen[name] = true
		out = append(out, c)
	}
	return out, nil
}

func lookup(name string) (Candidate, bool) {
	for _, c := range builtin {
		if c.Name == name {
			return c, true
		}
	}
	return Candidate{}, false
}
