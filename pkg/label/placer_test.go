package label

import (
	"fmt"
	"math/rand"
	"testing"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

var testFont = text.Font("Arial", 12)

func approxPlacer(opts ...PlacerOption) *Placer {
	return NewPlacer(text.NewProvider(text.ApproxBackend{}), opts...)
}

func TestPlaceLabelSameAnchor(t *testing.T) {
	p := approxPlacer()
	bounds := geom.Bounds{Width: 200, Height: 200}
	anchor := geom.Pt(100, 100)

	var placed []Label
	for range 3 {
		placed = append(placed, p.PlaceLabel(anchor, "Label", testFont, nil, placed, bounds))
	}

	tests := []struct {
		idx       int
		wantState State
		wantCand  string
	}{
		{0, Placed, "right"},
		{1, Placed, "left"},
		{2, Hidden, "bottom-left"},
	}
	cands := p.Candidates()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("label %d", tt.idx), func(t *testing.T) {
			l := placed[tt.idx]
			if l.State != tt.wantState {
				t.Errorf("State = %v, want %v", l.State, tt.wantState)
			}
			if l.Visible != (tt.wantState == Placed) {
				t.Errorf("Visible = %v", l.Visible)
			}
			c, ok := l.Candidate(cands)
			if !ok || c.Name != tt.wantCand {
				t.Errorf("candidate = %q, want %q", c.Name, tt.wantCand)
			}
		})
	}
	if placed[0].Box().Intersects(placed[1].Box()) {
		t.Error("visible labels overlap")
	}
}

func TestPlaceLabelGeometry(t *testing.T) {
	p := approxPlacer(WithGap(4), WithPadding(0))
	bounds := geom.Bounds{Width: 200, Height: 200}
	// "Label" at 12px: 36 x 14.4
	l := p.PlaceLabel(geom.Pt(50, 50), "Label", testFont, nil, nil, bounds)

	if l.ResolvedX != 54 || l.ResolvedY != 50 || l.Anchor != AnchorStart {
		t.Errorf("resolved = (%v, %v, %v), want (54, 50, start)", l.ResolvedX, l.ResolvedY, l.Anchor)
	}
	want := geom.XYWH(54, 50-7.2, 36, 14.4)
	got := l.Box()
	if !approxRect(got, want) {
		t.Errorf("Box() = %+v, want %+v", got, want)
	}
}

func TestPlaceLabelRejections(t *testing.T) {
	bounds := geom.Bounds{Width: 200, Height: 100}
	tests := []struct {
		name      string
		anchor    geom.Point
		obstacles []Mark
		markID    string
		wantCand  string
	}{
		{
			name:     "right edge forces top",
			anchor:   geom.Pt(180, 50),
			wantCand: "top",
		},
		{
			name:     "top right corner",
			anchor:   geom.Pt(190, 5),
			wantCand: "bottom-left",
		},
		{
			name:      "circular mark blocks right",
			anchor:    geom.Pt(100, 50),
			obstacles: []Mark{{ID: "b", X: 125, Y: 50, Radius: 6}},
			wantCand:  "top",
		},
		{
			name:      "rect mark blocks right and top",
			anchor:    geom.Pt(100, 50),
			obstacles: []Mark{{ID: "r", X: 100, Y: 20, W: 50, H: 25}},
			wantCand:  "left",
		},
		{
			name:      "own mark is not an obstacle",
			anchor:    geom.Pt(100, 50),
			obstacles: []Mark{{ID: "own", X: 100, Y: 50, Radius: 10}},
			markID:    "own",
			wantCand:  "right",
		},
	}

	p := approxPlacer()
	cands := p.Candidates()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := p.PlaceFor(Request{Anchor: tt.anchor, Text: "Label", Font: testFont, MarkID: tt.markID}, tt.obstacles, nil, bounds)
			if !l.Visible {
				t.Fatalf("label hidden, want %s", tt.wantCand)
			}
			if c, _ := l.Candidate(cands); c.Name != tt.wantCand {
				t.Errorf("candidate = %q, want %q", c.Name, tt.wantCand)
			}
			if !bounds.Rect().Contains(l.Box()) {
				t.Errorf("box %+v leaves bounds", l.Box())
			}
		})
	}
}

func TestPlaceForOwnMarkOffset(t *testing.T) {
	p := approxPlacer(WithGap(4))
	marks := []Mark{{ID: "m", X: 100, Y: 50, Radius: 10}}
	l := p.PlaceFor(Request{Anchor: geom.Pt(100, 50), Text: "x", Font: testFont, MarkID: "m"}, marks, nil, geom.Bounds{Width: 200, Height: 100})
	if l.ResolvedX != 114 {
		t.Errorf("ResolvedX = %v, want 114 (anchor + radius + gap)", l.ResolvedX)
	}
}

func TestPlaceLabelEdgeCases(t *testing.T) {
	p := approxPlacer()

	l := p.PlaceLabel(geom.Pt(10, 10), "", testFont, nil, nil, geom.Bounds{Width: 100, Height: 100})
	if l.State != Hidden || l.Visible || l.Width != 0 || l.Height != 0 {
		t.Errorf("empty text: %+v, want hidden zero box", l)
	}
	if b := l.Box(); b.Area() != 0 {
		t.Errorf("empty text box area = %v", b.Area())
	}

	l = p.PlaceLabel(geom.Pt(0, 0), "x", testFont, nil, nil, geom.Bounds{})
	if l.State != Hidden {
		t.Errorf("zero bounds: State = %v, want hidden", l.State)
	}

	l = p.PlaceLabel(geom.Pt(5, 5), "far too long for this canvas", testFont, nil, nil, geom.Bounds{Width: 50, Height: 50})
	if l.State != Hidden || l.CandidateIndex != len(p.Candidates())-1 {
		t.Errorf("oversized: State = %v, CandidateIndex = %d", l.State, l.CandidateIndex)
	}
}

func TestHiddenLabelsAreNotObstacles(t *testing.T) {
	p := approxPlacer()
	bounds := geom.Bounds{Width: 200, Height: 200}
	hidden := Label{ResolvedX: 104, ResolvedY: 100, Width: 36, Height: 14.4, Anchor: AnchorStart, State: Hidden}
	l := p.PlaceLabel(geom.Pt(100, 100), "Label", testFont, nil, []Label{hidden}, bounds)
	if l.CandidateIndex != 0 {
		t.Errorf("CandidateIndex = %d, want 0", l.CandidateIndex)
	}
}

func TestPlaceAllInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bounds := geom.Bounds{Width: 400, Height: 300}
	p := approxPlacer()

	var marks []Mark
	var reqs []Request
	for i := range 60 {
		id := fmt.Sprintf("m%d", i)
		x, y := rng.Float64()*400, rng.Float64()*300
		marks = append(marks, Mark{ID: id, X: x, Y: y, Radius: 3})
		reqs = append(reqs, Request{Anchor: geom.Pt(x, y), Text: fmt.Sprintf("Point %d", i), Font: testFont, MarkID: id})
	}

	labels := p.PlaceAll(reqs, marks, bounds)
	if len(labels) != len(reqs) {
		t.Fatalf("PlaceAll returned %d labels, want %d", len(labels), len(reqs))
	}

	visible := 0
	for i, a := range labels {
		if !a.Visible {
			continue
		}
		visible++
		if !bounds.Rect().Contains(a.Box()) {
			t.Errorf("label %d leaves bounds", i)
		}
		for _, m := range marks {
			if m.ID != a.MarkID && m.Intersects(a.Box()) {
				t.Errorf("label %d overlaps mark %s", i, m.ID)
			}
		}
		for j := i + 1; j < len(labels); j++ {
			if labels[j].Visible && a.Box().Intersects(labels[j].Box()) {
				t.Errorf("labels %d and %d overlap", i, j)
			}
		}
	}
	if visible == 0 {
		t.Error("no label was placed")
	}
}

func TestPlaceAllFirstComeWins(t *testing.T) {
	p := approxPlacer()
	bounds := geom.Bounds{Width: 200, Height: 200}
	reqs := []Request{
		{Anchor: geom.Pt(100, 100), Text: "first", Font: testFont},
		{Anchor: geom.Pt(100, 100), Text: "second", Font: testFont},
	}
	labels := p.PlaceAll(reqs, nil, bounds)
	if labels[0].CandidateIndex != 0 {
		t.Errorf("first label moved to candidate %d", labels[0].CandidateIndex)
	}

	swapped := p.PlaceAll([]Request{reqs[1], reqs[0]}, nil, bounds)
	if swapped[0].Text != "second" || swapped[0].CandidateIndex != 0 {
		t.Errorf("reordered input: first label = %q at %d", swapped[0].Text, swapped[0].CandidateIndex)
	}
}

func TestCandidatesByName(t *testing.T) {
	tests := []struct {
		name      string
		in        []string
		wantFirst string
		wantLen   int
		wantErr   bool
	}{
		{"empty is default", nil, "right", 8, false},
		{"custom order", []string{"top", " Bottom "}, "top", 2, false},
		{"unknown", []string{"upwards"}, "", 0, true},
		{"duplicate", []string{"top", "top"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CandidatesByName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CandidatesByName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
					t.Errorf("error code = %v, want INVALID_CONFIG", apperrors.GetCode(err))
				}
				return
			}
			if len(got) != tt.wantLen || got[0].Name != tt.wantFirst {
				t.Errorf("CandidatesByName() = %v", got)
			}
		})
	}
}

func approxRect(a, b geom.Rect) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.X0, b.X0) && d(a.Y0, b.Y0) && d(a.X1, b.X1) && d(a.Y1, b.Y1)
}
