package label

import (
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// Placer defaults.
const (
	DefaultGap     = 4.0
	DefaultPadding = 1.0
)

// Placer resolves label positions. The zero value is not usable; construct
// with NewPlacer.
type Placer struct {
	provider   *text.Provider
	candidates []Candidate
	gap        float64
	padding    float64
}

// PlacerOption configures a Placer.
type PlacerOption func(*Placer)

// WithCandidates sets the candidate priority order.
func WithCandidates(c []Candidate) PlacerOption {
	return func(p *Placer) {
		if len(c) > 0 {
			p.candidates = append([]Candidate(nil), c...)
		}
	}
}

// WithGap sets the distance between an anchor (or its mark edge) and the
// label box.
func WithGap(gap float64) PlacerOption {
	return func(p *Placer) {
		if gap >= 0 {
			p.gap = gap
		}
	}
}

// WithPadding sets the clearance kept around label boxes in collision tests.
func WithPadding(pad float64) PlacerOption {
	return func(p *Placer) {
		if pad >= 0 {
			p.padding = pad
		}
	}
}

// NewPlacer returns a Placer measuring with provider.
func NewPlacer(provider *text.Provider, opts ...PlacerOption) *Placer {
	p := &Placer{
		provider:   provider,
		candidates: DefaultCandidates(),
		gap:        DefaultGap,
		padding:    DefaultPadding,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Candidates returns the candidate order in use.
func (p *Placer) Candidates() []Candidate { return append([]Candidate(nil), p.candidates...) }

// Request asks for one label. MarkID ties the label to the mark it
// annotates: that mark is not an obstacle for it and its radius widens the
// offset.
type Request struct {
	Anchor geom.Point
	Text   string
	Font   text.FontSpec
	MarkID string
}

// PlaceLabel places a single label against the given obstacles and
// previously placed labels. Only visible labels in placed are obstacles.
func (p *Placer) PlaceLabel(anchor geom.Point, txt string, font text.FontSpec, obstacles []Mark, placed []Label, bounds geom.Bounds) Label {
	return p.PlaceFor(Request{Anchor: anchor, Text: txt, Font: font}, obstacles, placed, bounds)
}

// PlaceFor places the label described by req.
func (p *Placer) PlaceFor(req Request, obstacles []Mark, placed []Label, bounds geom.Bounds) Label {
	l := Label{
		AnchorX:        req.Anchor.X,
		AnchorY:        req.Anchor.Y,
		Text:           req.Text,
		Font:           req.Font,
		CandidateIndex: -1,
		ResolvedX:      req.Anchor.X,
		ResolvedY:      req.Anchor.Y,
		Anchor:         AnchorStart,
		State:          Unplaced,
		MarkID:         req.MarkID,
	}
	if req.Text == "" || len(p.candidates) == 0 || bounds.Empty() {
		l.State = Hidden
		return l
	}

	m := p.provider.Measure(req.Text, req.Font)
	l.Width, l.Height = m.Width, m.Height
	offset := p.gap + ownRadius(req.MarkID, obstacles)
	area := bounds.Rect()

	for i, c := range p.candidates {
		l.State = Evaluating
		l.CandidateIndex = i
		l.Anchor = c.Anchor
		l.ResolvedX, l.ResolvedY = resolve(req.Anchor, c, offset, l.Height)

		if p.accepts(l, area, obstacles, placed) {
			l.State = Placed
			l.Visible = true
			return l
		}
	}
	l.State = Hidden
	return l
}

// PlaceAll places reqs in order. Each accepted label becomes an obstacle for
// the ones after it.
func (p *Placer) PlaceAll(reqs []Request, obstacles []Mark, bounds geom.Bounds) []Label {
	out := make([]Label, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, p.PlaceFor(r, obstacles, out, bounds))
	}
	return out
}

func (p *Placer) accepts(l Label, area geom.Rect, obstacles []Mark, placed []Label) bool {
	box := l.Box()
	if !area.Contains(box) {
		return false
	}
	padded := box.Inset(-p.padding)
	for _, m := range obstacles {
		if l.MarkID != "" && m.ID == l.MarkID {
			continue
		}
		if m.Intersects(padded) {
			return false
		}
	}
	for _, o := range placed {
		if o.Visible && o.Box().Intersects(padded) {
			return false
		}
	}
	return true
}

// resolve returns the text anchor x and the box center y for candidate c.
// The box edge nearest the anchor sits offset away from it on each axis the
// candidate moves along.
func resolve(anchor geom.Point, c Candidate, offset, height float64) (float64, float64) {
	x := anchor.X + c.DX*offset
	y := anchor.Y
	switch {
	case c.DY < 0:
		y = anchor.Y + c.DY*offset - height/2
	case c.DY > 0:
		y = anchor.Y + c.DY*offset + height/2
	}
	return x, y
}

func ownRadius(id string, obstacles []Mark) float64 {
	if id == "" {
		return 0
	}
	for _, m := range obstacles {
		if m.ID == id {
			if m.Circular() {
				return m.Radius
			}
			return max(m.W, m.H) / 2
		}
	}
	return 0
}
