package pack

import (
	"cmp"
	"math"
	"slices"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
)

// Solver packs nodes with a fixed set of Options.
type Solver struct {
	opts Options
}

// NewSolver returns a solver. Zero option fields take their defaults.
func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (s *Solver) Options() Options { return s.opts }

// Pack sizes and positions nodes with the default tuning and the given
// area budget fraction.
func Pack(nodes []Node, bounds geom.Bounds, budget float64, protected []geom.Region) []Node {
	if !(budget > 0) {
		return []Node{}
	}
	opts := DefaultOptions()
	opts.AreaBudget = budget
	return NewSolver(opts).Pack(nodes, bounds, protected)
}

// Pack returns a new slice of positioned nodes in input order. The input is
// not modified. Degenerate input (no nodes, empty bounds, no positive
// value) yields an empty slice.
func (s *Solver) Pack(nodes []Node, bounds geom.Bounds, protected []geom.Region) []Node {
	sized := Size(nodes, bounds, s.opts)
	if len(sized) == 0 {
		return []Node{}
	}
	st := newState(sized, bounds, protected, s.opts)
	st.initRing()
	for range s.opts.Iterations {
		st.step()
	}
	st.settle()
	st.resolve()
	return st.nodes
}

// state is the working set of one Pack call.
type state struct {
	opts    Options
	nodes   []Node
	bounds  geom.Bounds
	center  geom.Point
	regions []geom.Rect
	order   []int     // indices by descending radius
	angle   []float64 // ring angle per node
	target  []float64 // ring distance per node
	clear   float64
}

func newState(nodes []Node, bounds geom.Bounds, protected []geom.Region, opts Options) *state {
	st := &state{
		opts:   opts,
		nodes:  nodes,
		bounds: bounds,
		center: bounds.Center(),
		angle:  make([]float64, len(nodes)),
		target: make([]float64, len(nodes)),
	}
	for _, r := range protected {
		if r.Protected && !r.Rect.Abs().Empty() {
			st.regions = append(st.regions, r.Rect.Abs())
		}
	}
	st.order = make([]int, len(nodes))
	for i := range st.order {
		st.order[i] = i
	}
	slices.SortStableFunc(st.order, func(a, b int) int {
		return cmp.Compare(nodes[b].Radius, nodes[a].Radius)
	})
	return st
}

// goldenAngle spreads consecutive spiral positions evenly around the center.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// initRing places nodes on a ring at equal angles, largest first, starting
// at the top. The clear radius is raised until neighbouring circles on the
// ring cannot overlap. When that ring would reach past the canvas, nodes
// start on a spiral from the clear radius out to the canvas edge instead.
func (st *state) initRing() {
	n := len(st.nodes)
	step := 2 * math.Pi / float64(n)
	st.clear = st.opts.CenterClearRadius

	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			ra, rb := st.nodes[st.order[a]].Radius, st.nodes[st.order[b]].Radius
			phi := float64(b-a) * step
			half := math.Sin(math.Min(phi, 2*math.Pi-phi) / 2)
			if half <= 0 {
				continue
			}
			need := (ra+rb+st.opts.Gap)/(2*half) - min(ra, rb) - st.opts.Gap
			st.clear = max(st.clear, need)
		}
	}

	half := min(st.bounds.Width, st.bounds.Height) / 2
	ring := true
	for _, nd := range st.nodes {
		if st.clear+2*nd.Radius+st.opts.Gap > half {
			ring = false
			break
		}
	}

	fixed := int(math.Floor(float64(n) * st.opts.FixedFraction))
	for k, i := range st.order {
		nd := &st.nodes[i]
		if ring {
			st.angle[i] = -math.Pi/2 + float64(k)*step
			st.target[i] = st.clear + nd.Radius + st.opts.Gap
		} else {
			st.angle[i] = -math.Pi/2 + float64(k)*goldenAngle
			st.target[i] = st.spiral(k, n, nd.Radius, half)
		}
		nd.X = st.center.X + st.target[i]*math.Cos(st.angle[i])
		nd.Y = st.center.Y + st.target[i]*math.Sin(st.angle[i])
		if k < fixed {
			nd.Fixed = true
		}
		st.clamp(i)
	}
}

// spiral returns the distance from the center of the k-th of n spiral
// positions. Positions spread evenly over the annulus between the clear
// radius and the point where a circle of radius r touches the canvas edge.
func (st *state) spiral(k, n int, r, half float64) float64 {
	inner := min(st.opts.CenterClearRadius, half)
	outer := half - r - st.opts.Gap
	if outer <= inner {
		return max(0, outer)
	}
	return inner + (outer-inner)*math.Sqrt((float64(k)+0.5)/float64(n))
}

// step runs one relaxation pass.
func (st *state) step() {
	st.pull()
	st.repel()
	st.separate(false)
	for i := range st.nodes {
		if st.nodes[i].Fixed {
			continue
		}
		st.recorrect(i)
		st.clamp(i)
	}
}

func (st *state) pull() {
	for i := range st.nodes {
		nd := &st.nodes[i]
		if nd.Fixed {
			continue
		}
		nd.X += (st.center.X - nd.X) * st.opts.CenterPull
		nd.Y += (st.center.Y - nd.Y) * st.opts.CenterPull
	}
}

// repel pushes non-fixed neighbours apart with a force that fades to zero at
// twice their separation distance.
func (st *state) repel() {
	for i := range st.nodes {
		for j := i + 1; j < len(st.nodes); j++ {
			a, b := &st.nodes[i], &st.nodes[j]
			if a.Fixed || b.Fixed {
				continue
			}
			reach := 2 * (a.Radius + b.Radius + st.opts.Gap)
			ux, uy, d := st.direction(i, j)
			if d >= reach {
				continue
			}
			push := st.opts.Repulsion * (1 - d/reach) / 2
			a.X -= ux * push
			a.Y -= uy * push
			b.X += ux * push
			b.Y += uy * push
		}
	}
}

// separate moves overlapping pairs apart. Fixed nodes only move when both
// nodes of a pair are fixed and force is set. It reports whether any pair
// was closer than allowed.
func (st *state) separate(force bool) bool {
	violated := false
	for i := range st.nodes {
		for j := i + 1; j < len(st.nodes); j++ {
			a, b := &st.nodes[i], &st.nodes[j]
			want := st.separation(a, b)
			ux, uy, d := st.direction(i, j)
			if d >= want-geom.Eps {
				continue
			}
			violated = true
			overlap := want - d
			var wa, wb float64
			switch {
			case !a.Fixed && !b.Fixed:
				wa, wb = 0.5, 0.5
			case a.Fixed && !b.Fixed:
				wb = 1
			case !a.Fixed && b.Fixed:
				wa = 1
			case force:
				wa, wb = 0.5, 0.5
			}
			// A node pressed against a wall cannot give way; its partner
			// takes the whole correction.
			if wa > 0 && wb > 0 {
				switch {
				case st.pinned(a, -ux, -uy):
					wa, wb = 0, 1
				case st.pinned(b, ux, uy):
					wa, wb = 1, 0
				}
			}
			a.X -= ux * overlap * wa
			a.Y -= uy * overlap * wa
			b.X += ux * overlap * wb
			b.Y += uy * overlap * wb
		}
	}
	return violated
}

// separation is the minimum center distance kept between a and b.
func (st *state) separation(a, b *Node) float64 {
	return a.Radius + b.Radius + st.spacing()
}

// spacing is the clearance kept between neighbouring circles.
func (st *state) spacing() float64 {
	return max(0, st.opts.Gap-st.opts.OverlapAllowance)
}

// pinned reports whether nd touches a canvas wall that a move along
// (dx, dy) would push it through.
func (st *state) pinned(nd *Node, dx, dy float64) bool {
	const touch = 1e-6
	return (dx < 0 && nd.X-nd.Radius <= touch) ||
		(dx > 0 && nd.X+nd.Radius >= st.bounds.Width-touch) ||
		(dy < 0 && nd.Y-nd.Radius <= touch) ||
		(dy > 0 && nd.Y+nd.Radius >= st.bounds.Height-touch)
}

// direction returns the unit vector from node i to node j and their
// distance. Coincident nodes separate along the bisector of their ring
// angles.
func (st *state) direction(i, j int) (float64, float64, float64) {
	dx := st.nodes[j].X - st.nodes[i].X
	dy := st.nodes[j].Y - st.nodes[i].Y
	d := math.Hypot(dx, dy)
	if d < geom.Eps {
		t := (st.angle[i] + st.angle[j]) / 2
		return math.Cos(t), math.Sin(t), 0
	}
	return dx / d, dy / d, d
}

// recorrect blends a node back toward its ring distance when it has drifted
// more than RingTolerance of its radius.
func (st *state) recorrect(i int) {
	nd := &st.nodes[i]
	dx, dy := nd.X-st.center.X, nd.Y-st.center.Y
	d := math.Hypot(dx, dy)
	if math.Abs(d-st.target[i]) <= st.opts.RingTolerance*nd.Radius {
		return
	}
	theta := st.angle[i]
	if d > geom.Eps {
		theta = math.Atan2(dy, dx)
	}
	nd2 := d + (st.target[i]-d)*st.opts.RingBlend
	nd.X = st.center.X + nd2*math.Cos(theta)
	nd.Y = st.center.Y + nd2*math.Sin(theta)
}

// clamp keeps node i inside the bounds and its center out of protected
// regions.
func (st *state) clamp(i int) {
	nd := &st.nodes[i]
	nd.X = clampAxis(nd.X, nd.Radius, st.bounds.Width)
	nd.Y = clampAxis(nd.Y, nd.Radius, st.bounds.Height)
	for _, reg := range st.regions {
		st.evict(nd, reg)
	}
}

func clampAxis(v, r, size float64) float64 {
	if 2*r >= size {
		return size / 2
	}
	return math.Max(r, math.Min(v, size-r))
}

// evict moves nd out of reg. The circle is kept clear of the region when
// possible; otherwise only its center is moved to the region edge.
func (st *state) evict(nd *Node, reg geom.Rect) {
	for _, pad := range []float64{nd.Radius, 0} {
		zone := reg.Inset(-pad)
		if !zone.StrictlyContainsPoint(nd.Center()) {
			return
		}
		exits := [4]geom.Point{
			{X: zone.X0, Y: nd.Y}, {X: zone.X1, Y: nd.Y},
			{X: nd.X, Y: zone.Y0}, {X: nd.X, Y: zone.Y1},
		}
		best, bestD := -1, math.Inf(1)
		for k, e := range exits {
			if !st.inside(e, pad) {
				continue
			}
			if d := e.Distance(nd.Center()); d < bestD {
				best, bestD = k, d
			}
		}
		if best >= 0 {
			nd.X, nd.Y = exits[best].X, exits[best].Y
			return
		}
	}
}

func (st *state) inside(p geom.Point, r float64) bool {
	return p.X >= r-geom.Eps && p.X <= st.bounds.Width-r+geom.Eps &&
		p.Y >= r-geom.Eps && p.Y <= st.bounds.Height-r+geom.Eps
}

// settle runs the final overlap sweeps, stopping at the first clean pass.
func (st *state) settle() {
	for range st.opts.FinalSweeps {
		if !st.separate(true) {
			return
		}
		for i := range st.nodes {
			st.clamp(i)
		}
	}
}

// Placement search tuning.
const (
	tangentSteps    = 24
	gridCells       = 64
	shrinkFactor    = 0.9
	maxShrinkRounds = 60
	// slack keeps tangent candidates clear of floating-point ties.
	slack = 1e-3
)

// resolve moves every node that still breaks the spacing, bounds or
// protected-region constraints to the nearest free position, largest first.
// When some node has no free position left, all radii shrink by one shared
// factor and the pass starts over.
func (st *state) resolve() {
	for range maxShrinkRounds {
		if st.place() {
			return
		}
		for i := range st.nodes {
			st.nodes[i].Radius *= shrinkFactor
		}
	}
}

// place keeps each node where it is when that spot is free of the nodes
// already kept, and otherwise searches for the closest free spot. It
// reports false when some node has nowhere to go.
func (st *state) place() bool {
	kept := make([]int, 0, len(st.nodes))
	for _, i := range st.order {
		nd := &st.nodes[i]
		if !st.free(nd.Center(), nd.Radius, kept, true) {
			p, ok := st.search(nd.Center(), nd.Radius, kept)
			if !ok {
				return false
			}
			nd.X, nd.Y = p.X, p.Y
		}
		kept = append(kept, i)
	}
	return true
}

// free reports whether a circle of radius r centered at p stays inside the
// bounds and keeps its spacing from the kept nodes. With strict set the
// whole circle must stay out of protected regions, otherwise only its center.
func (st *state) free(p geom.Point, r float64, kept []int, strict bool) bool {
	if !st.inside(p, r) {
		return false
	}
	pad := 0.0
	if strict {
		pad = r
	}
	for _, reg := range st.regions {
		if reg.Inset(-pad).StrictlyContainsPoint(p) {
			return false
		}
	}
	gap := st.spacing()
	for _, j := range kept {
		o := &st.nodes[j]
		if p.Distance(o.Center()) < r+o.Radius+gap-geom.Eps {
			return false
		}
	}
	return true
}

type candidate struct {
	p geom.Point
	d float64
}

// search returns the free position closest to want for a circle of radius
// r. Candidates touch a kept node or lie on a grid over the canvas.
func (st *state) search(want geom.Point, r float64, kept []int) (geom.Point, bool) {
	var cands []candidate
	add := func(p geom.Point) {
		cands = append(cands, candidate{p: p, d: p.Distance(want)})
	}

	gap := st.spacing()
	for _, j := range kept {
		o := st.nodes[j]
		dist := o.Radius + r + gap + slack
		for k := range tangentSteps {
			t := 2 * math.Pi * float64(k) / tangentSteps
			add(geom.Pt(o.X+dist*math.Cos(t), o.Y+dist*math.Sin(t)))
		}
	}
	cell := max(r, min(st.bounds.Width, st.bounds.Height)/gridCells)
	for y := r; y <= st.bounds.Height-r; y += cell {
		for x := r; x <= st.bounds.Width-r; x += cell {
			add(geom.Pt(x, y))
		}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int { return cmp.Compare(a.d, b.d) })

	for _, strict := range []bool{true, false} {
		for _, c := range cands {
			if st.free(c.p, r, kept, strict) {
				return c.p, true
			}
		}
	}
	return geom.Point{}, false
}
