package pack

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
)

func valueNodes(values ...float64) []Node {
	nodes := make([]Node, len(values))
	for i, v := range values {
		nodes[i] = Node{ID: fmt.Sprintf("n%d", i), Value: v}
	}
	return nodes
}

func descending(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(100 - 10*i)
	}
	return out
}

func checkPacking(t *testing.T, got []Node, bounds geom.Bounds, budget float64, protected []geom.Region, opts Options) {
	t.Helper()
	opts = opts.withDefaults()

	if total, limit := TotalArea(got), budget*bounds.Area(); total > limit+1e-6 {
		t.Errorf("total area %v exceeds budget %v", total, limit)
	}
	for i, a := range got {
		if a.X < -geom.Eps || a.X > bounds.Width+geom.Eps || a.Y < -geom.Eps || a.Y > bounds.Height+geom.Eps {
			t.Errorf("node %s center (%v, %v) outside bounds", a.ID, a.X, a.Y)
		}
		for _, r := range protected {
			if r.Protected && r.StrictlyContainsPoint(a.Center()) {
				t.Errorf("node %s center inside protected region %+v", a.ID, r.Rect)
			}
		}
		for j := i + 1; j < len(got); j++ {
			b := got[j]
			if d := a.Center().Distance(b.Center()); d < a.Radius+b.Radius-opts.OverlapAllowance-1e-6 {
				t.Errorf("nodes %s and %s too close: %v < %v", a.ID, b.ID, d, a.Radius+b.Radius-opts.OverlapAllowance)
			}
		}
	}
}

func TestPackDescendingValues(t *testing.T) {
	bounds := geom.Bounds{Width: 600, Height: 600}
	in := valueNodes(descending(10)...)
	got := Pack(in, bounds, 0.5, nil)

	if len(got) != 10 {
		t.Fatalf("Pack() returned %d nodes, want 10", len(got))
	}
	checkPacking(t, got, bounds, 0.5, nil, Options{})

	if total := TotalArea(got); total > 180000 {
		t.Errorf("total area %v > 180000", total)
	}
	for _, n := range got[1:] {
		if n.Radius >= got[0].Radius {
			t.Errorf("node %s radius %v not below largest %v", n.ID, n.Radius, got[0].Radius)
		}
	}
	fixed := 0
	for _, n := range got {
		if n.Fixed {
			fixed++
		}
	}
	if fixed != 3 {
		t.Errorf("fixed nodes = %d, want 3", fixed)
	}
	for i := range in {
		if in[i].Radius != 0 || in[i].X != 0 || in[i].Fixed {
			t.Errorf("input node %d modified: %+v", i, in[i])
		}
	}
}

func TestPackProtectedHeader(t *testing.T) {
	bounds := geom.Bounds{Width: 500, Height: 400}
	header := geom.HeaderRegion(bounds, 80)
	protected := []geom.Region{header}
	got := Pack(valueNodes(descending(9)...), bounds, 0.4, protected)

	if len(got) != 9 {
		t.Fatalf("Pack() returned %d nodes, want 9", len(got))
	}
	checkPacking(t, got, bounds, 0.4, protected, Options{})
}

func randomValues(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, 7))
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 + 99*rng.Float64()
	}
	return out
}

func TestPackManyNodes(t *testing.T) {
	canvases := []struct {
		name   string
		bounds geom.Bounds
		header float64
	}{
		{"600x400", geom.Bounds{Width: 600, Height: 400}, 0},
		{"800x600 with header", geom.Bounds{Width: 800, Height: 600}, 80},
	}
	for _, cv := range canvases {
		for _, n := range []int{40, 100, 200} {
			for _, budget := range []float64{0.2, 0.35, 0.5} {
				t.Run(fmt.Sprintf("%s/n=%d/budget=%v", cv.name, n, budget), func(t *testing.T) {
					var protected []geom.Region
					if cv.header > 0 {
						protected = append(protected, geom.HeaderRegion(cv.bounds, cv.header))
					}
					got := Pack(valueNodes(randomValues(n, uint64(n))...), cv.bounds, budget, protected)
					if len(got) != n {
						t.Fatalf("Pack() returned %d nodes, want %d", len(got), n)
					}
					checkPacking(t, got, cv.bounds, budget, protected, Options{})
				})
			}
		}
	}
}

func TestPackKeepsRadiusOrder(t *testing.T) {
	bounds := geom.Bounds{Width: 300, Height: 200}
	values := randomValues(120, 3)
	got := Pack(valueNodes(values...), bounds, 0.5, nil)
	checkPacking(t, got, bounds, 0.5, nil, Options{})
	for i := range got {
		for j := range got {
			if values[i] > values[j] && got[i].Radius < got[j].Radius {
				t.Fatalf("node %d (value %v) smaller than node %d (value %v)", i, values[i], j, values[j])
			}
		}
	}
}

func TestPackScalesToBudget(t *testing.T) {
	bounds := geom.Bounds{Width: 200, Height: 200}
	values := make([]float64, 30)
	for i := range values {
		values[i] = 50
	}
	opts := Options{MaxRadiusFraction: 0.5}
	sized := Size(valueNodes(values...), bounds, opts)

	limit := 0.5 * bounds.Area()
	if total := TotalArea(sized); total > limit+1e-6 {
		t.Fatalf("total area %v > %v", total, limit)
	}
	r0 := sized[0].Radius
	for _, n := range sized {
		if math.Abs(n.Radius-r0) > 1e-9 {
			t.Errorf("equal values got different radii: %v vs %v", n.Radius, r0)
		}
	}
	if r0 >= 0.5*200 {
		t.Errorf("radius %v was not scaled down", r0)
	}
}

func TestSizeProportions(t *testing.T) {
	bounds := geom.Bounds{Width: 400, Height: 300}
	sized := Size(valueNodes(100, 25, 0), bounds, Options{})

	if len(sized) != 3 {
		t.Fatalf("Size() returned %d nodes", len(sized))
	}
	if want := 0.12 * 300; math.Abs(sized[0].Radius-want) > 1e-9 {
		t.Errorf("largest radius = %v, want %v", sized[0].Radius, want)
	}
	if ratio := sized[0].Radius / sized[1].Radius; math.Abs(ratio-2) > 1e-9 {
		t.Errorf("radius ratio for 4x value = %v, want 2", ratio)
	}
	if sized[2].Radius != DefaultOptions().MinRadius {
		t.Errorf("zero-value radius = %v, want min radius", sized[2].Radius)
	}
}

func TestSizeMinRadiusYieldsToBudget(t *testing.T) {
	bounds := geom.Bounds{Width: 20, Height: 20}
	sized := Size(valueNodes(1, 1, 1, 1, 1, 1, 1, 1, 1, 1), bounds, Options{MinRadius: 10})
	if total, limit := TotalArea(sized), 0.5*bounds.Area(); total > limit+1e-6 {
		t.Errorf("total area %v > budget %v", total, limit)
	}
}

func TestSizePartialPinning(t *testing.T) {
	bounds := geom.Bounds{Width: 100, Height: 100}
	values := []float64{100, 25}
	for range 8 {
		values = append(values, 0.0001)
	}
	sized := Size(valueNodes(values...), bounds, Options{MinRadius: 4, MaxRadiusFraction: 0.5})

	if total, limit := TotalArea(sized), 0.5*bounds.Area(); total > limit+1e-6 {
		t.Errorf("total area %v > budget %v", total, limit)
	}
	if ratio := sized[0].Radius / sized[1].Radius; math.Abs(ratio-2) > 1e-9 {
		t.Errorf("radius ratio of unpinned nodes = %v, want 2", ratio)
	}
	if sized[0].Radius >= 50 {
		t.Errorf("largest radius %v was not scaled down", sized[0].Radius)
	}
	for _, n := range sized[2:] {
		if n.Radius != 4 {
			t.Errorf("node %s radius = %v, want the minimum 4", n.ID, n.Radius)
		}
	}
}

func TestPackDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		nodes  []Node
		bounds geom.Bounds
		budget float64
	}{
		{"no nodes", nil, geom.Bounds{Width: 100, Height: 100}, 0.5},
		{"zero width", valueNodes(1, 2), geom.Bounds{Width: 0, Height: 100}, 0.5},
		{"all zero values", valueNodes(0, 0, 0), geom.Bounds{Width: 100, Height: 100}, 0.5},
		{"invalid values", valueNodes(-1, math.NaN(), math.Inf(1)), geom.Bounds{Width: 100, Height: 100}, 0.5},
		{"zero budget", valueNodes(1, 2), geom.Bounds{Width: 100, Height: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.nodes, tt.bounds, tt.budget, nil)
			if got == nil || len(got) != 0 {
				t.Errorf("Pack() = %v, want empty non-nil slice", got)
			}
		})
	}
}

func TestPackSingleAndPair(t *testing.T) {
	bounds := geom.Bounds{Width: 300, Height: 300}
	for _, values := range [][]float64{{5}, {5, 5}} {
		got := Pack(valueNodes(values...), bounds, 0.5, nil)
		if len(got) != len(values) {
			t.Fatalf("Pack(%v) returned %d nodes", values, len(got))
		}
		checkPacking(t, got, bounds, 0.5, nil, Options{})
	}
}

func TestPackDeterministic(t *testing.T) {
	bounds := geom.Bounds{Width: 640, Height: 480}
	nodes := valueNodes(30, 5, 12, 80, 44, 44, 7, 19, 61, 2, 9, 27)
	a := Pack(nodes, bounds, 0.5, nil)
	b := Pack(nodes, bounds, 0.5, nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
	checkPacking(t, a, bounds, 0.5, nil, Options{})
}

func TestSolverOptions(t *testing.T) {
	s := NewSolver(Options{Iterations: 10, Gap: 8})
	if got := s.Options(); got.Iterations != 10 || got.Gap != 8 || got.CenterPull != 0.02 {
		t.Errorf("Options() = %+v", got)
	}
	bounds := geom.Bounds{Width: 400, Height: 400}
	got := s.Pack(valueNodes(10, 20, 30, 40), bounds, nil)
	checkPacking(t, got, bounds, 0.5, nil, s.Options())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(*Options) {}, false},
		{"negative gap", func(o *Options) { o.Gap = -1 }, true},
		{"budget above one", func(o *Options) { o.AreaBudget = 1.5 }, true},
		{"NaN pull", func(o *Options) { o.CenterPull = math.NaN() }, true},
		{"negative iterations", func(o *Options) { o.Iterations = -5 }, true},
		{"blend above one", func(o *Options) { o.RingBlend = 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			if err := o.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
