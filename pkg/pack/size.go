package pack

import (
	"math"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
)

// Size returns copies of nodes with radii derived from their values. The
// largest value gets MaxRadiusFraction of the shorter canvas side and the
// rest scale with √value, clamped to MinRadius. If the circles would cover
// more than AreaBudget of the canvas, radii above the minimum shrink by one
// shared factor until the total fits.
//
// When even n circles of MinRadius exceed the budget, the minimum is lowered
// to the largest radius that fits. Nodes with invalid values (negative,
// NaN, infinite) are dropped. The result is nil when nothing can be sized.
func Size(nodes []Node, bounds geom.Bounds, opts Options) []Node {
	opts = opts.withDefaults()
	if bounds.Empty() {
		return nil
	}

	out := make([]Node, 0, len(nodes))
	var maxV float64
	for _, n := range nodes {
		if !validValue(n.Value) {
			continue
		}
		out = append(out, n)
		maxV = max(maxV, n.Value)
	}
	if len(out) == 0 || maxV <= 0 {
		return nil
	}

	budget := opts.AreaBudget * bounds.Area()
	minR := opts.MinRadius
	if floor := float64(len(out)) * math.Pi * minR * minR; floor > budget {
		minR = math.Sqrt(budget / (float64(len(out)) * math.Pi))
	}

	largest := opts.MaxRadiusFraction * min(bounds.Width, bounds.Height)
	for i := range out {
		out[i].Radius = max(minR, largest*math.Sqrt(out[i].Value/maxV))
	}

	// Each pass either fits the budget or pins at least one more node to
	// the minimum, so len(out)+1 passes always suffice.
	for range len(out) + 1 {
		total := TotalArea(out)
		if total <= budget {
			break
		}
		var pinned, free float64
		for _, n := range out {
			if n.Radius <= minR {
				pinned += math.Pi * minR * minR
			} else {
				free += math.Pi * n.Radius * n.Radius
			}
		}
		if free == 0 {
			break
		}
		s := math.Sqrt(max(0, budget-pinned) / free)
		for i := range out {
			if out[i].Radius > minR {
				out[i].Radius = max(minR, out[i].Radius*s)
			}
		}
	}
	return out
}
