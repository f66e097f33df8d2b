package pack

import (
	"math"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
)

// Options tunes the solver. Zero fields take the defaults below.
type Options struct {
	Iterations        int     `json:"iterations" toml:"iterations"`
	CenterClearRadius float64 `json:"center_clear_radius" toml:"center_clear_radius"`
	Gap               float64 `json:"gap" toml:"gap"`
	CenterPull        float64 `json:"center_pull" toml:"center_pull"`
	Repulsion         float64 `json:"repulsion" toml:"repulsion"`
	OverlapAllowance  float64 `json:"overlap_allowance" toml:"overlap_allowance"`
	RingTolerance     float64 `json:"ring_tolerance" toml:"ring_tolerance"`
	RingBlend         float64 `json:"ring_blend" toml:"ring_blend"`
	MinRadius         float64 `json:"min_radius" toml:"min_radius"`
	MaxRadiusFraction float64 `json:"max_radius_fraction" toml:"max_radius_fraction"`
	AreaBudget        float64 `json:"area_budget" toml:"area_budget"`
	FixedFraction     float64 `json:"fixed_fraction" toml:"fixed_fraction"`
	FinalSweeps       int     `json:"final_sweeps" toml:"final_sweeps"`
}

// DefaultOptions returns the default tuning.
func DefaultOptions() Options {
	return Options{
		Iterations:        200,
		CenterClearRadius: 40,
		Gap:               4,
		CenterPull:        0.02,
		Repulsion:         0.5,
		OverlapAllowance:  2,
		RingTolerance:     0.2,
		RingBlend:         0.5,
		MinRadius:         4,
		MaxRadiusFraction: 0.12,
		AreaBudget:        0.5,
		FixedFraction:     1.0 / 3.0,
		FinalSweeps:       200,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Iterations > 0 {
		d.Iterations = o.Iterations
	}
	if o.CenterClearRadius > 0 {
		d.CenterClearRadius = o.CenterClearRadius
	}
	if o.Gap > 0 {
		d.Gap = o.Gap
	}
	if o.CenterPull > 0 {
		d.CenterPull = o.CenterPull
	}
	if o.Repulsion > 0 {
		d.Repulsion = o.Repulsion
	}
	if o.OverlapAllowance > 0 {
		d.OverlapAllowance = o.OverlapAllowance
	}
	if o.RingTolerance > 0 {
		d.RingTolerance = o.RingTolerance
	}
	if o.RingBlend > 0 {
		d.RingBlend = min(o.RingBlend, 1)
	}
	if o.MinRadius > 0 {
		d.MinRadius = o.MinRadius
	}
	if o.MaxRadiusFraction > 0 {
		d.MaxRadiusFraction = o.MaxRadiusFraction
	}
	if o.AreaBudget > 0 {
		d.AreaBudget = min(o.AreaBudget, 1)
	}
	if o.FixedFraction > 0 {
		d.FixedFraction = min(o.FixedFraction, 1)
	}
	if o.FinalSweeps > 0 {
		d.FinalSweeps = o.FinalSweeps
	}
	return d
}

// Validate rejects negative or non-finite settings and fractions above 1.
func (o Options) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"center_clear_radius", o.CenterClearRadius},
		{"gap", o.Gap},
		{"center_pull", o.CenterPull},
		{"repulsion", o.Repulsion},
		{"overlap_allowance", o.OverlapAllowance},
		{"ring_tolerance", o.RingTolerance},
		{"ring_blend", o.RingBlend},
		{"min_radius", o.MinRadius},
		{"max_radius_fraction", o.MaxRadiusFraction},
		{"area_budget", o.AreaBudget},
		{"fixed_fraction", o.FixedFraction},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "packing.%s must be a finite non-negative number, got %v", f.name, f.v)
		}
	}
	for _, f := range floats[len(floats)-3:] {
		if f.v > 1 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "packing.%s must be at most 1, got %v", f.name, f.v)
		}
	}
	if o.RingBlend > 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "packing.ring_blend must be at most 1, got %v", o.RingBlend)
	}
	if o.Iterations < 0 || o.FinalSweeps < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "packing iteration counts must not be negative")
	}
	return nil
}
