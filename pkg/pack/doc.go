// Package pack arranges value-sized circles around the canvas center for
// proportional-area charts.
//
// Radii are area-preserving (r grows with √value) and share one scale
// factor, so the total packed area never exceeds the configured fraction
// of the canvas. Nodes start on a ring sorted by descending radius; the
// largest third is pinned to hold the ring's shape while the remaining
// nodes relax under a weak center pull, short-range repulsion and
// pairwise overlap correction. Every pass pulls drifting nodes back toward
// their ring distance and clamps them to the canvas and out of protected
// regions.
//
// The solver runs a fixed number of passes and does not test for
// convergence, so a call always finishes in bounded time. A short series of
// final overlap sweeps follows.
package pack
