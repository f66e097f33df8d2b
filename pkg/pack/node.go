package pack

import (
	"math"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/geom"
)

// Node is one circle to pack. Value drives the radius; X and Y are the
// center. Fixed nodes do not move during relaxation.
type Node struct {
	ID     string  `json:"id"`
	Value  float64 `json:"value"`
	Radius float64 `json:"radius"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Fixed  bool    `json:"fixed,omitempty"`
	Label  string  `json:"label,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Center returns the node center.
func (n Node) Center() geom.Point { return geom.Pt(n.X, n.Y) }

// Circle returns the node as a circle.
func (n Node) Circle() geom.Circle { return geom.Circle{Center: n.Center(), Radius: n.Radius} }

// TotalArea returns Σπr² over nodes.
func TotalArea(nodes []Node) float64 {
	var a float64
	for _, n := range nodes {
		a += math.Pi * n.Radius * n.Radius
	}
	return a
}

func validValue(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
