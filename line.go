package spline

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Line represents a line segment in space.
type Line struct {
	// The line's start point.
	P0 r3.Vec
	// The line's end point.
	P1 r3.Vec
}

var _ ParametricCurve = Line{}
var _ ArclenSolver = Line{}
var _ Subsegmenter = Line{}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return r3.Norm(r3.Sub(l.P1, l.P0))
}

// Arclen returns the length of the line
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	return arclen / l.Length()
}

func (l Line) Eval(t float64) r3.Vec {
	return lerp(l.P0, l.P1, t)
}

// Tangent returns the constant derivative of the line.
func (l Line) Tangent(float64) r3.Vec {
	return r3.Sub(l.P1, l.P0)
}

func (l Line) Start() r3.Vec {
	return l.P0
}

func (l Line) End() r3.Vec {
	return l.P1
}

func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{l.Eval(t0), l.Eval(t1)}
}

func (l Line) SubsegmentCurve(t0, t1 float64) ParametricCurve {
	return l.Subsegment(t0, t1)
}

// ToCubic returns a cubic Bézier that traces the line with uniform speed.
func (l Line) ToCubic() CubicBez {
	return CubicBez{
		P0: l.P0,
		P1: lerp(l.P0, l.P1, 1.0/3.0),
		P2: lerp(l.P0, l.P1, 2.0/3.0),
		P3: l.P1,
	}
}
