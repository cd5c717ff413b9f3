package spline

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var _ ParametricCurve = QuadBez{}
var _ Arclener = QuadBez{}

// QuadBez is a quadratic Bézier segment in space. Besides being a curve in its
// own right, it is the derivative of a [CubicBez].
type QuadBez struct {
	P0 r3.Vec
	P1 r3.Vec
	P2 r3.Vec
}

// Raise the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		r3.Add(q.P0, r3.Scale(2.0/3.0, r3.Sub(q.P1, q.P0))),
		r3.Add(q.P2, r3.Scale(2.0/3.0, r3.Sub(q.P1, q.P2))),
		q.P2,
	}
}

// Arclen returns the arclength of the quadratic Bézier segment.
//
// This computation is based on an analytical formula, which only depends on
// dot products and holds in any dimension. Since that formula suffers from
// numerical instability when the curve is very close to a straight line, we
// detect that case and fall back to Legendre-Gauss quadrature.
func (q QuadBez) Arclen(accuracy float64) float64 {
	d2 := r3.Add(r3.Sub(q.P0, r3.Scale(2, q.P1)), q.P2)
	a := r3.Norm2(d2)
	d1 := r3.Sub(q.P1, q.P0)
	c := r3.Norm2(d1)
	if a < 5e-4*c {
		// This case happens for nearly straight Béziers.
		//
		// Calculate arclength using Legendre-Gauss quadrature using formula from Behdad
		// in https://github.com/Pomax/BezierInfo-2/issues/77
		v0 := r3.Norm(r3.Add(r3.Add(
			r3.Scale(-0.492943519233745, q.P0),
			r3.Scale(0.430331482911935, q.P1)),
			r3.Scale(0.0626120363218102, q.P2)))
		v1 := r3.Norm(r3.Scale(0.4444444444444444, r3.Sub(q.P2, q.P0)))
		v2 := r3.Norm(r3.Add(r3.Sub(
			r3.Scale(-0.0626120363218102, q.P0),
			r3.Scale(0.430331482911935, q.P1)),
			r3.Scale(0.492943519233745, q.P2)))
		return v0 + v1 + v2
	}
	b := 2.0 * r3.Dot(d2, d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// This case happens for Béziers with a sharp kink.
		return v0
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2)
}

func (q QuadBez) Eval(t float64) r3.Vec {
	mt := 1.0 - t
	a := r3.Scale(mt*mt, q.P0)
	b := r3.Scale(mt*2.0, q.P1)
	c := r3.Scale(t, q.P2)
	return r3.Add(a, r3.Scale(t, r3.Add(b, c)))
}

// Tangent returns the derivative of the quadratic at t.
func (q QuadBez) Tangent(t float64) r3.Vec {
	return q.Differentiate().Eval(t)
}

// Differentiate returns the derivative of the quadratic, which is a line.
func (q QuadBez) Differentiate() Line {
	return Line{
		r3.Scale(2, r3.Sub(q.P1, q.P0)),
		r3.Scale(2, r3.Sub(q.P2, q.P1)),
	}
}

func (q QuadBez) Start() r3.Vec {
	return q.P0
}

func (q QuadBez) End() r3.Vec {
	return q.P2
}
