package spline

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r3"
)

// QuadBSpline is a quadratic B-spline. It is encoded as [P₁, C₁, C₂, C₃, C₄, ..., Pₙ],
// where Pᵢ are on-curve points and Cᵢ are off-curve control points. Only the first and
// last on-curve points are explicit. All other on-curve points are implicit and defined
// as Pᵢ = (Cᵢ₋₁ + Cᵢ) / 2. For example, P₂ lies halfway between C₁ and C₂.
//
// This is a compact way of describing a smooth path by its control polygon.
type QuadBSpline []r3.Vec

// Quads returns an iterator over the implied sequence of quadratic Bézier segments. The
// returned segments are guaranteed to be G1 continuous.
func (q QuadBSpline) Quads() iter.Seq[QuadBez] {
	return func(yield func(QuadBez) bool) {
		var idx int
		for len(q[idx:]) >= 3 {
			p0, p1, p2 := q[idx], q[idx+1], q[idx+2]

			if idx != 0 {
				p0 = lerp(p0, p1, 0.5)
			}
			if idx+2 < len(q)-1 {
				p2 = lerp(p1, p2, 0.5)
			}

			idx++

			if !yield(QuadBez{p0, p1, p2}) {
				break
			}
		}
	}
}

// NewFromQuadBSpline returns a spline tracing the B-spline exactly. At least
// three control points are needed.
func NewFromQuadBSpline(q QuadBSpline, closed bool) (*Spline, error) {
	if len(q) < 3 {
		return nil, ErrTooFewPoints
	}
	for _, p := range q {
		if !isFinite(p) {
			return nil, ErrNonFinite
		}
	}
	var segs []CubicBez
	for quad := range q.Quads() {
		segs = append(segs, quad.Raise())
	}
	return New(segs, closed)
}
