package spline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestQuadBezArclen(t *testing.T) {
	q := QuadBez{pt(0.0, 0.0, 0.0), pt(0.0, 0.5, 0.5), pt(1.0, 1.0, 1.0)}
	want := q.Raise().Arclen(1e-12)
	diff(t, want, q.Arclen(1e-12), cmpopts.EquateApprox(0, 1e-12))
}

func TestQuadBezArclenNearlyStraight(t *testing.T) {
	q := QuadBez{pt(0.0, 0.0, 0.0), pt(0.5, 1e-4, 0.5), pt(1.0, 0.0, 1.0)}
	want := q.Raise().Arclen(1e-12)
	diff(t, want, q.Arclen(1e-12), cmpopts.EquateApprox(0, 1e-9))
}

func TestQuadBezDifferentiate(t *testing.T) {
	q := QuadBez{pt(0.0, 0.0, 0.0), pt(0.0, 0.5, 2.0), pt(1.0, 1.0, -1.0)}
	deriv := q.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := q.Eval(ts)
		p1 := q.Eval(ts + delta)
		dApprox := r3.Scale(1.0/delta, r3.Sub(p1, p))
		d := deriv.Eval(ts)
		if l := r3.Norm(r3.Sub(d, dApprox)); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{pt(3.1, 4.1, 1.0), pt(5.9, 2.6, -2.0), pt(5.3, 5.8, 0.5)}
	c := q.Raise()
	const epsilon = 1e-12
	for i := range 11 {
		ts := float64(i) / 10
		if d := r3.Norm(r3.Sub(q.Eval(ts), c.Eval(ts))); d > epsilon {
			t.Errorf("at t=%g: %g > %g", ts, d, epsilon)
		}
	}
	if math.IsNaN(c.Arclen(DefaultAccuracy)) {
		t.Error("raised cubic has NaN arc length")
	}
}
