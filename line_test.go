package spline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLineArclen(t *testing.T) {
	l := Line{pt(0.0, 0.0, 0.0), pt(1.0, 1.0, 1.0)}
	want := math.Sqrt(3.0)
	epsilon := 1e-9
	if d := l.Arclen(epsilon) - want; d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}

	ts := l.SolveForArclen(want/3.0, epsilon)
	if d := math.Abs(ts - 1.0/3.0); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
}

func TestLineToCubic(t *testing.T) {
	l := Line{pt(1.0, 2.0, 3.0), pt(4.0, -2.0, 3.0)}
	c := l.ToCubic()
	opt := cmpopts.EquateApprox(0, 1e-12)
	for i := range 11 {
		ts := float64(i) / 10
		diff(t, l.Eval(ts), c.Eval(ts), opt)
		diff(t, l.Tangent(ts), c.Tangent(ts), opt)
	}
	diff(t, 5.0, c.Arclen(1e-9), cmpopts.EquateApprox(0, 1e-9))
}
