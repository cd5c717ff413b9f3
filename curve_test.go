package spline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := SolveITP(f, 1.0, 2.0, 1e-12, 0, 0.2, f(1.0), f(2.0))
	if n := math.Abs(f(x)); n > 6e-12 {
		t.Errorf("%v > 6e-12", n)
	}
}

func TestSolveForArclen(t *testing.T) {
	c := CubicBez{
		pt(0.0, 0.0, 0.0),
		pt(100.0/3.0, 0.0, 0.0),
		pt(200.0/3.0, 0.0, 100.0/3.0),
		pt(100.0, 0.0, 100.0),
	}
	const target = 100.0
	x := SolveITP(
		func(t float64) float64 { return c.Subsegment(0.0, t).Arclen(1e-9) - target },
		0.0,
		1.0,
		1e-9,
		1,
		0.2,
		-target,
		c.Arclen(1e-9)-target,
	)
	diff(t, x, SolveForArclen(c, target, 1e-9), cmpopts.EquateApprox(0, 1e-8))
}

func TestSolveForArclenEnds(t *testing.T) {
	c := Line{pt(0, 0, 0), pt(0, 0, 1)}.ToCubic()
	diff(t, 0.0, SolveForArclen(c, -1, DefaultAccuracy))
	diff(t, 1.0, SolveForArclen(c, 2, DefaultAccuracy))
}

func TestSolveForArclenDefersToSolver(t *testing.T) {
	l := Line{pt(0, 0, 0), pt(0, 4, 0)}
	diff(t, 0.25, SolveForArclen(l, 1, DefaultAccuracy))
}
