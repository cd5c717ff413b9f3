package walker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// lineCurve is a straight curve along the x axis whose parameter is
// proportional to arc length.
type lineCurve struct {
	length float64
}

func (c lineCurve) Tangent(float64) r3.Vec {
	return r3.Vec{X: 1}
}

func (c lineCurve) MoveAlong(t, delta float64) (float64, r3.Vec) {
	nt := t + delta/c.length
	return nt, r3.Vec{X: min(max(nt, 0), 1) * c.length}
}

type recordingSink struct {
	positions    []r3.Vec
	orientations []r3.Rotation
}

func (s *recordingSink) SetPosition(p r3.Vec) {
	s.positions = append(s.positions, p)
}

func (s *recordingSink) SetOrientation(q r3.Rotation) {
	s.orientations = append(s.orientations, q)
}
