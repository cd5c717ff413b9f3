package spline_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"honnef.co/go/spline"
)

func ExampleSpline_MoveAlong() {
	// An L-shaped path made of two straight legs, each 10 units long.
	var p spline.BezPath
	p.MoveTo(r3.Vec{})
	p.LineTo(r3.Vec{X: 10})
	p.LineTo(r3.Vec{X: 10, Z: 10})

	s, err := spline.NewFromPath(p)
	if err != nil {
		panic(err)
	}
	fmt.Printf("length %.3f\n", s.Length())

	// Travel 15 units from the start. That is halfway along the second leg,
	// which starts at t = 0.5.
	t, pos := s.MoveAlong(0, 15)
	fmt.Printf("t=%.3f pos=(%.3f, %.3f, %.3f)\n", t, pos.X, pos.Y, pos.Z)

	// Traveling past the end reports the excess as a fraction of the length.
	t, pos = s.MoveAlong(t, 10)
	fmt.Printf("t=%.3f pos=(%.3f, %.3f, %.3f)\n", t, pos.X, pos.Y, pos.Z)

	// Output:
	// length 20.000
	// t=0.750 pos=(10.000, 0.000, 5.000)
	// t=1.250 pos=(10.000, 0.000, 10.000)
}
