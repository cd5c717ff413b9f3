// Package spline provides 3D Bézier splines that can be traversed at a
// constant speed, and is the curve half of the [honnef.co/go/spline/walker]
// package, which moves objects along such curves.
//
// # Segments and splines
//
// The building blocks are [CubicBez], [QuadBez], and [Line]. All of them are
// [ParametricCurve]s that can be evaluated at t ∈ [0, 1] and report their
// derivative. Cubic and quadratic Béziers measure their arc length with
// Legendre-Gauss quadrature (see [CubicBez.Arclen]), and [SolveForArclen]
// inverts that measurement using the [ITP method].
//
// A [Spline] chains cubic segments and exposes a single parameter for the
// whole chain. Splines can be built from
//   - explicit segments ([New]),
//   - knots with absolute handles ([NewFromKnots]),
//   - bare points, with handles chosen automatically ([NewFromPoints]),
//   - a drawing-style path of MoveTo, LineTo, QuadTo, CubicTo, and ClosePath
//     commands ([NewFromPath]).
//
// # Parameter versus distance
//
// The spline's parameter is spread uniformly over its segments, and inside a
// segment the speed of a Bézier is not constant either. Moving an object at a
// fixed speed therefore requires converting distances to parameters, which is
// what [Spline.MoveAlong] does. Distances past either end of the spline are
// reported rather than clamped, so callers can implement their own boundary
// behavior.
//
// # Vectors
//
// Points and vectors are [r3.Vec] values from Gonum, manipulated with the
// functions of the r3 package.
//
// This package's arc length and ITP code follow the [kurbo] Rust crate.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [kurbo]: https://github.com/linebender/kurbo
// [r3.Vec]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r3#Vec
package spline
