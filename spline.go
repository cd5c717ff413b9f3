package spline

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Knot is a point on a spline together with its two Bézier handles. Handles
// are absolute positions, not offsets from Pos.
type Knot struct {
	Pos r3.Vec
	// In is the handle controlling the segment that ends at Pos.
	In r3.Vec
	// Out is the handle controlling the segment that starts at Pos.
	Out r3.Vec
}

// Spline is a chain of cubic Bézier segments, evaluated with a single global
// parameter t ∈ [0, 1] that is distributed uniformly across segments. Segment
// i covers t ∈ [i/n, (i+1)/n].
//
// The parameter is not proportional to distance traveled. [Spline.MoveAlong],
// [Spline.ArclenAt], and [Spline.TAtArclen] convert between the two.
//
// A Spline is immutable once constructed and safe for concurrent use.
type Spline struct {
	segs []CubicBez
	// cum[i] is the arc length of segs[:i]; len(cum) == len(segs)+1.
	cum      []float64
	closed   bool
	accuracy float64
}

// New returns a spline made of the given segments. Consecutive segments
// should share end points, but this isn't enforced. If closed is true,
// parameters outside [0, 1] wrap around instead of being clamped.
func New(segs []CubicBez, closed bool) (*Spline, error) {
	if len(segs) == 0 {
		return nil, ErrTooFewPoints
	}
	for i, c := range segs {
		if !c.IsFinite() {
			return nil, fmt.Errorf("segment %d: %w", i, ErrNonFinite)
		}
	}
	s := &Spline{
		segs:     slices.Clone(segs),
		cum:      make([]float64, len(segs)+1),
		closed:   closed,
		accuracy: DefaultAccuracy,
	}
	// Split the accuracy budget across segments so that the total length is
	// within DefaultAccuracy.
	segAccuracy := s.accuracy / float64(len(segs))
	for i, c := range s.segs {
		s.cum[i+1] = s.cum[i] + c.Arclen(segAccuracy)
	}
	return s, nil
}

// NewFromKnots returns a spline passing through every knot. A closed spline
// has an additional segment from the last knot back to the first.
func NewFromKnots(knots []Knot, closed bool) (*Spline, error) {
	if len(knots) < 2 {
		return nil, ErrTooFewPoints
	}
	for i, k := range knots {
		if !isFinite(k.Pos) || !isFinite(k.In) || !isFinite(k.Out) {
			return nil, fmt.Errorf("knot %d: %w", i, ErrNonFinite)
		}
	}
	n := len(knots) - 1
	if closed {
		n++
	}
	segs := make([]CubicBez, n)
	for i := range segs {
		a, b := knots[i], knots[(i+1)%len(knots)]
		segs[i] = CubicBez{a.Pos, a.Out, b.In, b.Pos}
	}
	return New(segs, closed)
}

// NewFromPoints returns a smooth spline through the points, with handles
// chosen as for a Catmull-Rom spline: the tangent at each point is parallel
// to the line between its neighbors. End points of an open spline use the
// direction to their only neighbor.
func NewFromPoints(points []r3.Vec, closed bool) (*Spline, error) {
	return NewFromKnots(AutoKnots(points, closed), closed)
}

// AutoKnots computes Catmull-Rom handles for points. See [NewFromPoints].
func AutoKnots(points []r3.Vec, closed bool) []Knot {
	n := len(points)
	knots := make([]Knot, n)
	for i, p := range points {
		var prev, next r3.Vec
		switch {
		case closed:
			prev = points[(i+n-1)%n]
			next = points[(i+1)%n]
		case i == 0:
			prev = p
			next = points[min(1, n-1)]
		case i == n-1:
			prev = points[i-1]
			next = p
		default:
			prev = points[i-1]
			next = points[i+1]
		}
		var m r3.Vec
		if closed || (i > 0 && i < n-1) {
			m = r3.Scale(0.5, r3.Sub(next, prev))
		} else {
			m = r3.Sub(next, prev)
		}
		h := r3.Scale(1.0/3.0, m)
		knots[i] = Knot{
			Pos: p,
			In:  r3.Sub(p, h),
			Out: r3.Add(p, h),
		}
	}
	return knots
}

// NewFromPath returns a spline following the path. The spline is closed if
// the path ends with ClosePath.
func NewFromPath(p BezPath) (*Spline, error) {
	for i, el := range p {
		if !el.IsFinite() {
			return nil, fmt.Errorf("path element %d: %w", i, ErrNonFinite)
		}
	}
	segs := slices.Collect(p.Cubics())
	return New(segs, p.IsClosed())
}

// Segments returns a copy of the spline's segments.
func (s *Spline) Segments() []CubicBez {
	return slices.Clone(s.segs)
}

// Closed reports whether the spline loops back onto itself.
func (s *Spline) Closed() bool {
	return s.closed
}

// Length returns the total arc length of the spline.
func (s *Spline) Length() float64 {
	return s.cum[len(s.segs)]
}

// normalize clamps t to [0, 1], or wraps it for closed splines.
func (s *Spline) normalize(t float64) float64 {
	if s.closed {
		if t < 0 || t > 1 {
			t -= math.Floor(t)
		}
		return t
	}
	return min(max(t, 0), 1)
}

// locate maps a global parameter to a segment index and local parameter.
func (s *Spline) locate(t float64) (int, float64) {
	n := len(s.segs)
	x := s.normalize(t) * float64(n)
	i := int(x)
	if i >= n {
		i = n - 1
	}
	return i, x - float64(i)
}

// Eval returns the point at parameter t.
func (s *Spline) Eval(t float64) r3.Vec {
	i, u := s.locate(t)
	return s.segs[i].Eval(u)
}

// Tangent returns the derivative of the spline with respect to the global
// parameter at t. If a handle coincides with its knot, the derivative at that
// knot is zero; the direction towards the next distinct control point is
// used instead.
func (s *Spline) Tangent(t float64) r3.Vec {
	i, u := s.locate(t)
	c := s.segs[i]
	d := c.Tangent(u)
	if r3.Norm2(d) < 1e-24 {
		d0, d1 := c.Tangents()
		if u < 0.5 {
			d = d0
		} else {
			d = d1
		}
	}
	return r3.Scale(float64(len(s.segs)), d)
}

// ArclenAt returns the arc length from the start of the spline to t.
func (s *Spline) ArclenAt(t float64) float64 {
	i, u := s.locate(t)
	if u == 0 {
		return s.cum[i]
	}
	return s.cum[i] + s.segs[i].Subsegment(0, u).Arclen(s.accuracy)
}

// TAtArclen returns the parameter at arc length sl from the start of the
// spline. sl is clamped to [0, Length()].
func (s *Spline) TAtArclen(sl float64) float64 {
	n := len(s.segs)
	total := s.Length()
	if sl <= 0 || total == 0 {
		return 0
	}
	if sl >= total {
		return 1
	}
	i := sort.SearchFloat64s(s.cum[1:], sl)
	if i >= n {
		i = n - 1
	}
	var u float64
	if segLen := s.cum[i+1] - s.cum[i]; segLen > 0 {
		u = SolveForArclen(s.segs[i], sl-s.cum[i], s.accuracy)
	}
	return (float64(i) + u) / float64(n)
}

// MoveAlong advances from parameter t by the signed arc length delta and
// returns the new parameter together with the point there.
//
// Travel past either end is not clamped: the returned parameter lies outside
// [0, 1] and the returned point is the end that was passed. For an open
// spline, the excess is measured back from the end, so that reflecting the
// parameter about the end (2-t or -t) gives the point at the excess distance
// from it. For a closed spline, the excess continues on the other side of the
// seam, so that wrapping the parameter (t-1 or t+1) does. On a straight
// spline of length 10, moving by 3 from 2 units before the end returns 1.1.
// This lets callers decide whether to stop, wrap, or bounce. A spline of zero
// length returns t unchanged, as does a delta of zero.
func (s *Spline) MoveAlong(t, delta float64) (float64, r3.Vec) {
	total := s.Length()
	if delta == 0 || total == 0 {
		return t, s.Eval(t)
	}
	sl := s.ArclenAt(t) + delta
	switch {
	case sl > total:
		return 1 + s.overshoot(sl-total, true), s.Eval(1)
	case sl < 0:
		return -s.overshoot(-sl, false), s.Eval(0)
	default:
		nt := s.TAtArclen(sl)
		return nt, s.Eval(nt)
	}
}

// overshoot returns the parameter distance covering excess arc length past
// the end (atEnd) or the start of the spline. Open splines measure it inwards
// from the end that was passed, closed splines from the opposite end. The
// excess is capped at the spline's length.
func (s *Spline) overshoot(excess float64, atEnd bool) float64 {
	total := s.Length()
	excess = min(excess, total)
	if s.closed == atEnd {
		return s.TAtArclen(excess)
	}
	return 1 - s.TAtArclen(total-excess)
}
