package spline

import (
	"iter"
	"math"
)

// SplitArclen cuts the spline into consecutive pieces of arc length l. Each
// piece is yielded as the list of sub-segments that make it up. Any
// remainder ends up in the last, shorter piece.
func (s *Spline) SplitArclen(l float64) iter.Seq[[]CubicBez] {
	return s.split(l, -1)
}

// SplitN cuts the spline into n pieces of identical arc length. See
// [Spline.SplitArclen].
func (s *Spline) SplitN(n int) iter.Seq[[]CubicBez] {
	if n <= 1 {
		return s.split(math.Inf(1), 1)
	}
	return s.split(s.Length()/float64(n), n)
}

// split cuts pieces of length l. If n > 0, exactly n pieces are produced and
// the last one absorbs rounding errors.
func (s *Spline) split(l float64, n int) iter.Seq[[]CubicBez] {
	return func(yield func([]CubicBez) bool) {
		if math.IsNaN(l) || l <= 0 || s.Length() == 0 {
			return
		}
		remainingLength := l
		remainingPieces := n
		var piece []CubicBez
		for _, seg := range s.segs {
			for {
				// The last of n pieces takes whatever is left.
				if a := seg.Arclen(s.accuracy); a < remainingLength || remainingPieces == 1 {
					remainingLength -= a
					piece = append(piece, seg)
					break
				}
				t := SolveForArclen(seg, remainingLength, s.accuracy)
				piece = append(piece, seg.Subsegment(0, t))
				if !yield(piece) {
					return
				}
				piece = nil
				if remainingPieces > 0 {
					remainingPieces--
				}
				remainingLength = l
				if t >= 1 {
					break
				}
				seg = seg.Subsegment(t, 1)
			}
		}
		if len(piece) > 0 {
			yield(piece)
		}
	}
}
