package spline

import (
	"fmt"
	"iter"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

type PathElementKind int

const (
	// Move directly to the point, starting the path.
	MoveToKind PathElementKind = iota + 1
	// Travel in a straight line from the current location to the point.
	LineToKind
	// Travel along a quadratic bezier using the current location and the two points.
	QuadToKind
	// Travel along a cubic bezier using the current location and the three points.
	CubicToKind
	// Return to the start of the path, closing the loop.
	ClosePathKind
)

func (k PathElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

// PathElement is one command of a [BezPath].
//
// A valid path has exactly one MoveTo, at the beginning.
type PathElement struct {
	Kind PathElementKind
	P0   r3.Vec
	P1   r3.Vec
	P2   r3.Vec
}

func (el PathElement) String() string {
	return fmt.Sprintf("%s(%v, %v, %v)", el.Kind, el.P0, el.P1, el.P2)
}

// IsFinite reports whether all points used by the element are finite.
func (el PathElement) IsFinite() bool {
	return isFinite(el.P0) && isFinite(el.P1) && isFinite(el.P2)
}

func MoveTo(pt r3.Vec) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt r3.Vec) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 r3.Vec) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 r3.Vec) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// BezPath describes a single open or closed path in space as a sequence of
// drawing-style commands. [NewFromPath] turns it into a [Spline].
type BezPath []PathElement

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a "move to" element onto the path.
func (p *BezPath) MoveTo(pt r3.Vec) { p.Push(MoveTo(pt)) }

// LineTo pushes a "line to" element onto the path.
func (p *BezPath) LineTo(pt r3.Vec) { p.Push(LineTo(pt)) }

// QuadTo pushes a "quad to" element onto the path.
func (p *BezPath) QuadTo(p1, p2 r3.Vec) { p.Push(QuadTo(p1, p2)) }

// CubicTo pushes a "curve to" element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 r3.Vec) { p.Push(CubicTo(p1, p2, p3)) }

// ClosePath pushes a "close path" element onto the path.
func (p *BezPath) ClosePath() { p.Push(ClosePath()) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Cubics returns an iterator over the path's segments, each converted to a
// cubic Bézier. Lines and quadratics are converted exactly. ClosePath adds a
// straight segment back to the start unless the path already ends there, up
// to rounding error.
//
// The path must start with a MoveTo; elements after a ClosePath are
// ignored.
func (p BezPath) Cubics() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		var start, last option[r3.Vec]
		for _, el := range p {
			if !start.isSet {
				if el.Kind != MoveToKind {
					return
				}
				start.set(el.P0)
				last.set(el.P0)
				continue
			}
			var c CubicBez
			switch el.Kind {
			case MoveToKind:
				// A second MoveTo would start a disconnected subpath.
				return
			case LineToKind:
				c = Line{last.value, el.P0}.ToCubic()
			case QuadToKind:
				c = QuadBez{last.value, el.P0, el.P1}.Raise()
			case CubicToKind:
				c = CubicBez{last.value, el.P0, el.P1, el.P2}
			case ClosePathKind:
				if !samePoint(last.value, start.value) {
					yield(Line{last.value, start.value}.ToCubic())
				}
				return
			default:
				return
			}
			if !yield(c) {
				return
			}
			last.set(c.P3)
		}
	}
}

// IsClosed reports whether the path ends with ClosePath.
func (p BezPath) IsClosed() bool {
	for _, el := range p {
		if el.Kind == ClosePathKind {
			return true
		}
	}
	return false
}
