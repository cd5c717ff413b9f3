package spline

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBezPathCubics(t *testing.T) {
	var p BezPath
	p.MoveTo(pt(0, 0, 0))
	p.LineTo(pt(1, 0, 0))
	p.QuadTo(pt(2, 0, 0), pt(2, 1, 0))
	p.CubicTo(pt(2, 2, 0), pt(1, 2, 1), pt(0, 2, 1))
	p.ClosePath()

	cubics := slices.Collect(p.Cubics())
	if len(cubics) != 4 {
		t.Fatalf("got %d cubics, want 4", len(cubics))
	}
	for i := 1; i < len(cubics); i++ {
		diff(t, cubics[i-1].P3, cubics[i].P0)
	}
	diff(t, pt(0, 0, 0), cubics[3].P3)
	if !p.IsClosed() {
		t.Error("path should be closed")
	}
}

func TestBezPathCloseAtStart(t *testing.T) {
	var p BezPath
	p.MoveTo(pt(0, 0, 0))
	p.LineTo(pt(1, 0, 0))
	p.LineTo(pt(1, 1, 0))
	p.LineTo(pt(1e-15, 0, 0))
	p.ClosePath()

	// The path already returns to its start, so no closing segment is added.
	if n := len(slices.Collect(p.Cubics())); n != 3 {
		t.Errorf("got %d cubics, want 3", n)
	}
}

func TestBezPathCubicsNoMoveTo(t *testing.T) {
	p := BezPath{LineTo(pt(1, 0, 0))}
	if n := len(slices.Collect(p.Cubics())); n != 0 {
		t.Errorf("got %d cubics, want 0", n)
	}
}

func TestNewFromPath(t *testing.T) {
	var p BezPath
	p.MoveTo(pt(0, 0, 0))
	p.LineTo(pt(3, 0, 0))
	p.LineTo(pt(3, 4, 0))
	s, err := NewFromPath(p)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 7.0, s.Length(), cmpopts.EquateApprox(0, 1e-9))
	if s.Closed() {
		t.Error("spline shouldn't be closed")
	}

	p.ClosePath()
	s, err = NewFromPath(p)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 12.0, s.Length(), cmpopts.EquateApprox(0, 1e-9))
	if !s.Closed() {
		t.Error("spline should be closed")
	}

	if _, err := NewFromPath(BezPath{MoveTo(pt(0, 0, 0))}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got %v, want ErrTooFewPoints", err)
	}
	if _, err := NewFromPath(BezPath{MoveTo(pt(0, 0, 0)), LineTo(pt(math.NaN(), 0, 0))}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("got %v, want ErrNonFinite", err)
	}
}

func TestPathElementString(t *testing.T) {
	diff(t, "LineTo({1 2 3}, {0 0 0}, {0 0 0})", LineTo(pt(1, 2, 3)).String())
}
