// Package scenario loads walker scenarios from YAML files.
//
// A scenario describes a spline, the configuration of a walker traveling
// along it, and how long to simulate it for:
//
//	name: demo
//	spline:
//	  closed: false
//	  points: [[0, 0, 0], [10, 0, 0], [10, 0, 10]]
//	walker:
//	  mode: pingpong
//	  speed: 5
//	run:
//	  dt: 0.02
//	  duration: 10
//
// Splines are given as points, which get automatic handles, as knots with
// explicit handles, or as the control polygon of a quadratic B-spline.
// Omitted walker settings take the values of [walker.DefaultConfig].
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"honnef.co/go/spline"
	"honnef.co/go/spline/walker"
)

// ErrInvalid is returned for scenarios that parse but can't be simulated.
var ErrInvalid = errors.New("invalid scenario")

// Run timing used when a scenario leaves dt or duration unset.
const (
	DefaultDT       = 0.02
	DefaultDuration = 10.0
)

// Vec is a point or direction written as [x, y, z].
type Vec [3]float64

// R3 converts v to a Gonum vector.
func (v Vec) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vec) finite() bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Scenario is a parsed scenario file. Use [Load] or [Parse] to obtain a
// validated one.
type Scenario struct {
	Name   string     `yaml:"name"`
	Spline SplineSpec `yaml:"spline"`
	Walker WalkerSpec `yaml:"walker"`
	Run    RunSpec    `yaml:"run"`
}

// SplineSpec describes a spline in one of three ways: points with automatic
// handles, knots with explicit handles, or the control polygon of a
// quadratic B-spline.
type SplineSpec struct {
	Closed  bool       `yaml:"closed"`
	Points  []Vec      `yaml:"points"`
	Knots   []KnotSpec `yaml:"knots"`
	BSpline []Vec      `yaml:"bspline"`
}

// KnotSpec is a spline knot with absolute handle positions.
type KnotSpec struct {
	Pos Vec `yaml:"pos"`
	In  Vec `yaml:"in"`
	Out Vec `yaml:"out"`
}

// WalkerSpec holds walker settings. Nil fields use defaults.
type WalkerSpec struct {
	Mode              *walker.TravelMode `yaml:"mode"`
	Speed             *float64           `yaml:"speed"`
	LookForward       *bool              `yaml:"look_forward"`
	RotationSmoothing *float64           `yaml:"rotation_smoothing"`
	Up                *Vec               `yaml:"up"`
	StartProgress     float64            `yaml:"start_progress"`
}

// RunSpec controls the simulation. Zero values select DefaultDT and
// DefaultDuration.
type RunSpec struct {
	DT       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
}

// Timing returns the time step and duration with defaults applied.
func (r RunSpec) Timing() (dt, duration float64) {
	dt, duration = r.DT, r.Duration
	if dt == 0 {
		dt = DefaultDT
	}
	if duration == 0 {
		duration = DefaultDuration
	}
	return dt, duration
}

// Load reads and validates the scenario at path. If the scenario has no
// name, the file name without its extension is used.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario describes a usable spline, walker, and
// run. All errors wrap ErrInvalid.
func (s *Scenario) Validate() error {
	sp := s.Spline
	forms := 0
	for _, n := range []int{len(sp.Points), len(sp.Knots), len(sp.BSpline)} {
		if n > 0 {
			forms++
		}
	}
	switch {
	case forms == 0:
		return fmt.Errorf("%w: spline has no points, knots, or bspline", ErrInvalid)
	case forms > 1:
		return fmt.Errorf("%w: spline must have only one of points, knots, or bspline", ErrInvalid)
	case len(sp.Points) > 0:
		if len(sp.Points) < 2 {
			return fmt.Errorf("%w: spline needs at least 2 points, got %d", ErrInvalid, len(sp.Points))
		}
		for i, p := range sp.Points {
			if !p.finite() {
				return fmt.Errorf("%w: point %d is not finite", ErrInvalid, i)
			}
		}
	case len(sp.Knots) > 0:
		if len(sp.Knots) < 2 {
			return fmt.Errorf("%w: spline needs at least 2 knots, got %d", ErrInvalid, len(sp.Knots))
		}
		for i, k := range sp.Knots {
			if !k.Pos.finite() || !k.In.finite() || !k.Out.finite() {
				return fmt.Errorf("%w: knot %d is not finite", ErrInvalid, i)
			}
		}
	default:
		if len(sp.BSpline) < 3 {
			return fmt.Errorf("%w: bspline needs at least 3 control points, got %d", ErrInvalid, len(sp.BSpline))
		}
		for i, p := range sp.BSpline {
			if !p.finite() {
				return fmt.Errorf("%w: bspline point %d is not finite", ErrInvalid, i)
			}
		}
	}

	w := s.Walker
	if w.Mode != nil {
		if _, err := w.Mode.MarshalText(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if w.Speed != nil && !finite(*w.Speed) {
		return fmt.Errorf("%w: speed is not finite", ErrInvalid)
	}
	if w.RotationSmoothing != nil && !finite(*w.RotationSmoothing) {
		return fmt.Errorf("%w: rotation_smoothing is not finite", ErrInvalid)
	}
	if w.Up != nil && (!w.Up.finite() || *w.Up == (Vec{})) {
		return fmt.Errorf("%w: up must be a finite, non-zero vector", ErrInvalid)
	}
	if !finite(w.StartProgress) {
		return fmt.Errorf("%w: start_progress is not finite", ErrInvalid)
	}

	// Zero selects the defaults, see RunSpec.
	if r := s.Run; !finite(r.DT) || r.DT < 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalid, r.DT)
	}
	if r := s.Run; !finite(r.Duration) || r.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %v", ErrInvalid, r.Duration)
	}
	return nil
}

// BuildSpline constructs the scenario's spline.
func (s *Scenario) BuildSpline() (*spline.Spline, error) {
	var (
		sp  *spline.Spline
		err error
	)
	switch {
	case len(s.Spline.Knots) > 0:
		knots := make([]spline.Knot, len(s.Spline.Knots))
		for i, k := range s.Spline.Knots {
			knots[i] = spline.Knot{Pos: k.Pos.R3(), In: k.In.R3(), Out: k.Out.R3()}
		}
		sp, err = spline.NewFromKnots(knots, s.Spline.Closed)
	case len(s.Spline.BSpline) > 0:
		sp, err = spline.NewFromQuadBSpline(spline.QuadBSpline(vecs(s.Spline.BSpline)), s.Spline.Closed)
	default:
		sp, err = spline.NewFromPoints(vecs(s.Spline.Points), s.Spline.Closed)
	}
	if err != nil {
		return nil, fmt.Errorf("build spline: %w", err)
	}
	return sp, nil
}

// WalkerConfig returns the walker configuration, filling in defaults.
func (s *Scenario) WalkerConfig() walker.Config {
	cfg := walker.DefaultConfig()
	w := s.Walker
	if w.Mode != nil {
		cfg.TravelMode = *w.Mode
	}
	if w.Speed != nil {
		cfg.Speed = *w.Speed
	}
	if w.LookForward != nil {
		cfg.LookForward = *w.LookForward
	}
	if w.RotationSmoothing != nil {
		cfg.RotationSmoothing = *w.RotationSmoothing
	}
	if w.Up != nil {
		cfg.Up = w.Up.R3()
	}
	return cfg
}

// NewWalker builds the spline and returns a walker on it, placed at the
// scenario's start progress.
func (s *Scenario) NewWalker(opts ...walker.Option) (*walker.Walker, *spline.Spline, error) {
	sp, err := s.BuildSpline()
	if err != nil {
		return nil, nil, err
	}
	w := walker.New(s.WalkerConfig(), append([]walker.Option{walker.WithCurve(sp)}, opts...)...)
	w.SetProgress(s.Walker.StartProgress)
	return w, sp, nil
}

func vecs(vs []Vec) []r3.Vec {
	out := make([]r3.Vec, len(vs))
	for i, v := range vs {
		out[i] = v.R3()
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
