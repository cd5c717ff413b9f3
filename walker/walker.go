package walker

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is the path a [Walker] travels along. Implementations must treat both
// methods as read-only queries, so that several walkers can share a curve.
// [honnef.co/go/spline.Spline] implements Curve.
type Curve interface {
	// Tangent returns the direction of travel at parameter t. It need not be
	// normalized; a zero vector means no direction is known.
	Tangent(t float64) r3.Vec
	// MoveAlong moves from parameter t by the signed arc length delta and
	// returns the new parameter and position. Moving past an end produces a
	// parameter outside [0, 1]. On an open curve, reflecting it about the
	// end that was passed must land at the excess distance from that end;
	// on a closed curve, wrapping it into [0, 1] must.
	MoveAlong(t, delta float64) (float64, r3.Vec)
}

// Sink receives the walker's pose after each update.
type Sink interface {
	SetPosition(p r3.Vec)
	SetOrientation(q r3.Rotation)
}

// RotationFilter post-processes the orientation computed by a walker. It
// receives the smoothed orientation and the current progress and returns the
// orientation to apply.
type RotationFilter func(q r3.Rotation, progress float64) r3.Rotation

// Config holds the tunable parameters of a [Walker]. It may be changed
// between updates.
type Config struct {
	TravelMode TravelMode
	// Speed is the distance traveled per unit of time. Its sign combines
	// with the walker's direction flag; see [Walker.IsMovingForward].
	Speed float64
	// LookForward enables orienting the walker along the curve's tangent.
	LookForward bool
	// RotationSmoothing is the rate at which the orientation approaches the
	// tangent direction. The fraction of the remaining rotation covered in
	// one update is RotationSmoothing*dt, capped at 1. Zero or negative
	// values disable smoothing.
	RotationSmoothing float64
	// Up is the world up vector used to orient the walker. The zero value
	// means WorldUp.
	Up r3.Vec
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		TravelMode:        Once,
		Speed:             5,
		LookForward:       true,
		RotationSmoothing: 10,
	}
}

func (c Config) up() r3.Vec {
	if c.Up == (r3.Vec{}) {
		return WorldUp
	}
	return c.Up
}

// Walker moves along a [Curve] at a constant speed, one [Walker.Update] at a
// time, and reports reaching either end of the curve.
//
// A Walker is not safe for concurrent use. Completion listeners run inside
// Update and must not call Update themselves.
type Walker struct {
	// Config may be modified between updates.
	Config Config
	// RotationFilter, if not nil, is applied to the orientation as the last
	// step of each update.
	RotationFilter RotationFilter

	curve  Curve
	sink   Sink
	logger *slog.Logger

	progress     float64
	goingForward bool
	position     r3.Vec
	orientation  r3.Rotation

	// Latches preventing repeated completion notifications while progress
	// stays at an end.
	completedAtUpper bool
	completedAtLower bool

	listeners []func()
}

// Option configures a [Walker].
type Option func(*Walker)

// WithCurve sets the initial curve.
func WithCurve(c Curve) Option {
	return func(w *Walker) {
		w.curve = c
	}
}

// WithSink sets the receiver of position and orientation updates.
func WithSink(s Sink) Option {
	return func(w *Walker) {
		w.sink = s
	}
}

// WithLogger sets a structured logger. Walkers log boundary events at debug
// level.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithRotationFilter sets [Walker.RotationFilter].
func WithRotationFilter(f RotationFilter) Option {
	return func(w *Walker) {
		w.RotationFilter = f
	}
}

// New returns a walker at the start of its curve, heading forward with the
// identity orientation.
func New(cfg Config, opts ...Option) *Walker {
	w := &Walker{
		Config:       cfg,
		goingForward: true,
		orientation:  Identity,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.sink == nil {
		w.sink = nopSink{}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	return w
}

// Curve returns the curve being traveled, or nil.
func (w *Walker) Curve() Curve {
	return w.curve
}

// SetCurve replaces the curve, moves the walker to its start, and re-arms
// completion notifications. A nil curve turns updates into no-ops.
func (w *Walker) SetCurve(c Curve) {
	w.curve = c
	w.progress = 0
	w.completedAtUpper = false
	w.completedAtLower = false
}

// Progress returns the walker's parameter on the curve. Between updates it is
// in [0, 1] unless it was set outside that range.
func (w *Walker) Progress() float64 {
	return w.progress
}

// SetProgress moves the walker to parameter p and re-arms completion
// notifications at both ends. Direction and speed are unchanged.
func (w *Walker) SetProgress(p float64) {
	w.progress = p
	w.completedAtUpper = false
	w.completedAtLower = false
}

// IsGoingForward returns the walker's direction flag, which only changes when
// a PingPong walker bounces.
func (w *Walker) IsGoingForward() bool {
	return w.goingForward
}

// IsMovingForward reports whether the walker travels towards increasing
// progress. That is the case when the sign of the speed agrees with the
// direction flag.
func (w *Walker) IsMovingForward() bool {
	return (w.Config.Speed > 0) == w.goingForward
}

// Position returns the most recently applied position. It is the zero
// vector until the first update.
func (w *Walker) Position() r3.Vec {
	return w.position
}

// Orientation returns the most recently applied orientation.
func (w *Walker) Orientation() r3.Rotation {
	return w.orientation
}

// SetOrientation sets the orientation that smoothing starts from, for
// example to match the host object's current rotation.
func (w *Walker) SetOrientation(q r3.Rotation) {
	w.orientation = q
}

// OnPathCompleted registers fn to be called whenever the walker reaches an
// end of the curve. Listeners are called in registration order. To find out
// which end was reached, inspect [Walker.Progress] or
// [Walker.IsMovingForward] from within fn.
func (w *Walker) OnPathCompleted(fn func()) {
	w.listeners = append(w.listeners, fn)
}

// Update advances the walker by dt units of time.
//
// The walker moves Speed*dt along the curve's arc length, applies the new
// position, and, if LookForward is set, orients itself along the tangent.
// When it reaches an end in its direction of motion, listeners are notified
// once, and the travel mode decides where it continues: Once stops at the
// end, Loop continues from the other end, and PingPong mirrors any overshoot
// and reverses direction.
//
// Only the end the walker is moving towards is checked. A single update must
// not be large enough to cross the whole curve.
func (w *Walker) Update(dt float64) {
	if w.curve == nil {
		return
	}

	speed := w.Config.Speed
	if !w.goingForward {
		speed = -speed
	}
	w.progress, w.position = w.curve.MoveAlong(w.progress, speed*dt)
	w.sink.SetPosition(w.position)

	movingForward := w.IsMovingForward()

	if w.Config.LookForward {
		w.orient(dt, movingForward)
	}

	if movingForward {
		if w.progress >= 1 {
			if !w.completedAtUpper {
				w.complete("end")
				w.completedAtUpper = true
			}
			switch w.Config.TravelMode {
			case Once:
				w.progress = 1
			case Loop:
				w.progress -= 1
			default:
				w.progress = 2 - w.progress
				w.goingForward = !w.goingForward
				w.logger.Debug("reversed direction", "progress", w.progress, "going_forward", w.goingForward)
			}
		} else {
			w.completedAtUpper = false
		}
	} else {
		if w.progress <= 0 {
			if !w.completedAtLower {
				w.complete("start")
				w.completedAtLower = true
			}
			switch w.Config.TravelMode {
			case Once:
				w.progress = 0
			case Loop:
				w.progress += 1
			default:
				w.progress = -w.progress
				w.goingForward = !w.goingForward
				w.logger.Debug("reversed direction", "progress", w.progress, "going_forward", w.goingForward)
			}
		} else {
			w.completedAtLower = false
		}
	}
}

func (w *Walker) orient(dt float64, movingForward bool) {
	tangent := w.curve.Tangent(w.progress)
	if !movingForward {
		tangent = r3.Scale(-1, tangent)
	}
	target, ok := LookRotation(tangent, w.Config.up())
	if !ok {
		// No usable tangent; hold the current heading.
		target = w.orientation
	}
	q := target
	if k := w.Config.RotationSmoothing; k > 0 {
		q = Nlerp(w.orientation, target, k*dt)
	}
	if w.RotationFilter != nil {
		q = w.RotationFilter(q, w.progress)
	}
	w.orientation = q
	w.sink.SetOrientation(q)
}

func (w *Walker) complete(end string) {
	w.logger.Debug("path completed",
		"end", end,
		"mode", w.Config.TravelMode,
		"progress", w.progress,
		"listeners", len(w.listeners))
	for _, fn := range w.listeners {
		fn()
	}
}

type nopSink struct{}

func (nopSink) SetPosition(r3.Vec)         {}
func (nopSink) SetOrientation(r3.Rotation) {}
