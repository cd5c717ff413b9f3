// Package sim drives walkers with a fixed time step and records their
// trajectory.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spline/walker"
)

// ErrInvalidTiming is returned for unusable time steps or durations.
var ErrInvalidTiming = errors.New("invalid timing")

// MaxTicks bounds the number of updates a single run may perform.
const MaxTicks = 10_000_000

// RunOptions configures [Run].
type RunOptions struct {
	// DT is the time step passed to each update. It must be positive.
	DT float64
	// Duration is the simulated time. The run performs Duration/DT updates,
	// rounded to the nearest integer.
	Duration float64
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// Frame is the state of a walker after one update.
type Frame struct {
	Tick          int
	Time          float64
	Progress      float64
	Position      r3.Vec
	Orientation   r3.Rotation
	MovingForward bool
	// Completed is set if the walker reached an end of its curve during
	// this update.
	Completed bool
}

// Log is the sequence of frames recorded by [Run], one per update.
type Log []Frame

// Completions returns the frames during which the walker reached an end.
func (l Log) Completions() []Frame {
	var out []Frame
	for _, f := range l {
		if f.Completed {
			out = append(out, f)
		}
	}
	return out
}

// Ticks returns the number of ticks needed to simulate opts.Duration.
func (opts RunOptions) Ticks() (int, error) {
	if !(opts.DT > 0) || math.IsInf(opts.DT, 0) {
		return 0, fmt.Errorf("%w: time step must be positive and finite, got %v", ErrInvalidTiming, opts.DT)
	}
	if !(opts.Duration >= 0) || math.IsInf(opts.Duration, 0) {
		return 0, fmt.Errorf("%w: duration must be non-negative and finite, got %v", ErrInvalidTiming, opts.Duration)
	}
	n := math.Round(opts.Duration / opts.DT)
	if n > MaxTicks {
		return 0, fmt.Errorf("%w: %v ticks exceeds the maximum of %d", ErrInvalidTiming, n, MaxTicks)
	}
	return int(n), nil
}

// Run updates w once per tick until opts.Duration has been simulated, and
// returns a frame per tick. Run registers a completion listener on w, so a
// walker should only be run once.
//
// Cancellation is checked between ticks. A canceled run returns the frames
// recorded so far together with the context's error.
func Run(ctx context.Context, w *walker.Walker, opts RunOptions) (Log, error) {
	n, err := opts.Ticks()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var completed bool
	w.OnPathCompleted(func() { completed = true })

	logger.Info("simulation started", "ticks", n, "dt", opts.DT, "mode", w.Config.TravelMode)
	log := make(Log, 0, n)
	completions := 0
	for tick := 1; tick <= n; tick++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("simulation canceled", "tick", tick, "error", err)
			return log, err
		}
		completed = false
		w.Update(opts.DT)
		if completed {
			completions++
			logger.Debug("completion", "tick", tick, "progress", w.Progress())
		}
		log = append(log, Frame{
			Tick:          tick,
			Time:          float64(tick) * opts.DT,
			Progress:      w.Progress(),
			Position:      w.Position(),
			Orientation:   w.Orientation(),
			MovingForward: w.IsMovingForward(),
			Completed:     completed,
		})
	}
	logger.Info("simulation finished", "ticks", n, "completions", completions)
	return log, nil
}

// Job is one walker to simulate with [RunAll].
type Job struct {
	Name    string
	Walker  *walker.Walker
	Options RunOptions
}

// RunAll runs the jobs concurrently, at most parallel at a time, and returns
// their logs in the order of jobs. A parallel value of zero or less means
// GOMAXPROCS. Jobs may share curves but not walkers.
//
// The first failing job cancels the others, and its error is returned.
func RunAll(ctx context.Context, jobs []Job, parallel int) ([]Log, error) {
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	logs := make([]Log, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, job := range jobs {
		g.Go(func() error {
			log, err := Run(gctx, job.Walker, job.Options)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			logs[i] = log
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return logs, nil
}

type jsonFrame struct {
	Scenario      string     `json:"scenario,omitempty"`
	Tick          int        `json:"tick"`
	Time          float64    `json:"time"`
	Progress      float64    `json:"progress"`
	Position      [3]float64 `json:"position"`
	Orientation   [4]float64 `json:"orientation"`
	MovingForward bool       `json:"moving_forward"`
	Completed     bool       `json:"completed,omitempty"`
}

// WriteJSONLines writes one JSON object per frame. Positions are [x, y, z]
// arrays and orientations are quaternions as [w, x, y, z].
func WriteJSONLines(w io.Writer, log Log) error {
	return WriteNamedJSONLines(w, "", log)
}

// WriteNamedJSONLines is like [WriteJSONLines] but adds a "scenario" field
// to every frame, so that the output of several runs can be interleaved.
func WriteNamedJSONLines(w io.Writer, scenario string, log Log) error {
	enc := json.NewEncoder(w)
	for _, f := range log {
		q := f.Orientation
		err := enc.Encode(jsonFrame{
			Scenario:      scenario,
			Tick:          f.Tick,
			Time:          f.Time,
			Progress:      f.Progress,
			Position:      [3]float64{f.Position.X, f.Position.Y, f.Position.Z},
			Orientation:   [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag},
			MovingForward: f.MovingForward,
			Completed:     f.Completed,
		})
		if err != nil {
			return fmt.Errorf("write frame %d: %w", f.Tick, err)
		}
	}
	return nil
}
