package sim

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spline"
	"honnef.co/go/spline/walker"
)

func newWalker(t *testing.T, mode walker.TravelMode) *walker.Walker {
	t.Helper()
	// A straight spline of length 10 along +X.
	sp, err := spline.NewFromPoints([]r3.Vec{{}, {X: 10}}, false)
	require.NoError(t, err)
	cfg := walker.Config{TravelMode: mode, Speed: 5, LookForward: true}
	return walker.New(cfg, walker.WithCurve(sp))
}

func TestRun(t *testing.T) {
	w := newWalker(t, walker.Once)
	log, err := Run(context.Background(), w, RunOptions{DT: 0.5, Duration: 5})
	require.NoError(t, err)
	require.Len(t, log, 10)

	for i, f := range log {
		assert.Equal(t, i+1, f.Tick)
		assert.InDelta(t, float64(i+1)*0.5, f.Time, 1e-12)
	}
	assert.InDelta(t, 0.25, log[0].Progress, 1e-6)
	assert.InDelta(t, 2.5, log[0].Position.X, 1e-5)
	assert.InDelta(t, 1, log[0].Orientation.Rotate(walker.Forward).X, 1e-9)
	assert.True(t, log[0].MovingForward)

	completions := log.Completions()
	require.Len(t, completions, 1)
	assert.Equal(t, 1.0, completions[0].Progress)
	assert.Equal(t, 1.0, log[len(log)-1].Progress)
	assert.InDelta(t, 10, log[len(log)-1].Position.X, 1e-9)
}

func TestRunPingPong(t *testing.T) {
	w := newWalker(t, walker.PingPong)
	// A traversal takes 2s; the fifth would end at 10s.
	log, err := Run(context.Background(), w, RunOptions{DT: 0.1, Duration: 9})
	require.NoError(t, err)
	require.Len(t, log, 90)

	completions := log.Completions()
	require.Len(t, completions, 4)
	assert.False(t, completions[0].MovingForward)
	assert.True(t, completions[1].MovingForward)

	for _, f := range log {
		assert.GreaterOrEqual(t, f.Progress, 0.0)
		assert.LessOrEqual(t, f.Progress, 1.0)
	}
}

func TestRunZeroDuration(t *testing.T) {
	w := newWalker(t, walker.Once)
	log, err := Run(context.Background(), w, RunOptions{DT: 0.1})
	require.NoError(t, err)
	assert.Empty(t, log)
	assert.Equal(t, 0.0, w.Progress())
}

func TestRunInvalidTiming(t *testing.T) {
	tests := []RunOptions{
		{DT: 0, Duration: 1},
		{DT: -0.1, Duration: 1},
		{DT: 0.1, Duration: -1},
		{DT: 1e-9, Duration: 1e9},
	}
	for _, opts := range tests {
		_, err := Run(context.Background(), newWalker(t, walker.Once), opts)
		assert.ErrorIs(t, err, ErrInvalidTiming, "%+v", opts)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := newWalker(t, walker.Loop)
	ticks := 0
	w.OnPathCompleted(func() {
		ticks++
		cancel()
	})
	log, err := Run(ctx, w, RunOptions{DT: 0.1, Duration: 100})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ticks)
	require.NotEmpty(t, log)
	assert.True(t, log[len(log)-1].Completed)
	assert.Less(t, len(log), 1000)
}

func TestRunAll(t *testing.T) {
	jobs := []Job{
		{Name: "once", Walker: newWalker(t, walker.Once), Options: RunOptions{DT: 0.5, Duration: 5}},
		{Name: "loop", Walker: newWalker(t, walker.Loop), Options: RunOptions{DT: 0.1, Duration: 3}},
		{Name: "pingpong", Walker: newWalker(t, walker.PingPong), Options: RunOptions{DT: 0.1, Duration: 9}},
	}
	logs, err := RunAll(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Len(t, logs[0], 10)
	assert.Len(t, logs[1], 30)
	assert.Len(t, logs[2], 90)
	assert.Len(t, logs[2].Completions(), 4)
}

func TestRunAllError(t *testing.T) {
	jobs := []Job{
		{Name: "good", Walker: newWalker(t, walker.Once), Options: RunOptions{DT: 0.1, Duration: 1}},
		{Name: "bad", Walker: newWalker(t, walker.Once), Options: RunOptions{DT: -1, Duration: 1}},
	}
	logs, err := RunAll(context.Background(), jobs, 0)
	require.ErrorIs(t, err, ErrInvalidTiming)
	assert.Contains(t, err.Error(), "bad: ")
	assert.Nil(t, logs)
}

func TestWriteJSONLines(t *testing.T) {
	w := newWalker(t, walker.Once)
	log, err := Run(context.Background(), w, RunOptions{DT: 1.5, Duration: 4.5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONLines(&buf, log))

	var frames []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		frames = append(frames, m)
	}
	require.NoError(t, sc.Err())
	require.Len(t, frames, 3)

	assert.Equal(t, 1.0, frames[0]["tick"])
	assert.Equal(t, true, frames[0]["moving_forward"])
	assert.NotContains(t, frames[0], "completed")
	assert.Len(t, frames[0]["position"], 3)
	assert.Len(t, frames[0]["orientation"], 4)
	assert.Equal(t, true, frames[1]["completed"])
	assert.Equal(t, 1.0, frames[2]["progress"])
	assert.NotContains(t, frames[0], "scenario")
}

func TestWriteNamedJSONLines(t *testing.T) {
	log, err := Run(context.Background(), newWalker(t, walker.Once), RunOptions{DT: 0.5, Duration: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNamedJSONLines(&buf, "demo", log))
	sc := bufio.NewScanner(&buf)
	n := 0
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		assert.Equal(t, "demo", m["scenario"])
		n++
	}
	assert.Equal(t, 2, n)
}
