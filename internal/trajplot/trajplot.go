// Package trajplot renders recorded walker trajectories with gonum/plot.
package trajplot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"honnef.co/go/spline"
	"honnef.co/go/spline/internal/sim"
)

var (
	pathColor       = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	trajectoryColor = color.RGBA{B: 200, A: 255}
	completionColor = color.RGBA{R: 220, A: 255}
)

// ErrEmptyLog is returned when there are no frames to plot.
var ErrEmptyLog = errors.New("no frames to plot")

// Options controls the rendered figure.
type Options struct {
	// Plane selects the two coordinates of the trajectory panel: "xz"
	// (the default, a top-down view with +Y up), "xy", or "yz".
	Plane string
	// Width and Height of the figure. Zero values select 10in by 5in.
	Width, Height vg.Length
	Title         string
	// Spline, if set, is drawn beneath the trajectory.
	Spline *spline.Spline
}

type projection struct {
	x, y   string
	coords func(r3.Vec) (float64, float64)
}

var planes = map[string]projection{
	"xz": {"X", "Z", func(v r3.Vec) (float64, float64) { return v.X, v.Z }},
	"xy": {"X", "Y", func(v r3.Vec) (float64, float64) { return v.X, v.Y }},
	"yz": {"Y", "Z", func(v r3.Vec) (float64, float64) { return v.Y, v.Z }},
}

func (opts Options) size() (vg.Length, vg.Length) {
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = 10 * vg.Inch
	}
	if h == 0 {
		h = 5 * vg.Inch
	}
	return w, h
}

// Plots returns the trajectory panel and the progress-over-time panel.
// Frames during which the walker completed its path are marked in both.
func Plots(log sim.Log, opts Options) (traj, progress *plot.Plot, err error) {
	if len(log) == 0 {
		return nil, nil, ErrEmptyLog
	}
	plane := strings.ToLower(opts.Plane)
	if plane == "" {
		plane = "xz"
	}
	proj, ok := planes[plane]
	if !ok {
		return nil, nil, fmt.Errorf("unknown plane %q, want xz, xy, or yz", opts.Plane)
	}

	traj = plot.New()
	traj.Title.Text = opts.Title
	traj.X.Label.Text = proj.x
	traj.Y.Label.Text = proj.y

	progress = plot.New()
	progress.Title.Text = "Progress"
	progress.X.Label.Text = "Time"
	progress.Y.Label.Text = "Progress"

	if opts.Spline != nil {
		// Sample at equal distances so that tight turns aren't undersampled
		// relative to long straight stretches.
		const samples = 256
		pts := make(plotter.XYs, 1, samples+1)
		pts[0].X, pts[0].Y = proj.coords(opts.Spline.Eval(0))
		for piece := range opts.Spline.SplitN(samples) {
			var xy plotter.XY
			xy.X, xy.Y = proj.coords(piece[len(piece)-1].P3)
			pts = append(pts, xy)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, nil, fmt.Errorf("spline: %w", err)
		}
		l.Color = pathColor
		l.Width = vg.Points(3)
		traj.Add(l)
		traj.Legend.Add("spline", l)
	}

	path := make(plotter.XYs, len(log))
	prog := make(plotter.XYs, len(log))
	var marks, progMarks plotter.XYs
	for i, f := range log {
		path[i].X, path[i].Y = proj.coords(f.Position)
		prog[i] = plotter.XY{X: f.Time, Y: f.Progress}
		if f.Completed {
			marks = append(marks, path[i])
			progMarks = append(progMarks, prog[i])
		}
	}

	l, err := plotter.NewLine(path)
	if err != nil {
		return nil, nil, fmt.Errorf("trajectory: %w", err)
	}
	l.Color = trajectoryColor
	l.Width = vg.Points(1)
	traj.Add(l)
	traj.Legend.Add("walker", l)

	pl, err := plotter.NewLine(prog)
	if err != nil {
		return nil, nil, fmt.Errorf("progress: %w", err)
	}
	pl.Color = trajectoryColor
	pl.Width = vg.Points(1)
	progress.Add(pl)

	if len(marks) > 0 {
		s, err := completionMarks(marks)
		if err != nil {
			return nil, nil, err
		}
		traj.Add(s)
		traj.Legend.Add("completed", s)

		s, err = completionMarks(progMarks)
		if err != nil {
			return nil, nil, err
		}
		progress.Add(s)
	}

	traj.Legend.Top = true
	traj.Add(plotter.NewGrid())
	progress.Add(plotter.NewGrid())
	return traj, progress, nil
}

func completionMarks(xys plotter.XYs) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("completions: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = completionColor
	s.GlyphStyle.Radius = vg.Points(3)
	return s, nil
}

// WriteTo draws both panels side by side and writes the figure to w in the
// given format, one of the formats supported by gonum/plot such as "png" or
// "svg".
func WriteTo(w io.Writer, format string, log sim.Log, opts Options) error {
	traj, progress, err := Plots(log, opts)
	if err != nil {
		return err
	}
	width, height := opts.size()
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	plots := [][]*plot.Plot{{traj, progress}}
	canvases := plot.Align(plots, tiles, draw.New(c))
	traj.Draw(canvases[0][0])
	progress.Draw(canvases[0][1])
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// Render writes the figure to the file at path. The format is taken from
// the file extension.
func Render(log sim.Log, path string, opts Options) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("%s: missing file extension", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTo(f, format, log, opts)
}
