package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"honnef.co/go/spline/internal/trajplot"
)

var plotFlags struct {
	output string
	plane  string
	width  float64
	height float64
}

var plotCmd = &cobra.Command{
	Use:   "plot <scenario.yaml>",
	Short: "Simulate a scenario and plot the trajectory",
	Long:  "Simulates a scenario and renders the walker's path and progress over time.\nThe image format is taken from the output file's extension (png, svg, pdf, ...).",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlot,
}

func init() {
	f := plotCmd.Flags()
	f.StringVarP(&plotFlags.output, "output", "o", "", "Output image file (required)")
	f.StringVar(&plotFlags.plane, "plane", "xz", "Projection plane of the trajectory: xz, xy, or yz")
	f.Float64Var(&plotFlags.width, "width", 10, "Figure width in inches")
	f.Float64Var(&plotFlags.height, "height", 5, "Figure height in inches")
	f.Float64Var(&runFlags.dt, "dt", 0, "Time step in seconds (overrides the scenario)")
	f.Float64Var(&runFlags.duration, "duration", 0, "Simulated time in seconds (overrides the scenario)")

	_ = plotCmd.MarkFlagRequired("output")
}

func runPlot(cmd *cobra.Command, args []string) error {
	sc, log, err := simulate(cmd, args[0])
	if err != nil {
		return err
	}
	sp, err := sc.BuildSpline()
	if err != nil {
		return err
	}
	opts := trajplot.Options{
		Plane:  plotFlags.plane,
		Width:  vg.Length(plotFlags.width) * vg.Inch,
		Height: vg.Length(plotFlags.height) * vg.Inch,
		Title:  sc.Name,
		Spline: sp,
	}
	if err := trajplot.Render(log, plotFlags.output, opts); err != nil {
		return fmt.Errorf("plot %s: %w", sc.Name, err)
	}
	logger.Info("wrote plot", "file", plotFlags.output, "frames", len(log), "completions", len(log.Completions()))
	return nil
}
