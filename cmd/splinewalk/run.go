package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/spline/internal/scenario"
	"honnef.co/go/spline/internal/sim"
	"honnef.co/go/spline/walker"
)

var runFlags struct {
	dt       float64
	duration float64
	output   string
	parallel int
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Simulate scenarios and print one JSON frame per tick",
	Long:  "Simulates each scenario and prints one JSON frame per tick.\nWith more than one scenario, the scenarios run concurrently and every frame\ncarries a \"scenario\" field naming the scenario it belongs to.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.Float64Var(&runFlags.dt, "dt", 0, "Time step in seconds (overrides the scenario)")
	f.Float64Var(&runFlags.duration, "duration", 0, "Simulated time in seconds (overrides the scenario)")
	f.StringVarP(&runFlags.output, "output", "o", "", "Write frames to this file instead of stdout")
	f.IntVarP(&runFlags.parallel, "parallel", "p", 0, "Maximum number of scenarios simulated at once (0 means one per CPU)")
}

// prepare loads the scenario at path and builds its simulation job, honoring
// the --dt and --duration overrides of cmd.
func prepare(cmd *cobra.Command, path string) (*scenario.Scenario, sim.Job, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, sim.Job{}, err
	}
	l := logger.With("scenario", sc.Name)
	w, _, err := sc.NewWalker(walker.WithLogger(l))
	if err != nil {
		return nil, sim.Job{}, err
	}
	dt, duration := sc.Run.Timing()
	if cmd.Flags().Changed("dt") {
		dt, _ = cmd.Flags().GetFloat64("dt")
	}
	if cmd.Flags().Changed("duration") {
		duration, _ = cmd.Flags().GetFloat64("duration")
	}
	job := sim.Job{
		Name:   sc.Name,
		Walker: w,
		Options: sim.RunOptions{
			DT:       dt,
			Duration: duration,
			Logger:   l,
		},
	}
	return sc, job, nil
}

// simulate loads and runs a single scenario.
func simulate(cmd *cobra.Command, path string) (*scenario.Scenario, sim.Log, error) {
	sc, job, err := prepare(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	log, err := sim.Run(cmd.Context(), job.Walker, job.Options)
	if err != nil {
		return nil, nil, fmt.Errorf("simulate %s: %w", sc.Name, err)
	}
	return sc, log, nil
}

func runRun(cmd *cobra.Command, args []string) (err error) {
	jobs := make([]sim.Job, len(args))
	for i, path := range args {
		_, jobs[i], err = prepare(cmd, path)
		if err != nil {
			return err
		}
	}
	logs, err := sim.RunAll(cmd.Context(), jobs, runFlags.parallel)
	if err != nil {
		return fmt.Errorf("simulate %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if runFlags.output != "" {
		f, cerr := os.Create(runFlags.output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	if len(jobs) == 1 {
		return sim.WriteJSONLines(out, logs[0])
	}
	for i, job := range jobs {
		if err := sim.WriteNamedJSONLines(out, job.Name, logs[i]); err != nil {
			return err
		}
	}
	return nil
}
