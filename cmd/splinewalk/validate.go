package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"honnef.co/go/spline/internal/scenario"
	"honnef.co/go/spline/internal/sim"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>...",
	Short: "Check scenario files without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var errs []error
	for _, path := range args {
		summary, err := validateScenario(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s: ok (%s)\n", path, summary)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d scenarios invalid: %w", len(errs), len(args), errors.Join(errs...))
	}
	return nil
}

func validateScenario(path string) (string, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return "", err
	}
	sp, err := sc.BuildSpline()
	if err != nil {
		return "", err
	}
	dt, duration := sc.Run.Timing()
	ticks, err := sim.RunOptions{DT: dt, Duration: duration}.Ticks()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, length %.3f, %d ticks", sc.WalkerConfig().TravelMode, sp.Length(), ticks), nil
}
