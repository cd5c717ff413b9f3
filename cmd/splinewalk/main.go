// splinewalk simulates a walker traveling along a spline described by a
// scenario file.
//
// Usage:
//
//	splinewalk run <scenario.yaml>... [--dt=<seconds>] [--duration=<seconds>] [-p <n>] [-o <frames.jsonl>]
//	splinewalk plot <scenario.yaml> -o <figure.png> [--plane=xz|xy|yz]
//	splinewalk validate <scenario.yaml>...
//	splinewalk version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
