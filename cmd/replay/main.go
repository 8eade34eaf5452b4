package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("v", false, "print per-transition metrics")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [-v]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *verbose))
}

// #endregion main

// #region run

func run(fixturePath string, verbose bool) int {
	fix, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	result, err := replay.Run(fix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		return 1
	}

	if fix.Description != "" {
		fmt.Printf("fixture: %s\n", fix.Description)
	}
	fmt.Printf("actions: %d, transitions: %d\n", result.TotalActions, len(result.Transitions))

	for _, tr := range result.Transitions {
		fmt.Printf("  [%3d] %s → %s (confidence %.2f)\n",
			tr.ActionIndex, tr.Change.Previous, tr.Change.Next, tr.Change.Confidence)
		if verbose {
			m := tr.Change.Metrics
			fmt.Printf("        error_rate=%.2f avg_duration=%.0fms variety=%d window=%d\n",
				m.ErrorRate, m.AverageDuration, m.ActionVariety, m.TotalActions)
		}
	}

	fmt.Printf("final state: %s (confidence %.2f, %d transitions)\n",
		result.Final.Current, result.Final.Confidence, result.Final.Transitions)

	if !result.Passed() {
		for _, m := range result.Mismatches {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", m)
		}
		return 1
	}
	if len(fix.Expected) > 0 {
		fmt.Printf("all %d expectations passed\n", len(fix.Expected))
	}
	return 0
}

// #endregion run
