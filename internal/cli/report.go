// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/bitjungle/stepsel/internal/ingest"
	"github.com/bitjungle/stepsel/pkg/types"
)

// renderTable prints a colorized, tabular step-by-step report of result to
// stdout: one row per selection step, with a pass/fail marker on the
// change p-value and a final summary.
func renderTable(result types.RunResult, loaded *ingest.LoadResult) error {
	bold := color.New(color.Bold)
	bold.Printf("\nstepsel run %s\n", result.AnalysisID)
	fmt.Printf("target: %s   cases loaded: %d/%d\n\n", result.TargetName, loaded.NCasesLoaded, loaded.NCasesTotal)

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Step", "R²", "Model p", "Change p", "Time (ms)", "Significant")

	for i := range result.StepRSquares {
		sig := "yes"
		sigColored := color.GreenString(sig)
		if i < len(result.ChangePValues) && result.ChangePValues[i] > 0.05 {
			sigColored = color.RedString("no")
		}
		if err := table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.4f", result.StepRSquares[i]),
			fmt.Sprintf("%.4f", valueAt(result.ModelPValues, i)),
			fmt.Sprintf("%.4f", valueAt(result.ChangePValues, i)),
			fmt.Sprintf("%.1f", valueAt(result.StepTimingMs, i)),
			sigColored,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Println()
	bold.Println("Selected features:")
	fmt.Printf("  %s\n", strings.Join(result.SelectedFeatureNames, ", "))
	fmt.Printf("Final R²: %.4f\n", result.FinalRSquare)
	if result.TerminatedEarly {
		fmt.Printf("Terminated early: %s\n", result.TerminationReason)
	}
	if len(result.FinalCoefficients) > 0 {
		fmt.Println("\nFinal coefficients (intercept last):")
		for i, v := range result.FinalCoefficients {
			fmt.Printf("  [%d] %.6f\n", i, v)
		}
	}
	fmt.Printf("\nTotal elapsed: %.1f ms\n", result.TotalElapsedMs)

	return nil
}

func renderJSON(result types.RunResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func valueAt(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
