// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cobra

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitjungle/stepsel/internal/engine"
	"github.com/bitjungle/stepsel/internal/ingest"
	"github.com/bitjungle/stepsel/pkg/security"
	"github.com/bitjungle/stepsel/pkg/types"
)

// NewRunCommand creates the run subcommand.
func NewRunCommand() *cobra.Command {
	defaults := types.DefaultSelectionConfig()

	var (
		features         string
		featureCols      string
		target           string
		folds            int
		beam             int
		minPredictors    int
		maxPredictors    int
		mcptReplications int
		mcptType         string
		noEarlyTerm      bool
		model            string
		gbtTrees         int
		gbtDepth         int
		gbtLR            float64
		rowStart         int
		rowEnd           int
		format           string
	)

	cmd := &cobra.Command{
		Use:   "run <data-file>",
		Short: "Run stepwise feature selection on a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			featureNames, err := resolveFeatureColumns(args[0], features, featureCols)
			if err != nil {
				return err
			}

			config := defaults
			config.NFolds = folds
			config.NKept = beam
			config.MinPredictors = minPredictors
			config.MaxPredictors = maxPredictors
			config.MCPTReplications = mcptReplications
			config.EarlyTermination = !noEarlyTerm

			switch strings.ToLower(mcptType) {
			case "cyclic":
				config.MCPTType = types.PermutationCyclic
			case "complete", "":
				config.MCPTType = types.PermutationComplete
			default:
				return fmt.Errorf("unknown mcpt-type %q", mcptType)
			}

			if err := security.ValidateSelectionBounds(config.NKept, config.NFolds, config.MCPTReplications); err != nil {
				return err
			}

			var rowRange *ingest.RowRange
			if rowStart > 0 || rowEnd >= 0 {
				rowRange = &ingest.RowRange{Start: rowStart, End: rowEnd}
			}

			var builder engine.ModelBuilder
			switch types.ModelKind(model) {
			case types.ModelGradientBoostedTrees:
				builder = engine.GradientBoostedTreesBuilder(gbtTrees, gbtDepth, gbtLR, config.NFolds)
			case types.ModelLinearQuadratic, "":
				builder = engine.LinearQuadraticBuilder(config.NFolds)
			default:
				return fmt.Errorf("unknown model kind %q", model)
			}

			eng := engine.New(config, builder)
			result, loaded, err := eng.RunFromFile(args[0], featureNames, target, rowRange)
			if err != nil {
				return err
			}

			if strings.ToLower(format) == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return printRunResult(result, loaded)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&features, "features", "x", "", "comma-separated candidate feature column names")
	flags.StringVar(&featureCols, "feature-cols", "", "1-based column ranges into the header, e.g. \"1-3,5\" (alternative to --features)")
	flags.StringVarP(&target, "target", "y", "", "target column name (required)")
	flags.IntVarP(&folds, "folds", "k", defaults.NFolds, "number of cross-validation folds")
	flags.IntVarP(&beam, "beam", "b", defaults.NKept, "beam width (feature sets kept per step)")
	flags.IntVar(&minPredictors, "min-predictors", defaults.MinPredictors, "minimum predictors before early termination can trigger")
	flags.IntVar(&maxPredictors, "max-predictors", defaults.MaxPredictors, "maximum beam depth (0 = default cap of 1000)")
	flags.IntVar(&mcptReplications, "mcpt-replications", defaults.MCPTReplications, "total MCPT replications, baseline included")
	flags.StringVar(&mcptType, "mcpt-type", "complete", "permutation type: complete or cyclic")
	flags.BoolVar(&noEarlyTerm, "no-early-termination", false, "disable the early-termination gate")
	flags.StringVarP(&model, "model", "m", string(types.ModelLinearQuadratic), "model kind: linear-quadratic or gradient-boosted-trees")
	flags.IntVar(&gbtTrees, "gbt-trees", 100, "gradient-boosted-trees: number of trees")
	flags.IntVar(&gbtDepth, "gbt-depth", 3, "gradient-boosted-trees: max tree depth")
	flags.Float64Var(&gbtLR, "gbt-lr", 0.1, "gradient-boosted-trees: learning rate")
	flags.IntVar(&rowStart, "row-start", 0, "first record index to load (0-based, inclusive)")
	flags.IntVar(&rowEnd, "row-end", -1, "last record index to load (exclusive); -1 means to end of file")
	flags.StringVarP(&format, "format", "f", "table", "output format: table or json")

	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func printRunResult(result types.RunResult, loaded *ingest.LoadResult) error {
	fmt.Printf("\nstepsel run %s\n", result.AnalysisID)
	fmt.Printf("target: %s   cases loaded: %d/%d\n\n", result.TargetName, loaded.NCasesLoaded, loaded.NCasesTotal)

	fmt.Printf("%-6s%12s%12s%12s%12s\n", "Step", "R2", "Model p", "Change p", "Time(ms)")
	for i := range result.StepRSquares {
		fmt.Printf("%-6d%12.4f%12.4f%12.4f%12.1f\n",
			i+1, result.StepRSquares[i], valueOrZero(result.ModelPValues, i),
			valueOrZero(result.ChangePValues, i), valueOrZero(result.StepTimingMs, i))
	}

	fmt.Println("\nSelected features:", strings.Join(result.SelectedFeatureNames, ", "))
	fmt.Printf("Final R2: %.4f\n", result.FinalRSquare)
	if result.TerminatedEarly {
		fmt.Printf("Terminated early: %s\n", result.TerminationReason)
	}
	fmt.Printf("Total elapsed: %.1f ms\n", result.TotalElapsedMs)
	return nil
}

func valueOrZero(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
