// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cli

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/bitjungle/stepsel/internal/engine"
	"github.com/bitjungle/stepsel/internal/ingest"
	"github.com/bitjungle/stepsel/internal/utils"
	"github.com/bitjungle/stepsel/pkg/security"
	"github.com/bitjungle/stepsel/pkg/types"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run stepwise feature selection on a data file",
		ArgsUsage: "<data-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "features", Aliases: []string{"x"}, Usage: "comma-separated candidate feature column names"},
			&cli.StringFlag{Name: "feature-cols", Usage: "1-based column ranges into the header, e.g. \"1-3,5\" (alternative to --features)"},
			&cli.StringFlag{Name: "target", Aliases: []string{"y"}, Required: true, Usage: "target column name"},
			&cli.IntFlag{Name: "folds", Aliases: []string{"k"}, Value: types.DefaultSelectionConfig().NFolds, Usage: "number of cross-validation folds"},
			&cli.IntFlag{Name: "beam", Aliases: []string{"b"}, Value: types.DefaultSelectionConfig().NKept, Usage: "beam width (feature sets kept per step)"},
			&cli.IntFlag{Name: "min-predictors", Value: types.DefaultSelectionConfig().MinPredictors, Usage: "minimum predictors before early termination can trigger"},
			&cli.IntFlag{Name: "max-predictors", Value: types.DefaultSelectionConfig().MaxPredictors, Usage: "maximum beam depth (0 = default cap of 1000)"},
			&cli.IntFlag{Name: "mcpt-replications", Value: types.DefaultSelectionConfig().MCPTReplications, Usage: "total MCPT replications, baseline included"},
			&cli.StringFlag{Name: "mcpt-type", Value: "complete", Usage: "permutation type: complete or cyclic"},
			&cli.BoolFlag{Name: "no-early-termination", Usage: "disable the early-termination gate"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Value: string(types.ModelLinearQuadratic), Usage: "model kind: linear-quadratic or gradient-boosted-trees"},
			&cli.IntFlag{Name: "gbt-trees", Value: 100, Usage: "gradient-boosted-trees: number of trees"},
			&cli.IntFlag{Name: "gbt-depth", Value: 3, Usage: "gradient-boosted-trees: max tree depth"},
			&cli.Float64Flag{Name: "gbt-lr", Value: 0.1, Usage: "gradient-boosted-trees: learning rate"},
			&cli.IntFlag{Name: "row-start", Value: 0, Usage: "first record index to load (0-based, inclusive)"},
			&cli.IntFlag{Name: "row-end", Value: -1, Usage: "last record index to load (exclusive); -1 means to end of file"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "table", Usage: "output format: table or json"},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one data file argument", 1)
	}
	path := c.Args().First()

	featureNames, err := resolveFeatureColumns(path, c.String("features"), c.String("feature-cols"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	targetName := c.String("target")

	config := types.DefaultSelectionConfig()
	config.NFolds = c.Int("folds")
	config.NKept = c.Int("beam")
	config.MinPredictors = c.Int("min-predictors")
	config.MaxPredictors = c.Int("max-predictors")
	config.MCPTReplications = c.Int("mcpt-replications")
	config.EarlyTermination = !c.Bool("no-early-termination")

	switch strings.ToLower(c.String("mcpt-type")) {
	case "cyclic":
		config.MCPTType = types.PermutationCyclic
	case "complete", "":
		config.MCPTType = types.PermutationComplete
	default:
		return cli.Exit(fmt.Sprintf("unknown mcpt-type %q", c.String("mcpt-type")), 1)
	}

	if err := security.ValidateSelectionBounds(config.NKept, config.NFolds, config.MCPTReplications); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var rowRange *ingest.RowRange
	if c.Int("row-start") > 0 || c.Int("row-end") >= 0 {
		rowRange = &ingest.RowRange{Start: c.Int("row-start"), End: c.Int("row-end")}
	}

	var builder engine.ModelBuilder
	switch types.ModelKind(c.String("model")) {
	case types.ModelGradientBoostedTrees:
		builder = engine.GradientBoostedTreesBuilder(c.Int("gbt-trees"), c.Int("gbt-depth"), c.Float64("gbt-lr"), config.NFolds)
	case types.ModelLinearQuadratic, "":
		builder = engine.LinearQuadraticBuilder(config.NFolds)
	default:
		return cli.Exit(fmt.Sprintf("unknown model kind %q", c.String("model")), 1)
	}

	eng := engine.New(config, builder)
	result, loaded, err := eng.RunFromFile(path, featureNames, targetName, rowRange)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	switch strings.ToLower(c.String("format")) {
	case "json":
		return renderJSON(result)
	default:
		return renderTable(result, loaded)
	}
}

// resolveFeatureColumns honors --features if given, else resolves
// --feature-cols against the file's header, else fails: exactly one of the
// two selection modes must be used.
func resolveFeatureColumns(path, features, featureCols string) ([]string, error) {
	if features != "" {
		return splitAndTrim(features), nil
	}
	if featureCols == "" {
		return nil, fmt.Errorf("one of --features or --feature-cols is required")
	}
	header, err := ingest.HeaderColumns(path)
	if err != nil {
		return nil, err
	}
	return utils.ColumnsFromRanges(header, featureCols)
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
