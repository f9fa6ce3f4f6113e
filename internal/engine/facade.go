// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package engine is the top-level orchestrator: it standardizes inputs,
// drives the selector, and shapes the result the caller actually wants.
package engine

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bitjungle/stepsel/internal/core"
	"github.com/bitjungle/stepsel/internal/ingest"
	"github.com/bitjungle/stepsel/internal/selector"
	"github.com/bitjungle/stepsel/pkg/types"
)

// ModelBuilder constructs a fresh, unfitted model of the caller's chosen
// kind. The selector calls it repeatedly (once per evaluation worker, and
// once per serial evaluation pass inside MCPT replications), so it must be
// cheap and side-effect-free.
type ModelBuilder func() types.StepwiseModel

// LinearQuadraticBuilder returns a ModelBuilder for the closed-form
// linear-quadratic model.
func LinearQuadraticBuilder(nFolds int) ModelBuilder {
	return func() types.StepwiseModel { return core.NewLinearQuadraticWrapper(nFolds) }
}

// GradientBoostedTreesBuilder returns a ModelBuilder for the boosted-tree
// ensemble model.
func GradientBoostedTreesBuilder(nTrees, maxDepth int, learningRate float64, nFolds int) ModelBuilder {
	return func() types.StepwiseModel {
		return core.NewGBTWrapper(nTrees, maxDepth, learningRate, nFolds)
	}
}

// Engine runs one selection end to end: standardize, search, shape output.
type Engine struct {
	config       types.SelectionConfig
	modelBuilder ModelBuilder
}

// New returns an Engine bound to config and modelBuilder.
func New(config types.SelectionConfig, modelBuilder ModelBuilder) *Engine {
	return &Engine{config: config, modelBuilder: modelBuilder}
}

// standardizeTarget returns a standardized copy of y (population mean/σ);
// an all-equal y (σ == 0) is an error, not silently clamped, since a
// constant target can never be predicted meaningfully.
func standardizeTarget(y []float64) ([]float64, error) {
	out := make([]float64, len(y))
	copy(out, y)

	floats.AddConst(-stat.Mean(out, nil), out)
	std := math.Sqrt(floats.Dot(out, out) / float64(len(out)))
	if std == 0 {
		return nil, types.NewValidationError("target has zero variance", nil)
	}
	floats.Scale(1/std, out)
	return out, nil
}

// Run standardizes the predictor columns in place and the target into a
// copy (the caller's target slice is left unchanged), runs the selector,
// and shapes the result. Cancellation comes from the config's CancelCallback.
func (e *Engine) Run(predictors *types.Matrix, target []float64, targetName string) (types.RunResult, error) {
	if e.config.NKept < 1 || e.config.NFolds < 2 || e.config.MCPTReplications < 1 {
		return types.RunResult{}, types.NewConfigurationError(
			"n_kept and mcpt_replications must be at least 1, n_folds at least 2", nil)
	}
	if predictors.Rows() == 0 || predictors.Cols() == 0 {
		return types.RunResult{}, types.NewValidationError("no data provided", nil)
	}
	if predictors.Rows() != len(target) {
		return types.RunResult{}, types.NewDimensionError("predictor/target row count mismatch", predictors.Rows(), len(target))
	}

	for col := 0; col < predictors.Cols(); col++ {
		predictors.StandardizeColumn(col)
	}
	standardizedTarget, err := standardizeTarget(target)
	if err != nil {
		return types.RunResult{}, err
	}

	model := e.modelBuilder()
	sel := selector.New(e.config, e.modelBuilder)
	searchResults := sel.Select(predictors, standardizedTarget)

	result := types.RunResult{
		AnalysisID:        uuid.NewString(),
		TargetName:        targetName,
		TerminatedEarly:   searchResults.TerminatedEarly,
		TerminationReason: searchResults.TerminationReason,
		TotalCasesLoaded:  predictors.Rows(),
		TotalSteps:        len(searchResults.Steps),
		TotalElapsedMs:    searchResults.TotalElapsedMs,
	}

	for _, step := range searchResults.Steps {
		result.ModelPValues = append(result.ModelPValues, step.ModelPValue)
		result.ChangePValues = append(result.ChangePValues, step.ChangePValue)
		result.StepRSquares = append(result.StepRSquares, step.BestScore)
		result.StepTimingMs = append(result.StepTimingMs, step.StepElapsedMs)
	}

	final := searchResults.FinalFeatureSet
	result.SelectedFeatureIndices = final.Indices
	result.FinalRSquare = final.CVScore
	for _, idx := range final.Indices {
		result.SelectedFeatureNames = append(result.SelectedFeatureNames, predictors.ColumnName(idx))
	}

	// The model is driven purely through the capability interface: any
	// implementation reporting HasCoefficients gets a full-data refit and
	// its own coefficient vector in the output.
	if model.HasCoefficients() && len(final.Indices) > 0 {
		if err := model.Fit(predictors, standardizedTarget, final.Indices); err == nil {
			result.FinalCoefficients = model.GetCoefficients()
		}
	}

	return result, nil
}

// RunFromFile loads the requested columns from a whitespace-separated data
// file and falls through to Run. The returned LoadResult carries the
// loaded/total case bookkeeping the reader reports alongside the matrix.
func (e *Engine) RunFromFile(path string, featureColumns []string, targetColumn string, rowRange *ingest.RowRange) (types.RunResult, *ingest.LoadResult, error) {
	loaded, err := ingest.LoadSpaceSeparatedFile(path, featureColumns, targetColumn, rowRange)
	if err != nil {
		return types.RunResult{}, nil, err
	}
	result, err := e.Run(loaded.Features, loaded.Target, targetColumn)
	if err != nil {
		return types.RunResult{}, nil, err
	}
	return result, loaded, nil
}
