// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"github.com/bitjungle/stepsel/pkg/types"
)

// GBTWrapper adapts GradientBoostedTrees to types.StepwiseModel.
type GBTWrapper struct {
	model        *GradientBoostedTrees
	nTrees       int
	maxDepth     int
	learningRate float64
	nFolds       int
}

// NewGBTWrapper returns an unfitted wrapper with the given hyperparameters.
func NewGBTWrapper(nTrees, maxDepth int, learningRate float64, nFolds int) *GBTWrapper {
	return &GBTWrapper{
		model:        NewGradientBoostedTrees(nTrees, maxDepth, learningRate),
		nTrees:       nTrees,
		maxDepth:     maxDepth,
		learningRate: learningRate,
		nFolds:       nFolds,
	}
}

// Fit trains on the entire dataset.
func (w *GBTWrapper) Fit(predictors *types.Matrix, target []float64, indices []int) error {
	return w.model.Fit(predictors, target, indices)
}

// Predict returns one prediction per row.
func (w *GBTWrapper) Predict(predictors *types.Matrix, indices []int) ([]float64, error) {
	return w.model.Predict(predictors, indices)
}

// Score cross-validates indices against target. A failed fold fit is
// reported as the sentinel -1 (see LinearQuadraticWrapper.Score).
func (w *GBTWrapper) Score(predictors *types.Matrix, target []float64, indices []int) (float64, error) {
	cv := NewCrossValidator(w.nFolds)
	score, ok, err := cv.ComputeCriterionModel(w, predictors, target, indices)
	if err != nil {
		return 0, err
	}
	if !ok {
		return -1, nil
	}
	return score, nil
}

// Clone returns a fresh, unfitted wrapper with the same hyperparameters.
func (w *GBTWrapper) Clone() types.StepwiseModel {
	return NewGBTWrapper(w.nTrees, w.maxDepth, w.learningRate, w.nFolds)
}

// HasCoefficients is always false: a tree ensemble has no linear
// coefficient vector, only FeatureImportances.
func (w *GBTWrapper) HasCoefficients() bool { return false }

// GetCoefficients always returns nil for this model kind.
func (w *GBTWrapper) GetCoefficients() []float64 { return nil }

// FeatureImportances exposes the underlying ensemble's split-gain totals.
func (w *GBTWrapper) FeatureImportances() []float64 {
	return w.model.FeatureImportances()
}

// ModelType identifies this implementation.
func (w *GBTWrapper) ModelType() types.ModelKind {
	return types.ModelGradientBoostedTrees
}
