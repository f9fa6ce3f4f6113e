// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"gonum.org/v1/gonum/floats"

	"github.com/bitjungle/stepsel/pkg/types"
)

// CrossValidator scores a feature set by K-fold cross-validation of a
// linear-quadratic model, reporting a normalized R-square criterion.
type CrossValidator struct {
	nFolds int
}

// NewCrossValidator returns a validator using nFolds folds.
func NewCrossValidator(nFolds int) *CrossValidator {
	return &CrossValidator{nFolds: nFolds}
}

// NFolds returns the configured fold count.
func (cv *CrossValidator) NFolds() int { return cv.nFolds }

// SetNFolds updates the fold count.
func (cv *CrossValidator) SetNFolds(n int) { cv.nFolds = n }

type fold struct {
	start, stop int
}

// createFolds partitions n cases into cv.nFolds contiguous folds, sizing
// each fold as the remaining case count divided by the remaining fold
// count so that the fold sizes differ by at most one case.
func (cv *CrossValidator) createFolds(nCases int) []fold {
	folds := make([]fold, 0, cv.nFolds)
	remaining := nCases
	start := 0
	for i := 0; i < cv.nFolds; i++ {
		size := remaining / (cv.nFolds - i)
		stop := start + size
		folds = append(folds, fold{start: start, stop: stop})
		remaining -= size
		start = stop
	}
	return folds
}

// ComputeCriterion returns the cross-validated R-square for featureIndices:
// 1 - (total squared error across all folds) / n. An empty feature set
// reports ok=false with no error; too few cases (n <= folds) is a
// *types.StepError rather than a sentinel value. A failed model fit within
// any fold reports ok=false with no error, matching the "invalid result"
// outcome the selector treats as "skip this candidate".
func (cv *CrossValidator) ComputeCriterion(model *LinearQuadratic, predictors *types.Matrix, target []float64, featureIndices []int) (score float64, ok bool, err error) {
	if len(featureIndices) == 0 {
		return 0, false, nil
	}

	nCases := len(target)
	if nCases <= cv.nFolds {
		return 0, false, types.NewValidationError("number of cases must exceed number of folds", nil)
	}

	folds := cv.createFolds(nCases)

	var totalError float64
	for _, f := range folds {
		if !model.Fit(predictors, target, featureIndices, f.start, f.stop) {
			return 0, false, nil
		}
		totalError += model.Evaluate(predictors, target, featureIndices, f.start, f.stop)
	}

	return 1.0 - totalError/float64(nCases), true, nil
}

// ComputeCriterionModel is the StepwiseModel-generic counterpart of
// ComputeCriterion, for model kinds (e.g. gradient-boosted trees) that
// don't expose the linear-quadratic model's fold-exclusion/caching API.
// Each fold clones model, fits on the complementary rows, and evaluates
// sum-of-squared-error on the held-out rows.
func (cv *CrossValidator) ComputeCriterionModel(model types.StepwiseModel, predictors *types.Matrix, target []float64, featureIndices []int) (score float64, ok bool, err error) {
	if len(featureIndices) == 0 {
		return 0, false, nil
	}

	nCases := len(target)
	if nCases <= cv.nFolds {
		return 0, false, types.NewValidationError("number of cases must exceed number of folds", nil)
	}

	folds := cv.createFolds(nCases)

	var totalError float64
	for _, f := range folds {
		trainRows := make([]int, 0, nCases-(f.stop-f.start))
		trainTarget := make([]float64, 0, cap(trainRows))
		for i := 0; i < nCases; i++ {
			if i < f.start || i >= f.stop {
				trainRows = append(trainRows, i)
				trainTarget = append(trainTarget, target[i])
			}
		}
		testRows := make([]int, f.stop-f.start)
		for i := range testRows {
			testRows[i] = f.start + i
		}

		fold := model.Clone()
		if err := fold.Fit(predictors.RowSubset(trainRows), trainTarget, featureIndices); err != nil {
			return 0, false, nil
		}
		preds, err := fold.Predict(predictors.RowSubset(testRows), featureIndices)
		if err != nil {
			return 0, false, nil
		}
		d := floats.Distance(preds, target[f.start:f.stop], 2)
		totalError += d * d
	}

	return 1.0 - totalError/float64(nCases), true, nil
}
