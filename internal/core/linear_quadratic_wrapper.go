// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"github.com/bitjungle/stepsel/pkg/types"
)

// LinearQuadraticWrapper adapts LinearQuadratic to the types.StepwiseModel
// interface so the selector can drive it polymorphically alongside other
// model kinds.
type LinearQuadraticWrapper struct {
	model  *LinearQuadratic
	fitted bool
	nFolds int
}

// NewLinearQuadraticWrapper returns an unfitted wrapper. nFolds is used by
// Score, which cross-validates rather than reporting training error.
func NewLinearQuadraticWrapper(nFolds int) *LinearQuadraticWrapper {
	return &LinearQuadraticWrapper{model: NewLinearQuadratic(), nFolds: nFolds}
}

// Fit trains on the entire dataset (no held-out fold).
func (w *LinearQuadraticWrapper) Fit(predictors *types.Matrix, target []float64, indices []int) error {
	if !w.model.Fit(predictors, target, indices, 0, 0) {
		return types.NewComputationError("linear-quadratic fit failed", nil)
	}
	w.fitted = true
	return nil
}

// Predict evaluates the fitted design-matrix row for every case: it builds
// the same term expansion used at fit time and multiplies it through the
// fitted coefficient vector.
func (w *LinearQuadraticWrapper) Predict(predictors *types.Matrix, indices []int) ([]float64, error) {
	if !w.fitted {
		return nil, types.NewNotFittedError("linear-quadratic model has not been fitted")
	}
	coeffs := w.model.Coefficients()
	if coeffs == nil {
		return nil, types.NewNotFittedError("linear-quadratic model has no coefficients")
	}

	rows := make([]int, predictors.Rows())
	for i := range rows {
		rows[i] = i
	}
	A := buildDesignRows(predictors, indices, rows)

	n, cols := A.Dims()
	if cols != len(coeffs) {
		return nil, types.NewDimensionError("design matrix/coefficient length mismatch", len(coeffs), cols)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += A.At(i, j) * coeffs[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Score cross-validates indices against target and returns the R-square
// criterion. A failed fold fit is reported as the sentinel -1, matching the
// convention the selector uses to drop a candidate outright rather than
// treat it as a legitimately poor (but valid) fit.
func (w *LinearQuadraticWrapper) Score(predictors *types.Matrix, target []float64, indices []int) (float64, error) {
	cv := NewCrossValidator(w.nFolds)
	score, ok, err := cv.ComputeCriterion(w.model, predictors, target, indices)
	if err != nil {
		return 0, err
	}
	if !ok {
		return -1, nil
	}
	return score, nil
}

// Clone returns a fresh, unfitted wrapper with the same fold count.
func (w *LinearQuadraticWrapper) Clone() types.StepwiseModel {
	return NewLinearQuadraticWrapper(w.nFolds)
}

// HasCoefficients always returns true: the linear-quadratic model is
// always linear in its expanded terms.
func (w *LinearQuadraticWrapper) HasCoefficients() bool { return true }

// GetCoefficients returns the fitted coefficient vector, or nil.
func (w *LinearQuadraticWrapper) GetCoefficients() []float64 {
	return w.model.Coefficients()
}

// ModelType identifies this implementation.
func (w *LinearQuadraticWrapper) ModelType() types.ModelKind {
	return types.ModelLinearQuadratic
}
