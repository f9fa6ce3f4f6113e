// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

// ModelKind names a concrete StepwiseModel implementation.
type ModelKind string

const (
	// ModelLinearQuadratic is the closed-form linear + quadratic +
	// pairwise-interaction regression model.
	ModelLinearQuadratic ModelKind = "linear-quadratic"
	// ModelGradientBoostedTrees is the ensemble-of-trees regression model.
	ModelGradientBoostedTrees ModelKind = "gradient-boosted-trees"
)

// StepwiseModel is the pluggable regression model the selector drives. A
// single instance is fitted and scored many times over the course of a
// search, once per candidate feature set per fold, so implementations must
// be cheap to Clone and must not retain state from a prior Fit beyond what
// Clone explicitly copies.
//
// Every method receives the full predictor matrix plus the column indices
// of the active feature set, rather than a pre-sliced matrix, so that
// design-matrix caching (keyed on the index vector) stays entirely inside
// the implementation.
type StepwiseModel interface {
	// Fit trains the model using only the columns named by indices.
	Fit(predictors *Matrix, target []float64, indices []int) error

	// Predict returns one prediction per row of predictors, using only the
	// columns named by indices. Returns a NotFitted error if called before
	// Fit.
	Predict(predictors *Matrix, indices []int) ([]float64, error)

	// Score fits no state; it reports the model's goodness-of-fit against
	// target using only the columns named by indices. Implementations
	// typically call Fit internally and convert residuals into the same
	// normalized criterion CrossValidator uses.
	Score(predictors *Matrix, target []float64, indices []int) (float64, error)

	// Clone returns a new, independent, unfitted instance sharing only the
	// receiver's hyperparameters. Required for safe concurrent use across
	// worker goroutines.
	Clone() StepwiseModel

	// HasCoefficients reports whether GetCoefficients is meaningful for
	// this model kind (true for linear-quadratic, false for tree ensembles).
	HasCoefficients() bool

	// GetCoefficients returns the fitted coefficient vector in the model's
	// own term order, or nil if HasCoefficients is false or Fit has not
	// run.
	GetCoefficients() []float64

	// ModelType identifies the concrete implementation for reporting.
	ModelType() ModelKind
}
