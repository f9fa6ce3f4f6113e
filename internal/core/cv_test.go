// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"testing"

	"github.com/bitjungle/stepsel/pkg/testutil"
	"github.com/bitjungle/stepsel/pkg/types"
)

func TestCreateFoldsCoversEveryCaseOnce(t *testing.T) {
	cv := NewCrossValidator(4)
	folds := cv.createFolds(23)

	if len(folds) != 4 {
		t.Fatalf("expected 4 folds, got %d", len(folds))
	}
	if folds[0].start != 0 {
		t.Errorf("expected first fold to start at 0, got %d", folds[0].start)
	}
	if folds[len(folds)-1].stop != 23 {
		t.Errorf("expected last fold to stop at 23, got %d", folds[len(folds)-1].stop)
	}

	var total int
	for i, f := range folds {
		if f.stop <= f.start {
			t.Fatalf("fold %d is empty: %+v", i, f)
		}
		total += f.stop - f.start
		if i > 0 && f.start != folds[i-1].stop {
			t.Fatalf("fold %d does not start where fold %d stopped", i, i-1)
		}
	}
	if total != 23 {
		t.Errorf("folds should partition all 23 cases, covered %d", total)
	}
}

func TestCreateFoldsBalancesSizes(t *testing.T) {
	cv := NewCrossValidator(5)
	folds := cv.createFolds(22)

	min, max := folds[0].stop-folds[0].start, folds[0].stop-folds[0].start
	for _, f := range folds {
		size := f.stop - f.start
		if size < min {
			min = size
		}
		if size > max {
			max = size
		}
	}
	if max-min > 1 {
		t.Errorf("expected fold sizes to differ by at most one case, got min=%d max=%d", min, max)
	}
}

func TestComputeCriterionEmptyFeatureSet(t *testing.T) {
	cv := NewCrossValidator(4)
	X, y := testutil.GenerateIdentityRecoveryDataset(40, 2, []float64{1, 1}, 0.1, 1)
	m := NewLinearQuadratic()

	_, ok, err := cv.ComputeCriterion(m, X, y, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for an empty feature set")
	}
}

func TestComputeCriterionTooFewCases(t *testing.T) {
	cv := NewCrossValidator(10)
	X, y := testutil.GenerateIdentityRecoveryDataset(5, 1, []float64{1}, 0, 1)
	m := NewLinearQuadratic()

	_, _, err := cv.ComputeCriterion(m, X, y, []int{0})
	if err == nil {
		t.Fatal("expected a validation error when cases <= folds")
	}
	var stepErr *types.StepError
	if e, ok := err.(*types.StepError); ok {
		stepErr = e
	} else {
		t.Fatalf("expected a *types.StepError, got %T", err)
	}
	if stepErr.Type != types.ErrValidation {
		t.Errorf("expected ErrValidation, got %v", stepErr.Type)
	}
}

func TestComputeCriterionHighForStrongSignal(t *testing.T) {
	cv := NewCrossValidator(4)
	X, y := testutil.GenerateIdentityRecoveryDataset(200, 2, []float64{3, -2}, 0.05, 5)
	m := NewLinearQuadratic()

	score, ok, err := cv.ComputeCriterion(m, X, y, []int{0, 1})
	testutil.AssertNoError(t, err, "ComputeCriterion")
	if !ok {
		t.Fatal("expected a valid criterion for a strongly predictive feature set")
	}
	if score < 0.9 {
		t.Errorf("expected cross-validated R-square near 1 for a near-noiseless signal, got %v", score)
	}
}

func TestComputeCriterionLowForNullSignal(t *testing.T) {
	cv := NewCrossValidator(4)
	X, y := testutil.GenerateNullDataset(200, 3, 1.0, 6)
	m := NewLinearQuadratic()

	score, ok, err := cv.ComputeCriterion(m, X, y, []int{0, 1, 2})
	testutil.AssertNoError(t, err, "ComputeCriterion")
	if !ok {
		t.Fatal("expected a valid (if poor) criterion for unrelated predictors")
	}
	if score > 0.3 {
		t.Errorf("expected a low cross-validated R-square for predictors unrelated to the target, got %v", score)
	}
}

func TestComputeCriterionModelMatchesLinearQuadraticPath(t *testing.T) {
	cv := NewCrossValidator(4)
	X, y := testutil.GenerateIdentityRecoveryDataset(120, 2, []float64{2, 1}, 0.05, 9)

	direct := NewLinearQuadratic()
	directScore, ok, err := cv.ComputeCriterion(direct, X, y, []int{0, 1})
	testutil.AssertNoError(t, err, "ComputeCriterion")
	if !ok {
		t.Fatal("expected direct path to succeed")
	}

	wrapper := NewLinearQuadraticWrapper(4)
	modelScore, ok, err := cv.ComputeCriterionModel(wrapper, X, y, []int{0, 1})
	testutil.AssertNoError(t, err, "ComputeCriterionModel")
	if !ok {
		t.Fatal("expected StepwiseModel path to succeed")
	}

	testutil.AssertAlmostEqual(t, directScore, modelScore, testutil.LooseTolerance,
		"ComputeCriterion and ComputeCriterionModel should agree for the same model family")
}
