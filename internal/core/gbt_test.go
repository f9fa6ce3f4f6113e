// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"math"
	"testing"

	"github.com/bitjungle/stepsel/pkg/testutil"
	"github.com/bitjungle/stepsel/pkg/types"
)

func TestGradientBoostedTreesFitReducesTrainingError(t *testing.T) {
	X, y := testutil.GenerateIdentityRecoveryDataset(200, 2, []float64{2, -1}, 0.05, 13)

	g := NewGradientBoostedTrees(30, 3, 0.2)
	if err := g.Fit(X, y, []int{0, 1}); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}

	preds, err := g.Predict(X, []int{0, 1})
	testutil.AssertNoError(t, err, "Predict")

	var sse, baseSSE float64
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	for i, p := range preds {
		d := y[i] - p
		sse += d * d
		bd := y[i] - mean
		baseSSE += bd * bd
	}
	if sse >= baseSSE {
		t.Errorf("expected the fitted ensemble's training SSE (%v) to beat the mean-only baseline (%v)", sse, baseSSE)
	}
}

func TestGradientBoostedTreesPredictBeforeFitFails(t *testing.T) {
	g := NewGradientBoostedTrees(10, 2, 0.1)
	X := types.NewMatrix(5, 1)
	if _, err := g.Predict(X, []int{0}); err == nil {
		t.Fatal("expected an error predicting from an unfitted model")
	}
}

func TestGradientBoostedTreesFitRejectsEmptyFeatureSet(t *testing.T) {
	g := NewGradientBoostedTrees(10, 2, 0.1)
	X, y := testutil.GenerateIdentityRecoveryDataset(20, 1, []float64{1}, 0.1, 1)
	if err := g.Fit(X, y, nil); err == nil {
		t.Fatal("expected an error fitting with no features")
	}
}

func TestGradientBoostedTreesFeatureImportancesFavorsRelevantFeature(t *testing.T) {
	X, y := testutil.GenerateIdentityRecoveryDataset(300, 3, []float64{5, 0, 0}, 0.05, 19)

	g := NewGradientBoostedTrees(40, 3, 0.15)
	if err := g.Fit(X, y, []int{0, 1, 2}); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}

	importances := g.FeatureImportances()
	if len(importances) != 3 {
		t.Fatalf("expected 3 importances, got %d", len(importances))
	}
	if importances[0] <= importances[1] || importances[0] <= importances[2] {
		t.Errorf("expected the only predictive feature to dominate importances, got %v", importances)
	}
}

func TestGBTWrapperScoreAndClone(t *testing.T) {
	X, y := testutil.GenerateIdentityRecoveryDataset(150, 2, []float64{3, 1}, 0.1, 23)

	w := NewGBTWrapper(20, 3, 0.2, 4)
	score, err := w.Score(X, y, []int{0, 1})
	testutil.AssertNoError(t, err, "Score")
	if math.IsNaN(score) {
		t.Fatal("expected a finite cross-validated score")
	}

	clone := w.Clone()
	if clone.ModelType() != types.ModelGradientBoostedTrees {
		t.Errorf("expected clone to report ModelGradientBoostedTrees, got %v", clone.ModelType())
	}
	if w.HasCoefficients() {
		t.Error("expected GBTWrapper.HasCoefficients() to be false")
	}
	if w.GetCoefficients() != nil {
		t.Error("expected GBTWrapper.GetCoefficients() to be nil")
	}
}
