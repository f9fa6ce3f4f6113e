// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package testutil provides shared numerical-tolerance assertions and
// synthetic dataset generators used across this repository's test suite.
package testutil

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bitjungle/stepsel/pkg/types"
)

const (
	// DefaultTolerance is the default numerical tolerance for floating point comparisons
	DefaultTolerance = 1e-10
	// LooseTolerance is used for less strict comparisons
	LooseTolerance = 1e-6
	// StrictTolerance is used for very strict comparisons
	StrictTolerance = 1e-14
)

// AlmostEqual checks if two float64 values are approximately equal within
// tolerance (absolute or relative), treating matching NaNs and matching
// infinities as equal.
func AlmostEqual(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return scalar.Same(a, b)
	}
	return scalar.EqualWithinAbsOrRel(a, b, tolerance, tolerance)
}

// AssertAlmostEqual checks if two values are almost equal and fails the test if not
func AssertAlmostEqual(t *testing.T, expected, actual, tolerance float64, message string) {
	t.Helper()
	if !AlmostEqual(expected, actual, tolerance) {
		t.Errorf("%s: expected %v, got %v (tolerance %v)", message, expected, actual, tolerance)
	}
}

// AssertSliceAlmostEqual checks if two slices are almost equal element-wise
func AssertSliceAlmostEqual(t *testing.T, expected, actual []float64, tolerance float64, message string) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Errorf("%s: length mismatch - expected %d, got %d", message, len(expected), len(actual))
		return
	}

	for i := range expected {
		if !AlmostEqual(expected[i], actual[i], tolerance) {
			t.Errorf("%s: element [%d] mismatch - expected %v, got %v",
				message, i, expected[i], actual[i])
			return
		}
	}
}

// AssertMatrixAlmostEqual checks if two matrices are almost equal element-wise
func AssertMatrixAlmostEqual(t *testing.T, expected, actual *types.Matrix, tolerance float64, message string) {
	t.Helper()

	if expected.Rows() != actual.Rows() || expected.Cols() != actual.Cols() {
		t.Errorf("%s: dimension mismatch - expected %dx%d, got %dx%d",
			message, expected.Rows(), expected.Cols(), actual.Rows(), actual.Cols())
		return
	}

	for i := 0; i < expected.Rows(); i++ {
		for j := 0; j < expected.Cols(); j++ {
			if !AlmostEqual(expected.At(i, j), actual.At(i, j), tolerance) {
				t.Errorf("%s: element [%d,%d] mismatch - expected %v, got %v",
					message, i, j, expected.At(i, j), actual.At(i, j))
				return
			}
		}
	}
}

// AssertNoError checks that an error is nil and fails the test if not
func AssertNoError(t *testing.T, err error, message string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", message, err)
	}
}

// AssertError checks that an error is not nil and fails the test if it is
func AssertError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error but got nil", message)
	}
}

// newStandardNormal returns a deterministic standard-normal sampler seeded
// from seed, independent of (and unrelated to) the Park-Miller generator
// the MCPT driver uses for permutation sampling: fixture generation has no
// reproducibility contract with the production RNG, only with itself.
func newStandardNormal(seed int64) *distuv.Normal {
	if seed == 0 {
		seed = 1
	}
	return &distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(uint64(seed))}
}

var syntheticColumnNames = []string{"x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8", "x9", "x10"}

func syntheticColumnName(j int) string {
	if j < len(syntheticColumnNames) {
		return syntheticColumnNames[j]
	}
	return syntheticColumnNames[0]
}

// GenerateIdentityRecoveryDataset builds a fixture with n i.i.d.
// standard-normal predictor columns and a target equal to a known linear
// combination of them (coeffs, one entry per predictor, zero for columns
// that should be irrelevant) plus Gaussian noise of standard deviation
// noiseStd. Deterministic given seed, so selector and engine tests built
// on it don't depend on the MCPT package's own random stream.
func GenerateIdentityRecoveryDataset(n, nPredictors int, coeffs []float64, noiseStd float64, seed int64) (*types.Matrix, []float64) {
	rng := newStandardNormal(seed)

	columns := make([][]float64, nPredictors)
	names := make([]string, nPredictors)
	for j := 0; j < nPredictors; j++ {
		col := make([]float64, n)
		for i := range col {
			col[i] = rng.Rand()
		}
		columns[j] = col
		names[j] = syntheticColumnName(j)
	}

	target := make([]float64, n)
	for i := 0; i < n; i++ {
		var y float64
		for j, c := range coeffs {
			if j < len(columns) {
				y += c * columns[j][i]
			}
		}
		y += rng.Rand() * noiseStd
		target[i] = y
	}

	return types.NewMatrixFromColumns(columns, names), target
}

// GenerateNullDataset builds a fixture where the target is pure noise,
// independent of every predictor column. Used to exercise the
// early-termination gate: a faithful search should stop after the first
// step (or never add a predictor at all).
func GenerateNullDataset(n, nPredictors int, noiseStd float64, seed int64) (*types.Matrix, []float64) {
	return GenerateIdentityRecoveryDataset(n, nPredictors, make([]float64, nPredictors), noiseStd, seed)
}
