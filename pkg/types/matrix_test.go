// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMatrixColumnMajorLayout(t *testing.T) {
	m := NewMatrix(3, 2)
	m.Set(0, 0, 1)
	m.Set(1, 0, 2)
	m.Set(2, 0, 3)
	m.Set(0, 1, 4)

	col := m.Column(0)
	if col[0] != 1 || col[1] != 2 || col[2] != 3 {
		t.Errorf("expected column 0 to be [1 2 3], got %v", col)
	}
	if m.At(0, 1) != 4 {
		t.Errorf("expected At(0,1)=4, got %v", m.At(0, 1))
	}

	// Column returns a view, not a copy.
	col[1] = 9
	if m.At(1, 0) != 9 {
		t.Error("expected Column to return a mutable view into the matrix")
	}
}

func TestMatrixColumnNames(t *testing.T) {
	m := NewMatrix(2, 3)
	m.SetColumnNames([]string{"a", "b", "c"})

	if m.ColumnName(1) != "b" {
		t.Errorf("expected column 1 to be named \"b\", got %q", m.ColumnName(1))
	}
	if got := m.FindColumnIndex("c"); got != 2 {
		t.Errorf("expected FindColumnIndex(\"c\")=2, got %d", got)
	}
	if got := m.FindColumnIndex("missing"); got != -1 {
		t.Errorf("expected -1 for a missing column, got %d", got)
	}

	unnamed := NewMatrix(2, 2)
	if unnamed.ColumnName(1) != "Col_1" {
		t.Errorf("expected a synthesized name for an unnamed column, got %q", unnamed.ColumnName(1))
	}
}

func TestStandardizeColumnPopulationMoments(t *testing.T) {
	m := NewMatrixFromColumns([][]float64{{2, 4, 6, 8}}, []string{"x"})
	m.StandardizeColumn(0)

	col := m.Column(0)
	var mean float64
	for _, v := range col {
		mean += v
	}
	mean /= float64(len(col))
	if !almostEqual(mean, 0, 1e-10) {
		t.Errorf("expected zero mean after standardization, got %v", mean)
	}

	var sumSq float64
	for _, v := range col {
		sumSq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sumSq / float64(len(col)))
	if !almostEqual(std, 1, 1e-10) {
		t.Errorf("expected unit population standard deviation, got %v", std)
	}
}

// Standardizing twice must equal standardizing once: the second pass sees
// a zero-mean, unit-variance column and leaves it unchanged (up to
// floating point rounding in the recomputed moments).
func TestStandardizeColumnIdempotent(t *testing.T) {
	m := NewMatrixFromColumns([][]float64{{1.5, -2.25, 3.75, 0.5, -1}}, []string{"x"})
	m.StandardizeColumn(0)
	once := make([]float64, m.Rows())
	copy(once, m.Column(0))

	m.StandardizeColumn(0)
	for i, v := range m.Column(0) {
		if !almostEqual(v, once[i], 1e-12) {
			t.Errorf("row %d: standardizing twice gave %v, once gave %v", i, v, once[i])
		}
	}
}

func TestStandardizeColumnZeroVariance(t *testing.T) {
	m := NewMatrixFromColumns([][]float64{{5, 5, 5}}, []string{"x"})
	m.StandardizeColumn(0)

	// A constant column centers to zero; the unit divisor stands in for the
	// zero standard deviation.
	for i, v := range m.Column(0) {
		if v != 0 {
			t.Errorf("row %d: expected 0 for a standardized constant column, got %v", i, v)
		}
	}
}

func TestRowSubsetPreservesColumnIndices(t *testing.T) {
	m := NewMatrixFromColumns([][]float64{{1, 2, 3, 4}, {10, 20, 30, 40}}, []string{"a", "b"})
	sub := m.RowSubset([]int{0, 2})

	if sub.Rows() != 2 || sub.Cols() != 2 {
		t.Fatalf("unexpected subset shape %dx%d", sub.Rows(), sub.Cols())
	}
	if sub.At(1, 0) != 3 || sub.At(1, 1) != 30 {
		t.Errorf("unexpected subset row: [%v %v]", sub.At(1, 0), sub.At(1, 1))
	}
	if sub.ColumnName(1) != "b" {
		t.Errorf("expected column names to carry over, got %q", sub.ColumnName(1))
	}
}
