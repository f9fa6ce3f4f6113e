// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Matrix is a dense, column-major matrix of 64-bit floats with named
// columns. Column-major storage keeps a single predictor's values
// contiguous, which is the access pattern the selector and the
// linear-quadratic model both hit hardest (one column at a time, across
// every candidate feature set).
type Matrix struct {
	data       []float64 // len == rows*cols, column j occupies data[j*rows : (j+1)*rows]
	rows, cols int
	columnNames []string
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		data:        make([]float64, rows*cols),
		rows:        rows,
		cols:        cols,
		columnNames: make([]string, cols),
	}
}

// NewMatrixFromColumns builds a matrix by copying the given columns
// (each of length rows) in order.
func NewMatrixFromColumns(columns [][]float64, names []string) *Matrix {
	cols := len(columns)
	rows := 0
	if cols > 0 {
		rows = len(columns[0])
	}
	m := NewMatrix(rows, cols)
	for j, col := range columns {
		copy(m.data[j*rows:(j+1)*rows], col)
	}
	if names != nil {
		copy(m.columnNames, names)
	}
	return m
}

// RowSubset returns a new matrix containing only the given rows, in the
// given order, across every column. Column indices are unchanged, so a
// feature-index vector computed against the parent matrix remains valid
// against the result.
func (m *Matrix) RowSubset(rows []int) *Matrix {
	sub := NewMatrix(len(rows), m.cols)
	copy(sub.columnNames, m.columnNames)
	for j := 0; j < m.cols; j++ {
		srcCol := m.Column(j)
		dstCol := sub.Column(j)
		for i, r := range rows {
			dstCol[i] = srcCol[r]
		}
	}
	return sub
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) float64 {
	return m.data[col*m.rows+row]
}

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v float64) {
	m.data[col*m.rows+row] = v
}

// Column returns a contiguous, mutable view of column col (no copy).
// Mutating the returned slice mutates the matrix.
func (m *Matrix) Column(col int) []float64 {
	return m.data[col*m.rows : (col+1)*m.rows]
}

// SetColumnNames assigns the ordered column-name vector. Panics if the
// length does not match Cols(), mirroring the original's invalid_argument.
func (m *Matrix) SetColumnNames(names []string) {
	if len(names) != m.cols {
		panic("types: column name count must match column count")
	}
	copy(m.columnNames, names)
}

// ColumnNames returns the ordered column-name vector.
func (m *Matrix) ColumnNames() []string {
	return m.columnNames
}

// ColumnName returns the name of col, or a synthesized "Col_N" if unset.
func (m *Matrix) ColumnName(col int) string {
	if col < len(m.columnNames) && m.columnNames[col] != "" {
		return m.columnNames[col]
	}
	return "Col_" + strconv.Itoa(col)
}

// FindColumnIndex returns the index of the named column, or -1.
func (m *Matrix) FindColumnIndex(name string) int {
	for i, n := range m.columnNames {
		if n == name {
			return i
		}
	}
	return -1
}

// StandardizeColumn rewrites column col in place to zero population mean
// and unit population standard deviation (divisor n, not n-1). A
// zero-variance column is treated as std-dev 1 to avoid division by zero.
func (m *Matrix) StandardizeColumn(col int) {
	data := m.Column(col)
	mean := stat.Mean(data, nil)

	var sumSq float64
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(data)))
	if std == 0 {
		std = 1
	}
	for i, v := range data {
		data[i] = (v - mean) / std
	}
}
