// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/bitjungle/stepsel/pkg/types"
)

// solverKind names the linear-system solver LinearQuadratic picked for the
// most recent Fit.
type solverKind int

const (
	solverCholesky solverKind = iota
	solverQR
	solverSVD
)

// NTerms returns the number of columns in the linear-quadratic design
// matrix for a feature set of the given width: p linear terms, p square
// terms, p(p-1)/2 pairwise interaction terms, and one intercept.
func NTerms(p int) int {
	return p + p*(p+1)/2 + 1
}

// LinearQuadratic fits y ~ [x, x^2, x_i*x_j, 1] by ordinary least squares,
// picking among Cholesky (normal equations), Householder QR, and thin SVD
// depending on the design matrix's size and conditioning. It caches the
// full-data design matrix so repeated cross-validation folds over the same
// feature set only pay for a row-block extraction, not a full rebuild.
type LinearQuadratic struct {
	coefficients []float64

	cachedIndices []int
	cachedFull    *mat.Dense
	cacheValid    bool

	lastSolver solverKind
}

// NewLinearQuadratic returns an unfitted model.
func NewLinearQuadratic() *LinearQuadratic {
	return &LinearQuadratic{}
}

// buildDesignRows builds the design matrix for an explicit row subset.
func buildDesignRows(X *types.Matrix, indices []int, rows []int) *mat.Dense {
	npred := len(indices)
	nTerms := NTerms(npred)
	nRows := len(rows)
	A := mat.NewDense(nRows, nTerms, nil)

	for i, caseIdx := range rows {
		col := 0
		for _, fi := range indices {
			A.Set(i, col, X.At(caseIdx, fi))
			col++
		}
		for _, fi := range indices {
			v := X.At(caseIdx, fi)
			A.Set(i, col, v*v)
			col++
		}
		for p1 := 0; p1 < npred; p1++ {
			for p2 := p1 + 1; p2 < npred; p2++ {
				A.Set(i, col, X.At(caseIdx, indices[p1])*X.At(caseIdx, indices[p2]))
				col++
			}
		}
		A.Set(i, col, 1)
	}
	return A
}

// buildDesignFull builds the design matrix over every row of X, in row
// order, for caching.
func buildDesignFull(X *types.Matrix, indices []int) *mat.Dense {
	rows := make([]int, X.Rows())
	for i := range rows {
		rows[i] = i
	}
	return buildDesignRows(X, indices, rows)
}

// selectSolver picks a solver given the design matrix's shape and the
// conditioning of its normal-equations matrix.
func selectSolver(A *mat.Dense) (solverKind, *mat.SymDense) {
	rows, cols := A.Dims()
	if cols <= 50 && rows >= cols*2 {
		var ata mat.Dense
		ata.Mul(A.T(), A)
		sym := mat.NewSymDense(cols, nil)
		for i := 0; i < cols; i++ {
			for j := i; j < cols; j++ {
				sym.SetSym(i, j, ata.At(i, j))
			}
		}
		var chol mat.Cholesky
		if chol.Factorize(sym) {
			diagMin, diagMax := sym.At(0, 0), sym.At(0, 0)
			for i := 0; i < cols; i++ {
				d := sym.At(i, i)
				if d < diagMin {
					diagMin = d
				}
				if d > diagMax {
					diagMax = d
				}
			}
			if diagMin > 0 && diagMax/diagMin < 1e6 {
				return solverCholesky, sym
			}
		}
		return solverQR, nil
	}
	return solverSVD, nil
}

func solve(A *mat.Dense, b []float64) ([]float64, solverKind, bool) {
	rows, cols := A.Dims()
	if rows == 0 || cols == 0 {
		return nil, 0, false
	}

	bVec := mat.NewVecDense(rows, b)
	kind, sym := selectSolver(A)

	switch kind {
	case solverCholesky:
		var atb mat.VecDense
		atb.MulVec(A.T(), bVec)
		var chol mat.Cholesky
		if !chol.Factorize(sym) {
			kind = solverQR
			break
		}
		var x mat.VecDense
		if err := chol.SolveVecTo(&x, &atb); err != nil {
			kind = solverQR
			break
		}
		return denseToSlice(&x), solverCholesky, true
	}

	if kind == solverQR {
		var qr mat.QR
		qr.Factorize(A)
		var x mat.VecDense
		if err := qr.SolveVecTo(&x, false, bVec); err != nil {
			kind = solverSVD
		} else {
			return denseToSlice(&x), solverQR, true
		}
	}

	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDThin) {
		return nil, 0, false
	}
	rank := svd.Rank(1e-15)
	if rank == 0 {
		return nil, 0, false
	}
	var x mat.VecDense
	svd.SolveVecTo(&x, bVec, rank)
	return denseToSlice(&x), solverSVD, true
}

func denseToSlice(v *mat.VecDense) []float64 {
	n := v.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}

// Fit trains on every row of predictors EXCEPT [excludeStart, excludeStop),
// mirroring the cross-validation fold-exclusion contract. Passing
// excludeStart == excludeStop fits on the full data and refreshes the
// design-matrix cache.
func (m *LinearQuadratic) Fit(predictors *types.Matrix, target []float64, indices []int, excludeStart, excludeStop int) bool {
	nTotal := len(target)
	nTrain := nTotal - (excludeStop - excludeStart)
	if nTrain <= 0 {
		return false
	}

	var A *mat.Dense
	b := make([]float64, 0, nTrain)

	if excludeStop > excludeStart {
		// Fold fit: extract the two training row-blocks from the cached
		// full-data design matrix, materializing it first on a cache miss.
		if !m.cacheValid || !slices.Equal(m.cachedIndices, indices) {
			m.cachedFull = buildDesignFull(predictors, indices)
			m.cachedIndices = slices.Clone(indices)
			m.cacheValid = true
		}
		_, cols := m.cachedFull.Dims()
		A = mat.NewDense(nTrain, cols, nil)
		row := 0
		if excludeStart > 0 {
			sub := m.cachedFull.Slice(0, excludeStart, 0, cols)
			for i := 0; i < excludeStart; i++ {
				for c := 0; c < cols; c++ {
					A.Set(row, c, sub.At(i, c))
				}
				b = append(b, target[i])
				row++
			}
		}
		if excludeStop < nTotal {
			sub := m.cachedFull.Slice(excludeStop, nTotal, 0, cols)
			for i := 0; i < nTotal-excludeStop; i++ {
				for c := 0; c < cols; c++ {
					A.Set(row, c, sub.At(i, c))
				}
				b = append(b, target[excludeStop+i])
				row++
			}
		}
	} else {
		A = buildDesignFull(predictors, indices)
		m.cachedFull = A
		m.cachedIndices = slices.Clone(indices)
		m.cacheValid = true
		b = slices.Clone(target)
	}

	rows, cols := A.Dims()
	if rows == 0 || cols == 0 {
		return false
	}

	coeffs, kind, ok := solve(A, b)
	if !ok {
		return false
	}
	m.coefficients = coeffs
	m.lastSolver = kind
	return true
}

// Evaluate returns the sum of squared errors on rows [testStart, testStop).
func (m *LinearQuadratic) Evaluate(predictors *types.Matrix, target []float64, indices []int, testStart, testStop int) float64 {
	nTest := testStop - testStart
	if nTest <= 0 {
		return 0
	}

	var A *mat.Dense
	if m.cacheValid && slices.Equal(m.cachedIndices, indices) && testStart >= 0 && testStop <= len(target) {
		_, cols := m.cachedFull.Dims()
		sub := m.cachedFull.Slice(testStart, testStop, 0, cols)
		A = mat.NewDense(nTest, cols, nil)
		A.Copy(sub)
	} else {
		rows := make([]int, nTest)
		for i := range rows {
			rows[i] = testStart + i
		}
		A = buildDesignRows(predictors, indices, rows)
	}

	rows, cols := A.Dims()
	if rows == 0 || cols == 0 {
		return 0
	}

	coeffVec := mat.NewVecDense(len(m.coefficients), m.coefficients)
	var yHat mat.VecDense
	yHat.MulVec(A, coeffVec)

	var total float64
	for i := 0; i < nTest; i++ {
		diff := target[testStart+i] - yHat.AtVec(i)
		total += diff * diff
	}
	return total
}

// FinalCoefficients fits on the full dataset and returns the resulting
// coefficient vector in [linear..., square..., interaction..., intercept]
// order.
func (m *LinearQuadratic) FinalCoefficients(predictors *types.Matrix, target []float64, indices []int) []float64 {
	m.Fit(predictors, target, indices, 0, 0)
	return slices.Clone(m.coefficients)
}

// Coefficients returns the most recently fitted coefficient vector, or nil.
func (m *LinearQuadratic) Coefficients() []float64 {
	return slices.Clone(m.coefficients)
}

// Clone returns a fresh, unfitted model; the design-matrix cache is
// deliberately not copied since a clone is handed a different feature set.
func (m *LinearQuadratic) Clone() *LinearQuadratic {
	return &LinearQuadratic{}
}
