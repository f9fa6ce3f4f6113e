// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"github.com/bitjungle/stepsel/pkg/types"
)

// gbtTreeNode is one node of a shallow CART regression tree: either a leaf
// carrying a constant predicted residual, or a split on one feature.
type gbtTreeNode struct {
	isLeaf   bool
	value    float64
	feature  int // index into the active feature-set slice, not the dataset
	threshold float64
	left, right *gbtTreeNode
	gain     float64
}

func (n *gbtTreeNode) predict(row []float64) float64 {
	if n.isLeaf {
		return n.value
	}
	if row[n.feature] <= n.threshold {
		return n.left.predict(row)
	}
	return n.right.predict(row)
}

// gbtTree is a single boosting round's regression tree, grown greedily by
// exhaustive split search over every feature and every candidate
// threshold (the midpoints between consecutive sorted values), minimizing
// the sum of squared residuals in each resulting child.
type gbtTree struct {
	root       *gbtTreeNode
	nFeatures  int
	gainByFeat []float64
}

func growTree(rows [][]float64, residuals []float64, maxDepth int, minLeafSize int) *gbtTree {
	nFeatures := 0
	if len(rows) > 0 {
		nFeatures = len(rows[0])
	}
	t := &gbtTree{nFeatures: nFeatures, gainByFeat: make([]float64, nFeatures)}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.growNode(rows, residuals, idx, maxDepth, minLeafSize)
	return t
}

func meanOf(residuals []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += residuals[i]
	}
	return sum / float64(len(idx))
}

func sse(residuals []float64, idx []int, mean float64) float64 {
	var s float64
	for _, i := range idx {
		d := residuals[i] - mean
		s += d * d
	}
	return s
}

func (t *gbtTree) growNode(rows [][]float64, residuals []float64, idx []int, depth, minLeafSize int) *gbtTreeNode {
	parentMean := meanOf(residuals, idx)
	if depth <= 0 || len(idx) < 2*minLeafSize {
		return &gbtTreeNode{isLeaf: true, value: parentMean}
	}

	parentSSE := sse(residuals, idx, parentMean)
	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	var bestLeft, bestRight []int

	for f := 0; f < t.nFeatures; f++ {
		sorted := append([]int(nil), idx...)
		sortByFeature(sorted, rows, f)

		for cut := minLeafSize; cut <= len(sorted)-minLeafSize; cut++ {
			left := sorted[:cut]
			right := sorted[cut:]
			leftVal := rows[left[len(left)-1]][f]
			rightVal := rows[right[0]][f]
			if leftVal == rightVal {
				continue
			}
			threshold := (leftVal + rightVal) / 2

			leftMean := meanOf(residuals, left)
			rightMean := meanOf(residuals, right)
			gain := parentSSE - sse(residuals, left, leftMean) - sse(residuals, right, rightMean)
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = threshold
				bestLeft = left
				bestRight = right
			}
		}
	}

	if bestFeature < 0 {
		return &gbtTreeNode{isLeaf: true, value: parentMean}
	}

	t.gainByFeat[bestFeature] += bestGain
	return &gbtTreeNode{
		isLeaf:    false,
		feature:   bestFeature,
		threshold: bestThreshold,
		gain:      bestGain,
		left:      t.growNode(rows, residuals, bestLeft, depth-1, minLeafSize),
		right:     t.growNode(rows, residuals, bestRight, depth-1, minLeafSize),
	}
}

func sortByFeature(idx []int, rows [][]float64, feature int) {
	// insertion sort: trees stay shallow and candidate row counts per
	// fold are small, so O(n^2) here never dominates the boosting cost.
	for i := 1; i < len(idx); i++ {
		v := idx[i]
		vf := rows[v][feature]
		j := i - 1
		for j >= 0 && rows[idx[j]][feature] > vf {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// GradientBoostedTrees is a small boosted ensemble of shallow CART
// regression trees, fitted by gradient boosting with squared-error loss
// (each tree fits the current residual).
type GradientBoostedTrees struct {
	nTrees       int
	maxDepth     int
	learningRate float64
	minLeafSize  int

	trees    []*gbtTree
	basePred float64
	fitted   bool
}

// NewGradientBoostedTrees returns an unfitted model with the given
// hyperparameters.
func NewGradientBoostedTrees(nTrees, maxDepth int, learningRate float64) *GradientBoostedTrees {
	return &GradientBoostedTrees{
		nTrees:       nTrees,
		maxDepth:     maxDepth,
		learningRate: learningRate,
		minLeafSize:  3,
	}
}

func extractRows(predictors *types.Matrix, indices []int) [][]float64 {
	n := predictors.Rows()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(indices))
		for j, fi := range indices {
			row[j] = predictors.At(i, fi)
		}
		rows[i] = row
	}
	return rows
}

// Fit grows nTrees boosting rounds against target, using only the columns
// named by indices.
func (g *GradientBoostedTrees) Fit(predictors *types.Matrix, target []float64, indices []int) error {
	if len(indices) == 0 {
		return types.NewValidationError("gradient-boosted-trees requires at least one feature", nil)
	}
	rows := extractRows(predictors, indices)

	var sum float64
	for _, v := range target {
		sum += v
	}
	base := sum / float64(len(target))

	residuals := make([]float64, len(target))
	for i, v := range target {
		residuals[i] = v - base
	}

	g.trees = make([]*gbtTree, 0, g.nTrees)
	g.basePred = base

	for t := 0; t < g.nTrees; t++ {
		tree := growTree(rows, residuals, g.maxDepth, g.minLeafSize)
		g.trees = append(g.trees, tree)
		for i, row := range rows {
			residuals[i] -= g.learningRate * tree.root.predict(row)
		}
	}
	g.fitted = true
	return nil
}

// Predict returns one prediction per row, using only the columns named by
// indices (which must match the indices used to Fit).
func (g *GradientBoostedTrees) Predict(predictors *types.Matrix, indices []int) ([]float64, error) {
	if !g.fitted {
		return nil, types.NewNotFittedError("gradient-boosted-trees model has not been fitted")
	}
	rows := extractRows(predictors, indices)
	out := make([]float64, len(rows))
	for i, row := range rows {
		pred := g.basePred
		for _, tree := range g.trees {
			pred += g.learningRate * tree.root.predict(row)
		}
		out[i] = pred
	}
	return out, nil
}

// FeatureImportances returns total split-gain attributed to each feature
// (in the order of the indices passed to Fit), summed across every tree in
// the ensemble.
func (g *GradientBoostedTrees) FeatureImportances() []float64 {
	if len(g.trees) == 0 {
		return nil
	}
	totals := make([]float64, g.trees[0].nFeatures)
	for _, tree := range g.trees {
		for i, v := range tree.gainByFeat {
			totals[i] += v
		}
	}
	return totals
}
