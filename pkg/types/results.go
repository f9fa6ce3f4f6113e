// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

// FeatureSet is a canonical (strictly ascending, duplicate-free) predictor
// index set with its cross-validated score and MCPT p-values.
type FeatureSet struct {
	Indices      []int
	CVScore      float64
	ModelPValue  float64
	ChangePValue float64
}

// Clone returns a deep copy so callers can safely mutate the result.
func (f FeatureSet) Clone() FeatureSet {
	idx := make([]int, len(f.Indices))
	copy(idx, f.Indices)
	return FeatureSet{
		Indices:      idx,
		CVScore:      f.CVScore,
		ModelPValue:  f.ModelPValue,
		ChangePValue: f.ChangePValue,
	}
}

// SelectionStep is one beam expansion: the surviving top-K feature sets,
// the winning score/p-values, and the step's wall-time.
type SelectionStep struct {
	Beam          []FeatureSet
	BestScore     float64
	ModelPValue   float64
	ChangePValue  float64
	StepElapsedMs float64
}

// Best returns the step's winning feature set (the head of the beam).
func (s SelectionStep) Best() FeatureSet {
	if len(s.Beam) == 0 {
		return FeatureSet{}
	}
	return s.Beam[0]
}

// SelectionResults is the whole-run output of the stepwise selector.
type SelectionResults struct {
	Steps             []SelectionStep
	FinalFeatureSet   FeatureSet
	TerminatedEarly   bool
	TerminationReason string
	TotalElapsedMs    float64
}
