// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package types

// RunResult is the engine façade's return value: everything a caller
// needs to report on one completed (or early-terminated) selection run.
type RunResult struct {
	// AnalysisID uniquely identifies this run, stamped by the engine façade.
	AnalysisID string

	SelectedFeatureIndices []int
	SelectedFeatureNames   []string
	TargetName             string

	FinalRSquare float64

	ModelPValues  []float64
	ChangePValues []float64
	StepRSquares  []float64
	StepTimingMs  []float64

	TerminatedEarly   bool
	TerminationReason string

	TotalCasesLoaded int
	TotalSteps       int

	FinalCoefficients []float64

	TotalElapsedMs float64
}
