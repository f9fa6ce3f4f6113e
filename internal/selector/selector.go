// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package selector implements the beam-search stepwise feature selector:
// it grows a retained top-K set of feature combinations one variable at a
// time, scoring every candidate by cross-validation and attaching
// Monte-Carlo permutation-test significance to each step's winner.
package selector

import (
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bitjungle/stepsel/internal/core"
	"github.com/bitjungle/stepsel/internal/logging"
	"github.com/bitjungle/stepsel/pkg/types"
)

const (
	reasonNoVariablesFound = "No variables found"
	reasonPerformanceDrop  = "Adding a new variable caused performance degradation"
	reasonCancelled        = "Analysis cancelled by user"
)

// Selector runs the beam search described in package selector's doc
// comment. A Selector is read-only once constructed and safe to reuse
// across concurrent Select calls on different data.
type Selector struct {
	config       types.SelectionConfig
	modelFactory func() types.StepwiseModel
}

// New returns a Selector. modelFactory must return a fresh, unfitted
// instance of the configured model kind each call; the selector clones
// widely (one instance per candidate-evaluation worker).
func New(config types.SelectionConfig, modelFactory func() types.StepwiseModel) *Selector {
	if config.MaxPredictors <= 0 {
		config.MaxPredictors = 1000
	}
	return &Selector{config: config, modelFactory: modelFactory}
}

func combinationKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// sortCandidates orders candidates by CVScore descending, breaking exact
// ties by the lexicographic order of their index vectors.
func sortCandidates(candidates []types.FeatureSet) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CVScore != candidates[j].CVScore {
			return candidates[i].CVScore > candidates[j].CVScore
		}
		return slices.Compare(candidates[i].Indices, candidates[j].Indices) < 0
	})
}

// evaluateTasks scores every task (a candidate feature-index vector)
// against target, dropping any whose score comes back negative (either a
// genuine poor fit or the model's own "fit failed" sentinel — the spec
// treats both as "not a candidate"). When parallel is true, tasks run
// across a worker pool sized to GOMAXPROCS, each owning a cloned model;
// when false (the MCPT-replication case), tasks run serially on a single
// model instance so nested parallelism never runs two layers deep. Workers
// poll cancel at task boundaries: once it reports true, remaining tasks
// are abandoned without being scored.
func (s *Selector) evaluateTasks(predictors *types.Matrix, target []float64, tasks [][]int, parallel bool, cancel types.CancelFunc) []types.FeatureSet {
	results := make([]types.FeatureSet, 0, len(tasks))

	if !parallel || len(tasks) <= 1 {
		model := s.modelFactory()
		for _, task := range tasks {
			if cancel != nil && cancel() {
				break
			}
			score, err := model.Score(predictors, target, task)
			if err != nil || score < 0 {
				continue
			}
			results = append(results, types.FeatureSet{Indices: task, CVScore: score})
		}
		return results
	}

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > len(tasks) {
		nWorkers = len(tasks)
	}
	jobs := make(chan int, nWorkers)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model := s.modelFactory()
			for idx := range jobs {
				if cancel != nil && cancel() {
					continue
				}
				task := tasks[idx]
				score, err := model.Score(predictors, target, task)
				if err != nil || score < 0 {
					continue
				}
				mu.Lock()
				results = append(results, types.FeatureSet{Indices: task, CVScore: score})
				mu.Unlock()
			}
		}()
	}
	for i := range tasks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// firstVariableTasks proposes every untested single-feature set.
func firstVariableTasks(ncand int, tested map[string]struct{}) [][]int {
	tasks := make([][]int, 0, ncand)
	for c := 0; c < ncand; c++ {
		single := []int{c}
		if _, seen := tested[combinationKey(single)]; !seen {
			tasks = append(tasks, single)
		}
	}
	return tasks
}

// nextVariableTasks proposes every untested superset reachable by adding
// one unused feature to one member of currentBest.
func nextVariableTasks(ncand int, currentBest []types.FeatureSet, tested map[string]struct{}) [][]int {
	tasks := make([][]int, 0)
	seenThisStep := make(map[string]struct{})

	for _, base := range currentBest {
		for c := 0; c < ncand; c++ {
			if slices.Contains(base.Indices, c) {
				continue
			}
			next := make([]int, len(base.Indices)+1)
			copy(next, base.Indices)
			next[len(base.Indices)] = c
			slices.Sort(next)

			key := combinationKey(next)
			if _, seen := tested[key]; seen {
				continue
			}
			if _, seen := seenThisStep[key]; seen {
				continue
			}
			seenThisStep[key] = struct{}{}
			tasks = append(tasks, next)
		}
	}
	return tasks
}

// Select runs the beam search to completion (or early termination) and
// returns the shaped results. Cancellation is polled from the config's
// CancelCallback at step and task boundaries.
func (s *Selector) Select(predictors *types.Matrix, target []float64) types.SelectionResults {
	start := time.Now()
	results := types.SelectionResults{}
	cancel := s.config.CancelCallback

	if predictors.Cols() == 0 || predictors.Rows() == 0 {
		results.TerminationReason = "No data provided"
		results.TerminatedEarly = true
		return results
	}

	ncand := predictors.Cols()
	tested := make(map[string]struct{})
	var currentBest []types.FeatureSet
	priorStepPerformance := -1e60

	mcpt := core.NewMCPT(s.config.MCPTReplications, s.config.MCPTType)

	logging.Log("")
	logging.Log("Stepwise inclusion of variables...")
	logging.Log("")
	if s.config.MCPTReplications > 1 {
		logging.Log("R-square  MOD pval  CHG pval  Predictors...")
	} else {
		logging.Log("R-square  Predictors...")
	}

	for stepNo := 0; stepNo < s.config.MaxPredictors; stepNo++ {
		if cancel != nil && cancel() {
			results.TerminationReason = reasonCancelled
			results.TerminatedEarly = true
			break
		}

		stepStart := time.Now()

		var tasks [][]int
		if stepNo == 0 {
			tasks = firstVariableTasks(ncand, tested)
		} else {
			tasks = nextVariableTasks(ncand, currentBest, tested)
		}

		candidates := s.evaluateTasks(predictors, target, tasks, true, cancel)
		for _, task := range tasks {
			tested[combinationKey(task)] = struct{}{}
		}
		if cancel != nil && cancel() {
			results.TerminationReason = reasonCancelled
			results.TerminatedEarly = true
			break
		}
		sortCandidates(candidates)
		if len(candidates) > s.config.NKept {
			candidates = candidates[:s.config.NKept]
		}

		if len(candidates) == 0 {
			results.TerminationReason = reasonNoVariablesFound
			results.TerminatedEarly = true
			break
		}

		best := candidates[0]
		newCrit := clampZero(best.CVScore)

		if s.config.EarlyTermination && newCrit <= clampZero(priorStepPerformance) && stepNo >= s.config.MinPredictors {
			results.TerminationReason = reasonPerformanceDrop
			results.TerminatedEarly = true
			break
		}

		baseForStep := currentBest
		searchFn := func(permuted []float64) (float64, bool) {
			var repTasks [][]int
			if stepNo == 0 {
				repTasks = firstVariableTasks(ncand, map[string]struct{}{})
			} else {
				repTasks = nextVariableTasks(ncand, baseForStep, map[string]struct{}{})
			}
			repCandidates := s.evaluateTasks(predictors, permuted, repTasks, false, cancel)
			if len(repCandidates) == 0 {
				return 0, false
			}
			sortCandidates(repCandidates)
			return repCandidates[0].CVScore, true
		}

		mcptResult := mcpt.ComputeSignificance(target, best.CVScore, priorStepPerformance, searchFn, cancel)
		if stepNo == 0 {
			mcptResult.ChangeCount = mcptResult.ModelCount
			mcptResult.ChangePValue = mcptResult.ModelPValue
		}

		currentBest = candidates
		priorStepPerformance = best.CVScore

		stepElapsed := time.Since(stepStart)
		step := types.SelectionStep{
			Beam:          candidates,
			BestScore:     best.CVScore,
			ModelPValue:   mcptResult.ModelPValue,
			ChangePValue:  mcptResult.ChangePValue,
			StepElapsedMs: float64(stepElapsed.Microseconds()) / 1000.0,
		}
		results.Steps = append(results.Steps, step)

		logStepLine(s.config.MCPTReplications, newCrit, mcptResult, predictors, best)
	}

	if len(currentBest) > 0 {
		results.FinalFeatureSet = currentBest[0]
	} else if len(results.Steps) > 0 {
		results.FinalFeatureSet = results.Steps[len(results.Steps)-1].Best()
	}

	results.TotalElapsedMs = float64(time.Since(start).Microseconds()) / 1000.0

	if results.TerminatedEarly {
		logging.Log("STEPWISE terminated early: " + results.TerminationReason)
	} else {
		logging.Log("STEPWISE successfully completed")
	}
	logging.Log("")

	return results
}

func logStepLine(replications int, crit float64, mcptResult core.MCPTResult, predictors *types.Matrix, best types.FeatureSet) {
	var b strings.Builder
	if replications > 1 {
		b.WriteString(strconv.FormatFloat(crit, 'f', 4, 64))
		b.WriteString("    ")
		b.WriteString(strconv.FormatFloat(mcptResult.ModelPValue, 'f', 3, 64))
		b.WriteString("     ")
		b.WriteString(strconv.FormatFloat(mcptResult.ChangePValue, 'f', 3, 64))
		b.WriteString("  ")
	} else {
		b.WriteString(strconv.FormatFloat(crit, 'f', 4, 64))
		b.WriteString(" ")
	}
	for _, idx := range best.Indices {
		b.WriteString(" ")
		b.WriteString(predictors.ColumnName(idx))
	}
	logging.Log(b.String())
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
