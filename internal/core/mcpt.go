// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package core

import (
	"runtime"
	"sync"

	"github.com/bitjungle/stepsel/pkg/types"
)

// Park-Miller minimal-standard LCG constants, chosen to reproduce the
// legacy fast_unif generator bit-for-bit.
const (
	lcgIA = 16807
	lcgIM = 2147483647
	lcgIQ = 127773
	lcgIR = 2836
)

// lcgState is one Park-Miller generator instance.
type lcgState struct {
	seed int64
}

// newLCG seeds a generator the way every replication does: irand = 17*rep+11,
// then two warm-up draws before any value is consumed.
func newLCG(rep int) *lcgState {
	g := &lcgState{seed: int64(17*rep + 11)}
	g.next()
	g.next()
	return g
}

// next returns the next uniform double in [0, 1).
func (g *lcgState) next() float64 {
	k := g.seed / lcgIQ
	g.seed = lcgIA*(g.seed-k*lcgIQ) - lcgIR*k
	if g.seed < 0 {
		g.seed += lcgIM
	}
	return float64(g.seed) / float64(lcgIM)
}

// permuteComplete returns a Fisher-Yates shuffle of y driven by g.
func permuteComplete(y []float64, g *lcgState) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	for i := len(out) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		if j > i {
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// permuteCyclic returns y rotated by a random offset drawn from g.
func permuteCyclic(y []float64, g *lcgState) []float64 {
	n := len(y)
	out := make([]float64, n)
	if n <= 1 {
		copy(out, y)
		return out
	}
	offset := int(g.next() * float64(n))
	if offset >= n {
		offset = n - 1
	}
	for i := 0; i < n; i++ {
		out[i] = y[(i+offset)%n]
	}
	return out
}

// MCPTResult reports a Monte-Carlo permutation test outcome.
type MCPTResult struct {
	ModelPValue       float64
	ChangePValue      float64
	ModelCount        int
	ChangeCount       int
	TotalReplications int
}

// StepSearchFunc re-runs one beam-expansion step's candidate search against
// a (permuted) target and reports the winning candidate's raw score. ok is
// false when the step produced no valid candidate at all.
type StepSearchFunc func(permutedTarget []float64) (score float64, ok bool)

// MCPT drives a Monte-Carlo permutation test of a single beam-expansion
// step against the null hypothesis that the target is unrelated to the
// predictors. It owns only the permutation/LCG/replication machinery;
// the actual "what does this step's best candidate score" question is
// answered by a caller-supplied StepSearchFunc; this is what the spec
// calls "re-executing the step search" under each permutation, and it's
// also what makes replications embarrassingly parallel (each replication
// gets its own permuted target and its own isolated search state).
type MCPT struct {
	replications int
	permType     types.PermutationType
}

// NewMCPT returns a driver running replications-1 permutations (replication
// 0 is always the unpermuted baseline, supplied by the caller).
func NewMCPT(replications int, permType types.PermutationType) *MCPT {
	return &MCPT{replications: replications, permType: permType}
}

// ComputeSignificance runs the permutation replications and returns the
// model and change p-values for observedPerformance relative to
// priorPerformance. Both performance values are clamped to zero before
// comparison, matching the conservative-test convention used throughout
// this package. Replications run concurrently across a worker pool sized
// to GOMAXPROCS; search is expected to evaluate its candidates serially,
// since the nesting budget is spent on the replication layer here.
func (m *MCPT) ComputeSignificance(target []float64, observedPerformance, priorPerformance float64, search StepSearchFunc, cancel types.CancelFunc) MCPTResult {
	clampedObserved := clampZero(observedPerformance)
	clampedPrior := clampZero(priorPerformance)
	observedChange := clampedObserved - clampedPrior

	result := MCPTResult{
		ModelCount:        1,
		ChangeCount:       1,
		TotalReplications: m.replications,
	}
	if m.replications <= 1 {
		result.ModelPValue = float64(result.ModelCount) / float64(m.replications)
		result.ChangePValue = float64(result.ChangeCount) / float64(m.replications)
		return result
	}

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > m.replications-1 {
		nWorkers = m.replications - 1
	}
	if nWorkers < 1 {
		nWorkers = 1
	}

	jobs := make(chan int, nWorkers)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for irep := range jobs {
				if cancel != nil && cancel() {
					continue
				}
				g := newLCG(irep)
				var permuted []float64
				if m.permType == types.PermutationCyclic {
					permuted = permuteCyclic(target, g)
				} else {
					permuted = permuteComplete(target, g)
				}

				performance, ok := search(permuted)
				if !ok {
					continue
				}
				performance = clampZero(performance)

				mu.Lock()
				if performance >= clampedObserved {
					result.ModelCount++
				}
				if performance-clampedPrior >= observedChange {
					result.ChangeCount++
				}
				mu.Unlock()
			}
		}()
	}

	for irep := 1; irep < m.replications; irep++ {
		jobs <- irep
	}
	close(jobs)
	wg.Wait()

	result.ModelPValue = float64(result.ModelCount) / float64(m.replications)
	result.ChangePValue = float64(result.ChangeCount) / float64(m.replications)
	return result
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
