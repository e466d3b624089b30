package sim

import (
	"fmt"

	"github.com/pagesim/pagesim/sim/trace"
)

// Verdict designates which side of a comparison won.
type Verdict string

const (
	WinnerPolicyA Verdict = "policy-a"
	WinnerPolicyB Verdict = "policy-b"
	WinnerTie     Verdict = "tie"
)

// PolicyRun is one side of a comparison.
type PolicyRun struct {
	Policy string          `json:"policy"`
	Stats  trace.RunStats  `json:"stats"`
	Trace  *trace.RunTrace `json:"trace,omitempty"`
}

// ComparisonResult holds two runs over the same references and frame count
// and the verdict derived from them.
type ComparisonResult struct {
	FrameCount  int       `json:"frame_count"`
	A           PolicyRun `json:"a"`
	B           PolicyRun `json:"b"`
	Winner      Verdict   `json:"winner"`
	Difference  int       `json:"difference"`  // |faultsA - faultsB|
	Improvement float64   `json:"improvement"` // Difference / max(faultsA, faultsB) * 100
}

// WinnerName returns the winning policy's name, or "tie".
func (c *ComparisonResult) WinnerName() string {
	switch c.Winner {
	case WinnerPolicyA:
		return c.A.Policy
	case WinnerPolicyB:
		return c.B.Policy
	default:
		return string(WinnerTie)
	}
}

// DropTraces discards per-step traces, keeping stats.
func (c *ComparisonResult) DropTraces() {
	c.A.Trace = nil
	c.B.Trace = nil
}

// Compare runs FIFO (policy A) and LRU (policy B) over refs with frameCount frames.
func Compare(refs References, frameCount int) (*ComparisonResult, error) {
	return ComparePolicies(&FIFO{}, &LRU{}, refs, frameCount)
}

// ComparePolicies runs a and b over identical inputs, each against its own
// fresh FrameSet, and derives the verdict. The result is fully determined by
// its inputs.
func ComparePolicies(a, b EvictionPolicy, refs References, frameCount int) (*ComparisonResult, error) {
	if frameCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrameCount, frameCount)
	}
	runA, err := Run(a, refs, frameCount)
	if err != nil {
		return nil, fmt.Errorf("comparing %s: %w", a.Name(), err)
	}
	runB, err := Run(b, refs, frameCount)
	if err != nil {
		return nil, fmt.Errorf("comparing %s: %w", b.Name(), err)
	}
	return NewComparisonResult(runA, runB), nil
}

// NewComparisonResult derives the verdict from two completed runs.
func NewComparisonResult(runA, runB *RunResult) *ComparisonResult {
	res := &ComparisonResult{
		FrameCount: runA.FrameCount,
		A:          PolicyRun{Policy: runA.Policy, Stats: runA.Stats, Trace: runA.Trace},
		B:          PolicyRun{Policy: runB.Policy, Stats: runB.Stats, Trace: runB.Trace},
		Winner:     WinnerTie,
	}
	fa, fb := runA.Stats.Faults, runB.Stats.Faults
	switch {
	case fa < fb:
		res.Winner = WinnerPolicyA
		res.Difference = fb - fa
	case fb < fa:
		res.Winner = WinnerPolicyB
		res.Difference = fa - fb
	}
	if res.Difference > 0 {
		res.Improvement = float64(res.Difference) / float64(max(fa, fb)) * 100
	}
	return res
}
