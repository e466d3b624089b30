package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesim/pagesim/sim/internal/testutil"
	"github.com/pagesim/pagesim/sim/trace"
)

func TestBatchRunner_BuiltinScenarios_Summary(t *testing.T) {
	// GIVEN the built-in scenario set
	// WHEN run sequentially
	report, err := NewBatchRunner().Run(BuiltinScenarios())
	require.NoError(t, err)

	// THEN every (scenario, frame count) pair is compared in declaration order
	require.Len(t, report.Results, 14)
	assert.Equal(t, "Basic Test Case", report.Results[0].Scenario)
	assert.Equal(t, 3, report.Results[0].FrameCount)
	assert.Equal(t, "Locality of Reference", report.Results[13].Scenario)
	for i, r := range report.Results {
		assert.Equal(t, i, r.Index)
	}

	s := report.Summary
	assert.Equal(t, "fifo", s.PolicyA)
	assert.Equal(t, "lru", s.PolicyB)
	assert.Equal(t, 14, s.TotalComparisons)
	assert.Equal(t, 1, s.WinsA)
	assert.Equal(t, 4, s.WinsB)
	assert.Equal(t, 9, s.Ties)
	testutil.AssertFloat64Equal(t, "MeanFaultsA", 152.0/14.0, s.MeanFaultsA, 1e-12)
	testutil.AssertFloat64Equal(t, "MeanFaultsB", 145.0/14.0, s.MeanFaultsB, 1e-12)

	// THEN best/worst pick the first seen among equal fault counts
	require.NotNil(t, s.BestA)
	assert.Equal(t, "Repeated Pattern - 3 frames", s.BestA.Label())
	assert.Equal(t, "Repeated Pattern - 3 frames", s.BestB.Label())
	assert.Equal(t, "Random Access Pattern - 3 frames", s.WorstA.Label())
	assert.Equal(t, "Random Access Pattern - 3 frames", s.WorstB.Label())
}

func TestBatchRunner_MeanHitRatios(t *testing.T) {
	scenarios := []Scenario{
		{Name: "a", References: IntReferences(1, 1, 1, 1), FrameCounts: []int{1}},     // 3/4 hits
		{Name: "b", References: IntReferences(1, 2, 1, 2), FrameCounts: []int{1, 2}}, // 0/4, 2/4
	}
	report, err := NewBatchRunner().Run(scenarios)
	require.NoError(t, err)

	want := (0.75 + 0.0 + 0.5) / 3
	testutil.AssertFloat64Equal(t, "MeanHitRatioA", want, report.Summary.MeanHitRatioA, 1e-12)
	testutil.AssertFloat64Equal(t, "MeanHitRatioB", want, report.Summary.MeanHitRatioB, 1e-12)
}

func TestBatchRunner_ParallelMatchesSequential(t *testing.T) {
	// GIVEN a batch with many pairs
	var scenarios []Scenario
	for seed := uint64(1); seed <= 8; seed++ {
		scenarios = append(scenarios, Scenario{
			Name:        "random-" + string(rune('a'+seed)),
			References:  randomRefs(seed, 80, 9),
			FrameCounts: []int{1, 2, 3, 4, 6},
		})
	}

	// WHEN run sequentially and with workers
	seq, err := NewBatchRunner().Run(scenarios)
	require.NoError(t, err)
	par := NewBatchRunner()
	par.Workers = 4
	got, err := par.Run(scenarios)
	require.NoError(t, err)

	// THEN the reports are identical, best/worst tie-breaks included
	assert.Equal(t, seq.Results, got.Results)
	assert.Equal(t, seq.Summary, got.Summary)
	assert.Equal(t, seq.Summary.BestA.Index, got.Summary.BestA.Index)
	assert.Equal(t, seq.Summary.WorstB.Index, got.Summary.WorstB.Index)
}

func TestBatchRunner_TraceLevelNone_DropsTraces(t *testing.T) {
	br := NewBatchRunner()
	br.TraceLevel = trace.TraceLevelNone

	report, err := br.Run(QuickScenarios())
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.Nil(t, r.Comparison.A.Trace)
		assert.Nil(t, r.Comparison.B.Trace)
		assert.Positive(t, r.Comparison.A.Stats.Faults)
	}
}

func TestBatchRunner_InvalidFrameCount_FailsWholeBatch(t *testing.T) {
	scenarios := []Scenario{{Name: "bad", References: IntReferences(1, 2), FrameCounts: []int{2, 0}}}

	for _, workers := range []int{1, 3} {
		br := NewBatchRunner()
		br.Workers = workers
		report, err := br.Run(scenarios)
		assert.ErrorIs(t, err, ErrInvalidFrameCount)
		assert.Nil(t, report)
	}
}

func TestBatchRunner_EmptyBatch(t *testing.T) {
	report, err := NewBatchRunner().Run(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Summary.TotalComparisons)
	assert.Nil(t, report.Summary.BestA)
	assert.Equal(t, 0.0, report.Summary.MeanHitRatioA)
}

func TestBatchRunner_EmptyReferenceScenario_CountsAsTie(t *testing.T) {
	report, err := NewBatchRunner().Run([]Scenario{{Name: "empty", FrameCounts: []int{3}}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 1, report.Summary.Ties)
}

func TestSummarizeBatch_FirstSeenWinsTies(t *testing.T) {
	// GIVEN three results whose fault counts tie for best and worst
	mk := func(i, fa, fb int) ScenarioResult {
		runA := &RunResult{Policy: "fifo", FrameCount: 3, Stats: trace.RunStats{References: 10, Faults: fa, Hits: 10 - fa}}
		runB := &RunResult{Policy: "lru", FrameCount: 3, Stats: trace.RunStats{References: 10, Faults: fb, Hits: 10 - fb}}
		return ScenarioResult{Index: i, Scenario: "s", FrameCount: 3, Comparison: NewComparisonResult(runA, runB)}
	}
	results := []ScenarioResult{mk(0, 5, 7), mk(1, 5, 7), mk(2, 8, 4)}

	// WHEN summarized
	s := SummarizeBatch("fifo", "lru", results)

	// THEN the first encountered result wins equal best/worst
	assert.Equal(t, 0, s.BestA.Index)
	assert.Equal(t, 2, s.WorstA.Index)
	assert.Equal(t, 2, s.BestB.Index)
	assert.Equal(t, 0, s.WorstB.Index)
	assert.Equal(t, 2, s.WinsA)
	assert.Equal(t, 1, s.WinsB)
	assert.Equal(t, 0, s.Ties)
}
