package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pagesim/pagesim/sim/trace"
)

// Scenario is a named reference sequence swept over several frame counts.
type Scenario struct {
	Name        string
	References  References
	FrameCounts []int
}

// ScenarioResult is the comparison of one (scenario, frame count) pair.
type ScenarioResult struct {
	Index      int               `json:"index"` // position in declaration order
	Scenario   string            `json:"scenario"`
	FrameCount int               `json:"frame_count"`
	Comparison *ComparisonResult `json:"comparison"`
}

// Label returns "<scenario> - <n> frames".
func (r *ScenarioResult) Label() string {
	return fmt.Sprintf("%s - %d frames", r.Scenario, r.FrameCount)
}

// ScenarioSummary aggregates a batch of comparisons.
type ScenarioSummary struct {
	PolicyA          string  `json:"policy_a"`
	PolicyB          string  `json:"policy_b"`
	TotalComparisons int     `json:"total_comparisons"`
	WinsA            int     `json:"wins_a"`
	WinsB            int     `json:"wins_b"`
	Ties             int     `json:"ties"`
	MeanFaultsA      float64 `json:"mean_faults_a"`
	MeanFaultsB      float64 `json:"mean_faults_b"`
	MeanHitRatioA    float64 `json:"mean_hit_ratio_a"`
	MeanHitRatioB    float64 `json:"mean_hit_ratio_b"`

	// Best/worst by fault count; ties go to the earliest declared result.
	// Nil for an empty batch.
	BestA  *ScenarioResult `json:"-"`
	WorstA *ScenarioResult `json:"-"`
	BestB  *ScenarioResult `json:"-"`
	WorstB *ScenarioResult `json:"-"`
}

// BatchReport is the output of a BatchRunner.
type BatchReport struct {
	Results []ScenarioResult `json:"results"`
	Summary ScenarioSummary  `json:"summary"`
}

// BatchRunner compares two policies over a list of scenarios.
type BatchRunner struct {
	PolicyA    EvictionPolicy
	PolicyB    EvictionPolicy
	Workers    int              // <= 1 runs sequentially
	TraceLevel trace.TraceLevel // TraceLevelNone drops per-step traces from results
}

// NewBatchRunner creates a sequential FIFO-vs-LRU runner that keeps traces.
func NewBatchRunner() *BatchRunner {
	return &BatchRunner{
		PolicyA:    &FIFO{},
		PolicyB:    &LRU{},
		Workers:    1,
		TraceLevel: trace.TraceLevelSteps,
	}
}

type batchJob struct {
	scenario   *Scenario
	frameCount int
}

// Run compares every (scenario, frame count) pair and folds the results.
// Results are ordered by declaration regardless of Workers, and the summary is
// computed only after every comparison has finished.
func (br *BatchRunner) Run(scenarios []Scenario) (*BatchReport, error) {
	var jobs []batchJob
	for i := range scenarios {
		sc := &scenarios[i]
		if len(sc.References) == 0 {
			logrus.Warnf("scenario %q has an empty reference sequence", sc.Name)
		}
		for _, fc := range sc.FrameCounts {
			jobs = append(jobs, batchJob{scenario: sc, frameCount: fc})
		}
	}

	results := make([]ScenarioResult, len(jobs))
	runJob := func(i int) error {
		job := jobs[i]
		cmp, err := ComparePolicies(br.PolicyA, br.PolicyB, job.scenario.References, job.frameCount)
		if err != nil {
			return fmt.Errorf("scenario %q with %d frames: %w", job.scenario.Name, job.frameCount, err)
		}
		if br.TraceLevel == trace.TraceLevelNone {
			cmp.DropTraces()
		}
		results[i] = ScenarioResult{Index: i, Scenario: job.scenario.Name, FrameCount: job.frameCount, Comparison: cmp}
		logrus.Infof("%s: %s=%d faults, %s=%d faults, winner=%s",
			results[i].Label(), cmp.A.Policy, cmp.A.Stats.Faults, cmp.B.Policy, cmp.B.Stats.Faults, cmp.WinnerName())
		return nil
	}

	if br.Workers <= 1 {
		for i := range jobs {
			if err := runJob(i); err != nil {
				return nil, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(br.Workers)
		for i := range jobs {
			i := i
			g.Go(func() error { return runJob(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return &BatchReport{
		Results: results,
		Summary: SummarizeBatch(br.PolicyA.Name(), br.PolicyB.Name(), results),
	}, nil
}

// SummarizeBatch folds results, in slice order, into a ScenarioSummary.
// Safe for an empty slice (zero means, nil best/worst).
func SummarizeBatch(policyA, policyB string, results []ScenarioResult) ScenarioSummary {
	summary := ScenarioSummary{PolicyA: policyA, PolicyB: policyB, TotalComparisons: len(results)}
	if len(results) == 0 {
		return summary
	}

	var faultsA, faultsB int
	var ratioA, ratioB float64
	for i := range results {
		r := &results[i]
		a, b := r.Comparison.A.Stats, r.Comparison.B.Stats
		switch r.Comparison.Winner {
		case WinnerPolicyA:
			summary.WinsA++
		case WinnerPolicyB:
			summary.WinsB++
		default:
			summary.Ties++
		}
		faultsA += a.Faults
		faultsB += b.Faults
		ratioA += a.HitRatio
		ratioB += b.HitRatio

		// strict comparisons keep the first seen on equal fault counts
		if summary.BestA == nil || a.Faults < summary.BestA.Comparison.A.Stats.Faults {
			summary.BestA = r
		}
		if summary.WorstA == nil || a.Faults > summary.WorstA.Comparison.A.Stats.Faults {
			summary.WorstA = r
		}
		if summary.BestB == nil || b.Faults < summary.BestB.Comparison.B.Stats.Faults {
			summary.BestB = r
		}
		if summary.WorstB == nil || b.Faults > summary.WorstB.Comparison.B.Stats.Faults {
			summary.WorstB = r
		}
	}

	n := float64(len(results))
	summary.MeanFaultsA = float64(faultsA) / n
	summary.MeanFaultsB = float64(faultsB) / n
	summary.MeanHitRatioA = ratioA / n
	summary.MeanHitRatioB = ratioB / n
	return summary
}
