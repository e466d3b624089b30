package cmd

import (
	"fmt"
	"io"
	"strings"

	sim "github.com/pagesim/pagesim/sim"
	"github.com/pagesim/pagesim/sim/trace"
)

const rule = "============================================================"

func formatFrames(frames []trace.PageID) string {
	parts := make([]string, len(frames))
	for i, p := range frames {
		parts[i] = string(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintRunTrace writes one line per step.
func PrintRunTrace(w io.Writer, rt *trace.RunTrace) {
	if rt == nil {
		return
	}
	fmt.Fprintf(w, "\n--- %s Simulation (Frames: %d) ---\n", strings.ToUpper(rt.Policy), rt.FrameCount)
	for _, ev := range rt.Steps {
		switch {
		case ev.IsHit():
			fmt.Fprintf(w, "Step %d: Hit: %s -> Frames: %s\n", ev.Step, ev.Page, formatFrames(ev.Frames))
		case ev.Evicted:
			fmt.Fprintf(w, "Step %d: Page fault: %s (replaced %s) -> Frames: %s\n", ev.Step, ev.Page, ev.Victim, formatFrames(ev.Frames))
		default:
			fmt.Fprintf(w, "Step %d: Page fault: %s -> Frames: %s\n", ev.Step, ev.Page, formatFrames(ev.Frames))
		}
	}
}

// PrintRunStats writes the totals of a single run.
func PrintRunStats(w io.Writer, res *sim.RunResult) {
	fmt.Fprintf(w, "\n%s with %d frames:\n", strings.ToUpper(res.Policy), res.FrameCount)
	fmt.Fprintf(w, "  - Page Faults: %d\n", res.Stats.Faults)
	fmt.Fprintf(w, "  - Hits: %d\n", res.Stats.Hits)
	fmt.Fprintf(w, "  - Hit Ratio: %.2f%%\n", res.Stats.HitRatio*100)
}

// PrintComparison writes both runs and the verdict.
func PrintComparison(w io.Writer, refs sim.References, res *sim.ComparisonResult) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Reference String: %s\n", formatFrames(refs))
	fmt.Fprintf(w, "Number of Frames: %d\n", res.FrameCount)
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n--- COMPARISON RESULTS ---")
	for _, run := range []sim.PolicyRun{res.A, res.B} {
		fmt.Fprintf(w, "%s Algorithm:\n", strings.ToUpper(run.Policy))
		fmt.Fprintf(w, "  - Page Faults: %d\n", run.Stats.Faults)
		fmt.Fprintf(w, "  - Hit Ratio: %.2f%%\n", run.Stats.HitRatio*100)
	}

	fmt.Fprintln(w, "\n--- ANALYSIS ---")
	if res.Winner == sim.WinnerTie {
		fmt.Fprintln(w, "Both algorithms performed equally well!")
		return
	}
	fmt.Fprintf(w, "Winner: %s (by %d fewer page faults)\n", strings.ToUpper(res.WinnerName()), res.Difference)
	fmt.Fprintf(w, "Performance improvement: %.2f%%\n", res.Improvement)
}

// PrintBatchReport writes one line per comparison followed by the summary.
func PrintBatchReport(w io.Writer, report *sim.BatchReport) {
	s := report.Summary
	a, b := strings.ToUpper(s.PolicyA), strings.ToUpper(s.PolicyB)

	for i := range report.Results {
		r := &report.Results[i]
		c := r.Comparison
		fmt.Fprintf(w, "%-45s %s=%-3d %s=%-3d winner=%s\n", r.Label(), a, c.A.Stats.Faults, b, c.B.Stats.Faults, strings.ToUpper(c.WinnerName()))
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "SUMMARY ANALYSIS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Tests Run: %d\n", s.TotalComparisons)
	fmt.Fprintf(w, "%s Wins: %d\n", a, s.WinsA)
	fmt.Fprintf(w, "%s Wins: %d\n", b, s.WinsB)
	fmt.Fprintf(w, "Ties: %d\n", s.Ties)
	if s.TotalComparisons == 0 {
		return
	}

	fmt.Fprintln(w, "\nAverage Performance:")
	fmt.Fprintf(w, "%s - Avg Page Faults: %.2f, Avg Hit Ratio: %.2f%%\n", a, s.MeanFaultsA, s.MeanHitRatioA*100)
	fmt.Fprintf(w, "%s - Avg Page Faults: %.2f, Avg Hit Ratio: %.2f%%\n", b, s.MeanFaultsB, s.MeanHitRatioB*100)

	fmt.Fprintln(w, "\nBest Performance:")
	fmt.Fprintf(w, "%s Best: %s - %d faults\n", a, s.BestA.Label(), s.BestA.Comparison.A.Stats.Faults)
	fmt.Fprintf(w, "%s Best: %s - %d faults\n", b, s.BestB.Label(), s.BestB.Comparison.B.Stats.Faults)

	fmt.Fprintln(w, "\nWorst Performance:")
	fmt.Fprintf(w, "%s Worst: %s - %d faults\n", a, s.WorstA.Label(), s.WorstA.Comparison.A.Stats.Faults)
	fmt.Fprintf(w, "%s Worst: %s - %d faults\n", b, s.WorstB.Label(), s.WorstB.Comparison.B.Stats.Faults)
}
