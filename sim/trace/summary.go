package trace

// RunStats aggregates a RunTrace.
type RunStats struct {
	References int     `json:"references"`
	Hits       int     `json:"hits"`
	Faults     int     `json:"faults"`
	Evictions  int     `json:"evictions"`
	HitRatio   float64 `json:"hit_ratio"` // hits / references, 0 for an empty run
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) RunStats {
	var stats RunStats
	if rt == nil {
		return stats
	}

	stats.References = len(rt.Steps)
	for _, ev := range rt.Steps {
		if ev.IsHit() {
			stats.Hits++
		} else {
			stats.Faults++
		}
		if ev.Evicted {
			stats.Evictions++
		}
	}
	if stats.References > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(stats.References)
	}
	return stats
}

// FaultRatio returns faults / references, 0 for an empty run.
func (s RunStats) FaultRatio() float64 {
	if s.References == 0 {
		return 0
	}
	return float64(s.Faults) / float64(s.References)
}
