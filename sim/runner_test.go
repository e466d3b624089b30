package sim

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesim/pagesim/sim/trace"
)

// classicRefs is the textbook reference string used throughout these tests.
var classicRefs = IntReferences(7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1)

func pages(ids ...int) []trace.PageID {
	return IntReferences(ids...)
}

// randomRefs returns a deterministic pseudo-random sequence over distinct pages.
func randomRefs(seed uint64, length, distinct int) References {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	refs := make(References, length)
	for i := range refs {
		refs[i] = trace.PageID(strconv.Itoa(rng.IntN(distinct)))
	}
	return refs
}

// neverEvict reports a fault without a victim even when the set is full.
type neverEvict struct{ FIFO }

func (p *neverEvict) Name() string { return "never-evict" }

func (p *neverEvict) Decide(frames *FrameSet, page trace.PageID) (trace.Outcome, trace.PageID, bool) {
	if frames.Contains(page) {
		return trace.Hit, "", false
	}
	return trace.Fault, "", false
}

func TestRun_FIFO_ClassicSequence_StepTrace(t *testing.T) {
	// GIVEN the classic sequence and three frames
	// WHEN run under FIFO
	res, err := Run(&FIFO{}, classicRefs, 3)
	require.NoError(t, err)

	// THEN the first eight steps match the hand-computed trace
	want := []trace.StepEvent{
		{Step: 1, Page: "7", Outcome: trace.Fault, Frames: pages(7)},
		{Step: 2, Page: "0", Outcome: trace.Fault, Frames: pages(7, 0)},
		{Step: 3, Page: "1", Outcome: trace.Fault, Frames: pages(7, 0, 1)},
		{Step: 4, Page: "2", Outcome: trace.Fault, Frames: pages(0, 1, 2), Evicted: true, Victim: "7"},
		{Step: 5, Page: "0", Outcome: trace.Hit, Frames: pages(0, 1, 2)},
		{Step: 6, Page: "3", Outcome: trace.Fault, Frames: pages(1, 2, 3), Evicted: true, Victim: "0"},
		{Step: 7, Page: "0", Outcome: trace.Fault, Frames: pages(2, 3, 0), Evicted: true, Victim: "1"},
		{Step: 8, Page: "4", Outcome: trace.Fault, Frames: pages(3, 0, 4), Evicted: true, Victim: "2"},
	}
	require.Equal(t, len(classicRefs), res.Trace.Len())
	assert.Equal(t, want, res.Trace.Steps[:len(want)])
	assert.Equal(t, 15, res.Stats.Faults)
	assert.Equal(t, "fifo", res.Policy)
	assert.Equal(t, 3, res.FrameCount)
}

func TestRun_LRU_ClassicSequence_StepTrace(t *testing.T) {
	res, err := Run(&LRU{}, classicRefs, 3)
	require.NoError(t, err)

	want := []trace.StepEvent{
		{Step: 1, Page: "7", Outcome: trace.Fault, Frames: pages(7)},
		{Step: 2, Page: "0", Outcome: trace.Fault, Frames: pages(7, 0)},
		{Step: 3, Page: "1", Outcome: trace.Fault, Frames: pages(7, 0, 1)},
		{Step: 4, Page: "2", Outcome: trace.Fault, Frames: pages(0, 1, 2), Evicted: true, Victim: "7"},
		{Step: 5, Page: "0", Outcome: trace.Hit, Frames: pages(1, 2, 0)},
		{Step: 6, Page: "3", Outcome: trace.Fault, Frames: pages(2, 0, 3), Evicted: true, Victim: "1"},
		{Step: 7, Page: "0", Outcome: trace.Hit, Frames: pages(2, 3, 0)},
		{Step: 8, Page: "4", Outcome: trace.Fault, Frames: pages(3, 0, 4), Evicted: true, Victim: "2"},
	}
	assert.Equal(t, want, res.Trace.Steps[:len(want)])
	assert.Equal(t, 12, res.Stats.Faults)
	assert.Equal(t, 8, res.Stats.Hits)
}

func TestRun_InvalidFrameCount_NoTrace(t *testing.T) {
	for _, fc := range []int{0, -3} {
		res, err := Run(&LRU{}, classicRefs, fc)
		assert.ErrorIs(t, err, ErrInvalidFrameCount)
		assert.Nil(t, res, "no partial result may be produced")
	}
}

func TestRun_EmptySequence_ZeroStats(t *testing.T) {
	// GIVEN no references
	for _, policy := range []EvictionPolicy{&FIFO{}, &LRU{}} {
		// WHEN run
		res, err := Run(policy, References{}, 3)
		require.NoError(t, err)

		// THEN the trace is empty and the hit ratio is 0, not NaN
		assert.Equal(t, 0, res.Trace.Len())
		assert.Equal(t, trace.RunStats{}, res.Stats)
	}
}

func TestRun_BrokenPolicy_SurfacesCapacityExceeded(t *testing.T) {
	// GIVEN a policy that never chooses a victim
	// WHEN the set fills up and another distinct page arrives
	res, err := Run(&neverEvict{}, IntReferences(1, 2, 3), 2)

	// THEN the invariant violation is surfaced immediately
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, res)
}

func TestRun_DoesNotMutateReferences(t *testing.T) {
	refs := classicRefs.Clone()
	_, err := Run(&LRU{}, refs, 3)
	require.NoError(t, err)
	assert.Equal(t, classicRefs, refs)
}

func TestRun_Properties_RandomSequences(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		refs := randomRefs(seed, 60, 8)
		for _, fc := range []int{1, 2, 3, 5, 8, 10} {
			for _, policy := range []EvictionPolicy{&FIFO{}, &LRU{}} {
				res, err := Run(policy, refs, fc)
				require.NoError(t, err)

				// hits + faults == references
				assert.Equal(t, len(refs), res.Stats.Hits+res.Stats.Faults)
				assert.InDelta(t, float64(res.Stats.Hits)/float64(len(refs)), res.Stats.HitRatio, 1e-12)

				// no replacement pressure: one fault per distinct page, no evictions
				if fc >= refs.Distinct() {
					assert.Equal(t, refs.Distinct(), res.Stats.Faults)
					assert.Equal(t, 0, res.Stats.Evictions)
				}

				for i, ev := range res.Trace.Steps {
					// the resident set never exceeds the frame count and has no duplicates
					assert.LessOrEqual(t, len(ev.Frames), fc)
					assert.Equal(t, len(ev.Frames), References(ev.Frames).Distinct())
					assert.Equal(t, i+1, ev.Step)
					// the referenced page is always resident after its step
					assert.Contains(t, ev.Frames, ev.Page)
				}
			}
		}
	}
}

func TestRun_SingleFrame_FIFOAndLRUIdentical(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		refs := randomRefs(seed, 40, 4)
		fifo, err := Run(&FIFO{}, refs, 1)
		require.NoError(t, err)
		lru, err := Run(&LRU{}, refs, 1)
		require.NoError(t, err)

		assert.Equal(t, fifo.Trace.Steps, lru.Trace.Steps, "seed %d", seed)
	}
}

func TestRun_FIFO_HitLeavesSnapshotUnchanged(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		res, err := Run(&FIFO{}, randomRefs(seed, 50, 6), 3)
		require.NoError(t, err)
		for i := 1; i < len(res.Trace.Steps); i++ {
			ev := res.Trace.Steps[i]
			if ev.IsHit() {
				assert.Equal(t, res.Trace.Steps[i-1].Frames, ev.Frames, "seed %d step %d", seed, ev.Step)
			}
		}
	}
}

func TestRun_LRU_JustHitPageIsNeverNextVictim(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		res, err := Run(&LRU{}, randomRefs(seed, 50, 6), 3)
		require.NoError(t, err)
		steps := res.Trace.Steps
		for i := 0; i+1 < len(steps); i++ {
			ev, next := steps[i], steps[i+1]
			if !ev.IsHit() || len(ev.Frames) < 3 {
				continue
			}
			// THEN the hit page sits at the MRU end
			assert.Equal(t, ev.Page, ev.Frames[len(ev.Frames)-1])
			// THEN an eviction on the very next reference does not pick it
			if next.Evicted {
				assert.NotEqual(t, ev.Page, next.Victim, "seed %d step %d", seed, next.Step)
			}
		}
	}
}
