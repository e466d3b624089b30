package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/pagesim/pagesim/sim"
)

func TestPrintComparison_Tie(t *testing.T) {
	// GIVEN a comparison without replacement pressure
	refs := sim.IntReferences(1, 2, 3, 1, 2, 3, 1, 2, 3)
	res, err := sim.Compare(refs, 3)
	require.NoError(t, err)

	// WHEN printed
	var buf bytes.Buffer
	PrintComparison(&buf, refs, res)

	// THEN the tie message is shown instead of a winner
	out := buf.String()
	assert.Contains(t, out, "Reference String: [1, 2, 3, 1, 2, 3, 1, 2, 3]")
	assert.Contains(t, out, "Both algorithms performed equally well!")
	assert.Contains(t, out, "Hit Ratio: 66.67%")
	assert.NotContains(t, out, "Winner:")
}

func TestPrintRunTrace_FillThenReplace(t *testing.T) {
	res, err := sim.Run(&sim.FIFO{}, sim.IntReferences(1, 2, 1, 3), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintRunTrace(&buf, res.Trace)

	assert.Equal(t, `
--- FIFO Simulation (Frames: 2) ---
Step 1: Page fault: 1 -> Frames: [1]
Step 2: Page fault: 2 -> Frames: [1, 2]
Step 3: Hit: 1 -> Frames: [1, 2]
Step 4: Page fault: 3 (replaced 1) -> Frames: [2, 3]
`, buf.String())
}

func TestPrintRunTrace_NilTrace_PrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	PrintRunTrace(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestPrintBatchReport_BuiltinSummary(t *testing.T) {
	report, err := sim.NewBatchRunner().Run(sim.BuiltinScenarios())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintBatchReport(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Total Tests Run: 14")
	assert.Contains(t, out, "FIFO Wins: 1")
	assert.Contains(t, out, "LRU Wins: 4")
	assert.Contains(t, out, "Ties: 9")
	assert.Contains(t, out, "FIFO Best: Repeated Pattern - 3 frames - 3 faults")
	assert.Contains(t, out, "LRU Worst: Random Access Pattern - 3 frames - 16 faults")
}

func TestPrintBatchReport_Empty(t *testing.T) {
	report, err := sim.NewBatchRunner().Run(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintBatchReport(&buf, report)

	assert.Contains(t, buf.String(), "Total Tests Run: 0")
	assert.NotContains(t, buf.String(), "Best Performance")
}
