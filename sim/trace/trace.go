package trace

// TraceLevel controls whether per-step events are kept.
type TraceLevel string

const (
	// TraceLevelNone keeps only aggregate statistics.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps keeps every StepEvent.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to steps
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// RunTrace is the append-only ordered sequence of StepEvents of a single run.
type RunTrace struct {
	Policy     string      `json:"policy"`
	FrameCount int         `json:"frame_count"`
	Steps      []StepEvent `json:"steps"`
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(policy string, frameCount int) *RunTrace {
	return &RunTrace{
		Policy:     policy,
		FrameCount: frameCount,
		Steps:      make([]StepEvent, 0),
	}
}

// Record appends a step event. The frames slice is copied so later mutation
// by the caller cannot alter recorded history.
func (rt *RunTrace) Record(ev StepEvent) {
	frames := make([]PageID, len(ev.Frames))
	copy(frames, ev.Frames)
	ev.Frames = frames
	rt.Steps = append(rt.Steps, ev)
}

// Len returns the number of recorded steps.
func (rt *RunTrace) Len() int {
	if rt == nil {
		return 0
	}
	return len(rt.Steps)
}
