// Package trace provides the per-step record types produced by a page
// replacement run. This package has no dependencies on sim/; it stores pure
// data types that presentation and export layers consume directly.
package trace

// PageID identifies a referenced page. Integer references are carried in
// decimal form.
type PageID string

// Outcome classifies a single reference.
type Outcome string

const (
	// Hit means the referenced page was already resident.
	Hit Outcome = "hit"
	// Fault means the referenced page had to be brought in.
	Fault Outcome = "fault"
)

// StepEvent captures one reference and the frame state it left behind.
type StepEvent struct {
	Step    int      `json:"step"` // 1-based
	Page    PageID   `json:"page"`
	Outcome Outcome  `json:"outcome"`
	Frames  []PageID `json:"frames"` // resident pages after the step, eviction end first
	Evicted bool     `json:"evicted"`
	Victim  PageID   `json:"victim,omitempty"` // only meaningful when Evicted
}

// IsHit reports whether the step was a hit.
func (e StepEvent) IsHit() bool {
	return e.Outcome == Hit
}
