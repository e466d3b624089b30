package sim

import (
	"fmt"
	"sort"

	"github.com/pagesim/pagesim/sim/trace"
)

// EvictionPolicy decides hits, faults and victims over a FrameSet.
// Policies hold no per-run state; ordering metadata lives in the FrameSet, so a
// single policy value can drive any number of independent runs.
type EvictionPolicy interface {
	// Name returns the registry name of the policy.
	Name() string
	// Decide classifies an access to page. On a fault against a full set,
	// evict is true and victim names the page to remove.
	Decide(frames *FrameSet, page trace.PageID) (outcome trace.Outcome, victim trace.PageID, evict bool)
	// OnAccess updates ordering metadata after every reference, hit or fault,
	// once page is resident.
	OnAccess(frames *FrameSet, page trace.PageID) error
}

// Policy names.
const (
	PolicyFIFO = "fifo"
	PolicyLRU  = "lru"
)

// ValidEvictionPolicies is the set of recognized eviction policy names.
// Shared by Validate() and NewEvictionPolicy() to avoid duplication.
var ValidEvictionPolicies = map[string]bool{PolicyFIFO: true, PolicyLRU: true}

// IsValidEvictionPolicy reports whether name is a recognized eviction policy.
func IsValidEvictionPolicy(name string) bool {
	return ValidEvictionPolicies[name]
}

// EvictionPolicyNames returns the recognized policy names in sorted order.
func EvictionPolicyNames() []string {
	names := make([]string, 0, len(ValidEvictionPolicies))
	for name := range ValidEvictionPolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEvictionPolicy creates an eviction policy by name.
func LookupEvictionPolicy(name string) (EvictionPolicy, error) {
	switch name {
	case PolicyFIFO:
		return &FIFO{}, nil
	case PolicyLRU:
		return &LRU{}, nil
	default:
		return nil, fmt.Errorf("%w %q; valid policies: %v", ErrUnknownPolicy, name, EvictionPolicyNames())
	}
}

// NewEvictionPolicy creates an eviction policy by name.
// Panics on unrecognized names; callers are expected to validate first.
func NewEvictionPolicy(name string) EvictionPolicy {
	p, err := LookupEvictionPolicy(name)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// decideFront is shared by policies whose victim is always the FrameSet's
// eviction end.
func decideFront(frames *FrameSet, page trace.PageID) (trace.Outcome, trace.PageID, bool) {
	if frames.Contains(page) {
		return trace.Hit, "", false
	}
	if !frames.Full() {
		return trace.Fault, "", false
	}
	victim, _ := frames.Front()
	return trace.Fault, victim, true
}

// FIFO evicts the page inserted earliest among the residents.
// Re-referencing a resident page does not change its position.
type FIFO struct{}

func (p *FIFO) Name() string { return PolicyFIFO }

func (p *FIFO) Decide(frames *FrameSet, page trace.PageID) (trace.Outcome, trace.PageID, bool) {
	return decideFront(frames, page)
}

// OnAccess is a no-op: insertion order is fixed at insert time.
func (p *FIFO) OnAccess(_ *FrameSet, _ trace.PageID) error {
	return nil
}

// LRU evicts the least recently used resident page.
type LRU struct{}

func (p *LRU) Name() string { return PolicyLRU }

func (p *LRU) Decide(frames *FrameSet, page trace.PageID) (trace.Outcome, trace.PageID, bool) {
	return decideFront(frames, page)
}

// OnAccess moves page to the most recently used end.
func (p *LRU) OnAccess(frames *FrameSet, page trace.PageID) error {
	return frames.MoveToBack(page)
}
