package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pagesim/pagesim/sim/trace"
)

// RunResult bundles the outputs of a single simulation run.
type RunResult struct {
	Policy     string          `json:"policy"`
	FrameCount int             `json:"frame_count"`
	Trace      *trace.RunTrace `json:"trace,omitempty"` // nil once dropped at TraceLevelNone
	Stats      trace.RunStats  `json:"stats"`
}

// Run drives refs through a fresh FrameSet of frameCount frames under policy.
// Steps are processed strictly in order; step i observes the frame state left
// by step i-1. Returns ErrInvalidFrameCount before any step when frameCount <= 0.
func Run(policy EvictionPolicy, refs References, frameCount int) (*RunResult, error) {
	if frameCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrameCount, frameCount)
	}
	frames, err := NewFrameSet(frameCount)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	rt := trace.NewRunTrace(policy.Name(), frameCount)
	for i, page := range refs {
		ev, err := step(policy, frames, page)
		if err != nil {
			return nil, fmt.Errorf("%s step %d (page %q): %w", policy.Name(), i+1, page, err)
		}
		ev.Step = i + 1
		rt.Record(ev)
		if ev.Evicted {
			logrus.Debugf("[step %04d] %s %s page=%s evicted=%s frames=%v", ev.Step, policy.Name(), ev.Outcome, page, ev.Victim, ev.Frames)
		} else {
			logrus.Debugf("[step %04d] %s %s page=%s frames=%v", ev.Step, policy.Name(), ev.Outcome, page, ev.Frames)
		}
	}

	stats := trace.Summarize(rt)
	logrus.Debugf("%s run finished: frames=%d refs=%d faults=%d hits=%d in %s",
		policy.Name(), frameCount, stats.References, stats.Faults, stats.Hits, time.Since(startTime))

	return &RunResult{
		Policy:     policy.Name(),
		FrameCount: frameCount,
		Trace:      rt,
		Stats:      stats,
	}, nil
}

// step applies one reference to frames and returns the resulting event
// without its step index.
func step(policy EvictionPolicy, frames *FrameSet, page trace.PageID) (trace.StepEvent, error) {
	outcome, victim, evict := policy.Decide(frames, page)
	ev := trace.StepEvent{Page: page, Outcome: outcome}
	if outcome == trace.Fault {
		if evict {
			if err := frames.Evict(victim); err != nil {
				return ev, err
			}
			ev.Evicted = true
			ev.Victim = victim
		}
		if err := frames.Insert(page); err != nil {
			return ev, err
		}
	}
	if err := policy.OnAccess(frames, page); err != nil {
		return ev, err
	}
	ev.Frames = frames.Snapshot()
	return ev, nil
}
