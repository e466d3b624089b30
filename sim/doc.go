// Package sim provides the page replacement simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - frames.go: FrameSet, the bounded ordered set of resident pages
//   - eviction.go: EvictionPolicy and the FIFO and LRU implementations
//   - runner.go: Run, which drives a reference sequence through a FrameSet
//
// # Architecture
//
// Data flows one way:
//
//	References + frame count -> Run -> trace + stats -> ComparePolicies -> verdict -> BatchRunner -> report
//
// Batches come from presets (scenarios.go) or a YAML config (batch_config.go),
// whose scenarios may be generated (generator.go) from a seeded PartitionedRNG.
//
// Pure output types live in sub-packages:
//   - sim/trace/: PageID, StepEvent, RunTrace and RunStats
//   - sim/export/: JSON export of comparisons and batch reports, optionally compressed
//
// # Key Interfaces
//
// EvictionPolicy is the only extension point. A policy is a stateless decision
// function over a FrameSet; ordering metadata is kept by the FrameSet and
// updated through OnAccess. Adding a policy means implementing the interface
// and registering its name in ValidEvictionPolicies and LookupEvictionPolicy.
package sim
