package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey seeds reproducible reference generation.
// Two batches with the same key and identical configuration
// MUST generate identical reference sequences.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// PartitionedRNG provides deterministic, isolated RNG instances per scenario.
//
// Derivation formula: masterSeed XOR fnv1a64(scenarioName). Adding or
// reordering scenarios never changes the sequence generated for another one.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForScenario returns a deterministically-seeded RNG for the named scenario.
// The same name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForScenario(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
