package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// Reference generator kinds.
const (
	GeneratorUniform    = "uniform"
	GeneratorSequential = "sequential"
	GeneratorLocality   = "locality"
)

// ValidGeneratorKinds lists the accepted GeneratorConfig.Kind values.
var ValidGeneratorKinds = map[string]bool{
	GeneratorUniform:    true,
	GeneratorSequential: true,
	GeneratorLocality:   true,
}

// GeneratorConfig describes a synthetic reference sequence over pages 0..Pages-1.
//
//   - uniform: every reference is drawn uniformly from all pages.
//   - sequential: pages cycle 0, 1, ..., Pages-1, 0, ... (no randomness).
//   - locality: with probability Locality the reference stays inside a window
//     of WorkingSet pages; otherwise it jumps to a uniform page and the window
//     re-centres on it.
type GeneratorConfig struct {
	Kind       string  `yaml:"kind"`
	Length     int     `yaml:"length"`
	Pages      int     `yaml:"pages"`
	WorkingSet int     `yaml:"working_set,omitempty"`
	Locality   float64 `yaml:"locality,omitempty"`
}

// Validate checks the kind and parameter ranges.
func (g GeneratorConfig) Validate() error {
	if !ValidGeneratorKinds[g.Kind] {
		kinds := make([]string, 0, len(ValidGeneratorKinds))
		for k := range ValidGeneratorKinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		return fmt.Errorf("unknown generator kind %q; valid kinds: %v", g.Kind, kinds)
	}
	if g.Length < 0 {
		return fmt.Errorf("generator length must be non-negative, got %d", g.Length)
	}
	if g.Pages <= 0 {
		return fmt.Errorf("generator pages must be positive, got %d", g.Pages)
	}
	if g.Kind == GeneratorLocality {
		if g.WorkingSet <= 0 || g.WorkingSet > g.Pages {
			return fmt.Errorf("generator working_set must be in [1, %d], got %d", g.Pages, g.WorkingSet)
		}
		if g.Locality <= 0 || g.Locality > 1 {
			return fmt.Errorf("generator locality must be in (0, 1], got %g", g.Locality)
		}
	}
	return nil
}

// GenerateReferences draws a reference sequence from rng.
// The sequential kind ignores rng.
func GenerateReferences(g GeneratorConfig, rng *rand.Rand) (References, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	pages := make([]int, g.Length)
	switch g.Kind {
	case GeneratorSequential:
		for i := range pages {
			pages[i] = i % g.Pages
		}
	case GeneratorUniform:
		for i := range pages {
			pages[i] = rng.Intn(g.Pages)
		}
	case GeneratorLocality:
		base := 0
		for i := range pages {
			if rng.Float64() < g.Locality {
				pages[i] = base + rng.Intn(g.WorkingSet)
				continue
			}
			p := rng.Intn(g.Pages)
			pages[i] = p
			base = min(max(p-g.WorkingSet/2, 0), g.Pages-g.WorkingSet)
		}
	}
	return IntReferences(pages...), nil
}
