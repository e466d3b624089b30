package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/pagesim/pagesim/sim/trace"
)

// BatchConfig is the YAML batch configuration.
// Empty/zero fields take defaults: fifo vs lru, one worker, trace level steps.
// Seed keys generated scenarios; see PartitionedRNG.
type BatchConfig struct {
	Seed       int64            `yaml:"seed"`
	Policies   []string         `yaml:"policies"`
	Workers    int              `yaml:"workers"`
	TraceLevel string           `yaml:"trace_level"`
	Scenarios  []ScenarioConfig `yaml:"scenarios"`
}

// ScenarioConfig is one named scenario in a BatchConfig.
// References accept integers or strings; both are kept as page ids.
// Generate replaces References with a synthetic sequence.
type ScenarioConfig struct {
	Name       string           `yaml:"name"`
	References []string         `yaml:"references"`
	Generate   *GeneratorConfig `yaml:"generate,omitempty"`
	Frames     []int            `yaml:"frames"`
}

// LoadBatchConfig reads and parses a YAML batch configuration file.
// Unknown fields are rejected so typos surface as errors.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch config: %w", err)
	}
	var cfg BatchConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing batch config: %w", err)
	}
	return &cfg, nil
}

// Validate checks policy names, parameter ranges and every scenario.
func (c *BatchConfig) Validate() error {
	if len(c.Policies) != 0 && len(c.Policies) != 2 {
		return fmt.Errorf("policies must name exactly two policies, got %d", len(c.Policies))
	}
	for _, p := range c.Policies {
		if !IsValidEvictionPolicy(p) {
			return fmt.Errorf("%w %q", ErrUnknownPolicy, p)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("batch config has no scenarios")
	}
	names := make(map[string]bool, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if names[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		names[sc.Name] = true
		if sc.Generate != nil {
			if len(sc.References) > 0 {
				return fmt.Errorf("scenario %q sets both references and generate", sc.Name)
			}
			if err := sc.Generate.Validate(); err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
		}
		if len(sc.Frames) == 0 {
			return fmt.Errorf("scenario %q has no frame counts", sc.Name)
		}
		seen := make(map[int]bool, len(sc.Frames))
		for _, fc := range sc.Frames {
			if fc <= 0 {
				return fmt.Errorf("scenario %q: %w: got %d", sc.Name, ErrInvalidFrameCount, fc)
			}
			if seen[fc] {
				logrus.Warnf("scenario %q sweeps frame count %d more than once", sc.Name, fc)
			}
			seen[fc] = true
		}
	}
	return nil
}

// ToScenarios converts the configured scenarios, in declaration order.
// Generated scenarios draw from a stream keyed by Seed and the scenario name.
func (c *BatchConfig) ToScenarios() ([]Scenario, error) {
	rng := NewPartitionedRNG(NewSimulationKey(c.Seed))
	out := make([]Scenario, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		frames := make([]int, len(sc.Frames))
		copy(frames, sc.Frames)
		refs := StringReferences(sc.References...)
		if sc.Generate != nil {
			generated, err := GenerateReferences(*sc.Generate, rng.ForScenario(sc.Name))
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			refs = generated
		}
		out[i] = Scenario{
			Name:        sc.Name,
			References:  refs,
			FrameCounts: frames,
		}
	}
	return out, nil
}

// NewBatchRunner builds a runner from the config. Call Validate first.
func (c *BatchConfig) NewBatchRunner() *BatchRunner {
	br := NewBatchRunner()
	if len(c.Policies) == 2 {
		br.PolicyA = NewEvictionPolicy(c.Policies[0])
		br.PolicyB = NewEvictionPolicy(c.Policies[1])
	}
	if c.Workers > 1 {
		br.Workers = c.Workers
	}
	if c.TraceLevel != "" {
		br.TraceLevel = trace.TraceLevel(c.TraceLevel)
	}
	return br
}
