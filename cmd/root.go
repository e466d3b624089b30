package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/pagesim/pagesim/sim"
	"github.com/pagesim/pagesim/sim/export"
	"github.com/pagesim/pagesim/sim/trace"
)

const defaultRefs = "7,0,1,2,0,3,0,4,2,3,0,3,2,1,2,0,1,7,0,1"

var (
	logLevel    string   // Log verbosity level
	policyName  string   // Eviction policy for `run`
	policyNames []string // Policy pair for `compare`
	frameCount  int      // Number of resident frames
	references  []string // Reference sequence
	verbose     bool     // Print the per-step trace
	outPath     string   // Export file ("" = no export)
	compression string   // Export codec
	configPath  string   // Batch YAML config
	presetName  string   // Built-in scenario set when no config is given
	workers     int      // Batch workers (0 = keep config value)
	traceLevel  string   // Batch trace level override
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Page replacement simulator comparing FIFO and LRU",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates a single policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one eviction policy over a reference sequence",
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeRun(os.Stdout); err != nil {
			logrus.Fatalf("run failed: %v", err)
		}
	},
}

// compareCmd compares two policies over the same sequence
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two eviction policies over the same reference sequence",
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeCompare(os.Stdout); err != nil {
			logrus.Fatalf("compare failed: %v", err)
		}
	},
}

// batchCmd sweeps named scenarios over frame counts
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compare policies across a batch of scenarios and frame counts",
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeBatch(os.Stdout); err != nil {
			logrus.Fatalf("batch failed: %v", err)
		}
	},
}

// parseReferences converts CLI tokens into a reference sequence.
func parseReferences(raw []string) (sim.References, error) {
	tokens := make([]string, 0, len(raw))
	for i, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("empty page reference at position %d", i+1)
		}
		tokens = append(tokens, tok)
	}
	return sim.StringReferences(tokens...), nil
}

func executeRun(w io.Writer) error {
	policy, err := sim.LookupEvictionPolicy(policyName)
	if err != nil {
		return err
	}
	refs, err := parseReferences(references)
	if err != nil {
		return err
	}
	logrus.Infof("Starting %s simulation with %d frames over %d references", policy.Name(), frameCount, len(refs))

	res, err := sim.Run(policy, refs, frameCount)
	if err != nil {
		return err
	}
	if verbose {
		PrintRunTrace(w, res.Trace)
	}
	PrintRunStats(w, res)
	return nil
}

func executeCompare(w io.Writer) error {
	if len(policyNames) != 2 {
		return fmt.Errorf("--policies needs exactly two names, got %d", len(policyNames))
	}
	a, err := sim.LookupEvictionPolicy(policyNames[0])
	if err != nil {
		return err
	}
	b, err := sim.LookupEvictionPolicy(policyNames[1])
	if err != nil {
		return err
	}
	refs, err := parseReferences(references)
	if err != nil {
		return err
	}
	if !export.IsValidCompression(compression) {
		return fmt.Errorf("unknown compression %q", compression)
	}

	res, err := sim.ComparePolicies(a, b, refs, frameCount)
	if err != nil {
		return err
	}
	if verbose {
		PrintRunTrace(w, res.A.Trace)
		PrintRunTrace(w, res.B.Trace)
	}
	PrintComparison(w, refs, res)

	if outPath != "" {
		return writeExport(outPath, func(f io.Writer) error {
			return export.WriteComparison(f, res, export.Compression(compression))
		})
	}
	return nil
}

func executeBatch(w io.Writer) error {
	cfg, err := batchConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid batch config: %w", err)
	}
	if !export.IsValidCompression(compression) {
		return fmt.Errorf("unknown compression %q", compression)
	}

	br := cfg.NewBatchRunner()
	logrus.Infof("Starting batch: %s vs %s, %d scenarios, %d workers", br.PolicyA.Name(), br.PolicyB.Name(), len(cfg.Scenarios), max(br.Workers, 1))
	scenarios, err := cfg.ToScenarios()
	if err != nil {
		return err
	}
	report, err := br.Run(scenarios)
	if err != nil {
		return err
	}
	PrintBatchReport(w, report)

	if outPath != "" {
		return writeExport(outPath, func(f io.Writer) error {
			return export.WriteBatch(f, report, export.Compression(compression))
		})
	}
	return nil
}

// batchConfig loads --config, or builds one from the --preset scenario set.
// --workers and --trace-level override the loaded values when set.
func batchConfig() (*sim.BatchConfig, error) {
	var cfg *sim.BatchConfig
	if configPath != "" {
		loaded, err := sim.LoadBatchConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		scenarios, ok := sim.ScenarioSet(presetName)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q; valid presets: [builtin, quick]", presetName)
		}
		cfg = &sim.BatchConfig{}
		for _, sc := range scenarios {
			refs := make([]string, len(sc.References))
			for i, p := range sc.References {
				refs[i] = string(p)
			}
			cfg.Scenarios = append(cfg.Scenarios, sim.ScenarioConfig{Name: sc.Name, References: refs, Frames: sc.FrameCounts})
		}
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if traceLevel != "" {
		if !trace.IsValidTraceLevel(traceLevel) {
			return nil, fmt.Errorf("unknown trace level %q", traceLevel)
		}
		cfg.TraceLevel = traceLevel
	}
	return cfg, nil
}

func writeExport(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Infof("Wrote results to %s", path)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().IntVar(&frameCount, "frames", 3, "Number of resident frames")
		c.Flags().StringSliceVar(&references, "refs", strings.Split(defaultRefs, ","), "Comma-separated page references")
		c.Flags().BoolVar(&verbose, "verbose", false, "Print every step of the trace")
	}
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyFIFO, "Eviction policy (fifo, lru)")
	compareCmd.Flags().StringSliceVar(&policyNames, "policies", []string{sim.PolicyFIFO, sim.PolicyLRU}, "Two eviction policies to compare")

	batchCmd.Flags().StringVar(&configPath, "config", "", "Batch YAML config (default: built-in scenarios)")
	batchCmd.Flags().StringVar(&presetName, "preset", "builtin", "Built-in scenario set when --config is not given (builtin, quick)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Parallel comparisons (0 keeps the config value)")
	batchCmd.Flags().StringVar(&traceLevel, "trace-level", "", "Per-step trace retention (none, steps)")

	for _, c := range []*cobra.Command{compareCmd, batchCmd} {
		c.Flags().StringVar(&outPath, "out", "", "Write results as JSON to this file")
		c.Flags().StringVar(&compression, "compress", string(export.CompressionNone), "Export compression (none, snappy, lz4)")
	}

	rootCmd.AddCommand(runCmd, compareCmd, batchCmd)
}
