// Package study implements the GMAB Study facade: one or many runs of
// GMAB on a given objective, aggregating the best results. Persistence
// and reporting are explicitly out of scope for the core gmab package
// (spec.md §6: "Persistence: none required for the core. The Study
// facade may serialize results ... but that is outside the core"), so
// this package is where result identity, export formats, and optional
// metrics hooks live.
package study

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gmab-go/gmab"
)

// RunReport records the outcome of one GMAB run within a Study.
type RunReport struct {
	ID           string   `json:"id" yaml:"id"`
	Seed         int64    `json:"seed" yaml:"seed"`
	BestValue    float64  `json:"best_value" yaml:"best_value"`
	BestAction   []int    `json:"best_action" yaml:"best_action"`
	BestParams   []any    `json:"best_params,omitempty" yaml:"best_params,omitempty"`
	BestVariance float64  `json:"best_variance" yaml:"best_variance"`
	FuncEvals    int      `json:"func_evals" yaml:"func_evals"`
	Cancelled    bool     `json:"cancelled" yaml:"cancelled"`
}

// Report aggregates every run of a Study.
type Report struct {
	ID         string      `json:"id" yaml:"id"`
	Runs       []RunReport `json:"runs" yaml:"runs"`
	BestValue  float64     `json:"best_value" yaml:"best_value"`
	BestParams []any       `json:"best_params,omitempty" yaml:"best_params,omitempty"`
	MeanValue  float64     `json:"mean_value" yaml:"mean_value"`
}

// Options configures a Study.
type Options struct {
	NTrials int // per-run evaluation budget
	NBest   int // arms retained per run (default 1)
	NRuns   int // number of independent runs (default 1)
	Seed    int64

	MutationRate  float64
	CrossoverRate float64
	MutationSpan  float64

	Parallel bool
	Workers  int

	Metrics *Recorder // optional, nil is a no-op
}

// Optimize runs GMAB NRuns times against objective over params, with
// deterministically derived sub-seeds (seed, seed+1, ...), and aggregates
// the runs into a Report (spec.md §4.7). Each run's driver retains its
// top-NBest arms, but the Report records only the single best arm of each
// run; the other retained arms are not included.
func Optimize(ctx context.Context, objective gmab.ObjectiveFunc, params gmab.ParamSet, opts Options) (*Report, error) {
	if opts.NRuns < 1 {
		opts.NRuns = 1
	}
	if opts.NBest < 1 {
		opts.NBest = 1
	}

	root := gmab.NewSplitRNG(opts.Seed)
	seeds := root.Split(opts.NRuns)

	cfgTemplate := gmab.NewDefaultConfig()
	cfgTemplate.Objective = objective
	cfgTemplate.SearchSpace = params.SearchSpace()
	cfgTemplate.Budget = opts.NTrials
	cfgTemplate.NBest = opts.NBest
	cfgTemplate.Parallel = opts.Parallel
	cfgTemplate.Workers = opts.Workers
	if opts.MutationRate != 0 {
		cfgTemplate.MutationRate = opts.MutationRate
	}
	if opts.CrossoverRate != 0 {
		cfgTemplate.CrossoverRate = opts.CrossoverRate
	}
	if opts.MutationSpan != 0 {
		cfgTemplate.MutationSpan = opts.MutationSpan
	}
	if cfgTemplate.PopulationSize > opts.NTrials {
		cfgTemplate.PopulationSize = opts.NTrials
	}
	if card, ok := cfgTemplate.SearchSpace.Cardinality(); ok && cfgTemplate.PopulationSize > card {
		cfgTemplate.PopulationSize = card
	}

	report := &Report{
		ID:        uuid.NewString(),
		Runs:      make([]RunReport, 0, opts.NRuns),
		BestValue: math.Inf(1),
	}

	var sumBest float64
	for _, seed := range seeds {
		cfg := *cfgTemplate
		driver, err := gmab.NewDriver(&cfg, seed.Seed())
		if err != nil {
			return nil, fmt.Errorf("study: run with seed %d: %w", seed.Seed(), err)
		}
		result, err := driver.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("study: run with seed %d: %w", seed.Seed(), err)
		}
		best := result.Best[0]
		decoded := params.Decode(best.ActionVector)

		run := RunReport{
			ID:           uuid.NewString(),
			Seed:         seed.Seed(),
			BestValue:    best.Mean,
			BestAction:   best.ActionVector,
			BestParams:   decoded,
			BestVariance: best.Variance(),
			FuncEvals:    result.Diagnostics.FuncEvalCount,
			Cancelled:    result.Cancelled,
		}
		report.Runs = append(report.Runs, run)
		sumBest += best.Mean

		if best.Mean < report.BestValue {
			report.BestValue = best.Mean
			report.BestParams = decoded
		}

		opts.Metrics.observeRun(run)
	}

	report.MeanValue = sumBest / float64(len(report.Runs))
	return report, nil
}

// Save serializes the report to path as either "json" or "yaml".
func (r *Report) Save(path, format string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(r, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("study: unknown report format %q (want \"json\" or \"yaml\")", format)
	}
	if err != nil {
		return fmt.Errorf("study: marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
