package gmab

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Diagnostics carries supplementary numerical summaries that are not part
// of the core spec's result contract but are cheap to compute from the
// final population and useful for callers inspecting convergence.
type Diagnostics struct {
	// PopulationMean is the mean (via gonum/stat, as a cross-check
	// against the incrementally maintained per-arm means) of every arm's
	// Mean at the end of the run.
	PopulationMean float64
	IterationCount int
	FuncEvalCount  int
}

// Result is the outcome of one GMAB run: the n_best arms from the final
// ranking, sorted ascending by value, plus diagnostics.
type Result struct {
	Best        []*Arm
	Diagnostics Diagnostics
	Cancelled   bool
}

// runState is the GMAB driver's state machine: Init, Evolving, Done, as
// described in spec §4.5.
type runState int

const (
	stateInit runState = iota
	stateEvolving
	stateDone
)

// Driver runs one GMAB optimization to completion. A Driver and its
// Population/RNG are owned exclusively by the goroutine that calls Run;
// concurrent use of the same Driver from multiple goroutines is not
// supported (spec §5: "the population and RNG are owned exclusively by
// the driver of one run").
type Driver struct {
	cfg    *Config
	rng    *SplitRNG
	pop    *Population
	policy *SampleAllocationPolicy

	budget    int
	iteration int
	state     runState
}

// NewDriver validates cfg and constructs a Driver ready to Run. The RNG is
// always seeded from the seed argument; cfg.Seed and cfg.HasSeed are not
// read. This indirection lets the Study facade derive per-run sub-seeds
// without mutating a shared Config.
func NewDriver(cfg *Config, seed int64) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		cfg:    cfg,
		rng:    NewSplitRNG(seed),
		pop:    NewPopulation(cfg.PopulationSize),
		policy: NewSampleAllocationPolicy(cfg.PopulationSize),
		budget: cfg.Budget,
		state:  stateInit,
	}, nil
}

// Run drives the Init -> Evolving -> Done state machine to completion or
// until ctx is cancelled, whichever comes first. Cancellation is checked
// at iteration boundaries only; there is no internal timeout (spec §5)
// and the objective itself is called synchronously.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	logger := d.cfg.logger()
	logger.Info("gmab run starting", "seed", d.rng.Seed(), "budget", d.budget, "population_size", d.cfg.PopulationSize)

	if err := d.init(ctx); err != nil {
		return nil, err
	}

	cancelled := false
	for d.budget > 0 {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}
		if err := d.iterate(ctx); err != nil {
			return nil, err
		}
		d.iteration++
		logger.Debug("gmab iteration complete", "iteration", d.iteration, "budget_remaining", d.budget)
	}
	d.state = stateDone

	return d.finish(cancelled), nil
}

func (d *Driver) init(ctx context.Context) error {
	arms, err := d.pop.Initialize(d.cfg.SearchSpace, d.rng)
	if err != nil {
		return err
	}
	for _, arm := range arms {
		reward, err := d.evaluate(arm.ActionVector)
		if err != nil {
			return err
		}
		_ = arm.RecordPull(reward)
		d.budget--
	}
	d.pop.Invalidate()
	d.state = stateEvolving
	return nil
}

// evaluate calls the objective, decrementing nothing itself (callers
// manage budget), and converts a non-finite return into
// InvalidObjectiveError. Fails with BudgetExhausted if the caller
// attempts an evaluation with no budget left, which would indicate an
// internal accounting bug rather than a user-facing condition.
func (d *Driver) evaluate(action []int) (float64, error) {
	if d.budget <= 0 {
		return 0, ErrBudgetExhausted
	}
	reward := d.cfg.Objective(action)
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return 0, &InvalidObjectiveError{ActionVector: append([]int(nil), action...), Value: reward}
	}
	return reward, nil
}

// iterate runs one evolving-state iteration: re-pull the top-k arms,
// then generate and evaluate g offspring, inserting each via
// ReplaceWorst. Totals are truncated to whatever evaluation budget
// remains (spec §4.4).
func (d *Driver) iterate(ctx context.Context) error {
	rePulls, offspringBudget := d.policy.Allocate(d.pop, d.budget)

	for _, arm := range rePulls {
		reward, err := d.evaluate(arm.ActionVector)
		if err != nil {
			return err
		}
		_ = arm.RecordPull(reward)
		d.budget--
	}
	d.pop.Invalidate()

	if offspringBudget <= 0 {
		return nil
	}

	offspring := d.generateOffspring(offspringBudget)

	rewards := make([]float64, len(offspring))
	if d.cfg.Parallel {
		if err := d.evaluateParallel(ctx, offspring, rewards); err != nil {
			return err
		}
	} else {
		for i, action := range offspring {
			reward, err := d.evaluate(action)
			if err != nil {
				return err
			}
			rewards[i] = reward
			d.budget--
		}
	}

	best := d.pop.Best()
	for i, action := range offspring {
		arm := NewArm(action)
		_ = arm.RecordPull(rewards[i])
		if best != nil && d.wouldEvictBest(arm, best) {
			// Single-best elitism: the current best is never displaced.
			// If inserting the offspring would evict the best (the worst-
			// ranked arm is the best-ranked arm), skip the insertion
			// rather than evict it. Duplicates are merged, never skipped.
			continue
		}
		_ = d.pop.ReplaceWorst(arm)
	}

	return nil
}

// wouldEvictBest reports whether inserting arm via ReplaceWorst right now
// would evict the population's current best (true only when the worst-
// ranked arm and the best-ranked arm are the same arm, i.e. population
// size 1, and arm is not a duplicate of it).
func (d *Driver) wouldEvictBest(arm *Arm, best *Arm) bool {
	if _, exists := d.pop.Get(arm.ActionVector); exists {
		return false // merge path, never evicts anything
	}
	worst := d.pop.Worst()
	return worst == best
}

// generateOffspring runs binary-tournament selection plus crossover and
// mutation to produce n candidate action vectors. All randomness that
// influences selection, crossover, and mutation is drawn here, on the
// driver's single RNG, before any parallel dispatch — satisfying spec
// §5's requirement that only the pure evaluation step may run out of
// order.
func (d *Driver) generateOffspring(n int) [][]int {
	ranked := d.pop.Rank()
	offspring := make([][]int, n)
	for i := 0; i < n; i++ {
		parentA := d.tournamentSelect(ranked)
		parentB := d.tournamentSelect(ranked)
		child := Crossover(parentA.ActionVector, parentB.ActionVector, d.cfg.CrossoverRate, d.rng)
		child = Mutate(child, d.cfg.SearchSpace, d.cfg.MutationRate, d.cfg.MutationSpan, d.rng)
		offspring[i] = child
	}
	return offspring
}

// tournamentSelect draws two arms uniformly from the ranked population
// and keeps the better-ranked one (binary tournament). Tournament
// selection favors diversity over deterministic elitism while still
// biasing toward strong arms.
func (d *Driver) tournamentSelect(ranked []*Arm) *Arm {
	i := d.rng.Intn(len(ranked))
	j := d.rng.Intn(len(ranked))
	// ranked is sorted best-first, so the lower index is the better arm.
	if i <= j {
		return ranked[i]
	}
	return ranked[j]
}

// evaluateParallel dispatches the pure objective evaluations of one
// iteration's offspring across a worker pool via errgroup. Population
// updates are not performed here: iterate() applies ReplaceWorst in the
// canonical offspring-generation order afterward, regardless of which
// worker finished first (spec §5(b)).
func (d *Driver) evaluateParallel(ctx context.Context, offspring [][]int, rewards []float64) error {
	workers := d.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(offspring) {
		workers = len(offspring)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, action := range offspring {
		i, action := i, action
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if d.budget <= 0 {
				return ErrBudgetExhausted
			}
			reward := d.cfg.Objective(action)
			if math.IsNaN(reward) || math.IsInf(reward, 0) {
				return &InvalidObjectiveError{ActionVector: append([]int(nil), action...), Value: reward}
			}
			rewards[i] = reward
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d.budget -= len(offspring)
	return nil
}

func (d *Driver) finish(cancelled bool) *Result {
	ranked := d.pop.Rank()
	n := d.cfg.NBest
	if n > len(ranked) {
		n = len(ranked)
	}
	best := make([]*Arm, n)
	for i := 0; i < n; i++ {
		best[i] = ranked[i].Clone()
	}

	means := make([]float64, len(ranked))
	for i, a := range ranked {
		means[i] = a.Mean
	}

	return &Result{
		Best:      best,
		Cancelled: cancelled,
		Diagnostics: Diagnostics{
			PopulationMean: stat.Mean(means, nil),
			IterationCount: d.iteration,
			FuncEvalCount:  d.cfg.Budget - d.budget,
		},
	}
}

// Optimize is the package-level convenience entry point: build a Driver
// from cfg and seed, and run it to completion (or cancellation).
func Optimize(ctx context.Context, cfg *Config, seed int64) (*Result, error) {
	driver, err := NewDriver(cfg, seed)
	if err != nil {
		return nil, err
	}
	return driver.Run(ctx)
}
