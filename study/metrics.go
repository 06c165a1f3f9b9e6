package study

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is an optional Prometheus instrumentation hook for a Study. A
// nil *Recorder is always a valid no-op, so constructing one is never
// required to run a Study — this keeps the core optimization loop itself
// free of any metrics dependency, per spec.md's scope note that
// observability is handled "outside the core."
type Recorder struct {
	runsTotal      prometheus.Counter
	bestValue      prometheus.Gauge
	funcEvalsTotal prometheus.Counter

	bestSoFar float64
}

// NewRecorder registers a trials-run counter, a best-value gauge, and an
// objective-evaluations counter on reg and returns a Recorder that updates
// them after each run completes.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		bestSoFar: math.Inf(1),
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gmab_study_runs_total",
			Help: "Number of GMAB runs completed by this Study.",
		}),
		bestValue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gmab_study_best_value",
			Help: "Best (minimum) arm mean observed across all runs so far.",
		}),
		funcEvalsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gmab_study_objective_evals_total",
			Help: "Total objective function evaluations across all runs.",
		}),
	}
}

// observeRun updates the recorder's series after one run completes. It is
// safe to call on a nil *Recorder.
func (r *Recorder) observeRun(run RunReport) {
	if r == nil {
		return
	}
	r.runsTotal.Inc()
	r.funcEvalsTotal.Add(float64(run.FuncEvals))
	if run.BestValue < r.bestSoFar {
		r.bestSoFar = run.BestValue
		r.bestValue.Set(run.BestValue)
	}
}
