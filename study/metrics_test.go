package study

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorderNilIsNoOp(t *testing.T) {
	var r *Recorder
	r.observeRun(RunReport{BestValue: 1, FuncEvals: 10})
}

func TestRecorderTracksRunningMinimum(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.observeRun(RunReport{BestValue: 5, FuncEvals: 10})
	r.observeRun(RunReport{BestValue: 2, FuncEvals: 10}) // new minimum
	r.observeRun(RunReport{BestValue: 8, FuncEvals: 10}) // worse, ignored

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var gotBest float64
	var gotRuns float64
	var gotEvals float64
	for _, mf := range mfs {
		switch mf.GetName() {
		case "gmab_study_best_value":
			gotBest = mf.Metric[0].Gauge.GetValue()
		case "gmab_study_runs_total":
			gotRuns = mf.Metric[0].Counter.GetValue()
		case "gmab_study_objective_evals_total":
			gotEvals = mf.Metric[0].Counter.GetValue()
		}
	}
	if gotBest != 2 {
		t.Errorf("gmab_study_best_value = %v, want 2 (running minimum)", gotBest)
	}
	if gotRuns != 3 {
		t.Errorf("gmab_study_runs_total = %v, want 3", gotRuns)
	}
	if gotEvals != 30 {
		t.Errorf("gmab_study_objective_evals_total = %v, want 30", gotEvals)
	}
}
