package gmab

import (
	"context"
	"testing"
)

func BenchmarkArmRecordPull(b *testing.B) {
	arm := NewArm([]int{1, 2, 3})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = arm.RecordPull(float64(i % 97))
	}
}

func BenchmarkPopulationRank(b *testing.B) {
	pop := NewPopulation(200)
	ss := SearchSpace{{Lo: 0, Hi: 100000}}
	rng := NewSplitRNG(7)
	arms, err := pop.Initialize(ss, rng)
	if err != nil {
		b.Fatalf("Initialize: %v", err)
	}
	for i, a := range arms {
		_ = a.RecordPull(float64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pop.Invalidate()
		_ = pop.Rank()
	}
}

func BenchmarkPopulationReplaceWorst(b *testing.B) {
	pop := NewPopulation(200)
	ss := SearchSpace{{Lo: 0, Hi: 1000000}}
	rng := NewSplitRNG(7)
	if _, err := pop.Initialize(ss, rng); err != nil {
		b.Fatalf("Initialize: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		arm := NewArm([]int{i + 1000000})
		_ = arm.RecordPull(float64(i))
		_ = pop.ReplaceWorst(arm)
	}
}

func BenchmarkOptimizeRosenbrock(b *testing.B) {
	cfg := NewDefaultConfig()
	cfg.Objective = IntRosenbrock
	cfg.SearchSpace = SearchSpace{{Lo: -5, Hi: 10}, {Lo: -5, Hi: 10}}
	cfg.PopulationSize = 20
	cfg.Budget = 2000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Optimize(context.Background(), cfg, int64(i)); err != nil {
			b.Fatalf("Optimize: %v", err)
		}
	}
}
