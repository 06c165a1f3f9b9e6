package gmab

import (
	"errors"
	"testing"
)

func validTestConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Objective = func(x []int) float64 { return float64(x[0]) }
	cfg.SearchSpace = SearchSpace{{Lo: 0, Hi: 100}}
	cfg.PopulationSize = 10
	cfg.Budget = 1000
	return cfg
}

func TestConfigValidateAccepts(t *testing.T) {
	if err := validTestConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidateRejectsNilObjective(t *testing.T) {
	cfg := validTestConfig()
	cfg.Objective = nil
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() with nil Objective = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsSmallPopulation(t *testing.T) {
	cfg := validTestConfig()
	cfg.PopulationSize = 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() with population_size=1 = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidatePopulationSizeEqualsCardinalityIsAllowed(t *testing.T) {
	cfg := validTestConfig()
	cfg.SearchSpace = SearchSpace{{Lo: 0, Hi: 9}} // cardinality 10
	cfg.PopulationSize = 10
	cfg.Budget = 10
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with population_size == cardinality = %v, want nil", err)
	}
}

func TestConfigValidateRejectsPopulationExceedingCardinality(t *testing.T) {
	cfg := validTestConfig()
	cfg.SearchSpace = SearchSpace{{Lo: 0, Hi: 9}} // cardinality 10
	cfg.PopulationSize = 11
	cfg.Budget = 11
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() with population_size > cardinality = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsBudgetBelowPopulation(t *testing.T) {
	cfg := validTestConfig()
	cfg.Budget = cfg.PopulationSize - 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() with budget < population_size = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidateRejectsBadOperatorRates(t *testing.T) {
	cfg := validTestConfig()
	cfg.MutationRate = 2.0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() with mutation_rate=2.0 = %v, want ErrInvalidConfig", err)
	}
}
