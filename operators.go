package gmab

import "math"

// Crossover performs uniform crossover between two integer parent action
// vectors. With probability crossoverRate, each dimension independently
// copies the gene from parentA with probability 0.5, else from parentB;
// otherwise the result is simply a copy of parentA. Uniform crossover is
// used (rather than single- or two-point crossover) because it is robust
// across dimensions of differing influence: it doesn't assume adjacent
// genes are more related than distant ones.
func Crossover(parentA, parentB []int, crossoverRate float64, rng *SplitRNG) []int {
	size := len(parentA)
	child := make([]int, size)

	if !rng.Bool(crossoverRate) {
		copy(child, parentA)
		return child
	}

	for i := 0; i < size; i++ {
		if rng.Bool(0.5) {
			child[i] = parentA[i]
		} else {
			child[i] = parentB[i]
		}
	}
	return child
}

// Mutate perturbs an integer action vector, returning a new vector: for
// each dimension, with probability mutationRate, the gene is perturbed by
// a uniform integer drawn from [-span, +span] where
// span = ceil(mutationSpan * (hi - lo)), then clamped to [lo, hi].
// mutationSpan is a relative radius in (0, 1]: scale-aware mutation
// preserves locality in large ranges while still permitting global jumps
// when mutationSpan is large.
func Mutate(action []int, ss SearchSpace, mutationRate, mutationSpan float64, rng *SplitRNG) []int {
	out := make([]int, len(action))
	copy(out, action)

	for i, d := range ss {
		if !rng.Bool(mutationRate) {
			continue
		}
		span := int(math.Ceil(mutationSpan * float64(d.Hi-d.Lo)))
		if span < 1 {
			span = 1
		}
		perturb := rng.IntRange(-span, span)
		v := out[i] + perturb
		if v < d.Lo {
			v = d.Lo
		}
		if v > d.Hi {
			v = d.Hi
		}
		out[i] = v
	}
	return out
}

// ValidateOperatorConfig checks the three variation-operator knobs
// against their declared ranges, returning ErrInvalidConfig-wrapped
// errors for violations.
func ValidateOperatorConfig(mutationRate, crossoverRate, mutationSpan float64) error {
	if mutationRate < 0 || mutationRate > 1 {
		return configErrorf("mutation_rate must be in [0, 1], got %v", mutationRate)
	}
	if crossoverRate < 0 || crossoverRate > 1 {
		return configErrorf("crossover_rate must be in [0, 1], got %v", crossoverRate)
	}
	if mutationSpan <= 0 || mutationSpan > 1 {
		return configErrorf("mutation_span must be in (0, 1], got %v", mutationSpan)
	}
	return nil
}
