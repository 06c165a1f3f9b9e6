package gmab

// SampleAllocationPolicy decides, at each GMAB iteration, which
// already-evaluated arms deserve a re-pull before the GA commits to
// ranking them, and how many offspring to generate. It is the
// multi-armed-bandit layer of GMAB: a simple UCB-flavored rule, since the
// best-looking arms by current mean are exactly the ones whose rank is
// most vulnerable to noise.
type SampleAllocationPolicy struct {
	populationSize int
}

// NewSampleAllocationPolicy builds the policy for a population of the
// given fixed size.
func NewSampleAllocationPolicy(populationSize int) *SampleAllocationPolicy {
	return &SampleAllocationPolicy{populationSize: populationSize}
}

// RePullCount is k = max(1, floor(P / 4)): the number of top-ranked arms
// re-pulled once per iteration.
func (p *SampleAllocationPolicy) RePullCount() int {
	k := p.populationSize / 4
	if k < 1 {
		k = 1
	}
	return k
}

// OffspringCount is g = P / 2: the number of offspring generated and
// evaluated per iteration.
func (p *SampleAllocationPolicy) OffspringCount() int {
	return p.populationSize / 2
}

// Allocate selects the top-k arms (by current ranking) to re-pull this
// iteration and reports how many offspring slots remain given the
// evaluation budget left. If budget is smaller than k+g, re-pulls are
// prioritized first and the offspring count is truncated to whatever
// remains — the iteration still runs, just truncated, and the caller's
// outer loop terminates once budget reaches zero.
func (p *SampleAllocationPolicy) Allocate(pop *Population, budgetRemaining int) (rePulls []*Arm, offspringBudget int) {
	k := p.RePullCount()
	ranked := pop.Rank()
	if k > len(ranked) {
		k = len(ranked)
	}
	if k > budgetRemaining {
		k = budgetRemaining
	}
	rePulls = ranked[:k]

	remaining := budgetRemaining - k
	g := p.OffspringCount()
	if g > remaining {
		g = remaining
	}
	if g < 0 {
		g = 0
	}
	return rePulls, g
}
