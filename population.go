package gmab

import (
	"sort"
)

// Population is the ordered collection of arms a GMAB run maintains: a
// map from action vector to Arm (keys unique), plus a ranking recomputed
// lazily whenever the population is mutated.
type Population struct {
	capacity int
	arms     map[string]*Arm
	order    []string // insertion order of keys, stable across ties

	ranked    []*Arm
	rankValid bool
}

// NewPopulation creates an empty population with fixed capacity P. Use
// Initialize to fill it.
func NewPopulation(capacity int) *Population {
	return &Population{
		capacity: capacity,
		arms:     make(map[string]*Arm, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Len reports the current number of arms.
func (p *Population) Len() int { return len(p.arms) }

// Initialize draws P distinct random action vectors uniformly from the
// search space and inserts them as zero-pull arms. The population does
// not call the objective itself: the caller (the GMAB driver) is
// responsible for pulling each arm exactly once and recording the
// result before the population is considered initialized.
func (p *Population) Initialize(ss SearchSpace, rng *SplitRNG) ([]*Arm, error) {
	vectors, err := ss.SampleDistinct(p.capacity, rng)
	if err != nil {
		return nil, err
	}
	arms := make([]*Arm, 0, p.capacity)
	for _, v := range vectors {
		arm := NewArm(v)
		p.insert(arm)
		arms = append(arms, arm)
	}
	return arms, nil
}

func (p *Population) insert(arm *Arm) {
	key := encodeActionKey(arm.ActionVector)
	if _, exists := p.arms[key]; !exists {
		p.order = append(p.order, key)
	}
	p.arms[key] = arm
	p.rankValid = false
}

func (p *Population) remove(key string) {
	delete(p.arms, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.rankValid = false
}

// Get returns the arm with the given action vector, if present.
func (p *Population) Get(actionVector []int) (*Arm, bool) {
	arm, ok := p.arms[encodeActionKey(actionVector)]
	return arm, ok
}

// All returns every arm currently in the population, in insertion order.
// The caller must not mutate the returned arms' ActionVector field.
func (p *Population) All() []*Arm {
	out := make([]*Arm, 0, len(p.order))
	for _, k := range p.order {
		out = append(out, p.arms[k])
	}
	return out
}

// Rank returns arms ordered ascending by mean (minimization); ties are
// broken by higher n_pulls (a more-confident estimate wins), then by
// lexicographic action vector. The ranking is cached until the next
// mutating operation (Initialize, insert via ReplaceWorst, or a direct
// RecordPull on one of its arms is NOT tracked here — callers that pull
// an existing arm must call Invalidate).
func (p *Population) Rank() []*Arm {
	if p.rankValid && p.ranked != nil {
		return p.ranked
	}
	arms := p.All()
	sort.Slice(arms, func(i, j int) bool {
		a, b := arms[i], arms[j]
		if a.Mean != b.Mean {
			return a.Mean < b.Mean
		}
		if a.NPulls != b.NPulls {
			return a.NPulls > b.NPulls
		}
		return lexLess(a.ActionVector, b.ActionVector)
	})
	p.ranked = arms
	p.rankValid = true
	return arms
}

// Invalidate drops the cached ranking. Call this after mutating an arm
// already present in the population (e.g. after a re-pull's RecordPull).
func (p *Population) Invalidate() {
	p.rankValid = false
}

// ReplaceWorst inserts offspring into the population. If an arm with the
// same action vector already exists, offspring's single pull is merged
// into the existing arm (Arm.merge) and no population member is
// displaced. Otherwise the currently worst-ranked arm is always evicted
// and offspring takes its place, even when that arm is also the
// best-ranked one. Elitism is enforced by the GMAB driver, which skips
// calling ReplaceWorst when doing so would evict the best arm.
func (p *Population) ReplaceWorst(offspring *Arm) error {
	key := encodeActionKey(offspring.ActionVector)
	if existing, ok := p.arms[key]; ok {
		existing.merge(offspring)
		p.rankValid = false
		return nil
	}

	ranked := p.Rank()
	if len(ranked) == 0 {
		p.insert(offspring)
		return nil
	}
	worst := ranked[len(ranked)-1]
	worstKey := encodeActionKey(worst.ActionVector)
	p.remove(worstKey)
	p.insert(offspring)
	return nil
}

// Worst returns the currently worst-ranked arm, or nil if the population
// is empty.
func (p *Population) Worst() *Arm {
	ranked := p.Rank()
	if len(ranked) == 0 {
		return nil
	}
	return ranked[len(ranked)-1]
}

// Best returns the currently best-ranked arm, or nil if the population is
// empty.
func (p *Population) Best() *Arm {
	ranked := p.Rank()
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// lexLess reports whether a is lexicographically less than b, used as
// the final ranking tie-break.
func lexLess(a, b []int) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
