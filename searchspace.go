package gmab

import "fmt"

// Dim is the inclusive integer bound of one dimension of an action vector.
type Dim struct {
	Lo, Hi int
}

// SearchSpace is an ordered sequence of per-dimension integer bounds, one
// per coordinate of an action vector. Every arm's action vector in a run
// has len(SearchSpace) coordinates, and coordinate i always lies within
// SearchSpace[i].
type SearchSpace []Dim

// Validate checks Lo <= Hi for every dimension.
func (ss SearchSpace) Validate() error {
	if len(ss) == 0 {
		return configErrorf("search space must have at least one dimension")
	}
	for i, d := range ss {
		if d.Lo > d.Hi {
			return configErrorf("dimension %d: lo (%d) > hi (%d)", i, d.Lo, d.Hi)
		}
	}
	return nil
}

// Cardinality returns the number of distinct action vectors the search
// space contains: the product of (hi - lo + 1) across dimensions. ok is
// false (and n is 0) if that product would exceed 2^62, a ceiling kept
// below the int64 limit.
func (ss SearchSpace) Cardinality() (n int, ok bool) {
	n = 1
	for _, d := range ss {
		width := d.Hi - d.Lo + 1
		if width <= 0 {
			return 0, false
		}
		if n > (1<<62)/width {
			return 0, false
		}
		n *= width
	}
	return n, true
}

// Contains reports whether action is a valid point in the search space:
// same dimensionality, every coordinate within its bound.
func (ss SearchSpace) Contains(action []int) bool {
	if len(action) != len(ss) {
		return false
	}
	for i, d := range ss {
		if action[i] < d.Lo || action[i] > d.Hi {
			return false
		}
	}
	return true
}

// Sample draws one action vector uniformly at random from the search
// space.
func (ss SearchSpace) Sample(rng *SplitRNG) []int {
	action := make([]int, len(ss))
	for i, d := range ss {
		action[i] = rng.IntRange(d.Lo, d.Hi)
	}
	return action
}

// SampleDistinct draws k action vectors, no two equal, uniformly from the
// search space. It returns an error if k exceeds the space's cardinality.
func (ss SearchSpace) SampleDistinct(k int, rng *SplitRNG) ([][]int, error) {
	card, ok := ss.Cardinality()
	if ok && k > card {
		return nil, configErrorf("population_size (%d) exceeds search-space cardinality (%d)", k, card)
	}

	seen := make(map[string]struct{}, k)
	out := make([][]int, 0, k)
	// Dense bounded spaces converge quickly even at high fill ratios;
	// this is a rejection sampler, not an enumeration, so guard against
	// pathological near-saturated spaces with a generous attempt cap.
	maxAttempts := k * 200
	if maxAttempts < 10000 {
		maxAttempts = 10000
	}
	for attempt := 0; len(out) < k; attempt++ {
		if attempt > maxAttempts {
			return nil, fmt.Errorf("gmab: could not draw %d distinct action vectors from search space after %d attempts", k, attempt)
		}
		action := ss.Sample(rng)
		key := encodeActionKey(action)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, action)
	}
	return out, nil
}
