package gmab

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Arm is one point in the integer search space plus its accumulated
// empirical value statistics: how many times the objective has been
// pulled at this action vector, and the running mean/variance of the
// observed rewards.
type Arm struct {
	ActionVector []int
	NPulls       int
	Mean         float64
	M2           float64 // Welford running sum of squared deviations
}

// NewArm creates a fresh arm with zero pulls. The arm is not considered
// valid inside a population until RecordPull has been called at least
// once (spec invariant: n_pulls >= 1 once an arm is in the population).
func NewArm(actionVector []int) *Arm {
	av := make([]int, len(actionVector))
	copy(av, actionVector)
	return &Arm{ActionVector: av}
}

// RecordPull folds a new observed reward into the arm's running
// statistics via Welford's online algorithm. Welford's method is used
// instead of tracking a sum and sum-of-squares because rewards have no
// known scale and naive sum-of-squares loses precision once n_pulls grows
// into the thousands; it is also used instead of storing every sample,
// which would blow memory for high-budget runs.
func (a *Arm) RecordPull(reward float64) error {
	if a.NPulls == math.MaxInt {
		return fmt.Errorf("gmab: arm %v: n_pulls overflow: %w", a.ActionVector, ErrInvalidConfig)
	}
	a.NPulls++
	delta := reward - a.Mean
	a.Mean += delta / float64(a.NPulls)
	delta2 := reward - a.Mean
	a.M2 += delta * delta2
	return nil
}

// Variance is the unbiased sample variance of observed rewards, over all
// pulls of this arm (spec.md §9 resolves the ambiguity between "all
// pulls" and "only offspring-era pulls" in favor of all pulls, since
// duplicate action vectors are merged on insertion rather than tracked
// separately). Reports 0 when NPulls is 0 or 1 rather than dividing by
// zero.
func (a *Arm) Variance() float64 {
	if a.NPulls < 2 {
		return 0
	}
	return a.M2 / float64(a.NPulls-1)
}

// StdDev is the square root of Variance.
func (a *Arm) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// Clone returns a deep copy of the arm.
func (a *Arm) Clone() *Arm {
	clone := &Arm{
		ActionVector: make([]int, len(a.ActionVector)),
		NPulls:       a.NPulls,
		Mean:         a.Mean,
		M2:           a.M2,
	}
	copy(clone.ActionVector, a.ActionVector)
	return clone
}

// merge folds other's statistics into a as if every pull recorded on
// other had instead been recorded on a, combining two Welford
// accumulators (used when replace_worst finds the offspring's action
// vector already present in the population).
func (a *Arm) merge(other *Arm) {
	if other.NPulls == 0 {
		return
	}
	if a.NPulls == 0 {
		a.NPulls = other.NPulls
		a.Mean = other.Mean
		a.M2 = other.M2
		return
	}
	n1, n2 := float64(a.NPulls), float64(other.NPulls)
	delta := other.Mean - a.Mean
	total := n1 + n2
	newMean := a.Mean + delta*n2/total
	newM2 := a.M2 + other.M2 + delta*delta*n1*n2/total
	a.NPulls += other.NPulls
	a.Mean = newMean
	a.M2 = newM2
}

// encodeActionKey produces a comparable map key for an action vector.
// It is a fixed-width big-endian binary encoding rather than a
// fmt.Sprintf-formatted string: formatting is both slower (allocates and
// runs through the reflection-based verb dispatcher) and ambiguous
// between e.g. the vectors [12] and [1, 2] unless a separator is chosen
// and escaped carefully. Binary encoding has neither problem.
func encodeActionKey(action []int) string {
	buf := make([]byte, 8*len(action))
	for i, v := range action {
		binary.BigEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return string(buf)
}
