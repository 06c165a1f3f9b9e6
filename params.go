package gmab

import "math"

// Param is the closed set of parameter shapes a GMAB search space can be
// built from: Integer, Float (discretized into steps), and Categorical.
// Each reduces to an internal integer bound plus a pure decode function,
// so the GMAB core only ever sees integer action vectors (spec §4.6).
type Param interface {
	// Bounds returns the internal integer bound this parameter occupies
	// inside the action vector.
	Bounds() Dim
	// Decode maps an internal action value within Bounds() to the
	// user-facing decoded value. Decode is a pure total function once
	// the parameter has been validated: it never fails.
	Decode(x int) any
}

// IntParam is an integer parameter over [Lo, Hi] with an optional step.
// Internal bounds are (Lo, Lo + floor((Hi-Lo)/Step) + (1 if remainder
// else 0)); decoding maps internal x back to min(Lo + (x-Lo)*Step, Hi)
// when Step > 1, else the identity.
type IntParam struct {
	Lo, Hi int
	Step   int // 0 or 1 means unit step
}

// NewIntParam validates and builds an IntParam.
func NewIntParam(lo, hi, step int) (*IntParam, error) {
	if lo > hi {
		return nil, configErrorf("IntParam: lo (%d) > hi (%d)", lo, hi)
	}
	if step < 0 {
		return nil, configErrorf("IntParam: step must be >= 0, got %d", step)
	}
	if step == 0 {
		step = 1
	}
	return &IntParam{Lo: lo, Hi: hi, Step: step}, nil
}

func (p *IntParam) Bounds() Dim {
	span := p.Hi - p.Lo
	n := span / p.Step
	if span%p.Step != 0 {
		n++
	}
	return Dim{Lo: p.Lo, Hi: p.Lo + n}
}

func (p *IntParam) Decode(x int) any {
	if p.Step <= 1 {
		return x
	}
	v := p.Lo + (x-p.Lo)*p.Step
	if v > p.Hi {
		v = p.Hi
	}
	return v
}

// FloatParam is a float parameter over [Lo, Hi], discretized into NSteps
// internal integer steps, optionally decoded on a log scale. Internal
// bounds are always (0, NSteps). Linear decoding maps x to
// Lo + (Hi-Lo)*(x/NSteps); log decoding maps x to
// exp(log(Lo) + (log(Hi)-log(Lo))*(x/NSteps)) and requires Lo > 0.
type FloatParam struct {
	Lo, Hi float64
	NSteps int
	Log    bool
}

// NewFloatParam validates and builds a FloatParam.
func NewFloatParam(lo, hi float64, nsteps int, log bool) (*FloatParam, error) {
	if lo >= hi {
		return nil, configErrorf("FloatParam: lo (%v) must be < hi (%v)", lo, hi)
	}
	if nsteps < 1 {
		return nil, configErrorf("FloatParam: nsteps must be >= 1, got %d", nsteps)
	}
	if log && lo <= 0 {
		return nil, configErrorf("FloatParam: log mode requires lo > 0, got %v", lo)
	}
	return &FloatParam{Lo: lo, Hi: hi, NSteps: nsteps, Log: log}, nil
}

func (p *FloatParam) Bounds() Dim {
	return Dim{Lo: 0, Hi: p.NSteps}
}

func (p *FloatParam) Decode(x int) any {
	t := float64(x) / float64(p.NSteps)
	if !p.Log {
		return p.Lo + (p.Hi-p.Lo)*t
	}
	logLo := math.Log(p.Lo)
	logHi := math.Log(p.Hi)
	return math.Exp(logLo + (logHi-logLo)*t)
}

// CategoricalParam is a finite ordered sequence of choices. Internal
// bounds are (0, len(choices)-1); decoding maps internal x to
// choices[x].
type CategoricalParam struct {
	Choices []string
}

// NewCategoricalParam validates and builds a CategoricalParam.
func NewCategoricalParam(choices []string) (*CategoricalParam, error) {
	if len(choices) == 0 {
		return nil, configErrorf("CategoricalParam: choices must not be empty")
	}
	cp := make([]string, len(choices))
	copy(cp, choices)
	return &CategoricalParam{Choices: cp}, nil
}

func (p *CategoricalParam) Bounds() Dim {
	return Dim{Lo: 0, Hi: len(p.Choices) - 1}
}

func (p *CategoricalParam) Decode(x int) any {
	return p.Choices[x]
}

// ParamSet is an ordered list of parameters that together define a
// search space: one dimension of the internal action vector per
// parameter, in order.
type ParamSet []Param

// SearchSpace derives the internal SearchSpace that the GMAB core
// operates over.
func (ps ParamSet) SearchSpace() SearchSpace {
	ss := make(SearchSpace, len(ps))
	for i, p := range ps {
		ss[i] = p.Bounds()
	}
	return ss
}

// Decode maps an internal action vector to the user-facing decoded
// parameter values, one per parameter in order.
func (ps ParamSet) Decode(action []int) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p.Decode(action[i])
	}
	return out
}
