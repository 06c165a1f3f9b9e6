package gmab

import "fmt"

// Sentinel errors identifying the taxonomy a GMAB run can fail with.
//
// InvalidConfig and InvalidObjective are ordinary, expected failure modes
// and should be handled by callers. BudgetExhausted signals an internal
// invariant violation in the driver and is never expected to surface from
// correct code; it is kept distinct from a panic only so tests can assert
// on it. Cancelled is not an error in the usual sense — it reports that a
// run returned partial results because the caller asked it to stop.
var (
	ErrInvalidConfig    = fmt.Errorf("gmab: invalid config")
	ErrInvalidObjective = fmt.Errorf("gmab: objective returned a non-finite value")
	ErrBudgetExhausted  = fmt.Errorf("gmab: internal error: evaluation attempted with exhausted budget")
	ErrCancelled        = fmt.Errorf("gmab: run cancelled")
	ErrDuplicate        = fmt.Errorf("gmab: duplicate action vector")
)

// InvalidObjectiveError wraps ErrInvalidObjective with the action vector
// that produced the offending non-finite value, so callers can inspect
// which candidate broke the objective contract.
type InvalidObjectiveError struct {
	ActionVector []int
	Value        float64
}

func (e *InvalidObjectiveError) Error() string {
	return fmt.Sprintf("gmab: objective returned non-finite value %v for action vector %v", e.Value, e.ActionVector)
}

func (e *InvalidObjectiveError) Unwrap() error {
	return ErrInvalidObjective
}

// ConfigError wraps ErrInvalidConfig with a human-readable reason.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gmab: invalid config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
