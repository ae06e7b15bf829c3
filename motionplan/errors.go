package motionplan

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrPlannerFailed is returned when the iteration budget is exhausted without a
// goal-satisfying vertex being found. It is the sole runtime failure signal;
// callers may retry with a larger budget, a looser tolerance, or another seed.
var ErrPlannerFailed = errors.New("motion planner failed to find path")

// ConfigurationError indicates that a start or goal configuration was missing or
// malformed at setup time. It is fatal and never retried.
type ConfigurationError struct {
	msg string
}

func newConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

// CollisionError indicates that the start configuration was already in collision
// at setup time. Name1 and Name2 identify the offending geometry pair.
type CollisionError struct {
	Name1, Name2 string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("start configuration is in collision between %q and %q", e.Name1, e.Name2)
}
