package motionplan

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// max joint-space distance a single tree extension may cover.
	defaultStepSize = 0.5

	// probability that a sampling step draws the goal configuration directly.
	defaultGoalBias = 0.1

	// scaling constant for the shrinking neighbor radius. Must exceed the step size.
	defaultNeighborGamma = 300.

	// Number of planner iterations before giving up.
	defaultPlanIter = 3000

	// Euclidean distance within which a vertex satisfies the goal.
	defaultGoalTolerance = 0.2

	// Number of iterations between progress log lines.
	defaultLoggingCadence = 300
)

// PlannerOptions are a set of options to be passed to a planner which will
// specify how to solve a motion planning problem.
type PlannerOptions struct {
	// StepSize bounds how far a single extension moves toward a sample.
	StepSize float64 `json:"step_size"`

	// GoalBias is the probability that a sample is the goal configuration itself.
	GoalBias float64 `json:"goal_bias"`

	// NeighborGamma scales the shrinking RRT* neighbor radius.
	NeighborGamma float64 `json:"neighbor_gamma"`

	// PlanIter is the number of planner iterations before giving up.
	PlanIter int `json:"plan_iter"`

	// GoalTolerance is the distance within which a vertex satisfies the goal.
	GoalTolerance float64 `json:"goal_tolerance"`

	// ReturnFirstSolution stops the planner at the first goal-satisfying vertex
	// instead of spending the full iteration budget improving the tree and
	// tracking the cheapest solution found.
	ReturnFirstSolution bool `json:"return_first_solution"`

	// LoggingCadence is the number of iterations between progress log lines.
	LoggingCadence int `json:"logging_cadence"`
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
// All values are pre-set to reasonable defaults, but can be tweaked if needed.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		StepSize:       defaultStepSize,
		GoalBias:       defaultGoalBias,
		NeighborGamma:  defaultNeighborGamma,
		PlanIter:       defaultPlanIter,
		GoalTolerance:  defaultGoalTolerance,
		LoggingCadence: defaultLoggingCadence,
	}
}

// SetExtraOptions overrides individual option fields from a loosely-typed map,
// such as one deserialized from a request. Unknown keys are ignored.
func (opts *PlannerOptions) SetExtraOptions(extra map[string]interface{}) error {
	// convert map to json
	jsonString, err := json.Marshal(extra)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonString, opts)
}

// validate returns every structural problem with the options at once.
func (opts *PlannerOptions) validate() error {
	var err error
	if opts.StepSize <= 0 {
		err = multierr.Append(err, errors.Errorf("step size must be positive, got %f", opts.StepSize))
	}
	if opts.GoalBias < 0 || opts.GoalBias > 1 {
		err = multierr.Append(err, errors.Errorf("goal bias must be a probability, got %f", opts.GoalBias))
	}
	if opts.NeighborGamma < opts.StepSize {
		err = multierr.Append(err, errors.Errorf("neighbor gamma %f must be at least the step size %f", opts.NeighborGamma, opts.StepSize))
	}
	if opts.PlanIter <= 0 {
		err = multierr.Append(err, errors.Errorf("iteration budget must be positive, got %d", opts.PlanIter))
	}
	if opts.GoalTolerance <= 0 {
		err = multierr.Append(err, errors.Errorf("goal tolerance must be positive, got %f", opts.GoalTolerance))
	}
	if opts.LoggingCadence <= 0 {
		err = multierr.Append(err, errors.Errorf("logging cadence must be positive, got %d", opts.LoggingCadence))
	}
	return err
}
