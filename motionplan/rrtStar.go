package motionplan

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.mechlab.dev/armplan/collision"
	"go.mechlab.dev/armplan/referenceframe"
	"go.mechlab.dev/armplan/spatialmath"
)

// noSolution marks a planner that has not yet inserted a goal-satisfying vertex.
const noSolution = -1

// rrtStarMotionPlanner is an asymptotically-optimal sampling planner. Each
// iteration steers from the nearest tree vertex toward a (goal-biased) random
// sample, validates the candidate against joint limits and the collision
// manager, connects it to the cheapest vertex within a shrinking neighbor
// radius, and rewires that neighborhood through the new vertex whenever doing
// so strictly lowers a recorded cost.
type rrtStarMotionPlanner struct {
	model    referenceframe.Model
	logger   golog.Logger
	randseed *rand.Rand
	opts     *PlannerOptions

	collisions *collision.Manager
	limits     []referenceframe.Limit
	start      []referenceframe.Input
	goal       []referenceframe.Input

	tree     *configurationTree
	solution int
}

// NewRRTStarMotionPlanner creates an RRT* planner for the given kinematic model.
func NewRRTStarMotionPlanner(model referenceframe.Model, logger golog.Logger) (MotionPlanner, error) {
	//nolint:gosec
	return NewRRTStarMotionPlannerWithSeed(model, rand.New(rand.NewSource(1)), logger, NewBasicPlannerOptions())
}

// NewRRTStarMotionPlannerWithSeed creates an RRT* planner with a user specified
// random source and options, enabling deterministic replay.
func NewRRTStarMotionPlannerWithSeed(
	model referenceframe.Model,
	seed *rand.Rand,
	logger golog.Logger,
	opts *PlannerOptions,
) (MotionPlanner, error) {
	if model == nil {
		return nil, errors.New("planner requires a kinematic model")
	}
	if seed == nil {
		//nolint:gosec
		seed = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = golog.NewDevelopmentLogger("rrtstar")
	}
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &rrtStarMotionPlanner{
		model:    model,
		logger:   logger,
		randseed: seed,
		opts:     opts,
		solution: noSolution,
	}, nil
}

// SetupStartGoal validates the endpoints, snapshots the model's joint limits,
// registers link and obstacle geometry with a fresh collision manager, and
// re-validates the start configuration against it. A start already in
// collision (excluding obstacle-obstacle pairs) is fatal and never retried.
func (mp *rrtStarMotionPlanner) SetupStartGoal(
	start, goal []referenceframe.Input,
	obstacles map[string]SphereObstacle,
) error {
	if len(start) == 0 {
		return newConfigurationError("start configuration must be supplied")
	}
	if len(goal) == 0 {
		return newConfigurationError("goal configuration must be supplied")
	}
	if len(start) != len(goal) {
		return newConfigurationError("start has %d joint values but goal has %d", len(start), len(goal))
	}
	limits := mp.model.DoF()
	if len(start) != len(limits) {
		return newConfigurationError("model %q expects %d joint values, got %d", mp.model.Name(), len(limits), len(start))
	}

	manager := collision.NewManager()
	geometries, err := mp.model.Geometries(start)
	if err != nil {
		return errors.Wrap(err, "unable to place robot geometry at the start configuration")
	}
	for _, name := range sortedKeys(geometries) {
		if err := manager.AddObject(name, geometries[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedObstacleKeys(obstacles) {
		obstacle := obstacles[name]
		geometry, err := spatialmath.NewSphere(
			spatialmath.NewPoseFromPoint(obstacle.Center), obstacle.Radius, obstaclePrefix+name)
		if err != nil {
			return errors.Wrapf(err, "unable to register obstacle %q", name)
		}
		if err := manager.AddObject(obstaclePrefix+name, geometry); err != nil {
			return err
		}
	}

	hit, pairs, err := manager.Check(true)
	if err != nil {
		return err
	}
	if hit {
		for _, pair := range pairs {
			if strings.HasPrefix(pair.Name1, obstaclePrefix) && strings.HasPrefix(pair.Name2, obstaclePrefix) {
				continue
			}
			return &CollisionError{Name1: pair.Name1, Name2: pair.Name2}
		}
	}

	mp.collisions = manager
	mp.limits = limits
	mp.start = start
	mp.goal = goal
	mp.tree = nil
	mp.solution = noSolution
	return nil
}

// GeneratePath drives the fixed-iteration sampling loop and extracts the
// cheapest goal-satisfying path found, or every iteration up to the first
// solution when ReturnFirstSolution is set.
func (mp *rrtStarMotionPlanner) GeneratePath(ctx context.Context) ([][]referenceframe.Input, error) {
	if mp.start == nil || mp.goal == nil {
		return nil, newConfigurationError("planner has no start and goal, call SetupStartGoal first")
	}

	mp.tree = newConfigurationTree()
	mp.tree.addVertex(mp.start)
	mp.solution = noSolution
	dof := len(mp.limits)

	// a start already within tolerance of the goal needs no search
	if inputDist(mp.start, mp.goal) <= mp.opts.GoalTolerance {
		mp.solution = 0
		return mp.tree.pathTo(0)
	}

	for k := 1; k <= mp.opts.PlanIter; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if k%mp.opts.LoggingCadence == 0 {
			mp.logger.Debugf("RRT* progress: %d/%d iterations, %d vertices", k, mp.opts.PlanIter, len(mp.tree.vertices))
		}

		target := mp.sample()
		nearestIdx := nearestNeighbor(mp.tree, target)
		newQ, ok := steer(mp.tree.vertices[nearestIdx], target, mp.opts.StepSize)
		if !ok {
			// the sample coincides with its nearest vertex, nothing to extend
			continue
		}

		if referenceframe.CheckLimits(newQ, mp.limits) != nil || !mp.collisionFree(newQ) {
			continue
		}

		radius := neighborRadius(mp.opts.NeighborGamma, mp.opts.StepSize, len(mp.tree.vertices), dof)
		neighbors := neighborsWithinRadius(mp.tree, newQ, radius)

		// connect through whichever neighbor yields the lowest cumulative cost;
		// ties keep the earlier candidate, starting from the nearest vertex
		parentIdx := nearestIdx
		minCost := mp.tree.cost(nearestIdx) + inputDist(mp.tree.vertices[nearestIdx], newQ)
		for _, i := range neighbors {
			if i == nearestIdx {
				continue
			}
			if cost := mp.tree.cost(i) + inputDist(mp.tree.vertices[i], newQ); cost < minCost {
				parentIdx = i
				minCost = cost
			}
		}

		newIdx := mp.tree.addVertex(newQ)
		if err := mp.tree.addEdge(parentIdx, newIdx); err != nil {
			return nil, err
		}
		mp.tree.setCost(newIdx, minCost)

		mp.rewire(neighbors, parentIdx, newIdx)

		if mp.opts.ReturnFirstSolution && inputDist(newQ, mp.goal) <= mp.opts.GoalTolerance {
			break
		}
	}

	mp.solution = mp.bestGoalVertex()
	if mp.solution == noSolution {
		return nil, ErrPlannerFailed
	}
	return mp.tree.pathTo(mp.solution)
}

// bestGoalVertex returns the index of the cheapest goal-satisfying vertex in
// the finished tree, or noSolution if none exists. Rewiring can lower the cost
// of any vertex after its insertion, so costs recorded when a vertex first
// reached the goal cannot be trusted; the whole tree is scanned instead.
func (mp *rrtStarMotionPlanner) bestGoalVertex() int {
	best := noSolution
	for i, q := range mp.tree.vertices {
		if inputDist(q, mp.goal) > mp.opts.GoalTolerance {
			continue
		}
		if best == noSolution || mp.tree.cost(i) < mp.tree.cost(best) {
			best = i
		}
	}
	return best
}

// Plan runs GeneratePath on a background goroutine and waits on either a result
// or context cancellation.
func (mp *rrtStarMotionPlanner) Plan(ctx context.Context) ([][]referenceframe.Input, error) {
	solutionChan := make(chan *planReturn, 1)
	goutils.PanicCapturingGo(func() {
		steps, err := mp.GeneratePath(ctx)
		solutionChan <- &planReturn{steps: steps, err: err}
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case plan := <-solutionChan:
		return plan.steps, plan.err
	}
}

// TreeEdges exports the (parent, child) configuration pairs of the most recent
// planning run's tree.
func (mp *rrtStarMotionPlanner) TreeEdges() [][2][]referenceframe.Input {
	if mp.tree == nil {
		return nil
	}
	return mp.tree.edges()
}

// sample draws the goal configuration with probability GoalBias, and otherwise
// draws each joint coordinate uniformly within its limits.
func (mp *rrtStarMotionPlanner) sample() []referenceframe.Input {
	if mp.randseed.Float64() < mp.opts.GoalBias {
		return mp.goal
	}
	return referenceframe.RandomInputs(mp.limits, mp.randseed)
}

// steer advances from the nearest vertex toward target by at most stepSize
// along the unit direction vector, never overshooting the target. Returns false
// when the target coincides with the nearest vertex exactly.
func steer(nearest, target []referenceframe.Input, stepSize float64) ([]referenceframe.Input, bool) {
	dist := inputDist(nearest, target)
	if dist == 0 {
		return nil, false
	}
	step := math.Min(stepSize, dist)
	newQ := make([]referenceframe.Input, len(nearest))
	for i, near := range nearest {
		newQ[i] = referenceframe.Input{Value: near.Value + (target[i].Value-near.Value)/dist*step}
	}
	return newQ, true
}

// rewire reconnects neighbors through the newly inserted vertex whenever that
// strictly lowers their recorded cost and the neighbor remains collision-free.
// A neighbor on the new vertex's own root path can never satisfy the strict
// improvement (its cost is already a lower bound on the new vertex's), so
// reparenting cannot introduce a cycle.
func (mp *rrtStarMotionPlanner) rewire(neighbors []int, parentIdx, newIdx int) {
	newQ := mp.tree.vertices[newIdx]
	for _, i := range neighbors {
		if i == parentIdx || i == 0 {
			continue
		}
		cost := mp.tree.cost(newIdx) + inputDist(newQ, mp.tree.vertices[i])
		if cost < mp.tree.cost(i) && mp.collisionFree(mp.tree.vertices[i]) {
			if err := mp.tree.setParent(i, newIdx); err != nil {
				continue
			}
			mp.tree.setCost(i, cost)
			mp.tree.refreshDescendantCosts(i)
		}
	}
}

// collisionFree propagates the configuration through the kinematic model,
// moves every registered link accordingly, and queries the collision manager.
// Contacts between two obstacles are ignored here as at setup; obstacles never
// move, so such contacts are permanent and say nothing about the robot.
func (mp *rrtStarMotionPlanner) collisionFree(q []referenceframe.Input) bool {
	poses, err := mp.model.Transform(q)
	if err != nil {
		return false
	}
	for name, pose := range poses {
		if !mp.collisions.HasObject(name) {
			continue
		}
		if err := mp.collisions.SetTransform(name, pose); err != nil {
			return false
		}
	}
	hit, pairs, err := mp.collisions.Check(true)
	if err != nil {
		return false
	}
	if !hit {
		return true
	}
	for _, pair := range pairs {
		if strings.HasPrefix(pair.Name1, obstaclePrefix) && strings.HasPrefix(pair.Name2, obstaclePrefix) {
			continue
		}
		return false
	}
	return true
}

func sortedKeys(m map[string]spatialmath.Geometry) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedObstacleKeys(m map[string]SphereObstacle) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
