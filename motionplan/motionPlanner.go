// Package motionplan plans collision-free paths through a robot's joint
// configuration space.
package motionplan

import (
	"context"

	"github.com/golang/geo/r3"

	"go.mechlab.dev/armplan/referenceframe"
)

// MotionPlanner plans a collision-free joint-space path from a start to a goal
// configuration. Implementations own their search tree exclusively and are not
// safe for concurrent use; a planner may be reused by calling SetupStartGoal
// again with a new start and goal.
type MotionPlanner interface {
	// SetupStartGoal validates the start and goal configurations, registers the
	// robot's link geometries and the given obstacles for collision checking,
	// and verifies that the start configuration is not already in collision.
	// Failures are a *ConfigurationError or a *CollisionError.
	SetupStartGoal(start, goal []referenceframe.Input, obstacles map[string]SphereObstacle) error

	// GeneratePath runs the planning loop and returns a waypoint sequence
	// ordered from the start configuration to a goal-satisfying configuration.
	// Exhausting the iteration budget without reaching the goal returns
	// ErrPlannerFailed.
	GeneratePath(ctx context.Context) ([][]referenceframe.Input, error)

	// Plan runs GeneratePath on a background goroutine and waits on either its
	// result or context cancellation.
	Plan(ctx context.Context) ([][]referenceframe.Input, error)

	// TreeEdges exports the search tree's (parent, child) configuration pairs.
	// Diagnostic and visualization use only.
	TreeEdges() [][2][]referenceframe.Input
}

// SphereObstacle describes a static spherical obstacle by world position and
// radius. Obstacles are registered once at setup and never moved by the
// planner; richer shapes can be supplied to a collision.Manager directly.
type SphereObstacle struct {
	Center r3.Vector
	Radius float64
}

// obstaclePrefix marks collision entities registered from the obstacle channel.
// Contacts between two such entities are ignored by the setup-time start check.
const obstaclePrefix = "obstacle_"

type planReturn struct {
	steps [][]referenceframe.Input
	err   error
}

// inputDist returns the Euclidean distance between two configurations.
func inputDist(a, b []referenceframe.Input) float64 {
	return referenceframe.InputsL2Distance(a, b)
}
