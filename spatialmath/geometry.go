package spatialmath

import "github.com/pkg/errors"

// CollisionBuffer is the distance at or below which two geometries are
// considered to be in collision.
const CollisionBuffer = 1e-8

// Geometry is an entry point with which to access all types of collision geometries.
type Geometry interface {
	// Label returns the name of the geometry.
	Label() string

	// Pose returns the pose of the geometry.
	Pose() Pose

	// Transform moves the geometry to the given pose.
	Transform(Pose)

	// CollidesWith returns a bool describing if the geometry and the given one
	// are currently in collision.
	CollidesWith(Geometry) (bool, error)

	// DistanceFrom returns the distance to the given geometry. Negative values
	// describe penetration depth.
	DistanceFrom(Geometry) (float64, error)
}

func newBadGeometryDimensionsError(geometryType string) error {
	return errors.Errorf("invalid dimensions for %s geometry, need positive values", geometryType)
}

func newCollisionTypeUnsupportedError(g1, g2 Geometry) error {
	return errors.Errorf("collisions between %T and %T are not supported", g1, g2)
}
