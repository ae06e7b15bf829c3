package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// sphere is a collision geometry that represents a sphere, it has a pose and a
// radius that fully define it.
type sphere struct {
	pose   Pose
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(offset Pose, radius float64, label string) (Geometry, error) {
	if radius <= 0 {
		return nil, newBadGeometryDimensionsError("sphere")
	}
	return &sphere{pose: offset, radius: radius, label: label}, nil
}

// Label returns the label of this sphere.
func (s *sphere) Label() string {
	return s.label
}

// Pose returns the pose of the sphere.
func (s *sphere) Pose() Pose {
	return s.pose
}

// Transform moves the sphere to the given pose.
func (s *sphere) Transform(pose Pose) {
	s.pose = pose
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	return fmt.Sprintf("Type: Sphere, Radius: %.3f", s.radius)
}

// CollidesWith checks if the given sphere collides with the given geometry and
// returns true if it does.
func (s *sphere) CollidesWith(g Geometry) (bool, error) {
	dist, err := s.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= CollisionBuffer, nil
}

// DistanceFrom returns the minimum distance from the sphere to the surface of
// the given geometry.
func (s *sphere) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return sphereVsSphereDistance(s, other), nil
	case *point:
		return sphereVsPointDistance(s, other.position.Point()), nil
	default:
		return 0, newCollisionTypeUnsupportedError(s, g)
	}
}

// sphereVsSphereDistance takes two spheres as arguments and returns a floating point
// number. If this number is nonpositive it represents the penetration depth for the
// two spheres, which are in collision.
func sphereVsSphereDistance(a, b *sphere) float64 {
	return a.pose.Point().Sub(b.pose.Point()).Norm() - (a.radius + b.radius)
}

// sphereVsPointDistance takes a sphere and a point as arguments and returns a
// floating point number. If this number is nonpositive it represents the
// penetration depth of the point within the sphere.
func sphereVsPointDistance(s *sphere, pt r3.Vector) float64 {
	return s.pose.Point().Sub(pt).Norm() - s.radius
}
