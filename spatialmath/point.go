package spatialmath

import "fmt"

// point is a collision geometry that represents a single point in 3D space that
// occupies no geometry.
type point struct {
	position Pose
	label    string
}

// NewPoint instantiates a new point Geometry.
func NewPoint(position Pose, label string) Geometry {
	return &point{position: position, label: label}
}

// Label returns the label of this point.
func (pt *point) Label() string {
	return pt.label
}

// Pose returns the pose of the point.
func (pt *point) Pose() Pose {
	return pt.position
}

// Transform moves the point to the given pose.
func (pt *point) Transform(pose Pose) {
	pt.position = pose
}

// String returns a human readable string that represents the point.
func (pt *point) String() string {
	p := pt.position.Point()
	return fmt.Sprintf("Type: Point, Position: X:%.1f, Y:%.1f, Z:%.1f", p.X, p.Y, p.Z)
}

// CollidesWith checks if the given point collides with the given geometry and
// returns true if it does.
func (pt *point) CollidesWith(g Geometry) (bool, error) {
	dist, err := pt.DistanceFrom(g)
	if err != nil {
		return true, err
	}
	return dist <= CollisionBuffer, nil
}

// DistanceFrom returns the minimum distance from the point to the surface of
// the given geometry.
func (pt *point) DistanceFrom(g Geometry) (float64, error) {
	switch other := g.(type) {
	case *sphere:
		return sphereVsPointDistance(other, pt.position.Point()), nil
	case *point:
		return pt.position.Point().Sub(other.position.Point()).Norm(), nil
	default:
		return 0, newCollisionTypeUnsupportedError(pt, g)
	}
}
