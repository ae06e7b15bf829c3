// Package spatialmath defines spatial mathematical operations and the collision
// geometries evaluated against them.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.mechlab.dev/armplan/utils"
)

// Pose represents a rigid position and orientation in 3D space.
type Pose interface {
	// Point returns the translation component of the pose.
	Point() r3.Vector

	// Orientation returns the rotation component of the pose as a unit quaternion.
	Orientation() quat.Number
}

type basicPose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewZeroPose returns a pose at the origin with an identity orientation.
// Since the real part of an identity quaternion is 1, not 0, this should be used
// instead of &basicPose{}.
func NewZeroPose() Pose {
	return &basicPose{orientation: quat.Number{Real: 1}}
}

// NewPoseFromPoint takes in a position and returns a Pose with that position and
// an identity orientation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &basicPose{point: point, orientation: quat.Number{Real: 1}}
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return &basicPose{point: point, orientation: orientation}
}

func (p *basicPose) Point() r3.Vector {
	return p.point
}

func (p *basicPose) Orientation() quat.Number {
	return p.orientation
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function
// C(x) = A(B(x)). It converts the poses to quaternions and multiplies them together,
// normalizing the orientation to account for floating point error.
func Compose(a, b Pose) Pose {
	qa := a.Orientation()
	return &basicPose{
		point:       a.Point().Add(rotateVectorByQuaternion(qa, b.Point())),
		orientation: normalizeQuaternion(quat.Mul(qa, b.Orientation())),
	}
}

// PoseAlmostEqual returns a checks if both poses are approximately equal.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		quaternionAlmostEqual(a.Orientation(), b.Orientation(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all of
// their components are within epsilon of each other.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

// quaternionAlmostEqual accounts for the double cover of rotation quaternions,
// q and -q describe the same orientation.
func quaternionAlmostEqual(a, b quat.Number, epsilon float64) bool {
	same := utils.Float64AlmostEqual(a.Real, b.Real, epsilon) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, epsilon) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, epsilon) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, epsilon)
	flipped := utils.Float64AlmostEqual(a.Real, -b.Real, epsilon) &&
		utils.Float64AlmostEqual(a.Imag, -b.Imag, epsilon) &&
		utils.Float64AlmostEqual(a.Jmag, -b.Jmag, epsilon) &&
		utils.Float64AlmostEqual(a.Kmag, -b.Kmag, epsilon)
	return same || flipped
}

func rotateVectorByQuaternion(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, qv), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

func normalizeQuaternion(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}
