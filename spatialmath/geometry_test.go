package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestNewSphere(t *testing.T) {
	_, err := NewSphere(NewZeroPose(), 0, "bad")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewSphere(NewZeroPose(), -1, "bad")
	test.That(t, err, test.ShouldNotBeNil)

	geometry, err := NewSphere(NewPoseFromPoint(r3.Vector{X: 1}), 0.5, "ball")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, geometry.Label(), test.ShouldEqual, "ball")
	test.That(t, geometry.Pose().Point(), test.ShouldResemble, r3.Vector{X: 1})
}

func TestSphereCollision(t *testing.T) {
	a, err := NewSphere(NewZeroPose(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := NewSphere(NewPoseFromPoint(r3.Vector{X: 1.5}), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	hit, err := a.CollidesWith(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeTrue)

	dist, err := a.DistanceFrom(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dist, test.ShouldAlmostEqual, -0.5, 1e-9)

	// transforming b out of contact clears the collision
	b.Transform(NewPoseFromPoint(r3.Vector{X: 3}))
	hit, err = a.CollidesWith(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeFalse)

	dist, err = a.DistanceFrom(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dist, test.ShouldAlmostEqual, 1, 1e-9)
}

func TestPointCollision(t *testing.T) {
	ball, err := NewSphere(NewZeroPose(), 1, "ball")
	test.That(t, err, test.ShouldBeNil)
	inside := NewPoint(NewPoseFromPoint(r3.Vector{X: 0.5}), "inside")
	outside := NewPoint(NewPoseFromPoint(r3.Vector{X: 2}), "outside")

	hit, err := inside.CollidesWith(ball)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeTrue)

	hit, err = outside.CollidesWith(ball)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeFalse)

	dist, err := outside.DistanceFrom(inside)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dist, test.ShouldAlmostEqual, 1.5, 1e-9)

	// points occupy no volume, so two points only collide when coincident
	hit, err = outside.CollidesWith(NewPoint(NewPoseFromPoint(r3.Vector{X: 2}), "twin"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeTrue)
}

func TestPoseCompose(t *testing.T) {
	a := NewPoseFromPoint(r3.Vector{X: 1, Y: 2})
	b := NewPoseFromPoint(r3.Vector{X: 3, Z: 4})
	test.That(t, Compose(a, b).Point(), test.ShouldResemble, r3.Vector{X: 4, Y: 2, Z: 4})

	// composing with a 90 degree rotation about Z carries +X into +Y
	halfSqrt2 := math.Sqrt(2) / 2
	rotZ := NewPose(r3.Vector{}, quat.Number{Real: halfSqrt2, Kmag: halfSqrt2})
	composed := Compose(rotZ, NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, R3VectorAlmostEqual(composed.Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestPoseAlmostEqual(t *testing.T) {
	a := NewPoseFromPoint(r3.Vector{X: 1})
	b := NewPoseFromPoint(r3.Vector{X: 1 + 1e-10})
	test.That(t, PoseAlmostEqual(a, b, 1e-9), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(a, NewPoseFromPoint(r3.Vector{X: 2}), 1e-9), test.ShouldBeFalse)

	// q and -q describe the same orientation
	q := quat.Number{Real: math.Sqrt(2) / 2, Kmag: math.Sqrt(2) / 2}
	negQ := quat.Scale(-1, q)
	test.That(t, PoseAlmostEqual(NewPose(r3.Vector{}, q), NewPose(r3.Vector{}, negQ), 1e-9), test.ShouldBeTrue)
}
