package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.mechlab.dev/armplan/spatialmath"
)

func TestPointModel(t *testing.T) {
	limits := []Limit{{Min: -1, Max: 1}, {Min: -1, Max: 1}}
	model, err := NewPointModel("robot", limits, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.Name(), test.ShouldEqual, "robot")
	test.That(t, model.DoF(), test.ShouldResemble, limits)

	poses, err := model.Transform(FloatsToInputs([]float64{0.5, -0.5}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(poses), test.ShouldEqual, 1)
	test.That(t, poses["robot_body"].Point(), test.ShouldResemble, r3.Vector{X: 0.5, Y: -0.5})

	geometries, err := model.Geometries(FloatsToInputs([]float64{0.5, -0.5}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, geometries["robot_body"].Pose().Point(), test.ShouldResemble, r3.Vector{X: 0.5, Y: -0.5})

	// input length must match DoF
	_, err = model.Transform(FloatsToInputs([]float64{0.5}))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPointModelValidation(t *testing.T) {
	limits := []Limit{{Min: -1, Max: 1}}
	_, err := NewPointModel("", limits, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewPointModel("robot", nil, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewPointModel("robot", limits, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewPointModel("robot", []Limit{{Min: 1, Max: -1}}, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlanarSerialModel(t *testing.T) {
	limits := []Limit{{Min: -math.Pi, Max: math.Pi}, {Min: -math.Pi, Max: math.Pi}}
	model, err := NewPlanarSerialModel("arm", []float64{1, 1}, limits, 0.05)
	test.That(t, err, test.ShouldBeNil)

	// first joint up, second joint back down: elbow at (0,1), wrist at (1,1)
	poses, err := model.Transform(FloatsToInputs([]float64{math.Pi / 2, -math.Pi / 2}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["arm_link0"].Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["arm_link1"].Point(), r3.Vector{X: 1, Y: 1}, 1e-9), test.ShouldBeTrue)

	// fully extended along +X at zero configuration
	poses, err = model.Transform(make([]Input, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["arm_link1"].Point(), r3.Vector{X: 2}, 1e-9), test.ShouldBeTrue)

	geometries, err := model.Geometries(make([]Input, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(geometries), test.ShouldEqual, 2)
}

func TestSubchain(t *testing.T) {
	limits := []Limit{{Min: -math.Pi, Max: math.Pi}, {Min: -math.Pi, Max: math.Pi}}
	model, err := NewPlanarSerialModel("arm", []float64{1, 1}, limits, 0.05)
	test.That(t, err, test.ShouldBeNil)

	sub, err := Subchain(model, "arm_link1")
	test.That(t, err, test.ShouldBeNil)

	// DoF is unchanged, only the reported links are restricted
	test.That(t, sub.DoF(), test.ShouldResemble, limits)
	poses, err := sub.Transform(make([]Input, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(poses), test.ShouldEqual, 1)
	_, ok := poses["arm_link1"]
	test.That(t, ok, test.ShouldBeTrue)

	geometries, err := sub.Geometries(make([]Input, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(geometries), test.ShouldEqual, 1)

	_, err = Subchain(model, "arm_link7")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Subchain(model)
	test.That(t, err, test.ShouldNotBeNil)
}
