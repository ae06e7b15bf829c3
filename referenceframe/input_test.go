package referenceframe

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestInputConversion(t *testing.T) {
	floats := []float64{0, math.Pi, -math.Pi}
	inputs := FloatsToInputs(floats)
	test.That(t, inputs, test.ShouldResemble, []Input{{0}, {math.Pi}, {-math.Pi}})
	test.That(t, InputsToFloats(inputs), test.ShouldResemble, floats)
}

func TestInterpolateInputs(t *testing.T) {
	from := FloatsToInputs([]float64{0, 0})
	to := FloatsToInputs([]float64{4, -8})
	test.That(t, InterpolateInputs(from, to, 0.5), test.ShouldResemble, FloatsToInputs([]float64{2, -4}))
	test.That(t, InterpolateInputs(from, to, 0.25), test.ShouldResemble, FloatsToInputs([]float64{1, -2}))
}

func TestInputsL2Distance(t *testing.T) {
	a := FloatsToInputs([]float64{0, 0})
	b := FloatsToInputs([]float64{3, 4})
	test.That(t, InputsL2Distance(a, b), test.ShouldAlmostEqual, 5, 1e-9)
	test.That(t, InputsL2Distance(a, a), test.ShouldEqual, 0)
}

func TestInputsAlmostEqual(t *testing.T) {
	a := FloatsToInputs([]float64{1, 2})
	test.That(t, InputsAlmostEqual(a, FloatsToInputs([]float64{1 + 1e-10, 2}), 1e-9), test.ShouldBeTrue)
	test.That(t, InputsAlmostEqual(a, FloatsToInputs([]float64{1.1, 2}), 1e-9), test.ShouldBeFalse)
	test.That(t, InputsAlmostEqual(a, FloatsToInputs([]float64{1}), 1e-9), test.ShouldBeFalse)
}

func TestCheckLimits(t *testing.T) {
	limits := []Limit{{Min: -1, Max: 1}, {Min: 0, Max: 2}}
	test.That(t, CheckLimits(FloatsToInputs([]float64{0, 1}), limits), test.ShouldBeNil)
	test.That(t, CheckLimits(FloatsToInputs([]float64{-1, 2}), limits), test.ShouldBeNil)

	err := CheckLimits(FloatsToInputs([]float64{1.5, 1}), limits)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, strings.Contains(err.Error(), OOBErrString), test.ShouldBeTrue)

	test.That(t, CheckLimits(FloatsToInputs([]float64{0}), limits), test.ShouldNotBeNil)
}

func TestRandomInputs(t *testing.T) {
	limits := []Limit{{Min: -math.Pi, Max: math.Pi}, {Min: 0, Max: 1}}

	//nolint:gosec
	rnd := rand.New(rand.NewSource(17))
	for i := 0; i < 100; i++ {
		test.That(t, CheckLimits(RandomInputs(limits, rnd), limits), test.ShouldBeNil)
	}

	// identical seeds replay identical draws
	//nolint:gosec
	rnd1, rnd2 := rand.New(rand.NewSource(3)), rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		test.That(t, RandomInputs(limits, rnd1), test.ShouldResemble, RandomInputs(limits, rnd2))
	}

	// infinite limits are clamped to a finite sampling range
	unbounded := []Limit{{Min: math.Inf(-1), Max: math.Inf(1)}}
	sample := RandomInputs(unbounded, rnd)
	test.That(t, sample[0].Value, test.ShouldBeGreaterThanOrEqualTo, -999)
	test.That(t, sample[0].Value, test.ShouldBeLessThanOrEqualTo, 999)
}
