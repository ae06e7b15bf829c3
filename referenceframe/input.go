// Package referenceframe defines joint-space inputs, their limits, and the
// kinematic models that map them to link poses. It is the bridge between a
// planner, which only ever reasons about joint vectors, and the collision
// geometry those vectors imply.
package referenceframe

import (
	"gonum.org/v1/gonum/floats"

	"go.mechlab.dev/armplan/utils"
)

// Input wraps the input to a mutable joint, e.g. a joint angle or a gantry position.
//   - revolute inputs should be in radians.
//   - prismatic inputs should be in mm.
type Input struct {
	Value float64
}

// Limit represents the min and max movement limit of a single degree of freedom.
type Limit struct {
	Min float64
	Max float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InterpolateInputs will return a set of inputs that are the specified percent between
// the two given sets of inputs. For example, setting by to 0.5 will return the inputs
// halfway between the from/to values, and 0.25 would return one quarter of the way
// from "from" to "to".
func InterpolateInputs(from, to []Input, by float64) []Input {
	var newVals []Input
	for i, j1 := range from {
		newVals = append(newVals, Input{j1.Value + ((to[i].Value - j1.Value) * by)})
	}
	return newVals
}

// InputsL2Distance returns the Euclidean distance between two equal-length
// sets of inputs.
func InputsL2Distance(a, b []Input) float64 {
	diff := make([]float64, 0, len(a))
	for i, f := range a {
		diff = append(diff, f.Value-b[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}

// InputsAlmostEqual returns whether two sets of inputs are pairwise within
// epsilon of one another.
func InputsAlmostEqual(a, b []Input, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, f := range a {
		if !utils.Float64AlmostEqual(f.Value, b[i].Value, epsilon) {
			return false
		}
	}
	return true
}

// limitsSatisfied returns whether each input falls within its corresponding limit.
func limitsSatisfied(inputs []Input, limits []Limit) bool {
	for i, f := range inputs {
		if f.Value < limits[i].Min || f.Value > limits[i].Max {
			return false
		}
	}
	return true
}

// CheckLimits returns an error if any input falls outside its corresponding limit.
func CheckLimits(inputs []Input, limits []Limit) error {
	if len(inputs) != len(limits) {
		return NewIncorrectDoFError(len(inputs), len(limits))
	}
	if !limitsSatisfied(inputs, limits) {
		return NewLimitError(inputs, limits)
	}
	return nil
}
