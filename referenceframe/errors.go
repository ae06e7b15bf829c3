package referenceframe

import "github.com/pkg/errors"

// OOBErrString is a string that all out-of-bounds errors contain, so that they
// can be checked for distinct from other errors.
const OOBErrString = "input out of bounds"

// NewIncorrectDoFError returns an error indicating that a model received an
// input vector whose length does not match its degrees of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not correspond to model DoF, expected %d but got %d", expected, actual)
}

// NewLimitError returns an error describing an input that exceeds its limits.
func NewLimitError(inputs []Input, limits []Limit) error {
	return errors.Errorf("%s: %v exceeds limits %v", OOBErrString, InputsToFloats(inputs), limits)
}

// NewLinkMissingError returns an error for a link name that a model does not report.
func NewLinkMissingError(name string) error {
	return errors.Errorf("model does not have a link named %q", name)
}
