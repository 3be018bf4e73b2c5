package basis

import "gonum.org/v1/gonum/mat"

// FakeBasis implements a placeholder basis function with a single
// constant feature. It ignores the state entirely and is only useful
// as a test double for code that needs a BasisFunction but does not
// care about its features.
type FakeBasis struct {
	numActions int
}

// NewFake returns a new FakeBasis supporting the given number of
// actions
func NewFake(numActions int) (*FakeBasis, error) {
	if err := validActions("NewFake", numActions); err != nil {
		return nil, err
	}
	return &FakeBasis{numActions}, nil
}

// Size returns the length of feature vectors produced by Evaluate,
// which is always 1
func (f *FakeBasis) Size() int {
	return 1
}

// NumActions returns the number of discrete actions supported
func (f *FakeBasis) NumActions() int {
	return f.numActions
}

// Evaluate returns the constant feature vector [1]. The state is
// ignored and may be nil.
func (f *FakeBasis) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := validAction("Evaluate", action, f.numActions); err != nil {
		return nil, err
	}
	return mat.NewVecDense(1, []float64{1.0}), nil
}
