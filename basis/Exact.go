package basis

import "gonum.org/v1/gonum/mat"

// ExactBasis implements an exact, one-hot basis function for small
// discrete state spaces. Every (state, action) pair is enumerated and
// assigned its own feature, so the linear approximation is exact.
//
// States are vectors of non-negative integers, where dimension i takes
// values in [0, cardinalities[i]). The feature index of a pair is the
// mixed-radix rank of the state, with earlier dimensions varying
// fastest, offset into the queried action's block.
type ExactBasis struct {
	cardinalities   []int
	numActions      int
	statesPerAction int
}

// NewExact returns a new ExactBasis for states with the given
// per-dimension cardinalities and the given number of actions
func NewExact(cardinalities []int, numActions int) (*ExactBasis, error) {
	if err := validActions("NewExact", numActions); err != nil {
		return nil, err
	}

	statesPerAction := 1
	for _, c := range cardinalities {
		if c < 1 {
			return nil, &Error{Op: "NewExact", Err: errNonPositiveStates}
		}
		statesPerAction *= c
	}

	cards := make([]int, len(cardinalities))
	copy(cards, cardinalities)

	return &ExactBasis{cards, numActions, statesPerAction}, nil
}

// Size returns the length of feature vectors produced by Evaluate
func (e *ExactBasis) Size() int {
	return e.statesPerAction * e.numActions
}

// NumActions returns the number of discrete actions supported
func (e *ExactBasis) NumActions() int {
	return e.numActions
}

// Evaluate returns the one-hot feature vector for the given
// state-action pair
func (e *ExactBasis) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := validAction("Evaluate", action, e.numActions); err != nil {
		return nil, err
	}
	if state.Len() != len(e.cardinalities) {
		return nil, &Error{Op: "Evaluate", Err: errStateShape}
	}

	index := action * e.statesPerAction
	stride := 1
	for i, card := range e.cardinalities {
		value := int(state.AtVec(i))
		if value < 0 || value >= card {
			return nil, &Error{Op: "Evaluate", Err: errStateOutOfRange}
		}
		index += value * stride
		stride *= card
	}

	phi := mat.NewVecDense(e.Size(), nil)
	phi.SetVec(index, 1.0)
	return phi, nil
}
