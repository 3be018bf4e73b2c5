// Package basis implements basis functions used by LSPI policies.
//
// A basis function takes in a state vector and an action index and
// returns a vector of features, referred to as φ. The φ vector is
// dotted with the weight vector of a policy to calculate the
// approximate action value Q(s, a). Features for actions other than
// the queried one are always zero, so each action owns a contiguous
// block of the feature vector and the same basis serves as the feature
// map for a linear action-value function.
package basis

import "gonum.org/v1/gonum/mat"

// BasisFunction maps a state-action pair to a fixed-length feature
// vector. For a given instance, Evaluate always returns a vector of
// length Size().
type BasisFunction interface {
	// Size returns the length of the feature vectors produced by
	// Evaluate. (Referred to as k in the LSPI paper.)
	Size() int

	// NumActions returns the number of discrete actions the basis
	// function supports. Valid action indices are [0, NumActions()).
	NumActions() int

	// Evaluate calculates the φ vector for the given state-action
	// pair
	Evaluate(state mat.Vector, action int) (*mat.VecDense, error)
}

// validActions checks a number of actions for validity at
// construction time
func validActions(op string, numActions int) error {
	if numActions < 1 {
		return &Error{Op: op, Err: errNonPositiveActions}
	}
	return nil
}

// validAction checks an action index against a basis function's
// action count
func validAction(op string, action, numActions int) error {
	if action < 0 || action >= numActions {
		return &Error{Op: op, Err: errActionOutOfRange}
	}
	return nil
}
