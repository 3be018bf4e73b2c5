// Package golspi implements Least-Squares Policy Iteration.
//
// LSPI is an off-policy, batch reinforcement learning algorithm that
// learns a near-optimal action-selection policy from a fixed set of
// transition samples, without interacting with the environment during
// learning. The algorithm is described in
//
//	"Least-Squares Policy Iteration."
//	Lagoudakis, Michail G., and Ronald Parr.
//	Journal of Machine Learning Research 4, 2003.
//
// Learning repeatedly invokes a solver.Solver on the sample batch and
// the current policy, installing the solved weights into a new policy
// each iteration until the weight change falls below a tolerance or an
// iteration cap is reached.
package golspi

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"golspi/policy"
	"golspi/sample"
	"golspi/solver"
)

// Status reports how a learning run terminated
type Status int

const (
	// Converged indicates that the weight change between successive
	// iterations fell below the convergence tolerance
	Converged Status = iota

	// MaxIterationsReached indicates that the iteration cap was
	// reached before the weights converged. The last computed policy
	// is still returned: callers may accept the best-effort result or
	// continue iterating with a larger cap.
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	default:
		return "MaxIterationsReached"
	}
}

// Learn runs LSPI on the given sample batch, starting from the given
// policy. Each iteration solves for new weights against the current
// policy, measures the Euclidean distance between the new and current
// weights, and installs the new weights into a fresh policy. Learning
// stops when the distance falls below epsilon or after maxIterations
// iterations.
//
// The initial policy is never mutated. Solver errors abort learning
// immediately.
func Learn(batch sample.Batch, initial *policy.Policy, s solver.Solver,
	epsilon float64, maxIterations int) (*policy.Policy, Status, error) {
	if initial == nil {
		return nil, MaxIterationsReached, fmt.Errorf("Learn: initial " +
			"policy cannot be nil")
	}
	if s == nil {
		return nil, MaxIterationsReached, fmt.Errorf("Learn: solver " +
			"cannot be nil")
	}
	if epsilon <= 0 {
		return nil, MaxIterationsReached, fmt.Errorf("Learn: epsilon must "+
			"be positive, got %f", epsilon)
	}
	if maxIterations <= 0 {
		return nil, MaxIterationsReached, fmt.Errorf("Learn: maxIterations "+
			"must be positive, got %d", maxIterations)
	}

	current, err := initial.WithWeights(initial.Weights())
	if err != nil {
		return nil, MaxIterationsReached, err
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		newWeights, err := s.Solve(batch, current)
		if err != nil {
			return nil, MaxIterationsReached, err
		}

		distance := weightDistance(newWeights, current.Weights())

		current, err = current.WithWeights(newWeights)
		if err != nil {
			return nil, MaxIterationsReached, err
		}

		if distance <= epsilon {
			return current, Converged, nil
		}
	}
	return current, MaxIterationsReached, nil
}

// weightDistance returns the Euclidean distance between two weight
// vectors
func weightDistance(a, b *mat.VecDense) float64 {
	diff := mat.NewVecDense(a.Len(), nil)
	diff.SubVec(a, b)
	return floats.Norm(diff.RawVector().Data, 2)
}
