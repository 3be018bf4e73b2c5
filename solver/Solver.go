// Package solver implements LSTDQ weight solvers for policy iteration.
//
// A Solver consumes a batch of samples together with the policy under
// evaluation and produces an improved weight vector. Solvers are pure
// with respect to the policy: they never mutate it, so calling Solve
// twice with the same samples and the same policy yields the same
// weights.
package solver

import (
	"gonum.org/v1/gonum/mat"

	"golspi/policy"
	"golspi/sample"
)

// Solver computes improved policy weights from a batch of samples
type Solver interface {
	Solve(batch sample.Batch, p *policy.Policy) (*mat.VecDense, error)
}
