package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RadialBasis implements Gaussian radial basis features centered at
// fixed prototype points. The queried action's block contains a
// constant 1 followed by exp(-gamma * ||s - cᵢ||²) for each center cᵢ;
// all other blocks are zero.
type RadialBasis struct {
	centers    []mat.Vector
	gamma      float64
	numActions int
}

// NewRadial returns a new RadialBasis with the given centers and
// kernel width parameter gamma. All centers must have the same shape,
// which is also the shape of states the basis accepts.
func NewRadial(centers []mat.Vector, gamma float64,
	numActions int) (*RadialBasis, error) {
	if err := validActions("NewRadial", numActions); err != nil {
		return nil, err
	}
	if len(centers) == 0 {
		return nil, &Error{Op: "NewRadial", Err: errNoCenters}
	}
	dims := centers[0].Len()
	for _, c := range centers[1:] {
		if c.Len() != dims {
			return nil, &Error{Op: "NewRadial", Err: errCenterShape}
		}
	}
	if gamma <= 0 {
		return nil, &Error{Op: "NewRadial", Err: errNonPositiveGamma}
	}

	return &RadialBasis{centers, gamma, numActions}, nil
}

// Gamma returns the kernel width parameter
func (r *RadialBasis) Gamma() float64 {
	return r.gamma
}

// Centers returns the prototype points of the basis
func (r *RadialBasis) Centers() []mat.Vector {
	return r.centers
}

// Size returns the length of feature vectors produced by Evaluate
func (r *RadialBasis) Size() int {
	return (len(r.centers) + 1) * r.numActions
}

// NumActions returns the number of discrete actions supported
func (r *RadialBasis) NumActions() int {
	return r.numActions
}

// Evaluate returns the radial feature vector for the given
// state-action pair
func (r *RadialBasis) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := validAction("Evaluate", action, r.numActions); err != nil {
		return nil, err
	}
	if state.Len() != r.centers[0].Len() {
		return nil, &Error{Op: "Evaluate", Err: errStateShape}
	}

	phi := mat.NewVecDense(r.Size(), nil)
	offset := action * (len(r.centers) + 1)
	phi.SetVec(offset, 1.0)

	diff := mat.NewVecDense(state.Len(), nil)
	for i, center := range r.centers {
		diff.SubVec(state, center)
		phi.SetVec(offset+i+1, math.Exp(-r.gamma*mat.Dot(diff, diff)))
	}
	return phi, nil
}
