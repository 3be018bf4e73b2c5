package basis

import "gonum.org/v1/gonum/mat"

// PolynomialBasis implements polynomial features of a one-dimensional
// state. The queried action's block contains [1, s, s², ..., s^degree]
// and all other blocks are zero.
type PolynomialBasis struct {
	degree     int
	numActions int
}

// NewPolynomial returns a new PolynomialBasis of the given degree for
// the given number of actions
func NewPolynomial(degree, numActions int) (*PolynomialBasis, error) {
	if err := validActions("NewPolynomial", numActions); err != nil {
		return nil, err
	}
	if degree < 0 {
		return nil, &Error{Op: "NewPolynomial", Err: errNegativeDegree}
	}

	return &PolynomialBasis{degree, numActions}, nil
}

// Degree returns the degree of the polynomial features
func (p *PolynomialBasis) Degree() int {
	return p.degree
}

// Size returns the length of feature vectors produced by Evaluate
func (p *PolynomialBasis) Size() int {
	return (p.degree + 1) * p.numActions
}

// NumActions returns the number of discrete actions supported
func (p *PolynomialBasis) NumActions() int {
	return p.numActions
}

// Evaluate returns the polynomial feature vector for the given
// state-action pair. The state must be one-dimensional.
func (p *PolynomialBasis) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := validAction("Evaluate", action, p.numActions); err != nil {
		return nil, err
	}
	if state.Len() != 1 {
		return nil, &Error{Op: "Evaluate", Err: errStateShape}
	}

	phi := mat.NewVecDense(p.Size(), nil)
	offset := action * (p.degree + 1)

	value := state.AtVec(0)
	feature := 1.0
	for i := 0; i <= p.degree; i++ {
		phi.SetVec(offset+i, feature)
		feature *= value
	}
	return phi, nil
}
