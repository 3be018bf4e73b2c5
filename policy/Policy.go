// Package policy implements ε-greedy policies over linear function
// approximation for LSPI
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"golspi/basis"
	"golspi/utils/floatutils"
	"golspi/weights"
)

// TieBreaking determines how a tie between equally valued actions is
// resolved when selecting the greedy action
type TieBreaking int

const (
	// FirstWins selects the first action encountered with the maximal
	// value
	FirstWins TieBreaking = iota

	// LastWins selects the last action encountered with the maximal
	// value
	LastWins

	// RandomWins selects uniformly among the actions with the maximal
	// value, drawing from the policy's random source
	RandomWins
)

func (t TieBreaking) String() string {
	switch t {
	case FirstWins:
		return "FirstWins"
	case LastWins:
		return "LastWins"
	default:
		return "RandomWins"
	}
}

// Policy couples a basis function, a weight vector, a discount factor,
// and an exploration rate. It computes approximate action values
// Q(s, a) = weights · φ(s, a) and selects actions greedily with
// respect to them, choosing a uniformly random action with probability
// explore instead.
//
// A Policy exclusively owns its weight vector. Weight updates go
// through WithWeights, which returns a new Policy, so intermediate
// policies of a learning run stay independently inspectable.
type Policy struct {
	basis       basis.BasisFunction
	weights     *mat.VecDense
	discount    float64
	explore     float64
	tieBreaking TieBreaking
	rng         *rand.Rand
}

// New returns a new Policy over the given basis function. If w is nil
// the weights are initialized uniformly at random in [-1, 1] from the
// policy's seeded source; otherwise w must have length basis.Size()
// and is used as-is.
func New(b basis.BasisFunction, discount, explore float64, w *mat.VecDense,
	tieBreaking TieBreaking, seed uint64) (*Policy, error) {
	if b == nil {
		return nil, fmt.Errorf("New: basis cannot be nil")
	}
	if discount < 0.0 || discount > 1.0 {
		return nil, fmt.Errorf("New: discount must be in range [0, 1]")
	}
	if explore < 0.0 || explore > 1.0 {
		return nil, fmt.Errorf("New: explore must be in range [0, 1]")
	}

	source := rand.NewSource(seed)

	if w == nil {
		w = mat.NewVecDense(b.Size(), nil)
		u := distuv.Uniform{Min: -1.0, Max: 1.0, Src: source}
		weights.NewLinearUV(u).Initialize(w)
	} else if w.Len() != b.Size() {
		return nil, fmt.Errorf("New: weight length (%d) must equal basis "+
			"size (%d)", w.Len(), b.Size())
	}

	return &Policy{b, w, discount, explore, tieBreaking,
		rand.New(source)}, nil
}

// CalcQ returns the approximate action value of the given state-action
// pair
func (p *Policy) CalcQ(state mat.Vector, action int) (float64, error) {
	phi, err := p.basis.Evaluate(state, action)
	if err != nil {
		return 0, err
	}
	return mat.Dot(p.weights, phi), nil
}

// BestAction returns the greedy action for the given state, ignoring
// exploration. Ties are resolved by the policy's tie-breaking rule.
func (p *Policy) BestAction(state mat.Vector) (int, error) {
	numActions := p.basis.NumActions()

	qValues := make([]float64, numActions)
	for a := 0; a < numActions; a++ {
		q, err := p.CalcQ(state, a)
		if err != nil {
			return 0, err
		}
		qValues[a] = q
	}

	_, ties := floatutils.MaxSlice(qValues)
	switch p.tieBreaking {
	case FirstWins:
		return ties[0], nil
	case LastWins:
		return ties[len(ties)-1], nil
	default:
		return ties[p.rng.Intn(len(ties))], nil
	}
}

// SelectAction returns an action for the given state. With probability
// explore a uniformly random action is returned; otherwise the greedy
// action is returned.
func (p *Policy) SelectAction(state mat.Vector) (int, error) {
	if p.rng.Float64() < p.explore {
		return p.rng.Intn(p.basis.NumActions()), nil
	}
	return p.BestAction(state)
}

// WithWeights returns a new Policy sharing this policy's basis,
// discount, exploration rate, tie-breaking rule, and random source,
// but carrying a copy of the given weight vector
func (p *Policy) WithWeights(w *mat.VecDense) (*Policy, error) {
	if w.Len() != p.basis.Size() {
		return nil, fmt.Errorf("WithWeights: weight length (%d) must equal "+
			"basis size (%d)", w.Len(), p.basis.Size())
	}

	newWeights := mat.NewVecDense(w.Len(), nil)
	newWeights.CopyVec(w)

	return &Policy{p.basis, newWeights, p.discount, p.explore,
		p.tieBreaking, p.rng}, nil
}

// Weights returns the policy's weight vector. Callers must not mutate
// the returned vector.
func (p *Policy) Weights() *mat.VecDense {
	return p.weights
}

// Basis returns the policy's basis function
func (p *Policy) Basis() basis.BasisFunction {
	return p.basis
}

// Discount returns the policy's discount factor γ
func (p *Policy) Discount() float64 {
	return p.discount
}

// Explore returns the probability with which the policy selects a
// uniformly random action
func (p *Policy) Explore() float64 {
	return p.explore
}

// TieBreaking returns the policy's tie-breaking rule
func (p *Policy) TieBreaking() TieBreaking {
	return p.tieBreaking
}

// NumActions returns the number of actions the policy selects among
func (p *Policy) NumActions() int {
	return p.basis.NumActions()
}
