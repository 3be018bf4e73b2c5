package domain

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	"golspi/sample"
)

// RewardLocation determines which chain states give +1 reward on entry
type RewardLocation int

const (
	// Ends rewards entering either end of the chain
	Ends RewardLocation = iota

	// Middle rewards entering the middle two states of the chain
	Middle

	// HalfMiddles rewards entering the middle state of each half of
	// the chain
	HalfMiddles
)

func (r RewardLocation) String() string {
	switch r {
	case Ends:
		return "Ends"
	case Middle:
		return "Middle"
	default:
		return "HalfMiddles"
	}
}

var chainActionNames = []string{"left", "right"}

// Chain implements the chain domain from the LSPI paper. The state
// space is a series of discrete nodes in a chain with two actions,
// left and right, each of which fails with a configurable probability;
// a failed action moves the agent in the opposite direction. Movement
// is clamped at both ends of the chain. Entering a reward state gives
// +1 reward, all other transitions give 0.
//
// The task is continuing, so samples produced by a Chain are never
// absorbing.
type Chain struct {
	numStates          int
	rewardLocation     RewardLocation
	failureProbability float64
	state              int
	rng                *rand.Rand
}

// NewChain returns a new Chain with numStates states (at least 4), the
// given reward location, and the given action failure probability. The
// starting state is chosen uniformly at random from the seeded source.
func NewChain(numStates int, rewardLocation RewardLocation,
	failureProbability float64, seed uint64) (*Chain, error) {
	if numStates < 4 {
		return nil, fmt.Errorf("NewChain: numStates must be >= 4, got %d",
			numStates)
	}
	if failureProbability < 0 || failureProbability > 1 {
		return nil, fmt.Errorf("NewChain: failureProbability must be in "+
			"range [0, 1], got %f", failureProbability)
	}

	rng := rand.New(rand.NewSource(seed))
	return &Chain{numStates, rewardLocation, failureProbability,
		rng.Intn(numStates), rng}, nil
}

// NumStates returns the number of states in the chain
func (c *Chain) NumStates() int {
	return c.numStates
}

// NumActions returns the number of actions, which is always 2
func (c *Chain) NumActions() int {
	return 2
}

// CurrentState returns the current state as a one-dimensional vector
// holding the occupied node index
func (c *Chain) CurrentState() mat.Vector {
	return mat.NewVecDense(1, []float64{float64(c.state)})
}

// ApplyAction applies left (0) or right (1) to the chain and returns
// the resulting sample
func (c *Chain) ApplyAction(action int) (sample.Sample, error) {
	if action < 0 || action >= c.NumActions() {
		return sample.Sample{}, fmt.Errorf("ApplyAction: action index "+
			"outside of bounds [0, %d)", c.NumActions())
	}

	actionFailed := c.rng.Float64() < c.failureProbability

	var location int
	if (action == 0) != actionFailed {
		location = c.state - 1
		if location < 0 {
			location = 0
		}
	} else {
		location = c.state + 1
		if location > c.numStates-1 {
			location = c.numStates - 1
		}
	}

	s := sample.New(c.CurrentState(), action, c.reward(location),
		mat.NewVecDense(1, []float64{float64(location)}))

	c.state = location
	return s, nil
}

// reward returns the reward for entering the given state
func (c *Chain) reward(location int) float64 {
	switch c.rewardLocation {
	case Ends:
		if location == 0 || location == c.numStates-1 {
			return 1
		}
	case Middle:
		if location == c.numStates/2 || location == c.numStates/2+1 {
			return 1
		}
	default: // HalfMiddles
		if location == c.numStates/4 || location == 3*c.numStates/4 {
			return 1
		}
	}
	return 0
}

// Reset resets the chain to the given state, or to a uniformly random
// state if state is nil
func (c *Chain) Reset(state mat.Vector) error {
	if state == nil {
		c.state = c.rng.Intn(c.numStates)
		return nil
	}

	if state.Len() != 1 {
		return fmt.Errorf("Reset: state must have length 1, got %d",
			state.Len())
	}
	location := int(state.AtVec(0))
	if location < 0 || location >= c.numStates {
		return fmt.Errorf("Reset: state value must be in range [0, %d)",
			c.numStates)
	}

	c.state = location
	return nil
}

// ActionName returns "left" for action 0 and "right" for action 1
func (c *Chain) ActionName(action int) string {
	return chainActionNames[action]
}
