// Package sample implements transition samples observed in a domain
package sample

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sample packages together a single observed transition (s, a, r, s',
// absorb). The sample is a dumb data holder: it is created by whatever
// process collects transitions from a domain and is never mutated
// afterwards.
//
// State and NextState are vectors of the individual state variables,
// Action is an index into the domain's action set, and Absorb reports
// whether NextState ended the episode.
type Sample struct {
	State     mat.Vector
	Action    int
	Reward    float64
	NextState mat.Vector
	Absorb    bool
}

// New returns a new non-absorbing Sample, which is the common case
func New(state mat.Vector, action int, reward float64,
	nextState mat.Vector) Sample {
	return Sample{state, action, reward, nextState, false}
}

// NewAbsorbing returns a new Sample whose next state ended the episode
func NewAbsorbing(state mat.Vector, action int, reward float64,
	nextState mat.Vector) Sample {
	return Sample{state, action, reward, nextState, true}
}

func (s Sample) String() string {
	str := "Sample | State: %v  |  Action: %d  |  Reward: %.2f  |  " +
		"Next State: %v  |  Absorb: %t"

	return fmt.Sprintf(str, mat.Formatted(s.State.T()), s.Action, s.Reward,
		mat.Formatted(s.NextState.T()), s.Absorb)
}

// Batch is an ordered collection of samples consumed by a solver
type Batch []Sample
