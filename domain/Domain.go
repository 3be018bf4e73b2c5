// Package domain outlines the interface a simulated environment must
// satisfy to generate samples for LSPI, and implements the chain
// domain from the LSPI paper.
//
// Domains are collaborators, not part of the learning core: the core
// only requires that whatever generates samples produces
// sample.Sample records. How the samples are generated — random
// rollouts, logged data, replay buffers — is entirely the domain's
// concern.
package domain

import (
	"gonum.org/v1/gonum/mat"

	"golspi/sample"
)

// Domain is the minimum interface of a reinforcement learning
// environment that samples can be collected from
type Domain interface {
	// NumActions returns the number of possible actions. Actions are
	// indexed from 0 to NumActions() - 1.
	NumActions() int

	// CurrentState returns the current state of the domain
	CurrentState() mat.Vector

	// ApplyAction applies the action to the domain and returns the
	// resulting sample
	ApplyAction(action int) (sample.Sample, error)

	// Reset resets the domain to the given state, or to a fresh
	// initial state if state is nil
	Reset(state mat.Vector) error

	// ActionName returns a string representation of the action
	ActionName(action int) string
}
