// Package experiment implements functionality for running batch LSPI
// experiments: collecting a sample batch from a domain, learning a
// policy from the batch, and evaluating the learned policy.
package experiment

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"golspi"
	"golspi/domain"
	"golspi/policy"
	"golspi/sample"
	"golspi/solver"
	"golspi/utils/progress"
)

const progressWidth = 40

// Config holds the knobs of a batch experiment
type Config struct {
	// NumSamples is the number of samples to collect from the domain
	// before learning
	NumSamples int

	// EvaluationSteps is the number of steps the learned policy is
	// run for when measuring its return
	EvaluationSteps int

	// Epsilon is the convergence tolerance of the learning loop
	Epsilon float64

	// MaxIterations caps the number of policy-iteration steps
	MaxIterations int
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.NumSamples < 1 {
		return fmt.Errorf("NumSamples must be positive, got %d",
			c.NumSamples)
	}
	if c.EvaluationSteps < 1 {
		return fmt.Errorf("EvaluationSteps must be positive, got %d",
			c.EvaluationSteps)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("Epsilon must be positive, got %f", c.Epsilon)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("MaxIterations must be positive, got %d",
			c.MaxIterations)
	}
	return nil
}

// Result packages together the outcome of a batch experiment
type Result struct {
	// RunID identifies the experiment run
	RunID uuid.UUID

	// Status reports how the learning loop terminated
	Status golspi.Status

	// Learned is the final policy produced by learning
	Learned *policy.Policy

	// SamplingReturn is the cumulative reward received while
	// collecting the sample batch
	SamplingReturn float64

	// EvaluationReturn is the cumulative reward received by running
	// the learned policy greedily for EvaluationSteps steps
	EvaluationReturn float64
}

// Batch runs a complete offline LSPI experiment on a domain
type Batch struct {
	domain   domain.Domain
	sampling *policy.Policy
	initial  *policy.Policy
	solver   solver.Solver
	config   Config
	out      io.Writer
}

// NewBatch returns a new batch experiment. The sampling policy drives
// sample collection (usually with high exploration); the initial
// policy is the starting point of learning. Progress is written to
// out; pass io.Discard to silence it.
func NewBatch(d domain.Domain, sampling, initial *policy.Policy,
	s solver.Solver, config Config, out io.Writer) (*Batch, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("NewBatch: %v", err)
	}
	if d == nil {
		return nil, fmt.Errorf("NewBatch: domain cannot be nil")
	}
	if sampling == nil || initial == nil {
		return nil, fmt.Errorf("NewBatch: policies cannot be nil")
	}
	if s == nil {
		return nil, fmt.Errorf("NewBatch: solver cannot be nil")
	}

	return &Batch{d, sampling, initial, s, config, out}, nil
}

// Run collects samples, learns, and evaluates, returning the combined
// result
func (b *Batch) Run() (*Result, error) {
	result := &Result{RunID: uuid.New()}

	batch, samplingReturn, err := b.collect()
	if err != nil {
		return nil, err
	}
	result.SamplingReturn = samplingReturn

	learned, status, err := golspi.Learn(batch, b.initial, b.solver,
		b.config.Epsilon, b.config.MaxIterations)
	if err != nil {
		return nil, err
	}
	result.Learned = learned
	result.Status = status

	evaluationReturn, err := b.evaluate(learned)
	if err != nil {
		return nil, err
	}
	result.EvaluationReturn = evaluationReturn

	return result, nil
}

// collect gathers the sample batch by driving the domain with the
// sampling policy
func (b *Batch) collect() (sample.Batch, float64, error) {
	bar := progress.NewBar(progressWidth, b.config.NumSamples, b.out)
	defer bar.Close()

	batch := make(sample.Batch, 0, b.config.NumSamples)
	cumulative := 0.0

	for i := 0; i < b.config.NumSamples; i++ {
		action, err := b.sampling.SelectAction(b.domain.CurrentState())
		if err != nil {
			return nil, 0, err
		}
		s, err := b.domain.ApplyAction(action)
		if err != nil {
			return nil, 0, err
		}

		batch = append(batch, s)
		cumulative += s.Reward
		bar.Increment()
	}
	return batch, cumulative, nil
}

// evaluate measures the greedy return of the learned policy on a
// freshly reset domain
func (b *Batch) evaluate(learned *policy.Policy) (float64, error) {
	if err := b.domain.Reset(nil); err != nil {
		return 0, err
	}

	bar := progress.NewBar(progressWidth, b.config.EvaluationSteps, b.out)
	defer bar.Close()

	cumulative := 0.0
	for i := 0; i < b.config.EvaluationSteps; i++ {
		action, err := learned.BestAction(b.domain.CurrentState())
		if err != nil {
			return 0, err
		}
		s, err := b.domain.ApplyAction(action)
		if err != nil {
			return 0, err
		}

		cumulative += s.Reward
		bar.Increment()
	}
	return cumulative, nil
}
