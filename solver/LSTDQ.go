package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"golspi/policy"
	"golspi/sample"
)

// Reciprocal condition number below which singular values are treated
// as zero when computing the least squares fallback
const rcond = 1e-15

// LSTDQ implements the least-squares temporal-difference solver for
// action values. A single solve reprocesses the entire sample batch
// against the current policy's greedy action choices, accumulating
//
//	A += φ(s, a) (φ(s, a) - γ φ(s', π(s')))ᵀ
//	b += φ(s, a) r
//
// and then solving A w = b for the new weights. Absorbing samples
// contribute no successor features.
//
// A is seeded with precondition * I so that the system stays
// invertible even when the samples do not span the feature space.
type LSTDQ struct {
	precondition float64
	workers      int
}

// NewLSTDQ returns a new LSTDQ solver that accumulates serially. The
// precondition value seeds the diagonal of the A matrix and must be
// non-negative; 0 disables damping.
func NewLSTDQ(precondition float64) (*LSTDQ, error) {
	return NewParallelLSTDQ(precondition, 1)
}

// NewParallelLSTDQ returns a new LSTDQ solver that shards the sample
// batch across the given number of worker goroutines. Each worker
// accumulates a partial (A, b) pair over its shard and the partials
// are summed, so the result is independent of the worker count.
func NewParallelLSTDQ(precondition float64, workers int) (*LSTDQ, error) {
	if precondition < 0 {
		return nil, fmt.Errorf("NewParallelLSTDQ: precondition must be "+
			"non-negative, got %f", precondition)
	}
	if workers < 1 {
		return nil, fmt.Errorf("NewParallelLSTDQ: workers must be positive, "+
			"got %d", workers)
	}
	return &LSTDQ{precondition, workers}, nil
}

// Precondition returns the damping constant seeded onto the diagonal
// of the A matrix
func (l *LSTDQ) Precondition() float64 {
	return l.precondition
}

// Solve returns the one-step LSTDQ update of the policy's weights for
// the given batch. The policy is never mutated.
func (l *LSTDQ) Solve(batch sample.Batch,
	p *policy.Policy) (*mat.VecDense, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("Solve: cannot solve with an empty sample " +
			"batch")
	}

	var a *mat.Dense
	var b *mat.VecDense
	var err error
	if l.workers == 1 || len(batch) < l.workers {
		a, b, err = accumulate(batch, p)
	} else {
		a, b, err = accumulateSharded(batch, p, l.workers)
	}
	if err != nil {
		return nil, err
	}

	k := p.Basis().Size()
	for i := 0; i < k; i++ {
		a.Set(i, i, a.At(i, i)+l.precondition)
	}

	return solveSystem(a, b)
}

// accumulate sums the per-sample A and b contributions of the batch
func accumulate(batch sample.Batch,
	p *policy.Policy) (*mat.Dense, *mat.VecDense, error) {
	k := p.Basis().Size()
	discount := p.Discount()

	a := mat.NewDense(k, k, nil)
	b := mat.NewVecDense(k, nil)
	diff := mat.NewVecDense(k, nil)

	for _, s := range batch {
		phi, err := p.Basis().Evaluate(s.State, s.Action)
		if err != nil {
			return nil, nil, err
		}

		if s.Absorb {
			// Absorbing states contribute no future value
			diff.CopyVec(phi)
		} else {
			best, err := greedyAction(p, s.NextState)
			if err != nil {
				return nil, nil, err
			}
			phiNext, err := p.Basis().Evaluate(s.NextState, best)
			if err != nil {
				return nil, nil, err
			}
			diff.AddScaledVec(phi, -discount, phiNext)
		}

		a.RankOne(a, 1.0, phi, diff)
		b.AddScaledVec(b, s.Reward, phi)
	}
	return a, b, nil
}

// accumulateSharded splits the batch across workers, each producing a
// partial (A, b), and reduces the partials by elementwise summation.
// The per-sample contributions commute so the shard boundaries do not
// affect the sum.
func accumulateSharded(batch sample.Batch, p *policy.Policy,
	workers int) (*mat.Dense, *mat.VecDense, error) {
	type partial struct {
		a   *mat.Dense
		b   *mat.VecDense
		err error
	}

	results := make(chan partial, workers)
	chunk := (len(batch) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start > len(batch) {
			start = len(batch)
		}
		end := start + chunk
		if end > len(batch) {
			end = len(batch)
		}

		go func(shard sample.Batch) {
			a, b, err := accumulate(shard, p)
			results <- partial{a, b, err}
		}(batch[start:end])
	}

	k := p.Basis().Size()
	a := mat.NewDense(k, k, nil)
	b := mat.NewVecDense(k, nil)
	var err error
	for w := 0; w < workers; w++ {
		part := <-results
		if part.err != nil {
			err = part.err
			continue
		}
		a.Add(a, part.a)
		b.AddVec(b, part.b)
	}
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// greedyAction returns the first-index argmax of the policy's action
// values in the given state. The solver breaks Bellman-target ties
// deterministically: drawing tie breaks from the policy's random
// source would make repeated solves on the same policy diverge and
// would share mutable state between accumulation workers.
func greedyAction(p *policy.Policy, state mat.Vector) (int, error) {
	best, bestQ := 0, 0.0
	for action := 0; action < p.NumActions(); action++ {
		q, err := p.CalcQ(state, action)
		if err != nil {
			return 0, err
		}
		if action == 0 || q > bestQ {
			best, bestQ = action, q
		}
	}
	return best, nil
}

// solveSystem solves A w = b, falling back to the minimum-norm least
// squares solution when the system is singular or badly conditioned
func solveSystem(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	var w mat.VecDense
	if err := w.SolveVec(a, b); err == nil {
		return &w, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, &Error{Op: "Solve", Err: errFactorization}
	}

	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, &Error{Op: "Solve", Err: errSingularSystem}
	}

	var lsq mat.VecDense
	svd.SolveVecTo(&lsq, b, rank)
	return &lsq, nil
}
