package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"golspi/basis"
	"golspi/policy"
	"golspi/sample"
)

const tolerance = 1e-6

// chainFixture returns the two-state, one-action batch and policy used
// by the fixed-point tests
func chainFixture(t *testing.T) (sample.Batch, *policy.Policy) {
	t.Helper()

	batch := sample.Batch{
		sample.New(vec(0), 0, 1, vec(0)),
		sample.New(vec(1), 0, -1, vec(1)),
	}

	b, err := basis.NewExact([]int{2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	p, err := policy.New(b, 0.9, 0, mat.NewVecDense(2, nil),
		policy.FirstWins, 42)
	if err != nil {
		t.Fatal(err)
	}
	return batch, p
}

func vec(v float64) *mat.VecDense {
	return mat.NewVecDense(1, []float64{v})
}

func checkWeights(t *testing.T, got *mat.VecDense, expected []float64) {
	t.Helper()
	if got.Len() != len(expected) {
		t.Fatalf("weight length %d, expected %d", got.Len(), len(expected))
	}
	for i, e := range expected {
		if math.Abs(got.AtVec(i)-e) > tolerance {
			t.Errorf("w[%d] = %f, expected %f", i, got.AtVec(i), e)
		}
	}
}

func TestNewLSTDQValidation(t *testing.T) {
	if _, err := NewLSTDQ(-1); err == nil {
		t.Error("expected error for negative precondition")
	}
	if _, err := NewParallelLSTDQ(0.1, 0); err == nil {
		t.Error("expected error for zero workers")
	}

	l, err := NewLSTDQ(0.3)
	if err != nil {
		t.Fatal(err)
	}
	if l.Precondition() != 0.3 {
		t.Errorf("expected precondition 0.3, got %f", l.Precondition())
	}
}

func TestSolveEmptyBatch(t *testing.T) {
	_, p := chainFixture(t)
	l, err := NewLSTDQ(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Solve(nil, p); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestSolveFullRank(t *testing.T) {
	batch, p := chainFixture(t)
	l, err := NewLSTDQ(0)
	if err != nil {
		t.Fatal(err)
	}

	w, err := l.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}
	checkWeights(t, w, []float64{10, -10})
}

func TestSolveSingularSystem(t *testing.T) {
	batch, p := chainFixture(t)
	l, err := NewLSTDQ(0)
	if err != nil {
		t.Fatal(err)
	}

	// Only the first sample: the feature space is not spanned, so the
	// minimum-norm least squares solution is expected
	w, err := l.Solve(batch[:1], p)
	if err != nil {
		t.Fatal(err)
	}
	checkWeights(t, w, []float64{10, 0})
}

func TestSolveSingularSystemWithPreconditioning(t *testing.T) {
	batch, p := chainFixture(t)
	l, err := NewLSTDQ(0.1)
	if err != nil {
		t.Fatal(err)
	}

	w, err := l.Solve(batch[:1], p)
	if err != nil {
		t.Fatal(err)
	}
	checkWeights(t, w, []float64{5, 0})
}

func TestSolveAbsorbingSample(t *testing.T) {
	batch, p := chainFixture(t)
	batch[0] = sample.NewAbsorbing(batch[0].State, batch[0].Action,
		batch[0].Reward, batch[0].NextState)

	l, err := NewLSTDQ(0)
	if err != nil {
		t.Fatal(err)
	}

	w, err := l.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}
	checkWeights(t, w, []float64{1, -10})
}

// An absorbing sample must contribute no successor features, so its
// next state contents cannot influence the solution.
func TestAbsorbingNextStateIgnored(t *testing.T) {
	b, err := basis.NewExact([]int{2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	p, err := policy.New(b, 0.9, 0, mat.NewVecDense(2, nil),
		policy.FirstWins, 42)
	if err != nil {
		t.Fatal(err)
	}
	l, err := NewLSTDQ(0.01)
	if err != nil {
		t.Fatal(err)
	}

	first := sample.Batch{
		sample.NewAbsorbing(vec(0), 0, 1, vec(0)),
		sample.New(vec(1), 0, -1, vec(1)),
	}
	second := sample.Batch{
		sample.NewAbsorbing(vec(0), 0, 1, vec(1)),
		sample.New(vec(1), 0, -1, vec(1)),
	}

	w1, err := l.Solve(first, p)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := l.Solve(second, p)
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(w1.RawVector().Data, w2.RawVector().Data,
		tolerance) {
		t.Errorf("absorbing next state changed the solution: %v vs %v",
			w1.RawVector().Data, w2.RawVector().Data)
	}
}

// Solve is a pure function of the batch and the policy
func TestSolveIdempotent(t *testing.T) {
	batch, p := chainFixture(t)
	l, err := NewLSTDQ(0.05)
	if err != nil {
		t.Fatal(err)
	}

	w1, err := l.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := l.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(w1.RawVector().Data, w2.RawVector().Data, 0) {
		t.Errorf("repeated solves diverged: %v vs %v",
			w1.RawVector().Data, w2.RawVector().Data)
	}
}

func TestParallelSolveMatchesSerial(t *testing.T) {
	b, err := basis.NewExact([]int{4}, 2)
	if err != nil {
		t.Fatal(err)
	}
	p, err := policy.New(b, 0.9, 0, mat.NewVecDense(8, nil),
		policy.FirstWins, 42)
	if err != nil {
		t.Fatal(err)
	}

	var batch sample.Batch
	for i := 0; i < 100; i++ {
		state := float64(i % 4)
		next := float64((i + 1) % 4)
		reward := 0.0
		if next == 0 {
			reward = 1.0
		}
		batch = append(batch, sample.New(vec(state), i%2, reward, vec(next)))
	}

	serial, err := NewLSTDQ(0.01)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewParallelLSTDQ(0.01, 4)
	if err != nil {
		t.Fatal(err)
	}

	ws, err := serial.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}
	wp, err := parallel.Solve(batch, p)
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(ws.RawVector().Data, wp.RawVector().Data,
		tolerance) {
		t.Errorf("sharded accumulation diverged from serial: %v vs %v",
			ws.RawVector().Data, wp.RawVector().Data)
	}
}

func BenchmarkSolve(b *testing.B) {
	bf, err := basis.NewExact([]int{10}, 2)
	if err != nil {
		b.Fatal(err)
	}
	p, err := policy.New(bf, 0.9, 0, mat.NewVecDense(bf.Size(), nil),
		policy.FirstWins, 42)
	if err != nil {
		b.Fatal(err)
	}

	var batch sample.Batch
	for i := 0; i < 1000; i++ {
		state := float64(i % 10)
		next := float64((i + 1) % 10)
		batch = append(batch, sample.New(vec(state), i%2, 0, vec(next)))
	}

	l, err := NewLSTDQ(0.01)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		if _, err := l.Solve(batch, p); err != nil {
			b.Fatal(err)
		}
	}
}
