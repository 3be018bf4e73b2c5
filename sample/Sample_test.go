package sample

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	state := mat.NewVecDense(1, []float64{3})
	next := mat.NewVecDense(1, []float64{4})

	s := New(state, 1, 0.5, next)
	if s.Absorb {
		t.Error("New should produce a non-absorbing sample")
	}
	if s.Action != 1 || s.Reward != 0.5 {
		t.Errorf("unexpected sample %v", s)
	}

	a := NewAbsorbing(state, 0, 1, next)
	if !a.Absorb {
		t.Error("NewAbsorbing should produce an absorbing sample")
	}
}

func TestString(t *testing.T) {
	s := New(mat.NewVecDense(1, []float64{3}), 1, 0.5,
		mat.NewVecDense(1, []float64{4}))

	str := s.String()
	for _, want := range []string{"Action: 1", "Reward: 0.50",
		"Absorb: false"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q missing %q", str, want)
		}
	}
}
