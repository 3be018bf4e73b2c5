package weights

import (
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestZeroUV(t *testing.T) {
	w := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	NewLinearUV(NewZeroUV()).Initialize(w)

	for i := 0; i < w.Len(); i++ {
		if w.AtVec(i) != 0 {
			t.Errorf("w[%d] = %f, expected 0", i, w.AtVec(i))
		}
	}
}

func TestLinearUVUniform(t *testing.T) {
	src := rand.NewSource(42)
	u := distuv.Uniform{Min: -1.0, Max: 1.0, Src: src}

	w := mat.NewVecDense(100, nil)
	NewLinearUV(u).Initialize(w)

	allZero := true
	for i := 0; i < w.Len(); i++ {
		v := w.AtVec(i)
		if v < -1.0 || v > 1.0 {
			t.Errorf("w[%d] = %f outside [-1, 1]", i, v)
		}
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("uniform initialization left all weights zero")
	}
}

func TestLinearUVNilWeights(t *testing.T) {
	// Initializing nil weights is a no-op, not a panic
	NewLinearUV(NewZeroUV()).Initialize(nil)
}
