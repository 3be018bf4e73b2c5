// Package weights defines initializers for policy weight vectors
package weights

import "gonum.org/v1/gonum/mat"

// Initializer initializes weight vectors
type Initializer interface {
	Initialize(weights *mat.VecDense) // initializes weights
}
