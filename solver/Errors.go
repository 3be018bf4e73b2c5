package solver

import "errors"

// Error implements errors unique to solving the LSTDQ linear system
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errSingularSystem = errors.New("linear system is singular")

var errFactorization = errors.New("matrix factorization failed")

// IsNumerical returns whether or not an error reports that the LSTDQ
// linear system could not be solved numerically. Such failures are
// fatal to a learning run: retrying with the same basis and samples
// would reproduce the same system.
func IsNumerical(err error) bool {
	if solverErr, ok := err.(*Error); ok {
		err = solverErr.Err
	}
	return err == errSingularSystem || err == errFactorization
}
