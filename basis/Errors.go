package basis

import "errors"

// Error implements errors unique to basis function construction and
// evaluation.
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errNonPositiveActions = errors.New("number of actions must be positive")

var errNonPositiveStates = errors.New("state cardinalities must be positive")

var errNegativeDegree = errors.New("degree must be non-negative")

var errNoCenters = errors.New("at least one center is required")

var errCenterShape = errors.New("centers must all have the same shape")

var errNonPositiveGamma = errors.New("gamma must be positive")

var errActionOutOfRange = errors.New("action index out of range")

var errStateShape = errors.New("state has the wrong shape")

var errStateOutOfRange = errors.New("state value out of range")

// IsConfig returns whether or not an error reports an invalid basis
// function configuration. Configuration errors are surfaced at
// construction time and indicate that the basis function could not be
// built as specified.
func IsConfig(err error) bool {
	if basisErr, ok := err.(*Error); ok {
		err = basisErr.Err
	}
	switch err {
	case errNonPositiveActions, errNonPositiveStates, errNegativeDegree,
		errNoCenters, errCenterShape, errNonPositiveGamma:
		return true
	}
	return false
}

// IsActionOutOfRange returns whether or not an error reports an action
// index outside [0, NumActions())
func IsActionOutOfRange(err error) bool {
	if basisErr, ok := err.(*Error); ok {
		err = basisErr.Err
	}
	return err == errActionOutOfRange
}
