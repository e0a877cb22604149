package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel matched by every *InvalidInputError
var ErrInvalidInput = errors.New("invalid input")

// Boundary errors for resolving user-supplied strings into enums
var (
	ErrUnknownSex      = errors.New("unknown sex")
	ErrUnknownActivity = errors.New("unknown activity level")
)

// Check identifies which precondition an estimator rejected
type Check int

const (
	// CheckNonPositive means a required measurement was zero or negative
	CheckNonPositive Check = iota + 1
	// CheckLogDomain means the logarithm argument was not positive
	CheckLogDomain
)

func (c Check) String() string {
	switch c {
	case CheckNonPositive:
		return "non_positive"
	case CheckLogDomain:
		return "log_domain"
	default:
		return "unknown"
	}
}

// InvalidInputError is returned by the body-fat estimators
type InvalidInputError struct {
	Check  Check
	Sex    Sex
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
