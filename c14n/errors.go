package c14n

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrComplexityExceeded matches every *ComplexityError.
var ErrComplexityExceeded = errors.New("canonicalization complexity exceeded")

// ComplexityError is returned when the N-degree search runs out of work
// budget or its context is done. No partial result accompanies it.
type ComplexityError struct {
	// Limit is the configured work budget, zero when unbounded.
	Limit int
	// Work is the number of work units spent when the search stopped.
	Work int
	// Err is the context error when the context stopped the search.
	Err error
}

func (e *ComplexityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v after %d steps: %v", ErrComplexityExceeded,
			e.Work, e.Err)
	}
	return fmt.Sprintf("%v: work budget of %d steps exhausted",
		ErrComplexityExceeded, e.Limit)
}

func (e *ComplexityError) Is(target error) bool {
	return target == ErrComplexityExceeded
}

func (e *ComplexityError) Unwrap() error {
	return e.Err
}
