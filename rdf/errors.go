package rdf

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedInput matches every *MalformedError.
var ErrMalformedInput = errors.New("malformed input")

// MalformedError reports a quad that violates a structural invariant, such
// as a blank node in predicate position.
type MalformedError struct {
	Quad   Quad
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed input: %s: %s", e.Reason,
		strings.TrimSuffix(Serialize(e.Quad), "\n"))
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedInput
}
