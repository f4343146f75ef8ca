package line

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAnchor     = errors.New("unknown anchor")
	ErrInvalidSegment    = errors.New("invalid segment")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ValidationError describes a value that was rejected. Err, when set, is
// the sentinel the failure matches with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
