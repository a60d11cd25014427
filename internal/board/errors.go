package board

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects a mutation before any network call is made.
type ValidationError struct {
	error
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{fmt.Errorf(format, args...)}
}

// IsValidationError reports whether err is a pre-network rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConsistencyError reports a reorder batch that only partially applied. The
// board must re-fetch before trusting its view again.
type ConsistencyError struct {
	FailedIDs []string
	Err       error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("reorder batch partially failed for jobs [%s]: %v", strings.Join(e.FailedIDs, ", "), e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }
