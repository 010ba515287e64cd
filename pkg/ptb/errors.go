package ptb

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks local precondition failures raised while building
// a batch, before any network access.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidBatch marks structurally invalid batches.
var ErrInvalidBatch = errors.New("invalid batch")

// Invalidf returns an error wrapping ErrInvalidArgument.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func invalidBatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidBatch, fmt.Sprintf(format, args...))
}
