package shell

import (
	"context"
	"errors"
	"time"
)

// DefaultCommandTimeout bounds one command including all retries.
const DefaultCommandTimeout = 15 * time.Second

var (
	// ErrOutcomeUnknown is returned when the deadline hit while events were being appended.
	// The events may or may not be stored, a retry with the same operation id is safe.
	ErrOutcomeUnknown = errors.New("outcome of the operation is unknown")
)

// AppendError marks a deadline hit during the append phase as unknown outcome.
func AppendError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrOutcomeUnknown, err)
	}

	return err
}
