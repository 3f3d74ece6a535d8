package orders

import (
	"fmt"

	"concierge/models"
)

// MalformedRecordError marks an upstream record that cannot be normalized. The
// caller drops the record and keeps a count; the merge never aborts on one.
type MalformedRecordError struct {
	Source models.SourceType
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: missing %s", e.Source, e.Field)
}

// InvalidTransitionError rejects a status change not allowed from the booking's
// current state. Surfaced to the caller as-is, no retry.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// AdapterUnavailableError wraps a failed read or write against an upstream
// source. Reads degrade to a partial view; writes roll back the optimistic
// status and surface this as retryable.
type AdapterUnavailableError struct {
	Source models.SourceType
	Op     string
	Err    error
}

func (e *AdapterUnavailableError) Error() string {
	return fmt.Sprintf("%s source unavailable during %s: %v", e.Source, e.Op, e.Err)
}

func (e *AdapterUnavailableError) Unwrap() error {
	return e.Err
}
