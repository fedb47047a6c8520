package booking

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned for malformed or inverted date intervals:
// availability queries with from after to, and stays with check-out not
// strictly after check-in.
var ErrInvalidRange = errors.New("invalid date range")

// ErrInvalidTotal is returned by the hold workflow when the computed total
// is not positive.  Pricing itself never rejects; the workflow does.
var ErrInvalidTotal = errors.New("computed total is not positive")

// ValidationError reports a missing or invalid field on a hold request.
// No side effects have occurred when it is returned.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

// PrivateEventConflictError is returned when a partial booking touches a
// date holding a private-only event.  The event name is carried so callers
// can show it to the guest.
type PrivateEventConflictError struct {
	EventName string
	Date      time.Time
}

func (e *PrivateEventConflictError) Error() string {
	return fmt.Sprintf("date %s is reserved for private event %q",
		e.Date.Format(dateLayout), e.EventName)
}

// StorageError wraps a persistence failure from the hold workflow or the
// administrative transitions.  The in-progress write was aborted; no
// partial state is retained.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Fault describes a data-integrity problem detected while aggregating
// availability: the same room assigned to two active reservations for the
// same night.  Faults are reported to operators through the engine's fault
// hook; the availability result still counts the room once (occupied) so
// the query succeeds best-effort.
type Fault struct {
	RoomID   int
	Date     time.Time
	OrderIDs []uint64
}

func (f Fault) String() string {
	return fmt.Sprintf("room %d double-assigned on %s by orders %v",
		f.RoomID, f.Date.Format(dateLayout), f.OrderIDs)
}
