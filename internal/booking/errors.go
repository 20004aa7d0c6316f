package booking

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ManoharMakarla0412/coworking/internal/calendar"
)

var (
	// ErrUnauthorized means the request carried no usable access token.
	// Rejected before any outbound call is made.
	ErrUnauthorized = errors.New("unauthorized: missing access token")

	// ErrUpstreamUnavailable means the availability query itself failed.
	// Availability must be proven, never assumed, so this always blocks
	// creation.
	ErrUpstreamUnavailable = errors.New("calendar authority unavailable")
)

// ConflictError is returned when the candidate interval overlaps existing
// commitments. Conflicts holds every overlapping busy interval, not just the
// first, so callers can present the full picture.
type ConflictError struct {
	Conflicts []calendar.BusyInterval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot not available: %d conflicting interval(s)", len(e.Conflicts))
}

// UpstreamRejectedError means the calendar authority refused to create the
// event. No local record is written in this case.
type UpstreamRejectedError struct {
	Details string
	Cause   error
}

func (e *UpstreamRejectedError) Error() string {
	return "calendar authority rejected event creation: " + e.Details
}

func (e *UpstreamRejectedError) Unwrap() error { return e.Cause }

// PartialSuccessError means the external event exists but the local record
// write failed. Reported distinctly so a caller can retry persistence without
// re-creating the external event; no compensating action is taken here.
type PartialSuccessError struct {
	Created *calendar.CreatedEvent
	Cause   error
}

func (e *PartialSuccessError) Error() string {
	return "event created upstream but local record write failed"
}

func (e *PartialSuccessError) Unwrap() error { return e.Cause }
