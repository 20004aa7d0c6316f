package booking

import (
	"context"
	"time"

	"github.com/ManoharMakarla0412/coworking/internal/interval"
)

// CandidateEvent is a proposed booking. Constructed once from an inbound
// request and consumed once by the orchestrator.
type CandidateEvent struct {
	Interval      interval.TimeInterval
	Title         string
	Description   string
	OwnerIdentity string
}

// Record is the local trace of a confirmed booking. It is written only after
// the calendar authority confirms the event, so a record never exists without
// its upstream counterpart. Records are append-only; there is no edit or
// cancel path.
type Record struct {
	OwnerIdentity string
	Title         string
	Description   string
	Interval      interval.TimeInterval
	CreatedAt     time.Time
}

// RecordStore appends booking records. No read API is needed by the
// orchestrator.
type RecordStore interface {
	Append(ctx context.Context, rec Record) error
}
