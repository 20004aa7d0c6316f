package booking

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/ManoharMakarla0412/coworking/internal/calendar"
	"github.com/ManoharMakarla0412/coworking/internal/observability"
)

// Service drives the booking sequence: availability gate, conditional
// creation on the calendar authority, conditional local persistence.
// Side effects are strictly ordered; persistence never starts before the
// authority confirms creation.
type Service struct {
	gate  *Gate
	cal   calendar.Client
	store RecordStore
	log   *logrus.Logger
	now   func() time.Time
}

func NewService(gate *Gate, cal calendar.Client, store RecordStore, log *logrus.Logger) *Service {
	return &Service{gate: gate, cal: cal, store: store, log: log, now: time.Now}
}

// Create arbitrates and materializes a candidate event.
//
// The availability check and the create call are not atomic: another caller
// can book the same window in between. The authority's own consistency is
// the only protection in that gap. Error cases:
//
//   - empty access token: ErrUnauthorized, no outbound calls
//   - availability query failure: ErrUpstreamUnavailable, creation blocked
//   - overlap found: *ConflictError with the full conflict set
//   - authority refused creation: *UpstreamRejectedError, no local record
//   - local write failed after creation: *PartialSuccessError carrying the
//     created event, since the upstream side effect is already durable
func (s *Service) Create(ctx context.Context, accessToken string, cand CandidateEvent) (*calendar.CreatedEvent, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}

	decision, err := s.gate.CheckAvailability(ctx, accessToken, cand.Interval)
	if err != nil {
		return nil, err
	}
	if !decision.OK {
		return nil, &ConflictError{Conflicts: decision.Conflicts}
	}

	created, err := s.cal.Insert(ctx, accessToken, calendar.Event{
		Summary:     cand.Title,
		Description: cand.Description,
		Interval:    cand.Interval,
	})
	if err != nil {
		observability.UpstreamFailures.WithLabelValues("calendar_insert").Inc()
		s.log.WithError(err).WithField("owner", cand.OwnerIdentity).Error("calendar insert failed")
		return nil, &UpstreamRejectedError{Details: upstreamDetails(err), Cause: err}
	}
	observability.BookingsCreated.Inc()

	rec := Record{
		OwnerIdentity: cand.OwnerIdentity,
		Title:         cand.Title,
		Description:   cand.Description,
		Interval:      cand.Interval,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"owner":    cand.OwnerIdentity,
			"event_id": created.ID,
		}).Error("local record write failed after upstream creation")
		return nil, &PartialSuccessError{Created: created, Cause: err}
	}

	return created, nil
}

func upstreamDetails(err error) string {
	var uerr *calendar.UpstreamError
	if errors.As(err, &uerr) {
		return uerr.Message
	}
	return err.Error()
}
