package booking_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManoharMakarla0412/coworking/internal/booking"
	"github.com/ManoharMakarla0412/coworking/internal/calendar"
)

type fakeStore struct {
	records []booking.Record
	err     error
}

func (s *fakeStore) Append(_ context.Context, rec booking.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func newService(cal *fakeCalendar, st *fakeStore) *booking.Service {
	log := testLogger()
	return booking.NewService(booking.NewGate(cal, log), cal, st, log)
}

func candidate(t *testing.T) booking.CandidateEvent {
	t.Helper()
	return booking.CandidateEvent{
		Interval:      iv(t, "2025-03-10T10:00:00Z", "2025-03-10T10:30:00Z"),
		Title:         "Standup",
		Description:   "Weekly sync",
		OwnerIdentity: "dev@example.com",
	}
}

func TestCreate_MissingTokenFailsFast(t *testing.T) {
	cal := &fakeCalendar{}
	st := &fakeStore{}

	_, err := newService(cal, st).Create(context.Background(), "", candidate(t))

	assert.ErrorIs(t, err, booking.ErrUnauthorized)
	assert.Zero(t, cal.freeBusyCalls, "no outbound call before auth check")
	assert.Empty(t, cal.inserted)
	assert.Empty(t, st.records)
}

func TestCreate_ConflictSkipsCreation(t *testing.T) {
	cal := &fakeCalendar{busy: []calendar.BusyInterval{
		{Interval: iv(t, "2025-03-10T09:30:00Z", "2025-03-10T10:15:00Z")},
	}}
	st := &fakeStore{}

	_, err := newService(cal, st).Create(context.Background(), "tok", candidate(t))

	var conflictErr *booking.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Conflicts, 1)
	assert.Empty(t, cal.inserted, "no creation attempted on conflict")
	assert.Empty(t, st.records)
}

func TestCreate_AvailabilityFailureBlocksCreation(t *testing.T) {
	cal := &fakeCalendar{freeBusyErr: errors.New("boom")}
	st := &fakeStore{}

	_, err := newService(cal, st).Create(context.Background(), "tok", candidate(t))

	assert.ErrorIs(t, err, booking.ErrUpstreamUnavailable)
	assert.Empty(t, cal.inserted)
	assert.Empty(t, st.records)
}

func TestCreate_UpstreamRejectionWritesNoRecord(t *testing.T) {
	cal := &fakeCalendar{insertErr: &calendar.UpstreamError{StatusCode: 403, Message: "insufficient permissions"}}
	st := &fakeStore{}

	_, err := newService(cal, st).Create(context.Background(), "tok", candidate(t))

	var rejectedErr *booking.UpstreamRejectedError
	require.ErrorAs(t, err, &rejectedErr)
	assert.Equal(t, "insufficient permissions", rejectedErr.Details)
	assert.Empty(t, st.records, "local record must imply upstream event")
}

func TestCreate_SuccessWritesExactlyOneRecord(t *testing.T) {
	cal := &fakeCalendar{created: &calendar.CreatedEvent{ID: "evt-1", Status: "confirmed"}}
	st := &fakeStore{}
	cand := candidate(t)

	created, err := newService(cal, st).Create(context.Background(), "tok", cand)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", created.ID)

	require.Len(t, cal.inserted, 1)
	assert.Equal(t, cand.Title, cal.inserted[0].Summary)

	require.Len(t, st.records, 1)
	rec := st.records[0]
	assert.Equal(t, cand.OwnerIdentity, rec.OwnerIdentity)
	assert.Equal(t, cand.Title, rec.Title)
	assert.Equal(t, cand.Description, rec.Description)
	assert.True(t, rec.Interval.Start.Equal(cand.Interval.Start))
	assert.True(t, rec.Interval.End.Equal(cand.Interval.End))
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestCreate_LocalWriteFailureIsPartialSuccess(t *testing.T) {
	cal := &fakeCalendar{created: &calendar.CreatedEvent{ID: "evt-2"}}
	st := &fakeStore{err: errors.New("db down")}

	_, err := newService(cal, st).Create(context.Background(), "tok", candidate(t))

	var partialErr *booking.PartialSuccessError
	require.ErrorAs(t, err, &partialErr)
	require.NotNil(t, partialErr.Created)
	assert.Equal(t, "evt-2", partialErr.Created.ID, "caller can retry persistence without re-creating the event")
}
