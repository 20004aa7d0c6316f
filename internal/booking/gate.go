package booking

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/ManoharMakarla0412/coworking/internal/calendar"
	"github.com/ManoharMakarla0412/coworking/internal/interval"
	"github.com/ManoharMakarla0412/coworking/internal/observability"
)

// Decision is the outcome of an availability check. When OK is false,
// Conflicts lists every busy interval overlapping the candidate.
type Decision struct {
	OK        bool
	Conflicts []calendar.BusyInterval
}

// Gate arbitrates a candidate interval against the calendar authority's busy
// set. The busy set is fetched fresh on every call; staleness between this
// check and a subsequent create is an accepted, documented race (the
// authority itself is the source of truth and this service holds no lock
// over it).
type Gate struct {
	cal calendar.Client
	log *logrus.Logger
}

func NewGate(cal calendar.Client, log *logrus.Logger) *Gate {
	return &Gate{cal: cal, log: log}
}

// CheckAvailability queries busy intervals over the candidate's window and
// rejects on any half-open overlap. A failed query is never treated as
// availability; it surfaces as ErrUpstreamUnavailable.
func (g *Gate) CheckAvailability(ctx context.Context, accessToken string, candidate interval.TimeInterval) (Decision, error) {
	busy, err := g.cal.FreeBusy(ctx, accessToken, candidate)
	if err != nil {
		observability.UpstreamFailures.WithLabelValues("calendar_freebusy").Inc()
		g.log.WithError(err).Warn("freebusy query failed")
		return Decision{}, errors.Mark(errors.Wrap(err, "availability query"), ErrUpstreamUnavailable)
	}

	var conflicts []calendar.BusyInterval
	for _, b := range busy {
		if candidate.Overlaps(b.Interval) {
			conflicts = append(conflicts, b)
		}
	}
	if len(conflicts) > 0 {
		observability.BookingDecisions.WithLabelValues("reject").Inc()
		return Decision{OK: false, Conflicts: conflicts}, nil
	}
	observability.BookingDecisions.WithLabelValues("accept").Inc()
	return Decision{OK: true}, nil
}
