package interval

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidInterval is returned when an interval's start is not strictly
// before its end.
var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// TimeInterval is a half-open time range [Start, End). Zone is display
// metadata only; overlap decisions compare the underlying instants, so two
// intervals expressed in different zones still compare correctly.
type TimeInterval struct {
	Start time.Time
	End   time.Time
	Zone  string
}

// New validates and constructs a TimeInterval.
func New(start, end time.Time, zone string) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{Start: start, End: end, Zone: zone}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints ([10:00,11:00) next to [11:00,12:00)) do not overlap,
// so back-to-back bookings can share a boundary.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns End - Start.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
