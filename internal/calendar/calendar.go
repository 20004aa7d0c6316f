package calendar

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ManoharMakarla0412/coworking/internal/interval"
)

// BusyInterval is one occupied range reported by the calendar authority.
// Fetched fresh for every availability decision, never cached.
type BusyInterval struct {
	Interval interval.TimeInterval `json:"interval"`
}

// Event is the outbound shape for calendar creation.
type Event struct {
	Summary     string
	Description string
	Interval    interval.TimeInterval
}

// CreatedEvent is the authority's canonical representation of an event it
// confirmed.
type CreatedEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Status    string    `json:"status"`
	HTMLLink  string    `json:"html_link,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// UpstreamError carries the structured failure payload from a rejected
// calendar call so handlers can surface it to the caller.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string { return e.Message }

// Client is the capability set this service needs from the external calendar
// authority. Test doubles implement it for network-free orchestrator tests.
type Client interface {
	// FreeBusy returns every busy interval inside the window. The window is
	// widened by callers as needed; narrowing it below the candidate range is
	// not allowed.
	FreeBusy(ctx context.Context, accessToken string, window interval.TimeInterval) ([]BusyInterval, error)
	// Insert materializes an event on the authority and returns its canonical
	// representation.
	Insert(ctx context.Context, accessToken string, ev Event) (*CreatedEvent, error)
}

// GoogleClient talks to the Google Calendar API using the caller's OAuth2
// access token. The token is supplied per request; this process never holds
// refresh credentials (the OAuth flow lives with the identity provider).
type GoogleClient struct {
	calendarID string
	timeout    time.Duration
}

func NewGoogleClient(calendarID string, timeout time.Duration) *GoogleClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleClient{calendarID: calendarID, timeout: timeout}
}

func (g *GoogleClient) service(ctx context.Context, accessToken string) (*gcal.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.Wrap(err, "create calendar service")
	}
	return srv, nil
}

func (g *GoogleClient) FreeBusy(ctx context.Context, accessToken string, window interval.TimeInterval) ([]BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	srv, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	req := &gcal.FreeBusyRequest{
		TimeMin:  window.Start.Format(time.RFC3339),
		TimeMax:  window.End.Format(time.RFC3339),
		TimeZone: window.Zone,
		Items:    []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	resp, err := srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, wrapGoogleErr(err, "freebusy query")
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, nil
	}
	busy := make([]BusyInterval, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "parse busy start %q", p.Start)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, errors.Wrapf(err, "parse busy end %q", p.End)
		}
		iv, err := interval.New(start, end, window.Zone)
		if err != nil {
			return nil, errors.Wrap(err, "busy period")
		}
		busy = append(busy, BusyInterval{Interval: iv})
	}
	return busy, nil
}

func (g *GoogleClient) Insert(ctx context.Context, accessToken string, ev Event) (*CreatedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	srv, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	item := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Interval.Start.Format(time.RFC3339),
			TimeZone: ev.Interval.Zone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.Interval.End.Format(time.RFC3339),
			TimeZone: ev.Interval.Zone,
		},
	}
	created, err := srv.Events.Insert(g.calendarID, item).Context(ctx).Do()
	if err != nil {
		return nil, wrapGoogleErr(err, "insert event")
	}

	out := &CreatedEvent{
		ID:       created.Id,
		Summary:  created.Summary,
		Status:   created.Status,
		HTMLLink: created.HtmlLink,
	}
	if created.Start != nil && created.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, created.Start.DateTime); err == nil {
			out.StartTime = t
		}
	}
	if created.End != nil && created.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, created.End.DateTime); err == nil {
			out.EndTime = t
		}
	}
	return out, nil
}

func wrapGoogleErr(err error, op string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return errors.Wrap(&UpstreamError{StatusCode: gerr.Code, Message: gerr.Message}, op)
	}
	return errors.Wrap(err, op)
}
