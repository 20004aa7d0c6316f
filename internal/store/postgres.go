package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ManoharMakarla0412/coworking/internal/booking"
)

// Postgres appends booking records to the events table.
//
// Schema:
//
//	CREATE TABLE events (
//	    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    owner_email TEXT NOT NULL,
//	    title       TEXT NOT NULL,
//	    description TEXT,
//	    start_at_utc TIMESTAMPTZ NOT NULL,
//	    end_at_utc   TIMESTAMPTZ NOT NULL,
//	    timezone    TEXT,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//
// Append-only: nothing updates or deletes rows, so concurrent requests need
// no coordination here. There is no uniqueness constraint beyond the primary
// key; a retried request can produce duplicate rows for the same owner and
// window.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Append(ctx context.Context, rec booking.Record) error {
	q := `INSERT INTO events (owner_email, title, description, start_at_utc, end_at_utc, timezone, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := p.pool.Exec(ctx, q,
		rec.OwnerIdentity, rec.Title, rec.Description,
		rec.Interval.Start.UTC(), rec.Interval.End.UTC(), rec.Interval.Zone,
		rec.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert booking record")
	}
	return nil
}
