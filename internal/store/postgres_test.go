package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ManoharMakarla0412/coworking/internal/booking"
	"github.com/ManoharMakarla0412/coworking/internal/interval"
	"github.com/ManoharMakarla0412/coworking/internal/store"
)

func TestPostgres_Append(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "coworking",
				"POSTGRES_PASSWORD": "coworking",
				"POSTGRES_DB":       "coworking",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://coworking:coworking@%s:%s/coworking?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_email TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			start_at_utc TIMESTAMPTZ NOT NULL,
			end_at_utc TIMESTAMPTZ NOT NULL,
			timezone TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	ivl, err := interval.New(start, start.Add(30*time.Minute), "UTC")
	require.NoError(t, err)

	repo := store.NewPostgres(pool)
	rec := booking.Record{
		OwnerIdentity: "dev@example.com",
		Title:         "Standup",
		Description:   "Weekly sync",
		Interval:      ivl,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Append(ctx, rec))

	var owner, title string
	var startAt, endAt time.Time
	err = pool.QueryRow(ctx,
		`SELECT owner_email, title, start_at_utc, end_at_utc FROM events`).
		Scan(&owner, &title, &startAt, &endAt)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", owner)
	assert.Equal(t, "Standup", title)
	assert.True(t, startAt.Equal(start))
	assert.True(t, endAt.Equal(start.Add(30*time.Minute)))

	// append-only: a duplicate record for the same owner and window is
	// accepted, there is no natural uniqueness constraint
	require.NoError(t, repo.Append(ctx, rec))
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&count))
	assert.Equal(t, 2, count)
}
