package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// The repo is read-only, so fixtures are written with plain SQL inside the
// per-test transaction.

func insertUser(t *testing.T, tx pgx.Tx, username string, dob *time.Time) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(),
		`INSERT INTO users (username, date_of_birth) VALUES ($1, $2) RETURNING id`,
		username, dob).Scan(&id)
	require.NoError(t, err, "insert user")
	return id
}

type tripRow struct {
	from, to      string
	departure     time.Time
	duration      time.Duration
	distance      *int
	gmapsDuration *int64
}

func insertTrip(t *testing.T, tx pgx.Tx, userID uuid.UUID, tr tripRow) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO trips (user_id, from_location, to_location, departure, arrival, distance, gmaps_duration, travelling_with)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		userID, tr.from, tr.to, tr.departure, tr.departure.Add(tr.duration),
		tr.distance, tr.gmapsDuration, []string{"Lena"},
	).Scan(&id)
	require.NoError(t, err, "insert trip")
	return id
}

func insertRide(t *testing.T, tx pgx.Tx, tripID int64, experience *string, waiting *int) {
	t.Helper()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO rides (trip_id, experience, waiting_time, vehicle) VALUES ($1, $2, $3, 'car')`,
		tripID, experience, waiting)
	require.NoError(t, err, "insert ride")
}

func insertCountry(t *testing.T, tx pgx.Tx, tripID int64, country, code string, distance int) {
	t.Helper()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO country_distances (trip_id, country, country_code, distance) VALUES ($1, $2, $3, $4)`,
		tripID, country, code, distance)
	require.NoError(t, err, "insert country distance")
}

func ptr[T any](v T) *T { return &v }
