// Package repo loads hitchlog records from Postgres for the stats engine.
// Each resource has its own file with an interface and a Postgres implementation.
// The repo is read-only: records are written by the logbook web application.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hitchlog/backend/internal/domain"
)

// DefaultBatchSize is the number of trips ForEach loads per round trip.
const DefaultBatchSize = 500

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo loads trips together with their user, rides, and country distances.
type TripRepo interface {
	// GetByID retrieves a single fully loaded trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by departure descending,
	// plus the total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ForEach calls fn for every trip in id order, loading batchSize trips at
	// a time. It stops at the first error returned by fn and returns it.
	ForEach(ctx context.Context, batchSize int, fn func(domain.Trip) error) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `
	t.id, t.from_location, t.to_location, t.from_city, t.to_city,
	t.departure, t.arrival, t.distance, t.gmaps_duration, t.travelling_with,
	u.id, u.username, u.date_of_birth`

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	trips := []domain.Trip{trip}
	if err := r.loadAssociations(ctx, trips); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trips[0], nil
}

// ListPaged returns one page of trips, most recent departure first.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.departure DESC, t.id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	if err := r.loadAssociations(ctx, trips); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}
	return trips, total, nil
}

// ForEach streams every trip using keyset pagination on the primary key, so
// only one batch is held in memory at a time.
func (r *pgTripRepo) ForEach(ctx context.Context, batchSize int, fn func(domain.Trip) error) error {
	const q = `SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.user_id
		WHERE t.id > @after
		ORDER BY t.id
		LIMIT @limit`

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var after int64
	for {
		rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"after": after, "limit": batchSize})
		if err != nil {
			return fmt.Errorf("repo.TripRepo.ForEach: %w", err)
		}
		batch, err := collectTrips(rows)
		if err != nil {
			return fmt.Errorf("repo.TripRepo.ForEach: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := r.loadAssociations(ctx, batch); err != nil {
			return fmt.Errorf("repo.TripRepo.ForEach: %w", err)
		}

		for _, t := range batch {
			if err := fn(t); err != nil {
				return err
			}
		}
		if len(batch) < batchSize {
			return nil
		}
		after = batch[len(batch)-1].ID
	}
}

// loadAssociations fills in the rides and country distances of trips with
// one query per association.
func (r *pgTripRepo) loadAssociations(ctx context.Context, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	index := make(map[int64]int, len(trips))
	ids := make([]int64, len(trips))
	for i, t := range trips {
		index[t.ID] = i
		ids[i] = t.ID
	}

	rides, err := r.loadRides(ctx, ids)
	if err != nil {
		return err
	}
	for _, ride := range rides {
		i := index[ride.TripID]
		trips[i].Rides = append(trips[i].Rides, ride)
	}

	countries, err := r.loadCountryDistances(ctx, ids)
	if err != nil {
		return err
	}
	for _, cd := range countries {
		i := index[cd.TripID]
		trips[i].CountryDistances = append(trips[i].CountryDistances, cd)
	}
	return nil
}

func (r *pgTripRepo) loadRides(ctx context.Context, tripIDs []int64) ([]domain.Ride, error) {
	const q = `
		SELECT id, trip_id, experience, waiting_time, vehicle
		FROM rides
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("rides: %w", err)
	}
	defer rows.Close()

	var rides []domain.Ride
	for rows.Next() {
		var (
			ride       domain.Ride
			experience pgtype.Text
			waiting    pgtype.Int4
		)
		if err := rows.Scan(&ride.ID, &ride.TripID, &experience, &waiting, &ride.Vehicle); err != nil {
			return nil, fmt.Errorf("rides: scan: %w", err)
		}
		// Reject labels outside the scale here so the stats never see them.
		ride.Experience, err = domain.ParseExperience(experience.String)
		if err != nil {
			return nil, fmt.Errorf("rides: ride %d: %w", ride.ID, err)
		}
		if waiting.Valid {
			w := int(waiting.Int32)
			ride.WaitingTime = &w
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rides: rows: %w", err)
	}
	return rides, nil
}

func (r *pgTripRepo) loadCountryDistances(ctx context.Context, tripIDs []int64) ([]domain.CountryDistance, error) {
	const q = `
		SELECT trip_id, country, country_code, distance
		FROM country_distances
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("country distances: %w", err)
	}
	defer rows.Close()

	var out []domain.CountryDistance
	for rows.Next() {
		var cd domain.CountryDistance
		if err := rows.Scan(&cd.TripID, &cd.Country, &cd.CountryCode, &cd.Distance); err != nil {
			return nil, fmt.Errorf("country distances: scan: %w", err)
		}
		out = append(out, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("country distances: rows: %w", err)
	}
	return out, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a trip row joined with its user into a domain.Trip.
// It handles the UUID and the nullable distance, estimate and birth date.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		distance pgtype.Int4
		gmaps    pgtype.Int8
		userID   pgtype.UUID
		dob      pgtype.Date
	)

	err := s.Scan(
		&t.ID, &t.From, &t.To, &t.FromCity, &t.ToCity,
		&t.Departure, &t.Arrival, &distance, &gmaps, &t.TravellingWith,
		&userID, &t.User.Username, &dob,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	// timestamptz scans into the host zone; keep every trip time in UTC.
	t.Departure, t.Arrival = t.Departure.UTC(), t.Arrival.UTC()
	t.User.ID = uuid.UUID(userID.Bytes)
	if distance.Valid {
		d := int(distance.Int32)
		t.Distance = &d
	}
	if gmaps.Valid {
		g := gmaps.Int64
		t.GmapsDuration = &g
	}
	if dob.Valid {
		d := dob.Time
		t.User.DateOfBirth = &d
	}
	return t, nil
}
