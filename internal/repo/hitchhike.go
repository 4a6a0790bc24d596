package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hitchlog/backend/internal/domain"
)

// HitchhikeRepo loads hitchhike stories and the ids used to page through them.
type HitchhikeRepo interface {
	// GetByID retrieves a hitchhike with its person and trip details.
	// Returns domain.ErrNotFound if no hitchhike with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Hitchhike, error)

	// ListIDs returns the id of every hitchhike in ascending order.
	ListIDs(ctx context.Context) ([]int64, error)
}

// pgHitchhikeRepo is the Postgres implementation of HitchhikeRepo.
type pgHitchhikeRepo struct {
	db db
}

// NewHitchhikeRepo constructs a HitchhikeRepo backed by the provided db connection.
func NewHitchhikeRepo(db db) HitchhikeRepo {
	return &pgHitchhikeRepo{db: db}
}

// GetByID retrieves a hitchhike by primary key. The person is optional.
func (r *pgHitchhikeRepo) GetByID(ctx context.Context, id int64) (domain.Hitchhike, error) {
	const q = `
		SELECT h.id, h.trip_id, h.title, h.story, h.mission, h.waiting_time, h.duration,
		       p.name, p.occupation,
		       t.from_location, t.to_location, t.departure, t.distance,
		       u.username
		FROM hitchhikes h
		JOIN trips t ON t.id = h.trip_id
		JOIN users u ON u.id = h.user_id
		LEFT JOIN people p ON p.hitchhike_id = h.id
		WHERE h.id = @id`

	var (
		h          domain.Hitchhike
		waiting    pgtype.Int4
		duration   pgtype.Float8
		name       pgtype.Text
		occupation pgtype.Text
		departure  pgtype.Timestamptz
		distance   pgtype.Int4
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&h.ID, &h.TripID, &h.Title, &h.Story, &h.Mission, &waiting, &duration,
		&name, &occupation,
		&h.From, &h.To, &departure, &distance,
		&h.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrNotFound
		}
		return domain.Hitchhike{}, fmt.Errorf("repo.HitchhikeRepo.GetByID: %w", err)
	}

	if waiting.Valid {
		w := int(waiting.Int32)
		h.WaitingTime = &w
	}
	if duration.Valid {
		d := duration.Float64
		h.Duration = &d
	}
	if name.Valid || occupation.Valid {
		h.Person = &domain.Person{Name: name.String, Occupation: occupation.String}
	}
	if departure.Valid {
		d := departure.Time.UTC()
		h.Departure = &d
	}
	if distance.Valid {
		d := int(distance.Int32)
		h.Distance = &d
	}
	return h, nil
}

// ListIDs returns every hitchhike id, smallest first.
func (r *pgHitchhikeRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM hitchhikes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repo.HitchhikeRepo.ListIDs: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("repo.HitchhikeRepo.ListIDs: %w", err)
	}
	return ids, nil
}
