// Package service orchestrates repo loads and the stats engine for the
// hitchlog API. No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitchlog/backend/internal/domain"
	"github.com/hitchlog/backend/internal/repo"
	"github.com/hitchlog/backend/internal/stats"
)

// TripService serves trips together with their derived metrics.
// A metric that cannot be derived is left out of the view and logged; it
// never fails the request.
type TripService struct {
	repo repo.TripRepo
	log  *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, log *slog.Logger) *TripService {
	return &TripService{repo: r, log: log}
}

// GetByID returns a single trip and its metrics.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.TripView, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return s.viewOf(ctx, trip), nil
}

// ListPaged returns one page of trips with their metrics and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripView, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}

	views := make([]domain.TripView, 0, len(trips))
	for _, t := range trips {
		views = append(views, s.viewOf(ctx, t))
	}
	return views, total, nil
}

func (s *TripService) viewOf(ctx context.Context, t domain.Trip) domain.TripView {
	st, err := stats.Summarize(t)
	if err != nil {
		s.log.WarnContext(ctx, "trip metrics incomplete", "trip_id", t.ID, "error", err)
	}
	return domain.TripView{Trip: t, Stats: st}
}
