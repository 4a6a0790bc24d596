package service

import (
	"context"
	"fmt"

	"github.com/hitchlog/backend/internal/domain"
	"github.com/hitchlog/backend/internal/repo"
	"github.com/hitchlog/backend/internal/sequence"
)

// HitchhikeService serves hitchhike stories with links to their neighbours.
type HitchhikeService struct {
	repo repo.HitchhikeRepo
}

// NewHitchhikeService constructs a HitchhikeService backed by the provided repo.
func NewHitchhikeService(r repo.HitchhikeRepo) *HitchhikeService {
	return &HitchhikeService{repo: r}
}

// GetByID returns a hitchhike and the ids of the next and previous
// hitchhikes, wrapping around at the ends.
// Returns domain.ErrNotFound if the hitchhike does not exist.
func (s *HitchhikeService) GetByID(ctx context.Context, id int64) (domain.HitchhikeDetail, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.HitchhikeDetail{}, fmt.Errorf("service.HitchhikeService.GetByID: %w", err)
	}

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return domain.HitchhikeDetail{}, fmt.Errorf("service.HitchhikeService.GetByID: %w", err)
	}

	nav := sequence.New(ids)
	next, err := nav.Next(h.ID)
	if err != nil {
		return domain.HitchhikeDetail{}, fmt.Errorf("service.HitchhikeService.GetByID: %w", err)
	}
	prev, err := nav.Prev(h.ID)
	if err != nil {
		return domain.HitchhikeDetail{}, fmt.Errorf("service.HitchhikeService.GetByID: %w", err)
	}

	return domain.HitchhikeDetail{Hitchhike: h, Next: next, Prev: prev}, nil
}
